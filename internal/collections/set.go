// Package collections provides a small insertion-ordered set with
// cross-type numeric equality: numeric members that compare equal, such
// as the int 20 and the float 20.0, occupy a single slot, while a
// string "20" remains a distinct element.
package collections

import (
	"fmt"
	"strings"
)

// Set is an unordered collection of unique values. Uniqueness for
// numeric members is by mathematical value regardless of the Go type
// used to insert them; all other members are keyed by type and value.
// The zero value is not usable; construct with NewSet.
type Set struct {
	keys   map[any]struct{}
	values []any
}

// NewSet returns an empty set, optionally seeded with initial members.
func NewSet(members ...any) *Set {
	s := &Set{keys: make(map[any]struct{})}
	for _, m := range members {
		s.Add(m)
	}
	return s
}

// Add inserts v into the set. Re-adding a member that is already
// present, including a numeric value under a different numeric type,
// leaves the set unchanged. The first insertion wins: adding 20 and
// then 20.0 keeps the int representation.
func (s *Set) Add(v any) {
	k := canonical(v)
	if _, ok := s.keys[k]; ok {
		return
	}
	s.keys[k] = struct{}{}
	s.values = append(s.values, v)
}

// Contains reports whether v, or a numerically equal member, is present.
func (s *Set) Contains(v any) bool {
	_, ok := s.keys[canonical(v)]
	return ok
}

// Len returns the number of distinct members.
func (s *Set) Len() int {
	return len(s.keys)
}

// Values returns the members in insertion order.
func (s *Set) Values() []any {
	out := make([]any, len(s.values))
	copy(out, s.values)
	return out
}

// String renders the set as {m1, m2, ...} in insertion order, quoting
// string members.
func (s *Set) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, v := range s.values {
		if i > 0 {
			b.WriteString(", ")
		}
		if str, ok := v.(string); ok {
			fmt.Fprintf(&b, "%q", str)
		} else {
			fmt.Fprintf(&b, "%v", v)
		}
	}
	b.WriteByte('}')
	return b.String()
}

// numericKey makes integers and integral floats hash to the same slot.
// Non-integral floats keep their own value space.
type numericKey struct {
	value float64
}

// canonical maps v to its map key. All built-in numeric types collapse
// to a numericKey carrying the float64 value; everything else is used
// as-is, so distinct comparable types stay distinct.
func canonical(v any) any {
	switch n := v.(type) {
	case int:
		return numericKey{float64(n)}
	case int8:
		return numericKey{float64(n)}
	case int16:
		return numericKey{float64(n)}
	case int32:
		return numericKey{float64(n)}
	case int64:
		return numericKey{float64(n)}
	case uint:
		return numericKey{float64(n)}
	case uint8:
		return numericKey{float64(n)}
	case uint16:
		return numericKey{float64(n)}
	case uint32:
		return numericKey{float64(n)}
	case uint64:
		return numericKey{float64(n)}
	case float32:
		return numericKey{float64(n)}
	case float64:
		return numericKey{n}
	default:
		return v
	}
}
