package pattern

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTriangle(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want []string
	}{
		{
			name: "three rows",
			n:    3,
			want: []string{"  *", " ***", "*****"},
		},
		{
			name: "single row",
			n:    1,
			want: []string{"*"},
		},
		{
			name: "zero rows",
			n:    0,
			want: nil,
		},
		{
			name: "negative",
			n:    -4,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Triangle(tt.n))
		})
	}
}

func TestTriangleNoTrailingSpaces(t *testing.T) {
	for _, line := range Triangle(7) {
		assert.False(t, strings.HasSuffix(line, " "), "line %q has trailing space", line)
	}
}

func TestTriangleRowWidths(t *testing.T) {
	n := 5
	lines := Triangle(n)
	require.Len(t, lines, n)
	for i, line := range lines {
		row := i + 1
		assert.Equal(t, n-row, len(line)-strings.Count(line, "*"), "row %d leading spaces", row)
		assert.Equal(t, 2*row-1, strings.Count(line, "*"), "row %d star count", row)
	}
}

func TestRender(t *testing.T) {
	assert.Equal(t, "  *\n ***\n*****\n", Render(3))
	assert.Equal(t, "*\n", Render(1))
	assert.Equal(t, "", Render(0))
}
