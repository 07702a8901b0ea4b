// Package pattern renders the centered asterisk triangle used by the
// starpattern command-line tool.
package pattern

import "strings"

// Triangle returns the n lines of a left-padded asterisk triangle.
// Line i (1-based) carries n-i leading spaces followed by 2i-1
// asterisks, with no trailing spaces. A non-positive n yields no lines.
func Triangle(n int) []string {
	if n <= 0 {
		return nil
	}

	lines := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		var b strings.Builder
		b.WriteString(strings.Repeat(" ", n-i))
		// 2i-1 keeps the star count odd so the triangle stays centered.
		b.WriteString(strings.Repeat("*", 2*i-1))
		lines = append(lines, b.String())
	}
	return lines
}

// Render joins the triangle lines with newlines, one line per row,
// terminated by a final newline.
func Render(n int) string {
	lines := Triangle(n)
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, "\n") + "\n"
}
