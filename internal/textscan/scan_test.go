package textscan

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindSubstring(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		needle   string
		wantLine int
		wantOK   bool
	}{
		{
			name:     "match on second line",
			input:    "I love programming\nI love python\nGoodbye\n",
			needle:   "python",
			wantLine: 2,
			wantOK:   true,
		},
		{
			name:   "no match",
			input:  "I love programming\nI love java\nGoodbye\n",
			needle: "python",
			wantOK: false,
		},
		{
			name:   "case sensitive",
			input:  "I love Python\n",
			needle: "python",
			wantOK: false,
		},
		{
			name:     "first of several matches wins",
			input:    "python here\npython there\n",
			needle:   "python",
			wantLine: 1,
			wantOK:   true,
		},
		{
			name:   "empty input",
			input:  "",
			needle: "python",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line, ok, err := FindSubstring(strings.NewReader(tt.input), tt.needle)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantLine, line)
			}
		})
	}
}

func TestFindInFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "log.txt")
	content := "first line\nI love python\nlast line\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	line, ok, err := FindInFile(path, "python")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, line)
}

func TestFindInFileMissing(t *testing.T) {
	_, _, err := FindInFile(filepath.Join(t.TempDir(), "absent.txt"), "python")
	require.Error(t, err)
}
