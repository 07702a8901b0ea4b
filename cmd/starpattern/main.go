// Command starpattern reads a row count from standard input and
// prints a left-padded asterisk triangle.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"skyclust/internal/pattern"
)

func main() {
	if err := run(os.Stdin, os.Stdout); err != nil {
		slog.Error("starpattern failed", "error", err)
		os.Exit(1)
	}
}

func run(in io.Reader, out io.Writer) error {
	fmt.Fprint(out, "Enter the value: ")

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read input: %w", err)
	}

	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return fmt.Errorf("invalid value %q: %w", strings.TrimSpace(line), err)
	}

	fmt.Fprint(out, pattern.Render(n))
	return nil
}
