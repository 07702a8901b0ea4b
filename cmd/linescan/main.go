// Command linescan reports the first line of a text file containing a
// literal substring. With no flags it reproduces the classic exercise:
// search log.txt for "python", case-sensitively.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"skyclust/internal/textscan"
)

func main() {
	path := flag.String("file", "log.txt", "text file to scan")
	needle := flag.String("needle", "python", "literal substring to search for (case-sensitive)")
	flag.Parse()

	if err := run(*path, *needle, os.Stdout); err != nil {
		slog.Error("linescan failed", "error", err)
		os.Exit(1)
	}
}

func run(path, needle string, out io.Writer) error {
	lineno, found, err := textscan.FindInFile(path, needle)
	if err != nil {
		return err
	}

	if found {
		fmt.Fprintf(out, "Yes, Python is present. Line no: %d\n", lineno)
	} else {
		fmt.Fprintln(out, "No, Python is not present.")
	}
	return nil
}
