// Command setprobe demonstrates cross-type numeric equality in the
// collections.Set: after adding the int 20, the float 20.0 and the
// string "20", the set holds exactly two members.
package main

import (
	"fmt"
	"io"
	"os"

	"skyclust/internal/collections"
)

func main() {
	run(os.Stdout)
}

func run(out io.Writer) {
	s := collections.NewSet()
	s.Add(20)
	s.Add(20.0)
	s.Add("20")

	fmt.Fprintln(out, s)
	fmt.Fprintln(out, s.Len())
}
