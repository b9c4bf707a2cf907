// Command rangedictl replays a script of mark commands against an
// int64-keyed, string-valued rangedict.Dict and prints the resulting
// debug string. It exists to exercise the library end to end, the way
// logblock exercised the block device core; it is not part of the
// library surface.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/akmistry/rangedict"
)

var (
	scriptFlag  = flag.String("script", "", "Path to a mark script (default: stdin)")
	verboseFlag = flag.Bool("verbose", false, "Verbose logging")
)

func main() {
	flag.Parse()

	if *verboseFlag {
		slog.SetDefault(slog.New(slog.NewTextHandler(
			os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	in := os.Stdin
	if *scriptFlag != "" {
		f, err := os.Open(*scriptFlag)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		in = f
	}

	cmds, err := parseScript(bufio.NewScanner(in))
	if err != nil {
		log.Fatalf("parsing script: %v", err)
	}

	d := rangedict.New[int64, string](cmpInt64, func(a, b string) bool { return a == b })
	for i, c := range cmds {
		slog.Debug("mark", "index", i, "begin", c.begin, "end", c.end, "value", c.value)
		if err := d.Mark(c.begin, c.end, c.value); err != nil {
			log.Fatalf("line %d: mark(%d,%d,%q): %v", i+1, c.begin, c.end, c.value, err)
		}
	}

	fmt.Println(d.String())
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
