package commands

import (
	"fmt"
	"io"
	"unicode"

	"josephlewis.net/picosh/core/interp"
)

type wcCount struct {
	bytes int
	lines int
	words int
	name  string

	inSpace bool
}

func (w *wcCount) Write(data []byte) (int, error) {
	for _, c := range data {
		isFirstByte := w.bytes == 0
		w.bytes++

		if c == '\n' {
			w.lines++
		}

		if unicode.IsSpace(rune(c)) {
			w.inSpace = true
		} else {
			if w.inSpace || isFirstByte {
				w.words++
			}
			w.inSpace = false
		}
	}

	return len(data), nil
}

func newWcCount(name string, fd io.Reader) (*wcCount, error) {
	out := &wcCount{name: name}
	if _, err := io.Copy(out, fd); err != nil {
		return nil, err
	}
	return out, nil
}

func (w *wcCount) increment(other *wcCount) {
	w.bytes += other.bytes
	w.lines += other.lines
	w.words += other.words
}

// Wc writes the number of newlines, words, and bytes in each input to
// standard output.
func Wc(inv *interp.Invocation) (int, error) {
	cmd := &SimpleCommand{
		Use:   "wc [-clw] [FILE]...",
		Short: "Write the number of newlines, words, and bytes contained in each input.",
	}

	opts := cmd.Flags()
	writeLines := opts.Bool('l', "write the number of newlines in each file")
	writeWords := opts.Bool('w', "write the number of words in each file")
	writeBytes := opts.Bool('c', "write the number of bytes in each file")

	return cmd.RunE(inv, func() error {
		nonePicked := !*writeLines && !*writeWords && !*writeBytes

		var cols []func(*wcCount) string
		if *writeLines || nonePicked {
			cols = append(cols, func(w *wcCount) string { return fmt.Sprint(w.lines) })
		}
		if *writeWords || nonePicked {
			cols = append(cols, func(w *wcCount) string { return fmt.Sprint(w.words) })
		}
		if *writeBytes || nonePicked {
			cols = append(cols, func(w *wcCount) string { return fmt.Sprint(w.bytes) })
		}

		files := opts.Args()
		if len(files) > 0 {
			cols = append(cols, func(w *wcCount) string { return w.name })
		}

		displayCount := func(count *wcCount) {
			for i, col := range cols {
				if i != 0 {
					fmt.Fprint(inv.Stdout, " ")
				}
				fmt.Fprint(inv.Stdout, col(count))
			}
			fmt.Fprintln(inv.Stdout)
		}

		var counts []*wcCount
		err := RunEachFileOrStdin(inv, files, func(name string, fd io.Reader) error {
			count, err := newWcCount(name, fd)
			if err != nil {
				return err
			}
			counts = append(counts, count)
			return nil
		})
		if err != nil {
			return err
		}

		total := &wcCount{name: "total"}
		for _, count := range counts {
			total.increment(count)
			displayCount(count)
		}
		if len(counts) > 1 {
			displayCount(total)
		}
		return nil
	})
}

var _ interp.BuiltinFunc = Wc

func init() {
	register("wc", Wc)
}
