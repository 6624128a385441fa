package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"regexp"

	"josephlewis.net/picosh/core/interp"
)

// Grep implements the POSIX grep command.
//
// https://pubs.opengroup.org/onlinepubs/9699919799.2018edition/
func Grep(inv *interp.Invocation) (int, error) {
	cmd := &SimpleCommand{
		Use:   "grep [-inv] PATTERN [FILE]...",
		Short: "Search files for text matching a pattern.",
	}

	invert := cmd.Flags().Bool('v', "Select lines not matching any of the specified patterns.")
	ignoreCase := cmd.Flags().Bool('i', "Perform pattern matching in searches without regard to case.")
	showLineNumbers := cmd.Flags().Bool('n', "Show line numbers.")

	return cmd.RunE(inv, func() error {
		args := cmd.Flags().Args()
		if len(args) == 0 {
			return errors.New("missing argument PATTERN")
		}

		// NOTE: Officially, the PATTERN argument supports multiple patterns delimited by newlines.
		// It's a very rare case so we'll ignore it here.
		pattern := args[0]
		if *ignoreCase {
			pattern = "(?i)" + pattern
		}
		regex, err := regexp.Compile(pattern)
		if err != nil {
			return err
		}

		files := args[1:]
		showFileName := len(files) > 1
		return RunEachFileOrStdin(inv, files, func(name string, fd io.Reader) error {
			scanner := bufio.NewScanner(fd)
			lineNo := 1
			for scanner.Scan() {
				line := scanner.Bytes()
				lineMatches := regex.Match(line)

				if (lineMatches && !*invert) || (!lineMatches && *invert) {
					if showFileName {
						fmt.Fprintf(inv.Stdout, "%s:", name)
					}

					if *showLineNumbers {
						fmt.Fprintf(inv.Stdout, "%d:", lineNo)
					}

					fmt.Fprintf(inv.Stdout, "%s\n", line)
				}
				lineNo++
			}

			return nil
		})
	})
}

var _ interp.BuiltinFunc = Grep

func init() {
	register("grep", Grep)
}
