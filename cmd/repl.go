package cmd

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"
	"josephlewis.net/picosh/core/config"
	"josephlewis.net/picosh/core/interp"
)

var promptColor = color.New(color.FgGreen)

// prompt renders the configured prompt string. `\w` expands to the
// working directory with $HOME shortened to `~`, `\u` to $USER and
// `\h` to the hostname.
func prompt(cfg *config.Configuration, env *interp.Environment) string {
	out := cfg.Prompt

	if strings.Contains(out, `\w`) {
		pwd := env.Dir
		if home := env.Getenv("HOME"); home != "" && strings.HasPrefix(pwd, home) {
			pwd = "~" + strings.TrimPrefix(pwd, home)
		}
		out = strings.ReplaceAll(out, `\w`, pwd)
	}
	out = strings.ReplaceAll(out, `\u`, env.Getenv("USER"))
	if strings.Contains(out, `\h`) {
		host, _ := os.Hostname()
		out = strings.ReplaceAll(out, `\h`, host)
	}

	return promptColor.Sprint(out)
}

func historyFile(cfg *config.Configuration, env *interp.Environment) string {
	if cfg.HistoryFile == "" {
		return ""
	}
	home := env.Getenv("HOME")
	if home == "" {
		return ""
	}
	return filepath.Join(home, cfg.HistoryFile)
}

// runREPL reads lines until end of input or an exit request, returning
// the status of the last command run.
func runREPL(cmd *cobra.Command, in *interp.Interpreter, cfg *config.Configuration) int {
	isTerminal := term.IsTerminal(int(os.Stdin.Fd()))

	rlCfg := &readline.Config{
		Stdin:       readline.NewCancelableStdin(os.Stdin),
		Stdout:      cmd.OutOrStdout(),
		Stderr:      cmd.ErrOrStderr(),
		HistoryFile: historyFile(cfg, in.Env),

		FuncIsTerminal: func() bool {
			return isTerminal
		},
	}

	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		log.Printf("picosh: %v", err)
		return 1
	}
	defer rl.Close()

	lastStatus := 0
	for {
		// Piped input gets no prompt, like sh reading a script.
		if isTerminal {
			rl.SetPrompt(prompt(cfg, in.Env))
		}
		line, err := rl.Readline()

		switch {
		case err == io.EOF:
			return lastStatus // Input closed, quit.

		case err == readline.ErrInterrupt:
			// ctrl-C discards the partial line.
			lastStatus = 130
			continue

		case err != nil:
			log.Printf("picosh: %v", err)
			continue

		case strings.TrimSpace(line) == "":
			continue
		}

		code, err := in.Run(line, cmd.OutOrStdout())
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "picosh: %v\n", err)
			lastStatus = errorStatus(err)
			continue
		}
		lastStatus = code

		if in.Env.ExitRequested {
			return lastStatus
		}
	}
}
