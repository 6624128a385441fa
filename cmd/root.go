package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"josephlewis.net/picosh/commands"
	"josephlewis.net/picosh/core/config"
	"josephlewis.net/picosh/core/interp"
)

var (
	cfgPath     string
	commandLine string
)

func loadConfig() (*config.Configuration, error) {
	if cfgPath == "" {
		return config.Default(), nil
	}
	return config.Load(afero.NewOsFs(), cfgPath)
}

// newSession builds the interpreter for one shell session: inherited
// process environment overlaid with the configured variables, working
// directory from the process, commands from the default registry.
func newSession(cfg *config.Configuration) *interp.Interpreter {
	env := interp.NewEnvironment()
	for _, entry := range cfg.Environ() {
		key, value, _ := strings.Cut(entry, "=")
		env.Setenv(key, value)
	}
	return interp.New(env, commands.DefaultRegistry())
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "picosh",
	Short: "A small interactive shell.",
	Long:  `A command interpreter with pipelines, variables and redirection parsing.`,
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		in := newSession(cfg)

		if commandLine != "" {
			code, err := in.Run(commandLine, cmd.OutOrStdout())
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "picosh: %v\n", err)
				sessionStatus = errorStatus(err)
				return nil
			}
			sessionStatus = code
			return nil
		}

		sessionStatus = runREPL(cmd, in, cfg)
		return nil
	},
}

// sessionStatus becomes the process exit status once the session ends.
var sessionStatus int

// errorStatus maps an execution error to an exit status, using the
// shell convention of 127 for unknown commands.
func errorStatus(err error) int {
	var notFound *interp.CommandNotFoundError
	if errors.As(err, &notFound) {
		return 127
	}
	return 1
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
	os.Exit(sessionStatus)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config path (empty uses the built-in defaults)")
	rootCmd.Flags().StringVarP(&commandLine, "command", "c", "", "run a single command line and exit")
}
