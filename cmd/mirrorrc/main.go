package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mirrorrc/mirrorrc/cmd/mirrorrc/commands"
)

var (
	// Flags
	configFile string
	debug      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "mirrorrc",
		Short: "A scheduled directory-mirror job driving an external copy tool",
		Long: `mirrorrc reads a list of source folders, mirrors each onto a remote
destination tree using the external copy tool, records per-folder outcomes,
and emits a notification with the run logs attached.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
			cmd.SetContext(zerolog.DefaultContextLogger.WithContext(cmd.Context()))
		},
	}

	addRootFlags(rootCmd)

	opts := &commands.RootOptions{ConfigFile: &configFile}
	rootCmd.AddCommand(
		commands.NewRunCmd(opts),
		commands.NewSetupCredentialsCmd(opts),
		commands.NewStatusCmd(opts),
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

// addRootFlags adds shared flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", ".mirrorrc.yaml", "config file path")
	cmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
}

// setupLogging configures zerolog based on flags
func setupLogging() {
	if debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log := zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
	})).With().Timestamp().Logger()
	zerolog.DefaultContextLogger = &log
}
