package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sdptools",
	Short: "Extract and audition sound clips packed in SDP containers",
	Long: `sdptools - unpacks SDP game sound containers.

An SDP file holds a table of 64-byte attribute records followed by one
payload region with every clip's audio back to back. Clips are either raw
16-bit PCM or 4-bit ADPCM; both are exported as 16-bit PCM WAV.

Commands:
  - extract: Write every clip of a container as a WAV file
  - list: Print the attribute table of a container
  - play: Play one clip (or an exported WAV) through PortAudio`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output (debug logging)")
}

func setupLogging(verbose bool) {
	logLevel := slog.LevelInfo
	if verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}
