package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/drgolem/sdptools/internal/extractor"
	"github.com/drgolem/sdptools/pkg/transform"

	"github.com/spf13/cobra"
)

var (
	// Flags for extract command
	extractOutDir   string
	extractJobs     int
	extractResample int
	extractMono     bool
)

var extractCmd = &cobra.Command{
	Use:   "extract <input.sdp>",
	Short: "Export every clip of an SDP container as WAV",
	Long: `Export every clip of an SDP container as a 16-bit PCM WAV file.

ADPCM clips are decoded, raw PCM clips are copied verbatim. Each file is named
after its record (wave_<index> when the name is empty). Entries whose payload
lies outside the file, or raw PCM with an odd byte count, are skipped and
reported; the run still succeeds.

Examples:
  # Extract into ./voices
  sdptools extract voices.sdp

  # Extract into a specific directory using 4 workers
  sdptools extract voices.sdp -d out/voices -j 4

  # Downmix to mono and resample to 48kHz
  sdptools extract voices.sdp --mono --resample 48000`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVarP(&extractOutDir, "dir", "d", "", "Output directory (default: input file name without extension)")
	extractCmd.Flags().IntVarP(&extractJobs, "jobs", "j", 1, "Number of entries processed concurrently")
	extractCmd.Flags().IntVar(&extractResample, "resample", 0, "Resample output to this rate in Hz (0 keeps the record rate)")
	extractCmd.Flags().BoolVar(&extractMono, "mono", false, "Convert stereo clips to mono (average channels)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	inFileName := args[0]

	if _, err := os.Stat(inFileName); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inFileName)
	}

	if extractJobs < 1 {
		return fmt.Errorf("invalid jobs value: %d (must be >= 1)", extractJobs)
	}
	if extractResample < 0 || extractResample > transform.MaxSampleRate {
		return fmt.Errorf("invalid sample rate: %d (valid range 1-%d, 0 to keep)", extractResample, transform.MaxSampleRate)
	}

	slog.Debug("Extraction starting",
		"input_file", inFileName,
		"output_dir", extractOutDir,
		"jobs", extractJobs,
		"resample", extractResample,
		"mono", extractMono)

	report, err := extractor.Run(inFileName, extractor.Options{
		OutputDir:    extractOutDir,
		Jobs:         extractJobs,
		ResampleRate: extractResample,
		Mono:         extractMono,
		Logger:       slog.Default(),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d of %d entries to %s\n", report.Exported, report.Found, report.OutputDir)
	return nil
}
