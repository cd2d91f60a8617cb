package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/drgolem/sdptools/pkg/audioplayer"
	"github.com/drgolem/sdptools/pkg/types"

	"github.com/drgolem/go-portaudio/portaudio"
	"github.com/spf13/cobra"
)

var (
	// Flags for play command
	playEntry     string
	playDeviceIdx int
	playFrames    int
)

var playCmd = &cobra.Command{
	Use:   "play <input.sdp|clip.wav>",
	Short: "Play one clip through PortAudio",
	Long: `Decode a single SDP entry (or an exported WAV file) and play it.

Examples:
  # Play the first entry
  sdptools play voices.sdp

  # Play an entry by name on device 0
  sdptools play voices.sdp -e greeting -d 0

  # Play an entry by index
  sdptools play voices.sdp -e 12`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)

	defaults := audioplayer.DefaultConfig()
	playCmd.Flags().StringVarP(&playEntry, "entry", "e", "", "Entry name or index (default: first entry)")
	playCmd.Flags().IntVarP(&playDeviceIdx, "device", "d", defaults.DeviceIndex, "Audio output device index")
	playCmd.Flags().IntVarP(&playFrames, "frames", "f", defaults.FramesPerBuffer, "PortAudio frames per buffer")
}

func runPlay(cmd *cobra.Command, args []string) error {
	fileName := args[0]

	if playFrames <= 0 {
		return fmt.Errorf("invalid frames value: %d", playFrames)
	}

	slog.Info("Initializing PortAudio")
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize PortAudio: %w", err)
	}
	defer portaudio.Terminate()

	slog.Debug("PortAudio initialized", "version", portaudio.GetVersion())

	player := audioplayer.NewPlayer(audioplayer.Config{
		FramesPerBuffer: playFrames,
		DeviceIndex:     playDeviceIdx,
	})

	if err := player.OpenFile(fileName, playEntry); err != nil {
		return err
	}

	if err := player.Play(); err != nil {
		player.Stop()
		return err
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	statusDone := make(chan struct{})
	go monitorPlayback(player, statusDone)

	done := make(chan struct{})
	go func() {
		player.Wait()
		close(done)
	}()

	select {
	case <-done:
		slog.Info("Playback completed", "file", fileName)
	case sig := <-sigChan:
		slog.Info("Signal received, stopping", "signal", sig)
	}
	close(statusDone)

	return player.Stop()
}

// monitorPlayback logs playback progress every 2 seconds
func monitorPlayback(monitor types.PlaybackMonitor, done chan struct{}) {
	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			status := monitor.GetPlaybackStatus()
			slog.Info("Playback status",
				"file", status.FileName,
				"format", fmt.Sprintf("%d:%d:%d", status.SampleRate, status.BitsPerSample, status.Channels),
				"played", formatFrames(status.PlayedSamples, status.SampleRate),
				"total", formatFrames(status.TotalSamples, status.SampleRate),
				"elapsed", formatDuration(status.ElapsedTime))
		case <-done:
			return
		}
	}
}

func formatFrames(frames uint64, sampleRate int) string {
	if sampleRate <= 0 {
		return formatDuration(0)
	}
	return formatDuration(time.Duration(frames) * time.Second / time.Duration(sampleRate))
}

// formatDuration renders d as hh:mm:ss.msec
func formatDuration(d time.Duration) string {
	ms := d.Milliseconds()
	return fmt.Sprintf("%02d:%02d:%02d.%03d", ms/3600000, (ms%3600000)/60000, (ms%60000)/1000, ms%1000)
}
