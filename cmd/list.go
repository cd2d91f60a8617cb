package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/drgolem/sdptools/pkg/sdp"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list <input.sdp>",
	Short: "Print the attribute table of an SDP container",
	Long: `Print one line per attribute record: index, id, name, channel count,
encoding, sample rate, payload offset and size, and attenuation.

Nothing is decoded or written.`,
	Args: cobra.ExactArgs(1),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	container, err := sdp.ReadFile(args[0])
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tID\tNAME\tCHANNELS\tENCODING\tRATE\tOFFSET\tSIZE\tATTENUATION")
	for i := range container.Records {
		r := &container.Records[i]
		encoding := "pcm"
		if r.Compressed() {
			encoding = "adpcm"
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%d\t%s\t%d\t%d\t%d\t%d\n",
			i, r.ID, r.Name(), r.Channels(), encoding, r.SampleRate, r.Offset, r.Size, r.Attenuation)
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%d entries, payload region at %d, file size %d\n",
		len(container.Records), container.PayloadStart(), container.Size())
	return nil
}
