// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ik5/pcmwav/audio"
	"github.com/ik5/pcmwav/formats/wav"
)

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <file.wav>",
		Short: "Print the header fields of a WAV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			return inspect(cmd.OutOrStdout(), data)
		},
	}
}

func inspect(w io.Writer, data []byte) error {
	set, d, err := wav.Parse(data)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintf(w,
		"format:       %s\n"+
			"channels:     %d\n"+
			"sample rate:  %d\n"+
			"bit depth:    %d\n"+
			"block align:  %d\n"+
			"byte rate:    %d\n"+
			"frames:       %d\n"+
			"data bytes:   %d\n"+
			"duration:     %s\n",
		d.Format, d.NumChannels, d.SampleRate, d.BitDepth, d.BlockAlign,
		d.ByteRate, d.Frames(), d.DataByteLength, audio.FormatDuration(set.Duration()),
	)

	return err
}
