// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/cobra"

	"github.com/ik5/pcmwav"
	"github.com/ik5/pcmwav/audio"
	"github.com/ik5/pcmwav/internal/config"
	"github.com/ik5/pcmwav/internal/deliver"
)

func newConvertCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "convert <input>...",
		Short: "Convert audio files to WAV and deliver them",
		Long: `Convert decodes each input by its extension and encodes it as WAV.
Results go to --out-dir, or to S3 when --s3-bucket is set. One line per
input is printed: the delivered location and the audio duration.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			return runConvert(cmd.Context(), cfg, newSink(cfg), args, cmd.OutOrStdout())
		},
	}
}

func newSink(cfg config.Config) deliver.Sink {
	if cfg.S3.Bucket != "" {
		return deliver.NewS3Sink(deliver.NewS3Client(cfg.S3), cfg.S3.Bucket, cfg.S3.Prefix)
	}

	return deliver.FileSink{Dir: cfg.Output.Dir}
}

type convertResult struct {
	location string
	duration string
}

// runConvert converts inputs on up to cfg.Output.Jobs goroutines. Every
// input is attempted; the printed lines keep the order of inputs and
// failures are joined into the returned error.
func runConvert(ctx context.Context, cfg config.Config, sink deliver.Sink, inputs []string, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	opts, err := encodeOptions(cfg)
	if err != nil {
		return err
	}

	reg := pcmwav.DefaultRegistry()
	results := make([]*convertResult, len(inputs))

	p := pool.New().WithErrors().WithMaxGoroutines(max(cfg.Output.Jobs, 1))
	for i, input := range inputs {
		p.Go(func() error {
			res, err := convertFile(ctx, reg, sink, input, opts)
			if err != nil {
				slog.ErrorContext(ctx, "convert failed", slog.String("input", input), slog.String("error", err.Error()))
				return err
			}
			results[i] = res
			return nil
		})
	}
	err = p.Wait()

	for _, res := range results {
		if res != nil {
			_, _ = fmt.Fprintf(out, "%s\t%s\n", res.location, res.duration)
		}
	}

	return err
}

func convertFile(ctx context.Context, reg *audio.Registry, sink deliver.Sink, input string, opts []pcmwav.Option) (*convertResult, error) {
	f, err := os.Open(input)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	res, err := pcmwav.ConvertReader(reg, input, f, opts...)
	if err != nil {
		return nil, err
	}

	loc, err := sink.Deliver(ctx, res.FileName(), res.MIMEType(), res.Data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", input, err)
	}

	slog.InfoContext(ctx, "converted",
		slog.String("input", input),
		slog.String("location", loc),
		slog.Int("frames", res.Frames),
		slog.Int("bytes", len(res.Data)),
	)

	return &convertResult{location: loc, duration: res.DurationString()}, nil
}
