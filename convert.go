// SPDX-License-Identifier: EPL-2.0

package pcmwav

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/ik5/pcmwav/audio"
	"github.com/ik5/pcmwav/formats/aiff"
	"github.com/ik5/pcmwav/formats/mp3"
	"github.com/ik5/pcmwav/formats/vorbis"
	"github.com/ik5/pcmwav/formats/wav"
)

// DefaultRegistry returns a registry with every bundled decoder.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("wav", wav.Decoder{})
	reg.Register("wave", wav.Decoder{})
	reg.Register("mp3", mp3.Decoder{})
	reg.Register("ogg", vorbis.Decoder{})
	reg.Register("oga", vorbis.Decoder{})
	reg.Register("aif", aiff.Decoder{})
	reg.Register("aiff", aiff.Decoder{})

	return reg
}

type options struct {
	format       wav.Format
	mono         bool
	foldSurround bool
	logger       *slog.Logger
}

// Option configures Convert and ConvertReader.
type Option func(*options)

// WithFormat selects the output sample format. Default is wav.PCM16.
func WithFormat(f wav.Format) Option {
	return func(o *options) { o.format = f }
}

// WithMono downmixes every input to a single channel.
func WithMono(mono bool) Option {
	return func(o *options) { o.mono = mono }
}

// WithFoldSurround controls whether inputs with more than two channels are
// downmixed to mono. When false they fail with
// wav.ErrUnsupportedChannelLayout. Default is true.
func WithFoldSurround(fold bool) Option {
	return func(o *options) { o.foldSurround = fold }
}

// WithLogger sets the logger for debug events. Nothing is logged by default.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func newOptions(opts []Option) *options {
	o := &options{
		format:       wav.PCM16,
		foldSurround: true,
		logger:       slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// Result is an encoded WAV file ready for delivery.
type Result struct {
	Data       []byte
	Name       string
	Descriptor wav.Descriptor
	Frames     int
	Duration   time.Duration
}

func (*Result) MIMEType() string  { return wav.MIMEType }
func (*Result) Extension() string { return wav.Extension }

// FileName is Name with the wav extension, or "audio.wav" without a name.
func (r *Result) FileName() string {
	name := r.Name
	if name == "" {
		name = "audio"
	}

	return name + "." + wav.Extension
}

func (r *Result) DurationString() string {
	return audio.FormatDuration(r.Duration)
}

// Convert drains src and encodes it as WAV. src is not closed.
func Convert(src audio.Source, opts ...Option) (*Result, error) {
	o := newOptions(opts)

	set, err := audio.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("decoding samples: %w", err)
	}

	return encode(set, o)
}

func encode(set *audio.SampleSet, o *options) (*Result, error) {
	o.logger.Debug("decoded",
		slog.Int("channels", set.NumChannels()),
		slog.Int("sample_rate", set.SampleRate),
		slog.Int("frames", set.Frames()),
	)

	channels := set.NumChannels()
	if o.mono || (o.foldSurround && channels > 2) {
		set = audio.Downmix(set)
		o.logger.Debug("downmixed", slog.Int("from_channels", channels))
	}

	data, d, err := wav.EncodeDescriptor(set, o.format)
	if err != nil {
		return nil, fmt.Errorf("encoding wav: %w", err)
	}

	o.logger.Debug("encoded",
		slog.String("format", o.format.String()),
		slog.Int("bytes", len(data)),
	)

	return &Result{
		Data:       data,
		Descriptor: d,
		Frames:     set.Frames(),
		Duration:   set.Duration(),
	}, nil
}

// ConvertReader decodes r with the decoder registered for name's extension
// and encodes the result. The returned Result is named after name without
// its directory and extension.
func ConvertReader(reg *audio.Registry, name string, r io.Reader, opts ...Option) (*Result, error) {
	dec, err := reg.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	src, err := dec.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	defer src.Close()

	res, err := Convert(src, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	res.Name = BaseName(name)

	return res, nil
}

// BaseName strips the directory and the last extension from name.
func BaseName(name string) string {
	base := filepath.Base(name)
	if base == "." || base == string(filepath.Separator) {
		return ""
	}

	return strings.TrimSuffix(base, filepath.Ext(base))
}
