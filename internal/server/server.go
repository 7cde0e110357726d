// SPDX-License-Identifier: EPL-2.0

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/ik5/pcmwav"
	"github.com/ik5/pcmwav/audio"
	"github.com/ik5/pcmwav/formats/wav"
	"github.com/ik5/pcmwav/internal/config"
)

// ---------------------------------------------------------------------------
// Functional options
// ---------------------------------------------------------------------------

type options struct {
	maxBodyBytes   int64
	workers        int
	requestTimeout time.Duration
	encode         []pcmwav.Option
	logger         *slog.Logger
}

func defaultOptions() options {
	return options{
		maxBodyBytes:   64 << 20,
		workers:        4,
		requestTimeout: 60 * time.Second,
		logger:         slog.Default(),
	}
}

// Option configures the HTTP handler.
type Option func(*options)

// WithMaxBodyBytes sets the largest accepted upload for POST /convert.
func WithMaxBodyBytes(n int64) Option {
	return func(o *options) { o.maxBodyBytes = n }
}

// WithWorkers sets the maximum number of concurrent conversions.
// Zero or less disables the limit.
func WithWorkers(n int) Option {
	return func(o *options) { o.workers = n }
}

// WithRequestTimeout sets the per-request conversion deadline. A value
// <= 0 disables the deadline.
func WithRequestTimeout(d time.Duration) Option {
	return func(o *options) { o.requestTimeout = d }
}

// WithEncodeOptions sets the conversion defaults. Query parameters of a
// request are applied after them.
func WithEncodeOptions(opts ...pcmwav.Option) Option {
	return func(o *options) { o.encode = opts }
}

// WithLogger sets the slog.Logger used for request logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// ---------------------------------------------------------------------------
// handler
// ---------------------------------------------------------------------------

type handler struct {
	reg  *audio.Registry
	opts options
	sem  chan struct{} // semaphore for worker pool
	log  *slog.Logger
}

// NewHandler returns an http.Handler that serves /health, /formats, and
// POST /convert.
func NewHandler(reg *audio.Registry, optFns ...Option) http.Handler {
	opts := defaultOptions()
	for _, fn := range optFns {
		fn(&opts)
	}

	h := &handler{
		reg:  reg,
		opts: opts,
		log:  opts.logger,
	}
	if opts.workers > 0 {
		h.sem = make(chan struct{}, opts.workers)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", h.handleHealth)
	mux.HandleFunc("/formats", h.handleFormats)
	mux.HandleFunc("/convert", h.handleConvert)

	return mux
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) handleFormats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	writeJSON(w, http.StatusOK, map[string][]string{"formats": h.reg.Formats()})
}

// extByMediaType names inputs that arrive without a name query parameter.
var extByMediaType = map[string]string{
	"audio/wav":    ".wav",
	"audio/wave":   ".wav",
	"audio/x-wav":  ".wav",
	"audio/mpeg":   ".mp3",
	"audio/mp3":    ".mp3",
	"audio/ogg":    ".ogg",
	"audio/vorbis": ".ogg",
	"audio/aiff":   ".aiff",
	"audio/x-aiff": ".aiff",
}

// inputName picks the name that selects the decoder.
func inputName(r *http.Request) (string, error) {
	if name := r.URL.Query().Get("name"); name != "" {
		return name, nil
	}

	ct := r.Header.Get("Content-Type")
	if ct == "" {
		return "", errors.New("name query parameter or an audio Content-Type is required")
	}

	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return "", fmt.Errorf("invalid Content-Type: %w", err)
	}

	ext, ok := extByMediaType[mt]
	if !ok {
		return "", fmt.Errorf("unsupported Content-Type %q", mt)
	}

	return "audio" + ext, nil
}

// encodeOptions merges the handler defaults with the query parameters.
func (h *handler) encodeOptions(r *http.Request) ([]pcmwav.Option, error) {
	opts := append([]pcmwav.Option(nil), h.opts.encode...)
	opts = append(opts, pcmwav.WithLogger(h.log))

	q := r.URL.Query()

	if v := q.Get("format"); v != "" {
		f, err := wav.ParseFormat(v)
		if err != nil {
			return nil, err
		}
		opts = append(opts, pcmwav.WithFormat(f))
	}

	if v := q.Get("mono"); v != "" {
		mono, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid mono value %q", v)
		}
		opts = append(opts, pcmwav.WithMono(mono))
	}

	return opts, nil
}

func (h *handler) handleConvert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if r.Body == nil || r.Body == http.NoBody {
		writeError(w, http.StatusBadRequest, "request body is required")
		return
	}

	name, err := inputName(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.reg.Lookup(name); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("%s: %v", name, err))
		return
	}

	encOpts, err := h.encodeOptions(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.opts.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("body exceeds maximum size of %d bytes", h.opts.maxBodyBytes))
			return
		}
		writeError(w, http.StatusBadRequest, "reading body: "+err.Error())
		return
	}

	// Acquire a worker slot, honour context cancellation while waiting.
	if h.sem != nil {
		select {
		case h.sem <- struct{}{}:
		case <-r.Context().Done():
			writeError(w, http.StatusServiceUnavailable, "request cancelled while waiting for worker")
			return
		}
	}

	ctx, cancel := h.conversionContext(r.Context())
	defer cancel()

	type outcome struct {
		res *pcmwav.Result
		err error
	}
	done := make(chan outcome, 1)

	start := time.Now()
	// The slot is released by the conversion itself, so abandoned work
	// still counts against the limit until it returns.
	go func() {
		if h.sem != nil {
			defer func() { <-h.sem }()
		}
		res, err := pcmwav.ConvertReader(h.reg, name, bytes.NewReader(body), encOpts...)
		done <- outcome{res, err}
	}()

	var out outcome
	select {
	case out = <-done:
	case <-ctx.Done():
		h.log.WarnContext(r.Context(), "conversion timed out",
			slog.String("name", name),
			slog.Int("input_bytes", len(body)),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		writeError(w, http.StatusGatewayTimeout, "conversion timed out")
		return
	}
	durationMS := time.Since(start).Milliseconds()

	if out.err != nil {
		h.log.ErrorContext(r.Context(), "conversion failed",
			slog.String("name", name),
			slog.Int("input_bytes", len(body)),
			slog.Int64("duration_ms", durationMS),
			slog.String("error", out.err.Error()),
		)
		writeError(w, http.StatusUnprocessableEntity, out.err.Error())
		return
	}

	res := out.res
	h.log.InfoContext(r.Context(), "conversion complete",
		slog.String("name", name),
		slog.Int("input_bytes", len(body)),
		slog.Int("wav_bytes", len(res.Data)),
		slog.String("audio_duration", res.DurationString()),
		slog.Int64("duration_ms", durationMS),
	)

	w.Header().Set("Content-Type", res.MIMEType())
	w.Header().Set("Content-Length", strconv.Itoa(len(res.Data)))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": res.FileName()}))
	w.Header().Set("X-Audio-Duration", res.DurationString())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// ---------------------------------------------------------------------------
// Server
// ---------------------------------------------------------------------------

// Server wires the HTTP handler into a net/http.Server with graceful shutdown.
type Server struct {
	cfg             config.Config
	reg             *audio.Registry
	logger          *slog.Logger
	shutdownTimeout time.Duration
}

func New(cfg config.Config, reg *audio.Registry, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	return &Server{
		cfg:             cfg,
		reg:             reg,
		logger:          logger,
		shutdownTimeout: 30 * time.Second,
	}
}

// WithShutdownTimeout overrides the graceful-shutdown drain period.
func (s *Server) WithShutdownTimeout(d time.Duration) *Server {
	s.shutdownTimeout = d
	return s
}

// Handler builds the request handler from the server configuration.
func (s *Server) Handler() (http.Handler, error) {
	format, err := wav.ParseFormat(s.cfg.Encode.Format)
	if err != nil {
		return nil, err
	}

	return NewHandler(s.reg,
		WithWorkers(s.cfg.Server.Workers),
		WithMaxBodyBytes(s.cfg.Server.MaxBodyBytes),
		WithRequestTimeout(s.cfg.Server.RequestTimeout),
		WithLogger(s.logger),
		WithEncodeOptions(
			pcmwav.WithFormat(format),
			pcmwav.WithMono(s.cfg.Encode.Mono),
			pcmwav.WithFoldSurround(s.cfg.Encode.FoldSurround),
		),
	), nil
}

// Start serves until ctx is cancelled, then drains open requests.
func (s *Server) Start(ctx context.Context) error {
	h, err := s.Handler()
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              s.cfg.Server.ListenAddr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	s.logger.InfoContext(ctx, "listening", slog.String("addr", s.cfg.Server.ListenAddr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http listen: %w", err)
	}
}

// conversionContext bounds a conversion by the request timeout, if any.
func (h *handler) conversionContext(parent context.Context) (context.Context, context.CancelFunc) {
	if h.opts.requestTimeout <= 0 {
		return context.WithCancel(parent)
	}

	return context.WithTimeout(parent, h.opts.requestTimeout)
}
