package pipeline

import (
	"context"
	"errors"
	"image"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"qrpayload/internal/cidutil"
	"qrpayload/internal/config"
	"qrpayload/internal/history"
	"qrpayload/internal/imagefile"
	"qrpayload/internal/logging"
	"qrpayload/internal/payload"
	"qrpayload/internal/persist"
	"qrpayload/internal/services"
	"qrpayload/internal/services/zxing"
)

// Recorder stores a finished run. history.Store satisfies it.
type Recorder interface {
	Record(ctx context.Context, run history.Run) error
}

// Writer persists payload bytes. persist.Persister satisfies it.
type Writer interface {
	Write(ctx context.Context, target persist.Target, data []byte) error
}

// ImageLoader opens an input image. imagefile.Load satisfies it.
type ImageLoader func(path string) (image.Image, string, error)

// Request describes one invocation.
type Request struct {
	Mode       persist.Mode
	ImagePath  string
	OutputPath string
}

// Result summarises a completed run.
type Result struct {
	RunID     string
	Raw       string
	Mode      persist.Mode
	Kind      payload.Kind
	Layers    int
	Bytes     int
	ContentID string
	State     State
	Output    string
}

// Pipeline wires the collaborators for one run.
type Pipeline struct {
	extractor zxing.Extractor
	decoder   payload.Decoder
	writer    Writer
	recorder  Recorder
	load      ImageLoader
	logger    *slog.Logger
	now       func() time.Time
}

// Option customises a Pipeline.
type Option func(*Pipeline)

// WithRecorder records every run.
func WithRecorder(r Recorder) Option {
	return func(p *Pipeline) { p.recorder = r }
}

// WithImageLoader replaces the file-based image loader.
func WithImageLoader(load ImageLoader) Option {
	return func(p *Pipeline) {
		if load != nil {
			p.load = load
		}
	}
}

// WithLogger sets the base logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = logger }
}

// New constructs a Pipeline from explicit collaborators.
func New(extractor zxing.Extractor, decoder payload.Decoder, writer Writer, opts ...Option) *Pipeline {
	p := &Pipeline{
		extractor: extractor,
		decoder:   decoder,
		writer:    writer,
		load:      imagefile.Load,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.logger = logging.NewComponentLogger(p.logger, "pipeline")
	return p
}

// NewFromConfig wires the production extractor, decoder and persister for cfg.
func NewFromConfig(cfg *config.Config, opts ...Option) *Pipeline {
	extractor := zxing.New(
		zxing.WithTryHarder(cfg.Decode.TryHarder),
		zxing.WithCharacterSet(cfg.Decode.CharacterSet),
	)
	return New(extractor, payload.NewDecoder(cfg.Decode.MaxDepth), persist.NewFromConfig(cfg), opts...)
}

type run struct {
	ctx    context.Context
	logger *slog.Logger
	state  State
	result Result
}

// Run executes req. The returned Result is populated up to the state reached,
// and a non-nil error is always a *Error.
func (p *Pipeline) Run(ctx context.Context, req Request) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	id := uuid.NewString()
	ctx = services.WithRunID(ctx, id)
	started := p.now()

	r := &run{
		ctx:    ctx,
		logger: logging.WithContext(ctx, p.logger),
		state:  StateStart,
		result: Result{RunID: id, Mode: req.Mode, Output: req.OutputPath, State: StateStart},
	}
	r.logger.Debug("run started",
		logging.String(logging.FieldEventType, "run_start"),
		logging.String("mode", req.Mode.String()),
		logging.String("input", req.ImagePath),
		logging.String("output", req.OutputPath),
	)

	err := p.execute(r, req)
	if err != nil {
		err = &Error{State: r.state, Err: err}
		r.result.State = StateFailed
		logging.ErrorWithContext(r.logger, "run failed", "run_failure",
			logging.String(logging.FieldStage, r.state.stage()),
			logging.String("failed_state", r.state.String()),
			logging.String("error_kind", services.ErrorKind(err)),
			logging.String(logging.FieldErrorHint, hintFor(err)),
			logging.Error(err),
		)
	} else {
		r.logger.Info("payload written",
			logging.String(logging.FieldEventType, "run_complete"),
			logging.String("mode", req.Mode.String()),
			logging.String("kind", r.kindLabel()),
			logging.Int("layers", r.result.Layers),
			logging.Int("bytes", r.result.Bytes),
			logging.String("content_id", r.result.ContentID),
			logging.String("output", req.OutputPath),
		)
	}

	p.record(ctx, r, req, started, err)
	return r.result, err
}

func (p *Pipeline) execute(r *run, req Request) error {
	raw, err := p.extract(r, req.ImagePath)
	if err != nil {
		return err
	}
	r.advance(StateExtracted)
	r.result.Raw = raw

	var data []byte
	if req.Mode == persist.Text {
		// Text mode never consults the classifier.
		data = []byte(raw)
		r.advance(StateClassified)
		r.advance(StateDecoded)
	} else {
		c := p.decoder.Classify(raw)
		r.result.Kind = c.Kind
		r.result.Layers = c.Layers
		r.advance(StateClassified)
		r.logger.Debug("payload classified",
			logging.String("kind", c.Kind.String()),
			logging.Int("layers", c.Layers),
			logging.Int("raw_length", len(raw)),
		)

		data, err = p.decoder.Decode(raw, c)
		if err != nil {
			return services.Wrap(nil, "decode", c.Kind.String(), "", err)
		}
		r.advance(StateDecoded)
	}

	r.result.Bytes = len(data)
	r.result.ContentID = cidutil.CIDv1RawSHA256(data)

	stageCtx := services.WithStage(r.ctx, StateDecoded.stage())
	if err := p.writer.Write(stageCtx, persist.Target{Path: req.OutputPath, Mode: req.Mode}, data); err != nil {
		return err
	}
	r.advance(StatePersisted)
	return nil
}

func (p *Pipeline) extract(r *run, path string) (string, error) {
	if err := r.ctx.Err(); err != nil {
		return "", services.Wrap(nil, "extract", "", "", err)
	}
	img, format, err := p.load(path)
	if err != nil {
		return "", err
	}
	r.logger.Debug("image loaded",
		logging.String("format", format),
		logging.Int("width", img.Bounds().Dx()),
		logging.Int("height", img.Bounds().Dy()),
	)
	raw, err := p.extractor.Extract(services.WithStage(r.ctx, "extract"), img)
	if err != nil {
		return "", err
	}
	return raw, nil
}

func (r *run) advance(next State) {
	r.state = next
	r.result.State = next
}

func (r *run) kindLabel() string {
	if r.result.Mode == persist.Text {
		return "text"
	}
	return r.result.Kind.String()
}

func (p *Pipeline) record(ctx context.Context, r *run, req Request, started time.Time, runErr error) {
	if p.recorder == nil {
		return
	}
	entry := history.Run{
		ID:         r.result.RunID,
		StartedAt:  started,
		FinishedAt: p.now(),
		Input:      req.ImagePath,
		Output:     req.OutputPath,
		Mode:       req.Mode.String(),
		State:      r.result.State.String(),
		Layers:     r.result.Layers,
		Bytes:      r.result.Bytes,
	}
	if r.state >= StateClassified {
		entry.Kind = r.kindLabel()
	}
	if r.state >= StatePersisted {
		entry.ContentID = r.result.ContentID
	}
	if runErr != nil {
		entry.ErrorKind = services.ErrorKind(runErr)
		entry.Error = runErr.Error()
	}
	// A failed insert never changes the run outcome.
	if err := p.recorder.Record(context.WithoutCancel(ctx), entry); err != nil {
		r.logger.Warn("run history not recorded",
			logging.String(logging.FieldEventType, "history_write_failed"),
			logging.String(logging.FieldErrorHint, "check the state directory"),
			logging.Error(err),
		)
	}
}

func hintFor(err error) string {
	switch {
	case errors.Is(err, services.ErrImageRead):
		return "check that the input path exists and is a PNG, JPEG, GIF or BMP image"
	case errors.Is(err, services.ErrQRNotFound):
		return "the image holds no readable QR symbol; rescan at higher resolution"
	case errors.Is(err, services.ErrIO):
		return "check that the output directory is writable"
	case services.ErrorKind(err) == "length":
		return "the bit-string payload is truncated; rerun with binary-mode false to keep the raw text"
	default:
		return "rerun with --verbose for details"
	}
}
