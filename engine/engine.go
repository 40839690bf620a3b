// Package engine runs clustering requests and reports them as a message stream.
//
// Stream contract:
//
//	Zero or more TypeProgress messages while the similarity graph is built,
//	with a non-decreasing Percent that is emitted only when it changes. Then
//	exactly one terminal message: TypeResult on success, TypeFailed on any
//	error. Nothing follows the terminal message and the channel is closed.
//
// Every request gets its own metric instance, so the sentence tokenization
// cache lives exactly as long as the request.
package engine

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/katalvlaran/simcluster/cluster"
	"github.com/katalvlaran/simcluster/core"
	"github.com/katalvlaran/simcluster/divide"
	"github.com/katalvlaran/simcluster/metric"
	"github.com/katalvlaran/simcluster/record"
	"github.com/rs/zerolog"
)

// Engine executes requests. The zero value is not usable; call New.
type Engine struct {
	log zerolog.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// New returns an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{log: zerolog.Nop()}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Run starts req in its own goroutine and returns its message stream.
// The caller must drain the channel until it is closed. Cancelling ctx
// aborts graph construction and yields a TypeFailed message.
func (e *Engine) Run(ctx context.Context, req Request) <-chan Message {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	out := make(chan Message, 1)

	go func() {
		defer close(out)

		emit := func(p Progress) {
			select {
			case out <- Message{Type: TypeProgress, RequestID: req.ID, Progress: p}:
			case <-ctx.Done():
			}
		}
		groups, err := e.process(ctx, req, emit)
		if err != nil {
			out <- Message{Type: TypeFailed, RequestID: req.ID, Err: err}
			return
		}
		out <- Message{Type: TypeResult, RequestID: req.ID, Groups: groups}
	}()

	return out
}

// Collect drains a stream, returning the progress messages and the terminal one.
func Collect(ch <-chan Message) (progress []Progress, terminal Message) {
	for m := range ch {
		if m.Terminal() {
			terminal = m
			continue
		}
		progress = append(progress, m.Progress)
	}

	return progress, terminal
}

// process runs req synchronously. A panic anywhere below is reported as an error.
func (e *Engine) process(ctx context.Context, req Request, emit func(Progress)) (groups [][]record.Record, err error) {
	log := e.log.With().Str("request", req.ID).Logger()
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			groups, err = nil, fmt.Errorf("engine: panic: %v", r)
		}
		if err != nil {
			log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("Request failed")
		}
	}()

	mode, err := validate(req)
	if err != nil {
		return nil, err
	}
	kind := metric.ParseKind(req.Method)
	fields := req.Fields
	if len(fields) == 0 {
		fields = metric.DefaultFields
	}

	log.Debug().
		Int("records", len(req.Characters)).
		Str("method", kind.String()).
		Str("mode", string(mode)).
		Strs("fields", fields).
		Msg("Request started")

	items := make([]any, len(req.Characters))
	for i, r := range req.Characters {
		items[i] = r
	}
	cmp := metric.New(kind)
	tr := &tracker{emit: emit}
	set, err := cluster.New(items, metric.Aggregate(fields, cmp),
		core.WithContext(ctx), core.WithProgress(tr.update))
	if err != nil {
		return nil, err
	}

	raw, err := query(set, mode, req)
	if err != nil {
		return nil, err
	}
	groups = make([][]record.Record, len(raw))
	for i, g := range raw {
		groups[i] = make([]record.Record, len(g))
		for j, it := range g {
			groups[i][j] = it.(record.Record)
		}
	}

	ev := log.Info().
		Int("groups", len(groups)).
		Int("evaluations", set.Graph().EdgeCount()).
		Dur("elapsed", time.Since(start))
	if so, ok := cmp.(*metric.SentenceOverlap); ok {
		hits, misses, size := so.Cache().Stats()
		ev = ev.Int("cacheHits", hits).Int("cacheMisses", misses).Int("cacheSize", size)
	}
	ev.Msg("Request finished")

	return groups, nil
}

func validate(req Request) (Mode, error) {
	mode, err := ParseMode(req.Mode)
	if err != nil {
		return "", err
	}
	if mode == ModeSimilar && (math.IsNaN(req.Threshold) || req.Threshold < 0 || req.Threshold > 1) {
		return "", fmt.Errorf("%w: got %v", ErrBadThreshold, req.Threshold)
	}
	if mode.Counted() && req.Count < 1 {
		return "", fmt.Errorf("%w: got %d for mode %s", ErrBadCount, req.Count, mode)
	}
	if req.SearchDepth < 0 {
		return "", fmt.Errorf("%w: got %d", ErrBadDepth, req.SearchDepth)
	}

	return mode, nil
}

func query(set *cluster.Set, mode Mode, req Request) ([][]any, error) {
	depth := divide.WithSearchDepth(req.SearchDepth)
	switch mode {
	case ModeGroups:
		return set.Groups(req.Count, depth)
	case ModeEven:
		return set.EvenGroups(req.Count, depth)
	case ModeRepresentatives:
		reps, err := set.Representatives(req.Count, depth)
		if err != nil {
			return nil, err
		}
		out := make([][]any, len(reps))
		for i, r := range reps {
			out[i] = []any{r}
		}
		return out, nil
	default:
		return set.SimilarGroups(req.Threshold)
	}
}

// tracker turns build callbacks into percentage updates.
type tracker struct {
	percent int
	emit    func(Progress)
}

func (t *tracker) update(run, total int) {
	if total <= 0 {
		return
	}
	p := int(math.Round(float64(run) * 100 / float64(total)))
	if p == t.percent {
		return
	}
	t.percent = p
	t.emit(Progress{Percent: p, Run: run, TotalRuns: total})
}
