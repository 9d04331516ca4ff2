package processor

import (
	"context"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/kbukum/webclient/engine"
	"github.com/kbukum/webclient/logger"
	"github.com/kbukum/webclient/params"
	"github.com/kbukum/webclient/request"
)

// State labels where a run ended up. Zero value is Running.
type State int32

const (
	// Running means the loop has not reached a terminal state yet.
	Running State = iota
	// StoppedByLimit means the limit predicate ended the loop.
	StoppedByLimit
	// StoppedByInterrupt means a cooperative interrupt ended the loop.
	StoppedByInterrupt
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case StoppedByLimit:
		return "stopped_by_limit"
	case StoppedByInterrupt:
		return "stopped_by_interrupt"
	default:
		return "unknown"
	}
}

// Mapper converts one raw response into a typed result.
type Mapper[T any] func(resp *engine.Response) (T, error)

// Processor runs the countable processing loop for one method: build a
// fresh descriptor, execute it, check the limit, map and accumulate,
// advance the cursor. A processor drives one run at a time; the
// interrupt flag is one-way, so create a new processor per run.
type Processor[T any] struct {
	eng       engine.Engine
	baseURL   string
	method    request.Method
	mapper    Mapper[T]
	modifiers *params.Modifiers
	log       *logger.Logger

	requestHooks  []func(*request.Descriptor) error
	responseHooks []func(*engine.Response) error

	interrupted atomic.Bool
	state       atomic.Int32
}

// Option configures a processor.
type Option[T any] func(*Processor[T])

// WithModifiers overrides the modifier registry used by the fold.
func WithModifiers[T any](m *params.Modifiers) Option[T] {
	return func(p *Processor[T]) { p.modifiers = m }
}

// WithLogger attaches a logger for run-lifecycle debug logs.
func WithLogger[T any](log *logger.Logger) Option[T] {
	return func(p *Processor[T]) { p.log = log }
}

// WithRequestHook runs fn on every iteration's descriptor after the
// modifier fold and before Build. Hooks run in registration order.
func WithRequestHook[T any](fn func(*request.Descriptor) error) Option[T] {
	return func(p *Processor[T]) { p.requestHooks = append(p.requestHooks, fn) }
}

// WithResponseHook runs fn on every response before the limit check.
// A hook error aborts the run like any other failure.
func WithResponseHook[T any](fn func(*engine.Response) error) Option[T] {
	return func(p *Processor[T]) { p.responseHooks = append(p.responseHooks, fn) }
}

// New creates a processor for one method against the given engine.
func New[T any](eng engine.Engine, baseURL string, method request.Method, mapper Mapper[T], opts ...Option[T]) *Processor[T] {
	p := &Processor[T]{
		eng:       eng,
		baseURL:   baseURL,
		method:    method,
		mapper:    mapper,
		modifiers: params.NewModifiers(),
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.log = p.log.WithComponent("processor")
	return p
}

// Interrupt requests a cooperative stop. Idempotent; it has no effect
// on an already-stopped processor. The flag is read once per iteration
// at the loop boundary, after the continue/stop decision, so the
// iteration already under way still contributes its result. An
// in-flight round trip is never aborted by Interrupt; cancel the
// context to abort it (which surfaces as a transport error instead).
func (p *Processor[T]) Interrupt() {
	if State(p.state.Load()) != Running {
		return
	}
	p.interrupted.Store(true)
}

// State returns the current run state.
func (p *Processor[T]) State() State {
	return State(p.state.Load())
}

// Process runs the loop synchronously and returns the accumulated
// results in iteration order.
//
// Each iteration: fold the params onto a fresh descriptor, execute one
// blocking round trip, evaluate the limit, map-and-append when
// continuing, advance the cursor, then check the interrupt flag.
// The response that triggers the limit is discarded, never mapped.
//
// Transport and mapper errors propagate unmodified and abort the run
// with no partial result: results accumulated before the failure are
// lost. There is no retry at this layer.
func (p *Processor[T]) Process(ctx context.Context, set *params.Set) (*Consumer[T], error) {
	runID := uuid.NewString()
	log := p.log.WithFields(logger.Fields(logger.FieldRunID, runID, logger.FieldMethod, p.method.Name))
	log.Debug("run started")

	set = p.ensureCountable(set)
	countable := set.Countable()
	consumer := NewConsumer[T]()

	iteration := 0
	for {
		resp, err := p.executeIteration(ctx, set)
		if err != nil {
			log.WithError(err).Debug("run aborted", logger.Fields(logger.FieldIteration, iteration))
			return nil, err
		}

		if countable == nil {
			// Degenerate single pass: one round trip, one mapped result.
			v, err := p.mapper(resp)
			if err != nil {
				return nil, err
			}
			consumer.Append(v)
			p.state.Store(int32(StoppedByLimit))
			log.Debug("run finished", logger.Fields(logger.FieldState, p.State().String()))
			return consumer, nil
		}

		stop := countable.Limit()(countable.Count(), resp)
		isContinue := !stop
		if isContinue {
			v, err := p.mapper(resp)
			if err != nil {
				return nil, err
			}
			consumer.Append(v)
			if err := countable.Advance(); err != nil {
				return nil, err
			}
		} else {
			p.state.Store(int32(StoppedByLimit))
		}

		// Interrupt is checked after the continue/stop decision: an
		// interrupt raised mid-iteration still lets this iteration's
		// result land, and it wins the state label over the limit.
		if p.interrupted.Load() {
			p.state.Store(int32(StoppedByInterrupt))
			log.Debug("run finished", logger.Fields(
				logger.FieldState, p.State().String(),
				logger.FieldCount, countable.Count(),
			))
			return consumer, nil
		}

		if !isContinue {
			log.Debug("run finished", logger.Fields(
				logger.FieldState, p.State().String(),
				logger.FieldCount, countable.Count(),
			))
			return consumer, nil
		}
		iteration++
	}
}

// executeIteration folds the params onto a fresh descriptor, builds it
// and performs one blocking round trip.
func (p *Processor[T]) executeIteration(ctx context.Context, set *params.Set) (*engine.Response, error) {
	d, err := p.method.Descriptor(p.baseURL)
	if err != nil {
		return nil, err
	}
	d, err = p.modifiers.Apply(set, d)
	if err != nil {
		return nil, err
	}
	for _, hook := range p.requestHooks {
		if err := hook(d); err != nil {
			return nil, err
		}
	}
	req, err := d.Build()
	if err != nil {
		return nil, err
	}
	resp, err := p.eng.Execute(ctx, req)
	if err != nil {
		return nil, err
	}
	for _, hook := range p.responseHooks {
		if err := hook(resp); err != nil {
			return nil, err
		}
	}
	return resp, nil
}

// ensureCountable seeds a countable param from the method spec when
// the caller's set does not already carry one.
func (p *Processor[T]) ensureCountable(set *params.Set) *params.Set {
	if set == nil {
		set = params.NewSet()
	}
	if set.Countable() == nil && p.method.Countable != nil {
		set.Add(params.FromSpec(*p.method.Countable))
	}
	return set
}
