package usecase

import (
	"context"
	"errors"
	"net"
	"strings"
	"time"

	"gift-suggest-core/internal/domain/entity"
	"gift-suggest-core/internal/domain/repository"
	"gift-suggest-core/internal/metrics"

	"go.uber.org/zap"
)

const (
	// GenerationBudget is the wall-clock cap for one backend call.
	GenerationBudget = 25 * time.Second

	DefaultMaxOutputTokens = 1400
)

// Clock creates the timer that bounds a generation call.
type Clock interface {
	NewTimer(d time.Duration) Timer
}

type Timer interface {
	C() <-chan time.Time
	Stop() bool
}

type systemClock struct{}

func (systemClock) NewTimer(d time.Duration) Timer {
	return systemTimer{t: time.NewTimer(d)}
}

type systemTimer struct {
	t *time.Timer
}

func (s systemTimer) C() <-chan time.Time { return s.t.C }
func (s systemTimer) Stop() bool          { return s.t.Stop() }

// ModelInvoker makes exactly one schema-constrained call per Invoke and
// cancels it when the budget runs out. There is no retry.
type ModelInvoker struct {
	generator       repository.Generator
	budget          time.Duration
	maxOutputTokens int
	clock           Clock
	logger          *zap.Logger
}

func NewModelInvoker(generator repository.Generator, budget time.Duration, maxOutputTokens int, logger *zap.Logger) *ModelInvoker {
	if maxOutputTokens <= 0 {
		maxOutputTokens = DefaultMaxOutputTokens
	}
	return &ModelInvoker{
		generator:       generator,
		budget:          budget,
		maxOutputTokens: maxOutputTokens,
		clock:           systemClock{},
		logger:          logger.Named("invoker"),
	}
}

// WithClock replaces the timer source. Used by tests to fire the deadline on demand.
func (m *ModelInvoker) WithClock(c Clock) *ModelInvoker {
	m.clock = c
	return m
}

type generation struct {
	resp *entity.ModelResponse
	err  error
}

func (m *ModelInvoker) Invoke(ctx context.Context, prompt string) (*entity.ModelResponse, error) {
	if err := m.generator.CheckCredentials(); err != nil {
		m.logger.Error("generation backend not configured",
			zap.String("provider", m.generator.Name()),
			zap.Error(err))
		return nil, &entity.Error{Kind: entity.ErrConfig, Cause: err}
	}

	callCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	timer := m.clock.NewTimer(m.budget)
	defer timer.Stop()

	req := entity.GenerationRequest{
		Prompt:          prompt,
		SchemaName:      suggestionSchemaName,
		Schema:          SuggestionSchema(),
		MaxOutputTokens: m.maxOutputTokens,
	}

	m.logger.Debug("generation request",
		zap.String("provider", m.generator.Name()),
		zap.Int("prompt_len", len(prompt)),
		zap.Duration("budget", m.budget))

	start := time.Now()
	// Buffered so the call goroutine never blocks if nobody is left to receive.
	results := make(chan generation, 1)
	go func() {
		resp, err := m.generator.Generate(callCtx, req)
		results <- generation{resp: resp, err: err}
	}()

	select {
	case out := <-results:
		return m.complete(out, start)
	case <-timer.C():
		cancel()
		m.observe("timeout", start)
		m.logger.Warn("generation exceeded budget, call cancelled",
			zap.Duration("budget", m.budget))
		return nil, &entity.Error{Kind: entity.ErrUpstreamTimeout, Cause: context.DeadlineExceeded}
	case <-ctx.Done():
		cancel()
		m.observe("cancelled", start)
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, &entity.Error{Kind: entity.ErrUpstreamTimeout, Cause: ctx.Err()}
		}
		return nil, entity.NewUpstreamError(ctx.Err())
	}
}

func (m *ModelInvoker) complete(out generation, start time.Time) (*entity.ModelResponse, error) {
	if out.err != nil {
		m.logger.Error("generation request failed",
			zap.String("provider", m.generator.Name()),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(out.err))

		switch {
		case errors.Is(out.err, entity.ErrConfig):
			m.observe("config", start)
			return nil, out.err
		case isTimeout(out.err):
			m.observe("timeout", start)
			return nil, &entity.Error{Kind: entity.ErrUpstreamTimeout, Cause: out.err}
		default:
			m.observe("error", start)
			return nil, entity.NewUpstreamError(out.err)
		}
	}

	resp := out.resp
	if resp == nil || strings.TrimSpace(resp.Text) == "" {
		fields := []zap.Field{zap.String("provider", m.generator.Name())}
		if resp != nil {
			fields = append(fields,
				zap.String("response_id", resp.ResponseID),
				zap.String("finish_reason", resp.FinishReason),
				zap.String("model", resp.Model))
		}
		m.logger.Error("generation backend returned empty text", fields...)
		m.observe("empty", start)
		return nil, entity.NewMalformedError(entity.MalformedEmpty, nil)
	}

	resp.Text = strings.TrimSpace(resp.Text)
	m.observe("ok", start)
	if resp.TokenCount > 0 {
		metrics.GenerationTokens.WithLabelValues(m.generator.Name()).Add(float64(resp.TokenCount))
	}
	m.logger.Info("generation request completed",
		zap.String("model", resp.Model),
		zap.Int("tokens", resp.TokenCount),
		zap.Duration("elapsed", time.Since(start)))

	return resp, nil
}

func (m *ModelInvoker) observe(outcome string, start time.Time) {
	metrics.ObserveGeneration(m.generator.Name(), outcome, time.Since(start))
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
