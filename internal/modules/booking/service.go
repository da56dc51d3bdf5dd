// README: Booking analysis service; validated query -> prompt -> completion -> sections.
package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"railmate/internal/ai"
)

// DefaultTimeout bounds the single completion call when no timeout is configured.
const DefaultTimeout = 60 * time.Second

// ResultCache stores structured results for identical queries.
type ResultCache interface {
	Get(ctx context.Context, q BookingQuery) (AnalysisResult, bool, error)
	Set(ctx context.Context, q BookingQuery, r AnalysisResult) error
}

// Recorder persists completed analyses.
type Recorder interface {
	Record(ctx context.Context, a Analysis) error
}

// Analysis is one completed run of the pipeline.
type Analysis struct {
	Query    BookingQuery
	Result   AnalysisResult
	Degraded bool
	Provider string
}

type Option func(*Service)

// WithCache enables result caching. Degraded results are never cached.
func WithCache(c ResultCache) Option {
	return func(s *Service) { s.cache = c }
}

// WithRecorder enables analysis history.
func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.history = r }
}

// WithTimeout overrides DefaultTimeout. Zero or negative keeps the default.
func WithTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// Service orchestrates one analysis per call. It holds no per-request state.
type Service struct {
	llm     ai.LLMProvider
	cache   ResultCache
	history Recorder
	timeout time.Duration
	log     *zap.Logger
}

func NewService(llm ai.LLMProvider, log *zap.Logger, opts ...Option) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Service{llm: llm, timeout: DefaultTimeout, log: log}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Provider describes the completion backend in use.
func (s *Service) Provider() ai.ProviderInfo {
	return s.llm.Info()
}

// Analyze runs the pipeline for a validated query.
// It returns ai.ErrNotConfigured without any network call when the provider has no
// credential, and an error wrapping ai.ErrServiceUnavailable when the call fails.
// Extraction itself never fails.
func (s *Service) Analyze(ctx context.Context, q BookingQuery) (AnalysisResult, error) {
	info := s.llm.Info()
	if !info.Configured {
		return AnalysisResult{}, ai.ErrNotConfigured
	}

	if s.cache != nil {
		res, ok, err := s.cache.Get(ctx, q)
		switch {
		case err != nil:
			s.log.Warn("analysis cache read failed", zap.Error(err))
		case ok:
			s.log.Debug("analysis cache hit", zap.String("source", q.Source), zap.String("destination", q.Destination))
			return res, nil
		}
	}

	persona, prompt := ComposePrompt(q)

	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	started := time.Now()
	text, err := s.llm.Complete(callCtx, ai.CompletionRequest{System: persona, User: prompt})
	if err != nil {
		return AnalysisResult{}, err
	}

	res, degraded := ExtractSections(text)
	s.log.Info("analysis completed",
		zap.String("provider", info.Name),
		zap.Duration("latency", time.Since(started)),
		zap.Int("response_chars", len(text)),
		zap.Bool("degraded", degraded),
	)
	if degraded {
		s.log.Warn("model output did not follow the section format; returning raw text as journey summary",
			zap.String("provider", info.Name))
	} else if s.cache != nil {
		if err := s.cache.Set(ctx, q, res); err != nil {
			s.log.Warn("analysis cache write failed", zap.Error(err))
		}
	}

	if s.history != nil {
		a := Analysis{Query: q, Result: res, Degraded: degraded, Provider: info.Name}
		if err := s.history.Record(ctx, a); err != nil {
			s.log.Warn("analysis history write failed", zap.Error(err))
		}
	}

	return res, nil
}
