// Package quizgen turns quiz parameters into a ready-to-play session by
// prompting an LLM, recording usage and checking the returned document.
package quizgen

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/quizcraft/internal/event"
	"github.com/abhisek/quizcraft/internal/llm"
	"github.com/abhisek/quizcraft/internal/logger"
	"github.com/abhisek/quizcraft/internal/quiz"
	"github.com/abhisek/quizcraft/internal/session"
	"github.com/abhisek/quizcraft/internal/usage"
)

// Generator runs the generation pipeline. Callers run at most one
// Generate at a time per Generator; the usage tracker it shares is safe
// for concurrent use but the pipeline makes no ordering promises between
// overlapping calls.
type Generator struct {
	provider llm.Provider
	tracker  *usage.Tracker
	sink     event.Sink
	config   Config
}

// Option configures a Generator.
type Option func(*Generator)

// WithSink sets the sink for generation events. Sessions created by the
// generator emit their events on the same sink.
func WithSink(s event.Sink) Option {
	return func(g *Generator) {
		if s != nil {
			g.sink = s
		}
	}
}

// New creates a Generator. tracker may be nil, in which case usage is not
// recorded.
func New(provider llm.Provider, tracker *usage.Tracker, cfg Config, opts ...Option) *Generator {
	g := &Generator{
		provider: provider,
		tracker:  tracker,
		sink:     event.Discard,
		config:   cfg,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate produces a new quiz session for params. On failure it returns
// a *Error and no session.
func (g *Generator) Generate(ctx context.Context, params quiz.Parameters) (*session.Session, error) {
	if err := params.Validate(); err != nil {
		return nil, g.fail(ctx, StageParameters, params.Model, err)
	}

	ctx = llm.WithPurpose(ctx, Purpose)
	ctx = logger.Into(ctx, logrus.Fields{"purpose": Purpose})
	log := logger.WithContext(ctx)

	g.sink.Emit(ctx, GenerationStarted{Params: params})
	log.WithFields(logrus.Fields{
		"count":      params.QuestionCount,
		"difficulty": params.Difficulty,
		"model":      params.Model,
	}).Info("generating quiz")

	resp, model, err := g.complete(ctx, params)
	if err != nil {
		return nil, g.fail(ctx, StageRequest, model, err)
	}

	charge := g.recordUsage(ctx, resp, model)

	doc, err := quiz.Extract(resp.Text)
	if err != nil {
		return nil, g.fail(ctx, StageExtract, model, err)
	}
	if len(doc.Questions) != params.QuestionCount {
		log.WithFields(logrus.Fields{
			"requested": params.QuestionCount,
			"received":  len(doc.Questions),
		}).Warn("quiz question count differs from request")
	}

	if g.config.ValidateDocuments && len(doc.Questions) > 0 {
		if err := quiz.Validate(doc); err != nil {
			return nil, g.fail(ctx, StageValidate, model, err)
		}
	}

	served := resp.Model
	if served == "" {
		served = model
	}
	s, err := session.New(doc,
		session.WithSink(g.sink),
		session.WithInfo(session.Info{
			Topic:      params.TopicRequest,
			Difficulty: params.Difficulty,
			Model:      served,
		}),
	)
	if err != nil {
		return nil, g.fail(ctx, StageSession, model, err)
	}

	log.WithFields(logrus.Fields{
		"session_id": s.ID(),
		"questions":  len(doc.Questions),
		"tokens":     resp.Usage.TotalTokens,
	}).Info("quiz generated")
	g.sink.Emit(ctx, GenerationSucceeded{Session: s, Usage: resp.Usage, Charge: charge})
	return s, nil
}

// complete sends the prompt, downgrading to the fallback model once if the
// requested model stays rate limited. It returns the model last asked for.
func (g *Generator) complete(ctx context.Context, params quiz.Parameters) (*llm.Response, string, error) {
	req := llm.Request{
		System: quiz.SystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: quiz.BuildPrompt(params)},
		},
		Model:       params.Model,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	model := params.Model
	if model == "" {
		model = g.provider.ModelID()
	}

	resp, err := g.provider.Generate(ctx, req)

	var rl *llm.ErrRateLimit
	if errors.As(err, &rl) && g.canDowngrade(model) {
		fallback := g.config.FallbackModel
		logger.WithContext(ctx).WithFields(logrus.Fields{
			"from": model,
			"to":   fallback,
		}).Warn("model rate limited, retrying once with fallback model")
		g.sink.Emit(ctx, ModelDowngraded{From: model, To: fallback})

		req.Model = fallback
		resp, err = g.provider.Generate(ctx, req)
		if err != nil {
			var again *llm.ErrRateLimit
			if !errors.As(err, &again) {
				// Report the original rate limit, not the fallback's failure.
				logger.WithContext(ctx).WithError(err).WithField("model", fallback).
					Warn("fallback model failed")
				return nil, model, rl
			}
		}
		model = fallback
	}
	if err != nil {
		return nil, model, err
	}
	return resp, model, nil
}

func (g *Generator) canDowngrade(model string) bool {
	fallback := g.config.FallbackModel
	return fallback != "" && llm.BaseModel(model) != llm.BaseModel(fallback)
}

// recordUsage charges the tracker for resp at the served model's price.
// Endpoints that omit usage are not charged. Tracker errors are logged and
// do not fail generation.
func (g *Generator) recordUsage(ctx context.Context, resp *llm.Response, model string) usage.Charge {
	if g.tracker == nil || !resp.Usage.Reported {
		return usage.Charge{}
	}

	priced := resp.Model
	if priced == "" {
		priced = model
	}
	charge, err := g.tracker.Record(ctx, resp.Usage.TotalTokens, priced)
	if err != nil {
		logger.WithContext(ctx).WithError(err).WithField("model", priced).
			Warn("could not record usage")
	}
	return charge
}

func (g *Generator) fail(ctx context.Context, stage Stage, model string, err error) error {
	gerr := NewError(stage, model, err)
	logger.WithContext(ctx).WithFields(logrus.Fields{
		"stage": stage,
		"kind":  gerr.Kind,
	}).WithError(err).Warn("quiz generation failed")
	g.sink.Emit(ctx, GenerationFailed{Err: gerr})
	return gerr
}
