// Package advice turns free-text user input plus a store snapshot into
// either one dispatched store mutation with a confirmation message, or
// a plain advisory message. Service failures never escape: the worst
// outcome of a chat turn is an unhelpful message.
package advice

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/dhanitra/dhanitra/internal/dispatch"
	"github.com/dhanitra/dhanitra/internal/store"
)

// FallbackMessage is shown whenever the text-generation service fails.
const FallbackMessage = "Sorry I can't answer your question 😔"

// DefaultTimeout bounds one generation attempt.
const DefaultTimeout = 30 * time.Second

// Generator produces one text response for one prompt. It is the
// seam for mocking the remote text-generation service in tests.
type Generator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Outcome is the terminal state of one chat turn.
type Outcome string

const (
	// OutcomeActionApplied means a store mutation was dispatched.
	OutcomeActionApplied Outcome = "action_applied"
	// OutcomeMessage means the response is a display-only advisory.
	OutcomeMessage Outcome = "message"
	// OutcomeError means the service failed and the fallback is shown.
	OutcomeError Outcome = "error"
)

// Result is what one chat turn produced. Text is always user-visible.
type Result struct {
	Outcome Outcome         `json:"outcome"`
	Text    string          `json:"text"`
	Action  dispatch.Action `json:"action,omitempty"`
}

// Pipeline drives one chat turn end to end.
type Pipeline struct {
	gen        Generator
	dispatcher *dispatch.Dispatcher
	timeout    time.Duration
	log        zerolog.Logger
}

// NewPipeline creates an advice pipeline. timeout bounds each of the at
// most two generation attempts; zero means DefaultTimeout.
func NewPipeline(gen Generator, dispatcher *dispatch.Dispatcher, timeout time.Duration, log zerolog.Logger) *Pipeline {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Pipeline{gen: gen, dispatcher: dispatcher, timeout: timeout, log: log}
}

// Respond runs one chat turn: serialize snapshot + prompt, call the
// model, then either dispatch a parsed action or surface the text.
// The returned Result is always safe to display; errors are absorbed
// into OutcomeError with the fixed fallback message.
func (p *Pipeline) Respond(ctx context.Context, userText string, snap store.Snapshot) Result {
	prompt, err := BuildPrompt(snap, userText)
	if err != nil {
		p.log.Error().Err(err).Msg("Failed to build advice prompt")
		return Result{Outcome: OutcomeError, Text: FallbackMessage}
	}

	raw, err := p.generate(ctx, prompt)
	if err != nil {
		p.log.Error().Err(err).Msg("Advice request failed")
		return Result{Outcome: OutcomeError, Text: FallbackMessage}
	}

	// The caller's context may have been canceled while the call was in
	// flight (session closed, user navigated away). A stale response
	// must never apply an action.
	if ctx.Err() != nil {
		return Result{Outcome: OutcomeError, Text: FallbackMessage}
	}

	if env, perr := dispatch.ParseEnvelope(StripCodeFence(raw)); perr == nil {
		derr := p.dispatcher.Dispatch(env)
		if derr == nil {
			text := fmt.Sprintf("I've successfully completed the action: %s.", env.Action)
			p.log.Info().Str("action", string(env.Action)).Msg("Chat action applied")
			return Result{Outcome: OutcomeActionApplied, Text: text, Action: env.Action}
		}
		// Schema mismatch or store rejection: fall back to the
		// display-only path, never partial execution.
		p.log.Warn().Err(derr).Msg("Action rejected, displaying raw response")
	}

	return Result{Outcome: OutcomeMessage, Text: StripMarkdown(raw)}
}

// generate performs one bounded generation attempt and at most one
// retry on transient failure.
func (p *Pipeline) generate(ctx context.Context, prompt string) (string, error) {
	raw, err := p.generateOnce(ctx, prompt)
	if err == nil {
		return raw, nil
	}
	if ctx.Err() != nil {
		// The turn itself was canceled or timed out; retrying would
		// only delay the fallback.
		return "", err
	}

	p.log.Warn().Err(err).Msg("Advice request failed, retrying once")
	return p.generateOnce(ctx, prompt)
}

func (p *Pipeline) generateOnce(ctx context.Context, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.gen.GenerateText(callCtx, prompt)
}
