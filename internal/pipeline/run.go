// Package pipeline runs one advertisement request end to end:
// resolve description → translate → compose prompt → generate → render.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/ad-generator/internal/catalog"
	"github.com/jonathan/ad-generator/internal/composing"
	"github.com/jonathan/ad-generator/internal/llm"
	"github.com/jonathan/ad-generator/internal/rendering"
	"github.com/jonathan/ad-generator/internal/translation"
	"github.com/jonathan/ad-generator/internal/types"
)

// Step names reported through ProgressCallback.
const (
	StepResolve   = "resolve"
	StepTranslate = "translate"
	StepCompose   = "compose"
	StepGenerate  = "generate"
	StepRender    = "render"
)

// ErrFeedbackNotActionable is returned by Regenerate for positive feedback or an empty comment.
var ErrFeedbackNotActionable = errors.New("feedback does not request a new advertisement")

// UnknownProgramError is returned when the requested title is not in the catalog
type UnknownProgramError struct {
	Title string
}

func (e *UnknownProgramError) Error() string {
	return fmt.Sprintf("unknown program %q", e.Title)
}

// ProgressEvent represents a progress update during a generation round
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Deps holds the collaborators of a Generator. Catalog and LLM are required.
type Deps struct {
	Catalog     *catalog.Catalog
	LLM         llm.Client
	Translator  translation.Translator // nil means descriptions are used untranslated
	Temperature float32                // zero means llm.DefaultTemperature
	Logger      *zap.Logger
	Now         func() time.Time
	OnProgress  ProgressCallback
}

// Generator produces advertisements. It holds no per-request state.
type Generator struct {
	deps Deps
}

// New creates a Generator.
func New(deps Deps) (*Generator, error) {
	if deps.Catalog == nil {
		return nil, fmt.Errorf("pipeline: catalog is required")
	}
	if deps.LLM == nil {
		return nil, fmt.Errorf("pipeline: generation client is required")
	}
	if deps.Translator == nil {
		deps.Translator = translation.Noop{}
	}
	if deps.Temperature == 0 {
		deps.Temperature = llm.DefaultTemperature
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &Generator{deps: deps}, nil
}

// Programs returns catalog titles in display order.
func (g *Generator) Programs() []string {
	return g.deps.Catalog.Titles()
}

// Generate runs one generation round for req.
func (g *Generator) Generate(ctx context.Context, req types.AdvertisementRequest) (*types.AdvertisementResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// For email, a non-empty user prompt replaces the description as the prompt
	// body; SMS prompts always carry the description.
	replaced := req.Kind == types.KindEmail && req.UserPrompt != ""

	body, err := g.describe(ctx, req, !replaced)
	if err != nil {
		return nil, err
	}
	if replaced {
		body = req.UserPrompt
	}

	result, err := g.run(ctx, req, body)
	if err != nil {
		return nil, err
	}
	result.Heading = rendering.Heading(req.Kind, req.Language, req.Tone)
	return result, nil
}

// Regenerate runs one more round for req, folding the feedback comment into the
// prompt body. The kind and parameters of req are kept.
func (g *Generator) Regenerate(ctx context.Context, req types.AdvertisementRequest, feedback types.FeedbackEvent) (*types.AdvertisementResult, error) {
	if err := feedback.Validate(); err != nil {
		return nil, err
	}
	if !feedback.Actionable() {
		return nil, ErrFeedbackNotActionable
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	description, err := g.describe(ctx, req, true)
	if err != nil {
		return nil, err
	}

	result, err := g.run(ctx, req, composing.ComposeRevision(description, feedback.Comment))
	if err != nil {
		return nil, err
	}
	result.Heading = rendering.RevisionHeading(req.Kind, req.Language)
	result.Revised = true
	return result, nil
}

// describe resolves the program description and, when translate is set,
// translates it for French output.
func (g *Generator) describe(ctx context.Context, req types.AdvertisementRequest, translate bool) (string, error) {
	description := req.ProgramDescription
	if description == "" {
		g.emit(StepResolve, fmt.Sprintf("Looking up %q", req.ProgramTitle))
		d, ok := g.deps.Catalog.Lookup(req.ProgramTitle)
		if !ok {
			return "", &UnknownProgramError{Title: req.ProgramTitle}
		}
		description = d
	}

	if translate && req.Language == types.French {
		g.emit(StepTranslate, "Translating program description")
		translated, err := g.deps.Translator.Translate(ctx, description, types.French)
		if err != nil {
			g.deps.Logger.Warn("translation failed",
				zap.String("program", req.ProgramTitle),
				zap.Error(err))
			return "", err
		}
		description = translated
	}

	return description, nil
}

// run composes the prompt for body, calls the generation client and wraps the output.
func (g *Generator) run(ctx context.Context, req types.AdvertisementRequest, body string) (*types.AdvertisementResult, error) {
	g.emit(StepCompose, fmt.Sprintf("Composing %s prompt", req.Kind.Label()))
	prompt, err := composing.Compose(req.Kind, body, req.Language, req.Tone, req.UserPrompt, req.MinLength, req.MaxLength)
	if err != nil {
		return nil, err
	}

	g.emit(StepGenerate, fmt.Sprintf("Calling %s", g.deps.LLM.Model()))
	started := g.deps.Now()
	raw, err := g.deps.LLM.Generate(ctx, prompt, llm.Options{
		MaxTokens:   req.MaxLength,
		Temperature: g.deps.Temperature,
	})
	if err != nil {
		g.deps.Logger.Warn("generation failed",
			zap.String("kind", string(req.Kind)),
			zap.String("model", g.deps.LLM.Model()),
			zap.Error(err))
		return nil, err
	}

	g.emit(StepRender, "Applying message template")
	result := &types.AdvertisementResult{
		ID:            uuid.New(),
		Kind:          req.Kind,
		Language:      req.Language,
		Tone:          req.Tone,
		ProgramTitle:  req.ProgramTitle,
		Prompt:        prompt,
		RawText:       raw,
		ProcessedText: rendering.Render(req.Kind, raw, req.Language),
		CreatedAt:     g.deps.Now(),
	}

	g.deps.Logger.Info("advertisement generated",
		zap.String("id", result.ID.String()),
		zap.String("kind", string(req.Kind)),
		zap.String("language", string(req.Language)),
		zap.String("program", req.ProgramTitle),
		zap.Int("raw_chars", len(raw)),
		zap.Duration("duration", g.deps.Now().Sub(started)))

	return result, nil
}

func (g *Generator) emit(step, message string) {
	if g.deps.OnProgress != nil {
		g.deps.OnProgress(ProgressEvent{Step: step, Message: message})
	}
}
