package frontend

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/jonathan/ad-generator/internal/types"
)

// Form field names shared by the HTML page and FormStateFromValues.
const (
	FieldLanguage  = "language"
	FieldProgram   = "program"
	FieldTone      = "tone"
	FieldPrompt    = "prompt"
	FieldMinLength = "min_length"
	FieldMaxLength = "max_length"
	FieldKind      = "kind"
	FieldSentiment = "sentiment"
	FieldComment   = "comment"
)

// PromptHint is the placeholder shown in the free-text prompt box.
const PromptHint = "E.g., Wish the recipient Happy New Year!."

// FormState is the explicit request object read from the widgets.
type FormState struct {
	Language  types.Language
	Program   string
	Tone      types.Tone
	Prompt    string
	MinLength int
	MaxLength int
}

// DefaultFormState returns the initial widget values: English, the first program,
// Formal tone, the (1, 200) length range.
func DefaultFormState(programs []string) FormState {
	f := FormState{
		Language:  types.English,
		Tone:      types.ToneFormal,
		MinLength: types.DefaultMinLength,
		MaxLength: types.DefaultMaxLength,
	}
	if len(programs) > 0 {
		f.Program = programs[0]
	}
	return f
}

// FormStateFromValues reads submitted form values over defaults. Unparseable
// values are reported as *types.ValidationError.
func FormStateFromValues(values url.Values, defaults FormState) (FormState, error) {
	f := defaults

	if v := strings.TrimSpace(values.Get(FieldLanguage)); v != "" {
		lang, err := types.ParseLanguage(v)
		if err != nil {
			return f, err
		}
		f.Language = lang
	}
	if v := strings.TrimSpace(values.Get(FieldProgram)); v != "" {
		f.Program = v
	}
	if v := strings.TrimSpace(values.Get(FieldTone)); v != "" {
		tone, err := types.ParseTone(v)
		if err != nil {
			return f, err
		}
		f.Tone = tone
	}
	if values.Has(FieldPrompt) {
		f.Prompt = strings.TrimSpace(values.Get(FieldPrompt))
	}

	var err error
	if f.MinLength, err = intField(values, FieldMinLength, f.MinLength); err != nil {
		return f, err
	}
	if f.MaxLength, err = intField(values, FieldMaxLength, f.MaxLength); err != nil {
		return f, err
	}

	return f, nil
}

func intField(values url.Values, name string, fallback int) (int, error) {
	v := strings.TrimSpace(values.Get(name))
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback, &types.ValidationError{Field: strings.ReplaceAll(name, "_", ""), Message: "must be a whole number"}
	}
	return n, nil
}

// Request builds the advertisement request for kind from the form.
func (f FormState) Request(kind types.Kind) types.AdvertisementRequest {
	return types.AdvertisementRequest{
		Kind:         kind,
		ProgramTitle: f.Program,
		Language:     f.Language,
		Tone:         f.Tone,
		UserPrompt:   f.Prompt,
		MinLength:    f.MinLength,
		MaxLength:    f.MaxLength,
	}
}

// Values encodes the form so it can be carried in hidden fields.
func (f FormState) Values() url.Values {
	v := url.Values{}
	v.Set(FieldLanguage, string(f.Language))
	v.Set(FieldProgram, f.Program)
	v.Set(FieldTone, string(f.Tone))
	v.Set(FieldPrompt, f.Prompt)
	v.Set(FieldMinLength, strconv.Itoa(f.MinLength))
	v.Set(FieldMaxLength, strconv.Itoa(f.MaxLength))
	return v
}

// KindFromValues reads the kind chosen by the pressed button.
func KindFromValues(values url.Values) (types.Kind, error) {
	return types.ParseKind(values.Get(FieldKind))
}

// FeedbackFromValues reads the thumbs and comment controls.
func FeedbackFromValues(values url.Values) (types.FeedbackEvent, error) {
	sentiment, err := types.ParseSentiment(values.Get(FieldSentiment))
	if err != nil {
		return types.FeedbackEvent{}, err
	}
	return types.FeedbackEvent{
		Sentiment: sentiment,
		Comment:   strings.TrimSpace(values.Get(FieldComment)),
	}, nil
}
