// Package composing builds the natural-language prompts sent to the generation service.
package composing

import (
	"fmt"
	"strconv"

	"github.com/jonathan/ad-generator/internal/prompts"
	"github.com/jonathan/ad-generator/internal/types"
	"golang.org/x/text/cases"
)

// templateKey identifies one fixed prompt template.
type templateKey struct {
	kind     types.Kind
	language types.Language
}

// templates is the dispatch table from (kind, language) to the prompt template.
var templates = map[templateKey]prompts.Key{
	{types.KindEmail, types.English}: prompts.EmailEnglish,
	{types.KindEmail, types.French}:  prompts.EmailFrench,
	{types.KindSMS, types.English}:   prompts.SMSEnglish,
	{types.KindSMS, types.French}:    prompts.SMSFrench,
}

// TemplateError is returned when no template exists for the requested combination.
type TemplateError struct {
	Kind     types.Kind
	Language types.Language
	Cause    error
}

func (e *TemplateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("no prompt template for %s/%s: %v", e.Kind, e.Language, e.Cause)
	}
	return fmt.Sprintf("no prompt template for %s/%s", e.Kind, e.Language)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// Compose selects the template for (kind, language) and fills it in.
// The tone is lower-cased; description and userAddition are embedded verbatim,
// without escaping.
func Compose(kind types.Kind, description string, language types.Language, tone types.Tone, userAddition string, minLen, maxLen int) (string, error) {
	key, ok := templates[templateKey{kind: kind, language: language}]
	if !ok {
		return "", &TemplateError{Kind: kind, Language: language}
	}

	tmpl, err := prompts.Get(key)
	if err != nil {
		return "", &TemplateError{Kind: kind, Language: language, Cause: err}
	}

	return prompts.Format(tmpl, map[string]string{
		"MinLength":    strconv.Itoa(minLen),
		"MaxLength":    strconv.Itoa(maxLen),
		"Tone":         lowerTone(tone, language),
		"UserAddition": userAddition,
		"Description":  description,
	}), nil
}

// ComposeRevision builds the prompt body used when the user rejects a result and
// explains why. The body replaces the description in the next Compose call.
func ComposeRevision(description, feedback string) string {
	tmpl := prompts.MustGet(prompts.Revision)
	return prompts.Format(tmpl, map[string]string{
		"Description": description,
		"Feedback":    feedback,
	})
}

// ComposeTranslation builds the prompt used when translation is delegated to the generation service.
func ComposeTranslation(text string) string {
	tmpl := prompts.MustGet(prompts.TranslateFrench)
	return prompts.Format(tmpl, map[string]string{"Text": text})
}

func lowerTone(tone types.Tone, language types.Language) string {
	return cases.Lower(language.Tag()).String(string(tone))
}
