// Package types provides type definitions for the structured data used throughout the ad generator.
package types

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Kind is the delivery channel of an advertisement.
type Kind string

// Supported advertisement kinds.
const (
	KindEmail Kind = "email"
	KindSMS   Kind = "sms"
)

// Kinds returns all advertisement kinds in display order.
func Kinds() []Kind {
	return []Kind{KindEmail, KindSMS}
}

// ParseKind parses "email" or "sms" (case-insensitive).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "email", "e-mail":
		return KindEmail, nil
	case "sms", "text":
		return KindSMS, nil
	}
	return "", &ValidationError{Field: "kind", Message: fmt.Sprintf("unknown advertisement kind %q", s)}
}

// Label returns the human readable name of the kind ("Email", "SMS").
func (k Kind) Label() string {
	switch k {
	case KindEmail:
		return "Email"
	case KindSMS:
		return "SMS"
	}
	return string(k)
}

// Language is the output language of an advertisement.
type Language string

// Supported languages.
const (
	English Language = "English"
	French  Language = "French"
)

// Languages returns the supported languages in display order.
func Languages() []Language {
	return []Language{English, French}
}

// ParseLanguage accepts a display name ("English", "Français") or a BCP 47 tag ("en", "fr-CA").
func ParseLanguage(s string) (Language, error) {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	switch trimmed {
	case "english", "anglais":
		return English, nil
	case "french", "français", "francais":
		return French, nil
	}

	if trimmed != "" {
		if tag, err := language.Parse(trimmed); err == nil {
			base, _ := tag.Base()
			switch base.String() {
			case "en":
				return English, nil
			case "fr":
				return French, nil
			}
		}
	}

	return "", &ValidationError{Field: "language", Message: fmt.Sprintf("unsupported language %q (use English or French)", s)}
}

// Tag returns the BCP 47 tag of the language.
func (l Language) Tag() language.Tag {
	if l == French {
		return language.French
	}
	return language.English
}

// Tone is a stylistic modifier inserted into the prompt.
type Tone string

// Supported tones, in the order they are offered to the user.
const (
	ToneFormal      Tone = "Formal"
	ToneCasual      Tone = "Casual"
	ToneCool        Tone = "Cool"
	ToneFriendly    Tone = "Friendly"
	TonePositive    Tone = "Positive"
	ToneAssertive   Tone = "Assertive"
	ToneEncouraging Tone = "Encouraging"
	ToneCreative    Tone = "Creative"
	ToneEmotional   Tone = "Emotional"
	ToneHappy       Tone = "Happy"
)

var tones = []Tone{
	ToneFormal, ToneCasual, ToneCool, ToneFriendly, TonePositive,
	ToneAssertive, ToneEncouraging, ToneCreative, ToneEmotional, ToneHappy,
}

// Tones returns the supported tones in display order.
func Tones() []Tone {
	out := make([]Tone, len(tones))
	copy(out, tones)
	return out
}

// ParseTone matches a tone name case-insensitively.
func ParseTone(s string) (Tone, error) {
	trimmed := strings.TrimSpace(s)
	for _, t := range tones {
		if strings.EqualFold(string(t), trimmed) {
			return t, nil
		}
	}
	return "", &ValidationError{Field: "tone", Message: fmt.Sprintf("unknown tone %q", s)}
}

// Sentiment is the reaction captured by the thumbs up/down controls.
type Sentiment string

// Feedback sentiments.
const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
)

// ParseSentiment accepts positive/negative as well as up/down and like/dislike.
func ParseSentiment(s string) (Sentiment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positive", "up", "like", "👍":
		return SentimentPositive, nil
	case "negative", "down", "dislike", "👎":
		return SentimentNegative, nil
	}
	return "", &ValidationError{Field: "sentiment", Message: fmt.Sprintf("unknown sentiment %q", s)}
}
