package types

import (
	"time"

	"github.com/google/uuid"
)

// Content length bounds offered by the length selector.
const (
	MinContentLength = 1
	MaxContentLength = 500

	DefaultMinLength = 1
	DefaultMaxLength = 200
)

// LengthOptions returns the stops of the content length selector: 1, 50, 100, ..., 500.
func LengthOptions() []int {
	opts := []int{MinContentLength}
	for n := 50; n <= MaxContentLength; n += 50 {
		opts = append(opts, n)
	}
	return opts
}

// ProgramRecord is one row of the program catalog.
type ProgramRecord struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// AdvertisementRequest holds everything needed to generate one advertisement.
// ProgramDescription may be left empty, in which case it is looked up by ProgramTitle.
type AdvertisementRequest struct {
	Kind               Kind     `json:"kind" validate:"required,oneof=email sms"`
	ProgramTitle       string   `json:"program" validate:"required_without=ProgramDescription"`
	ProgramDescription string   `json:"description,omitempty"`
	Language           Language `json:"language" validate:"required,oneof=English French"`
	Tone               Tone     `json:"tone" validate:"required,tone"`
	UserPrompt         string   `json:"prompt,omitempty"`
	MinLength          int      `json:"min_length" validate:"min=1,max=500"`
	MaxLength          int      `json:"max_length" validate:"min=1,max=500,gtefield=MinLength"`
}

// AdvertisementResult is the outcome of one generation round.
type AdvertisementResult struct {
	ID            uuid.UUID `json:"id"`
	Kind          Kind      `json:"kind"`
	Language      Language  `json:"language"`
	Tone          Tone      `json:"tone"`
	ProgramTitle  string    `json:"program"`
	Heading       string    `json:"heading"`
	Prompt        string    `json:"prompt"`
	RawText       string    `json:"raw_text"`
	ProcessedText string    `json:"processed_text"`
	Revised       bool      `json:"revised"`
	CreatedAt     time.Time `json:"created_at"`
}

// FeedbackEvent is the like/dislike reaction to a displayed advertisement.
type FeedbackEvent struct {
	Sentiment Sentiment `json:"sentiment" validate:"required,oneof=positive negative"`
	Comment   string    `json:"comment,omitempty"`
}

// Actionable reports whether the feedback asks for a new generation round.
func (f FeedbackEvent) Actionable() bool {
	return f.Sentiment == SentimentNegative && f.Comment != ""
}
