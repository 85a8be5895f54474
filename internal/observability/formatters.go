// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/ad-generator/internal/pipeline"
	"github.com/jonathan/ad-generator/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	inner := boxWidth - 4
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, inner))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		for _, chunk := range wrap(line, inner) {
			fmt.Fprintf(p.out, "│ %s │\n", pad(chunk, inner))
		}
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProgress prints one pipeline step on a single line.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintProgress(event pipeline.ProgressEvent) {
	fmt.Fprintf(p.out, "[%s] %s\n", strings.ToUpper(event.Step), event.Message)
}

// PrintPrompt outputs the composed prompt sent to the generation service.
func (p *Printer) PrintPrompt(prompt string) {
	if prompt == "" {
		return
	}
	p.printBox("PROMPT", strings.TrimRight(prompt, "\n"))
}

// PrintRequest outputs the parameters of an advertisement request.
func (p *Printer) PrintRequest(req types.AdvertisementRequest) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Kind:     %s\n", req.Kind.Label()))
	sb.WriteString(fmt.Sprintf("Program:  %s\n", req.ProgramTitle))
	sb.WriteString(fmt.Sprintf("Language: %s\n", req.Language))
	sb.WriteString(fmt.Sprintf("Tone:     %s\n", req.Tone))
	sb.WriteString(fmt.Sprintf("Length:   %d to %d", req.MinLength, req.MaxLength))
	if req.UserPrompt != "" {
		sb.WriteString(fmt.Sprintf("\nPrompt:   %s", req.UserPrompt))
	}
	p.printBox("REQUEST", sb.String())
}

// PrintResult outputs the heading and metadata of a generated advertisement.
func (p *Printer) PrintResult(result *types.AdvertisementResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(result.Heading + "\n")
	sb.WriteString(fmt.Sprintf("ID:       %s\n", result.ID))
	sb.WriteString(fmt.Sprintf("Revised:  %t\n", result.Revised))
	sb.WriteString(fmt.Sprintf("Raw text: %d characters, %d words", utf8.RuneCountInString(result.RawText), len(strings.Fields(result.RawText))))

	p.printBox("GENERATED ADVERTISEMENT", sb.String())
}

// PrintPrograms outputs the first catalog titles.
func (p *Printer) PrintPrograms(titles []string) {
	if len(titles) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Programs loaded: %d\n", len(titles)))
	count := min(len(titles), maxItemsToShow)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", titles[i]))
	}
	if len(titles) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(titles)-maxItemsToShow))
	}

	p.printBox("CATALOG", strings.TrimSuffix(sb.String(), "\n"))
}

// pad right-pads s with spaces to width runes.
func pad(s string, width int) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return truncate(s, width)
	}
	return s + strings.Repeat(" ", width-n)
}

// truncate shortens s to width runes, marking the cut with "...".
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

// wrap splits line into chunks of at most width runes, breaking on spaces when possible.
func wrap(line string, width int) []string {
	var chunks []string
	runes := []rune(line)
	for len(runes) > width {
		cut := width
		for i := width; i > width/2; i-- {
			if runes[i] == ' ' {
				cut = i
				break
			}
		}
		chunks = append(chunks, strings.TrimRight(string(runes[:cut]), " "))
		runes = []rune(strings.TrimLeft(string(runes[cut:]), " "))
	}
	return append(chunks, string(runes))
}
