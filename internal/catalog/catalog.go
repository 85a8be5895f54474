// Package catalog loads the read-only table of program titles and descriptions.
package catalog

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jonathan/ad-generator/internal/db"
	"github.com/jonathan/ad-generator/internal/fetch"
	"github.com/jonathan/ad-generator/internal/types"
)

// Required column names, matched case-insensitively.
const (
	TitleColumn       = "Title"
	DescriptionColumn = "description"
)

// LoadError represents a missing or malformed catalog source
type LoadError struct {
	Source  string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("catalog load error for %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("catalog load error for %s: %s", e.Source, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Catalog is an immutable title → description lookup preserving source order.
type Catalog struct {
	titles       []string
	descriptions map[string]string
}

// New builds a catalog from records. The first occurrence of a duplicate title wins.
func New(records []types.ProgramRecord) *Catalog {
	c := &Catalog{descriptions: make(map[string]string, len(records))}
	for _, r := range records {
		if _, seen := c.descriptions[r.Title]; seen {
			continue
		}
		c.titles = append(c.titles, r.Title)
		c.descriptions[r.Title] = r.Description
	}
	return c
}

// Titles returns program titles in source order.
func (c *Catalog) Titles() []string {
	out := make([]string, len(c.titles))
	copy(out, c.titles)
	return out
}

// Lookup returns the description for title.
func (c *Catalog) Lookup(title string) (string, bool) {
	d, ok := c.descriptions[title]
	return d, ok
}

// Records returns the catalog contents in source order.
func (c *Catalog) Records() []types.ProgramRecord {
	out := make([]types.ProgramRecord, 0, len(c.titles))
	for _, t := range c.titles {
		out = append(out, types.ProgramRecord{Title: t, Description: c.descriptions[t]})
	}
	return out
}

// Len returns the number of distinct programs.
func (c *Catalog) Len() int {
	return len(c.titles)
}

// Load reads the catalog from source: a postgres:// URL, an http(s) URL serving
// CSV, or a local CSV path.
func Load(ctx context.Context, source string) (*Catalog, error) {
	var (
		records []types.ProgramRecord
		err     error
	)

	switch {
	case strings.TrimSpace(source) == "":
		return nil, &LoadError{Source: source, Message: "no catalog source configured"}
	case db.IsDatabaseURL(source):
		records, err = loadDatabase(ctx, source)
	case fetch.IsURL(source):
		records, err = loadURL(ctx, source)
	default:
		return LoadFile(source)
	}
	if err != nil {
		return nil, err
	}

	return finish(source, records)
}

// LoadFile reads a local CSV file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Source: path, Message: "cannot open file", Cause: err}
	}
	defer func() { _ = f.Close() }()

	records, err := ReadCSV(path, f)
	if err != nil {
		return nil, err
	}
	return finish(path, records)
}

// LoadCSV reads CSV data from r. source only labels errors.
func LoadCSV(source string, r io.Reader) (*Catalog, error) {
	records, err := ReadCSV(source, r)
	if err != nil {
		return nil, err
	}
	return finish(source, records)
}

// ReadCSV parses rows with Title and description columns; other columns are ignored.
func ReadCSV(source string, r io.Reader) ([]types.ProgramRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &LoadError{Source: source, Message: "empty file"}
		}
		return nil, &LoadError{Source: source, Message: "cannot read header", Cause: err}
	}

	titleIdx, descIdx := -1, -1
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		switch {
		case strings.EqualFold(name, TitleColumn) && titleIdx < 0:
			titleIdx = i
		case strings.EqualFold(name, DescriptionColumn) && descIdx < 0:
			descIdx = i
		}
	}
	var missing []string
	if titleIdx < 0 {
		missing = append(missing, TitleColumn)
	}
	if descIdx < 0 {
		missing = append(missing, DescriptionColumn)
	}
	if len(missing) > 0 {
		return nil, &LoadError{Source: source, Message: fmt.Sprintf("missing required column(s): %s", strings.Join(missing, ", "))}
	}

	var records []types.ProgramRecord
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &LoadError{Source: source, Message: fmt.Sprintf("malformed row %d", line), Cause: err}
		}

		title := strings.TrimSpace(field(row, titleIdx))
		if title == "" {
			continue
		}
		records = append(records, types.ProgramRecord{
			Title:       title,
			Description: field(row, descIdx),
		})
	}
	return records, nil
}

func field(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func loadURL(ctx context.Context, source string) ([]types.ProgramRecord, error) {
	result, err := fetch.URL(ctx, source, nil)
	if err != nil {
		return nil, &LoadError{Source: source, Message: "cannot download catalog", Cause: err}
	}
	return ReadCSV(source, bytes.NewReader(result.Body))
}

func loadDatabase(ctx context.Context, source string) ([]types.ProgramRecord, error) {
	database, err := db.Connect(ctx, source)
	if err != nil {
		return nil, &LoadError{Source: redact(source), Message: "cannot connect", Cause: err}
	}
	defer database.Close()

	records, err := database.ListPrograms(ctx)
	if err != nil {
		return nil, &LoadError{Source: redact(source), Message: "cannot read programs table", Cause: err}
	}
	return records, nil
}

// finish flattens HTML descriptions and rejects empty catalogs.
func finish(source string, records []types.ProgramRecord) (*Catalog, error) {
	if len(records) == 0 {
		return nil, &LoadError{Source: redact(source), Message: "no programs found"}
	}
	for i := range records {
		if !fetch.LooksLikeHTML(records[i].Description) {
			records[i].Description = strings.TrimSpace(records[i].Description)
			continue
		}
		text, err := fetch.HTMLToText(records[i].Description)
		if err != nil {
			return nil, &LoadError{Source: redact(source), Message: fmt.Sprintf("cannot flatten description of %q", records[i].Title), Cause: err}
		}
		records[i].Description = text
	}
	return New(records), nil
}

// redact hides the password of a database URL.
func redact(source string) string {
	if !db.IsDatabaseURL(source) {
		return source
	}
	scheme, rest, _ := strings.Cut(source, "://")
	at := strings.LastIndex(rest, "@")
	if at < 0 {
		return source
	}
	userinfo := rest[:at]
	if user, _, ok := strings.Cut(userinfo, ":"); ok {
		return scheme + "://" + user + ":xxxxx" + rest[at:]
	}
	return source
}
