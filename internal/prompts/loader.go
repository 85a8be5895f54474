// Package prompts holds the embedded advertisement prompt templates.
package prompts

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Key names one template in advertisement.json.
type Key string

// Template keys. The four advertisement keys are (kind, language) pairs.
const (
	EmailEnglish    Key = "email-english"
	EmailFrench     Key = "email-french"
	SMSEnglish      Key = "sms-english"
	SMSFrench       Key = "sms-french"
	Revision        Key = "revision"
	TranslateFrench Key = "translate-french"
)

// Keys returns every template key the package expects to find.
func Keys() []Key {
	return []Key{EmailEnglish, EmailFrench, SMSEnglish, SMSFrench, Revision, TranslateFrench}
}

//go:embed advertisement.json
var advertisementJSON []byte

var load = sync.OnceValues(func() (map[Key]string, error) {
	return parse(advertisementJSON)
})

// parse decodes a template file and checks that every key in Keys is present.
func parse(data []byte) (map[Key]string, error) {
	var templates map[Key]string
	if err := json.Unmarshal(data, &templates); err != nil {
		return nil, fmt.Errorf("failed to parse prompt templates: %w", err)
	}

	var missing []string
	for _, key := range Keys() {
		if strings.TrimSpace(templates[key]) == "" {
			missing = append(missing, string(key))
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return nil, fmt.Errorf("prompt templates missing: %s", strings.Join(missing, ", "))
	}
	return templates, nil
}

// Get returns the template stored under key.
func Get(key Key) (string, error) {
	templates, err := load()
	if err != nil {
		return "", err
	}
	tmpl, ok := templates[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found", key)
	}
	return tmpl, nil
}

// MustGet is Get for keys listed in Keys, which parse guarantees are present.
func MustGet(key Key) string {
	tmpl, err := Get(key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return tmpl
}

// Format replaces placeholders in the form {{.Key}} with values from data.
// All placeholders are substituted in a single pass, so values are inserted
// verbatim: a value that itself contains "{{.Key}}" is not expanded again.
func Format(template string, data map[string]string) string {
	names := make([]string, 0, len(data))
	for name := range data {
		names = append(names, name)
	}
	slices.Sort(names)

	pairs := make([]string, 0, len(names)*2)
	for _, name := range names {
		pairs = append(pairs, "{{."+name+"}}", data[name])
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
