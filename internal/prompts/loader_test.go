package prompts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_AllKeysPresent(t *testing.T) {
	for _, key := range Keys() {
		t.Run(string(key), func(t *testing.T) {
			tmpl, err := Get(key)
			require.NoError(t, err)
			assert.NotEmpty(t, tmpl)
		})
	}
}

func TestGet_Templates(t *testing.T) {
	email, err := Get(EmailEnglish)
	require.NoError(t, err)
	assert.Contains(t, email, "email advertisement for the following Humber College program")
	assert.Contains(t, email, "{{.MinLength}} to {{.MaxLength}}")

	assert.Contains(t, MustGet(SMSFrench), "Collège Humber")
	assert.Contains(t, MustGet(Revision), "Feedback: {{.Feedback}}")
}

func TestGet_UnknownKey(t *testing.T) {
	_, err := Get("fax-english")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	assert.Panics(t, func() { MustGet("fax-english") })
}

func TestParse_MissingKeys(t *testing.T) {
	_, err := parse([]byte(`{"email-english": "x", "sms-english": "  "}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "email-french")
	assert.Contains(t, err.Error(), "sms-english")
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := parse([]byte(`{not json`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse prompt templates")
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		template string
		data     map[string]string
		want     string
	}{
		{"substitutes", "Create {{.MinLength}} to {{.MaxLength}} {{.Tone}}", map[string]string{"MinLength": "1", "MaxLength": "200", "Tone": "friendly"}, "Create 1 to 200 friendly"},
		{"no placeholders", "No placeholders here", map[string]string{"Key": "Value"}, "No placeholders here"},
		{"unknown placeholder remains", "Hello {{.Name}}", map[string]string{}, "Hello {{.Name}}"},
		{"repeated placeholder", "{{.Tone}} and {{.Tone}}", map[string]string{"Tone": "cool"}, "cool and cool"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.template, tt.data))
		})
	}
}

func TestFormat_ValuesInsertedVerbatim(t *testing.T) {
	template := "A={{.A}} B={{.B}}"
	data := map[string]string{
		"A": "{{.B}}",
		"B": "{{.A}}",
	}

	// The output must not depend on map iteration order.
	for i := 0; i < 20; i++ {
		assert.Equal(t, "A={{.B}} B={{.A}}", Format(template, data))
	}
}
