package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/jonathan/ad-generator/internal/types"
)

const testCatalog = "Title,description\n" +
	"Data Analytics,Learn to turn raw data into decisions.\n" +
	"Nursing,Care for patients in hospital and community settings.\n"

// cliEnv runs the binary in an isolated directory and environment.
type cliEnv struct {
	t      *testing.T
	binary string
	dir    string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	binary := getBinaryPath(t)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "course.csv"), []byte(testCatalog), 0o644))
	return &cliEnv{t: t, binary: binary, dir: dir}
}

func (e *cliEnv) writeFile(name, content string) string {
	e.t.Helper()
	path := filepath.Join(e.dir, name)
	require.NoError(e.t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// run returns stdout followed by stderr.
func (e *cliEnv) run(args ...string) (string, error) {
	stdout, stderr, err := e.runSplit(args...)
	return stdout + stderr, err
}

func (e *cliEnv) runSplit(args ...string) (string, string, error) {
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = []string{"PATH=" + os.Getenv("PATH"), "HOME=" + e.dir}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stdout.String(), stderr.String(), err
}

// completionServer answers OpenAI-style completion requests with text.
func completionServer(t *testing.T, text string) (*httptest.Server, func() []map[string]any) {
	t.Helper()
	var (
		mu       sync.Mutex
		requests []map[string]any
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		mu.Lock()
		requests = append(requests, body)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "cmpl-test",
			"object":  "text_completion",
			"model":   "gpt-3.5-turbo-instruct",
			"choices": []map[string]any{{"text": "\n\n" + text, "index": 0, "finish_reason": "stop"}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, func() []map[string]any {
		mu.Lock()
		defer mu.Unlock()
		return append([]map[string]any(nil), requests...)
	}
}

func (e *cliEnv) openAIConfig(baseURL string) string {
	e.t.Helper()
	return e.writeFile("config.json", `{
  "catalog": "course.csv",
  "llm": {"provider": "openai", "api_key": "test-key", "base_url": "`+baseURL+`/v1"},
  "translation": {"provider": "none"}
}`)
}

func TestNewLogger(t *testing.T) {
	quiet, err := newLogger(false)
	require.NoError(t, err)
	assert.False(t, quiet.Core().Enabled(zapcore.DebugLevel))

	loud, err := newLogger(true)
	require.NoError(t, err)
	assert.True(t, loud.Core().Enabled(zapcore.DebugLevel))
}

func TestProgramsCommand_ListsTitles(t *testing.T) {
	env := newCLIEnv(t)

	output, err := env.run("programs")
	require.NoError(t, err, output)
	assert.Contains(t, output, "Data Analytics\nNursing\n")
}

func TestProgramsCommand_MissingCatalog(t *testing.T) {
	env := newCLIEnv(t)

	output, err := env.run("programs", "--catalog", "missing.csv")
	assert.Error(t, err)
	assert.Contains(t, output, "catalog file not found")
}

func TestProgramsCommand_MissingColumns(t *testing.T) {
	env := newCLIEnv(t)
	env.writeFile("bad.csv", "Name,Summary\nX,Y\n")

	output, err := env.run("programs", "--catalog", "bad.csv")
	assert.Error(t, err)
	assert.Contains(t, output, "missing")
}

func TestImportCommand_RequiresDatabase(t *testing.T) {
	env := newCLIEnv(t)

	output, err := env.run("programs", "import")
	assert.Error(t, err)
	assert.Contains(t, output, "DATABASE_URL")
}

func TestGenerateCommand_MissingKind(t *testing.T) {
	env := newCLIEnv(t)

	output, err := env.run("generate")
	assert.Error(t, err)
	assert.Contains(t, output, "accepts 1 arg(s)")
}

func TestGenerateCommand_UnknownKind(t *testing.T) {
	env := newCLIEnv(t)

	output, err := env.run("generate", "fax")
	assert.Error(t, err)
	assert.Contains(t, output, "unknown advertisement kind")
}

func TestGenerateCommand_UnknownTone(t *testing.T) {
	env := newCLIEnv(t)

	output, err := env.run("generate", "email", "--tone", "Grumpy")
	assert.Error(t, err)
	assert.Contains(t, output, "unknown tone")
}

func TestGenerateCommand_InvalidConfig(t *testing.T) {
	env := newCLIEnv(t)
	path := env.writeFile("config.json", `{"llm": {"provider": "mystery"}}`)

	output, err := env.run("generate", "email", "--config", path)
	assert.Error(t, err)
	assert.Contains(t, output, "config does not match schema")
}

func TestGenerateCommand_Email(t *testing.T) {
	env := newCLIEnv(t)
	srv, requests := completionServer(t, "Learn data skills.")
	configFile := env.openAIConfig(srv.URL)

	output, err := env.run("generate", "email",
		"--config", configFile,
		"--program", "Data Analytics",
		"--tone", "Friendly")
	require.NoError(t, err, output)

	assert.Contains(t, output, "Generated Friendly Email Advertisement:")
	assert.Contains(t, output, "Subject: Exciting New Program at Humber College!")
	assert.Contains(t, output, "Learn data skills.")

	reqs := requests()
	require.Len(t, reqs, 1)
	prompt, _ := reqs[0]["prompt"].(string)
	assert.Contains(t, prompt, "friendly")
	assert.Contains(t, prompt, "1 to 200")
	assert.Contains(t, prompt, "Learn to turn raw data into decisions.")
	assert.EqualValues(t, 200, reqs[0]["max_tokens"])
}

func TestGenerateCommand_SMSWithPromptAsJSON(t *testing.T) {
	env := newCLIEnv(t)
	srv, requests := completionServer(t, "Happy New Year from Humber!")
	configFile := env.openAIConfig(srv.URL)

	output, stderr, err := env.runSplit("generate", "sms",
		"--config", configFile,
		"--program", "Nursing",
		"--prompt", "Wish the recipient Happy New Year!",
		"--max", "100",
		"--json")
	require.NoError(t, err, stderr)

	var result types.AdvertisementResult
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Equal(t, types.KindSMS, result.Kind)
	assert.Equal(t, "Nursing", result.ProgramTitle)
	assert.True(t, strings.HasPrefix(result.ProcessedText, "Discover exciting opportunities at Humber College!"))

	reqs := requests()
	require.Len(t, reqs, 1)
	prompt, _ := reqs[0]["prompt"].(string)
	assert.Contains(t, prompt, "Wish the recipient Happy New Year!")
	assert.Contains(t, prompt, "Care for patients in hospital and community settings.")
}

func TestGenerateCommand_Feedback(t *testing.T) {
	env := newCLIEnv(t)
	srv, requests := completionServer(t, "A revised advertisement.")
	configFile := env.openAIConfig(srv.URL)

	output, err := env.run("generate", "email",
		"--config", configFile,
		"--program", "Data Analytics",
		"--feedback", "mention the co-op term")
	require.NoError(t, err, output)

	assert.Contains(t, output, "Generated Formal Email Advertisement:")
	assert.Contains(t, output, "New Generated Email Advertisement:")

	reqs := requests()
	require.Len(t, reqs, 2)
	prompt, _ := reqs[1]["prompt"].(string)
	assert.Contains(t, prompt, "mention the co-op term")
}

func TestGenerateCommand_UnknownProgram(t *testing.T) {
	env := newCLIEnv(t)
	srv, requests := completionServer(t, "unused")
	configFile := env.openAIConfig(srv.URL)

	output, err := env.run("generate", "email", "--config", configFile, "--program", "Basket Weaving")
	assert.Error(t, err)
	assert.Contains(t, output, `unknown program "Basket Weaving"`)
	assert.Empty(t, requests())
}

func TestServeCommand_InvalidConfig(t *testing.T) {
	env := newCLIEnv(t)
	path := env.writeFile("config.yaml", "port: 70000\n")

	output, err := env.run("serve", "--config", path)
	assert.Error(t, err)
	assert.Contains(t, output, "config does not match schema")
}
