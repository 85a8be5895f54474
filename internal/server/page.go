package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/ad-generator/internal/frontend"
	"github.com/jonathan/ad-generator/internal/rendering"
	"github.com/jonathan/ad-generator/internal/types"
)

//go:embed web/index.html.tmpl
var webFS embed.FS

// Hidden fields carrying the displayed result between requests.
const (
	fieldResultHeading = "result_heading"
	fieldResultText    = "result_text"
)

// pageData is everything the page template renders.
type pageData struct {
	Programs   []string
	Languages  []types.Language
	Tones      []types.Tone
	Lengths    []int
	Kinds      []types.Kind
	PromptHint string

	Form      frontend.FormState
	Kind      types.Kind
	State     string
	Capturing bool

	Heading string
	Text    string
	Preview template.HTML
	Notice  string
	Error   string
}

func parsePage() (*template.Template, error) {
	funcs := template.FuncMap{
		"eqInt":    func(a, b int) bool { return a == b },
		"selected": selected,
	}
	return template.New("index.html.tmpl").Funcs(funcs).ParseFS(webFS, "web/index.html.tmpl")
}

// handleIndex renders the empty form.
func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	session := frontend.NewSession(frontend.DefaultFormState(s.gen.Programs()))
	s.renderPage(w, http.StatusOK, session)
}

// handleGeneratePage runs one generation from the submitted form.
func (s *Server) handleGeneratePage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid form: "+err.Error())
		return
	}

	defaults := frontend.DefaultFormState(s.gen.Programs())
	session := frontend.NewSession(defaults)

	form, err := frontend.FormStateFromValues(r.PostForm, defaults)
	if err != nil {
		session.Err = err
		s.renderPage(w, HTTPStatus(err), session)
		return
	}
	if err := session.Select(form); err != nil {
		session.Err = err
		s.renderPage(w, HTTPStatus(err), session)
		return
	}

	kind, err := frontend.KindFromValues(r.PostForm)
	if err != nil {
		session.Err = err
		s.renderPage(w, HTTPStatus(err), session)
		return
	}

	if err := session.Generate(r.Context(), s.gen, kind); err != nil {
		s.logger.Warn("generation failed", zap.String("program", form.Program), zap.Error(err))
		s.renderPage(w, HTTPStatus(err), session)
		return
	}
	s.renderPage(w, http.StatusOK, session)
}

// handleFeedbackPage applies a thumbs reaction to the displayed result.
func (s *Server) handleFeedbackPage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid form: "+err.Error())
		return
	}

	defaults := frontend.DefaultFormState(s.gen.Programs())
	form, err := frontend.FormStateFromValues(r.PostForm, defaults)
	if err != nil {
		session := frontend.NewSession(defaults)
		session.Err = err
		s.renderPage(w, HTTPStatus(err), session)
		return
	}

	kind, err := frontend.KindFromValues(r.PostForm)
	if err != nil {
		session := frontend.NewSession(form)
		session.Err = err
		s.renderPage(w, HTTPStatus(err), session)
		return
	}

	session := frontend.ResumeSession(form, kind, resultFromValues(r.PostForm, form, kind))

	feedback, err := frontend.FeedbackFromValues(r.PostForm)
	if err != nil {
		session.Err = err
		s.renderPage(w, HTTPStatus(err), session)
		return
	}

	if err := session.Feedback(r.Context(), s.gen, feedback); err != nil {
		s.logger.Warn("feedback failed", zap.String("program", form.Program), zap.Error(err))
		session.Err = err
		s.renderPage(w, HTTPStatus(err), session)
		return
	}
	s.renderPage(w, http.StatusOK, session)
}

// resultFromValues restores the displayed result from hidden fields.
func resultFromValues(values url.Values, form frontend.FormState, kind types.Kind) *types.AdvertisementResult {
	text := values.Get(fieldResultText)
	if text == "" {
		return nil
	}
	return &types.AdvertisementResult{
		Kind:          kind,
		Language:      form.Language,
		Tone:          form.Tone,
		ProgramTitle:  form.Program,
		Heading:       values.Get(fieldResultHeading),
		ProcessedText: text,
	}
}

func (s *Server) renderPage(w http.ResponseWriter, status int, session *frontend.Session) {
	data := pageData{
		Programs:   s.gen.Programs(),
		Languages:  types.Languages(),
		Tones:      types.Tones(),
		Lengths:    types.LengthOptions(),
		Kinds:      types.Kinds(),
		PromptHint: frontend.PromptHint,
		Form:       session.Form,
		Kind:       session.Kind,
		State:      session.State().String(),
		Capturing:  session.State() == frontend.FeedbackCapture,
		Notice:     session.Notice,
	}
	if session.Err != nil {
		data.Error = publicMessage(session.Err)
	}
	if result := session.Result; result != nil {
		data.Heading = result.Heading
		data.Text = result.ProcessedText
		preview, err := rendering.ToHTML(result.ProcessedText)
		if err != nil {
			s.logger.Warn("preview failed", zap.Error(err))
			preview = template.HTML("<pre>" + template.HTMLEscapeString(result.ProcessedText) + "</pre>")
		}
		data.Preview = preview
	}

	var buf bytes.Buffer
	if err := s.page.Execute(&buf, data); err != nil {
		s.logger.Error("failed to render page", zap.Error(err))
		s.errorResponse(w, http.StatusInternalServerError, "failed to render page")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Warn("error writing page", zap.Error(err))
	}
}

// selected reports whether a select option should be marked. It takes any so
// the named string types (Language, Tone) can be passed from the template.
func selected(current, option any) bool {
	return strings.EqualFold(fmt.Sprint(current), fmt.Sprint(option))
}
