package workflow

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-tailor/internal/llm"
	"resume-tailor/internal/outputs"
	"resume-tailor/internal/prompts"
	"resume-tailor/internal/templates"
)

var errTest = errors.New("model failure")

func setupRouter(t *testing.T, client llm.Client) (*gin.Engine, *Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc := &Service{
		Templates: templates.NewStore(t.TempDir()),
		Prompts:   prompts.NewStore(filepath.Join(t.TempDir(), "saved_prompts.json")),
		Outputs:   outputs.NewStore(t.TempDir(), 0),
	}

	var gw *llm.Gateway
	if client != nil {
		gw = llm.NewGateway(map[llm.Backend]llm.Client{llm.BackendGemini: client})
	} else {
		gw = llm.NewGateway(nil)
	}

	r := gin.New()
	NewHandler(svc, llm.NewHolder(gw)).RegisterRoutes(r.Group("/api/v1"))
	return r, svc
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v (%s)", err, w.Body.String())
	}
	return body.Error.Code
}

func TestGenerateHandlerMissingJobDescription(t *testing.T) {
	r, svc := setupRouter(t, &fakeClient{})
	seedTemplates(t, svc, "R", "CL")

	w := postJSON(t, r, "/api/v1/generate", `{"jobDescription":"","backend":"gemini"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
	if code := errorCode(t, w); code != "validation_error" {
		t.Fatalf("expected validation_error, got %q", code)
	}
	if !strings.Contains(w.Body.String(), "Please enter a job description") {
		t.Fatalf("expected user-facing message, got %s", w.Body.String())
	}
}

func TestGenerateHandlerUnknownBackend(t *testing.T) {
	r, _ := setupRouter(t, &fakeClient{})

	w := postJSON(t, r, "/api/v1/generate", `{"jobDescription":"a job","backend":"claude"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if code := errorCode(t, w); code != "validation_error" {
		t.Fatalf("expected validation_error, got %q", code)
	}
}

func TestGenerateHandlerBackendUnavailable(t *testing.T) {
	r, svc := setupRouter(t, nil)
	seedTemplates(t, svc, "R", "CL")

	w := postJSON(t, r, "/api/v1/generate", `{"jobDescription":"a job","backend":"gemini"}`)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d: %s", w.Code, w.Body.String())
	}
	if code := errorCode(t, w); code != "backend_unavailable" {
		t.Fatalf("expected backend_unavailable, got %q", code)
	}
	if !strings.Contains(w.Body.String(), "Gemini API is not available") {
		t.Fatalf("expected availability message, got %s", w.Body.String())
	}
}

func TestGenerateHandlerBackendFailure(t *testing.T) {
	r, svc := setupRouter(t, &fakeClient{errs: []error{errTest}})
	seedTemplates(t, svc, "R", "CL")

	w := postJSON(t, r, "/api/v1/generate", `{"jobDescription":"a job","backend":"gemini"}`)

	if w.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d: %s", w.Code, w.Body.String())
	}
	if code := errorCode(t, w); code != "backend_error" {
		t.Fatalf("expected backend_error, got %q", code)
	}
}

func TestGenerateHandlerSuccess(t *testing.T) {
	r, svc := setupRouter(t, &fakeClient{responses: []string{"RESUME-OUT", "LETTER-OUT"}})
	seedTemplates(t, svc, "R", "CL")

	w := postJSON(t, r, "/api/v1/generate", `{"jobDescription":"a job","backend":"gemini"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var result Result
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.Status != StatusSuccess {
		t.Fatalf("expected success, got %s", result.Status)
	}
	if result.Resume != "RESUME-OUT" || result.CoverLetter != "LETTER-OUT" {
		t.Fatalf("unexpected documents: %q / %q", result.Resume, result.CoverLetter)
	}
	if result.ResumeFile == "" || result.CoverLetterFile == "" {
		t.Fatalf("expected artifact names, got %q / %q", result.ResumeFile, result.CoverLetterFile)
	}
}

func TestGenerateHandlerPartialIs200(t *testing.T) {
	r, svc := setupRouter(t, &fakeClient{
		responses: []string{"RESUME-OUT", ""},
		errs:      []error{nil, errTest},
	})
	seedTemplates(t, svc, "R", "CL")

	w := postJSON(t, r, "/api/v1/generate", `{"jobDescription":"a job","backend":"gemini"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("partial success must be 200, got %d: %s", w.Code, w.Body.String())
	}
	var result Result
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.Status != StatusPartial {
		t.Fatalf("expected partial, got %s", result.Status)
	}
	if result.Resume != "RESUME-OUT" {
		t.Fatalf("expected resume retained, got %q", result.Resume)
	}
	if result.CoverLetter != "" {
		t.Fatalf("expected empty cover letter, got %q", result.CoverLetter)
	}
}

func TestRegenerateCoverLetterHandlerRequiresResume(t *testing.T) {
	r, svc := setupRouter(t, &fakeClient{})
	seedTemplates(t, svc, "R", "CL")

	w := postJSON(t, r, "/api/v1/generate/cover-letter", `{"jobDescription":"a job","backend":"gemini"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Please generate a resume first") {
		t.Fatalf("expected user-facing message, got %s", w.Body.String())
	}
}

func TestRegenerateResumeHandlerFlagsStaleLetter(t *testing.T) {
	r, svc := setupRouter(t, &fakeClient{responses: []string{"RESUME-V2"}})
	seedTemplates(t, svc, "R", "CL")

	w := postJSON(t, r, "/api/v1/generate/resume",
		`{"jobDescription":"a job","backend":"gemini","currentCoverLetter":"OLD-LETTER"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var result Result
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	if result.CoverLetter != "OLD-LETTER" || !result.CoverLetterStale {
		t.Fatalf("expected preserved stale cover letter, got %+v", result)
	}
}

func TestGenerateHandlerInvalidBody(t *testing.T) {
	r, _ := setupRouter(t, &fakeClient{})

	w := postJSON(t, r, "/api/v1/generate", `{not json`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if code := errorCode(t, w); code != "validation_error" {
		t.Fatalf("expected validation_error, got %q", code)
	}
}
