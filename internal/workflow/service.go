package workflow

import (
	"context"
	"fmt"
	"strings"
	"time"

	"resume-tailor/internal/llm"
	"resume-tailor/internal/outputs"
	"resume-tailor/internal/prompts"
	"resume-tailor/internal/shared/metrics"
	"resume-tailor/internal/shared/telemetry"
	"resume-tailor/internal/templates"
)

// Status classifies the outcome of one workflow operation.
type Status string

const (
	StatusSuccess Status = "success"
	StatusPartial Status = "partial"
)

// Result is the outcome of a generate or regenerate operation.
type Result struct {
	Status           Status    `json:"status"`
	Backend          string    `json:"backend"`
	Message          string    `json:"message"`
	Resume           string    `json:"resume,omitempty"`
	CoverLetter      string    `json:"coverLetter,omitempty"`
	CoverLetterStale bool      `json:"coverLetterStale,omitempty"`
	GeneratedAt      time.Time `json:"generatedAt"`
	ResumeFile       string    `json:"resumeFile,omitempty"`
	CoverLetterFile  string    `json:"coverLetterFile,omitempty"`
}

// Service orchestrates the template store, prompt store and output store
// around the model gateway. It holds no gateway itself: the caller passes the
// current snapshot into each operation, so a credential hot-swap takes effect
// on the next call without hidden shared state.
type Service struct {
	Templates *templates.Store
	Prompts   *prompts.Store
	Outputs   *outputs.Store
}

// GenerateInput carries one full generation request. Empty template or prompt
// fields fall back to the persisted stores.
type GenerateInput struct {
	JobDescription      string
	Backend             llm.Backend
	ResumeTemplate      string
	CoverLetterTemplate string
	ResumePrompt        string
	CoverLetterPrompt   string
}

// Generate runs the two-step pipeline: customize the resume, then generate a
// cover letter conditioned on the customized resume. A cover-letter failure
// keeps the resume and reports partial success; a resume failure keeps
// nothing.
func (s *Service) Generate(ctx context.Context, gw *llm.Gateway, in GenerateInput) (Result, error) {
	if strings.TrimSpace(in.JobDescription) == "" {
		return Result{}, ErrJobDescriptionRequired
	}

	resumeTemplate, err := s.resolveTemplate(in.ResumeTemplate, templates.KindResume)
	if err != nil {
		return Result{}, err
	}
	if resumeTemplate == "" {
		return Result{}, ErrResumeTemplateMissing
	}

	coverTemplate, err := s.resolveTemplate(in.CoverLetterTemplate, templates.KindCoverLetter)
	if err != nil {
		return Result{}, err
	}
	if coverTemplate == "" {
		return Result{}, ErrCoverLetterTemplateMissing
	}

	client, err := gw.ClientFor(in.Backend)
	if err != nil {
		return Result{}, &UnavailableError{Backend: in.Backend}
	}

	resumePrompt, coverPrompt := s.resolvePrompts(in.ResumePrompt, in.CoverLetterPrompt)

	metrics.IncGenerationStarted()
	start := time.Now()
	defer func() {
		metrics.ObserveGenerationDurationMs(float64(time.Since(start).Milliseconds()))
	}()

	resume, err := client.Complete(ctx, llm.ResumeRequest(resumePrompt, in.JobDescription, resumeTemplate))
	if err != nil {
		metrics.IncGenerationFailed()
		return Result{}, &BackendError{Stage: stageResume, Backend: client.Name(), Err: err}
	}

	letter, err := client.Complete(ctx, llm.CoverLetterRequest(coverPrompt, in.JobDescription, resume, coverTemplate))
	if err != nil {
		metrics.IncGenerationPartial()
		telemetry.Warn("generate.partial", map[string]any{
			"backend": client.Name(),
			"error":   err.Error(),
		})
		return Result{
			Status:      StatusPartial,
			Backend:     client.Name(),
			Message:     fmt.Sprintf("Resume customized, but error generating cover letter: %v", err),
			Resume:      resume,
			GeneratedAt: time.Now().UTC(),
		}, nil
	}

	resumeFile, err := s.Outputs.SaveResume(resume)
	if err != nil {
		return Result{}, &StorageError{Err: err}
	}
	letterFile, err := s.Outputs.SaveCoverLetter(letter)
	if err != nil {
		return Result{}, &StorageError{Err: err}
	}

	metrics.IncGenerationCompleted()
	telemetry.Info("generate.complete", map[string]any{
		"backend":     client.Name(),
		"resume_file": resumeFile,
		"letter_file": letterFile,
	})
	return Result{
		Status:          StatusSuccess,
		Backend:         client.Name(),
		Message:         "Documents generated successfully with " + client.Name(),
		Resume:          resume,
		CoverLetter:     letter,
		GeneratedAt:     time.Now().UTC(),
		ResumeFile:      resumeFile,
		CoverLetterFile: letterFile,
	}, nil
}

// RegenerateResumeInput carries a resume-only regeneration request.
type RegenerateResumeInput struct {
	JobDescription     string
	Backend            llm.Backend
	ResumeTemplate     string
	ResumePrompt       string
	CurrentCoverLetter string
}

// RegenerateResume re-runs the resume step only. The existing cover letter is
// preserved unchanged even though it was derived from the replaced resume;
// the result flags it as stale rather than silently regenerating it.
func (s *Service) RegenerateResume(ctx context.Context, gw *llm.Gateway, in RegenerateResumeInput) (Result, error) {
	client, err := gw.ClientFor(in.Backend)
	if err != nil {
		return Result{}, &UnavailableError{Backend: in.Backend}
	}

	resumeTemplate, err := s.resolveTemplate(in.ResumeTemplate, templates.KindResume)
	if err != nil {
		return Result{}, err
	}
	resumePrompt, _ := s.resolvePrompts(in.ResumePrompt, "")

	resume, err := client.Complete(ctx, llm.ResumeRequest(resumePrompt, in.JobDescription, resumeTemplate))
	if err != nil {
		return Result{}, &BackendError{Stage: stageResume, Backend: client.Name(), Err: err}
	}

	resumeFile, err := s.Outputs.SaveResume(resume)
	if err != nil {
		return Result{}, &StorageError{Err: err}
	}

	return Result{
		Status:           StatusSuccess,
		Backend:          client.Name(),
		Message:          "Resume regenerated successfully using " + client.Name(),
		Resume:           resume,
		CoverLetter:      in.CurrentCoverLetter,
		CoverLetterStale: in.CurrentCoverLetter != "",
		GeneratedAt:      time.Now().UTC(),
		ResumeFile:       resumeFile,
	}, nil
}

// RegenerateCoverLetterInput carries a cover-letter-only regeneration request.
type RegenerateCoverLetterInput struct {
	JobDescription      string
	Backend             llm.Backend
	CurrentResume       string
	CoverLetterTemplate string
	CoverLetterPrompt   string
}

// RegenerateCoverLetter re-runs the cover letter step against an existing
// customized resume.
func (s *Service) RegenerateCoverLetter(ctx context.Context, gw *llm.Gateway, in RegenerateCoverLetterInput) (Result, error) {
	if strings.TrimSpace(in.CurrentResume) == "" {
		return Result{}, ErrResumeRequired
	}

	client, err := gw.ClientFor(in.Backend)
	if err != nil {
		return Result{}, &UnavailableError{Backend: in.Backend}
	}

	coverTemplate, err := s.resolveTemplate(in.CoverLetterTemplate, templates.KindCoverLetter)
	if err != nil {
		return Result{}, err
	}
	_, coverPrompt := s.resolvePrompts("", in.CoverLetterPrompt)

	letter, err := client.Complete(ctx, llm.CoverLetterRequest(coverPrompt, in.JobDescription, in.CurrentResume, coverTemplate))
	if err != nil {
		return Result{}, &BackendError{Stage: stageCoverLetter, Backend: client.Name(), Err: err}
	}

	letterFile, err := s.Outputs.SaveCoverLetter(letter)
	if err != nil {
		return Result{}, &StorageError{Err: err}
	}

	return Result{
		Status:          StatusSuccess,
		Backend:         client.Name(),
		Message:         "Cover letter regenerated successfully using " + client.Name(),
		Resume:          in.CurrentResume,
		CoverLetter:     letter,
		GeneratedAt:     time.Now().UTC(),
		CoverLetterFile: letterFile,
	}, nil
}

func (s *Service) resolveTemplate(override string, kind templates.Kind) (string, error) {
	if override != "" {
		return override, nil
	}
	content, err := s.Templates.Load(kind)
	if err != nil {
		return "", &StorageError{Err: err}
	}
	return content, nil
}

func (s *Service) resolvePrompts(resumeOverride, coverOverride string) (string, string) {
	stored := s.Prompts.Load()
	resume := resumeOverride
	if strings.TrimSpace(resume) == "" {
		resume = stored.ResumePrompt
	}
	cover := coverOverride
	if strings.TrimSpace(cover) == "" {
		cover = stored.CoverLetterPrompt
	}
	return resume, cover
}
