package workflow

import (
	"errors"
	"fmt"

	"resume-tailor/internal/llm"
)

// Precondition failures. These surface verbatim as user-facing messages and
// never reach the model gateway.
var (
	ErrJobDescriptionRequired     = errors.New("Please enter a job description")
	ErrResumeTemplateMissing      = errors.New("Resume template is missing")
	ErrCoverLetterTemplateMissing = errors.New("Cover letter template is missing")
	ErrResumeRequired             = errors.New("Please generate a resume first")
)

// UnavailableError reports a backend whose credential is not configured.
type UnavailableError struct {
	Backend llm.Backend
}

func (e *UnavailableError) Error() string {
	return e.Backend.DisplayName() + " API is not available"
}

// Pipeline stages, used to phrase backend failure messages.
const (
	stageResume      = "customizing resume"
	stageCoverLetter = "generating cover letter"
)

// BackendError wraps a completion failure from one pipeline stage. Transport
// and API errors are converted here and never propagate raw.
type BackendError struct {
	Stage   string
	Backend string
	Err     error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("Error %s with %s: %v", e.Stage, e.Backend, e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// StorageError wraps a failed artifact or store write.
type StorageError struct {
	Err error
}

func (e *StorageError) Error() string {
	return "storage unavailable: " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
