package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Backend identifies one of the hosted completion services.
type Backend string

const (
	BackendGemini     Backend = "gemini"
	BackendOpenRouter Backend = "openrouter"
)

// ErrUnknownBackend signals a backend choice outside the supported pair.
var ErrUnknownBackend = errors.New("unknown backend")

// ParseBackend normalizes a raw backend choice. The DeepSeek aliases exist
// because the OpenRouter backend serves a DeepSeek model and older clients
// send the model name as the choice.
func ParseBackend(raw string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "gemini":
		return BackendGemini, nil
	case "openrouter", "deepseek":
		return BackendOpenRouter, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownBackend, raw)
	}
}

// DisplayName returns the user-facing backend name used in messages.
func (b Backend) DisplayName() string {
	switch b {
	case BackendGemini:
		return "Gemini"
	case BackendOpenRouter:
		return "DeepSeek"
	default:
		return string(b)
	}
}

// Request carries one assembled completion request. System is the stage
// persona; chat-style backends send it as the system message, backends
// without a system role ignore it.
type Request struct {
	System string
	Prompt string
}

// Stage personas for chat-style backends.
const (
	resumeSystem      = "You are a professional resume writer."
	coverLetterSystem = "You are a professional cover letter writer."
)

// Client abstracts a hosted completion backend. Implementations send the
// already-assembled request and return the raw completion text.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
	Name() string
}

// ResumeRequest assembles the resume customization request: the instruction
// text followed by labeled context sections in fixed order.
func ResumeRequest(instructions, jobDescription, resumeTemplate string) Request {
	return Request{
		System: resumeSystem,
		Prompt: fmt.Sprintf("%s\n\nJob Description:\n%s\n\nResume Template:\n%s",
			instructions, jobDescription, resumeTemplate),
	}
}

// CoverLetterRequest assembles the cover letter generation request. The
// customized resume, never the raw template, is the resume context.
func CoverLetterRequest(instructions, jobDescription, resume, coverLetterTemplate string) Request {
	return Request{
		System: coverLetterSystem,
		Prompt: fmt.Sprintf("%s\n\nJob Description:\n%s\n\nResume:\n%s\n\nCover Letter Template:\n%s",
			instructions, jobDescription, resume, coverLetterTemplate),
	}
}
