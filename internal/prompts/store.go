package prompts

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	//go:embed defaults/resume_prompt.txt
	defaultResumePrompt string
	//go:embed defaults/cover_letter_prompt.txt
	defaultCoverLetterPrompt string
)

// Defaults returns the built-in instruction strings.
func Defaults() Prompts {
	return Prompts{
		ResumePrompt:      defaultResumePrompt,
		CoverLetterPrompt: defaultCoverLetterPrompt,
	}
}

// Prompts is the pair of instruction strings prepended to backend requests.
type Prompts struct {
	ResumePrompt      string `json:"resume_prompt"`
	CoverLetterPrompt string `json:"cover_letter_prompt"`
}

// Store persists the prompt pair as a single JSON record.
type Store struct {
	path string
}

// NewStore creates a prompt store backed by the record at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the persisted prompt pair. A missing record, unreadable record
// or missing field falls back to the built-in default for that field only.
func (s *Store) Load() Prompts {
	out := Defaults()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return out
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return out
	}

	if field, ok := raw["resume_prompt"]; ok {
		var v string
		if err := json.Unmarshal(field, &v); err == nil && strings.TrimSpace(v) != "" {
			out.ResumePrompt = v
		}
	}
	if field, ok := raw["cover_letter_prompt"]; ok {
		var v string
		if err := json.Unmarshal(field, &v); err == nil && strings.TrimSpace(v) != "" {
			out.CoverLetterPrompt = v
		}
	}
	return out
}

// Save persists both prompts as one atomic record via temp-file rename.
func (s *Store) Save(p Prompts) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("save prompts: mkdir: %w", err)
	}

	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("save prompts: marshal: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("save prompts: write: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("save prompts: rename: %w", err)
	}
	return nil
}
