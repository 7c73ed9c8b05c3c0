package templates

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Kind identifies which document skeleton a template belongs to.
type Kind string

const (
	KindResume      Kind = "resume"
	KindCoverLetter Kind = "cover_letter"
)

// ErrUnknownKind signals a template kind outside resume/cover_letter.
var ErrUnknownKind = errors.New("unknown template kind")

// ParseKind normalizes a raw kind string.
func ParseKind(raw string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "resume":
		return KindResume, nil
	case "cover_letter", "cover-letter", "coverletter":
		return KindCoverLetter, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, raw)
	}
}

// Store persists document templates as flat .tex files, one per kind.
type Store struct {
	dir string
}

// NewStore creates a template store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Load returns the persisted template content for kind. A missing file is not
// an error; it reads as an empty template.
func (s *Store) Load(kind Kind) (string, error) {
	data, err := os.ReadFile(s.path(kind))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("load template %s: %w", kind, err)
	}
	return string(data), nil
}

// Save overwrites the template for kind unconditionally, creating the
// directory on first use. Content is opaque; no format validation happens.
func (s *Store) Save(kind Kind, content string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("save template %s: mkdir: %w", kind, err)
	}
	if err := os.WriteFile(s.path(kind), []byte(content), 0o644); err != nil {
		return fmt.Errorf("save template %s: write: %w", kind, err)
	}
	return nil
}

func (s *Store) path(kind Kind) string {
	return filepath.Join(s.dir, string(kind)+"_template.tex")
}
