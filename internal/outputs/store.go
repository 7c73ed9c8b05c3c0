package outputs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

const (
	resumePrefix      = "customized_resume_"
	coverLetterPrefix = "cover_letter_"
	artifactExt       = ".tex"
)

// Artifact describes one generated output file.
type Artifact struct {
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	SizeBytes int64     `json:"sizeBytes"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store writes generated documents as transient download artifacts. Artifacts
// are named customized_resume_<unix>.tex and cover_letter_<unix>.tex; the
// store keeps the newest `retain` per kind and prunes the rest.
type Store struct {
	dir    string
	retain int
	now    func() time.Time
}

// NewStore creates an artifact store rooted at dir. retain <= 0 disables
// pruning.
func NewStore(dir string, retain int) *Store {
	return &Store{dir: dir, retain: retain, now: time.Now}
}

// SaveResume writes a customized resume artifact and returns its file name.
func (s *Store) SaveResume(content string) (string, error) {
	return s.save(resumePrefix, content)
}

// SaveCoverLetter writes a cover letter artifact and returns its file name.
func (s *Store) SaveCoverLetter(content string) (string, error) {
	return s.save(coverLetterPrefix, content)
}

func (s *Store) save(prefix, content string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("save artifact: mkdir: %w", err)
	}
	name := fmt.Sprintf("%s%d%s", prefix, s.now().Unix(), artifactExt)
	if err := os.WriteFile(filepath.Join(s.dir, name), []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("save artifact %s: %w", name, err)
	}
	s.prune(prefix)
	return name, nil
}

// List returns artifacts newest-first.
func (s *Store) List() ([]Artifact, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("list artifacts: %w", err)
	}

	var out []Artifact
	for _, entry := range entries {
		kind, ok := kindForName(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		out = append(out, Artifact{
			Name:      entry.Name(),
			Kind:      kind,
			SizeBytes: info.Size(),
			CreatedAt: info.ModTime().UTC(),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Name > out[j].Name
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Open opens an artifact for download. The name must be a bare artifact file
// name; anything path-like is rejected.
func (s *Store) Open(name string) (io.ReadCloser, error) {
	if _, ok := kindForName(name); !ok {
		return nil, fmt.Errorf("invalid artifact name")
	}
	clean := filepath.Clean(name)
	if clean != name || strings.ContainsAny(name, `/\`) {
		return nil, fmt.Errorf("invalid artifact name")
	}
	return os.Open(filepath.Join(s.dir, name))
}

// prune removes the oldest artifacts of one kind beyond the retention count.
func (s *Store) prune(prefix string) {
	if s.retain <= 0 {
		return
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return
	}

	var names []string
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), prefix) && strings.HasSuffix(entry.Name(), artifactExt) {
			names = append(names, entry.Name())
		}
	}
	if len(names) <= s.retain {
		return
	}
	// Unix-timestamp names sort chronologically for same-length stamps.
	sort.Strings(names)
	for _, name := range names[:len(names)-s.retain] {
		_ = os.Remove(filepath.Join(s.dir, name))
	}
}

func kindForName(name string) (string, bool) {
	if !strings.HasSuffix(name, artifactExt) {
		return "", false
	}
	switch {
	case strings.HasPrefix(name, resumePrefix):
		return "resume", true
	case strings.HasPrefix(name, coverLetterPrefix):
		return "cover_letter", true
	default:
		return "", false
	}
}
