// Package vault is the markdown note store: one file per note under the
// DARS config directory, with a small front-matter header.
package vault

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Meta is the front-matter header carried by every note.
type Meta struct {
	Title string `yaml:"title"`
	Date  string `yaml:"date"`
}

type Store struct {
	dir string
}

// DefaultDir is <user config dir>/DARS/mdvault.
func DefaultDir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "DARS", "mdvault"), nil
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create vault dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

var (
	invalidChars = regexp.MustCompile(`[^\w\s-]`)
	headerRe     = regexp.MustCompile(`(?s)^---\n.*?\n---\n`)
)

// SanitizeTitle converts a note title to its filename stem: invalid
// characters stripped, spaces replaced with underscores.
func SanitizeTitle(title string) string {
	s := invalidChars.ReplaceAllString(title, "")
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "_")
}

func (s *Store) path(title string) string {
	return filepath.Join(s.dir, SanitizeTitle(title)+".md")
}

// Create writes a new note with a front-matter header. An empty title gets
// a timestamped default, an empty body the literal "Empty note".
func (s *Store) Create(title, content string) (string, error) {
	if title == "" {
		title = "Note_" + time.Now().Format("20060102_150405")
	}
	if content == "" {
		content = "Empty note"
	}

	body := fmt.Sprintf("---\ntitle: %s\ndate: %s\n---\n\n%s\n",
		title, time.Now().Format("2006-01-02"), content)

	if err := os.WriteFile(s.path(title), []byte(body), 0o644); err != nil {
		return "", fmt.Errorf("write note: %w", err)
	}
	return SanitizeTitle(title) + ".md", nil
}

// Read returns the full note text, header included.
func (s *Store) Read(title string) (string, error) {
	if title == "" {
		return "", fmt.Errorf("no title provided")
	}
	data, err := os.ReadFile(s.path(title))
	if os.IsNotExist(err) {
		return "", fmt.Errorf("note %q not found", title)
	}
	if err != nil {
		return "", fmt.Errorf("read note: %w", err)
	}
	return string(data), nil
}

// Modify replaces the note body while preserving the front-matter header.
// Empty content is rejected rather than erasing the body.
func (s *Store) Modify(title, content string) error {
	if title == "" {
		return fmt.Errorf("no title provided")
	}
	if content == "" {
		return fmt.Errorf("no content provided")
	}
	current, err := os.ReadFile(s.path(title))
	if os.IsNotExist(err) {
		return fmt.Errorf("note %q not found", title)
	}
	if err != nil {
		return fmt.Errorf("read note: %w", err)
	}

	header := headerRe.FindString(string(current))
	if err := os.WriteFile(s.path(title), []byte(header+content), 0o644); err != nil {
		return fmt.Errorf("write note: %w", err)
	}
	return nil
}

func (s *Store) Delete(title string) error {
	if title == "" {
		return fmt.Errorf("no title provided")
	}
	err := os.Remove(s.path(title))
	if os.IsNotExist(err) {
		return fmt.Errorf("note %q not found", title)
	}
	return err
}

// List returns the front matter of every note in the vault.
func (s *Store) List() ([]Meta, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("read vault dir: %w", err)
	}

	var metas []Meta
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.dir, e.Name()))
		if err != nil {
			continue
		}
		metas = append(metas, parseMeta(string(data), e.Name()))
	}
	return metas, nil
}

func parseMeta(content, filename string) Meta {
	header := headerRe.FindString(content)
	m := Meta{Title: strings.TrimSuffix(filename, ".md")}
	if header == "" {
		return m
	}
	raw := strings.TrimSuffix(strings.TrimPrefix(header, "---\n"), "---\n")
	var parsed Meta
	if err := yaml.Unmarshal([]byte(raw), &parsed); err == nil && parsed.Title != "" {
		return parsed
	}
	return m
}
