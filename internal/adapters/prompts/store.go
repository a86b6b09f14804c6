package prompts

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/kaviyasaravananibm/vibe-narrative/internal/domain"
)

//go:embed data/prompts.json
var promptFS embed.FS

const embeddedFile = "data/prompts.json"

// catalogFile is the on-disk shape of a prompt catalog.
type catalogFile struct {
	System   string            `json:"system"`
	Emotions map[string]string `json:"emotions"`
}

// Store holds one prompt per emotion plus the shared system instruction.
// It is immutable once loaded.
type Store struct {
	system  string
	prompts map[domain.Emotion]string
}

// NewEmbeddedStore loads the catalog compiled into the binary.
func NewEmbeddedStore() (*Store, error) {
	raw, err := promptFS.ReadFile(embeddedFile)
	if err != nil {
		return nil, fmt.Errorf("read embedded prompts: %w", err)
	}
	return Parse(raw)
}

// NewFileStore loads a catalog override from disk.
func NewFileStore(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prompts file %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes a catalog and checks that every emotion has a prompt.
// Entries for tags outside the emotion set are rejected so a typo
// cannot silently leave an emotion uncovered.
func Parse(raw []byte) (*Store, error) {
	var f catalogFile
	if err := json.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse prompts: %w", err)
	}

	if strings.TrimSpace(f.System) == "" {
		return nil, fmt.Errorf("parse prompts: system instruction is empty")
	}

	s := &Store{
		system:  strings.TrimSpace(f.System),
		prompts: make(map[domain.Emotion]string, len(f.Emotions)),
	}
	for tag, text := range f.Emotions {
		e, err := domain.ParseEmotion(tag)
		if err != nil {
			return nil, fmt.Errorf("parse prompts: %w", err)
		}
		s.prompts[e] = strings.TrimSpace(text)
	}

	for _, e := range domain.Emotions() {
		if s.prompts[e] == "" {
			return nil, fmt.Errorf("parse prompts: no prompt for %s", e)
		}
	}

	return s, nil
}

func (s *Store) Prompt(_ context.Context, e domain.Emotion) (domain.Prompt, error) {
	text, ok := s.prompts[e]
	if !ok {
		return domain.Prompt{}, fmt.Errorf("%w: %s", domain.ErrPromptNotFound, e)
	}
	return domain.Prompt{System: s.system, User: text}, nil
}
