package ports

import (
	"context"

	"github.com/kaviyasaravananibm/vibe-narrative/internal/domain"
)

// PromptCatalog resolves the chat turns used to write a story for an emotion.
type PromptCatalog interface {
	Prompt(ctx context.Context, emotion domain.Emotion) (domain.Prompt, error)
}
