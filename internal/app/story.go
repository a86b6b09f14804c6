package app

import (
	"context"
	"fmt"
	"time"

	"github.com/kaviyasaravananibm/vibe-narrative/internal/domain"
	"github.com/kaviyasaravananibm/vibe-narrative/internal/ports"
)

// GenerateStoryRequest is the application-level input (no HTTP types).
type GenerateStoryRequest struct {
	Emotion   string
	SessionID string
}

// GenerateStoryResponse is the application-level output.
type GenerateStoryResponse struct {
	Story     domain.StoryResult
	Model     string
	LatencyMS int64
}

// StoryService turns an emotion into one upstream generation call.
type StoryService struct {
	prompts ports.PromptCatalog
	writer  ports.StoryWriter
	guard   ports.SessionGuard
	model   string
}

// NewStoryService wires the service. guard may be nil, in which case
// concurrent requests from one session are not restricted.
func NewStoryService(pc ports.PromptCatalog, w ports.StoryWriter, guard ports.SessionGuard, model string) *StoryService {
	return &StoryService{
		prompts: pc,
		writer:  w,
		guard:   guard,
		model:   model,
	}
}

func (s *StoryService) GenerateStory(ctx context.Context, req GenerateStoryRequest) (GenerateStoryResponse, error) {
	// A missing credential fails every request, whatever the emotion.
	if err := s.writer.Ready(); err != nil {
		return GenerateStoryResponse{}, err
	}

	emotion, err := domain.ParseEmotion(req.Emotion)
	if err != nil {
		return GenerateStoryResponse{}, err
	}

	prompt, err := s.prompts.Prompt(ctx, emotion)
	if err != nil {
		return GenerateStoryResponse{}, fmt.Errorf("get prompt: %w", err)
	}

	if s.guard != nil && req.SessionID != "" {
		release, err := s.guard.Acquire(ctx, req.SessionID)
		if err != nil {
			return GenerateStoryResponse{}, err
		}
		defer release()
	}

	start := time.Now()
	out, err := s.writer.Write(ctx, ports.WriteInput{
		Emotion: string(emotion),
		System:  prompt.System,
		User:    prompt.User,
	})
	latency := time.Since(start).Milliseconds()

	if err != nil {
		return GenerateStoryResponse{}, fmt.Errorf("write story: %w", err)
	}

	return GenerateStoryResponse{
		Story: domain.StoryResult{
			Emotion: emotion,
			Text:    out.Text,
		},
		Model:     storyModel(out.Model, s.model),
		LatencyMS: latency,
	}, nil
}

func storyModel(fromLLM, fallback string) string {
	if fromLLM != "" {
		return fromLLM
	}
	return fallback
}
