package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/kaviyasaravananibm/vibe-narrative/internal/domain"
)

// FailureMessage is the transient notification shown when a generation fails.
const FailureMessage = "Failed to generate story. Please try again."

var (
	ErrAlreadyGenerating = errors.New("a story is already being generated")
	ErrNoEmotionSelected = errors.New("no emotion selected")
)

// State is the picker state owned by one view.
type State struct {
	SelectedEmotion domain.Emotion // empty until the first request
	StoryText       string
	IsGenerating    bool
}

// ShowStory reports whether the story and the regenerate control should be visible.
func (s State) ShowStory() bool {
	return s.StoryText != "" && !s.IsGenerating
}

// StoryRequester is satisfied by *Client.
type StoryRequester interface {
	GenerateStory(ctx context.Context, emotion domain.Emotion) (string, error)
}

type Session struct {
	requester StoryRequester
	notify    func(message string)
	observe   func(State)
	logger    *slog.Logger

	mu    sync.Mutex
	state State
}

type SessionOption func(*Session)

// WithNotifier receives transient user-facing failure messages.
func WithNotifier(fn func(message string)) SessionOption {
	return func(s *Session) { s.notify = fn }
}

// WithObserver is called with a snapshot after every state change.
func WithObserver(fn func(State)) SessionOption {
	return func(s *Session) { s.observe = fn }
}

func WithLogger(l *slog.Logger) SessionOption {
	return func(s *Session) { s.logger = l }
}

func NewSession(r StoryRequester, opts ...SessionOption) *Session {
	s := &Session{
		requester: r,
		notify:    func(string) {},
		observe:   func(State) {},
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// RequestStory clears the previous story, makes one relay call and
// stores the result. On failure the story stays empty, the notifier
// fires and the error is returned. IsGenerating is reset even if the
// requester panics.
func (s *Session) RequestStory(ctx context.Context, emotion domain.Emotion) error {
	if !emotion.Valid() {
		return fmt.Errorf("%w %q", domain.ErrUnknownEmotion, string(emotion))
	}

	s.mu.Lock()
	if s.state.IsGenerating {
		s.mu.Unlock()
		return ErrAlreadyGenerating
	}
	s.state = State{SelectedEmotion: emotion, IsGenerating: true}
	snap := s.state
	s.mu.Unlock()
	s.observe(snap)

	var text string
	defer func() {
		s.mu.Lock()
		s.state.StoryText = text
		s.state.IsGenerating = false
		snap := s.state
		s.mu.Unlock()
		s.observe(snap)
	}()

	text, err := s.requester.GenerateStory(ctx, emotion)
	if err != nil {
		s.logger.Error("error generating story", "emotion", emotion, "error", err)
		s.notify(FailureMessage)
		text = ""
	}
	return err
}

// Regenerate repeats the request for the currently selected emotion.
func (s *Session) Regenerate(ctx context.Context) error {
	s.mu.Lock()
	emotion := s.state.SelectedEmotion
	s.mu.Unlock()

	if emotion == "" {
		return ErrNoEmotionSelected
	}
	return s.RequestStory(ctx, emotion)
}
