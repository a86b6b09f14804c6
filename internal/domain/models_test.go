package domain_test

import (
	"errors"
	"testing"

	"github.com/kaviyasaravananibm/vibe-narrative/internal/domain"
)

func TestParseEmotion_AllTags(t *testing.T) {
	for _, want := range domain.Emotions() {
		got, err := domain.ParseEmotion(string(want))
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", want, err)
		}
		if got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	}
}

func TestParseEmotion_TrimsWhitespace(t *testing.T) {
	got, err := domain.ParseEmotion("  love\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != domain.Love {
		t.Errorf("expected love, got %s", got)
	}
}

func TestParseEmotion_Unknown(t *testing.T) {
	for _, raw := range []string{"", "Joy", "boredom", "joy;drop"} {
		_, err := domain.ParseEmotion(raw)
		if !errors.Is(err, domain.ErrUnknownEmotion) {
			t.Errorf("%q: expected ErrUnknownEmotion, got %v", raw, err)
		}
	}
}

func TestEmotions_OrderAndMetadata(t *testing.T) {
	want := []domain.Emotion{domain.Joy, domain.Fear, domain.Sadness, domain.Anger, domain.Love}
	got := domain.Emotions()
	if len(got) != len(want) {
		t.Fatalf("expected %d emotions, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], got[i])
		}
		if got[i].Label() == "" || got[i].Emoji() == "" {
			t.Errorf("%s: missing label or emoji", got[i])
		}
	}

	// Callers must not be able to mutate the canonical list.
	got[0] = "mutated"
	if domain.Emotions()[0] != domain.Joy {
		t.Error("Emotions returned a shared slice")
	}
}

func TestUpstreamStatusError_IsUpstreamLLM(t *testing.T) {
	var err error = &domain.UpstreamStatusError{StatusCode: 503, Body: "busy"}
	if !errors.Is(err, domain.ErrUpstreamLLM) {
		t.Error("expected UpstreamStatusError to match ErrUpstreamLLM")
	}
}

func TestMissingCredentialError_Message(t *testing.T) {
	var err error = &domain.MissingCredentialError{Name: "AI_GATEWAY_API_KEY"}
	if !errors.Is(err, domain.ErrMissingCredential) {
		t.Error("expected MissingCredentialError to match ErrMissingCredential")
	}
	if err.Error() != "AI_GATEWAY_API_KEY is not configured" {
		t.Errorf("unexpected message: %s", err.Error())
	}
}
