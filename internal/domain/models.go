package domain

import (
	"fmt"
	"strings"
)

// Emotion is one of the fixed emotion tags a story can be generated for.
type Emotion string

const (
	Joy     Emotion = "joy"
	Fear    Emotion = "fear"
	Sadness Emotion = "sadness"
	Anger   Emotion = "anger"
	Love    Emotion = "love"
)

// emotions lists every tag in display order.
var emotions = []Emotion{Joy, Fear, Sadness, Anger, Love}

var emotionInfo = map[Emotion]struct {
	label string
	emoji string
}{
	Joy:     {"Joy", "😊"},
	Fear:    {"Fear", "😨"},
	Sadness: {"Sadness", "😢"},
	Anger:   {"Anger", "😠"},
	Love:    {"Love", "❤️"},
}

// Emotions returns all emotion tags in display order.
func Emotions() []Emotion {
	out := make([]Emotion, len(emotions))
	copy(out, emotions)
	return out
}

// ParseEmotion converts untrusted input into an Emotion.
// Matching is exact apart from surrounding whitespace.
func ParseEmotion(raw string) (Emotion, error) {
	e := Emotion(strings.TrimSpace(raw))
	if !e.Valid() {
		return "", fmt.Errorf("%w %q", ErrUnknownEmotion, raw)
	}
	return e, nil
}

func (e Emotion) Valid() bool {
	_, ok := emotionInfo[e]
	return ok
}

func (e Emotion) String() string { return string(e) }

// Label is the human-readable name shown in pickers.
func (e Emotion) Label() string { return emotionInfo[e].label }

func (e Emotion) Emoji() string { return emotionInfo[e].emoji }

// Prompt is the pair of chat turns sent upstream for one generation.
type Prompt struct {
	System string
	User   string
}

// StoryResult is a generated story and the emotion it was written for.
type StoryResult struct {
	Emotion Emotion
	Text    string
}
