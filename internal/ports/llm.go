package ports

import "context"

// WriteInput holds the two chat turns sent to the inference API.
type WriteInput struct {
	Emotion string
	System  string
	User    string
}

// Usage is the token accounting reported by the inference API, if any.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// WriteOutput is the generated story text.
type WriteOutput struct {
	Text  string
	Model string
	Usage Usage
}

// StoryWriter generates story text via an LLM.
type StoryWriter interface {
	// Ready reports whether the writer has what it needs to call upstream.
	Ready() error
	Write(ctx context.Context, in WriteInput) (WriteOutput, error)
}
