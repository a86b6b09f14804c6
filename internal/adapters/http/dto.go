package http

import "encoding/json"

// GenerateStoryRequest is the JSON body of POST /generate-story.
// Emotion is kept raw so a non-string value is reported as an unknown
// emotion rather than a malformed body.
type GenerateStoryRequest struct {
	Emotion json.RawMessage `json:"emotion"`
}

// EmotionValue returns the emotion field as text. A JSON string is
// unquoted; any other JSON value is returned verbatim.
func (r GenerateStoryRequest) EmotionValue() string {
	var s string
	if err := json.Unmarshal(r.Emotion, &s); err == nil {
		return s
	}
	return string(r.Emotion)
}

// StoryResponse is the JSON shape returned on success.
type StoryResponse struct {
	Story   string   `json:"story"`
	Emotion string   `json:"emotion"`
	Meta    MetaResp `json:"meta"`
}

type MetaResp struct {
	Model     string `json:"model"`
	RequestID string `json:"request_id"`
	LatencyMS int64  `json:"latency_ms"`
}

type EmotionResp struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Emoji string `json:"emoji"`
}

type EmotionsResponse struct {
	Emotions []EmotionResp `json:"emotions"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
