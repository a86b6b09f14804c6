package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kaviyasaravananibm/vibe-narrative/internal/app"
	"github.com/kaviyasaravananibm/vibe-narrative/internal/domain"
)

// HeaderClientSession identifies a client session for the optional single-flight guard.
const HeaderClientSession = "X-Client-Session"

const (
	msgGenerationFailed = "Failed to generate story"
	msgUnknownError     = "Unknown error"
)

type Handler struct {
	svc *app.StoryService
}

func NewHandler(svc *app.StoryService) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/healthz", h.Healthz)
	e.GET("/v1/emotions", h.ListEmotions)
	e.POST("/generate-story", h.GenerateStory)
}

func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) ListEmotions(c echo.Context) error {
	all := domain.Emotions()
	out := EmotionsResponse{Emotions: make([]EmotionResp, len(all))}
	for i, e := range all {
		out.Emotions[i] = EmotionResp{Value: string(e), Label: e.Label(), Emoji: e.Emoji()}
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GenerateStory(c echo.Context) error {
	// Decoded directly so a missing Content-Type header is tolerated.
	var body GenerateStoryRequest
	if err := json.NewDecoder(c.Request().Body).Decode(&body); err != nil {
		// BodyLimit reports an oversized stream through the reader.
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return he
		}
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
	}

	resp, err := h.svc.GenerateStory(c.Request().Context(), app.GenerateStoryRequest{
		Emotion:   body.EmotionValue(),
		SessionID: c.Request().Header.Get(HeaderClientSession),
	})
	if err != nil {
		return mapError(c, err)
	}

	requestID, _ := c.Get("request_id").(string)

	return c.JSON(http.StatusOK, StoryResponse{
		Story:   resp.Story.Text,
		Emotion: string(resp.Story.Emotion),
		Meta: MetaResp{
			Model:     resp.Model,
			RequestID: requestID,
			LatencyMS: resp.LatencyMS,
		},
	})
}

func mapError(c echo.Context, err error) error {
	ctx := c.Request().Context()
	requestID, _ := c.Get("request_id").(string)

	var statusErr *domain.UpstreamStatusError

	switch {
	case errors.Is(err, domain.ErrUnknownEmotion):
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrSessionBusy):
		return c.JSON(http.StatusConflict, ErrorResponse{Error: domain.ErrSessionBusy.Error()})
	case errors.Is(err, domain.ErrMissingCredential):
		slog.ErrorContext(ctx, "configuration error", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
	case errors.As(err, &statusErr):
		slog.ErrorContext(ctx, "AI gateway error",
			"request_id", requestID,
			"status", statusErr.StatusCode,
			"body", statusErr.Body,
		)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msgGenerationFailed})
	case errors.Is(err, domain.ErrUpstreamLLM):
		slog.ErrorContext(ctx, "upstream LLM failure", "request_id", requestID, "error", err)
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msgGenerationFailed})
	default:
		slog.ErrorContext(ctx, "error in generate-story", "request_id", requestID, "error", err)
		msg := err.Error()
		if msg == "" {
			msg = msgUnknownError
		}
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: msg})
	}
}
