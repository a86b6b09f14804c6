package web

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/kaviyasaravananibm/vibe-narrative/internal/domain"
)

// EmotionOption is one button in the picker.
type EmotionOption struct {
	Value string
	Label string
	Emoji string
}

// IndexPage is the data rendered into index.html.
type IndexPage struct {
	Title    string
	Tagline  string
	Endpoint string
	Emotions []EmotionOption
}

// Handler serves the single-page story picker.
type Handler struct {
	renderer *TemplateRenderer
	endpoint string
}

// NewHandler serves a page that posts to endpoint.
func NewHandler(r *TemplateRenderer, endpoint string) *Handler {
	return &Handler{renderer: r, endpoint: endpoint}
}

func (h *Handler) Register(e *echo.Echo) {
	e.Renderer = h.renderer
	e.GET("/", h.Index)
	e.StaticFS("/static", echo.MustSubFS(staticFS, "static"))
}

func (h *Handler) Index(c echo.Context) error {
	all := domain.Emotions()
	page := IndexPage{
		Title:    "Emotion Story Generator",
		Tagline:  "Choose an emotion and watch it come alive through storytelling",
		Endpoint: h.endpoint,
		Emotions: make([]EmotionOption, len(all)),
	}
	for i, e := range all {
		page.Emotions[i] = EmotionOption{Value: string(e), Label: e.Label(), Emoji: e.Emoji()}
	}
	return c.Render(http.StatusOK, "index.html", page)
}
