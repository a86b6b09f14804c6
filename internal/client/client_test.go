package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaviyasaravananibm/vibe-narrative/internal/client"
	"github.com/kaviyasaravananibm/vibe-narrative/internal/domain"
)

// relay is a fake story relay recording the emotions it was asked for.
type relay struct {
	mu       sync.Mutex
	emotions []string
	sessions []string
	status   int
	body     string
}

func (r *relay) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	var in struct {
		Emotion string `json:"emotion"`
	}
	_ = json.NewDecoder(req.Body).Decode(&in)

	r.mu.Lock()
	r.emotions = append(r.emotions, in.Emotion)
	r.sessions = append(r.sessions, req.Header.Get("X-Client-Session"))
	status, body := r.status, r.body
	r.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]string{"story": "A " + in.Emotion + " story."})
}

func (r *relay) calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.emotions...)
}

func (r *relay) sessionIDs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.sessions...)
}

func TestClient_GenerateStory(t *testing.T) {
	r := &relay{}
	srv := httptest.NewServer(r)
	defer srv.Close()

	c := client.New(srv.URL+"/", client.WithHTTPClient(srv.Client()), client.WithSessionID("tab-9"))

	story, err := c.GenerateStory(context.Background(), domain.Anger)
	require.NoError(t, err)
	assert.Equal(t, "A anger story.", story)
	assert.Equal(t, []string{"anger"}, r.calls())
	assert.Equal(t, []string{"tab-9"}, r.sessionIDs())
}

func TestClient_GenerateStory_ErrorResponse(t *testing.T) {
	r := &relay{status: http.StatusInternalServerError, body: `{"error":"Failed to generate story"}`}
	srv := httptest.NewServer(r)
	defer srv.Close()

	c := client.New(srv.URL, client.WithHTTPClient(srv.Client()))

	_, err := c.GenerateStory(context.Background(), domain.Love)

	var respErr *client.ResponseError
	require.True(t, errors.As(err, &respErr), "got %v", err)
	assert.Equal(t, http.StatusInternalServerError, respErr.StatusCode)
	assert.Equal(t, "Failed to generate story", respErr.Message)
	assert.Len(t, r.calls(), 1, "no retry")
}

func TestClient_GenerateStory_Malformed(t *testing.T) {
	for name, body := range map[string]string{
		"not json":    `<html>`,
		"no story":    `{}`,
		"empty story": `{"story":""}`,
	} {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			defer srv.Close()

			_, err := client.New(srv.URL).GenerateStory(context.Background(), domain.Joy)
			assert.ErrorIs(t, err, client.ErrMalformedResponse)
		})
	}
}

func TestClient_GenerateStory_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := client.New(url).GenerateStory(context.Background(), domain.Joy)
	require.Error(t, err)
}
