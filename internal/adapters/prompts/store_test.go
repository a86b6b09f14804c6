package prompts_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaviyasaravananibm/vibe-narrative/internal/adapters/prompts"
	"github.com/kaviyasaravananibm/vibe-narrative/internal/domain"
)

func TestEmbeddedStore_CoversEveryEmotion(t *testing.T) {
	s, err := prompts.NewEmbeddedStore()
	require.NoError(t, err)

	seen := make(map[string]domain.Emotion)
	for _, e := range domain.Emotions() {
		p, err := s.Prompt(context.Background(), e)
		require.NoError(t, err, e)
		assert.Contains(t, p.System, "3-4 paragraphs")
		assert.True(t, strings.HasPrefix(p.User, "Write a"), "prompt for %s: %q", e, p.User)

		other, dup := seen[p.User]
		assert.False(t, dup, "%s shares its prompt with %s", e, other)
		seen[p.User] = e
	}
}

func TestParse_MissingEmotion(t *testing.T) {
	raw := `{"system":"sys","emotions":{"joy":"a","fear":"b","sadness":"c","anger":"d"}}`
	_, err := prompts.Parse([]byte(raw))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no prompt for love")
}

func TestParse_UnknownEmotion(t *testing.T) {
	raw := `{"system":"sys","emotions":{"joy":"a","fear":"b","sadness":"c","anger":"d","love":"e","envy":"f"}}`
	_, err := prompts.Parse([]byte(raw))
	assert.True(t, errors.Is(err, domain.ErrUnknownEmotion), "got %v", err)
}

func TestParse_EmptySystem(t *testing.T) {
	raw := `{"system":"  ","emotions":{"joy":"a","fear":"b","sadness":"c","anger":"d","love":"e"}}`
	_, err := prompts.Parse([]byte(raw))
	require.Error(t, err)
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := prompts.Parse([]byte("{"))
	require.Error(t, err)
}

func TestNewFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.json")
	raw := `{"system":"Be brief.","emotions":{"joy":"j","fear":"f","sadness":"s","anger":"a","love":"l"}}`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o600))

	s, err := prompts.NewFileStore(path)
	require.NoError(t, err)

	p, err := s.Prompt(context.Background(), domain.Anger)
	require.NoError(t, err)
	assert.Equal(t, domain.Prompt{System: "Be brief.", User: "a"}, p)
}

func TestNewFileStore_Missing(t *testing.T) {
	_, err := prompts.NewFileStore(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
}
