package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Load(t *testing.T) {
	t.Run("binds the token and applies defaults", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "fake-token")

		cfg, err := NewLoader().Load()
		require.NoError(t, err)
		assert.Equal(t, "fake-token", cfg.GithubToken)
		assert.Equal(t, 100, cfg.PerPage)
		assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	})

	t.Run("a missing token is not a load failure", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "")

		cfg, err := NewLoader().Load()
		require.NoError(t, err)
		assert.Empty(t, cfg.GithubToken)
	})

	t.Run("rejects an out-of-range page size", func(t *testing.T) {
		t.Setenv("GITHUB_TOKEN", "fake-token")
		t.Setenv("GITHUB_PER_PAGE", "500")

		_, err := NewLoader().Load()
		assert.ErrorContains(t, err, "config validation")
	})
}
