package logging

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	defer Setup(nil, false)

	t.Run("info", func(t *testing.T) {
		var buf bytes.Buffer
		Setup(&buf, false)
		log.Debug().Msg("hidden")
		log.Info().Str("root", "/tmp").Msg("visible")
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "visible")
		assert.Contains(t, buf.String(), "root=")
		assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
	})

	t.Run("verbose", func(t *testing.T) {
		var buf bytes.Buffer
		Setup(&buf, true)
		log.Debug().Msg("details")
		assert.Contains(t, buf.String(), "details")
		assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
	})
}

func TestOpenFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "treetug.log")
	f, err := OpenFile(p)
	require.NoError(t, err)
	logger := New(f)
	logger.Info().Msg("written")
	require.NoError(t, f.Close())
	assert.FileExists(t, p)
}
