package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel(DebugLevel))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(WarnLevel))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestConfigure_FileGetsJSON(t *testing.T) {
	defer Configure(Config{Level: InfoLevel, Pretty: true})

	var console, file bytes.Buffer
	Configure(Config{Level: InfoLevel, Pretty: true, Output: &console, File: &file})

	Info().Str("sessionID", "7").Msg("Session created")
	Debug().Msg("hidden at info level")

	assert.Contains(t, console.String(), "Session created")

	var event map[string]interface{}
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(file.Bytes()), &event))
	assert.Equal(t, "Session created", event["message"])
	assert.Equal(t, "7", event["sessionID"])
	assert.NotContains(t, file.String(), "hidden")
}

func TestNewRotatingWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "yoga-app.log")
	w, err := NewRotatingWriter(FileConfig{Path: path, RotationTime: time.Hour, MaxAge: 24 * time.Hour})
	require.NoError(t, err)

	_, err = w.Write([]byte("{\"message\":\"hello\"}\n"))
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "hello")
}
