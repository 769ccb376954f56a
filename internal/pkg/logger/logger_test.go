package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hallpoint/internal/pkg/logger"
)

func TestLogger_WritesJSONWithFields(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, "debug")

	log.Info("Refeição publicada.", map[string]interface{}{"meal_id": "abc"})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "Refeição publicada.", entry["message"])
	assert.Equal(t, "abc", entry["meal_id"])
}

func TestLogger_RespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, "error")

	log.Debug("ignorado", nil)
	log.Info("ignorado", nil)
	log.Warn("ignorado", nil)
	assert.Empty(t, buf.String())

	log.Error("falha no DB", errors.New("conexão recusada"))
	assert.True(t, strings.Contains(buf.String(), "conexão recusada"))
}
