package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"product-extractor/internal/types"
)

var _ types.Logger = (*logrus.Logger)(nil)
var _ types.Logger = (*logrus.Entry)(nil)

func TestNew_Levels(t *testing.T) {
	assert.Equal(t, logrus.InfoLevel, New("", "text").GetLevel())
	assert.Equal(t, logrus.DebugLevel, New("debug", "text").GetLevel())
	assert.Equal(t, logrus.WarnLevel, New("WARN", "text").GetLevel())
	assert.Equal(t, logrus.InfoLevel, New("chatty", "text").GetLevel())
}

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput(&buf, "info", "text")

	logger.Debug("hidden")
	logger.Info("Extraction finished")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "Extraction finished")
	assert.Regexp(t, `time="\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\.\d{3}"`, out)
}

func TestComponent_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithOutput(&buf, "info", "json")

	Component(logger, "monitor").Info("Stock check done")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "monitor", line["component"])
	assert.Equal(t, "Stock check done", line["msg"])
	assert.Equal(t, "info", line["level"])
}
