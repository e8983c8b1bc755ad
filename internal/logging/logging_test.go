package logging_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"duck-sync/internal/logging"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New("debug", "json", &buf)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	logger.WithField("table", "orders").Info("Table synced")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "orders", entry["table"])
	assert.Equal(t, "Table synced", entry["msg"])
}

func TestNew_Invalid(t *testing.T) {
	_, err := logging.New("loud", "text", nil)
	assert.Error(t, err)

	_, err = logging.New("info", "xml", nil)
	assert.Error(t, err)
}
