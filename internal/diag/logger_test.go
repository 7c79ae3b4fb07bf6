package diag

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger_WritesOneLinePerEvent(t *testing.T) {
	var buf strings.Builder
	logger := NewLogger(&buf)

	logger.Info().Str("component", "gc").Int("cycle", 1).Log("gc cycle")

	out := buf.String()
	assert.Contains(t, out, "gc cycle")
	assert.Contains(t, out, "component=\"gc\"")
	assert.Contains(t, out, "cycle=1")
}

func TestNewLogger_NilWriterDiscardsSilently(t *testing.T) {
	assert.NotPanics(t, func() {
		Discard.Info().Str("k", "v").Log("discarded")
	})
}
