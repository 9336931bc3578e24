package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslator_T(t *testing.T) {
	tr := NewTranslator("en")

	assert.Equal(t, "Already checked in today.", tr.T("", "error.already_checked_in", nil))
	assert.Equal(t, "Ticket booked! Your code is TCK-123456-7.", tr.T("en", "success.booked", map[string]any{"Code": "TCK-123456-7"}))
	assert.Equal(t, "अमान्य भूमिका", tr.T("hi", "error.invalid_role", nil))
	assert.Equal(t, "अमान्य भूमिका", tr.T("hi-IN,hi;q=0.9,en;q=0.8", "error.invalid_role", nil))
}

func TestTranslator_Fallbacks(t *testing.T) {
	tr := NewTranslator("not a locale")

	assert.Equal(t, "No valid numbers found", tr.T("fr", "messaging.no_valid_numbers", nil))
	assert.Equal(t, "missing.key", tr.T("en", "missing.key", nil))
	assert.Equal(t, "", tr.T("en", "", nil))

	var nilTr *Translator
	assert.Equal(t, "error.internal", nilTr.T("en", "error.internal", nil))
}
