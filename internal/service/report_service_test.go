package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeContentKeepsEmptyEmpty(t *testing.T) {
	assert.Equal(t, "", normalizeContent(""))
}

func TestNormalizeContentWrapsLegacyPlainText(t *testing.T) {
	out := normalizeContent("just an old report body")

	assert.True(t, strings.HasPrefix(out, "{{block-text-"), "got %q", out)
	assert.Contains(t, out, "just an old report body")
}

func TestNormalizeContentIsStableOnCanonicalInput(t *testing.T) {
	once := normalizeContent("meeting notes")
	twice := normalizeContent(once)

	assert.Equal(t, once, twice)
}
