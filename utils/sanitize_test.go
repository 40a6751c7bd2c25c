package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize_StripsScriptsKeepsMarkup(t *testing.T) {
	out := Sanitize(`<p>hello <script>alert(1)</script><b>world</b></p>`)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "<b>world</b>")
}

func TestSanitize_PlainTextUntouched(t *testing.T) {
	assert.Equal(t, "just words", Sanitize("just words"))
}
