package formatter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripShortcodes(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"before [gallery] after", "before  after"},
		{"[caption id=\"x\" align=\"left\"]photo[/caption]", "photo"},
		{"[purchase_link id=\"42\" text=\"Buy\"]", ""},
		{"keep [this", "keep [this"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, stripShortcodes(tt.in))
	}
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, "short", summarize("short", 100))
	assert.Equal(t, "bold text", summarize("<p><b>bold</b> text</p>", 100))

	long := strings.Repeat("word ", 30)
	got := summarize(long, 24)
	assert.LessOrEqual(t, len(got), 24)
	assert.False(t, strings.HasSuffix(got, " "), "cut lands on a word boundary")
	assert.Equal(t, "word word word word", got)
}
