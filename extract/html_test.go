package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"simple paragraph", "<p>Hi</p>", "Hi"},
		{"nested markup", "<div><p>Hello <b>world</b></p></div>", "Hello world"},
		{"plain text passthrough", "just text", "just text"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripHTML(tt.html))
		})
	}
}

func TestStripHTML_RemovesScripts(t *testing.T) {
	html := `<div><script>alert("x")</script><p>Visible</p><style>p{color:red}</style></div>`
	assert.Equal(t, "Visible", StripHTML(html))
}

func TestStripHTML_CollapsesBlankLines(t *testing.T) {
	html := "<p>First</p>\n\n\n\n<p>Second</p>"
	out := StripHTML(html)
	assert.Contains(t, out, "First")
	assert.Contains(t, out, "Second")
	assert.NotContains(t, out, "\n\n\n")
}
