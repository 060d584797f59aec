package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "just text", "just text"},
		{"inline markup", "<p>hello <b>world</b></p>", "hello world"},
		{"paragraphs", "<p>first</p><p>second</p>", "first\nsecond"},
		{"list items", "<ul><li>milk</li><li>eggs</li></ul>", "milk\neggs"},
		{"line breaks", "one<br/>two", "one\ntwo"},
		{"empty", "", ""},
		{"unclosed tag", "<p>dangling", "dangling"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlainText(tt.in))
		})
	}
}
