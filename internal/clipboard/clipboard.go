// Package clipboard implements the one-click-copy side of the note list:
// turning a note's sanitized HTML into plain text and putting it on the
// system clipboard.
package clipboard

import (
	"strings"

	"github.com/atotto/clipboard"
	"golang.org/x/net/html"
)

// Copier puts text on a clipboard.
type Copier interface {
	Copy(text string) error
}

// SystemCopier writes to the OS clipboard.
type SystemCopier struct{}

func (SystemCopier) Copy(text string) error {
	return clipboard.WriteAll(text)
}

// blockTags are elements whose close produces a line break in the extracted
// plain text.
var blockTags = map[string]bool{
	"p": true, "div": true, "li": true, "br": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"blockquote": true, "pre": true, "tr": true,
}

// PlainText extracts the readable text of a sanitized HTML fragment. Block
// elements become newlines; everything else is concatenated in document
// order. Malformed markup is handled leniently by the tokenizer, so the
// function never fails: worst case it returns the input stripped of tags.
func PlainText(fragment string) string {
	var b strings.Builder
	tokenizer := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(b.String())
		case html.TextToken:
			b.Write(tokenizer.Text())
		case html.EndTagToken, html.SelfClosingTagToken:
			name, _ := tokenizer.TagName()
			if blockTags[string(name)] {
				b.WriteByte('\n')
			}
		}
	}
}
