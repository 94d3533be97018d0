package markup

import (
	"sync"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/html"
)

const mimeHTML = "text/html"

var (
	minifierOnce sync.Once
	minifier     *minify.M
)

func htmlMinifier() *minify.M {
	minifierOnce.Do(func() {
		minifier = minify.New()
		minifier.Add(mimeHTML, &html.Minifier{
			KeepDocumentTags: false,
			KeepEndTags:      true,
			KeepQuotes:       true,
		})
	})
	return minifier
}
