package markup

import (
	"regexp"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policyOnce sync.Once
	policy     *bluemonday.Policy
)

// Policy returns the sanitizer used by Options.Sanitize: the bluemonday UGC
// policy extended with the attributes the note format relies on.
func Policy() *bluemonday.Policy {
	policyOnce.Do(func() { policy = newPolicy() })
	return policy
}

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()

	containerClass := regexp.MustCompile(`^image-container( size-(original|small|medium|large))?$`)
	languageClass := regexp.MustCompile(`^language-[\w+#.-]+$`)
	sizeValue := regexp.MustCompile(`^(original|small|medium|large)$`)
	boolValue := regexp.MustCompile(`^(true|false)$`)

	p.AllowAttrs("class").Matching(containerClass).OnElements("div")
	p.AllowAttrs("data-size").Matching(sizeValue).OnElements("div")
	p.AllowAttrs("src", "alt", "title", "data-asset-path").OnElements("img")
	p.AllowAttrs("id").Matching(bluemonday.Paragraph).OnElements("h1", "h2", "h3", "h4", "h5", "h6")
	p.AllowAttrs("data-type").Matching(regexp.MustCompile(`^taskList$`)).OnElements("ul")
	p.AllowAttrs("data-type").Matching(regexp.MustCompile(`^taskItem$`)).OnElements("li")
	p.AllowAttrs("data-checked").Matching(boolValue).OnElements("li")
	p.AllowAttrs("start").Matching(bluemonday.Integer).OnElements("ol")
	p.AllowAttrs("class").Matching(languageClass).OnElements("code")
	p.AllowAttrs("colspan", "rowspan").Matching(bluemonday.Integer).OnElements("td", "th")
	p.AllowStyles("text-align").Matching(bluemonday.CellAlign).OnElements("td", "th")

	return p
}
