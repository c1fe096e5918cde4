package sections

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// HTMLContext is the RenderContext used by the page renderers. Markdown is
// rendered with GitHub-flavoured extensions and then sanitised.
type HTMLContext struct {
	policy   *bluemonday.Policy
	markdown goldmark.Markdown
}

// NewHTMLContext builds a context with the user-generated-content policy.
func NewHTMLContext() *HTMLContext {
	return &HTMLContext{
		policy: bluemonday.UGCPolicy(),
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
	}
}

func (c *HTMLContext) SanitizeHTML(input string) string {
	return c.policy.Sanitize(input)
}

func (c *HTMLContext) Markdown(input string) string {
	var buf bytes.Buffer
	if err := c.markdown.Convert([]byte(input), &buf); err != nil {
		return c.policy.Sanitize(input)
	}
	return c.policy.Sanitize(buf.String())
}
