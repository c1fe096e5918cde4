package render

import (
	"bytes"
	"html/template"

	"page-builder-backend/internal/models"
)

var documentTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
{{- if .Description}}
<meta name="description" content="{{.Description}}">
{{- end}}
</head>
<body class="pb-page{{if .Preview}} pb-page--preview{{end}}" data-page-slug="{{.Slug}}">
<main>{{.Body}}</main>
{{- range .Scripts}}
<script>{{.}}</script>
{{- end}}
</body>
</html>
`))

type documentData struct {
	Title       string
	Description string
	Slug        string
	Preview     bool
	Body        template.HTML
	Scripts     []template.JS
}

// RenderDocument renders page as a complete HTML document.
func (r *Renderer) RenderDocument(page models.Page, mode Mode) (string, error) {
	result := r.RenderPage(page, mode)

	title := page.MetaTitle
	if title == "" {
		title = page.Name
	}

	data := documentData{
		Title:       title,
		Description: page.MetaDescription,
		Slug:        page.Slug,
		Preview:     mode == ModePreview,
		Body:        template.HTML(result.HTML),
	}
	for _, script := range result.Scripts {
		data.Scripts = append(data.Scripts, template.JS(script))
	}

	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
