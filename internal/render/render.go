// Package render turns an assembled digest into the HTML email body
// and its plain-text alternative.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/deusflow/newsdigest/internal/digest"
)

const htmlTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Georgia, 'Times New Roman', serif; color: #222; max-width: 680px; margin: 0 auto; padding: 16px; }
  h1 { font-size: 26px; border-bottom: 3px solid #222; padding-bottom: 8px; }
  h2 { font-size: 20px; margin-top: 28px; border-bottom: 1px solid #ccc; padding-bottom: 4px; }
  .toc { background: #f7f7f7; padding: 12px 16px; border-radius: 6px; }
  .toc li { margin: 4px 0; }
  .card { margin: 16px 0; padding-bottom: 12px; border-bottom: 1px dotted #ddd; }
  .card a.headline { font-size: 17px; font-weight: bold; color: #1a4d8f; text-decoration: none; }
  .meta { font-size: 13px; color: #777; margin: 4px 0; }
  .badge { display: inline-block; background: #eee; border-radius: 10px; padding: 1px 8px; margin-right: 4px; font-size: 12px; }
  .summary { font-size: 15px; line-height: 1.5; margin: 6px 0 0; }
  .footer { margin-top: 32px; font-size: 12px; color: #999; text-align: center; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="meta">{{.Digest.GeneratedAt.Format "Monday, January 2, 2006"}} · {{.Digest.Total}} stories</p>

<div class="toc">
<strong>In this digest</strong>
<ul>
{{range .Digest.TOC}}<li>{{.Emoji}} {{.Title}} ({{.Count}})</li>
{{end}}</ul>
</div>

{{range .Digest.Sections}}
<h2>{{.Emoji}} {{.Title}}</h2>
{{range .Articles}}
<div class="card">
<a class="headline" href="{{.URL}}">{{.Title}}</a>
<p class="meta">{{.Source.Name}}{{if .Age}} · {{.Age}}{{end}}</p>
<p class="meta">{{range .Tags}}<span class="badge">{{.}}</span>{{end}}</p>
{{if .Summary}}<p class="summary">{{.Summary}}</p>{{else if .Description}}<p class="summary">{{.Description}}</p>{{end}}
</div>
{{end}}
{{end}}

<div class="footer">Generated by newsdigest</div>
</body>
</html>
`

var tmpl = template.Must(template.New("digest").Parse(htmlTemplate))

type templateData struct {
	Title  string
	Digest digest.Digest
}

// HTML renders the digest email body.
func HTML(title string, d digest.Digest) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, templateData{Title: title, Digest: d}); err != nil {
		return "", fmt.Errorf("failed to render digest: %w", err)
	}
	return buf.String(), nil
}

// Text renders the plain-text alternative part.
func Text(title string, d digest.Digest) string {
	var b strings.Builder
	b.WriteString(title + "\n")
	b.WriteString(d.GeneratedAt.Format("Monday, January 2, 2006"))
	b.WriteString(fmt.Sprintf(" - %d stories\n\n", d.Total))

	for _, entry := range d.TOC {
		b.WriteString(fmt.Sprintf("- %s (%d)\n", entry.Title, entry.Count))
	}
	b.WriteString("\n")

	for _, section := range d.Sections {
		b.WriteString("== " + section.Title + " ==\n\n")
		for _, a := range section.Articles {
			b.WriteString("* " + a.Title + "\n")
			if a.Source.Name != "" {
				b.WriteString("  " + a.Source.Name)
				if a.Age != "" {
					b.WriteString(" - " + a.Age)
				}
				b.WriteString("\n")
			}
			if a.Summary != "" {
				b.WriteString("  " + a.Summary + "\n")
			}
			if a.URL != "" {
				b.WriteString("  " + a.URL + "\n")
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
