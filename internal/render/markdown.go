package render

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

type markdownRenderer struct{}

var mdTemplate = template.Must(template.New("records").Funcs(template.FuncMap{
	"cell": mdCell,
}).Parse(`# Records
{{ if .Search }}
Search: ` + "`{{ .Search }}`" + `
{{ end }}
| Index No | Name | Contact | Email | Age |
|---:|---|---|---|---:|
{{ range .Rows }}| {{ .Number }} | {{ cell .Record.Name }} | {{ cell .Record.Contact }} | {{ cell .Record.Email }} | {{ cell .Record.Age }} |
{{ else }}| | {{ .Empty }} | | | |
{{ end }}`))

// mdCell keeps user text from breaking the table layout.
func mdCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}

func (r *markdownRenderer) Render(v *View) ([]byte, error) {
	var buf bytes.Buffer
	if err := mdTemplate.Execute(&buf, v); err != nil {
		return nil, fmt.Errorf("rendering markdown: %w", err)
	}
	return buf.Bytes(), nil
}
