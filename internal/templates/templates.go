package templates

import (
	"html/template"
	"io/fs"
	"path"
)

// ParseBaseTemplates parses the viewer, footer and error templates.
func ParseBaseTemplates(webFS fs.FS, funcMap template.FuncMap) *template.Template {
	return template.Must(
		template.New("base").
			Funcs(funcMap).
			ParseFS(webFS,
				path.Join("web/templates", "base.gohtml"),
				path.Join("web/templates", "footer.gohtml"),
				path.Join("web/templates", "error.gohtml"),
			),
	)
}
