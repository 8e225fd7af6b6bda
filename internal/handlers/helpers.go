package handlers

import (
	"html/template"
	"net/http"
)

// renderErrorPage renders a simple error page. Never panics; always writes something.
func renderErrorPage(
	w http.ResponseWriter,
	status int,
	tmpl *template.Template, // must contain "error"
	title, msg string,
	cause error,
) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	data := struct {
		Title   string
		Message string
		Error   string
	}{
		Title:   title,
		Message: msg,
	}
	if cause != nil {
		data.Error = cause.Error()
	}

	if tplErr := tmpl.ExecuteTemplate(w, "error", data); tplErr != nil {
		w.Write([]byte("<div class=\"alert alert-danger\">Failed to render error page</div>")) // nolint:errcheck
	}
}
