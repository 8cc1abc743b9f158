package handlers

import (
	"html/template"
	"log"
	"net/http"

	"github.com/fsagrahari23/webagentic/services/project"
)

// listingTemplate renders the preview server's root page: a plain HTML index
// of every generated website.
var listingTemplate = template.Must(template.New("listing").Parse(`<!DOCTYPE html>
<html>
<head>
	<meta charset="utf-8">
	<title>Generated Websites</title>
	<style>
		body { font-family: sans-serif; max-width: 720px; margin: 2rem auto; padding: 0 1rem; }
		li { margin: 0.5rem 0; }
		.meta { color: #666; font-size: 0.85rem; }
	</style>
</head>
<body>
	<h1>Generated Websites</h1>
	{{if .}}
	<ul>
		{{range .}}
		<li>
			<a href="/{{.ProjectID}}/">{{.ProjectID}}</a>
			<div class="meta">created {{.CreatedAt}}</div>
		</li>
		{{end}}
	</ul>
	{{else}}
	<p>No websites generated yet.</p>
	{{end}}
</body>
</html>
`))

// NewPreviewHandler serves the project store root as a static file tree,
// with an HTML listing of generated projects at /.
func NewPreviewHandler(store *project.Store) http.Handler {
	fileServer := http.FileServer(http.Dir(store.Root()))

	previewMux := http.NewServeMux()
	previewMux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			fileServer.ServeHTTP(w, r)
			return
		}

		websites, err := store.ListWebsites("")
		if err != nil {
			log.Printf("[ERROR] Failed to list websites for preview index: %v", err)
			http.Error(w, "failed to list websites", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := listingTemplate.Execute(w, websites); err != nil {
			log.Printf("[ERROR] Failed to render preview index: %v", err)
		}
	})

	return previewMux
}
