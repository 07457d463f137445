package visuals

import (
	"fmt"
	"html/template"
	"os"
)

// Entry is one chart on a folder's index page.
type Entry struct {
	Key     string
	Name    string
	Diagram string
	Peaks   []string
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; margin: 2em; }
section { margin-bottom: 3em; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p>Datasource: {{.Source}}</p>
{{range .Entries}}<section id="{{.Key}}">
<h2>{{.Name}}</h2>
<pre class="mermaid">
{{.Diagram}}</pre>
{{if .Peaks}}<ul>{{range .Peaks}}<li>{{.}}</li>{{end}}</ul>{{end}}
</section>
{{end}}<script type="module">
import mermaid from "https://cdn.jsdelivr.net/npm/mermaid@11/dist/mermaid.esm.min.mjs";
mermaid.initialize({ startOnLoad: true });
</script>
</body>
</html>
`))

// WriteIndex writes an HTML page rendering every chart of a folder.
func WriteIndex(path, title, source string, entries []Entry) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	data := struct {
		Title   string
		Source  string
		Entries []Entry
	}{title, source, entries}

	if err := indexTemplate.Execute(file, data); err != nil {
		file.Close()
		return fmt.Errorf("failed to render index: %w", err)
	}
	return file.Close()
}
