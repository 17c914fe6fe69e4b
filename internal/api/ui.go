package api

import (
	"bytes"
	_ "embed"
	"html"
	"log/slog"
	"net/http"

	"github.com/yuin/goldmark"
)

//go:embed static/index.html
var indexHTML []byte

//go:embed static/usage.md
var usageMD []byte

const helpShell = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>chaptersplit help</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 46rem; margin: 2rem auto; padding: 0 1rem; color: #1a1a1a; }
pre, code { background: #f4f4f4; }
pre { padding: 0.75rem; overflow-x: auto; }
a { color: #0a5ad4; }
</style>
</head>
<body>
`

// renderHelp converts the embedded usage markdown to the /help page once
// at startup.
func renderHelp(log *slog.Logger) []byte {
	var buf bytes.Buffer
	buf.WriteString(helpShell)
	if err := goldmark.New().Convert(usageMD, &buf); err != nil {
		log.Warn("help page render failed, serving raw markdown", "error", err)
		buf.Reset()
		buf.WriteString(helpShell)
		buf.WriteString("<pre>")
		buf.WriteString(html.EscapeString(string(usageMD)))
		buf.WriteString("</pre>")
	}
	buf.WriteString("\n</body>\n</html>\n")
	return buf.Bytes()
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (s *Server) handleHelp(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(s.helpHTML)
}
