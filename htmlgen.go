package blog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"go.uber.org/zap"
)

// DefaultCrawlerAgents lists the user-agent substrings that receive the
// static markup instead of being redirected to the app route.
var DefaultCrawlerAgents = []string{"Googlebot", "bingbot", "YandexBot"}

// postTemplate renders a post as a standalone HTML document. It is a
// text/template on purpose: post content is embedded verbatim, matching
// what authors typed into the form.
var postTemplate = template.Must(template.New("post").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Post.Title}}</title>
  <meta name="description" content="{{.Post.Excerpt}}">
  <meta name="author" content="{{.Post.Author}}">
  <link rel="stylesheet" href="/assets/css/style.css">
  <script>
    window.onload = function() {
      if ({{.CrawlerCheck}}) {
        window.location.href = '{{.AppRoute}}';
      }
    }
  </script>
</head>
<body>
  <article>
    <h1>{{.Post.Title}}</h1>
    <div class="post-meta">
      <span class="date">{{.Post.Date}}</span>
      <span class="author">By {{.Post.Author}}</span>
    </div>
    <div class="content">
{{- range .Post.Content.Paragraphs}}
      <p>{{.}}</p>
{{- end}}
    </div>
  </article>
</body>
</html>
`))

type postPage struct {
	Post         Post
	CrawlerCheck string
	AppRoute     string
}

// HTMLGenerator writes crawler-readable HTML copies of posts, one file per
// slug, into a fixed output directory.
type HTMLGenerator struct {
	store    *Store
	htmlDir  string
	crawlers []string
	log      *zap.Logger
}

// NewHTMLGenerator creates a generator writing to htmlDir. crawlers is the
// user-agent allow-list exempted from the app redirect; nil selects
// DefaultCrawlerAgents.
func NewHTMLGenerator(store *Store, htmlDir string, crawlers []string, log *zap.Logger) *HTMLGenerator {
	if len(crawlers) == 0 {
		crawlers = DefaultCrawlerAgents
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &HTMLGenerator{store: store, htmlDir: htmlDir, crawlers: crawlers, log: log}
}

// GenerateReport is the outcome of a bulk generation run. Success stays true
// as long as the metadata record was readable; per-post failures land in
// Errors while the rest of the run proceeds.
type GenerateReport struct {
	Success bool     `json:"success"`
	Count   int      `json:"count"`
	Errors  []string `json:"errors"`
}

// GenerateOne renders a single post and writes <slug>.html.
func (g *HTMLGenerator) GenerateOne(p Post) error {
	if p.Slug == "" {
		return fmt.Errorf("post with id %d has no slug", p.ID)
	}
	var b strings.Builder
	if err := postTemplate.Execute(&b, postPage{
		Post:         p,
		CrawlerCheck: g.crawlerCheck(),
		AppRoute:     "/blog/post/" + p.Slug,
	}); err != nil {
		return fmt.Errorf("render post %s: %w", p.Slug, err)
	}
	if err := os.MkdirAll(g.htmlDir, 0o755); err != nil {
		return fmt.Errorf("create html dir: %w", err)
	}
	path := filepath.Join(g.htmlDir, p.Slug+".html")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	htmlFilesGenerated.Inc()
	return nil
}

// GenerateAll walks every page file and writes one HTML file per post.
// Per-post problems are collected into the report instead of aborting the
// run; only a missing metadata record fails the operation outright.
func (g *HTMLGenerator) GenerateAll() GenerateReport {
	meta, err := g.store.Metadata()
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return GenerateReport{Success: false, Errors: []string{"metadata file not found"}}
		}
		return GenerateReport{Success: false, Errors: []string{err.Error()}}
	}

	report := GenerateReport{Success: true, Errors: []string{}}
	for n := 1; n <= meta.TotalPages; n++ {
		posts, err := g.store.ReadPage(n)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("could not read blog page %d", n))
			continue
		}
		for _, p := range posts {
			if p.Slug == "" {
				report.Errors = append(report.Errors, fmt.Sprintf("post with id %d has no slug", p.ID))
				continue
			}
			if err := g.GenerateOne(p); err != nil {
				report.Errors = append(report.Errors, err.Error())
				continue
			}
			report.Count++
		}
	}
	g.log.Info("generated static html",
		zap.Int("count", report.Count),
		zap.Int("errors", len(report.Errors)))
	return report
}

func (g *HTMLGenerator) crawlerCheck() string {
	parts := make([]string, len(g.crawlers))
	for i, ua := range g.crawlers {
		parts[i] = fmt.Sprintf("!window.navigator.userAgent.includes(%q)", ua)
	}
	return strings.Join(parts, " &&\n          ")
}
