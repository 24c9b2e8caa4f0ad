package blog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	postsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blog_posts_created_total",
		Help: "Number of posts appended to the store.",
	})
	htmlFilesGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blog_html_files_generated_total",
		Help: "Number of static post HTML files written.",
	})
	sitemapBuilds = promauto.NewCounter(prometheus.CounterOpts{
		Name: "blog_sitemap_builds_total",
		Help: "Number of sitemap.xml files written.",
	})
)
