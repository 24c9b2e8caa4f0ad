package blog

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// SiteConfig holds all configuration for a blog site.
type SiteConfig struct {
	Name        string `yaml:"name"`        // Site name (default "Blog")
	URL         string `yaml:"url"`         // Canonical URL, sitemap/feed base (default "http://localhost:3000")
	Description string `yaml:"description"` // Site description for the RSS feed
	Author      string `yaml:"author"`      // Fallback author name

	Addr      string `yaml:"addr"`       // Listen address (default ":3001")
	PublicDir string `yaml:"public_dir"` // Static asset root (default "public")
	DataDir   string `yaml:"data_dir"`   // JSON store dir (default "<public>/data")
	HTMLDir   string `yaml:"html_dir"`   // Static post HTML dir (default "<public>/blog")

	PostsPerPage         int      `yaml:"posts_per_page"`          // Page capacity for new metadata (default 10)
	GenerateHTMLOnCreate bool     `yaml:"generate_html_on_create"` // Emit static HTML when a post is created
	CrawlerAgents        []string `yaml:"crawler_agents"`          // User-agent substrings exempt from the SPA redirect

	RegenSchedule string `yaml:"regen_schedule"` // Cron spec for periodic SEO regeneration (empty = disabled)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3001"
	}
	if c.PublicDir == "" {
		c.PublicDir = "public"
	}
	if c.DataDir == "" {
		c.DataDir = filepath.Join(c.PublicDir, "data")
	}
	if c.HTMLDir == "" {
		c.HTMLDir = filepath.Join(c.PublicDir, "blog")
	}
	if c.PostsPerPage == 0 {
		c.PostsPerPage = 10
	}
	if len(c.CrawlerAgents) == 0 {
		c.CrawlerAgents = append([]string(nil), DefaultCrawlerAgents...)
	}
}

// LoadConfig reads a SiteConfig from a YAML file. Fields left empty fall
// back to the same defaults New applies.
func LoadConfig(path string) (SiteConfig, error) {
	var cfg SiteConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithLogger sets the structured logger used by the store and generators.
func WithLogger(l *zap.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}
