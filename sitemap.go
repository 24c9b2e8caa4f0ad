package blog

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// buildSitemap enumerates every discoverable URL: the site root, one entry
// per listing page, and for each post both the app route and the static
// HTML route. A missing metadata record fails the whole build.
func buildSitemap(s *Store, baseURL string) (sitemapURLSet, error) {
	meta, err := s.Metadata()
	if err != nil {
		return sitemapURLSet{}, fmt.Errorf("sitemap: %w", err)
	}

	urls := []sitemapURL{
		{Loc: BuildURL(baseURL), Priority: "1.0", ChangeFreq: "weekly"},
		{Loc: BuildURL(baseURL, "blog", "page", "1"), Priority: "0.9", ChangeFreq: "daily"},
	}
	for n := 2; n <= meta.TotalPages; n++ {
		urls = append(urls, sitemapURL{
			Loc:        BuildURL(baseURL, "blog", "page", strconv.Itoa(n)),
			Priority:   "0.8",
			ChangeFreq: "daily",
		})
	}

	for n := 1; n <= meta.TotalPages; n++ {
		posts, err := s.ReadPage(n)
		if err != nil {
			s.log.Warn("skipping page in sitemap", zap.Int("page", n), zap.Error(err))
			continue
		}
		for _, p := range posts {
			if p.Slug == "" {
				continue
			}
			urls = append(urls,
				sitemapURL{
					Loc:        BuildURL(baseURL, "blog", "post", p.Slug),
					LastMod:    p.Date,
					Priority:   "0.7",
					ChangeFreq: "monthly",
				},
				sitemapURL{
					Loc:        BuildURL(baseURL, "blog", p.Slug+".html"),
					LastMod:    p.Date,
					Priority:   "0.7",
					ChangeFreq: "monthly",
				})
		}
	}

	return sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs:  urls,
	}, nil
}

// WriteSitemap builds the sitemap and writes sitemap.xml into publicDir.
// Output is deterministic: unchanged store contents produce byte-identical
// files across runs.
func WriteSitemap(s *Store, publicDir, baseURL string) error {
	sitemap, err := buildSitemap(s, baseURL)
	if err != nil {
		return err
	}
	data, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return fmt.Errorf("sitemap: marshal: %w", err)
	}
	out := append([]byte(xml.Header), data...)
	out = append(out, '\n')
	if err := os.MkdirAll(publicDir, 0o755); err != nil {
		return fmt.Errorf("sitemap: create public dir: %w", err)
	}
	path := filepath.Join(publicDir, "sitemap.xml")
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("sitemap: write %s: %w", path, err)
	}
	sitemapBuilds.Inc()
	return nil
}
