package blog

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// WriteFeed renders all posts as an RSS 2.0 feed and writes feed.xml into
// publicDir. Like the sitemap, output is deterministic for unchanged input.
func WriteFeed(s *Store, publicDir string, cfg SiteConfig) error {
	posts, err := s.AllPosts()
	if err != nil {
		return fmt.Errorf("feed: %w", err)
	}
	items := make([]rssItem, 0, len(posts))
	for _, p := range posts {
		pubDate := ""
		if t, err := time.Parse("2006-01-02", p.Date); err == nil {
			pubDate = t.Format(time.RFC1123Z)
		}
		postURL := BuildURL(cfg.URL, "blog", "post", p.Slug)
		items = append(items, rssItem{
			Title:       p.Title,
			Link:        postURL,
			Description: p.Excerpt,
			PubDate:     pubDate,
			GUID:        postURL,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       cfg.Name,
			Link:        cfg.URL,
			Description: cfg.Description,
			Items:       items,
		},
	}
	data, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return fmt.Errorf("feed: marshal: %w", err)
	}
	out := append([]byte(xml.Header), data...)
	out = append(out, '\n')
	if err := os.MkdirAll(publicDir, 0o755); err != nil {
		return fmt.Errorf("feed: create public dir: %w", err)
	}
	path := filepath.Join(publicDir, "feed.xml")
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("feed: write %s: %w", path, err)
	}
	return nil
}
