package blog

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestSitemapMissingMetadata(t *testing.T) {
	s := newTestStore(t, 10)

	_, err := buildSitemap(s, "https://example.com")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSitemapEmptyStoreListsRootAndFirstPage(t *testing.T) {
	s := newTestStore(t, 10)
	if _, err := s.EnsureMetadata(); err != nil {
		t.Fatal(err)
	}

	sitemap, err := buildSitemap(s, "https://example.com")
	if err != nil {
		t.Fatalf("buildSitemap failed: %v", err)
	}
	if len(sitemap.URLs) != 2 {
		t.Fatalf("got %d entries, want 2 (root + first page)", len(sitemap.URLs))
	}
	if sitemap.URLs[0].Priority != "1.0" || sitemap.URLs[0].ChangeFreq != "weekly" {
		t.Errorf("root entry = %+v, want priority 1.0 changefreq weekly", sitemap.URLs[0])
	}
	if sitemap.URLs[1].Loc != "https://example.com/blog/page/1" {
		t.Errorf("second entry = %q, want first page link", sitemap.URLs[1].Loc)
	}
	if sitemap.URLs[1].Priority != "0.9" || sitemap.URLs[1].ChangeFreq != "daily" {
		t.Errorf("first page entry = %+v, want priority 0.9 changefreq daily", sitemap.URLs[1])
	}
}

func TestSitemapEntryCount(t *testing.T) {
	s := newTestStore(t, 3)

	// 5 posts at 3 per page -> pages of 3 and 2.
	for n := 1; n <= 5; n++ {
		if _, _, _, err := s.CreatePost(testPost(n)); err != nil {
			t.Fatal(err)
		}
	}

	sitemap, err := buildSitemap(s, "https://example.com")
	if err != nil {
		t.Fatalf("buildSitemap failed: %v", err)
	}

	// root + one entry per page + app/html pair per post
	want := 1 + 2 + 2*5
	if len(sitemap.URLs) != want {
		t.Fatalf("got %d entries, want %d", len(sitemap.URLs), want)
	}
}

func TestSitemapPostEntries(t *testing.T) {
	s := newTestStore(t, 10)

	p := testPost(1)
	p.Date = "2024-04-01"
	created, _, _, err := s.CreatePost(p)
	if err != nil {
		t.Fatal(err)
	}

	sitemap, err := buildSitemap(s, "https://example.com")
	if err != nil {
		t.Fatalf("buildSitemap failed: %v", err)
	}

	var appEntry, htmlEntry *sitemapURL
	for i := range sitemap.URLs {
		switch sitemap.URLs[i].Loc {
		case "https://example.com/blog/post/" + created.Slug:
			appEntry = &sitemap.URLs[i]
		case "https://example.com/blog/" + created.Slug + ".html":
			htmlEntry = &sitemap.URLs[i]
		}
	}
	if appEntry == nil || htmlEntry == nil {
		t.Fatalf("missing post entries in %+v", sitemap.URLs)
	}
	for _, e := range []*sitemapURL{appEntry, htmlEntry} {
		if e.LastMod != "2024-04-01" {
			t.Errorf("LastMod = %q, want post date", e.LastMod)
		}
		if e.Priority != "0.7" || e.ChangeFreq != "monthly" {
			t.Errorf("post entry = %+v, want priority 0.7 changefreq monthly", e)
		}
	}
}

func TestSitemapSkipsSluglessPosts(t *testing.T) {
	s := newTestStore(t, 10)

	if _, _, _, err := s.CreatePost(Post{Author: "A", Excerpt: "e", Content: PostContent{Paragraphs: []string{"x"}}}); err != nil {
		t.Fatal(err)
	}

	sitemap, err := buildSitemap(s, "https://example.com")
	if err != nil {
		t.Fatalf("buildSitemap failed: %v", err)
	}
	if len(sitemap.URLs) != 2 {
		t.Errorf("got %d entries, want 2 (slug-less post excluded)", len(sitemap.URLs))
	}
}

func TestWriteSitemapIdempotent(t *testing.T) {
	s := newTestStore(t, 10)
	publicDir := t.TempDir()

	for n := 1; n <= 3; n++ {
		if _, _, _, err := s.CreatePost(testPost(n)); err != nil {
			t.Fatal(err)
		}
	}

	if err := WriteSitemap(s, publicDir, "https://example.com"); err != nil {
		t.Fatalf("first WriteSitemap failed: %v", err)
	}
	first, err := os.ReadFile(filepath.Join(publicDir, "sitemap.xml"))
	if err != nil {
		t.Fatal(err)
	}

	if err := WriteSitemap(s, publicDir, "https://example.com"); err != nil {
		t.Fatalf("second WriteSitemap failed: %v", err)
	}
	second, err := os.ReadFile(filepath.Join(publicDir, "sitemap.xml"))
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(first, second) {
		t.Error("sitemap output changed between runs with unchanged store")
	}
}
