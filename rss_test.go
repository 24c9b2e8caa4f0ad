package blog

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteFeed(t *testing.T) {
	s := newTestStore(t, 10)
	publicDir := t.TempDir()

	p := testPost(1)
	p.Date = "2024-04-01"
	created, _, _, err := s.CreatePost(p)
	if err != nil {
		t.Fatal(err)
	}

	cfg := SiteConfig{Name: "My Blog", URL: "https://example.com", Description: "A test blog"}
	if err := WriteFeed(s, publicDir, cfg); err != nil {
		t.Fatalf("WriteFeed failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(publicDir, "feed.xml"))
	if err != nil {
		t.Fatal(err)
	}
	feed := string(data)

	for _, want := range []string{
		"<title>My Blog</title>",
		"<description>A test blog</description>",
		"<title>Post 1</title>",
		"https://example.com/blog/post/" + created.Slug,
		"Mon, 01 Apr 2024 00:00:00 +0000",
	} {
		if !strings.Contains(feed, want) {
			t.Errorf("feed missing %q:\n%s", want, feed)
		}
	}
}

func TestWriteFeedIdempotent(t *testing.T) {
	s := newTestStore(t, 10)
	publicDir := t.TempDir()

	p := testPost(1)
	p.Date = "2024-04-01"
	if _, _, _, err := s.CreatePost(p); err != nil {
		t.Fatal(err)
	}

	cfg := SiteConfig{Name: "Blog", URL: "https://example.com"}
	if err := WriteFeed(s, publicDir, cfg); err != nil {
		t.Fatal(err)
	}
	first, _ := os.ReadFile(filepath.Join(publicDir, "feed.xml"))
	if err := WriteFeed(s, publicDir, cfg); err != nil {
		t.Fatal(err)
	}
	second, _ := os.ReadFile(filepath.Join(publicDir, "feed.xml"))

	if !bytes.Equal(first, second) {
		t.Error("feed output changed between runs with unchanged store")
	}
}
