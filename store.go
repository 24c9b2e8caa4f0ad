package blog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Store manages the paginated JSON post files and the metadata record in a
// single data directory. Writes are serialized behind a mutex so two
// concurrent creations cannot both target the same "last page" slot.
type Store struct {
	mu           sync.Mutex
	dataDir      string
	postsPerPage int
	log          *zap.Logger
}

// NewStore creates a Store rooted at dataDir, ensuring the directory exists.
// postsPerPage seeds the metadata record on first creation; an existing
// metadata file keeps its own page size.
func NewStore(dataDir string, postsPerPage int, log *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	if postsPerPage <= 0 {
		postsPerPage = 10
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{dataDir: dataDir, postsPerPage: postsPerPage, log: log}, nil
}

func (s *Store) metadataPath() string {
	return filepath.Join(s.dataDir, "blog-metadata.json")
}

func (s *Store) pagePath(n int) string {
	return filepath.Join(s.dataDir, fmt.Sprintf("blog-page-%d.json", n))
}

func (s *Store) defaultMetadata() Metadata {
	return Metadata{TotalPosts: 0, TotalPages: 0, PostsPerPage: s.postsPerPage}
}

// Metadata reads the metadata record. It returns ErrNotFound when no record
// has been written yet; it never creates one.
func (s *Store) Metadata() (Metadata, error) {
	var meta Metadata
	if err := s.readJSONLoose(s.metadataPath(), &meta); err != nil {
		return Metadata{}, err
	}
	return meta, nil
}

// EnsureMetadata reads the metadata record, creating and persisting the
// default record if none exists.
func (s *Store) EnsureMetadata() (Metadata, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	meta, err := s.Metadata()
	if err == nil {
		return meta, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Metadata{}, err
	}
	meta = s.defaultMetadata()
	if err := WriteJSON(s.metadataPath(), meta); err != nil {
		return Metadata{}, err
	}
	return meta, nil
}

// ReadPage returns the posts on page n. Missing pages return ErrNotFound.
func (s *Store) ReadPage(n int) ([]Post, error) {
	var posts []Post
	if err := s.readJSONLoose(s.pagePath(n), &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// AllPosts returns every post across all pages, in page then append order.
// Unreadable pages are skipped with a warning.
func (s *Store) AllPosts() ([]Post, error) {
	meta, err := s.Metadata()
	if err != nil {
		return nil, err
	}
	var all []Post
	for n := 1; n <= meta.TotalPages; n++ {
		posts, err := s.ReadPage(n)
		if err != nil {
			s.log.Warn("skipping unreadable page", zap.Int("page", n), zap.Error(err))
			continue
		}
		all = append(all, posts...)
	}
	return all, nil
}

// GetPost returns the first post whose slug matches. Slugs are expected to
// be unique but uniqueness is not enforced on write.
func (s *Store) GetPost(slug string) (Post, error) {
	posts, err := s.AllPosts()
	if err != nil {
		return Post{}, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return Post{}, ErrNotFound
}

// CreatePost appends p to the store: it decides the target page (last page
// if it still has room, otherwise a new one), writes the page file, then
// updates the metadata record. The returned post carries any fields the
// store assigned (id, slug, date). There is no rollback: a metadata write
// failure leaves the already-written page in place.
func (s *Store) CreatePost(p Post) (Post, Metadata, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	meta, err := s.Metadata()
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return Post{}, Metadata{}, 0, err
		}
		meta = s.defaultMetadata()
	}

	if p.ID == 0 {
		p.ID = meta.TotalPosts + 1
	}
	if p.Slug == "" {
		p.Slug = Slugify(p.Title)
	}
	if p.Date == "" {
		p.Date = time.Now().Format("2006-01-02")
	}

	target := 1
	if meta.TotalPages > 0 {
		lastPage, err := s.ReadPage(meta.TotalPages)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return Post{}, Metadata{}, 0, err
		}
		if len(lastPage) < meta.PostsPerPage {
			target = meta.TotalPages
		} else {
			target = meta.TotalPages + 1
		}
	}

	page, err := s.ReadPage(target)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return Post{}, Metadata{}, 0, err
	}
	page = append(page, p)
	if len(page) > meta.PostsPerPage {
		s.log.Warn("page exceeds capacity",
			zap.Int("page", target),
			zap.Int("size", len(page)),
			zap.Int("capacity", meta.PostsPerPage))
	}
	if err := WriteJSON(s.pagePath(target), page); err != nil {
		return Post{}, Metadata{}, 0, err
	}

	meta.TotalPosts++
	if target > meta.TotalPages {
		meta.TotalPages = target
	}
	if err := WriteJSON(s.metadataPath(), meta); err != nil {
		return Post{}, Metadata{}, 0, err
	}

	return p, meta, target, nil
}

// readJSONLoose reads a JSON file, downgrading corrupt content to
// ErrNotFound after logging it. Callers that must distinguish corruption
// from absence use ReadJSON directly.
func (s *Store) readJSONLoose(path string, v any) error {
	err := ReadJSON(path, v)
	var pe *ParseError
	if errors.As(err, &pe) {
		s.log.Warn("malformed JSON file treated as absent", zap.String("path", pe.Path), zap.Error(pe.Err))
		return ErrNotFound
	}
	return err
}
