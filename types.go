package blog

// Post is the core content type persisted in page files and rendered into
// static HTML. Posts are append-only: once written to a page file there is
// no update or delete operation.
type Post struct {
	ID      int         `json:"id"`
	Slug    string      `json:"slug"`
	Title   string      `json:"title"`
	Author  string      `json:"author"`
	Excerpt string      `json:"excerpt"`
	Date    string      `json:"date"`
	Content PostContent `json:"content"`
}

// PostContent holds the post body as an ordered sequence of paragraphs.
type PostContent struct {
	Paragraphs []string `json:"paragraphs"`
}

// Metadata is the single source of truth for post and page counts.
// It lives in blog-metadata.json next to the page files.
type Metadata struct {
	TotalPosts   int `json:"totalPosts"`
	TotalPages   int `json:"totalPages"`
	PostsPerPage int `json:"postsPerPage"`
}
