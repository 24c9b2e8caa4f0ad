package blog

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type createPostRequest struct {
	Post *Post `json:"post"`
}

type createPostResponse struct {
	Success  bool     `json:"success"`
	Message  string   `json:"message"`
	Metadata Metadata `json:"metadata"`
	PostID   int      `json:"postId"`
	Page     int      `json:"page"`
}

type statusResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (a *App) handleMetadata(c echo.Context) error {
	meta, err := a.Store.EnsureMetadata()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, meta)
}

func (a *App) handleCreatePost(c echo.Context) error {
	if !a.writeLimiter.Allow(c.RealIP()) {
		return c.JSON(http.StatusTooManyRequests, statusResponse{
			Success: false, Message: "Too many posts. Try again later.",
		})
	}

	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, statusResponse{
			Success: false, Message: "Invalid request body",
		})
	}

	p := req.Post
	if p == nil || p.Title == "" || p.Author == "" || p.Excerpt == "" || len(p.Content.Paragraphs) == 0 {
		return c.JSON(http.StatusBadRequest, statusResponse{
			Success: false, Message: "Missing required post data",
		})
	}

	created, meta, page, err := a.Store.CreatePost(*p)
	if err != nil {
		a.Logger.Error("create post failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, statusResponse{
			Success: false, Message: "Failed to save blog post",
		})
	}
	postsCreated.Inc()

	// Static HTML for the new post is best-effort: the post and metadata
	// are already committed, so a render failure only delays indexing
	// until the next bulk run.
	if a.Config.GenerateHTMLOnCreate {
		if err := a.HTML.GenerateOne(created); err != nil {
			a.Logger.Warn("html generation for new post failed",
				zap.String("slug", created.Slug), zap.Error(err))
		}
	}

	return c.JSON(http.StatusOK, createPostResponse{
		Success:  true,
		Message:  "Blog post created successfully!",
		Metadata: meta,
		PostID:   created.ID,
		Page:     page,
	})
}

func (a *App) handleGenerateHTML(c echo.Context) error {
	report := a.HTML.GenerateAll()
	if !report.Success {
		return c.JSON(http.StatusInternalServerError, report)
	}
	return c.JSON(http.StatusOK, report)
}

func (a *App) handleGenerateSitemap(c echo.Context) error {
	baseURL := c.QueryParam("baseUrl")
	if baseURL == "" {
		baseURL = a.Config.URL
	}
	if err := WriteSitemap(a.Store, a.Config.PublicDir, baseURL); err != nil {
		a.Logger.Error("sitemap generation failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, statusResponse{
			Success: false, Error: err.Error(),
		})
	}
	return c.JSON(http.StatusOK, statusResponse{Success: true})
}

func (a *App) handleGenerateFeed(c echo.Context) error {
	if err := WriteFeed(a.Store, a.Config.PublicDir, a.Config); err != nil {
		a.Logger.Error("feed generation failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, statusResponse{
			Success: false, Error: err.Error(),
		})
	}
	return c.JSON(http.StatusOK, statusResponse{Success: true})
}
