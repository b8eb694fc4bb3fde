// Content HTTP handlers: blog posts, SEO settings, and the media library.
//
// Media deletes are a two-step flow: a delete request reports the usage impact
// without mutating anything; the confirm call performs the delete and refuses
// in-use assets unless forced.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/avelineco/go-shop-backend/internal/containers"
	"github.com/avelineco/go-shop-backend/internal/domain"
	"github.com/avelineco/go-shop-backend/internal/sysutil"
)

// BlogPostRequest is the create/update payload for a post. The slug derives
// from the title.
type BlogPostRequest struct {
	Title     string `json:"title" binding:"required" example:"Styling linen for fall"`
	Excerpt   string `json:"excerpt"`
	Body      string `json:"body" binding:"required"`
	Author    string `json:"author"`
	Image     string `json:"image"`
	Published bool   `json:"published"`
}

// SEOSettingsRequest replaces the global SEO document.
type SEOSettingsRequest struct {
	SiteTitle       string `json:"siteTitle" binding:"required" example:"Aveline & Co."`
	TitleTemplate   string `json:"titleTemplate"`
	MetaDescription string `json:"metaDescription"`
	OGImage         string `json:"ogImage"`
	CanonicalBase   string `json:"canonicalBase"`
	RobotsIndex     bool   `json:"robotsIndex"`
}

// MediaAssetRequest registers an uploaded file in the library.
type MediaAssetRequest struct {
	FileName  string `json:"fileName" binding:"required" example:"lookbook-01.jpg"`
	URL       string `json:"url" binding:"required"`
	MimeType  string `json:"mimeType"`
	SizeBytes int64  `json:"sizeBytes"`
	AltText   string `json:"altText"`
}

// MediaAttachRequest records or removes an owner's reference to an asset.
type MediaAttachRequest struct {
	Owner string `json:"owner" binding:"required" example:"prod_1700000000000"`
}

// ListBlogPosts godoc
// @ID          listBlogPosts
// @Summary     List published blog posts
// @Tags        Content
// @Produce     json
// @Success     200  {array}  domain.BlogPost
// @Router      /blog [get]
func (h *Handlers) ListBlogPosts(c *gin.Context) {
	ok(c, http.StatusOK, h.deps.Blog.Published())
}

// GetBlogPost godoc
// @ID          getBlogPost
// @Summary     Get a blog post by slug
// @Tags        Content
// @Produce     json
//
// @Param       slug  path  string  true  "Post slug"
//
// @Success     200  {object}  domain.BlogPost
// @Failure     404  {object}  handlers.ErrorResponse  "Post not found"
// @Router      /blog/{slug} [get]
func (h *Handlers) GetBlogPost(c *gin.Context) {
	post, err := h.deps.Blog.BySlug(c.Param("slug"))
	if err != nil || !post.Published {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "post not found")
		return
	}
	ok(c, http.StatusOK, post)
}

// ListAllBlogPosts godoc
// @ID          listAllBlogPosts
// @Summary     List all blog posts, drafts included
// @Tags        Admin/Content
// @Produce     json
// @Security    BearerAuth
// @Success     200  {array}  domain.BlogPost
// @Router      /admin/blog [get]
func (h *Handlers) ListAllBlogPosts(c *gin.Context) {
	ok(c, http.StatusOK, h.deps.Blog.List())
}

// CreateBlogPost godoc
// @ID          createBlogPost
// @Summary     Create a blog post
// @Tags        Admin/Content
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.BlogPostRequest  true  "Post payload"
//
// @Success     201  {object}  domain.BlogPost
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /admin/blog [post]
func (h *Handlers) CreateBlogPost(c *gin.Context) {
	var req BlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "title and body required")
		return
	}
	created := h.deps.Blog.Add(c.Request.Context(), domain.BlogPost{
		Title:     req.Title,
		Excerpt:   req.Excerpt,
		Body:      req.Body,
		Author:    req.Author,
		Image:     req.Image,
		Published: req.Published,
	})
	h.audit(c, "blog.create", created.ID, created.Title)
	ok(c, http.StatusCreated, created)
}

// UpdateBlogPost godoc
// @ID          updateBlogPost
// @Summary     Update a blog post
// @Description Applies the payload and recomputes the slug from the (possibly changed) title.
// @Tags        Admin/Content
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       id    path  string                    true  "Post ID"
// @Param       body  body  handlers.BlogPostRequest  true  "Post payload"
//
// @Success     200  {object}  domain.BlogPost
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Post not found"
// @Router      /admin/blog/{id} [put]
func (h *Handlers) UpdateBlogPost(c *gin.Context) {
	var req BlogPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "title and body required")
		return
	}
	updated, err := h.deps.Blog.Update(c.Request.Context(), c.Param("id"), func(p *domain.BlogPost) {
		p.Title = req.Title
		p.Excerpt = req.Excerpt
		p.Body = req.Body
		p.Author = req.Author
		p.Image = req.Image
		p.Published = req.Published
	})
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "post not found")
		return
	}
	h.audit(c, "blog.update", updated.ID, updated.Title)
	ok(c, http.StatusOK, updated)
}

// DeleteBlogPost godoc
// @ID          deleteBlogPost
// @Summary     Delete a blog post
// @Tags        Admin/Content
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Post ID"
//
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Post not found"
// @Router      /admin/blog/{id} [delete]
func (h *Handlers) DeleteBlogPost(c *gin.Context) {
	id := c.Param("id")
	if err := h.deps.Blog.Remove(c.Request.Context(), id); err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "post not found")
		return
	}
	h.audit(c, "blog.delete", id, "")
	noContent(c)
}

// GetSEOSettings godoc
// @ID          getSEOSettings
// @Summary     Get the SEO settings
// @Tags        Content
// @Produce     json
// @Success     200  {object}  domain.SEOSettings
// @Router      /seo [get]
func (h *Handlers) GetSEOSettings(c *gin.Context) {
	ok(c, http.StatusOK, h.deps.SEO.Settings())
}

// UpdateSEOSettings godoc
// @ID          updateSEOSettings
// @Summary     Replace the SEO settings
// @Tags        Admin/Content
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.SEOSettingsRequest  true  "SEO settings"
//
// @Success     200  {object}  domain.SEOSettings
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /admin/seo [put]
func (h *Handlers) UpdateSEOSettings(c *gin.Context) {
	var req SEOSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "siteTitle required")
		return
	}
	updated := h.deps.SEO.Update(c.Request.Context(), func(s *domain.SEOSettings) {
		s.SiteTitle = req.SiteTitle
		s.TitleTemplate = req.TitleTemplate
		s.MetaDescription = req.MetaDescription
		s.OGImage = req.OGImage
		s.CanonicalBase = req.CanonicalBase
		s.RobotsIndex = req.RobotsIndex
	})
	h.audit(c, "seo.update", "seoSettings", "")
	ok(c, http.StatusOK, updated)
}

// ListMedia godoc
// @ID          listMedia
// @Summary     List media assets
// @Tags        Admin/Media
// @Produce     json
// @Security    BearerAuth
// @Success     200  {array}  domain.MediaAsset
// @Router      /admin/media [get]
func (h *Handlers) ListMedia(c *gin.Context) {
	ok(c, http.StatusOK, h.deps.Media.List())
}

// CreateMedia godoc
// @ID          createMedia
// @Summary     Register an uploaded asset
// @Tags        Admin/Media
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.MediaAssetRequest  true  "Asset payload"
//
// @Success     201  {object}  domain.MediaAsset
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Router      /admin/media [post]
func (h *Handlers) CreateMedia(c *gin.Context) {
	var req MediaAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "fileName and url required")
		return
	}
	created := h.deps.Media.Add(c.Request.Context(), domain.MediaAsset{
		FileName:  req.FileName,
		URL:       req.URL,
		MimeType:  req.MimeType,
		SizeBytes: req.SizeBytes,
		AltText:   req.AltText,
	})
	h.audit(c, "media.create", created.ID, created.FileName)
	ok(c, http.StatusCreated, created)
}

// AttachMedia godoc
// @ID          attachMedia
// @Summary     Record a reference to an asset
// @Description Idempotent: attaching the same owner twice records one reference.
// @Tags        Admin/Media
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       id    path  string                       true  "Asset ID"
// @Param       body  body  handlers.MediaAttachRequest  true  "Referencing owner"
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Asset not found"
// @Router      /admin/media/{id}/attach [post]
func (h *Handlers) AttachMedia(c *gin.Context) {
	var req MediaAttachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "owner required")
		return
	}
	if err := h.deps.Media.Attach(c.Request.Context(), c.Param("id"), req.Owner); err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "media asset not found")
		return
	}
	noContent(c)
}

// DetachMedia godoc
// @ID          detachMedia
// @Summary     Remove a reference to an asset
// @Tags        Admin/Media
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       id    path  string                       true  "Asset ID"
// @Param       body  body  handlers.MediaAttachRequest  true  "Referencing owner"
//
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Asset not found"
// @Router      /admin/media/{id}/detach [post]
func (h *Handlers) DetachMedia(c *gin.Context) {
	var req MediaAttachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "owner required")
		return
	}
	if err := h.deps.Media.Detach(c.Request.Context(), c.Param("id"), req.Owner); err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "media asset not found")
		return
	}
	noContent(c)
}

// RequestMediaDelete godoc
// @ID          requestMediaDelete
// @Summary     Report what a delete would break
// @Description Step one of the guarded delete: reports which and how many entities still reference the asset. Never mutates state.
// @Tags        Admin/Media
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Asset ID"
//
// @Success     200  {object}  containers.DeleteImpact
// @Failure     404  {object}  handlers.ErrorResponse  "Asset not found"
// @Router      /admin/media/{id}/delete-request [get]
func (h *Handlers) RequestMediaDelete(c *gin.Context) {
	impact, err := h.deps.Media.RequestDelete(c.Param("id"))
	if err != nil {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "media asset not found")
		return
	}
	ok(c, http.StatusOK, impact)
}

// ConfirmMediaDelete godoc
// @ID          confirmMediaDelete
// @Summary     Delete a media asset
// @Description Step two of the guarded delete. An asset with live references is refused unless ?force=1.
// @Tags        Admin/Media
// @Security    BearerAuth
//
// @Param       id     path   string  true  "Asset ID"
// @Param       force  query  string  false "Delete even when referenced"
//
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Asset not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Asset still referenced"
// @Router      /admin/media/{id} [delete]
func (h *Handlers) ConfirmMediaDelete(c *gin.Context) {
	id := c.Param("id")
	err := h.deps.Media.ConfirmDelete(c.Request.Context(), id, sysutil.IsTruthy(c.Query("force")))
	switch {
	case errors.Is(err, containers.ErrNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, "media asset not found")
		return
	case errors.Is(err, containers.ErrAssetInUse):
		fail(c, http.StatusConflict, ErrCodeAssetInUse, "asset still referenced; retry with force")
		return
	case err != nil:
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "delete failed")
		return
	}
	h.audit(c, "media.delete", id, "")
	noContent(c)
}
