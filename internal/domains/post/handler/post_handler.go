package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"blognest-backend/internal/config"
	"blognest-backend/internal/domains/post"
	"blognest-backend/internal/shared/backenderr"
	"blognest-backend/internal/shared/response"
)

type PostHandler struct {
	service post.Service
	content config.ContentConfig
}

func NewPostHandler(svc post.Service, content config.ContentConfig) *PostHandler {
	return &PostHandler{
		service: svc,
		content: content,
	}
}

// ListPublished - GET /v1/posts?limit=10&cursor=...&tag=go
func (h *PostHandler) ListPublished(c *gin.Context) {
	posts, next, err := h.service.ListPublished(c.Request.Context(), h.listQuery(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondList(c, posts, next)
}

// ListMine - GET /v1/admin/posts (admin, own posts, any status)
func (h *PostHandler) ListMine(c *gin.Context) {
	posts, next, err := h.service.ListMine(c.Request.Context(), h.listQuery(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	h.respondList(c, posts, next)
}

// Get - GET /v1/posts/:key where key is a generated id or a slug
func (h *PostHandler) Get(c *gin.Context) {
	p, err := h.service.GetByIDOrSlug(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"post":                 p,
		"reading_time_minutes": readingTime(p, h.content),
	})
}

// AllTags - GET /v1/posts/tags
func (h *PostHandler) AllTags(c *gin.Context) {
	tags, err := h.service.AllTags(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"tags": tags})
}

// Create - POST /v1/admin/posts
func (h *PostHandler) Create(c *gin.Context) {
	var patch post.Patch
	if err := c.BindJSON(&patch); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), &patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created)
}

// Update - PUT /v1/admin/posts/:id (id or slug accepted)
func (h *PostHandler) Update(c *gin.Context) {
	var patch post.Patch
	if err := c.BindJSON(&patch); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	updated, err := h.service.Update(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, updated)
}

// Publish - POST /v1/admin/posts/:id/publish
func (h *PostHandler) Publish(c *gin.Context) {
	p, err := h.service.Publish(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// Unpublish - POST /v1/admin/posts/:id/unpublish
func (h *PostHandler) Unpublish(c *gin.Context) {
	p, err := h.service.Unpublish(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

// Delete - DELETE /v1/admin/posts/:id
func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *PostHandler) listQuery(c *gin.Context) post.ListQuery {
	q := post.ListQuery{
		Cursor: c.Query("cursor"),
		Tag:    c.Query("tag"),
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			q.Limit = l
		}
	}
	return q
}

func (h *PostHandler) respondList(c *gin.Context, posts []post.Post, next string) {
	items := make([]post.ListItem, len(posts))
	for i := range posts {
		items[i] = posts[i].ToListItem(h.content.ExcerptLength, h.content.WordsPerMinute)
	}
	response.SuccessWithMeta(c, http.StatusOK, items, &response.Meta{
		Count:      len(items),
		NextCursor: next,
	})
}

func (h *PostHandler) respondError(c *gin.Context, err error) {
	status := post.ToHTTPStatus(err)
	msg := err.Error()
	if status == 500 {
		msg = backenderr.UserMessage(err)
	}
	response.ErrorResponse(c, status, post.ToErrorCode(err), msg)
}

func readingTime(p *post.Post, content config.ContentConfig) int {
	return p.ToListItem(content.ExcerptLength, content.WordsPerMinute).ReadingTime
}
