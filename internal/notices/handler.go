package notices

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/adstack/admin-backend/pkg/response"
)

// Handler handles notice board HTTP endpoints. Role capability gating is
// applied at the route level via middleware.RequireCapability.
type Handler struct {
	repo   *Repository
	logger *zap.Logger
}

// NewHandler creates a notices handler.
func NewHandler(repo *Repository, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, logger: logger}
}

// NoticeRequest is the body for POST /notices and PUT /notices/:id.
type NoticeRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// List handles GET /notices.
func (h *Handler) List(c *gin.Context) {
	list, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.logger.Error("list notices", zap.Error(err))
		response.Internal(c, "failed to load notices")
		return
	}
	response.OK(c, gin.H{"notices": list})
}

// Create handles POST /notices.
func (h *Handler) Create(c *gin.Context) {
	title, content, ok := h.bindNotice(c)
	if !ok {
		return
	}
	notice, err := h.repo.Create(c.Request.Context(), title, content)
	if err != nil {
		h.logger.Error("create notice", zap.Error(err))
		response.Internal(c, "failed to create notice")
		return
	}
	response.Created(c, notice)
}

// Get handles GET /notices/:id and counts the view.
func (h *Handler) Get(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	notice, err := h.repo.GetAndCountView(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("get notice", zap.Error(err))
		response.Internal(c, "failed to load notice")
		return
	}
	if notice == nil {
		response.NotFound(c, "notice not found")
		return
	}
	response.OK(c, notice)
}

// Update handles PUT /notices/:id.
func (h *Handler) Update(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	title, content, ok := h.bindNotice(c)
	if !ok {
		return
	}
	notice, err := h.repo.Update(c.Request.Context(), id, title, content)
	if err != nil {
		h.logger.Error("update notice", zap.Error(err))
		response.Internal(c, "failed to update notice")
		return
	}
	if notice == nil {
		response.NotFound(c, "notice not found")
		return
	}
	response.OK(c, notice)
}

// Delete handles DELETE /notices/:id.
func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}
	deleted, err := h.repo.Delete(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("delete notice", zap.Error(err))
		response.Internal(c, "failed to delete notice")
		return
	}
	if !deleted {
		response.NotFound(c, "notice not found")
		return
	}
	response.NoContent(c)
}

func (h *Handler) bindNotice(c *gin.Context) (title, content string, ok bool) {
	var req NoticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return "", "", false
	}
	title = strings.TrimSpace(req.Title)
	content = strings.TrimSpace(req.Content)
	if title == "" {
		response.BadRequest(c, "title is required")
		return "", "", false
	}
	if content == "" {
		response.BadRequest(c, "content is required")
		return "", "", false
	}
	return title, content, true
}

func (h *Handler) pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.BadRequest(c, "invalid notice id")
		return 0, false
	}
	return id, true
}
