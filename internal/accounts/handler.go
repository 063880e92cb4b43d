package accounts

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/adstack/admin-backend/internal/middleware"
	"github.com/adstack/admin-backend/internal/models"
	"github.com/adstack/admin-backend/pkg/cache"
	"github.com/adstack/admin-backend/pkg/response"
)

// Handler handles account and organization mutation endpoints.
type Handler struct {
	guard  *Guard
	views  *cache.ViewCache
	logger *zap.Logger
}

// NewHandler creates an accounts handler.
func NewHandler(guard *Guard, views *cache.ViewCache, logger *zap.Logger) *Handler {
	return &Handler{guard: guard, views: views, logger: logger}
}

// CreateAccountRequest is the body for POST /accounts.
type CreateAccountRequest struct {
	Username         string  `json:"username"`
	Password         string  `json:"password"`
	Role             string  `json:"role"`
	OrganizationID   *int64  `json:"organizationId"`
	OrganizationName string  `json:"organizationName"`
	Nickname         string  `json:"nickname"`
	Memo             *string `json:"memo"`
}

// DeleteAccountsRequest is the body for DELETE /accounts.
type DeleteAccountsRequest struct {
	IDs []int64 `json:"ids"`
}

// CreateOrganizationRequest is the body for POST /organizations.
type CreateOrganizationRequest struct {
	Name     string `json:"name"`
	MasterID *int64 `json:"masterId"`
}

// CreateAccount handles POST /accounts.
func (h *Handler) CreateAccount(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	var req CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	account, err := h.guard.CreateAccount(c.Request.Context(), actor, CreateAccountInput{
		Username:         req.Username,
		Password:         req.Password,
		Role:             models.Role(req.Role),
		OrganizationID:   req.OrganizationID,
		OrganizationName: req.OrganizationName,
		Nickname:         req.Nickname,
		Memo:             req.Memo,
	})
	if err != nil {
		h.fail(c, "create account", err)
		return
	}

	h.views.Invalidate(c.Request.Context())
	response.Created(c, gin.H{"account": account})
}

// DeleteAccounts handles DELETE /accounts.
func (h *Handler) DeleteAccounts(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	var req DeleteAccountsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	count, err := h.guard.DeleteAccounts(c.Request.Context(), actor, req.IDs)
	if err != nil {
		h.fail(c, "delete accounts", err)
		return
	}

	h.views.Invalidate(c.Request.Context())
	response.OK(c, gin.H{"deletedCount": count})
}

// CreateOrganization handles POST /organizations.
func (h *Handler) CreateOrganization(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	var req CreateOrganizationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	org, err := h.guard.CreateOrganization(c.Request.Context(), actor, req.Name, req.MasterID)
	if err != nil {
		h.fail(c, "create organization", err)
		return
	}

	h.views.Invalidate(c.Request.Context())
	response.Created(c, gin.H{"organization": org})
}

// fail maps guard failure classes onto HTTP statuses.
func (h *Handler) fail(c *gin.Context, op string, err error) {
	var vErr *ValidationError
	switch {
	case errors.Is(err, ErrForbidden):
		response.Forbidden(c, err.Error())
	case errors.As(err, &vErr):
		response.BadRequest(c, vErr.Error())
	default:
		h.logger.Error(op, zap.Error(err))
		response.Internal(c, "operation failed")
	}
}
