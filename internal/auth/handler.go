package auth

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/adstack/admin-backend/internal/models"
	"github.com/adstack/admin-backend/pkg/response"
	"github.com/adstack/admin-backend/pkg/utils"
)

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse is the auth response with JWT and the caller's identity.
type LoginResponse struct {
	Token string       `json:"token"`
	User  loginProfile `json:"user"`
}

type loginProfile struct {
	ID             int64       `json:"id"`
	Username       string      `json:"username"`
	Nickname       string      `json:"nickname"`
	Role           models.Role `json:"role"`
	OrganizationID *int64      `json:"organizationId"`
}

// Handler handles auth HTTP endpoints.
type Handler struct {
	repo   *Repository
	jwt    *JWTService
	logger *zap.Logger
}

// NewHandler creates an auth handler.
func NewHandler(repo *Repository, jwt *JWTService, logger *zap.Logger) *Handler {
	return &Handler{repo: repo, jwt: jwt, logger: logger}
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "username and password required")
		return
	}

	user, err := h.repo.GetByUsername(c.Request.Context(), req.Username)
	if err != nil {
		h.logger.Error("login lookup", zap.Error(err))
		response.Internal(c, "failed to look up user")
		return
	}
	if user == nil || !utils.CheckPassword(req.Password, user.Password) {
		response.Unauthorized(c, "invalid username or password")
		return
	}

	token, err := h.jwt.Generate(user)
	if err != nil {
		h.logger.Error("token generate", zap.Error(err))
		response.Internal(c, "failed to generate token")
		return
	}

	response.OK(c, LoginResponse{
		Token: token,
		User: loginProfile{
			ID:             user.ID,
			Username:       user.Username,
			Nickname:       user.Nickname,
			Role:           user.Role,
			OrganizationID: user.OrganizationID,
		},
	})
}
