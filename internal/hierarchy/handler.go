package hierarchy

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/adstack/admin-backend/internal/middleware"
	"github.com/adstack/admin-backend/internal/models"
	"github.com/adstack/admin-backend/pkg/cache"
	"github.com/adstack/admin-backend/pkg/response"
)

// Store is the persistence surface the listing handlers read from.
type Store interface {
	ListMasters(ctx context.Context) ([]MasterView, error)
	GetMasterForOrganization(ctx context.Context, orgID int64) (*MasterView, error)
	ListOrganizations(ctx context.Context, filter OrganizationFilter) ([]OrganizationUsers, error)
	ListAdvertisers(ctx context.Context, filter UserFilter) ([]AdvertiserView, error)
}

// Handler handles the hierarchy listing endpoints.
type Handler struct {
	store  Store
	views  *cache.ViewCache
	logger *zap.Logger
}

// NewHandler creates a hierarchy handler.
func NewHandler(store Store, views *cache.ViewCache, logger *zap.Logger) *Handler {
	return &Handler{store: store, views: views, logger: logger}
}

// ListMasters handles GET /masters. A master viewer gets every platform
// master; lower tiers get only the master owning their organization.
func (h *Handler) ListMasters(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	key := fmt.Sprintf("masters:%s:%d", actor.Role, actor.ID)
	if raw, ok := h.views.Get(c.Request.Context(), key); ok {
		response.OK(c, json.RawMessage(raw))
		return
	}

	var masters []MasterView
	if actor.Role == models.RoleMaster {
		list, err := h.store.ListMasters(c.Request.Context())
		if err != nil {
			h.logger.Error("list masters", zap.Error(err))
			response.Internal(c, "failed to load masters")
			return
		}
		masters = list
	} else {
		masters = []MasterView{}
		if actor.OrganizationID != nil {
			m, err := h.store.GetMasterForOrganization(c.Request.Context(), *actor.OrganizationID)
			if err != nil {
				h.logger.Error("master for organization", zap.Error(err))
				response.Internal(c, "failed to load masters")
				return
			}
			if m != nil {
				masters = append(masters, *m)
			}
		}
	}

	payload := gin.H{"masters": masters}
	h.cachePayload(c, key, payload)
	response.OK(c, payload)
}

// ListAgencies handles GET /agencies?masterId=. Returns organizations in the
// viewer's scope with their agency and advertiser members, redacted per
// viewer.
func (h *Handler) ListAgencies(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	masterID := queryID(c, "masterId")

	key := fmt.Sprintf("agencies:%s:%d:%s", actor.Role, actor.ID, idKey(masterID))
	if raw, ok := h.views.Get(c.Request.Context(), key); ok {
		response.OK(c, json.RawMessage(raw))
		return
	}

	scope := ResolveOrganizationScope(actor, masterID)
	orgs, err := h.store.ListOrganizations(c.Request.Context(), scope)
	if err != nil {
		h.logger.Error("list organizations", zap.Error(err))
		response.Internal(c, "failed to load organizations")
		return
	}

	payload := gin.H{"agencies": BuildAgencyViews(actor, orgs)}
	h.cachePayload(c, key, payload)
	response.OK(c, payload)
}

// ListAdvertisers handles GET /advertisers?organizationId=&masterId=.
func (h *Handler) ListAdvertisers(c *gin.Context) {
	actor := middleware.ActorFrom(c)
	orgID := queryID(c, "organizationId")
	masterID := queryID(c, "masterId")

	scope := ResolveAdvertiserScope(actor, orgID, masterID)
	list, err := h.store.ListAdvertisers(c.Request.Context(), scope)
	if err != nil {
		h.logger.Error("list advertisers", zap.Error(err))
		response.Internal(c, "failed to load advertisers")
		return
	}
	response.OK(c, gin.H{"advertisers": list})
}

func (h *Handler) cachePayload(c *gin.Context, key string, payload any) {
	b, err := json.Marshal(payload)
	if err != nil {
		return
	}
	h.views.Set(c.Request.Context(), key, b)
}

// queryID parses a numeric query parameter. Malformed values are treated as
// absent; the role-based default scope still applies.
func queryID(c *gin.Context, name string) *int64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &id
}

func idKey(id *int64) string {
	if id == nil {
		return "all"
	}
	return strconv.FormatInt(*id, 10)
}
