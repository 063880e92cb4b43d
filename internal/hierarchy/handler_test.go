package hierarchy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/adstack/admin-backend/internal/middleware"
	"github.com/adstack/admin-backend/internal/models"
)

type fakeListStore struct {
	masters     []MasterView
	orgMasters  map[int64]*MasterView
	orgs        []OrganizationUsers
	advertisers []AdvertiserView

	lastOrgFilter  *OrganizationFilter
	lastUserFilter *UserFilter
}

func (s *fakeListStore) ListMasters(context.Context) ([]MasterView, error) {
	return s.masters, nil
}

func (s *fakeListStore) GetMasterForOrganization(_ context.Context, orgID int64) (*MasterView, error) {
	return s.orgMasters[orgID], nil
}

func (s *fakeListStore) ListOrganizations(_ context.Context, f OrganizationFilter) ([]OrganizationUsers, error) {
	s.lastOrgFilter = &f
	if f.None {
		return []OrganizationUsers{}, nil
	}
	return s.orgs, nil
}

func (s *fakeListStore) ListAdvertisers(_ context.Context, f UserFilter) ([]AdvertiserView, error) {
	s.lastUserFilter = &f
	if f.None {
		return []AdvertiserView{}, nil
	}
	return s.advertisers, nil
}

func newTestRouter(store Store, actor models.Actor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(store, nil, zap.NewNop())
	r := gin.New()
	r.Use(func(c *gin.Context) { c.Set(middleware.ContextActor, actor) })
	r.GET("/masters", h.ListMasters)
	r.GET("/agencies", h.ListAgencies)
	r.GET("/advertisers", h.ListAdvertisers)
	return r
}

func doGet(t *testing.T, r *gin.Engine, path string) (*httptest.ResponseRecorder, map[string]json.RawMessage) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)

	var body struct {
		Success bool                       `json:"success"`
		Data    map[string]json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body.Data
}

func TestListMastersForMaster(t *testing.T) {
	store := &fakeListStore{masters: []MasterView{{ID: 1, Username: "boss"}, {ID: 2, Username: "boss2"}}}
	r := newTestRouter(store, master(1))

	w, data := doGet(t, r, "/masters")
	require.Equal(t, http.StatusOK, w.Code)

	var masters []MasterView
	require.NoError(t, json.Unmarshal(data["masters"], &masters))
	require.Len(t, masters, 2)
}

func TestListMastersForAdvertiserIsOwningMasterOnly(t *testing.T) {
	store := &fakeListStore{
		masters:    []MasterView{{ID: 1}, {ID: 2}},
		orgMasters: map[int64]*MasterView{5: {ID: 2, Username: "owner"}},
	}
	r := newTestRouter(store, advertiser(20, 5))

	w, data := doGet(t, r, "/masters")
	require.Equal(t, http.StatusOK, w.Code)

	var masters []MasterView
	require.NoError(t, json.Unmarshal(data["masters"], &masters))
	require.Len(t, masters, 1)
	require.Equal(t, int64(2), masters[0].ID)
}

func TestListAgenciesForgedFilterDoesNotWiden(t *testing.T) {
	store := &fakeListStore{orgs: []OrganizationUsers{{ID: 3, Name: "Acme", MasterID: 1}}}
	r := newTestRouter(store, agency(10, 3))

	w, _ := doGet(t, r, "/agencies?masterId=99")
	require.Equal(t, http.StatusOK, w.Code)

	// The store only ever sees the actor's own organization.
	require.NotNil(t, store.lastOrgFilter)
	require.Nil(t, store.lastOrgFilter.MasterID)
	require.NotNil(t, store.lastOrgFilter.ID)
	require.Equal(t, int64(3), *store.lastOrgFilter.ID)
}

func TestListAgenciesMalformedFilterTreatedAbsent(t *testing.T) {
	store := &fakeListStore{}
	r := newTestRouter(store, master(1))

	w, _ := doGet(t, r, "/agencies?masterId=abc")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, store.lastOrgFilter)
	// Falls back to the role default (platform-wide for a master), not an error.
	require.Nil(t, store.lastOrgFilter.MasterID)
	require.Nil(t, store.lastOrgFilter.ID)
}

func TestListAdvertisersOrganizationFilterWins(t *testing.T) {
	store := &fakeListStore{}
	r := newTestRouter(store, master(1))

	w, _ := doGet(t, r, "/advertisers?organizationId=3&masterId=7")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, store.lastUserFilter)
	require.Nil(t, store.lastUserFilter.MasterID)
	require.Equal(t, int64(3), *store.lastUserFilter.OrganizationID)
}

func TestListAdvertisersAdvertiserPinnedToSelf(t *testing.T) {
	store := &fakeListStore{advertisers: []AdvertiserView{{ID: 20, Username: "adv"}}}
	r := newTestRouter(store, advertiser(20, 5))

	w, data := doGet(t, r, "/advertisers?organizationId=99")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, int64(20), *store.lastUserFilter.ID)

	var list []AdvertiserView
	require.NoError(t, json.Unmarshal(data["advertisers"], &list))
	require.Len(t, list, 1)
}
