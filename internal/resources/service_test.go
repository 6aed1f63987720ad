package resources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/parkops/events-backend/internal/models"
	"github.com/parkops/events-backend/pkg/apperr"
)

type memStore struct {
	mu     sync.Mutex
	nextID int64
	events map[int64]bool
	rows   []models.Resource
}

func newMemStore(eventIDs ...int64) *memStore {
	m := &memStore{events: map[int64]bool{}}
	for _, id := range eventIDs {
		m.events[id] = true
	}
	return m
}

func (m *memStore) Exists(_ context.Context, id int64) (bool, error) { return m.events[id], nil }

func (m *memStore) ListByEvent(_ context.Context, eventID int64) ([]models.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Resource{}
	for _, r := range m.rows {
		if r.EventID == eventID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ResourceType != out[j].ResourceType {
			return out[i].ResourceType < out[j].ResourceType
		}
		return out[i].ResourceName < out[j].ResourceName
	})
	return out, nil
}

func (m *memStore) Get(_ context.Context, eventID, id int64) (*models.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.ID == id && r.EventID == eventID {
			res := r
			return &res, nil
		}
	}
	return nil, apperr.NotFound("resource")
}

func (m *memStore) IsAssigned(_ context.Context, eventID int64, typ models.ResourceType, resourceID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.EventID == eventID && r.ResourceType == typ && r.ResourceID != nil && *r.ResourceID == resourceID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) Create(_ context.Context, res *models.Resource) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	res.ID = m.nextID
	res.CreatedAt = time.Now()
	res.UpdatedAt = res.CreatedAt
	m.rows = append(m.rows, *res)
	return nil
}

func (m *memStore) Update(_ context.Context, eventID, id int64, p models.ResourcePatch) (*models.Resource, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.rows {
		r := &m.rows[i]
		if r.ID != id || r.EventID != eventID {
			continue
		}
		if p.ResourceName != nil {
			r.ResourceName = *p.ResourceName
		}
		if p.Quantity != nil {
			r.Quantity = *p.Quantity
		}
		if p.Notes != nil {
			r.Notes = *p.Notes
		}
		if p.Status != nil {
			r.Status = *p.Status
		}
		res := *r
		return &res, nil
	}
	return nil, apperr.NotFound("resource")
}

func (m *memStore) Delete(_ context.Context, eventID, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, r := range m.rows {
		if r.ID == id && r.EventID == eventID {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("resource")
}

func (m *memStore) Counts(_ context.Context, eventID int64) ([]TypeStatusCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []TypeStatusCount
	for _, r := range m.rows {
		if r.EventID == eventID {
			out = append(out, TypeStatusCount{Type: r.ResourceType, Status: r.Status, Count: 1})
		}
	}
	return out, nil
}

func int64Ptr(v int64) *int64 { return &v }
func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestAssign_DefaultsAndValidation(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newMemStore(1), newMemStore(1))

	_, err := svc.Assign(ctx, 1, &AssignRequest{})
	e := apperr.As(err)
	assert.Equal(t, apperr.KindValidation, e.Kind)
	assert.Contains(t, e.Fields, "resourceType")
	assert.Contains(t, e.Fields, "resourceName")

	_, err = svc.Assign(ctx, 1, &AssignRequest{ResourceType: "vehicle", ResourceName: "Camión"})
	assert.Contains(t, apperr.As(err).Fields, "resourceType")

	_, err = svc.Assign(ctx, 1, &AssignRequest{ResourceType: models.ResourceTypeSpace, ResourceName: "Cancha", ResourceID: int64Ptr(0)})
	assert.Contains(t, apperr.As(err).Fields, "resourceId")

	_, err = svc.Assign(ctx, 2, &AssignRequest{ResourceType: models.ResourceTypeSpace, ResourceName: "Anfiteatro"})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestAssign_DuplicateExternalResource(t *testing.T) {
	ctx := context.Background()
	store := newMemStore(1)
	svc := NewService(store, store)

	first, err := svc.Assign(ctx, 1, &AssignRequest{
		ResourceType: models.ResourceTypeEquipment, ResourceName: "Sillas", ResourceID: int64Ptr(30), Quantity: intPtr(50),
	})
	require.NoError(t, err)
	assert.Equal(t, models.ResourceStatusPending, first.Status)
	assert.Equal(t, 50, first.Quantity)

	_, err = svc.Assign(ctx, 1, &AssignRequest{
		ResourceType: models.ResourceTypeEquipment, ResourceName: "Sillas", ResourceID: int64Ptr(30),
	})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	other, err := svc.Assign(ctx, 1, &AssignRequest{ResourceType: models.ResourceTypeService, ResourceName: "Limpieza"})
	require.NoError(t, err)
	assert.Equal(t, 1, other.Quantity)
}

func TestUpdate_PartialFields(t *testing.T) {
	ctx := context.Background()
	store := newMemStore(1)
	svc := NewService(store, store)
	res, err := svc.Assign(ctx, 1, &AssignRequest{
		ResourceType: models.ResourceTypeEquipment, ResourceName: "Mesas", Quantity: intPtr(4), Notes: "plegables",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, 1, res.ID, &UpdateRequest{Quantity: intPtr(8)})
	require.NoError(t, err)
	assert.Equal(t, 8, updated.Quantity)
	assert.Equal(t, "Mesas", updated.ResourceName)
	assert.Equal(t, "plegables", updated.Notes)

	_, err = svc.Update(ctx, 1, res.ID, &UpdateRequest{ResourceName: strPtr("")})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.Update(ctx, 1, 999, &UpdateRequest{Notes: strPtr("x")})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestUpdateStatus_ReflectedInSummary(t *testing.T) {
	ctx := context.Background()
	store := newMemStore(1)
	svc := NewService(store, store)
	res, err := svc.Assign(ctx, 1, &AssignRequest{ResourceType: models.ResourceTypeSpace, ResourceName: "Cancha"})
	require.NoError(t, err)
	_, err = svc.Assign(ctx, 1, &AssignRequest{ResourceType: models.ResourceTypeEquipment, ResourceName: "Sonido"})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, 1, res.ID, &StatusRequest{})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.UpdateStatus(ctx, 1, res.ID, &StatusRequest{Status: models.ResourceStatusConfirmed})
	require.NoError(t, err)

	sum, err := svc.Summary(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, sum.Total)
	assert.Equal(t, 1, sum.ByStatus[models.ResourceStatusConfirmed])
	assert.Equal(t, 1, sum.ByStatus[models.ResourceStatusPending])
	assert.Equal(t, 0, sum.ByStatus[models.ResourceStatusRejected])
	assert.Equal(t, map[models.ResourceType]int{models.ResourceTypeSpace: 1, models.ResourceTypeEquipment: 1}, sum.ByType)
}

func TestListAndRemove(t *testing.T) {
	ctx := context.Background()
	store := newMemStore(1)
	svc := NewService(store, store)

	_, err := svc.List(ctx, 3)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	b, err := svc.Assign(ctx, 1, &AssignRequest{ResourceType: models.ResourceTypeSpace, ResourceName: "Pérgola"})
	require.NoError(t, err)
	_, err = svc.Assign(ctx, 1, &AssignRequest{ResourceType: models.ResourceTypeEquipment, ResourceName: "Toldo"})
	require.NoError(t, err)

	list, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, models.ResourceTypeEquipment, list[0].ResourceType)

	require.NoError(t, svc.Remove(ctx, 1, b.ID))
	_, err = svc.Get(ctx, 1, b.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestHandler_AssignConflictIs400(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := newMemStore(1)
	h := NewHandler(NewService(store, store), zap.NewNop())
	r := gin.New()
	r.POST("/events/:id/resources", h.Assign)
	r.GET("/events/:id/resources/:resourceId", h.Get)

	body := `{"resourceType":"space","resourceName":"Anfiteatro","resourceId":7}`
	for i, want := range []int{http.StatusCreated, http.StatusBadRequest} {
		req := httptest.NewRequest(http.MethodPost, "/events/1/resources", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, want, w.Code, "attempt %d: %s", i, w.Body.String())
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events/1/resources/abc", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/events/1/resources/99", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
