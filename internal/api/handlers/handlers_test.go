package handlers

import (
	"bytes"
	"context"
	"delivery-route-map/internal/adapters/directions"
	"delivery-route-map/internal/adapters/render"
	"delivery-route-map/internal/adapters/report"
	"delivery-route-map/internal/api/dto"
	"delivery-route-map/internal/domain"
	"delivery-route-map/internal/ports"
	"delivery-route-map/internal/security"
	"delivery-route-map/internal/services"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memoryDeliveryRepo struct {
	mu     sync.Mutex
	nextID int
	byID   map[int]*domain.Delivery
}

func newMemoryDeliveryRepo(deliveries ...*domain.Delivery) *memoryDeliveryRepo {
	r := &memoryDeliveryRepo{nextID: 1, byID: map[int]*domain.Delivery{}}
	for _, d := range deliveries {
		r.byID[d.ID] = d
		if d.ID >= r.nextID {
			r.nextID = d.ID + 1
		}
	}
	return r
}

func (r *memoryDeliveryRepo) ListDeliveries(ctx context.Context) ([]*domain.Delivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*domain.Delivery, 0, len(r.byID))
	for _, d := range r.byID {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *memoryDeliveryRepo) GetDelivery(ctx context.Context, id int) (*domain.Delivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrDeliveryNotFound
	}
	return d, nil
}

func (r *memoryDeliveryRepo) AddDelivery(ctx context.Context, nd domain.NewDelivery) (*domain.Delivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	d := &domain.Delivery{ID: r.nextID, Address: nd.Address, City: nd.City, Notes: nd.Notes, CreatedAt: time.Now()}
	r.byID[d.ID] = d
	r.nextID++
	return d, nil
}

func (r *memoryDeliveryRepo) UpdateCoordinates(ctx context.Context, id int, c domain.Coordinates) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	d, ok := r.byID[id]
	if !ok {
		return domain.ErrDeliveryNotFound
	}
	d.Lat, d.Lon = &c.Lat, &c.Lng
	return nil
}

type stubGeocoder struct {
	coords domain.Coordinates
	err    error
}

func (g stubGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	return g.coords, g.err
}

type stubLogin struct {
	token string
	err   error
}

func (s stubLogin) Login(ctx context.Context, username, password string) (string, error) {
	return s.token, s.err
}

func perform(t *testing.T, method, path string, body any, register func(r *gin.Engine)) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	r := gin.New()
	register(r)

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name       string
		body       any
		svc        stubLogin
		wantStatus int
	}{
		{"ok", dto.LoginRequest{Username: "admin", Password: "secret"}, stubLogin{token: "tok"}, http.StatusOK},
		{"missing password", map[string]string{"username": "admin"}, stubLogin{}, http.StatusBadRequest},
		{"bad credentials", dto.LoginRequest{Username: "admin", Password: "x"}, stubLogin{err: security.ErrInvalidCredentials}, http.StatusUnauthorized},
		{"store failure", dto.LoginRequest{Username: "admin", Password: "x"}, stubLogin{err: errors.New("db down")}, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := &AuthHandler{Auth: tc.svc, Logger: zap.NewNop()}
			rec := perform(t, http.MethodPost, "/login", tc.body, func(r *gin.Engine) {
				r.POST("/login", h.Login)
			})

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantStatus == http.StatusOK {
				var res dto.LoginResponse
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
				assert.Equal(t, "tok", res.Token)
			}
		})
	}
}

func TestDeliveryHandler_ListAndCreate(t *testing.T) {
	repo := newMemoryDeliveryRepo(&domain.Delivery{ID: 1, Address: "Rua A, 1"})
	h := &DeliveryHandler{Repo: repo, Geocoder: stubGeocoder{}, Logger: zap.NewNop()}
	register := func(r *gin.Engine) {
		r.GET("/deliveries", h.List)
		r.POST("/deliveries", h.Create)
	}

	rec := perform(t, http.MethodPost, "/deliveries", dto.CreateDeliveryRequest{Address: "Rua B, 2", City: "Porto"}, register)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created dto.DeliveryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 2, created.ID)
	assert.Equal(t, "Porto", created.City)
	assert.Nil(t, created.Lat)

	rec = perform(t, http.MethodGet, "/deliveries", nil, register)
	require.Equal(t, http.StatusOK, rec.Code)

	var list dto.ListDeliveriesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Deliveries, 2)
	assert.Equal(t, "Rua B, 2", list.Deliveries[0].Address)
}

func TestDeliveryHandler_CreateRejectsBlankAddress(t *testing.T) {
	h := &DeliveryHandler{Repo: newMemoryDeliveryRepo(), Logger: zap.NewNop()}
	rec := perform(t, http.MethodPost, "/deliveries", map[string]string{"address": "   "}, func(r *gin.Engine) {
		r.POST("/deliveries", h.Create)
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeliveryHandler_Geocode(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		geocoder   ports.Geocoder
		wantStatus int
	}{
		{"ok", "/deliveries/1/geocode", stubGeocoder{coords: domain.Coordinates{Lat: 38.7, Lng: -9.1}}, http.StatusOK},
		{"unknown delivery", "/deliveries/9/geocode", stubGeocoder{}, http.StatusNotFound},
		{"bad id", "/deliveries/abc/geocode", stubGeocoder{}, http.StatusBadRequest},
		{"no result", "/deliveries/1/geocode", stubGeocoder{err: ports.ErrNoGeocodeResult}, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := newMemoryDeliveryRepo(&domain.Delivery{ID: 1, Address: "Rua A, 1", City: "Lisboa"})
			h := &DeliveryHandler{Repo: repo, Geocoder: tc.geocoder, Logger: zap.NewNop()}
			rec := perform(t, http.MethodPost, tc.path, nil, func(r *gin.Engine) {
				r.POST("/deliveries/:id/geocode", h.Geocode)
			})

			require.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantStatus != http.StatusOK {
				return
			}

			var res dto.GeocodeResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
			assert.True(t, res.OK)
			assert.Equal(t, 38.7, res.Lat)

			d, err := repo.GetDelivery(context.Background(), 1)
			require.NoError(t, err)
			c, ok := d.Coordinates()
			require.True(t, ok)
			assert.Equal(t, -9.1, c.Lng)
		})
	}
}

func TestDeliveryHandler_NavigationRedirects(t *testing.T) {
	lat, lon := 41.15, -8.61
	repo := newMemoryDeliveryRepo(
		&domain.Delivery{ID: 1, Address: "Rua A, 1"},
		&domain.Delivery{ID: 2, Address: "Rua B, 2", Lat: &lat, Lon: &lon},
	)
	h := &DeliveryHandler{Repo: repo, Logger: zap.NewNop()}
	register := func(r *gin.Engine) {
		r.GET("/deliveries/:id/waze", h.OpenWaze)
		r.GET("/deliveries/:id/maps", h.OpenMaps)
	}

	tests := []struct {
		path     string
		location string
	}{
		{"/deliveries/1/waze", "https://waze.com/ul?q=Rua+A%2C+1&navigate=yes"},
		{"/deliveries/2/waze", "https://waze.com/ul?ll=41.15,-8.61&navigate=yes"},
		{"/deliveries/2/maps", "https://www.google.com/maps/dir/?api=1&destination=41.15,-8.61"},
		{"/deliveries/7/maps", "/map"},
	}

	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			rec := perform(t, http.MethodGet, tc.path, nil, register)
			assert.Equal(t, http.StatusFound, rec.Code)
			assert.Equal(t, tc.location, rec.Header().Get("Location"))
		})
	}
}

type blockingDirections struct {
	release chan struct{}
}

func (b blockingDirections) Route(ctx context.Context, req domain.RouteRequest) (*domain.RouteResult, error) {
	<-b.release
	return nil, &domain.RouteStatusError{Status: domain.RouteStatusUnknownError}
}

func newMapHandler(repo ports.DeliveryRepository, svc ports.DirectionsService, wait time.Duration) *MapHandler {
	return &MapHandler{
		Repo: repo,
		Initializer: &services.MapInitializer{
			Directions: svc,
			NewRenderer: func(view *domain.MapView) ports.DirectionsRenderer {
				return render.NewMapRenderer(view)
			},
			Logger: zap.NewNop(),
		},
		WaitTimeout: wait,
		Logger:      zap.NewNop(),
	}
}

func TestMapHandler_Show(t *testing.T) {
	repo := newMemoryDeliveryRepo(
		&domain.Delivery{ID: 1, Address: "Rua A, 1"},
		&domain.Delivery{ID: 2, Address: "Rua B, 2"},
	)
	result := &domain.RouteResult{Routes: []domain.Route{{
		Summary:       "A1",
		WaypointOrder: []int{1, 0},
		Legs:          []domain.RouteLeg{{StartAddress: "depot", EndAddress: "Rua B, 2", DistanceMeters: 1200, Duration: 3 * time.Minute}},
	}}}

	t.Run("route rendered", func(t *testing.T) {
		svc := directions.NewStaticDirectionsService(result)
		h := newMapHandler(repo, svc, time.Second)

		rec := perform(t, http.MethodGet, "/map", nil, func(r *gin.Engine) { r.GET("/map", h.Show) })
		require.Equal(t, http.StatusOK, rec.Code)

		var res dto.MapResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Equal(t, "map", res.Container)
		assert.Equal(t, 12, res.Zoom)
		assert.Equal(t, -23.5505, res.Center.Lat)
		require.Len(t, res.Routes, 1)
		assert.Equal(t, []int{1, 0}, res.Routes[0].WaypointOrder)
		assert.Equal(t, 180, res.Routes[0].Legs[0].DurationSeconds)

		reqs := svc.Requests()
		require.Len(t, reqs, 1)
		assert.Len(t, reqs[0].Waypoints, 2)
	})

	t.Run("routing failure serves base map", func(t *testing.T) {
		svc := directions.NewFailingDirectionsService(domain.RouteStatusZeroResults, "")
		h := newMapHandler(repo, svc, time.Second)

		rec := perform(t, http.MethodGet, "/map", nil, func(r *gin.Engine) { r.GET("/map", h.Show) })
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t,
			`{"container":"map","center":{"lat":-23.5505,"lng":-46.6333},"zoom":12,"routes":null}`,
			rec.Body.String())
	})

	t.Run("slow routing serves base map after timeout", func(t *testing.T) {
		svc := blockingDirections{release: make(chan struct{})}
		t.Cleanup(func() { close(svc.release) })
		h := newMapHandler(repo, svc, 20*time.Millisecond)

		rec := perform(t, http.MethodGet, "/map", nil, func(r *gin.Engine) { r.GET("/map", h.Show) })
		require.Equal(t, http.StatusOK, rec.Code)

		var res dto.MapResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
		assert.Nil(t, res.Routes)
	})
}

func TestDeliveryHandler_Report(t *testing.T) {
	repo := newMemoryDeliveryRepo(
		&domain.Delivery{ID: 1, Address: "Praça do Comércio, Lisboa", City: "Lisboa"},
		&domain.Delivery{ID: 2, Address: "Avenida dos Aliados, Porto", City: "Porto"},
	)
	h := &DeliveryHandler{Repo: repo, Reports: report.NewPDFReport(), Logger: zap.NewNop()}

	rec := perform(t, http.MethodGet, "/deliveries/report.pdf", nil, func(r *gin.Engine) {
		r.GET("/deliveries/report.pdf", h.Report)
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.NotEmpty(t, rec.Body.Bytes())
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
}
