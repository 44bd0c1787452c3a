package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"autonuoma/app/controllers"
	"autonuoma/app/models"
	"autonuoma/app/repositories"
	"autonuoma/app/services"
	"autonuoma/pkg/auth"
	"autonuoma/pkg/middleware"
	"autonuoma/pkg/router"
	"autonuoma/pkg/ws"
)

const (
	adminID  = "64a0f0c2e1b2c3d4e5f60001"
	renterID = "64a0f0c2e1b2c3d4e5f60002"
	carID    = "64a0f0c2e1b2c3d4e5f60718"
)

func oid(hex string) primitive.ObjectID {
	v, _ := primitive.ObjectIDFromHex(hex)
	return v
}

// ─── In-memory stores ─────────────────────────────────────────────────────────

type memUsers struct {
	users map[string]models.User
}

func (m *memUsers) FindByID(_ context.Context, id string) (models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return models.User{}, repositories.ErrNotFound
	}
	return u, nil
}

func (m *memUsers) ResolveID(ctx context.Context, id string) (string, error) {
	if _, err := m.FindByID(ctx, id); err != nil {
		return "", err
	}
	return id, nil
}

type memReservations struct {
	all []models.Reservation
}

func (m *memReservations) List(_ context.Context, ownerID string) ([]models.Reservation, error) {
	if ownerID == "" {
		return m.all, nil
	}
	var out []models.Reservation
	for _, r := range m.all {
		if r.UserID == ownerID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memReservations) FindByCar(_ context.Context, carID string) ([]models.Reservation, error) {
	var out []models.Reservation
	for _, r := range m.all {
		if r.CarID == carID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memReservations) FindByID(_ context.Context, id string) (models.Reservation, error) {
	for _, r := range m.all {
		if r.ID.Hex() == id {
			return r, nil
		}
	}
	return models.Reservation{}, repositories.ErrNotFound
}

func (m *memReservations) Create(_ context.Context, r models.Reservation) (models.Reservation, error) {
	r.ID = primitive.NewObjectID()
	m.all = append(m.all, r)
	return r, nil
}

func (m *memReservations) Update(_ context.Context, id string, r models.Reservation) (models.Reservation, error) {
	for i, existing := range m.all {
		if existing.ID.Hex() == id {
			r.ID = existing.ID
			r.UserID = existing.UserID
			r.Email = existing.Email
			m.all[i] = r
			return m.all[i], nil
		}
	}
	return models.Reservation{}, repositories.ErrNotFound
}

func (m *memReservations) Delete(_ context.Context, id string) (models.Reservation, error) {
	for i, existing := range m.all {
		if existing.ID.Hex() == id {
			m.all = append(m.all[:i], m.all[i+1:]...)
			return existing, nil
		}
	}
	return models.Reservation{}, repositories.ErrNotFound
}

// ─── Harness ──────────────────────────────────────────────────────────────────

type apiEnvelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  []string        `json:"errors"`
}

func newTestAPI(t *testing.T, store *memReservations) http.Handler {
	t.Helper()

	users := &memUsers{users: map[string]models.User{
		adminID:  {ID: oid(adminID), Email: "admin@example.com", IsAdmin: true},
		renterID: {ID: oid(renterID), Email: "renter@example.com"},
	}}

	feed := ws.NewHub()
	go feed.Run()

	controller := controllers.NewReservationController(
		services.NewReservationService(store, users),
		services.NewAvailabilityService(store),
		users,
		feed,
	)

	r := router.New()
	api := r.Group("/api/reservations", middleware.Auth(users))
	api.Get("", "reservations.index", controller.Index)
	api.Get("/dates/{id}", "reservations.dates", controller.UnavailableDates)
	api.Get("/{id}", "reservations.show", controller.Show)
	api.Post("", "reservations.store", controller.Store)
	api.Put("/{id}", "reservations.update", controller.Update)
	api.Delete("/{id}", "reservations.destroy", controller.Destroy)

	return r.Handler()
}

func bearer(t *testing.T, userID string) string {
	t.Helper()
	token, err := auth.GenerateToken(userID)
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body interface{}) (*httptest.ResponseRecorder, apiEnvelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env apiEnvelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func seedReservation(store *memReservations, userID string, start, end models.Date) models.Reservation {
	r, _ := store.Create(context.Background(), models.Reservation{
		CarID:        carID,
		CarTitle:     "Volkswagen Golf",
		DateRented:   start,
		DateReturned: end,
		UserID:       userID,
		Email:        userID + "@example.com",
		Status:       models.StatusConfirmed,
	})
	return r
}

// ─── Auth gate ────────────────────────────────────────────────────────────────

func TestReservationsRequireToken(t *testing.T) {
	h := newTestAPI(t, &memReservations{})

	rec, env := doJSON(t, h, http.MethodGet, "/api/reservations", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized", env.Message)
}

func TestReservationsRejectGarbageToken(t *testing.T) {
	h := newTestAPI(t, &memReservations{})

	rec, _ := doJSON(t, h, http.MethodGet, "/api/reservations", "Bearer nonsense", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReservationsRejectTokenForDeletedAccount(t *testing.T) {
	h := newTestAPI(t, &memReservations{})

	// Valid signature, but the id resolves to no stored account.
	rec, _ := doJSON(t, h, http.MethodGet, "/api/reservations",
		bearer(t, "64a0f0c2e1b2c3d4e5f60777"), nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// ─── Listing scope ────────────────────────────────────────────────────────────

func TestListScopesToOwner(t *testing.T) {
	store := &memReservations{}
	seedReservation(store, renterID, models.NewDate(2024, time.July, 1), models.NewDate(2024, time.July, 3))
	seedReservation(store, adminID, models.NewDate(2024, time.July, 10), models.NewDate(2024, time.July, 12))
	h := newTestAPI(t, store)

	rec, env := doJSON(t, h, http.MethodGet, "/api/reservations", bearer(t, renterID), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var listed []models.Reservation
	require.NoError(t, json.Unmarshal(env.Data, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, renterID, listed[0].UserID)
}

func TestListAdminSeesAll(t *testing.T) {
	store := &memReservations{}
	seedReservation(store, renterID, models.NewDate(2024, time.July, 1), models.NewDate(2024, time.July, 3))
	seedReservation(store, adminID, models.NewDate(2024, time.July, 10), models.NewDate(2024, time.July, 12))
	h := newTestAPI(t, store)

	rec, env := doJSON(t, h, http.MethodGet, "/api/reservations", bearer(t, adminID), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var listed []models.Reservation
	require.NoError(t, json.Unmarshal(env.Data, &listed))
	assert.Len(t, listed, 2)
}

// ─── Create ───────────────────────────────────────────────────────────────────

func TestCreateReservation(t *testing.T) {
	store := &memReservations{}
	h := newTestAPI(t, store)

	rec, env := doJSON(t, h, http.MethodPost, "/api/reservations", bearer(t, renterID), map[string]interface{}{
		"car_id":       carID,
		"carTitle":     "Volkswagen Golf",
		"dateRented":   "2024-07-01",
		"dateReturned": "2024-07-05",
		"status":       "confirmed", // must be ignored
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.Reservation
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, models.StatusPending, created.Status)
	assert.Equal(t, renterID, created.UserID)
	assert.Equal(t, "renter@example.com", created.Email)
}

func TestCreateReservationValidationErrors(t *testing.T) {
	h := newTestAPI(t, &memReservations{})

	rec, env := doJSON(t, h, http.MethodPost, "/api/reservations", bearer(t, renterID), map[string]interface{}{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Please fill in all required fields", env.Message)
	assert.Equal(t, []string{"car", "car title", "rental start date", "rental end date"}, env.Errors)
}

// ─── Unavailable dates ────────────────────────────────────────────────────────

func TestUnavailableDatesEndpoint(t *testing.T) {
	store := &memReservations{}
	seedReservation(store, renterID, models.NewDate(2024, time.January, 1), models.NewDate(2024, time.January, 3))
	seedReservation(store, adminID,
		models.Date{Time: time.Date(2024, time.January, 5, 8, 0, 0, 0, time.UTC)},
		models.Date{Time: time.Date(2024, time.January, 5, 20, 0, 0, 0, time.UTC)})
	h := newTestAPI(t, store)

	rec, env := doJSON(t, h, http.MethodGet, "/api/reservations/dates/"+carID, bearer(t, renterID), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var dates []models.Date
	require.NoError(t, json.Unmarshal(env.Data, &dates))
	require.Len(t, dates, 4)
	assert.Equal(t, models.NewDate(2024, time.January, 5).Day(), dates[3].Day())
}

func TestUnavailableDatesMalformedID(t *testing.T) {
	h := newTestAPI(t, &memReservations{})

	rec, env := doJSON(t, h, http.MethodGet, "/api/reservations/dates/oops", bearer(t, renterID), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Car does not exist", env.Message)
}

// ─── Update / delete ──────────────────────────────────────────────────────────

func TestUpdateReservationStatus(t *testing.T) {
	store := &memReservations{}
	seeded := seedReservation(store, renterID, models.NewDate(2024, time.July, 1), models.NewDate(2024, time.July, 3))
	h := newTestAPI(t, store)

	rec, env := doJSON(t, h, http.MethodPut, "/api/reservations/"+seeded.ID.Hex(), bearer(t, adminID), map[string]interface{}{
		"car_id":       seeded.CarID,
		"carTitle":     seeded.CarTitle,
		"dateRented":   "2024-07-01",
		"dateReturned": "2024-07-03",
		"status":       "cancelled",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var updated models.Reservation
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, models.StatusCancelled, updated.Status)
}

func TestUpdateReservationRejectsUnknownStatus(t *testing.T) {
	store := &memReservations{}
	seeded := seedReservation(store, renterID, models.NewDate(2024, time.July, 1), models.NewDate(2024, time.July, 3))
	h := newTestAPI(t, store)

	rec, env := doJSON(t, h, http.MethodPut, "/api/reservations/"+seeded.ID.Hex(), bearer(t, adminID), map[string]interface{}{
		"car_id":       seeded.CarID,
		"carTitle":     seeded.CarTitle,
		"dateRented":   "2024-07-01",
		"dateReturned": "2024-07-03",
		"status":       "archived",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"status"}, env.Errors)
}

func TestDeleteReservation(t *testing.T) {
	store := &memReservations{}
	seeded := seedReservation(store, renterID, models.NewDate(2024, time.July, 1), models.NewDate(2024, time.July, 3))
	h := newTestAPI(t, store)

	rec, env := doJSON(t, h, http.MethodDelete, "/api/reservations/"+seeded.ID.Hex(), bearer(t, renterID), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var deleted models.Reservation
	require.NoError(t, json.Unmarshal(env.Data, &deleted))
	assert.Equal(t, seeded.ID, deleted.ID)
	assert.Empty(t, store.all)
}

func TestShowUnknownReservation(t *testing.T) {
	h := newTestAPI(t, &memReservations{})

	rec, env := doJSON(t, h, http.MethodGet, "/api/reservations/64a0f0c2e1b2c3d4e5f60999", bearer(t, renterID), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Reservation does not exist", env.Message)
}
