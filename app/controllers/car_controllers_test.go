package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autonuoma/app/controllers"
	"autonuoma/app/models"
	"autonuoma/app/repositories"
	"autonuoma/app/services"
	"autonuoma/pkg/router"
)

type memCars struct {
	cars  map[string]models.Car
	types []string
}

func (m *memCars) All(_ context.Context) ([]models.Car, error) {
	var out []models.Car
	for _, c := range m.cars {
		out = append(out, c)
	}
	return out, nil
}

func (m *memCars) FindByID(_ context.Context, id string) (models.Car, error) {
	if !repositories.ValidID(id) {
		return models.Car{}, repositories.ErrInvalidID
	}
	c, ok := m.cars[id]
	if !ok {
		return models.Car{}, repositories.ErrNotFound
	}
	return c, nil
}

func (m *memCars) Create(_ context.Context, car models.Car) (models.Car, error) {
	car.ID = oid(carID)
	if m.cars == nil {
		m.cars = map[string]models.Car{}
	}
	m.cars[car.ID.Hex()] = car
	return car, nil
}

func (m *memCars) Update(_ context.Context, id string, car models.Car) (models.Car, error) {
	if _, err := m.FindByID(context.Background(), id); err != nil {
		return models.Car{}, err
	}
	car.ID = oid(id)
	m.cars[id] = car
	return car, nil
}

func (m *memCars) SetImageURL(_ context.Context, id, url string) (models.Car, error) {
	c, err := m.FindByID(context.Background(), id)
	if err != nil {
		return models.Car{}, err
	}
	c.ImageURL = url
	m.cars[id] = c
	return c, nil
}

func (m *memCars) Delete(_ context.Context, id string) (models.Car, error) {
	c, err := m.FindByID(context.Background(), id)
	if err != nil {
		return models.Car{}, err
	}
	delete(m.cars, id)
	return c, nil
}

func (m *memCars) BodyTypes(_ context.Context) ([]string, error) {
	return m.types, nil
}

func newCarAPI(t *testing.T, store *memCars) http.Handler {
	t.Helper()

	controller := controllers.NewCarController(services.NewCarService(store))

	r := router.New()
	cars := r.Group("/api/cars")
	cars.Get("", "cars.index", controller.Index)
	cars.Get("/types", "cars.types", controller.BodyTypes)
	cars.Get("/{id}", "cars.show", controller.Show)
	cars.Post("", "cars.store", controller.Store)
	cars.Put("/{id}", "cars.update", controller.Update)
	cars.Delete("/{id}", "cars.destroy", controller.Destroy)

	return r.Handler()
}

func carPayload() map[string]interface{} {
	return map[string]interface{}{
		"imageUrl":     "https://cdn.test/golf.jpg",
		"model":        "Golf",
		"brand":        "Volkswagen",
		"price":        35,
		"year":         2019,
		"fuelType":     "petrol",
		"transmission": "manual",
		"seats":        5,
		"body":         "hatchback",
	}
}

func TestCarCreateAndShow(t *testing.T) {
	store := &memCars{}
	h := newCarAPI(t, store)

	rec, env := doJSON(t, h, http.MethodPost, "/api/cars", "", carPayload())

	require.Equal(t, http.StatusCreated, rec.Code)
	var created models.Car
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "Volkswagen Golf", created.Title())

	rec, env = doJSON(t, h, http.MethodGet, "/api/cars/"+created.ID.Hex(), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var shown models.Car
	require.NoError(t, json.Unmarshal(env.Data, &shown))
	assert.Equal(t, created.ID, shown.ID)
}

func TestCarCreateMissingFields(t *testing.T) {
	h := newCarAPI(t, &memCars{})

	payload := carPayload()
	delete(payload, "price")
	delete(payload, "body")

	rec, env := doJSON(t, h, http.MethodPost, "/api/cars", "", payload)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, []string{"price", "body"}, env.Errors)
}

func TestCarShowMalformedID(t *testing.T) {
	h := newCarAPI(t, &memCars{})

	rec, env := doJSON(t, h, http.MethodGet, "/api/cars/oops", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Car does not exist", env.Message)
}

func TestCarShowUnknownID(t *testing.T) {
	h := newCarAPI(t, &memCars{})

	rec, env := doJSON(t, h, http.MethodGet, "/api/cars/64a0f0c2e1b2c3d4e5f60999", "", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Car does not exist", env.Message)
}

func TestCarBodyTypes(t *testing.T) {
	store := &memCars{types: []string{"hatchback", "suv"}}
	h := newCarAPI(t, store)

	rec, env := doJSON(t, h, http.MethodGet, "/api/cars/types", "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var types []string
	require.NoError(t, json.Unmarshal(env.Data, &types))
	assert.Equal(t, []string{"hatchback", "suv"}, types)
}

func TestCarDelete(t *testing.T) {
	store := &memCars{}
	h := newCarAPI(t, store)

	_, env := doJSON(t, h, http.MethodPost, "/api/cars", "", carPayload())
	var created models.Car
	require.NoError(t, json.Unmarshal(env.Data, &created))

	rec, env := doJSON(t, h, http.MethodDelete, "/api/cars/"+created.ID.Hex(), "", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var deleted models.Car
	require.NoError(t, json.Unmarshal(env.Data, &deleted))
	assert.Equal(t, created.ID, deleted.ID)
	assert.Empty(t, store.cars)
}
