package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"autonuoma/app/controllers"
	"autonuoma/app/models"
	"autonuoma/app/repositories"
	"autonuoma/app/services"
	"autonuoma/pkg/auth"
	"autonuoma/pkg/router"
)

type memUserStore struct {
	byEmail map[string]models.User
}

func (m *memUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return models.User{}, repositories.ErrNotFound
	}
	return u, nil
}

func (m *memUserStore) Create(_ context.Context, user models.User) (models.User, error) {
	if _, ok := m.byEmail[user.Email]; ok {
		return models.User{}, repositories.ErrEmailTaken
	}
	user.ID = primitive.NewObjectID()
	if m.byEmail == nil {
		m.byEmail = map[string]models.User{}
	}
	m.byEmail[user.Email] = user
	return user, nil
}

func newAuthAPI(t *testing.T, store *memUserStore) http.Handler {
	t.Helper()

	controller := controllers.NewAuthController(services.NewUserService(store))

	r := router.New()
	user := r.Group("/api/user")
	user.Post("/signup", "auth.signup", controller.Signup)
	user.Post("/login", "auth.login", controller.Login)

	return r.Handler()
}

func TestSignupThenLogin(t *testing.T) {
	store := &memUserStore{}
	h := newAuthAPI(t, store)

	rec, env := doJSON(t, h, http.MethodPost, "/api/user/signup", "", map[string]string{
		"email":    "renter@example.com",
		"password": "Slaptazodis1!",
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	var signup map[string]string
	require.NoError(t, json.Unmarshal(env.Data, &signup))
	assert.Equal(t, "renter@example.com", signup["email"])
	assert.NotEmpty(t, signup["token"])

	rec, env = doJSON(t, h, http.MethodPost, "/api/user/login", "", map[string]string{
		"email":    "renter@example.com",
		"password": "Slaptazodis1!",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var login struct {
		Email   string `json:"email"`
		Token   string `json:"token"`
		IsAdmin bool   `json:"isAdmin"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	assert.Equal(t, "renter@example.com", login.Email)
	assert.False(t, login.IsAdmin)

	claims, err := auth.ValidateToken(login.Token)
	require.NoError(t, err)
	assert.Equal(t, store.byEmail["renter@example.com"].ID.Hex(), claims.UserID)
}

func TestSignupWeakPassword(t *testing.T) {
	h := newAuthAPI(t, &memUserStore{})

	rec, env := doJSON(t, h, http.MethodPost, "/api/user/signup", "", map[string]string{
		"email":    "renter@example.com",
		"password": "password",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "password is too weak", env.Message)
}

func TestSignupDuplicateEmailOverHTTP(t *testing.T) {
	h := newAuthAPI(t, &memUserStore{})

	payload := map[string]string{"email": "dup@example.com", "password": "Slaptazodis1!"}
	rec, _ := doJSON(t, h, http.MethodPost, "/api/user/signup", "", payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec, env := doJSON(t, h, http.MethodPost, "/api/user/signup", "", payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "email is already in use", env.Message)
}

func TestLoginBadCredentials(t *testing.T) {
	h := newAuthAPI(t, &memUserStore{})

	rec, env := doJSON(t, h, http.MethodPost, "/api/user/login", "", map[string]string{
		"email":    "ghost@example.com",
		"password": "Slaptazodis1!",
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "incorrect email", env.Message)
}

func TestLoginMissingFields(t *testing.T) {
	h := newAuthAPI(t, &memUserStore{})

	rec, env := doJSON(t, h, http.MethodPost, "/api/user/login", "", map[string]string{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "all fields are required", env.Message)
}
