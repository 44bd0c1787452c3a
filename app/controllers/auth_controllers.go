package controllers

import (
	"errors"
	"net/http"

	"autonuoma/app/services"
	"autonuoma/pkg/bind"
	"autonuoma/pkg/logger"
	"autonuoma/pkg/response"
)

type AuthController struct {
	service *services.UserService
}

func NewAuthController(service *services.UserService) *AuthController {
	return &AuthController{service: service}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// accountError reports whether err is a client-side account failure that
// should surface verbatim as a 400.
func accountError(err error) bool {
	for _, known := range []error{
		services.ErrMissingCredentials,
		services.ErrInvalidEmail,
		services.ErrWeakPassword,
		services.ErrEmailTaken,
		services.ErrUnknownEmail,
		services.ErrWrongPassword,
	} {
		if errors.Is(err, known) {
			return true
		}
	}
	return false
}

// Signup registers an account and returns a fresh token.
func (c *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := c.service.Signup(r.Context(), body.Email, body.Password)
	if err != nil {
		if accountError(err) {
			response.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.WithCtx(r.Context()).Error("signup failed", "error", err)
		response.StorageError(w)
		return
	}

	response.Created(w, map[string]interface{}{
		"email": user.Email,
		"token": token,
	})
}

// Login authenticates an account and returns a fresh token.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var body credentials
	if err := bind.JSON(r, &body); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := c.service.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		if accountError(err) {
			response.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.WithCtx(r.Context()).Error("login failed", "error", err)
		response.StorageError(w)
		return
	}

	response.Success(w, map[string]interface{}{
		"email":   user.Email,
		"token":   token,
		"isAdmin": user.IsAdmin,
	})
}
