package controllers

import (
	"io"
	"net/http"

	"autonuoma/app/models"
	"autonuoma/app/services"
	"autonuoma/pkg/bind"
	"autonuoma/pkg/response"
	"autonuoma/pkg/router"
)

// maxImageSize caps car image uploads at 10 MB.
const maxImageSize = 10 << 20

type CarController struct {
	service *services.CarService
}

func NewCarController(service *services.CarService) *CarController {
	return &CarController{service: service}
}

// Index returns the whole fleet.
func (c *CarController) Index(w http.ResponseWriter, r *http.Request) {
	cars, err := c.service.All(r.Context())
	if err != nil {
		fail(w, r, "Car", err)
		return
	}
	response.Success(w, cars)
}

// Show returns a single car by id.
func (c *CarController) Show(w http.ResponseWriter, r *http.Request) {
	car, err := c.service.Get(r.Context(), router.Param(r, "id"))
	if err != nil {
		fail(w, r, "Car", err)
		return
	}
	response.Success(w, car)
}

// BodyTypes returns the distinct body types present in the fleet.
func (c *CarController) BodyTypes(w http.ResponseWriter, r *http.Request) {
	types, err := c.service.BodyTypes(r.Context())
	if err != nil {
		fail(w, r, "Car", err)
		return
	}
	response.Success(w, types)
}

// Store creates a car.
func (c *CarController) Store(w http.ResponseWriter, r *http.Request) {
	var input models.Car
	if err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	car, err := c.service.Create(r.Context(), input)
	if err != nil {
		fail(w, r, "Car", err)
		return
	}
	response.Created(w, car)
}

// Update replaces a car's fields.
func (c *CarController) Update(w http.ResponseWriter, r *http.Request) {
	var input models.Car
	if err := bind.JSON(r, &input); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	car, err := c.service.Update(r.Context(), router.Param(r, "id"), input)
	if err != nil {
		fail(w, r, "Car", err)
		return
	}
	response.Success(w, car)
}

// Destroy deletes a car and returns the deleted document.
func (c *CarController) Destroy(w http.ResponseWriter, r *http.Request) {
	car, err := c.service.Delete(r.Context(), router.Param(r, "id"))
	if err != nil {
		fail(w, r, "Car", err)
		return
	}
	response.Success(w, car)
}

// UploadImage accepts a multipart "image" file, stores it on the configured
// disk and points the car's imageUrl at it.
func (c *CarController) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageSize); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid upload")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.ValidationError(w, []string{"image file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize))
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid upload")
		return
	}

	car, err := c.service.UploadImage(r.Context(), router.Param(r, "id"), header.Filename, data)
	if err != nil {
		fail(w, r, "Car", err)
		return
	}
	response.Success(w, car)
}
