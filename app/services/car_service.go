package services

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"autonuoma/app/models"
	"autonuoma/pkg/cache"
	"autonuoma/pkg/storage"
)

const (
	carTypesCacheKey = "cars:types"
	carTypesCacheTTL = 10 * time.Minute
)

// ValidateCar returns the ordered list of missing mandatory car fields.
func ValidateCar(c models.Car) []string {
	var violations []string
	if c.ImageURL == "" {
		violations = append(violations, "image url")
	}
	if c.Model == "" {
		violations = append(violations, "model")
	}
	if c.Brand == "" {
		violations = append(violations, "brand")
	}
	if c.Price == 0 {
		violations = append(violations, "price")
	}
	if c.Year == 0 {
		violations = append(violations, "year")
	}
	if c.FuelType == "" {
		violations = append(violations, "fuel type")
	}
	if c.Transmission == "" {
		violations = append(violations, "transmission")
	}
	if c.Seats == 0 {
		violations = append(violations, "seats")
	}
	if c.Body == "" {
		violations = append(violations, "body")
	}
	return violations
}

// CarStore is the slice of the record store the car workflows need.
type CarStore interface {
	All(ctx context.Context) ([]models.Car, error)
	FindByID(ctx context.Context, id string) (models.Car, error)
	Create(ctx context.Context, car models.Car) (models.Car, error)
	Update(ctx context.Context, id string, car models.Car) (models.Car, error)
	SetImageURL(ctx context.Context, id, url string) (models.Car, error)
	Delete(ctx context.Context, id string) (models.Car, error)
	BodyTypes(ctx context.Context) ([]string, error)
}

// CarService implements the vehicle listing workflows.
type CarService struct {
	cars CarStore
}

func NewCarService(cars CarStore) *CarService {
	return &CarService{cars: cars}
}

func (s *CarService) All(ctx context.Context) ([]models.Car, error) {
	return s.cars.All(ctx)
}

func (s *CarService) Get(ctx context.Context, id string) (models.Car, error) {
	return s.cars.FindByID(ctx, id)
}

// Create validates the payload and inserts a new listing.
func (s *CarService) Create(ctx context.Context, input models.Car) (models.Car, error) {
	if violations := ValidateCar(input); len(violations) > 0 {
		return models.Car{}, &ValidationError{Violations: violations}
	}

	created, err := s.cars.Create(ctx, input)
	if err != nil {
		return models.Car{}, err
	}

	_ = cache.Del(carTypesCacheKey)
	return created, nil
}

// Update validates the payload and replaces every field of the listing.
func (s *CarService) Update(ctx context.Context, id string, input models.Car) (models.Car, error) {
	if violations := ValidateCar(input); len(violations) > 0 {
		return models.Car{}, &ValidationError{Violations: violations}
	}

	updated, err := s.cars.Update(ctx, id, input)
	if err != nil {
		return models.Car{}, err
	}

	_ = cache.Del(carTypesCacheKey)
	return updated, nil
}

func (s *CarService) Delete(ctx context.Context, id string) (models.Car, error) {
	deleted, err := s.cars.Delete(ctx, id)
	if err != nil {
		return models.Car{}, err
	}

	_ = cache.Del(carTypesCacheKey)
	return deleted, nil
}

// BodyTypes returns the distinct body styles across all listings. The result
// is served from Redis when available and recomputed from the store on miss.
func (s *CarService) BodyTypes(ctx context.Context) ([]string, error) {
	var types []string
	if cache.Get(carTypesCacheKey, &types) {
		return types, nil
	}

	types, err := s.cars.BodyTypes(ctx)
	if err != nil {
		return nil, err
	}

	_ = cache.Set(carTypesCacheKey, types, carTypesCacheTTL)
	return types, nil
}

// UploadImage stores a car photo on the configured disk and points the
// listing's image reference at its public URL.
func (s *CarService) UploadImage(ctx context.Context, id, filename string, data []byte) (models.Car, error) {
	// Existence (and id grammar) check before writing the file.
	if _, err := s.cars.FindByID(ctx, id); err != nil {
		return models.Car{}, err
	}

	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return models.Car{}, &ValidationError{Violations: []string{"image file type"}}
	}

	key := fmt.Sprintf("cars/%s%s", id, ext)
	if err := storage.Put(key, data); err != nil {
		return models.Car{}, fmt.Errorf("store car image: %w", err)
	}

	return s.cars.SetImageURL(ctx, id, storage.URL(key))
}
