package seeders

import (
	"context"

	"autonuoma/app/models"
	"autonuoma/app/repositories"
)

func init() {
	Register("cars", SeedCars)
}

// SeedCars inserts a small demo fleet. Skips seeding when cars already exist.
func SeedCars(ctx context.Context) error {
	repo := repositories.NewCarRepository()

	existing, err := repo.All(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	fleet := []models.Car{
		{
			ImageURL:     "https://images.autonuoma.app/demo/golf.jpg",
			Model:        "Golf",
			Brand:        "Volkswagen",
			Price:        35,
			Year:         2019,
			FuelType:     "petrol",
			Transmission: "manual",
			Seats:        5,
			Body:         "hatchback",
		},
		{
			ImageURL:     "https://images.autonuoma.app/demo/octavia.jpg",
			Model:        "Octavia",
			Brand:        "Skoda",
			Price:        42,
			Year:         2021,
			FuelType:     "diesel",
			Transmission: "automatic",
			Seats:        5,
			Body:         "wagon",
		},
		{
			ImageURL:     "https://images.autonuoma.app/demo/model3.jpg",
			Model:        "Model 3",
			Brand:        "Tesla",
			Price:        79,
			Year:         2022,
			FuelType:     "electric",
			Transmission: "automatic",
			Seats:        5,
			Body:         "sedan",
		},
		{
			ImageURL:     "https://images.autonuoma.app/demo/tucson.jpg",
			Model:        "Tucson",
			Brand:        "Hyundai",
			Price:        55,
			Year:         2020,
			FuelType:     "hybrid",
			Transmission: "automatic",
			Seats:        5,
			Body:         "suv",
		},
	}

	for _, car := range fleet {
		if _, err := repo.Create(ctx, car); err != nil {
			return err
		}
	}
	return nil
}
