// Package routes wires controllers onto the router.
package routes

import (
	"time"

	"autonuoma/app/controllers"
	"autonuoma/app/repositories"
	"autonuoma/app/services"
	"autonuoma/pkg/middleware"
	"autonuoma/pkg/router"
	"autonuoma/pkg/ws"
)

// RegisterAPI mounts the public API. feed carries live reservation events to
// connected admin clients; pass a hub that is already running.
func RegisterAPI(r *router.Router, feed *ws.Hub) {
	userRepo := repositories.NewUserRepository()
	carRepo := repositories.NewCarRepository()
	reservationRepo := repositories.NewReservationRepository()

	carController := controllers.NewCarController(
		services.NewCarService(carRepo))
	reservationController := controllers.NewReservationController(
		services.NewReservationService(reservationRepo, userRepo),
		services.NewAvailabilityService(reservationRepo),
		userRepo,
		feed)
	authController := controllers.NewAuthController(
		services.NewUserService(userRepo))

	api := r.Group("/api")

	cars := api.Group("/cars")
	cars.Get("", "cars.index", carController.Index)
	cars.Get("/types", "cars.types", carController.BodyTypes)
	cars.Get("/{id}", "cars.show", carController.Show)
	cars.Post("", "cars.store", carController.Store)
	cars.Put("/{id}", "cars.update", carController.Update)
	cars.Delete("/{id}", "cars.destroy", carController.Destroy)
	cars.Post("/{id}/image", "cars.image", carController.UploadImage, middleware.Auth(userRepo))

	user := api.Group("/user", middleware.RateLimit(20, time.Minute))
	user.Post("/login", "auth.login", authController.Login)
	user.Post("/signup", "auth.signup", authController.Signup)

	reservations := api.Group("/reservations", middleware.Auth(userRepo))
	reservations.Get("", "reservations.index", reservationController.Index)
	reservations.Get("/dates/{id}", "reservations.dates", reservationController.UnavailableDates)
	reservations.Get("/feed", "reservations.feed", reservationController.Feed)
	reservations.Get("/{id}", "reservations.show", reservationController.Show)
	reservations.Post("", "reservations.store", reservationController.Store)
	reservations.Put("/{id}", "reservations.update", reservationController.Update)
	reservations.Delete("/{id}", "reservations.destroy", reservationController.Destroy)
}
