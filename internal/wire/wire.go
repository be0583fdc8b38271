// internal/wire/wire.go
package wire

import (
	"net/http"

	"bus-booking/internal/adaptor"
	"bus-booking/internal/data/repository"
	"bus-booking/internal/events"
	"bus-booking/internal/usecase"
	"bus-booking/pkg/middleware"
	"bus-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App menyimpan semua dependencies
type App struct {
	Router *chi.Mux
}

// Wiring menginisialisasi semua dependencies
func Wiring(repo *repository.Repository, publisher events.Publisher, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, publisher, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, config, logger)

	return &App{
		Router: router,
	}
}

// setupRouter konfigurasi Chi router
func setupRouter(
	handler *adaptor.Handler,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth)
	wireBus(r, handler.Bus, config, logger)
	wireSchedule(r, handler.Schedule, config, logger)
	wireBooking(r, handler.Booking, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
