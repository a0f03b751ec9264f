package wire

import (
	"net/http"

	"cinema-scheduler/internal/adaptor"
	"cinema-scheduler/internal/data/repository"
	"cinema-scheduler/internal/usecase"
	"cinema-scheduler/pkg/cache"
	"cinema-scheduler/pkg/middleware"
	"cinema-scheduler/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired application
type App struct {
	Router *chi.Mux
}

// Wiring initializes services, handlers and routes
func Wiring(repo *repository.Repository, cache *cache.Cache, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, cache, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(handler *adaptor.Handler, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	wireMovie(r, handler.Movie, handler.Screening)
	wireScreening(r, handler.Screening)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
