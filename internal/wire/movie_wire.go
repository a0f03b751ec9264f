package wire

import (
	"cinema-scheduler/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireMovie(r chi.Router, movieHandler *adaptor.MovieHandler, screeningHandler *adaptor.ScreeningHandler) {
	r.Route("/api/movies", func(r chi.Router) {
		r.Get("/", movieHandler.GetMovies)
		r.Post("/", movieHandler.CreateMovie)

		r.Get("/{id}", movieHandler.GetMovieByID)
		r.Put("/{id}", movieHandler.UpdateMovie)
		r.Delete("/{id}", movieHandler.DeleteMovie)

		// Bulk screening admission lives under the movie path so the whole
		// batch is bound to one movie.
		r.Post("/{id}/screenings:bulkCreate", screeningHandler.BulkCreateScreenings)
	})
}
