package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"
)

type RouterOptions struct {
	Session   SessionOptions
	Verifier  *TokenVerifier
	VoteLimit rate.Limit
	VoteBurst int
}

func NewHandler(pollHandler *PollHandler, voteHandler *VoteHandler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(Instrument)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(Session(opts.Session))

		r.Route("/polls", func(r chi.Router) {
			r.Get("/", pollHandler.ListPolls)
			r.Get("/{id}", pollHandler.GetPoll)

			r.With(RateLimit(opts.VoteLimit, opts.VoteBurst)).Post("/vote", voteHandler.Vote)

			r.Group(func(r chi.Router) {
				r.Use(RequireUser(opts.Verifier))
				r.Get("/mine", pollHandler.ListMyPolls)
				r.Post("/", pollHandler.CreatePoll)
				r.Delete("/{id}", pollHandler.DeletePoll)
			})
		})
	})

	return r
}
