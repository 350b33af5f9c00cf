package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/plaza-dev/plaza/backend/internal/setup"
	mw "github.com/plaza-dev/plaza/shared/middleware"
	"github.com/plaza-dev/plaza/shared/middleware/metrics"
	rl "github.com/plaza-dev/plaza/shared/middleware/ratelimiter"
)

// New creates and configures a new chi router with all the routes.
// IMPORTANT! ratelimiters set with .Use limit requests for all endpoints combined in that group
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(middleware.Compress(5))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(mw.SecurityHeaders(deps.Config.Public.Https))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/health", h.Health)
	r.Get("/ready", h.Ready)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(v1 chi.Router) {
		// Reads are open to anonymous visitors, limited by IP.
		v1.Group(func(public chi.Router) {
			public.Use(authMw.OptionalAuth())
			public.Use(mw.RateLimit(rl.PerSecond(20), mw.GetIP))

			public.Get("/comment/id/{commentId}", h.GetComment)
			public.Get("/comment/s/of/{parentId}", h.ListComments)
			public.Get("/creation/id/{postId}", h.GetPost)
		})

		loggedIn := v1.With(authMw.NeedAuth(), mw.RateLimit(rl.PerSecond(100), mw.GetMemberIdentity))

		loggedIn.Get("/attitude/on/{id}", h.GetAttitude)
		// Express: 5 per second per member
		loggedIn.With(mw.RateLimit(rl.PerSecond(5), mw.GetMemberIdentity)).Post("/attitude/on/{id}", h.ExpressAttitude)

		// CreateComment: 1 per second per member, bursts of 3
		loggedIn.With(mw.RateLimit(rl.New(1, 3, time.Hour), mw.GetMemberIdentity)).Post("/comment/on/{parentId}", h.CreateComment)
		loggedIn.Put("/comment/id/{commentId}", h.EditComment)
		loggedIn.Delete("/comment/id/{commentId}", h.DeleteComment)

		loggedIn.Get("/save/{postId}", h.GetSave)
		loggedIn.Post("/save/{postId}", h.ToggleSave)

		// CreatePost: 1 per minute per member
		loggedIn.With(mw.RateLimit(rl.New(1.0/60, 1, time.Hour), mw.GetMemberIdentity)).Post("/creation", h.CreatePost)

		loggedIn.Get("/notice/of/{category}", h.ListNotices)
		loggedIn.Get("/notification", h.GetNotification)

		loggedIn.Post("/block/{memberId}", h.BlockMember)
		loggedIn.Delete("/block/{memberId}", h.UnblockMember)

		loggedIn.Get("/follow/{memberId}", h.GetFollow)
		// Follow: 1 per second per member, bursts of 5
		loggedIn.With(mw.RateLimit(rl.New(1, 5, time.Hour), mw.GetMemberIdentity)).Post("/follow/{memberId}", h.FollowMember)
		loggedIn.Delete("/follow/{memberId}", h.UnfollowMember)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not found", http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	return r
}
