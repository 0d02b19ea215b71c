package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/peakform/peakform/internal/service"
)

type Server struct {
	mx                 *chi.Mux
	workoutService     service.WorkoutServiceI
	streakService      service.StreakServiceI
	leaderboardService service.LeaderboardServiceI
	categoryService    service.CategoryServiceI
	jwtService         JWTServiceI
	adminEmails        map[string]struct{}
}

type ServicesList struct {
	WorkoutService     service.WorkoutServiceI
	StreakService      service.StreakServiceI
	LeaderboardService service.LeaderboardServiceI
	CategoryService    service.CategoryServiceI
	JwtService         JWTServiceI
	// AdminEmails gates the admin routes, everyone else gets 403
	AdminEmails []string
}

func New(servicesOptions *ServicesList) *Server {
	admins := make(map[string]struct{}, len(servicesOptions.AdminEmails))
	for _, email := range servicesOptions.AdminEmails {
		admins[email] = struct{}{}
	}
	return &Server{
		mx:                 chi.NewMux(),
		workoutService:     servicesOptions.WorkoutService,
		streakService:      servicesOptions.StreakService,
		leaderboardService: servicesOptions.LeaderboardService,
		categoryService:    servicesOptions.CategoryService,
		jwtService:         servicesOptions.JwtService,
		adminEmails:        admins,
	}
}

func (s *Server) Handler() http.Handler {
	s.routes()
	return s.mx
}

func (s *Server) Run(address string) error {
	return http.ListenAndServe(address, s.Handler())
}

func (s *Server) routes() {
	s.mx.Use(s.RequestIDMiddleware, s.SettingUpLoggerMiddleware)
	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Get("/leaderboards/categories", s.ListActiveCategories)
		r.Get("/leaderboards/{id}", s.GetLeaderboard)
		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware, s.LoggerExtensionMiddleware)
			r.Post("/workouts/complete", s.CompleteWorkout)
			r.Get("/streaks/me", s.GetMyStreak)
		})
		r.Route("/admin", func(r chi.Router) {
			r.Use(s.AuthMiddleware, s.LoggerExtensionMiddleware, s.AdminMiddleware)
			r.Post("/leaderboards/recompute", s.RecomputeLeaderboards)
			r.Get("/leaderboards/categories", s.ListCategories)
			r.Post("/leaderboards/categories", s.CreateCategory)
			r.Put("/leaderboards/categories/{id}", s.UpdateCategory)
			r.Delete("/leaderboards/categories/{id}", s.DeleteCategory)
		})
	})
}
