// @title PeakForm leaderboard API
// @description Leaderboard and streak backend for the PeakForm fitness app
// @BasePath /api/v1
// @schemes http
package main

import (
	"log"
	"strings"

	"github.com/peakform/peakform/internal/api"
	"github.com/peakform/peakform/internal/repository"
	"github.com/peakform/peakform/internal/service"
	"github.com/peakform/peakform/pkg/config"
	jwtservice "github.com/peakform/peakform/pkg/jwt_service"
)

func init() {
	service.InitValidator()
}

func main() {
	cfg := config.New()
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	categoriesRepo := repository.NewCategoriesRepo(&dbCfg)
	entriesRepo := repository.NewEntriesRepo(&dbCfg)
	streaksRepo := repository.NewStreaksRepo(&dbCfg)
	workoutsRepo := repository.NewWorkoutsRepo(&dbCfg)

	streakService := service.NewStreakService(streaksRepo)
	serv := api.New(&api.ServicesList{
		WorkoutService:     service.NewWorkoutService(workoutsRepo, streakService),
		StreakService:      streakService,
		LeaderboardService: service.NewLeaderboardService(categoriesRepo, entriesRepo, streaksRepo, workoutsRepo),
		CategoryService:    service.NewCategoryService(categoriesRepo),
		JwtService:         jwtservice.New(cfg.GetString("JWT_SECRET")),
		AdminEmails:        strings.Split(cfg.GetString("ADMIN_EMAILS"), ","),
	})
	err := serv.Run(cfg.GetString("API_ADDRESS"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
}
