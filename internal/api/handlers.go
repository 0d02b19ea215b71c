package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	errorvalues "github.com/peakform/peakform/internal/error_values"
	"github.com/peakform/peakform/internal/service"
	"github.com/peakform/peakform/pkg/entity"
	"github.com/peakform/peakform/pkg/httputil"
)

type CompleteWorkoutRequest struct {
	DurationTaken int `json:"duration_taken"`
}

type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	SortField   string `json:"sort_field"`
	IsActive    bool   `json:"is_active"`
}

type LeaderboardResponse struct {
	Category *entity.LeaderboardCategory `json:"category"`
	Entries  []entity.LeaderboardEntry   `json:"entries"`
}

type RecomputeResponse struct {
	Results []service.CategoryResult `json:"results"`
}

func (s *Server) CompleteWorkout(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("complete workout error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	var req CompleteWorkoutRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("complete workout error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	workout, err := s.workoutService.CompleteWorkout(ctx, uid, &service.CompleteWorkoutRequest{
		DurationTaken: req.DurationTaken,
	})
	if err != nil {
		logger.Error("complete workout error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while recording workout", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, map[string]any{"workout_id": workout.ID.String()})
	logger.Info("workout completed")
}

func (s *Server) GetMyStreak(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	uid, err := GetUIDFromContext(r)
	if err != nil {
		logger.Error("get streak error: unauthorized")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "no authorization", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	streak, err := s.streakService.GetStreak(ctx, uid)
	if err != nil {
		logger.Error("get streak error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting streak", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, streak)
	logger.Info("streak provided")
}

func (s *Server) ListActiveCategories(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	categories, err := s.leaderboardService.ListActiveCategories(ctx)
	if err != nil {
		logger.Error("listing active categories error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while listing categories", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"categories": categories})
	logger.Info("active categories provided")
}

func (s *Server) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("get leaderboard error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid category id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	category, entries, err := s.leaderboardService.GetLeaderboard(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrCategoryNotFound) {
			logger.Error("get leaderboard error: unexist category")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "category doesn't exist", nil)
			return
		}
		logger.Error("get leaderboard error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while getting leaderboard", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, LeaderboardResponse{
		Category: category,
		Entries:  entries,
	})
	logger.Info("leaderboard provided")
}

func (s *Server) RecomputeLeaderboards(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	// The pass walks every active category sequentially, give it room.
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute*2)
	defer cancel()
	results, err := s.leaderboardService.RecomputeAll(ctx)
	if err != nil {
		logger.Error("recompute error: service error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "leaderboard recomputation failed", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, RecomputeResponse{Results: results})
	logger.Info("leaderboards recomputed", slog.Int("categories", len(results)))
}

func (s *Server) ListCategories(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	categories, err := s.categoryService.ListCategories(ctx)
	if err != nil {
		logger.Error("listing categories error", slog.String("error", err.Error()))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error while listing categories", nil)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, map[string]any{"categories": categories})
	logger.Info("categories provided")
}

func (s *Server) CreateCategory(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	var req CategoryRequest
	defer r.Body.Close()
	err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("create category error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	category, err := s.categoryService.CreateCategory(ctx, &service.CreateCategoryRequest{
		Name:        req.Name,
		Description: req.Description,
		SortField:   req.SortField,
		IsActive:    req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrInvalidCategory):
			logger.Error("create category error: invalid fields")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid category fields", nil)
		case errors.Is(err, errorvalues.ErrCategoryExists):
			logger.Error("create category error: attempt to create existed category")
			httputil.WriteErrorResponse(w, http.StatusConflict, "category already exists", nil)
		default:
			logger.Error("create category error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while creating category", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, category)
	logger.Info("category created")
}

func (s *Server) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("update category error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid category id in path value", nil)
		return
	}
	var req CategoryRequest
	defer r.Body.Close()
	err = sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req)
	if err != nil {
		logger.Error("update category error: invalid request body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	category, err := s.categoryService.UpdateCategory(ctx, id, &service.UpdateCategoryRequest{
		Name:        req.Name,
		Description: req.Description,
		SortField:   req.SortField,
		IsActive:    req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrInvalidCategory):
			logger.Error("update category error: invalid fields")
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid category fields", nil)
		case errors.Is(err, errorvalues.ErrCategoryNotFound):
			logger.Error("update category error: unexist category")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "category doesn't exist", nil)
		case errors.Is(err, errorvalues.ErrCategoryExists):
			logger.Error("update category error: name already taken")
			httputil.WriteErrorResponse(w, http.StatusConflict, "category already exists", nil)
		default:
			logger.Error("update category error: service error", slog.String("error", err.Error()))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while updating category", nil)
		}
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, category)
	logger.Info("category updated")
}

func (s *Server) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	logger := GetLoggerFromCtx(r.Context())
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		logger.Error("category deletion error: invalid id in path value")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid category id in path value", nil)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()
	err = s.categoryService.DeleteCategory(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrCategoryNotFound) {
			logger.Error("category deletion error: unexist category")
			httputil.WriteErrorResponse(w, http.StatusNotFound, "category doesn't exist", nil)
			return
		}
		logger.Error("category deletion error: service error")
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error while deleting category", nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	logger.Info("category deleted")
}
