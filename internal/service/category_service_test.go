package service_test

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	errorvalues "github.com/peakform/peakform/internal/error_values"
	"github.com/peakform/peakform/internal/repository/mocks"
	"github.com/peakform/peakform/internal/service"
	"github.com/peakform/peakform/pkg/entity"
	"github.com/stretchr/testify/assert"
)

func TestCreateCategory(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	categoriesRepo := mocks.NewMockCategoriesRepositoryI(ctrl)
	serv := service.NewCategoryService(categoriesRepo)
	categoryID := uuid.New()
	testCases := []struct {
		Desc         string
		Req          *service.CreateCategoryRequest
		Error        error
		MockPrepFunc func()
	}{
		{
			Desc: "successful",
			Req: &service.CreateCategoryRequest{
				Name:      "Longest Streak",
				SortField: "current_streak",
				IsActive:  true,
			},
			Error: nil,
			MockPrepFunc: func() {
				categoriesRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(categoryID, nil)
				categoriesRepo.EXPECT().GetByID(gomock.Any(), categoryID).Return(&entity.LeaderboardCategory{
					ID:        categoryID,
					Name:      "Longest Streak",
					SortField: entity.SortFieldCurrentStreak,
					IsActive:  true,
				}, nil)
			},
		},
		{
			Desc: "unknown sort field rejected",
			Req: &service.CreateCategoryRequest{
				Name:      "Step Count",
				SortField: "step_count",
				IsActive:  true,
			},
			Error:        errorvalues.ErrInvalidCategory,
			MockPrepFunc: func() {},
		},
		{
			Desc: "missing name rejected",
			Req: &service.CreateCategoryRequest{
				SortField: "total_workouts",
			},
			Error:        errorvalues.ErrInvalidCategory,
			MockPrepFunc: func() {},
		},
		{
			Desc: "duplicate name",
			Req: &service.CreateCategoryRequest{
				Name:      "Longest Streak",
				SortField: "current_streak",
			},
			Error: errorvalues.ErrCategoryExists,
			MockPrepFunc: func() {
				categoriesRepo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(uuid.UUID{}, errorvalues.ErrCategoryExists)
			},
		},
	}
	ctx := context.Background()
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			tc.MockPrepFunc()
			category, err := serv.CreateCategory(ctx, tc.Req)
			if tc.Error != nil {
				assert.ErrorIs(t, err, tc.Error)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, categoryID, category.ID)
			}
		})
	}
}

func TestUpdateCategory(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	categoriesRepo := mocks.NewMockCategoriesRepositoryI(ctrl)
	serv := service.NewCategoryService(categoriesRepo)
	categoryID := uuid.New()
	ctx := context.Background()

	t.Run("deactivation persisted", func(t *testing.T) {
		categoriesRepo.EXPECT().GetByID(gomock.Any(), categoryID).Return(&entity.LeaderboardCategory{
			ID:        categoryID,
			Name:      "Weekly Workouts",
			SortField: entity.SortFieldWeeklyWorkouts,
			IsActive:  true,
		}, nil)
		categoriesRepo.EXPECT().Update(gomock.Any(), gomock.Any()).DoAndReturn(
			func(ctx context.Context, category *entity.LeaderboardCategory) error {
				assert.False(t, category.IsActive)
				return nil
			})
		category, err := serv.UpdateCategory(ctx, categoryID, &service.UpdateCategoryRequest{
			Name:      "Weekly Workouts",
			SortField: "weekly_workouts",
			IsActive:  false,
		})
		assert.NoError(t, err)
		assert.False(t, category.IsActive)
	})

	t.Run("unexist category", func(t *testing.T) {
		categoriesRepo.EXPECT().GetByID(gomock.Any(), categoryID).Return(nil, errorvalues.ErrCategoryNotFound)
		_, err := serv.UpdateCategory(ctx, categoryID, &service.UpdateCategoryRequest{
			Name:      "Weekly Workouts",
			SortField: "weekly_workouts",
		})
		assert.ErrorIs(t, err, errorvalues.ErrCategoryNotFound)
	})
}

func TestDeleteCategory(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	categoriesRepo := mocks.NewMockCategoriesRepositoryI(ctrl)
	serv := service.NewCategoryService(categoriesRepo)
	categoryID := uuid.New()
	ctx := context.Background()

	t.Run("successful", func(t *testing.T) {
		categoriesRepo.EXPECT().Delete(gomock.Any(), categoryID).Return(nil)
		assert.NoError(t, serv.DeleteCategory(ctx, categoryID))
	})
	t.Run("unexist category", func(t *testing.T) {
		categoriesRepo.EXPECT().Delete(gomock.Any(), categoryID).Return(errorvalues.ErrCategoryNotFound)
		assert.ErrorIs(t, serv.DeleteCategory(ctx, categoryID), errorvalues.ErrCategoryNotFound)
	})
}
