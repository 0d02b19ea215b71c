package service

import (
	"context"
	"errors"
	"log"

	"github.com/google/uuid"
	errorvalues "github.com/peakform/peakform/internal/error_values"
	"github.com/peakform/peakform/internal/repository"
	"github.com/peakform/peakform/pkg/entity"
)

type CategoryService struct {
	repo repository.CategoriesRepositoryI
}

func NewCategoryService(categoriesRepo repository.CategoriesRepositoryI) *CategoryService {
	if categoriesRepo == nil {
		log.Fatal("provided nil categoriesRepo")
	}
	return &CategoryService{
		repo: categoriesRepo,
	}
}

func (cs *CategoryService) CreateCategory(ctx context.Context, req *CreateCategoryRequest) (*entity.LeaderboardCategory, error) {
	if err := validate.Struct(req); err != nil {
		return nil, errorvalues.ErrInvalidCategory
	}
	c := entity.LeaderboardCategory{
		Name:        req.Name,
		Description: req.Description,
		SortField:   entity.SortField(req.SortField),
		IsActive:    req.IsActive,
	}
	id, err := cs.repo.Create(ctx, &c)
	if err != nil {
		if errors.Is(err, errorvalues.ErrCategoryExists) {
			return nil, err
		}
		return nil, errors.New("categories repository error: " + err.Error())
	}
	category, err := cs.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrCategoryNotFound) {
			return nil, err
		}
		return nil, errors.New("categories repository error: " + err.Error())
	}
	return category, nil
}

func (cs *CategoryService) ListCategories(ctx context.Context) ([]*entity.LeaderboardCategory, error) {
	categories, err := cs.repo.List(ctx)
	if err != nil {
		return nil, errors.New("categories repository error: " + err.Error())
	}
	return categories, nil
}

func (cs *CategoryService) UpdateCategory(ctx context.Context, id uuid.UUID, req *UpdateCategoryRequest) (*entity.LeaderboardCategory, error) {
	if err := validate.Struct(req); err != nil {
		return nil, errorvalues.ErrInvalidCategory
	}
	category, err := cs.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrCategoryNotFound) {
			return nil, err
		}
		return nil, errors.New("categories repository error: " + err.Error())
	}
	category.Name = req.Name
	category.Description = req.Description
	category.SortField = entity.SortField(req.SortField)
	category.IsActive = req.IsActive
	err = cs.repo.Update(ctx, category)
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrCategoryNotFound), errors.Is(err, errorvalues.ErrCategoryExists):
			return nil, err
		}
		return nil, errors.New("categories repository error: " + err.Error())
	}
	return category, nil
}

func (cs *CategoryService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	err := cs.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, errorvalues.ErrCategoryNotFound) {
			return err
		}
		return errors.New("categories repository error: " + err.Error())
	}
	return nil
}
