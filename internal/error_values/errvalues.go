package errorvalues

import "errors"

var (
	ErrCategoryExists   = errors.New("category with such name already exists")
	ErrInvalidCategory  = errors.New("invalid category fields")
	ErrCategoryNotFound = errors.New("category doesn't exist")
	ErrStreakNotFound   = errors.New("streak doesn't exist")
	ErrUnknownSortField = errors.New("unknown sort field")
	ErrInvalidToken     = errors.New("invalid token")
)
