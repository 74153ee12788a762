package expenses

import (
	"errors"
	"fmt"
)

// Error kinds. Concrete errors wrap exactly one of them so handlers can map
// them to a status code with errors.Is.
var (
	ErrValidation    = errors.New("validation failed")
	ErrNotFound      = errors.New("not found")
	ErrConflict      = errors.New("conflict")
	ErrDataIntegrity = errors.New("data integrity violation")
)

var (
	ErrExpenseNotFound  = fmt.Errorf("expense %w", ErrNotFound)
	ErrCategoryNotFound = fmt.Errorf("category %w", ErrNotFound)
	ErrCategoryInUse    = fmt.Errorf("%w: category in use", ErrConflict)
	ErrInvalidAmount    = fmt.Errorf("%w: amount must be a number within range", ErrValidation)
	ErrAmountOverflow   = fmt.Errorf("%w: amount total out of range", ErrDataIntegrity)
	ErrInvalidDate      = fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	ErrInvalidCategory  = fmt.Errorf("%w: category must be an id", ErrValidation)
	ErrInvalidID        = fmt.Errorf("%w: id must be a positive integer", ErrValidation)
	ErrNameRequired     = fmt.Errorf("%w: name is required", ErrValidation)
	ErrNameTooLong      = fmt.Errorf("%w: name must be at most %d characters", ErrValidation, maxCategoryNameLen)
)
