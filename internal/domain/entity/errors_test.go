package entity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Field: "year", Message: "must be at least 1970"}
	assert.Equal(t, "validation error on field 'year': must be at least 1970", err.Error())
	assert.True(t, errors.Is(err, ErrValidationFailed))
}

func TestValidationErrors_Merge(t *testing.T) {
	errs := ValidationErrors{}
	errs.Merge(nil)
	assert.Nil(t, errs.OrNil())

	errs.Merge(&ValidationError{Field: "year", Message: "too small"})
	errs.Merge(ValidationErrors{"year": {"again"}, "records": {"too small"}})
	errs.Merge(errors.New("boom"))

	assert.Equal(t, []string{"too small", "again"}, errs["year"])
	assert.Equal(t, []string{"too small"}, errs["records"])
	assert.Equal(t, []string{"boom"}, errs["non_field_errors"])
}

func TestValidationErrors_MergePrefixed(t *testing.T) {
	errs := ValidationErrors{}
	errs.MergePrefixed("entity", &ValidationError{Field: "name", Message: "is required"})
	assert.Equal(t, []string{"is required"}, errs["entity.name"])
}

func TestValidationErrors_ErrorIsSorted(t *testing.T) {
	errs := ValidationErrors{"year": {"a"}, "method": {"b", "c"}}
	assert.Equal(t, "validation failed: method: b; c, year: a", errs.Error())
}

func TestValidationErrors_InErrorChain(t *testing.T) {
	wrapped := fmt.Errorf("create breach: %w", ValidationErrors{"year": {"x"}})

	var verrs ValidationErrors
	assert.True(t, errors.As(wrapped, &verrs))
	assert.True(t, errors.Is(wrapped, ErrValidationFailed))
	assert.False(t, errors.Is(wrapped, ErrNotFound))
}
