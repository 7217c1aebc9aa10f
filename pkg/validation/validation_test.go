package validation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bfflix/bfflix/pkg/validation"
)

func TestValidateWorkerCount(t *testing.T) {
	assert.NoError(t, validation.ValidateWorkerCount(1))
	assert.NoError(t, validation.ValidateWorkerCount(8))
	assert.Error(t, validation.ValidateWorkerCount(0))
	assert.Error(t, validation.ValidateWorkerCount(9))
}

func TestValidateItemID(t *testing.T) {
	assert.NoError(t, validation.ValidateItemID(1))
	assert.Error(t, validation.ValidateItemID(0))
	assert.Error(t, validation.ValidateItemID(-5))
}

func TestValidateNonEmptyString(t *testing.T) {
	assert.NoError(t, validation.ValidateNonEmptyString("field", "value"))
	err := validation.ValidateNonEmptyString("password", "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "password")
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"ada@example.com", true},
		{"a@b.co", true},
		{"", false},
		{"no-at-sign", false},
		{"@example.com", false},
		{"ada@", false},
		{"ada@nodot", false},
	}
	for _, tt := range tests {
		err := validation.ValidateEmail(tt.email)
		if tt.valid {
			assert.NoError(t, err, tt.email)
		} else {
			assert.Error(t, err, tt.email)
		}
	}
}

func TestValidatePageSize(t *testing.T) {
	assert.NoError(t, validation.ValidatePageSize(25))
	assert.Error(t, validation.ValidatePageSize(0))
	assert.Error(t, validation.ValidatePageSize(101))
}

func TestValidateWatchStatus(t *testing.T) {
	assert.NoError(t, validation.ValidateWatchStatus("planned"))
	assert.NoError(t, validation.ValidateWatchStatus("watching"))
	assert.NoError(t, validation.ValidateWatchStatus("watched"))
	assert.Error(t, validation.ValidateWatchStatus("abandoned"))
	assert.Error(t, validation.ValidateWatchStatus(""))
}
