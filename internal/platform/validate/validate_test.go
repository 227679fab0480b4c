// Copyright (c) 2026 Ibis. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/ibis/internal/platform/apperr"
	"github.com/taibuivan/ibis/internal/platform/validate"
)

/*
TestValidator_Required tests the mandatory field validation logic.
*/
func TestValidator_Required(t *testing.T) {
	tests := []struct {
		name     string
		field    string
		value    string
		hasError bool
	}{
		{"valid_string", "value", "Rome was founded in 753 BC", false},
		{"empty_string", "value", "", true},
		{"whitespace_only", "value", "   ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &validate.Validator{}
			v.Required(tt.field, tt.value)

			if tt.hasError {
				assert.True(t, v.HasErrors())
				err := v.Err()
				require.NotNil(t, err)

				ae := apperr.As(err)
				require.NotNil(t, ae)
				assert.Equal(t, apperr.CodeValidation, ae.Code)
				assert.Equal(t, tt.field, ae.Details[0].Field)
			} else {
				assert.False(t, v.HasErrors())
				assert.Nil(t, v.Err())
			}
		})
	}
}

func TestValidator_MaxLen_CountsRunes(t *testing.T) {
	v := &validate.Validator{}
	v.MaxLen("name", "ééé", 3)
	assert.False(t, v.HasErrors())

	v.MaxLen("name", "éééé", 3)
	assert.True(t, v.HasFieldError("name"))
}

func TestValidator_UUID(t *testing.T) {
	v := &validate.Validator{}
	v.UUID("tag", "0190f5a2-6c1e-7b3a-8f00-2a1b3c4d5e6f")
	assert.False(t, v.HasErrors())

	v.UUID("tag", "42")
	assert.True(t, v.HasFieldError("tag"))

	v = &validate.Validator{}
	v.UUID("context", "urn:uuid:0190f5a2-6c1e-7b3a-8f00-2a1b3c4d5e6f")
	assert.True(t, v.HasFieldError("context"))
}

func TestValidator_Custom_NonField(t *testing.T) {
	v := &validate.Validator{}
	err := v.Custom(validate.NonFieldErrors, true, "start must not be after end").Err()

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, []string{validate.NonFieldErrors}, ae.Fields())
}

/*
TestValidator_Chain_Failure tests error accumulation in the chain.
*/
func TestValidator_Chain_Failure(t *testing.T) {
	v := &validate.Validator{}

	err := v.
		Required("username", "").
		MinLen("username", "a", 5).
		Email("email", "not-an-email").
		Err()

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Len(t, ae.Details, 3)
}
