package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email string `json:"email" validate:"required,email"`
	Qty   int    `json:"qty" validate:"min=1"`
}

func TestValidate(t *testing.T) {
	v := New()

	require.NoError(t, v.Validate(&sampleRequest{Email: "anna@example.de", Qty: 1}))

	err := v.Validate(&sampleRequest{Email: "kaputt", Qty: 0})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'email'")
	assert.Contains(t, err.Error(), "'qty'")
}
