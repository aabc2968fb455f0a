package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/fantabuste/envelope-server-go/internal/errors"
)

func TestTypedCode(t *testing.T) {
	code, err := typedCode(" ab c7 ")
	require.NoError(t, err)
	assert.Equal(t, "ABC7", code)

	for _, raw := range []string{"", "   ", "\t\n"} {
		_, err := typedCode(raw)
		assert.ErrorIs(t, err, apperrors.InvalidCode())
		assert.Equal(t, apperrors.ReasonInvalidCode, apperrors.GetReason(err))
	}
}
