package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Wrap(t *testing.T) {
	cause := stderrors.New("connection refused")

	err := ErrDatabaseError.Wrap(cause)

	assert.Equal(t, "DATABASE_ERROR: Database operation failed: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrDatabaseError)
	assert.NotErrorIs(t, err, ErrCacheError)
	assert.Nil(t, ErrDatabaseError.Unwrap(), "predefined error must stay untouched")
}

func TestAppError_AsThroughFmtWrap(t *testing.T) {
	err := fmt.Errorf("sink: %w", ErrKnowledgeBase.Wrap(ErrCacheError.Wrap(stderrors.New("timeout"))))

	appErr, ok := As(err)
	require.True(t, ok)
	assert.Equal(t, "KNOWLEDGE_BASE_ERROR", appErr.Code)
	assert.Equal(t, "Knowledge base operation failed", Message(err))
	assert.ErrorIs(t, err, ErrCacheError)
}

func TestAppError_WithDetailsCopies(t *testing.T) {
	err := ErrInvalidRequest.WithDetails(map[string]interface{}{"location": "required"})

	assert.Empty(t, ErrInvalidRequest.Details)
	assert.Equal(t, "required", err.Details["location"])
	assert.ErrorIs(t, err, ErrInvalidRequest)
}
