package errors_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/toolmap/pkg/errors"
)

func TestNew(t *testing.T) {
	err := pkgerrors.New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())
}

func TestNotFoundError(t *testing.T) {
	t.Run("basic error", func(t *testing.T) {
		err := &pkgerrors.NotFoundError{
			Resource: "tool",
			ID:       "deepseek",
		}
		assert.Equal(t, "tool with ID deepseek not found", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
	})

	t.Run("constructor", func(t *testing.T) {
		err := pkgerrors.NewNotFoundError("tag", "开源")
		assert.Equal(t, "tag with ID 开源 not found", err.Error())
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("wrapped error", func(t *testing.T) {
		base := pkgerrors.NewNotFoundError("tool", "test")
		wrapped := errors.Join(errors.New("failed"), base)
		assert.True(t, pkgerrors.IsNotFound(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	t.Run("with field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Field:   "url",
			Message: "cannot be empty",
		}
		assert.Equal(t, "validation failed for field url: cannot be empty", err.Error())
		assert.True(t, errors.Is(err, pkgerrors.ErrInvalidInput))
	})

	t.Run("without field", func(t *testing.T) {
		err := &pkgerrors.ValidationError{
			Message: "invalid entry",
		}
		assert.Equal(t, "validation failed: invalid entry", err.Error())
		assert.True(t, pkgerrors.IsValidationError(err))
	})
}

func TestAPIError(t *testing.T) {
	t.Run("with status code", func(t *testing.T) {
		err := &pkgerrors.APIError{
			StatusCode: 503,
			Message:    "service unavailable",
			Endpoint:   "/rest/v1/tools",
		}
		assert.Contains(t, err.Error(), "503")
		assert.True(t, errors.Is(err, pkgerrors.ErrCloudUnavailable))
	})

	t.Run("client error is not unavailability", func(t *testing.T) {
		err := pkgerrors.NewAPIError(401, "/rest/v1/tools", "unauthorized")
		assert.False(t, errors.Is(err, pkgerrors.ErrCloudUnavailable))
	})

	t.Run("unwrap", func(t *testing.T) {
		base := errors.New("connection refused")
		err := &pkgerrors.APIError{Message: "request failed", Err: base}
		assert.Equal(t, base, err.Unwrap())
	})
}

func TestSyncError(t *testing.T) {
	base := errors.New("boom")
	err := pkgerrors.NewSyncError("publish", 42, base)
	assert.Contains(t, err.Error(), "publish")
	assert.Contains(t, err.Error(), "42")
	assert.Equal(t, base, errors.Unwrap(err))
}

func TestWrapHelpers(t *testing.T) {
	t.Run("nil passthrough", func(t *testing.T) {
		assert.NoError(t, pkgerrors.WrapIO("read", "tools.json", nil))
		assert.NoError(t, pkgerrors.WrapResource("load", "catalog", "", nil))
		assert.NoError(t, pkgerrors.WrapParse("json", "", nil))
		assert.NoError(t, pkgerrors.WrapSync("fetch", 0, nil))
	})

	t.Run("wrap IO", func(t *testing.T) {
		base := errors.New("permission denied")
		err := pkgerrors.WrapIO("write", "tools.json", base)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "tools.json")
		assert.Equal(t, base, errors.Unwrap(err))
	})

	t.Run("wrap parse", func(t *testing.T) {
		base := errors.New("unexpected token")
		err := pkgerrors.WrapParse("json", "import", base)
		require.Error(t, err)
		var parseErr *pkgerrors.ParseError
		assert.True(t, errors.As(err, &parseErr))
		assert.Equal(t, "json", parseErr.Format)
	})
}

func TestStaleFetch(t *testing.T) {
	assert.True(t, pkgerrors.IsStaleFetch(pkgerrors.ErrStaleFetch))
	assert.False(t, pkgerrors.IsStaleFetch(errors.New("other")))
}
