package errors

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	// Test creating a new error
	err := New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())

	// Test creating a new formatted error
	err = Newf("formatted %s", "error")
	assert.NotNil(t, err)
	assert.Equal(t, "formatted error", err.Error())

	// Check that the error is an ApplicationError
	var appErr *ApplicationError
	assert.True(t, As(err, &appErr))
	assert.Equal(t, "formatted error", appErr.Error())
	assert.Equal(t, Unknown, appErr.Kind())
}

func TestWrapping(t *testing.T) {
	origErr := New("original error")
	wrappedErr := Wrap(origErr, "wrapped")
	assert.NotNil(t, wrappedErr)
	assert.Equal(t, "wrapped: original error", wrappedErr.Error())
	assert.Equal(t, origErr, Unwrap(wrappedErr))

	wrappedFormatted := Wrapf(origErr, "formatted %s", "wrapper")
	assert.Equal(t, "formatted wrapper: original error", wrappedFormatted.Error())

	// Test wrapping nil returns nil
	assert.Nil(t, Wrap(nil, "wrapper"))
	assert.Nil(t, Wrapf(nil, "formatted %s", "wrapper"))

	deepWrapped := Wrap(wrappedErr, "deeper")
	assert.Equal(t, "deeper: wrapped: original error", deepWrapped.Error())
	assert.True(t, Is(deepWrapped, origErr))
}

func TestParseError(t *testing.T) {
	parseErr := NewParseError("wrong argument count", 'c', WrongArgumentCount)
	assert.Equal(t, "wrong argument count: :c", parseErr.Error())
	assert.Equal(t, 'c', parseErr.Op())
	assert.Equal(t, WrongArgumentCount, parseErr.Kind())
	assert.Nil(t, Unwrap(parseErr))

	noOp := NewParseError("malformed command", 0, MalformedCommand)
	assert.Equal(t, "malformed command", noOp.Error())

	// Sentinels match by kind, not by operation
	missing := NewParseError("no file selected", 'd', MissingSelection)
	assert.True(t, Is(missing, ErrMissingSelection))
	assert.False(t, Is(missing, ErrOperationNotFound))
	assert.True(t, IsMissingSelection(missing))
	assert.NotEqual(t, InvalidArgument, KindOf(missing))

	assert.True(t, IsParseError(fmt.Errorf("context: %w", missing)))
	assert.False(t, IsExecError(missing))
}

func TestExecError(t *testing.T) {
	execErr := NewExecError("delete", "/tmp/x", IOFailure, os.ErrNotExist)
	assert.Equal(t, "delete failed: /tmp/x: file does not exist", execErr.Error())
	assert.Equal(t, "delete", execErr.Op())
	assert.Equal(t, "/tmp/x", execErr.Path())
	assert.Equal(t, IOFailure, execErr.Kind())

	// The OS error stays reachable through the chain
	assert.True(t, Is(execErr, os.ErrNotExist))
	assert.True(t, IsExecError(execErr))
	assert.False(t, IsParseError(execErr))

	noPath := NewExecError("paste", "", IOFailure, nil)
	assert.Equal(t, "paste failed", noPath.Error())
}

func TestConfigError(t *testing.T) {
	configErr := NewConfigError("invalid value", "tick_ms", InvalidConfig, nil)
	assert.Equal(t, "invalid value: tick_ms", configErr.Error())
	assert.Equal(t, "tick_ms", configErr.Param())

	origErr := fmt.Errorf("value out of range")
	configErr = NewConfigError("invalid value", "tick_ms", InvalidConfig, origErr)
	assert.Equal(t, "invalid value: tick_ms: value out of range", configErr.Error())
	assert.Equal(t, origErr, Unwrap(configErr))

	assert.True(t, IsInvalidConfig(configErr))
	assert.False(t, IsInvalidConfig(New("some other error")))
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorKind
	}{
		{"parse", NewParseError("bad", 'e', InvalidArgument), InvalidArgument},
		{"exec", NewExecError("rename", "a", IOFailure, nil), IOFailure},
		{"wrapped exec", fmt.Errorf("outer: %w", NewExecError("rename", "a", IOFailure, nil)), IOFailure},
		{"plain", errors.New("plain"), Unknown},
		{"nil", nil, Unknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
		})
	}
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "operation not found", OperationNotFound.String())
	assert.Equal(t, "io failure", IOFailure.String())
	assert.Equal(t, "kind(99)", ErrorKind(99).String())
}
