package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsCode(t *testing.T) {
	base := FileNotFound("data.arrow")
	wrapped := Wrap(base, "open table")

	assert.Equal(t, CodeNotFound, GetCode(wrapped))
	assert.Equal(t, `open table: Arrow file "data.arrow" doesn't exist`, wrapped.Error())
	assert.True(t, stderrors.Is(wrapped, base))
}

func TestWrapPlainError(t *testing.T) {
	cause := stderrors.New("boom")
	wrapped := Wrapf(cause, "column %d", 3)

	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.Equal(t, "column 3: boom", wrapped.Error())
	assert.True(t, stderrors.Is(wrapped, cause))
}

func TestWrapNil(t *testing.T) {
	assert.Nil(t, Wrap(nil, "x"))
	assert.Nil(t, Wrapf(nil, "x %d", 1))
	assert.Nil(t, WithCode(CodeIOError, nil))
}

func TestWithCode(t *testing.T) {
	err := WithCode(CodeComputeError, stderrors.New("mean failed"))
	assert.Equal(t, CodeComputeError, GetCode(err))
	assert.Equal(t, "mean failed", err.Error())

	cause := fmt.Errorf("%w: data.bin", stderrors.New("unknown table format"))
	err = WithCode(CodeInvalidInput, cause)
	assert.Equal(t, "unknown table format: data.bin", err.Error())
	assert.True(t, stderrors.Is(err, cause))

	recoded := WithCode(CodeConfigInvalid, IOError("cannot open", stderrors.New("denied")))
	assert.Equal(t, CodeConfigInvalid, GetCode(recoded))
	assert.Equal(t, "cannot open: denied", recoded.Error())
}

func TestGetCodeThroughFmtWrap(t *testing.T) {
	err := fmt.Errorf("outer: %w", InvalidInput("bad flag"))
	assert.True(t, IsAppError(err))
	assert.Equal(t, CodeInvalidInput, GetCode(err))
	assert.Equal(t, "UNKNOWN", GetCode(stderrors.New("plain")))
}
