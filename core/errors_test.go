package core

import (
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCodes(t *testing.T) {
	assert.Equal(t, NOERROR, Code(nil))
	assert.Equal(t, EINTERNAL, Code(io.EOF))
	err := Error(EMISSING, "no table for %s", "DE")
	assert.Equal(t, EMISSING, Code(err))
	assert.Equal(t, "no table for DE", UserMessage(err))
	assert.Equal(t, "[122] not found: no table for DE", err.Error())
	assert.Equal(t, "", UserMessage(nil))
	assert.Equal(t, "internal error", UserMessage(io.EOF))
}

func TestWrapError(t *testing.T) {
	err := WrapError(io.ErrUnexpectedEOF, EFORMAT, "table truncated")
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	assert.Equal(t, EFORMAT, Code(err))
	outer := WrapError(err, EINVALID, "cannot load")
	assert.Equal(t, EINVALID, Code(outer), "outermost code wins")
	assert.True(t, errors.Is(outer, io.ErrUnexpectedEOF))
	//
	err = WrapError(nil, ERANGE, "x")
	assert.Equal(t, ERANGE, Code(err))
	err = ErrorWithCode(nil, EMISSING)
	assert.Equal(t, "not found", UserMessage(err))
}
