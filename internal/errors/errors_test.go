package errors

import (
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppErrorMessage(t *testing.T) {
	err := NewIOError("failed to write index.md", fs.ErrPermission)
	assert.Equal(t, "IO_ERROR: failed to write index.md (permission denied)", err.Error())
	assert.ErrorIs(t, err, fs.ErrPermission)

	assert.Equal(t, "NOT_FOUND: run abc not found", NewNotFoundError("run abc").Error())
}

func TestCodeOfWrapped(t *testing.T) {
	wrapped := fmt.Errorf("generate: %w", NewFetchError("failed to list repositories", nil))

	assert.True(t, IsFetch(wrapped))
	assert.False(t, IsIO(wrapped))
	assert.False(t, IsRender(wrapped))
	assert.Equal(t, ErrCode(""), CodeOf(fmt.Errorf("plain")))
	assert.True(t, IsNotFound(NewNotFoundError("x")))
}
