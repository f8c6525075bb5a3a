package errors

import (
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapKeepsSentinel(t *testing.T) {
	sentinel := New("route missing")
	wrapped := Wrapf(Wrap(sentinel, "load"), "document %s", "alps")

	assert.True(t, Is(wrapped, sentinel))
	assert.Equal(t, "document alps: load: route missing", wrapped.Error())
	assert.Contains(t, fmt.Sprintf("%+v", WithStack(sentinel)), "TestWrapKeepsSentinel")
}

func TestJoin(t *testing.T) {
	assert.NoError(t, Join(nil, nil))

	joined := Join(io.EOF, nil, io.ErrUnexpectedEOF)
	assert.True(t, Is(joined, io.EOF))
	assert.True(t, Is(joined, io.ErrUnexpectedEOF))
}

func TestIsCanceled(t *testing.T) {
	assert.True(t, IsCanceled(context.Canceled))
	assert.True(t, IsCanceled(Wrap(context.DeadlineExceeded, "encode")))
	assert.False(t, IsCanceled(io.EOF))
	assert.False(t, IsCanceled(nil))
}
