package backenderr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapPreservesChain(t *testing.T) {
	cause := errors.New("connection refused")
	err := Wrap(CodeUnavailable, cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, CodeUnavailable, err.Code)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestMessageFor(t *testing.T) {
	assert.Equal(t, "You do not have access to this resource.", MessageFor(CodePermissionDenied))
	assert.Equal(t, genericMessage, MessageFor("backend/unknown-code"))
}

func TestUserMessage(t *testing.T) {
	wrapped := fmt.Errorf("loading posts: %w", Wrap(CodeQueryFailed, errors.New("timeout")))
	assert.Equal(t, MessageFor(CodeQueryFailed), UserMessage(wrapped))

	assert.Equal(t, genericMessage, UserMessage(errors.New("raw")))
	assert.Equal(t, genericMessage, UserMessage(nil))
}
