package nats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestActivitySubject(t *testing.T) {
	assert.Equal(t, "todo.activity.42", ActivitySubject(42))
}
