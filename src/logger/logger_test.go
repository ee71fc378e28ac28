package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFiltering(t *testing.T) {
	l := New(WARN, "test")
	assert.False(t, l.IsLevelEnabled(DEBUG))
	assert.False(t, l.IsLevelEnabled(INFO))
	assert.True(t, l.IsLevelEnabled(WARN))
	assert.True(t, l.IsLevelEnabled(ERROR))
}

func TestSetLevel(t *testing.T) {
	l := New(INFO, "test")
	l.SetLevel(DEBUG)
	assert.Equal(t, DEBUG, l.GetLevel())
	assert.True(t, l.IsLevelEnabled(DEBUG))
}

func TestWithPrefixNests(t *testing.T) {
	l := New(INFO, "recognizer")
	scoped := l.WithPrefix("transport")
	assert.Equal(t, "recognizer.transport", scoped.prefix)
}

func TestConvenienceFunctionsDoNotPanic(t *testing.T) {
	SetLevel(DEBUG)
	Debug("hello %s", "world")
	Info("hello %s", "world")
	Warn("hello %s", "world")
	Error("hello %s", "world")
	assert.True(t, IsDebugEnabled())
}
