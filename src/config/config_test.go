package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultDevice(t *testing.T) {
	d := DefaultDevice()
	assert.NotEmpty(t, d.OS.Name)
	assert.Equal(t, ModuleName, d.System.Name)
	assert.Equal(t, ModuleVersion, d.System.Version)
}

func TestUnknownDevice(t *testing.T) {
	d := Unknown()
	assert.Equal(t, "Unknown", d.OS.Name)
	assert.Equal(t, "Unknown", d.System.Build)
}

func TestLanguageDetectionEnabled(t *testing.T) {
	c := NewRecognizerConfig("key", "westus", []string{"en-us"})
	assert.False(t, c.LanguageDetectionEnabled())

	c.Languages = []string{"en-us", "it-it"}
	assert.True(t, c.LanguageDetectionEnabled())
}

func TestAudioFormatIsOpus(t *testing.T) {
	assert.True(t, AudioFormatOgg24Khz16BitMonoOpus.IsOpus())
	assert.False(t, AudioFormatRiff16Khz16BitMonoPCM.IsOpus())
	assert.Equal(t, 24000, AudioFormatOgg24Khz16BitMonoOpus.SampleRate())
}

func TestNewSynthesizerConfigDefaults(t *testing.T) {
	c := NewSynthesizerConfig("key", "westus")
	assert.True(t, c.SessionEndEnabled)
	assert.True(t, c.AutoDetectLanguage)
	assert.Equal(t, AudioFormatRiff24Khz16BitMonoPCM, c.OutputFormat)
}
