// Package config carries every caller-facing knob for a recognition or
// synthesis session, plus the ambient device/OS metadata block both session
// types embed into their speech.config message.
package config

import "runtime"

// OS describes the platform the audio stream originates from.
// Grounded on original_source/src/config.rs's Os struct.
type OS struct {
	Platform string `json:"platform"`
	Name     string `json:"name"`
	Version  string `json:"version"`
}

// System describes the client application talking to Azure.
// Grounded on original_source/src/config.rs's System struct.
type System struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Build   string `json:"build"`
	Lang    string `json:"lang"`
}

// Device bundles OS and System metadata sent on every speech.config message.
type Device struct {
	OS     OS     `json:"os"`
	System System `json:"system"`
}

// ModuleName and ModuleVersion identify this library in the System block it
// reports to Azure. The Rust original resolves its equivalents from Cargo
// metadata at compile time; Go has no build-time package-version constant
// available to library code, so these are plain constants kept in sync by
// hand at release time.
const (
	ModuleName    = "azurespeech-go"
	ModuleVersion = "0.1.0"
)

// DefaultDevice returns a Device populated from runtime.GOOS/runtime.GOARCH
// and this module's own name/version. Unlike the Rust original, which shells
// out to the os_info crate for a detailed OS version string, this stays on
// the standard library: runtime.GOOS/GOARCH are sufficient device metadata
// for Azure's speech.config and keep DefaultDevice a zero-dependency,
// deterministic call that is easy to assert on in tests (see DESIGN.md).
func DefaultDevice() Device {
	return Device{
		OS: OS{
			Platform: runtime.GOOS,
			Name:     runtime.GOOS,
			Version:  runtime.GOARCH,
		},
		System: System{
			Name:    ModuleName,
			Version: ModuleVersion,
			Build:   "go",
			Lang:    "go",
		},
	}
}

// Unknown returns a Device with "Unknown" placeholders, mirroring the
// original's System::unknown()/Os::unknown() escape hatch for callers who
// want to omit real device identification.
func Unknown() Device {
	return Device{
		OS:     OS{Platform: "Unknown", Name: "Unknown", Version: "Unknown"},
		System: System{Name: "Unknown", Version: "Unknown", Build: "Unknown", Lang: "Unknown"},
	}
}
