// Package hostinfo provides a host adapter backed by the runtime and OS.
package hostinfo

import (
	"os"
	"runtime"

	"github.com/felixgeelhaar/shipcheck/internal/ports"
)

// RealHost implements ports.Host for the machine the process runs on.
type RealHost struct{}

// NewRealHost creates a new RealHost.
func NewRealHost() *RealHost {
	return &RealHost{}
}

// OS returns the operating system name.
func (h *RealHost) OS() string {
	return runtime.GOOS
}

// Arch returns the processor architecture.
func (h *RealHost) Arch() string {
	return runtime.GOARCH
}

// Hostname returns the machine's hostname.
func (h *RealHost) Hostname() (string, error) {
	return os.Hostname()
}

// Ensure RealHost implements ports.Host.
var _ ports.Host = (*RealHost)(nil)
