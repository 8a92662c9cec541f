package ports

// Host exposes facts about the machine the tool runs on.
type Host interface {
	// OS returns the operating system name, e.g. "linux" or "darwin".
	OS() string

	// Arch returns the processor architecture, e.g. "amd64" or "arm64".
	Arch() string

	// Hostname returns the machine's hostname.
	Hostname() (string, error)
}
