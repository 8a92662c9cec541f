package ui

// Default dimensions used before the first WindowSizeMsg arrives.
const (
	// DefaultWidth is the assumed terminal width.
	DefaultWidth = 80

	// DefaultHeight is the assumed terminal height.
	DefaultHeight = 24

	// WideLayoutMinWidth is the width at which views switch from a
	// stacked layout to a side-by-side one.
	WideLayoutMinWidth = 70
)
