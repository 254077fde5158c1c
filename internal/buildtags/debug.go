//go:build debug

package buildtags

// DebugEnabled indicates whether debug output is enabled by default
const DebugEnabled = true

// DefaultDebugLevel is the console debug level used when config and flags
// leave it unset
const DefaultDebugLevel = 1
