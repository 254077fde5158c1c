package console

import "fmt"

// DebugLevel controls the verbosity of debug output. Zero disables it
type DebugLevel int

const (
	// DebugOff drops every debug message
	DebugOff DebugLevel = iota
	// DebugBasic prints debug messages
	DebugBasic
	// DebugVerbose is reserved for callers that want a noisier tier
	DebugVerbose
)

func (l DebugLevel) String() string {
	switch {
	case l <= DebugOff:
		return "off"
	case l == DebugBasic:
		return "basic"
	case l == DebugVerbose:
		return "verbose"
	default:
		return fmt.Sprintf("verbose+%d", int(l-DebugVerbose))
	}
}
