package types

// Mode is the execution mode of a run.
type Mode string

const (
	// ModeSim replays stored bars; notifications are silent.
	ModeSim Mode = "sim"
	// ModePaper runs against live bars without real orders.
	ModePaper Mode = "paper"
	// ModeLive runs against live bars. Orders still go through the configured executor.
	ModeLive Mode = "live"
)

// AllModes lists the accepted values, in the order shown to users.
var AllModes = []any{string(ModeSim), string(ModePaper), string(ModeLive)}

// Notifies reports whether notifications are delivered in this mode.
func (m Mode) Notifies() bool {
	return m == ModePaper || m == ModeLive
}
