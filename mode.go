package climate

import "fmt"

// Mode selects how a Client obtains responses. It is fixed for the
// lifetime of a Client: a client is either live, live-and-capturing, or
// offline-replaying, never a mix.
type Mode int

const (
	// Direct performs live calls and never touches recorded fixtures.
	Direct Mode = iota
	// Record performs live calls and captures each successful exchange
	// into a fixture, persisted on Close.
	Record
	// Playback replays a previously recorded fixture and performs no
	// network I/O at all.
	Playback
)

func (m Mode) String() string {
	switch m {
	case Direct:
		return "direct"
	case Record:
		return "record"
	case Playback:
		return "playback"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode converts a mode name, as used in config files and the
// CLIMATE_API_MODE environment variable, into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "direct":
		return Direct, nil
	case "record":
		return Record, nil
	case "playback":
		return Playback, nil
	}
	return 0, fmt.Errorf("climate: unknown mode %q (want direct, record or playback)", s)
}
