package entity

// TransportMode describes how a segment is travelled.
type TransportMode string

const (
	TransportModeCar    TransportMode = "car"
	TransportModeWalk   TransportMode = "walk"
	TransportModeBike   TransportMode = "bike"
	TransportModeBus    TransportMode = "bus"
	TransportModeTrain  TransportMode = "train"
	TransportModeFerry  TransportMode = "ferry"
	TransportModeFlight TransportMode = "flight"
)

// DefaultTransportMode is assigned to segments that have nothing to inherit from.
const DefaultTransportMode = TransportModeCar

// TransportModes lists every supported mode in display order.
var TransportModes = []TransportMode{
	TransportModeCar,
	TransportModeWalk,
	TransportModeBike,
	TransportModeBus,
	TransportModeTrain,
	TransportModeFerry,
	TransportModeFlight,
}

// IsValid reports whether m is one of the supported modes.
func (m TransportMode) IsValid() bool {
	for _, mode := range TransportModes {
		if mode == m {
			return true
		}
	}

	return false
}

// IsArc reports whether segments in this mode are drawn as a synthetic arc
// instead of a routed ground path.
func (m TransportMode) IsArc() bool {
	return m == TransportModeFlight
}

// ParseTransportMode converts a raw string into a TransportMode.
func ParseTransportMode(raw string) (TransportMode, bool) {
	mode := TransportMode(raw)

	return mode, mode.IsValid()
}
