package pmtiles

import "routereel/internal/domain/entity"

const defaultSpeedKmh = 30.0

// Profile describes how one transport mode uses the road network
type Profile struct {
	Mode entity.TransportMode

	// SpeedKmh is a fixed travel speed. Zero uses the road class speed.
	SpeedKmh float64

	// SpeedFactor scales class speeds, e.g. buses are slower than cars.
	SpeedFactor float64

	IgnoreOneWay bool
	excluded     map[string]bool
}

var (
	motorVehicleExcluded = map[string]bool{
		"path": true, "footway": true, "pedestrian": true, "steps": true,
		"cycleway": true, "track": true, "bridleway": true,
	}

	profiles = map[entity.TransportMode]Profile{
		entity.TransportModeCar: {
			Mode:        entity.TransportModeCar,
			SpeedFactor: 1,
			excluded:    motorVehicleExcluded,
		},
		entity.TransportModeBus: {
			Mode:        entity.TransportModeBus,
			SpeedFactor: 0.8,
			excluded:    motorVehicleExcluded,
		},
		entity.TransportModeWalk: {
			Mode:         entity.TransportModeWalk,
			SpeedKmh:     5,
			IgnoreOneWay: true,
			excluded: map[string]bool{
				"motorway": true, "motorway_link": true, "trunk": true, "trunk_link": true,
			},
		},
		entity.TransportModeBike: {
			Mode:     entity.TransportModeBike,
			SpeedKmh: 15,
			excluded: map[string]bool{
				"motorway": true, "motorway_link": true, "steps": true,
			},
		},
	}
)

// ProfileFor returns the routing profile of a ground mode. Rail, ferry and
// flight have no road profile.
func ProfileFor(mode entity.TransportMode) (Profile, bool) {
	profile, ok := profiles[mode]

	return profile, ok
}

// Allows reports whether the profile may travel roads of the given class.
func (p Profile) Allows(class string) bool {
	return !p.excluded[class]
}

// Speed returns the travel speed in km/h on a segment.
func (p Profile) Speed(segment *RoadSegment) float64 {
	if p.SpeedKmh > 0 {
		return p.SpeedKmh
	}

	speed := segment.MaxSpeed
	if speed <= 0 {
		speed = defaultSpeedKmh
	}
	if p.SpeedFactor > 0 {
		speed *= p.SpeedFactor
	}

	return speed
}
