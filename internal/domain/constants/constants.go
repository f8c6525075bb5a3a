// Package constants holds identifiers shared between configuration and infrastructure.
package constants

// Pub/Sub providers
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Routing oracle providers
const (
	RoutingProviderOSRM     = "osrm"
	RoutingProviderPMTiles  = "pmtiles"
	RoutingProviderStraight = "straight"
)

// Export formats
const (
	FormatJSON    = "json"
	FormatGeoJSON = "geojson"
	FormatGPX     = "gpx"
)

// Artifact content
const (
	ArtifactContentType = "video/webm"
	ArtifactExtension   = ".webm"
)
