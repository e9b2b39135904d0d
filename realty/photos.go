package realty

import "strings"

const (
	thumbMarker = "s.jpg"
	hdMarker    = "l.jpg"
)

// ToHD upgrades a thumbnail photo URL to its high-resolution variant. URLs
// without the thumbnail marker pass through unchanged.
func ToHD(href string) string {
	return strings.Replace(href, thumbMarker, hdMarker, 1)
}
