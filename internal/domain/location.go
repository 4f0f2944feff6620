package domain

import (
	"strconv"
	"strings"
)

const DefaultMapsBaseURL = "https://www.google.com/maps"

// Location is the optional delivery position captured at checkout.
type Location struct {
	Latitude  *float64 `bson:"latitude,omitempty" json:"latitude,omitempty"`
	Longitude *float64 `bson:"longitude,omitempty" json:"longitude,omitempty"`
	City      string   `bson:"city,omitempty" json:"city,omitempty"`
	Region    string   `bson:"region,omitempty" json:"region,omitempty"`
	Country   string   `bson:"country,omitempty" json:"country,omitempty"`
	MapsLink  string   `bson:"mapsLink,omitempty" json:"mapsLink,omitempty"`
}

// HasCoordinates reports whether both latitude and longitude are set.
func (l *Location) HasCoordinates() bool {
	return l != nil && l.Latitude != nil && l.Longitude != nil
}

// DeriveMapsLink sets MapsLink from the coordinates, or clears it when either is missing.
// The link is server-owned; whatever the client sent is discarded.
func (l *Location) DeriveMapsLink(baseURL string) {
	if l == nil {
		return
	}
	if !l.HasCoordinates() {
		l.MapsLink = ""
		return
	}
	l.MapsLink = MapsLink(baseURL, *l.Latitude, *l.Longitude)
}

// MapsLink builds "{base}?q={lat},{lng}".
func MapsLink(baseURL string, lat, lng float64) string {
	if baseURL == "" {
		baseURL = DefaultMapsBaseURL
	}
	sep := "?"
	if strings.Contains(baseURL, "?") {
		sep = "&"
	}
	return baseURL + sep + "q=" + formatCoord(lat) + "," + formatCoord(lng)
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
