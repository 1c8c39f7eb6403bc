package domain

// Immutable geographic coordinates (latitude, longitude).
type Coordinates struct {
	Lat float64
	Lng float64
}

// Return coordinates as "lat,lng" for link and query compatibility.
func (c Coordinates) String() string {
	return formatFloat(c.Lat) + "," + formatFloat(c.Lng)
}
