package gtfs

// Bounds is the bounding box of the located stops of a feed.
type Bounds struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	LatSpan float64 `json:"latSpan"`
	LonSpan float64 `json:"lonSpan"`
}

// Bounds returns the centre and span of every stop with coordinates. ok is
// false when no stop is located.
func (f *Feed) Bounds() (b Bounds, ok bool) {
	var minLat, maxLat, minLon, maxLon float64
	first := true
	for _, stop := range f.tables.Stops {
		if !stop.HasLocation() {
			continue
		}
		lat, lon := *stop.Latitude, *stop.Longitude
		if first {
			minLat, maxLat = lat, lat
			minLon, maxLon = lon, lon
			first = false
			continue
		}

		if lat < minLat {
			minLat = lat
		}
		if lat > maxLat {
			maxLat = lat
		}
		if lon < minLon {
			minLon = lon
		}
		if lon > maxLon {
			maxLon = lon
		}
	}
	if first {
		return Bounds{}, false
	}

	return Bounds{
		Lat:     (minLat + maxLat) / 2,
		Lon:     (minLon + maxLon) / 2,
		LatSpan: maxLat - minLat,
		LonSpan: maxLon - minLon,
	}, true
}
