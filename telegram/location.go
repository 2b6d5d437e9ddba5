package telegram

import "encoding/json"

// Location represents a point on the map.
type Location struct {
	longitude float64
	latitude  float64
	extra     map[string]any
	hash      uint64
}

// NewLocation builds a location from its coordinates.
func NewLocation(longitude, latitude float64) *Location {
	l := &Location{longitude: longitude, latitude: latitude}
	h := newHasher()
	h.str("location")
	h.float64(longitude)
	h.float64(latitude)
	l.hash = h.sum()
	return l
}

func (l *Location) Longitude() float64 { return l.longitude }
func (l *Location) Latitude() float64  { return l.latitude }

// Extra returns the unknown keys carried by the payload this location was
// decoded from.
func (l *Location) Extra() map[string]any { return copyExtra(l.extra) }

// Equal compares both coordinates.
func (l *Location) Equal(other *Location) bool {
	if l == nil || other == nil {
		return l == other
	}
	return l.longitude == other.longitude && l.latitude == other.latitude
}

// Hash is consistent with Equal.
func (l *Location) Hash() uint64 { return l.hash }

// MarshalJSON encodes the location as a Bot API Location object.
func (l *Location) MarshalJSON() ([]byte, error) {
	type wire struct {
		Longitude float64 `json:"longitude"`
		Latitude  float64 `json:"latitude"`
	}
	data, err := json.Marshal(wire{Longitude: l.longitude, Latitude: l.latitude})
	if err != nil {
		return nil, err
	}
	return mergeExtra(data, l.extra)
}

// Location decodes a Bot API Location object.
func (d *Decoder) Location(data []byte) (*Location, error) {
	obj, err := parseObject(data)
	if err != nil {
		return nil, err
	}
	return decodeLocation(d, obj)
}

func decodeLocation(_ *Decoder, obj rawObject) (*Location, error) {
	const entity = "Location"
	var longitude, latitude float64
	if err := obj.require(entity, "longitude", &longitude); err != nil {
		return nil, err
	}
	if err := obj.require(entity, "latitude", &latitude); err != nil {
		return nil, err
	}
	l := NewLocation(longitude, latitude)
	l.extra = obj.extra()
	return l, nil
}
