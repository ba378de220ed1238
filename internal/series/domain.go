package series

import "time"

// Record is one parsed input row.
type Record struct {
	Date     time.Time
	Category string
	Value    int64
}

// Point is a single bar segment. Y0 stays zero until the point is stacked.
type Point struct {
	X        time.Time `json:"x"`
	Y        int64     `json:"y"`
	Category string    `json:"category"`
	Y0       int64     `json:"y0"`
}

// Top returns the upper edge of the segment once stacked.
func (p Point) Top() int64 {
	return p.Y0 + p.Y
}

// Series holds the points of one category in input order.
type Series []Point

// Category returns the category shared by the points of the series.
func (s Series) Category() string {
	if len(s) == 0 {
		return ""
	}
	return s[0].Category
}

func (s Series) clone() Series {
	if s == nil {
		return nil
	}
	return append(Series(nil), s...)
}

func cloneAll(in []Series) []Series {
	out := make([]Series, len(in))
	for i, layer := range in {
		out[i] = layer.clone()
	}
	return out
}

// Snapshot is the payload broadcast on every data change. Its JSON shape is
// the contract consumed by chart renderers.
type Snapshot struct {
	Data        []Series  `json:"data"`
	DataStacked []Series  `json:"dataStacked"`
	MinX        time.Time `json:"minX"`
	MaxX        time.Time `json:"maxX"`
	MinY        int64     `json:"minY"`
	MaxY        int64     `json:"maxY"`
}

// Empty reports whether no category is active. Bounds of an empty snapshot
// are zero values.
func (s Snapshot) Empty() bool {
	return len(s.Data) == 0
}

// Categories lists the active categories in stacking order.
func (s Snapshot) Categories() []string {
	out := make([]string, 0, len(s.Data))
	for _, layer := range s.Data {
		out = append(out, layer.Category())
	}
	return out
}

// Clone returns a deep copy so receivers can mutate it freely.
func (s Snapshot) Clone() Snapshot {
	out := s
	out.Data = cloneAll(s.Data)
	out.DataStacked = cloneAll(s.DataStacked)
	return out
}
