package series

import (
	"fmt"
	"time"
)

// Stack returns copies of data where every point's Y0 is the sum of the Y
// values at the same index in all lower layers. All layers must share the
// same x positions; nothing is interpolated.
func Stack(data []Series) ([]Series, error) {
	if err := checkAlignment(data); err != nil {
		return nil, err
	}
	return stackAligned(data), nil
}

// Build derives a full snapshot from data.
func Build(data []Series) (Snapshot, error) {
	if err := checkAlignment(data); err != nil {
		return Snapshot{}, err
	}
	return buildAligned(data), nil
}

// Bounds returns the date range of data and the highest stacked top.
func Bounds(data, stacked []Series) (minX, maxX time.Time, maxY int64) {
	first := true
	for _, layer := range data {
		for _, p := range layer {
			if first || p.X.Before(minX) {
				minX = p.X
			}
			if first || p.X.After(maxX) {
				maxX = p.X
			}
			first = false
		}
	}
	for _, layer := range stacked {
		for _, p := range layer {
			if top := p.Top(); top > maxY {
				maxY = top
			}
		}
	}
	return minX, maxX, maxY
}

func buildAligned(data []Series) Snapshot {
	stacked := stackAligned(data)
	minX, maxX, maxY := Bounds(data, stacked)
	return Snapshot{
		Data:        cloneAll(data),
		DataStacked: stacked,
		MinX:        minX,
		MaxX:        maxX,
		MinY:        0,
		MaxY:        maxY,
	}
}

func stackAligned(data []Series) []Series {
	stacked := make([]Series, len(data))
	if len(data) == 0 {
		return stacked
	}
	baseline := make([]int64, len(data[0]))
	for k, layer := range data {
		out := make(Series, len(layer))
		for i, p := range layer {
			p.Y0 = baseline[i]
			baseline[i] += p.Y
			out[i] = p
		}
		stacked[k] = out
	}
	return stacked
}

func checkAlignment(data []Series) error {
	if len(data) < 2 {
		return nil
	}
	base := data[0]
	for _, layer := range data[1:] {
		if len(layer) != len(base) {
			index := len(layer)
			if len(base) < index {
				index = len(base)
			}
			return &AlignmentError{
				Category: layer.Category(),
				Index:    index,
				Reason:   fmt.Sprintf("has %d points, base layer %q has %d", len(layer), base.Category(), len(base)),
			}
		}
		for i := range layer {
			if !layer[i].X.Equal(base[i].X) {
				return &AlignmentError{
					Category: layer.Category(),
					Index:    i,
					Reason:   fmt.Sprintf("x %s differs from base layer %q x %s", layer[i].X.Format(DateLayout), base.Category(), base[i].X.Format(DateLayout)),
				}
			}
		}
	}
	return nil
}
