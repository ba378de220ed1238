// Package series turns date,category,value CSV rows into stacked chart
// series and broadcasts the derived Snapshot to subscribers whenever the
// active category filter changes.
package series
