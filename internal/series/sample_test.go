package series

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const sampleCSV = `date,category,value
18/01/2013,Mee,1
19/01/2013,Mee,2
20/01/2013,Mee,3
18/01/2013,Ooo,11
19/01/2013,Ooo,22
20/01/2013,Ooo,33
18/01/2013,Ggg,111
19/01/2013,Ggg,222
20/01/2013,Ggg,333
`

func day(d int) time.Time {
	return time.Date(2013, time.January, d, 0, 0, 0, 0, time.UTC)
}

func newSampleStore(t *testing.T, pub Publisher, opts ...Option) *Store {
	t.Helper()
	store, err := NewStoreFromCSV(strings.NewReader(sampleCSV), pub, opts...)
	require.NoError(t, err)
	return store
}

// recorder collects every snapshot delivered to it.
type recorder struct {
	got []Snapshot
}

func (r *recorder) Publish(snapshot Snapshot) {
	r.got = append(r.got, snapshot)
}

func (r *recorder) last(t *testing.T) Snapshot {
	t.Helper()
	require.NotEmpty(t, r.got, "expected at least one snapshot")
	return r.got[len(r.got)-1]
}
