package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/stackchart/internal/app"
	"github.com/odyssey-erp/stackchart/internal/series"
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

func writeSample(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, cfg *app.Config, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCommand(cfg, nil)
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func decodeSnapshot(t *testing.T, raw string) series.Snapshot {
	t.Helper()
	var snapshot series.Snapshot
	require.NoError(t, json.Unmarshal([]byte(raw), &snapshot))
	return snapshot
}

func TestSnapshotCommandPublishesAllCategories(t *testing.T) {
	path := writeSample(t, sampleCSV)
	stdout, stderr, err := execute(t, nil, "", "snapshot", "--file", path)
	require.NoError(t, err)
	require.Empty(t, stderr)

	snapshot := decodeSnapshot(t, stdout)
	require.Equal(t, []string{"Mee", "Ooo", "Ggg"}, snapshot.Categories())
	require.Equal(t, int64(369), snapshot.MaxY)
}

func TestSnapshotCommandFiltersCategories(t *testing.T) {
	path := writeSample(t, sampleCSV)
	stdout, _, err := execute(t, nil, "", "snapshot", "-f", path, "-c", "Ggg,Mee", "-c", "Nope")
	require.NoError(t, err)

	snapshot := decodeSnapshot(t, stdout)
	require.Equal(t, []string{"Mee", "Ggg"}, snapshot.Categories())
	require.Equal(t, int64(1), snapshot.Data[0][0].Y)
	require.Equal(t, int64(111), snapshot.Data[1][0].Y)
	require.Equal(t, int64(1), snapshot.DataStacked[1][0].Y0)
}

func TestSnapshotCommandEmptyFilter(t *testing.T) {
	path := writeSample(t, sampleCSV)
	stdout, _, err := execute(t, nil, "", "snapshot", "-f", path, "--categories", "")
	require.NoError(t, err)

	snapshot := decodeSnapshot(t, stdout)
	require.True(t, snapshot.Empty())
	require.Zero(t, snapshot.MaxY)
}

func TestConfigSuppliesDefaults(t *testing.T) {
	cfg := &app.Config{DataPath: writeSample(t, sampleCSV), Categories: []string{"Ooo"}}
	stdout, _, err := execute(t, cfg, "", "snapshot")
	require.NoError(t, err)
	require.Equal(t, []string{"Ooo"}, decodeSnapshot(t, stdout).Categories())
}

func TestExportCommandReadsStdin(t *testing.T) {
	stdout, _, err := execute(t, nil, sampleCSV, "export", "-f", "-")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 10)
	require.Equal(t, "date,category,value,y0,top", lines[0])
	require.Equal(t, "20/01/2013,Ggg,333,36,369", lines[9])
}

func TestSummaryCommand(t *testing.T) {
	path := writeSample(t, sampleCSV)
	stdout, _, err := execute(t, nil, "", "summary", "-f", path)
	require.NoError(t, err)
	require.Contains(t, stdout, "Ggg")
	require.Contains(t, stdout, "666")
	require.Contains(t, stdout, "range 18/01/2013 - 20/01/2013, y 0 - 369")

	stdout, _, err = execute(t, nil, "", "summary", "-f", path, "-c", "")
	require.NoError(t, err)
	require.Contains(t, stdout, "no active categories")
}

func TestCategoriesCommand(t *testing.T) {
	path := writeSample(t, sampleCSV)
	stdout, _, err := execute(t, nil, "", "categories", "-f", path)
	require.NoError(t, err)
	require.Equal(t, "Mee\nOoo\nGgg\n", stdout)
}

func TestMetricsFlagWritesToStderr(t *testing.T) {
	path := writeSample(t, sampleCSV)
	stdout, stderr, err := execute(t, nil, "", "snapshot", "-f", path, "--metrics")
	require.NoError(t, err)
	require.NotEmpty(t, stdout)
	require.Contains(t, stderr, "stackchart_snapshots_published_total 1")
	require.Contains(t, stderr, "stackchart_rows_loaded_total 9")
}

func TestMalformedInputFails(t *testing.T) {
	path := writeSample(t, "date,category,value\n18/01/2013,Mee,x\n")
	_, stderr, err := execute(t, nil, "", "snapshot", "-f", path, "--metrics")

	var parseErr *series.ParseError
	require.True(t, errors.As(err, &parseErr))
	require.Equal(t, 2, parseErr.Line)
	require.Contains(t, stderr, "stackchart_load_failures_total 1")
}

func TestMisalignedInputFails(t *testing.T) {
	path := writeSample(t, "date,category,value\n18/01/2013,Mee,1\n19/01/2013,Ooo,2\n")
	_, _, err := execute(t, nil, "", "snapshot", "-f", path)
	require.True(t, errors.Is(err, series.ErrMisaligned))
}

func TestMissingInputFails(t *testing.T) {
	_, _, err := execute(t, nil, "", "snapshot")
	require.ErrorIs(t, err, ErrNoInput)
}
