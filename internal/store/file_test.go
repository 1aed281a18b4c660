package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTasks(t *testing.T) []Task {
	return []Task{
		mustTask(t, "H", "2024-3-1", "9:5", "Buy milk"),
		mustTask(t, "C", "2025-12-31", "23:59", "Ship release", "tag it", "write notes"),
		mustTask(t, "L", "2024-01-02", "0:00", strings.Repeat("x", 90)),
	}
}

func TestFileRoundTripJSON(t *testing.T) {
	f := OpenFile(filepath.Join(t.TempDir(), "tasklist.json"))
	require.Equal(t, FormatJSON, f.Format)

	want := sampleTasks(t)
	require.NoError(t, f.Save(want))

	got, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFileJSONLayout(t *testing.T) {
	f := OpenFile(filepath.Join(t.TempDir(), "tasklist.json"))
	require.NoError(t, f.Save([]Task{mustTask(t, "H", "2024-3-1", "9:5", "Buy milk")}))

	b, err := os.ReadFile(f.Path)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"priority":"H","date":"2024-03-01","time":"09:05","lines":["Buy milk"]}]`, string(b))
}

func TestFileRoundTripYAML(t *testing.T) {
	f := OpenFile(filepath.Join(t.TempDir(), "tasks.yaml"))
	require.Equal(t, FormatYAML, f.Format)

	want := sampleTasks(t)
	require.NoError(t, f.Save(want))

	got, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFileLoadHandWrittenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.yml")
	doc := "- priority: N\n  date: 2024-02-29\n  time: \"7:30\"\n  lines:\n    - water plants\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	got, err := OpenFile(path).Load()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2024-02-29", got[0].Date.String())
	assert.Equal(t, "07:30", got[0].Time.String())
}

func TestFileMissingIsEmpty(t *testing.T) {
	got, err := OpenFile(filepath.Join(t.TempDir(), "nope.json")).Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileSaveEmptyWritesEmptyList(t *testing.T) {
	f := OpenFile(filepath.Join(t.TempDir(), "sub", "tasklist.json"))
	require.NoError(t, f.Save(nil))

	b, err := os.ReadFile(f.Path)
	require.NoError(t, err)
	assert.Equal(t, "[]\n", string(b))

	got, err := f.Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileMalformed(t *testing.T) {
	tests := map[string]string{
		"not json":      `{{{`,
		"not a list":    `{"priority":"H"}`,
		"bad priority":  `[{"priority":"X","date":"2024-01-01","time":"10:00","lines":["a"]}]`,
		"bad date":      `[{"priority":"H","date":"2024-02-30","time":"10:00","lines":["a"]}]`,
		"bad time":      `[{"priority":"H","date":"2024-02-01","time":"25:00","lines":["a"]}]`,
		"no lines":      `[{"priority":"H","date":"2024-02-01","time":"10:00","lines":[]}]`,
		"blank line":    `[{"priority":"H","date":"2024-02-01","time":"10:00","lines":["  "]}]`,
		"missing field": `[{"priority":"H","date":"2024-02-01","lines":["a"]}]`,
		"extra field":   `[{"priority":"H","date":"2024-02-01","time":"10:00","lines":["a"],"id":1}]`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tasklist.json")
			require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))
			got, err := OpenFile(path).Load()
			assert.ErrorIs(t, err, ErrMalformed)
			assert.Empty(t, got)
		})
	}
}

func TestFileQuarantine(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasklist.json")
	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))

	f := OpenFile(path)
	_, err := f.Load()
	require.ErrorIs(t, err, ErrMalformed)

	moved, err := f.Quarantine()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(filepath.Base(moved), "tasklist.json.corrupt-"))

	b, err := os.ReadFile(moved)
	require.NoError(t, err)
	assert.Equal(t, "garbage", string(b))

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileEmptyContentsIsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasklist.json")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))
	got, err := OpenFile(path).Load()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileSaveRejectsUnsetDate(t *testing.T) {
	f := OpenFile(filepath.Join(t.TempDir(), "tasklist.json"))
	err := f.Save([]Task{{Priority: PriorityNormal, Time: Clock{Hour: 1}, Lines: []string{"x"}}})
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, statErr := os.Stat(f.Path)
	assert.True(t, os.IsNotExist(statErr))
}
