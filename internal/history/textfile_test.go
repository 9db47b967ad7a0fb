package history

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImportFile(t *testing.T) {
	manager := newTestManager(t)

	path := filepath.Join(t.TempDir(), "hist")
	require.NoError(t, os.WriteFile(path, []byte("a := 1\n\nb := 2\n"), 0644))

	count, err := manager.ImportFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	entries, err := manager.RecentEntries(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "a := 1", entries[0].Input)
	assert.Equal(t, "b := 2", entries[1].Input)
}

func TestImportFileIsIdempotent(t *testing.T) {
	manager := newTestManager(t)

	path := filepath.Join(t.TempDir(), "hist")
	require.NoError(t, os.WriteFile(path, []byte("x := 1\ny := 2\n"), 0644))

	count, err := manager.ImportFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	// Importing the same file again adds nothing. This is the startup
	// path: the flat file is re-read every session over a durable store.
	count, err = manager.ImportFile(path)
	require.NoError(t, err)
	assert.Zero(t, count)

	entries, err := manager.RecentEntries(-1)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	// A full import/export/import cycle leaves the store unchanged.
	out := filepath.Join(t.TempDir(), "hist-out")
	require.NoError(t, manager.ExportFile(out, 0))
	count, err = manager.ImportFile(out)
	require.NoError(t, err)
	assert.Zero(t, count)

	var buf bytes.Buffer
	require.NoError(t, manager.Show(&buf, -1, false))
	assert.Equal(t, "x := 1\ny := 2\n", buf.String())
}

func TestImportFileMissingIsIgnored(t *testing.T) {
	manager := newTestManager(t)

	count, err := manager.ImportFile(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestImportFileAppends(t *testing.T) {
	manager := newTestManager(t)

	_, err := manager.StartInput("existing")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "hist")
	require.NoError(t, os.WriteFile(path, []byte("imported\n"), 0644))

	_, err = manager.ImportFile(path)
	require.NoError(t, err)

	lines, err := manager.Lines(10)
	require.NoError(t, err)
	assert.Equal(t, []string{"imported", "existing"}, lines)
}

func TestLoadFileReplaces(t *testing.T) {
	manager := newTestManager(t)

	_, err := manager.StartInput("existing")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "hist")
	require.NoError(t, os.WriteFile(path, []byte("loaded\n"), 0644))

	count, err := manager.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	lines, err := manager.Lines(10)
	require.NoError(t, err)
	assert.Equal(t, []string{"loaded"}, lines)
}

func TestExportFile(t *testing.T) {
	manager := newTestManager(t)

	for _, input := range []string{"one", "two", "three"} {
		_, err := manager.StartInput(input)
		require.NoError(t, err)
	}

	path := filepath.Join(t.TempDir(), "hist")

	t.Run("everything", func(t *testing.T) {
		require.NoError(t, manager.ExportFile(path, 0))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "one\ntwo\nthree\n", string(data))
	})

	t.Run("truncated to limit", func(t *testing.T) {
		require.NoError(t, manager.ExportFile(path, 2))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "two\nthree\n", string(data))
	})
}

func TestExportImportRoundTrip(t *testing.T) {
	manager := newTestManager(t)

	for _, input := range []string{"x := 1", "fmt.Println(x)"} {
		_, err := manager.StartInput(input)
		require.NoError(t, err)
	}

	path := filepath.Join(t.TempDir(), "hist")
	require.NoError(t, manager.ExportFile(path, 0))

	count, err := manager.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	lines, err := manager.Lines(10)
	require.NoError(t, err)
	assert.Equal(t, []string{"fmt.Println(x)", "x := 1"}, lines)
}

func TestShow(t *testing.T) {
	manager := newTestManager(t)

	for _, input := range []string{"first", "second", "third", "fourth"} {
		_, err := manager.StartInput(input)
		require.NoError(t, err)
	}

	t.Run("last n with line numbers", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, manager.Show(&buf, 2, true))
		assert.Equal(t, "  3:  third\n  4:  fourth\n", buf.String())
	})

	t.Run("negative count shows everything", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, manager.Show(&buf, -1, true))
		assert.Equal(t, "  1:  first\n  2:  second\n  3:  third\n  4:  fourth\n", buf.String())
	})

	t.Run("without line numbers", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, manager.Show(&buf, 2, false))
		assert.Equal(t, "third\nfourth\n", buf.String())
	})

	t.Run("count larger than history", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, manager.Show(&buf, 100, false))
		assert.Equal(t, "first\nsecond\nthird\nfourth\n", buf.String())
	})
}
