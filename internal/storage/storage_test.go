package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTemp(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "taskflow.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestGetMissingKey(t *testing.T) {
	db := openTemp(t)

	_, err := db.Get("tasks")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPutGet(t *testing.T) {
	db := openTemp(t)

	require.NoError(t, db.Put("tasks", []byte(`[{"id":"1"}]`)))

	got, err := db.Get("tasks")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"1"}]`), got)
}

func TestPutReplaces(t *testing.T) {
	db := openTemp(t)

	require.NoError(t, db.Put("projects", []byte(`[]`)))
	require.NoError(t, db.Put("projects", []byte(`[{"id":"a"}]`)))

	got, err := db.Get("projects")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[{"id":"a"}]`), got)
}

func TestKeysAreIndependent(t *testing.T) {
	db := openTemp(t)

	require.NoError(t, db.Put("projects", []byte(`["p"]`)))
	require.NoError(t, db.Put("tasks", []byte(`["t"]`)))

	projects, err := db.Get("projects")
	require.NoError(t, err)
	tasks, err := db.Get("tasks")
	require.NoError(t, err)
	assert.Equal(t, []byte(`["p"]`), projects)
	assert.Equal(t, []byte(`["t"]`), tasks)
}

func TestReopenKeepsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskflow.db")

	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Put("tasks", []byte(`[1,2,3]`)))
	require.NoError(t, db.Close())

	db2, err := Open(path)
	require.NoError(t, err)
	defer db2.Close()

	got, err := db2.Get("tasks")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1,2,3]`), got)
}
