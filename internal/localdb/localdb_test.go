package localdb

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Open(t *testing.T) {
	path := filepath.Join(t.TempDir(), "farmacia.db")

	db, err := Open(path)
	require.NoError(t, err)

	// running the migration twice is harmless
	require.NoError(t, Migrate(db))

	var tables []string
	require.NoError(t, db.Select(&tables, `SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name`))
	assert.Equal(t, []string{"credentials", "sale_draft", "sale_draft_items"}, tables)
	require.NoError(t, db.Close())

	// reopening keeps the data file
	db, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}
