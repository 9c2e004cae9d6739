package database

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	t.Parallel()

	ups, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(migrationsFS, "migrations/*.down.sql")
	require.NoError(t, err)

	assert.NotEmpty(t, ups)
	// Every up migration has a matching down migration.
	assert.Len(t, downs, len(ups))
}

func TestMigrationSourceLoads(t *testing.T) {
	t.Parallel()

	// iofs.New validates the migration file naming on load; a source that
	// constructs without error means the embedded set is well-formed.
	d := migrationsFromSource()
	require.NotNil(t, d)

	version, err := d.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)
}
