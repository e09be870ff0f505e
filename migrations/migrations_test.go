package migrations

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForDriver(t *testing.T) {
	for _, driver := range []string{"sqlite3", "postgres"} {
		t.Run(driver, func(t *testing.T) {
			fsys, err := ForDriver(driver)
			require.NoError(t, err)

			files, err := fs.Glob(fsys, "*.sql")
			require.NoError(t, err)
			assert.Contains(t, files, "001_graph_schema.sql")
		})
	}

	_, err := ForDriver("mysql")
	assert.EqualError(t, err, "unsupported database driver: mysql")
}
