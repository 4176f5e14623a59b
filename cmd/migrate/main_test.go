package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMigrationName(t *testing.T) {
	tests := []struct {
		filename string
		want     migrationFile
		wantErr  bool
	}{
		{filename: "001_create_fleet_tables.up.sql", want: migrationFile{version: 1, name: "create_fleet_tables", dir: up}},
		{filename: "002_create_audit_logs.down.sql", want: migrationFile{version: 2, name: "create_audit_logs", dir: down}},
		{filename: "README.md", wantErr: true},
		{filename: "create.up.sql", wantErr: true},
		{filename: "abc_create.up.sql", wantErr: true},
		{filename: "000_zero.up.sql", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			got, err := parseMigrationName(tt.filename)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadMigrationFilesSortsByVersion(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"002_b.up.sql", "001_a.up.sql", "001_a.down.sql", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o600))
	}

	files, err := loadMigrationFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 3)
	assert.Equal(t, 1, files[0].version)
	assert.Equal(t, 1, files[1].version)
	assert.Equal(t, 2, files[2].version)
	assert.Equal(t, filepath.Join(dir, "002_b.up.sql"), files[2].path)
}

func TestRepositoryMigrationsArePaired(t *testing.T) {
	files, err := loadMigrationFiles(filepath.Join("..", "..", "migrations"))
	require.NoError(t, err)

	ups, downs := map[int]bool{}, map[int]bool{}
	for _, f := range files {
		if f.dir == up {
			ups[f.version] = true
		} else {
			downs[f.version] = true
		}
	}
	assert.NotEmpty(t, ups)
	assert.Equal(t, ups, downs)
}
