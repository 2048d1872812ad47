package fileutils_test

import (
	"os"
	"path/filepath"
	"testing"

	"fjacquet/spend-insights/internal/fileutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, paths ...string) {
	t.Helper()
	for _, p := range paths {
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0750))
		require.NoError(t, os.WriteFile(p, []byte("date,description,debit\n"), 0600))
	}
}

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "a.csv")
	writeFiles(t, file)

	assert.True(t, fileutils.FileExists(file))
	assert.False(t, fileutils.FileExists(tmpDir))
	assert.False(t, fileutils.FileExists(filepath.Join(tmpDir, "missing.csv")))
}

func TestDirectoryExists(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "a.csv")
	writeFiles(t, file)

	assert.True(t, fileutils.DirectoryExists(tmpDir))
	assert.False(t, fileutils.DirectoryExists(file))
	assert.False(t, fileutils.DirectoryExists(filepath.Join(tmpDir, "nope")))
}

func TestEnsureDirectoryExists(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out", "nested")
	require.NoError(t, fileutils.EnsureDirectoryExists(dir))
	assert.True(t, fileutils.DirectoryExists(dir))
	assert.NoError(t, fileutils.EnsureDirectoryExists(dir))
	assert.NoError(t, fileutils.EnsureDirectoryExists("."))
}

func TestListFilesWithExtension(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t,
		filepath.Join(tmpDir, "b.csv"),
		filepath.Join(tmpDir, "a.CSV"),
		filepath.Join(tmpDir, "notes.txt"),
		filepath.Join(tmpDir, "nested", "c.csv"),
	)

	files, err := fileutils.ListFilesWithExtension(tmpDir, ".csv")
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(tmpDir, "a.CSV"),
		filepath.Join(tmpDir, "b.csv"),
		filepath.Join(tmpDir, "nested", "c.csv"),
	}, files)

	_, err = fileutils.ListFilesWithExtension(filepath.Join(tmpDir, "nonexistent"), ".csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "directory does not exist")
}

func TestResolveInputs(t *testing.T) {
	tmpDir := t.TempDir()
	single := filepath.Join(tmpDir, "single.csv")
	stmtDir := filepath.Join(tmpDir, "statements")
	emptyDir := filepath.Join(tmpDir, "empty")
	writeFiles(t, single, filepath.Join(stmtDir, "jan.csv"), filepath.Join(stmtDir, "feb.csv"))
	require.NoError(t, os.MkdirAll(emptyDir, 0750))

	tests := []struct {
		name    string
		inputs  []string
		want    []string
		wantErr string
	}{
		{
			name:   "file then directory",
			inputs: []string{single, stmtDir},
			want:   []string{single, filepath.Join(stmtDir, "feb.csv"), filepath.Join(stmtDir, "jan.csv")},
		},
		{
			name:   "repeated paths collapse",
			inputs: []string{single, single, filepath.Join(stmtDir, "..", "single.csv")},
			want:   []string{single},
		},
		{name: "missing file", inputs: []string{filepath.Join(tmpDir, "missing.csv")}, wantErr: "input does not exist"},
		{name: "directory without csv", inputs: []string{emptyDir}, wantErr: "no CSV files found"},
		{name: "nothing given", inputs: nil, wantErr: "no input files given"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fileutils.ResolveInputs(tt.inputs)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
