package adapter

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "github.com/mouse-blink/casecov/internal/model"
)

func TestLocalSourceFSAdapter_Walk(t *testing.T) {
	t.Run("non recursive skips nested files", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "calc.cases.yaml"), "cases: []\n")

		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		writeTestFile(t, filepath.Join(nestedDir, "child.cases.yaml"), "cases: []\n")

		var visited []string
		err := adapter.Walk(m.Path(root), false, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		require.NoError(t, err)

		for _, forbidden := range []string{nestedDir, filepath.Join(nestedDir, "child.cases.yaml")} {
			assert.Falsef(t, containsPath(visited, forbidden), "Walk() unexpectedly visited %s when recursive is false", forbidden)
		}

		assert.True(t, containsPath(visited, filepath.Join(root, "calc.cases.yaml")), "Walk() did not visit top-level file")
	})

	t.Run("recursive visits nested files", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "calc.cases.yaml"), "cases: []\n")

		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		child := filepath.Join(nestedDir, "child.cases.yaml")
		writeTestFile(t, child, "cases: []\n")

		var visited []string
		err := adapter.Walk(m.Path(root), true, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		require.NoError(t, err)

		assert.True(t, containsPath(visited, child), "Walk() did not visit nested file when recursive")
	})
}

func TestLocalSourceFSAdapter_ReadFile(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()
	path := filepath.Join(root, "calc.cases.yaml")
	content := "members: []\n" + "cases: []\n"
	writeTestFile(t, path, content)

	got, err := adapter.ReadFile(m.Path(path))
	require.NoError(t, err)

	assert.Equal(t, content, string(got))
}

func TestLocalSourceFSAdapter_FileInfo(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	root := t.TempDir()

	info, err := adapter.FileInfo(m.Path(root))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = adapter.FileInfo(m.Path(filepath.Join(root, "missing.cases.yaml")))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalSourceFSAdapter_Find(t *testing.T) {
	setup := func(t *testing.T) string {
		t.Helper()

		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "calc.cases.yaml"), "cases: []\n")
		writeTestFile(t, filepath.Join(root, "notes.yaml"), "notes: []\n")

		nested := filepath.Join(root, "nested")
		mustMkdir(t, nested)
		writeTestFile(t, filepath.Join(nested, "paint.cases.yaml"), "cases: []\n")

		vendor := filepath.Join(root, "vendor")
		mustMkdir(t, vendor)
		writeTestFile(t, filepath.Join(vendor, "dep.cases.yaml"), "cases: []\n")

		return root
	}

	t.Run("directory without pattern stays shallow", func(t *testing.T) {
		root := setup(t)

		files, err := NewLocalSourceFSAdapter().Find([]m.Path{m.Path(root)}, nil)
		require.NoError(t, err)

		assert.Equal(t, []m.Path{m.Path(filepath.Join(root, "calc.cases.yaml"))}, files)
	})

	t.Run("recursive pattern descends and skips vendor", func(t *testing.T) {
		root := setup(t)

		files, err := NewLocalSourceFSAdapter().Find([]m.Path{m.Path(root + "/...")}, nil)
		require.NoError(t, err)

		assert.Equal(t, []m.Path{
			m.Path(filepath.Join(root, "calc.cases.yaml")),
			m.Path(filepath.Join(root, "nested", "paint.cases.yaml")),
		}, files)
	})

	t.Run("explicit files are deduplicated", func(t *testing.T) {
		root := setup(t)
		file := m.Path(filepath.Join(root, "calc.cases.yaml"))

		files, err := NewLocalSourceFSAdapter().Find([]m.Path{file, file, m.Path(root)}, nil)
		require.NoError(t, err)

		assert.Equal(t, []m.Path{file}, files)
	})

	t.Run("exclude patterns filter paths", func(t *testing.T) {
		root := setup(t)

		files, err := NewLocalSourceFSAdapter().Find([]m.Path{m.Path(root + "/...")}, []string{"nested/"})
		require.NoError(t, err)

		assert.Equal(t, []m.Path{m.Path(filepath.Join(root, "calc.cases.yaml"))}, files)
	})

	t.Run("invalid exclude pattern", func(t *testing.T) {
		root := setup(t)

		_, err := NewLocalSourceFSAdapter().Find([]m.Path{m.Path(root)}, []string{"("})
		assert.ErrorContains(t, err, "invalid exclude pattern")
	})

	t.Run("missing root", func(t *testing.T) {
		_, err := NewLocalSourceFSAdapter().Find([]m.Path{"does/not/exist"}, nil)
		assert.ErrorContains(t, err, "root path error")
	})
}

func TestParseRootPath(t *testing.T) {
	tests := []struct {
		in        string
		path      string
		recursive bool
	}{
		{"./...", ".", true},
		{"...", ".", true},
		{"cases/...", "cases", true},
		{"cases", "cases", false},
	}

	for _, tt := range tests {
		path, recursive := parseRootPath(tt.in)
		assert.Equal(t, tt.path, path, tt.in)
		assert.Equal(t, tt.recursive, recursive, tt.in)
	}
}

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("failed to create dir %s: %v", path, err)
	}
}

func containsPath(paths []string, target string) bool {
	for _, p := range paths {
		if p == target {
			return true
		}
	}

	return false
}
