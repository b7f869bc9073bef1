package fsutils

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestSizeText(t *testing.T) {
	tests := []struct {
		size     int64
		expected string
	}{
		{0, "0 B"},
		{500, "500 B"},
		{1024, "1.0 KiB"},
		{1536, "1.5 KiB"},
		{1024 * 1024, "1.0 MiB"},
		{1024*1024 + 512*1024, "1.5 MiB"},
		{1024 * 1024 * 1024, "1.0 GiB"},
		{-5, "0 B"},
	}
	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, SizeText(tt.size))
		})
	}
}

func TestPermissionsText(t *testing.T) {
	t.Run("dir", func(t *testing.T) {
		assert.Equal(t, "drwxr-xr-x", PermissionsText(fs.ModeDir|0o755, true))
	})
	t.Run("file", func(t *testing.T) {
		assert.Equal(t, "-rw-r--r--", PermissionsText(0o644, true))
	})
	t.Run("user_only", func(t *testing.T) {
		assert.Equal(t, "-rwx------", PermissionsText(0o700, true))
	})
	t.Run("symlink", func(t *testing.T) {
		assert.Equal(t, "lrwxrwxrwx", PermissionsText(fs.ModeSymlink|0o777, true))
	})
	t.Run("unknown", func(t *testing.T) {
		assert.Equal(t, NoPermissions, PermissionsText(0o755, false))
	})
}

func TestDirExists(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("exists", func(t *testing.T) {
		exists, err := DirExists(tmpDir)
		assert.NoError(t, err)
		assert.True(t, exists)
	})

	t.Run("not_exists", func(t *testing.T) {
		exists, err := DirExists(filepath.Join(tmpDir, "non_existent"))
		assert.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("is_file", func(t *testing.T) {
		filePath := filepath.Join(tmpDir, "file.txt")
		err := os.WriteFile(filePath, []byte("test"), 0644)
		assert.NoError(t, err)

		exists, err := DirExists(filePath)
		assert.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestExpandHome(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "", ExpandHome(""))
	})
	t.Run("no_tilde", func(t *testing.T) {
		assert.Equal(t, "/some/path", ExpandHome("/some/path"))
	})
	t.Run("only_tilde", func(t *testing.T) {
		home, _ := os.UserHomeDir()
		assert.Equal(t, home, ExpandHome("~"))
	})
	t.Run("tilde_with_path", func(t *testing.T) {
		home, _ := os.UserHomeDir()
		assert.Equal(t, filepath.Join(home, "abc"), ExpandHome("~/abc"))
	})
}

func TestCanonicalize(t *testing.T) {
	dir := t.TempDir()
	resolved, err := filepath.EvalSymlinks(dir)
	assert.NoError(t, err)

	t.Run("existing", func(t *testing.T) {
		assert.Equal(t, resolved, Canonicalize(dir))
	})
	t.Run("dot_segments", func(t *testing.T) {
		assert.Equal(t, resolved, Canonicalize(filepath.Join(dir, "x", "..")))
	})
	t.Run("missing_falls_back_to_abs", func(t *testing.T) {
		missing := filepath.Join(resolved, "missing")
		assert.Equal(t, missing, Canonicalize(missing))
	})
}

func TestIsWithin(t *testing.T) {
	root := filepath.FromSlash("/a/b")
	assert.True(t, IsWithin(root, root))
	assert.True(t, IsWithin(filepath.Join(root, "c"), root))
	assert.False(t, IsWithin(filepath.FromSlash("/a"), root))
	assert.False(t, IsWithin(filepath.FromSlash("/a/bc"), root))
	assert.False(t, IsWithin(filepath.FromSlash("/a/..b"), root))
}

type sample struct {
	Name  string `json:"name" yaml:"name" toml:"name"`
	Count int    `json:"count" yaml:"count" toml:"count"`
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name, content string) string {
		p := filepath.Join(dir, name)
		assert.NoError(t, os.WriteFile(p, []byte(content), 0644))
		return p
	}

	t.Run("json", func(t *testing.T) {
		var s sample
		err := ReadJSONFile(write("a.json", `{"name":"x","count":2}`), true, &s)
		assert.NoError(t, err)
		assert.Equal(t, sample{Name: "x", Count: 2}, s)
	})
	t.Run("yaml", func(t *testing.T) {
		var s sample
		err := ReadYAMLFile(write("a.yaml", "name: y\ncount: 3\n"), true, &s)
		assert.NoError(t, err)
		assert.Equal(t, sample{Name: "y", Count: 3}, s)
	})
	t.Run("toml", func(t *testing.T) {
		var s sample
		err := ReadTOMLFile(write("a.toml", "name = \"z\"\ncount = 4\n"), true, &s)
		assert.NoError(t, err)
		assert.Equal(t, sample{Name: "z", Count: 4}, s)
	})
	t.Run("empty_yaml", func(t *testing.T) {
		var s sample
		err := ReadYAMLFile(write("empty.yaml", ""), true, &s)
		assert.NoError(t, err)
		assert.Equal(t, sample{}, s)
	})
	t.Run("missing_not_required", func(t *testing.T) {
		var s sample
		err := ReadYAMLFile(filepath.Join(dir, "nope.yaml"), false, &s)
		assert.NoError(t, err)
	})
	t.Run("missing_required", func(t *testing.T) {
		var s sample
		err := ReadYAMLFile(filepath.Join(dir, "nope.yaml"), true, &s)
		assert.Error(t, err)
	})
	t.Run("invalid", func(t *testing.T) {
		var s sample
		err := ReadJSONFile(write("bad.json", "{"), true, &s)
		assert.Error(t, err)
	})
}
