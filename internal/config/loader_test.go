package config

import (
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigPath = "/home/user/.config/ripgrep-gui/config.json"

// MockFileSystem implements FileSystem for testing.
type MockFileSystem struct {
	HomeDir     string
	HomeDirErr  error
	Files       map[string][]byte
	Dirs        map[string]bool
	ReadFileErr error
	WriteErr    error
}

func (m *MockFileSystem) UserHomeDir() (string, error) {
	return m.HomeDir, m.HomeDirErr
}

func (m *MockFileSystem) ReadFile(path string) ([]byte, error) {
	if m.ReadFileErr != nil {
		return nil, m.ReadFileErr
	}
	data, ok := m.Files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

func (m *MockFileSystem) MkdirAll(path string, perm os.FileMode) error {
	if m.Dirs == nil {
		m.Dirs = make(map[string]bool)
	}
	m.Dirs[path] = true
	return nil
}

func (m *MockFileSystem) WriteFile(path string, data []byte, perm os.FileMode) error {
	if m.WriteErr != nil {
		return m.WriteErr
	}
	if m.Files == nil {
		m.Files = make(map[string][]byte)
	}
	m.Files[path] = data
	return nil
}

// --- HAPPY PATH TESTS ---

func TestLoad_NoConfigFile_ReturnsDefaults(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files:   map[string][]byte{},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, "rg", cfg.Search.RipgrepPath)
	assert.Equal(t, 10000, cfg.Search.MaxResults)
	assert.Equal(t, 100, cfg.History.MaxEntries)
	assert.Equal(t, 30, cfg.History.MaxAgeDays)
}

func TestLoad_PartialOverride_MergesWithDefaults(t *testing.T) {
	configJSON := `{"search": {"max_results": 50, "path_style": "drive"}}`
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			testConfigPath: []byte(configJSON),
		},
	}
	loader := NewLoaderWithFS(fs)

	cfg, err := loader.Load()

	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Search.MaxResults)
	assert.Equal(t, PathStyleDrive, cfg.Search.PathStyle)
	assert.Equal(t, "rg", cfg.Search.RipgrepPath)
	assert.Equal(t, 100, cfg.History.MaxEntries)
}

func TestLoad_UserSection(t *testing.T) {
	configJSON := `{"default_search_path": "/srv", "user": {"dark_mode": true, "language": "zh-CN"}}`
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			testConfigPath: []byte(configJSON),
		},
	}

	cfg, err := NewLoaderWithFS(fs).Load()

	require.NoError(t, err)
	assert.Equal(t, "/srv", cfg.DefaultSearchPath)
	assert.True(t, cfg.User.DarkMode)
	assert.Equal(t, "zh-CN", cfg.User.Language)
}

// --- UNHAPPY PATH TESTS ---

func TestLoad_MalformedJSON_ReturnsError(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			testConfigPath: []byte(`{invalid json`),
		},
	}

	cfg, err := NewLoaderWithFS(fs).Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "invalid")
}

func TestLoad_PermissionDenied_ReturnsError(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir:     "/home/user",
		ReadFileErr: os.ErrPermission,
	}

	cfg, err := NewLoaderWithFS(fs).Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.True(t, errors.Is(err, os.ErrPermission))
}

func TestLoad_HomeDirError_ReturnsDefaults(t *testing.T) {
	fs := &MockFileSystem{
		HomeDirErr: errors.New("homeless"),
	}

	cfg, err := NewLoaderWithFS(fs).Load()

	require.NoError(t, err)
	assert.Equal(t, 10000, cfg.Search.MaxResults)
}

func TestLoad_InvalidValue_FailsValidation(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			testConfigPath: []byte(`{"search": {"max_results": 0}}`),
		},
	}

	cfg, err := NewLoaderWithFS(fs).Load()

	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "max_results")
}

// --- INIT TESTS ---

func TestInit_WritesDefaultsWhenMissing(t *testing.T) {
	fs := &MockFileSystem{HomeDir: "/home/user"}
	loader := NewLoaderWithFS(fs)

	path, created, err := loader.Init()

	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, testConfigPath, path)
	assert.True(t, fs.Dirs["/home/user/.config/ripgrep-gui"])

	var written Config
	require.NoError(t, json.Unmarshal(fs.Files[testConfigPath], &written))
	assert.Equal(t, "/home/user", written.DefaultSearchPath)
	assert.Equal(t, "/home/user/.config/ripgrep-gui/history", written.History.Dir)

	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "/home/user", cfg.DefaultSearchPath)
}

func TestInit_KeepsExistingFile(t *testing.T) {
	fs := &MockFileSystem{
		HomeDir: "/home/user",
		Files: map[string][]byte{
			testConfigPath: []byte(`{"search": {"max_results": 5}}`),
		},
	}

	_, created, err := NewLoaderWithFS(fs).Init()

	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, `{"search": {"max_results": 5}}`, string(fs.Files[testConfigPath]))
}

func TestInit_WriteError(t *testing.T) {
	fs := &MockFileSystem{HomeDir: "/home/user", WriteErr: os.ErrPermission}

	_, created, err := NewLoaderWithFS(fs).Init()

	assert.False(t, created)
	assert.ErrorIs(t, err, os.ErrPermission)
}

func TestSave_RoundTrip(t *testing.T) {
	fs := &MockFileSystem{HomeDir: "/home/user"}
	loader := NewLoaderWithFS(fs)

	cfg := DefaultConfig()
	cfg.History.Dir = "/data/history"
	cfg.Search.PathStyle = PathStylePlain

	path, err := loader.Save(cfg)
	require.NoError(t, err)
	assert.Equal(t, testConfigPath, path)
	assert.True(t, fs.Dirs["/home/user/.config/ripgrep-gui"])

	loaded, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSave_RejectsInvalidConfig(t *testing.T) {
	fs := &MockFileSystem{HomeDir: "/home/user"}
	loader := NewLoaderWithFS(fs)

	cfg := DefaultConfig()
	cfg.Bridge.MaxConcurrent = 0

	_, err := loader.Save(cfg)
	require.Error(t, err)
	assert.Empty(t, fs.Files, "invalid config must not be written")
}

func TestSave_WriteError(t *testing.T) {
	fs := &MockFileSystem{HomeDir: "/home/user", WriteErr: errors.New("read-only")}
	_, err := NewLoaderWithFS(fs).Save(DefaultConfig())
	assert.ErrorContains(t, err, "read-only")
}
