package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPortableHomeWins(t *testing.T) {
	t.Setenv("BPSCHEMA_HOME", "/opt/bpschema")
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")

	assert.Equal(t, filepath.Join("/opt/bpschema", "config"), ConfigDir())
	assert.Equal(t, filepath.Join("/opt/bpschema", "state"), StateDir())
	assert.Equal(t, filepath.Join("/opt/bpschema", "config", "bpschema.yml"), GlobalConfigFile())
}

func TestXDGDirectories(t *testing.T) {
	t.Setenv("BPSCHEMA_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_STATE_HOME", "/xdg/state")

	assert.Equal(t, filepath.Join("/xdg/config", "bpschema"), ConfigDir())
	assert.Equal(t, filepath.Join("/xdg/state", "bpschema", "bpschema.log"), DefaultLogFile())
}

func TestHomeFallback(t *testing.T) {
	home := t.TempDir()
	t.Setenv("BPSCHEMA_HOME", "")
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, ".config", "bpschema"), ConfigDir())
	assert.Equal(t, filepath.Join(home, ".local", "state", "bpschema"), StateDir())
}
