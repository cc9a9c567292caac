package discover

import (
	"path/filepath"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func project(t *testing.T) billy.Filesystem {
	t.Helper()
	fsys := memfs.New()
	for _, path := range []string{
		"game/player.gd",
		"game/enemy.GD",
		"game/level.tscn",
		"game/ui/hud.gd",
		"game/addons/plugin/plugin.gd",
		"game/.godot/editor/cache.gd",
		"game/.hidden.gd",
		"game/legacy/old.gd",
	} {
		require.NoError(t, util.WriteFile(fsys, path, []byte("extends Node\n"), 0o644))
	}
	return fsys
}

func TestFiles_Defaults(t *testing.T) {
	t.Parallel()
	got, err := Files(project(t), "game", Options{
		Extensions: []string{".gd"},
		Exclude:    []string{"addons", ".godot"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"game/enemy.GD",
		"game/legacy/old.gd",
		"game/player.gd",
		"game/ui/hud.gd",
	}, got)
}

func TestFiles_RelativeExcludePattern(t *testing.T) {
	t.Parallel()
	got, err := Files(project(t), "game", Options{
		Extensions: []string{".gd"},
		Exclude:    []string{"addons", "legacy/*", "ui"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"game/enemy.GD", "game/player.gd"}, got)
}

func TestFiles_Hidden(t *testing.T) {
	t.Parallel()
	got, err := Files(project(t), "game", Options{Extensions: []string{".gd"}, Hidden: true})
	require.NoError(t, err)
	assert.Contains(t, got, "game/.hidden.gd")
	assert.Contains(t, got, "game/.godot/editor/cache.gd")
	assert.Contains(t, got, "game/addons/plugin/plugin.gd")
}

func TestFiles_SingleFileRoot(t *testing.T) {
	t.Parallel()
	got, err := Files(project(t), "game/level.tscn", Options{Extensions: []string{".gd"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"game/level.tscn"}, got)
}

func TestFiles_MissingRoot(t *testing.T) {
	t.Parallel()
	_, err := Files(project(t), "nowhere", Options{Extensions: []string{".gd"}})
	assert.ErrorContains(t, err, "discover")
}

func TestAll_Dedup(t *testing.T) {
	t.Parallel()
	got, err := All(project(t), []string{"game/ui", "game/player.gd", "game/ui/hud.gd"}, Options{Extensions: []string{".gd"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"game/ui/hud.gd", "game/player.gd"}, got)
}

func TestFiles_HostFilesystem(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	fsys := OS()
	require.NoError(t, util.WriteFile(fsys, filepath.Join(dir, "scripts", "main.gd"), []byte("extends Node\n"), 0o644))
	require.NoError(t, util.WriteFile(fsys, filepath.Join(dir, "README.md"), []byte("#\n"), 0o644))

	got, err := Files(fsys, dir, Options{Extensions: []string{".gd"}})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "scripts", "main.gd")}, got)
	assert.Equal(t, "/", fsys.Root())
}
