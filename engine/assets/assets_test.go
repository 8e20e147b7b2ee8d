package assets

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prismgfx/prism/engine/core"
)

func newTestManager(t *testing.T, dir string) *Manager {
	t.Helper()
	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Initialize(dir))
	t.Cleanup(m.Shutdown)
	return m
}

func TestIndexesExistingShaders(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quad.vert"), []byte("vert"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quad.frag"), []byte("frag"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0o644))

	m := newTestManager(t, dir)

	assert.ElementsMatch(t, []string{"quad.vert", "quad.frag"}, m.Shaders())
}

func TestLoadShaderReturnsFileContents(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "quad.vert"), []byte("#version 450"), 0o644))

	m := newTestManager(t, dir)

	data, err := m.LoadShader("quad.vert")
	require.NoError(t, err)
	assert.Equal(t, []byte("#version 450"), data)

	_, err = m.LoadShader("missing.frag")
	assert.Error(t, err)
}

func TestWriteFiresShaderSourceChanged(t *testing.T) {
	core.EventSystemInitialize()
	defer core.EventSystemShutdown()

	dir := t.TempDir()
	m := newTestManager(t, dir)

	var mu sync.Mutex
	var changed []string
	core.EventRegister(core.EVENT_CODE_SHADER_SOURCE_CHANGED, nil, func(ctx core.EventContext) {
		mu.Lock()
		defer mu.Unlock()
		changed = append(changed, ctx.Data.(*core.ShaderSourceEvent).Path)
	})

	path := filepath.Join(dir, "quad.frag")
	require.NoError(t, os.WriteFile(path, []byte("frag"), 0o644))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(changed) > 0
	}, 2*time.Second, 10*time.Millisecond)

	mu.Lock()
	assert.Contains(t, changed, path)
	mu.Unlock()

	assert.Contains(t, m.Shaders(), "quad.frag")
}
