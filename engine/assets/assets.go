package assets

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/prismgfx/prism/engine/core"
)

// ShaderInfo tracks one shader stage file under the watched directory.
type ShaderInfo struct {
	Path       string
	Stage      ShaderStage
	LastLoaded time.Time
}

type ShaderStage uint8

const (
	ShaderStageNone ShaderStage = iota
	ShaderStageVertex
	ShaderStageFragment
	ShaderStageBinary
)

// Manager indexes shader sources on disk and watches them for edits. A write
// or create under the watched tree fires EVENT_CODE_SHADER_SOURCE_CHANGED so
// interested systems can rebuild pipelines while the application runs.
type Manager struct {
	dir     string
	shaders map[string]ShaderInfo

	mutex sync.RWMutex

	done     chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
}

func NewManager() (*Manager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Manager{
		shaders:  make(map[string]ShaderInfo),
		fsnotify: fsWatch,
		done:     make(chan struct{}),
	}, nil
}

// Initialize scans shaderDir, indexes every shader stage file found and
// starts watching the tree for changes.
func (m *Manager) Initialize(shaderDir string) error {
	m.dir = shaderDir

	go m.start()

	if err := m.watchRecursive(shaderDir); err != nil {
		return fmt.Errorf("failed to watch shader directory %s: %w", shaderDir, err)
	}
	return nil
}

func (m *Manager) Shutdown() {
	if m.isClosed {
		return
	}
	m.isClosed = true
	close(m.done)
}

// LoadShader reads the named shader stage file relative to the watched
// directory. The bytes are handed to the factory as-is; compilation happens
// in the backend.
func (m *Manager) LoadShader(name string) ([]byte, error) {
	path := filepath.Join(m.dir, name)

	m.mutex.RLock()
	info, exists := m.shaders[path]
	m.mutex.RUnlock()
	if !exists {
		return nil, fmt.Errorf("shader not found: %s", path)
	}

	data, err := os.ReadFile(info.Path)
	if err != nil {
		return nil, err
	}

	m.mutex.Lock()
	info.LastLoaded = time.Now()
	m.shaders[path] = info
	m.mutex.Unlock()

	return data, nil
}

// Shaders lists the indexed shader paths, relative to the watched directory.
func (m *Manager) Shaders() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	names := make([]string, 0, len(m.shaders))
	for path := range m.shaders {
		if rel, err := filepath.Rel(m.dir, path); err == nil {
			names = append(names, rel)
		}
	}
	return names
}

func (m *Manager) start() {
	for {
		select {
		case e := <-m.fsnotify.Events:
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					m.watchRecursive(e.Name)
				}
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				if m.indexFile(e.Name) {
					core.EventFire(core.EventContext{
						Type: core.EVENT_CODE_SHADER_SOURCE_CHANGED,
						Data: &core.ShaderSourceEvent{Path: e.Name},
					})
				}
			}
			if e.Op&fsnotify.Remove != 0 {
				m.removeShader(e.Name)
				m.fsnotify.Remove(e.Name)
			}

		case err := <-m.fsnotify.Errors:
			if err != nil {
				core.LogError("shader watcher: %s", err.Error())
			}

		case <-m.done:
			m.fsnotify.Close()
			return
		}
	}
}

// watchRecursive adds all directories under path to the watch list and
// indexes the files already present.
func (m *Manager) watchRecursive(path string) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return m.fsnotify.Add(walkPath)
		}
		m.indexFile(walkPath)
		return nil
	})
}

func (m *Manager) indexFile(path string) bool {
	stage := determineShaderStage(path)
	if stage == ShaderStageNone {
		return false
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.shaders[path] = ShaderInfo{
		Path:       path,
		Stage:      stage,
		LastLoaded: time.Now(),
	}
	return true
}

func (m *Manager) removeShader(path string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.shaders, path)
}

func determineShaderStage(path string) ShaderStage {
	switch filepath.Ext(path) {
	case ".vert":
		return ShaderStageVertex
	case ".frag":
		return ShaderStageFragment
	case ".spv":
		return ShaderStageBinary
	default:
		return ShaderStageNone
	}
}
