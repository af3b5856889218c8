// Package assets loads image sources from an ofs.FileSystem. Images are
// decoded by a pool of worker goroutines so that loading can overlap with
// window and renderer setup.
//
package assets

import (
	"path"
	"strings"
	"sync"

	"github.com/db47h/ofs"
	"github.com/db47h/texquad"
	"github.com/pkg/errors"
)

var errMissingAsset = errors.New("asset not found")

type errorList map[string]error

func (e errorList) Error() string {
	var sb strings.Builder
	i := 0
	for k, err := range e {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(k)
		sb.Write([]byte{':', ' '})
		sb.WriteString(err.Error())
		i++
	}
	return sb.String()
}

// Manager loads and caches image sources.
//
type Manager struct {
	fs     ofs.FileSystem
	dir    string
	m      sync.Mutex
	cond   *sync.Cond
	errs   errorList
	assets map[string]texquad.Source
	ps     map[string]struct{}
	cs     chan func()
	wg     sync.WaitGroup
}

// NewManager returns a new Manager loading files from the given directory in
// fs, with the given number of workers. At least one worker is started.
//
func NewManager(fs ofs.FileSystem, dir string, workers int) *Manager {
	if workers < 1 {
		workers = 1
	}
	m := &Manager{
		fs:     fs,
		dir:    dir,
		errs:   make(errorList),
		assets: make(map[string]texquad.Source),
		ps:     make(map[string]struct{}),
		cs:     make(chan func(), 64),
	}
	m.cond = sync.NewCond(&m.m)
	m.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer m.wg.Done()
			for f := range m.cs {
				f() // f must remove itself from ps
			}
		}()
	}
	return m
}

func (m *Manager) loadStart(name string) (ok bool) {
	m.m.Lock()
	defer m.m.Unlock()
	if _, ok := m.ps[name]; ok {
		return false
	}
	if _, ok := m.assets[name]; ok {
		return false
	}
	if _, ok := m.errs[name]; ok {
		return false
	}
	m.ps[name] = struct{}{}
	return true
}

func (m *Manager) loadDone(name string, src texquad.Source, err error) {
	m.m.Lock()
	if err != nil {
		m.errs[name] = err
	} else {
		m.assets[name] = src
	}
	delete(m.ps, name)
	m.cond.Broadcast()
	m.m.Unlock()
}

func (m *Manager) load(name string) (texquad.Source, error) {
	f, err := m.fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}

// Preload starts loading the named image in the background.
//
func (m *Manager) Preload(name string) {
	name = path.Join(m.dir, name)
	if !m.loadStart(name) {
		return
	}
	m.cs <- func() {
		src, err := m.load(name)
		m.loadDone(name, src, err)
	}
}

// Source returns the named image source, waiting for it to load if it has
// been preloaded. Images not preloaded are loaded synchronously.
//
func (m *Manager) Source(name string) (texquad.Source, error) {
	name = path.Join(m.dir, name)
	if m.loadStart(name) {
		src, err := m.load(name)
		m.loadDone(name, src, err)
	}
	m.m.Lock()
	defer m.m.Unlock()
	for {
		if src, ok := m.assets[name]; ok {
			return src, nil
		}
		if _, ok := m.ps[name]; !ok {
			if err, ok := m.errs[name]; ok {
				return nil, errors.Wrap(err, name)
			}
			return nil, errors.Wrap(errMissingAsset, name)
		}
		m.cond.Wait()
	}
}

// Discard removes the named source from the cache, along with any load error.
//
func (m *Manager) Discard(name string) {
	name = path.Join(m.dir, name)
	m.m.Lock()
	delete(m.assets, name)
	delete(m.errs, name)
	m.m.Unlock()
}

// QueueSize returns the number of images being loaded.
//
func (m *Manager) QueueSize() int {
	m.m.Lock()
	s := len(m.ps)
	m.m.Unlock()
	return s
}

// Errors returns all load errors, or nil.
//
func (m *Manager) Errors() error {
	m.m.Lock()
	defer m.m.Unlock()
	if len(m.errs) == 0 {
		return nil
	}
	el := make(errorList, len(m.errs))
	for k, v := range m.errs {
		el[k] = v
	}
	return el
}

// Close waits for pending loads to complete and stops the workers. Preload
// must not be called after Close.
//
func (m *Manager) Close() {
	close(m.cs)
	m.wg.Wait()
}
