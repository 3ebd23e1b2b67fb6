package library

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/andri/asteria/pkg/world"
)

// Memory holds game scripts in memory only. Nothing survives the process.
type Memory struct {
	mu    sync.RWMutex
	games map[string][]byte
}

// NewMemory returns an empty in-memory library.
func NewMemory() *Memory {
	return &Memory{games: make(map[string][]byte)}
}

// Save keeps the script of result under its executable file name.
func (m *Memory) Save(_ world.GenerationRequest, result *world.GenerationResult) (Entry, error) {
	if result == nil {
		return Entry{}, errors.New("no generation result to save")
	}
	name, err := CleanName(result.ExecutableFile)
	if err != nil {
		return Entry{}, err
	}

	m.mu.Lock()
	m.games[name] = []byte(result.PythonScript)
	m.mu.Unlock()

	return Entry{File: name, Size: int64(len(result.PythonScript)), ModTime: time.Now()}, nil
}

// Script returns the named script.
func (m *Memory) Script(name string) ([]byte, error) {
	name, err := CleanName(name)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	script, ok := m.games[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return script, nil
}
