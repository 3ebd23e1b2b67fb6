// Package library keeps generated games on disk: one script per game with a
// metadata file beside it.
package library

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/andri/asteria/internal/logger"
	"github.com/andri/asteria/pkg/world"
)

const (
	// MetadataVersion is the current metadata file version.
	MetadataVersion = "v1"

	// ScriptExt marks game scripts in the library directory.
	ScriptExt = ".py"

	metadataSuffix = "_metadata.json"
)

// ErrNotFound is returned for games the library does not hold.
var ErrNotFound = errors.New("game not found")

// Metadata describes a saved game.
type Metadata struct {
	Version     string         `json:"version" yaml:"version"`
	File        string         `json:"file" yaml:"file"`
	Title       string         `json:"title" yaml:"title"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Theme       string         `json:"theme,omitempty" yaml:"theme,omitempty"`
	Category    string         `json:"imageCategory,omitempty" yaml:"imageCategory,omitempty"`
	GameMode    world.GameMode `json:"gameMode,omitempty" yaml:"gameMode,omitempty"`
	Settings    world.Settings `json:"settings" yaml:"settings"`
	CreatedAt   time.Time      `json:"createdAt" yaml:"createdAt"`
}

// Entry is one game in the library. Meta is nil when the metadata file is
// missing or unreadable; MetaErr holds the read failure.
type Entry struct {
	File    string    `json:"file" yaml:"file"`
	Path    string    `json:"path" yaml:"path"`
	Size    int64     `json:"size" yaml:"size"`
	ModTime time.Time `json:"modTime" yaml:"modTime"`
	Meta    *Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	MetaErr error     `json:"-" yaml:"-"`
}

// Title returns the saved title, or the file name without its extension.
func (e Entry) Title() string {
	if e.Meta != nil && strings.TrimSpace(e.Meta.Title) != "" {
		return e.Meta.Title
	}
	return strings.TrimSuffix(e.File, filepath.Ext(e.File))
}

// Options configures a Store.
type Options struct {
	Dir       string
	Backup    bool
	BackupDir string
	Now       func() time.Time
	Logger    *logger.Logger
}

// Store reads and writes games in one directory. It is safe for concurrent use.
type Store struct {
	opts Options
	dir  string
	log  *logger.Logger

	mu sync.Mutex
}

// Open returns a store rooted at opts.Dir. The directory is created on the
// first save, not here.
func Open(opts Options) (*Store, error) {
	dir, err := ResolveDir(opts.Dir)
	if err != nil {
		return nil, err
	}
	if opts.BackupDir != "" {
		if opts.BackupDir, err = ResolveDir(opts.BackupDir); err != nil {
			return nil, err
		}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logger.Discard()
	}

	return &Store{
		opts: opts,
		dir:  dir,
		log:  opts.Logger.Component("library").With("dir", dir),
	}, nil
}

// Dir returns the resolved library directory.
func (s *Store) Dir() string { return s.dir }

// Save writes the script and metadata of result, backing up a game of the
// same name first when backups are enabled.
func (s *Store) Save(req world.GenerationRequest, result *world.GenerationResult) (Entry, error) {
	if result == nil {
		return Entry{}, errors.New("no generation result to save")
	}
	name, err := CleanName(result.ExecutableFile)
	if err != nil {
		return Entry{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return Entry{}, fmt.Errorf("create library directory %s: %w", s.dir, err)
	}

	scriptPath := filepath.Join(s.dir, name)
	metaPath := filepath.Join(s.dir, metadataName(name))
	for _, path := range []string{scriptPath, metaPath} {
		if _, err := s.backupFile(path); err != nil {
			return Entry{}, err
		}
	}

	if err := writeFileAtomic(scriptPath, []byte(result.PythonScript)); err != nil {
		return Entry{}, err
	}

	meta := Metadata{
		Version:     MetadataVersion,
		File:        name,
		Title:       result.Title,
		Description: result.Description,
		Theme:       req.Theme(),
		Category:    req.ImageCategory,
		GameMode:    req.GameMode,
		Settings:    req.Settings,
		CreatedAt:   s.opts.Now().UTC(),
	}
	if err := WriteMetadataFile(metaPath, meta); err != nil {
		return Entry{}, err
	}

	s.log.Info("game saved", "file", name, "title", meta.Title)
	return s.entry(name, &meta, nil)
}

// Script returns the contents of the named game.
func (s *Store) Script(name string) ([]byte, error) {
	name, err := CleanName(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("read game %s: %w", name, err)
	}
	return data, nil
}

// Get returns the named game with its metadata.
func (s *Store) Get(name string) (Entry, error) {
	name, err := CleanName(name)
	if err != nil {
		return Entry{}, err
	}
	meta, metaErr := s.readMetadata(name)
	return s.entry(name, meta, metaErr)
}

// List returns every script in the library, sorted by file name. A missing
// directory is an empty library.
func (s *Store) List() ([]Entry, error) {
	dirents, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read library directory %s: %w", s.dir, err)
	}

	entries := make([]Entry, 0, len(dirents))
	for _, d := range dirents {
		if d.IsDir() || !strings.HasSuffix(d.Name(), ScriptExt) || strings.HasPrefix(d.Name(), ".") {
			continue
		}
		meta, metaErr := s.readMetadata(d.Name())
		entry, err := s.entry(d.Name(), meta, metaErr)
		if err != nil {
			// Removed between ReadDir and Stat.
			if errors.Is(err, ErrNotFound) {
				continue
			}
			return nil, err
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].File < entries[j].File
	})
	return entries, nil
}

func (s *Store) readMetadata(name string) (*Metadata, error) {
	meta, err := ParseMetadataFile(filepath.Join(s.dir, metadataName(name)))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		s.log.Warn("unreadable game metadata", "file", name, "error", err)
		return nil, err
	}
	return meta, nil
}

func (s *Store) entry(name string, meta *Metadata, metaErr error) (Entry, error) {
	path := filepath.Join(s.dir, name)
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return Entry{}, fmt.Errorf("stat game %s: %w", name, err)
	}
	return Entry{
		File:    name,
		Path:    path,
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Meta:    meta,
		MetaErr: metaErr,
	}, nil
}

func metadataName(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + metadataSuffix
}
