package library

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/andri/asteria/pkg/world"
)

type metadataJSON struct {
	Version     *string         `json:"version"`
	File        *string         `json:"file"`
	Title       *string         `json:"title"`
	Description *string         `json:"description"`
	Theme       *string         `json:"theme"`
	Category    *string         `json:"imageCategory"`
	GameMode    *string         `json:"gameMode"`
	Settings    *world.Settings `json:"settings"`
	CreatedAt   *string         `json:"createdAt"`
}

// ParseMetadata parses game metadata from JSON bytes.
func ParseMetadata(data []byte) (*Metadata, error) {
	return parseMetadata(data, "")
}

// ParseMetadataFile parses a metadata file from disk.
func ParseMetadataFile(path string) (*Metadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read game metadata %s: %w", path, err)
	}
	return parseMetadata(data, path)
}

// WriteMetadataFile writes metadata to disk as indented JSON.
func WriteMetadataFile(path string, meta Metadata) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("metadata file path is required")
	}

	normalized := meta
	if normalized.Version == "" {
		normalized.Version = MetadataVersion
	}
	if normalized.Version != MetadataVersion {
		return fmt.Errorf("unsupported metadata version: %s", normalized.Version)
	}
	if strings.TrimSpace(normalized.File) == "" {
		return errors.New("metadata file name is required")
	}
	if normalized.CreatedAt.IsZero() {
		normalized.CreatedAt = time.Now().UTC()
	}

	payload, err := json.MarshalIndent(normalized, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal game metadata: %w", err)
	}
	payload = append(payload, '\n')

	return writeFileAtomic(path, payload)
}

func parseMetadata(data []byte, path string) (*Metadata, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &ParseError{Path: path, Err: errors.New("empty metadata file")}
	}

	var raw metadataJSON
	decoder := json.NewDecoder(bytes.NewReader(data))
	if err := decoder.Decode(&raw); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return nil, &ParseError{Path: path, Err: errors.New("unexpected trailing data")}
	}

	version := ""
	if raw.Version != nil {
		version = strings.TrimSpace(*raw.Version)
	}
	if version == "" {
		return nil, &ValidationError{Path: path, Field: "version", Message: "missing"}
	}
	if version != MetadataVersion {
		return nil, &ValidationError{Path: path, Field: "version", Message: fmt.Sprintf("unsupported value %q", version)}
	}
	if raw.File == nil || strings.TrimSpace(*raw.File) == "" {
		return nil, &ValidationError{Path: path, Field: "file", Message: "missing"}
	}

	meta := &Metadata{
		Version:     version,
		File:        *raw.File,
		Title:       deref(raw.Title),
		Description: deref(raw.Description),
		Theme:       deref(raw.Theme),
		Category:    deref(raw.Category),
	}

	if raw.GameMode != nil && *raw.GameMode != "" {
		mode, err := world.ParseGameMode(*raw.GameMode)
		if err != nil {
			return nil, &ValidationError{Path: path, Field: "gameMode", Message: err.Error()}
		}
		meta.GameMode = mode
	}
	if raw.Settings != nil {
		if err := raw.Settings.Validate(); err != nil {
			return nil, &ValidationError{Path: path, Field: "settings", Message: err.Error()}
		}
		meta.Settings = *raw.Settings
	} else {
		meta.Settings = world.DefaultSettings()
	}
	if raw.CreatedAt != nil && strings.TrimSpace(*raw.CreatedAt) != "" {
		created, err := time.Parse(time.RFC3339Nano, *raw.CreatedAt)
		if err != nil {
			return nil, &ValidationError{Path: path, Field: "createdAt", Message: "invalid RFC3339 timestamp"}
		}
		meta.CreatedAt = created
	}

	return meta, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func writeFileAtomic(path string, payload []byte) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create library directory %s: %w", dir, err)
		}
	}

	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp.")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	tmpName := tmpFile.Name()
	cleanup := func() { _ = os.Remove(tmpName) }

	if _, err := tmpFile.Write(payload); err != nil {
		_ = tmpFile.Close()
		cleanup()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmpFile.Sync(); err != nil {
		_ = tmpFile.Close()
		cleanup()
		return fmt.Errorf("sync %s: %w", path, err)
	}
	if err := tmpFile.Close(); err != nil {
		cleanup()
		return fmt.Errorf("close temp file for %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		cleanup()
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		cleanup()
		return fmt.Errorf("replace %s: %w", path, err)
	}

	return nil
}
