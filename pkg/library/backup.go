package library

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const backupTimeFormat = "20060102T150405.000000000Z"

// backupFile copies an existing file aside before it is overwritten. It
// returns the backup path, or "" when there was nothing to keep.
func (s *Store) backupFile(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("game path is a directory: %s", path)
	}

	if !s.opts.Backup {
		s.log.Warn("Overwriting game without backup (backup disabled in config)", "path", path)
		return "", nil
	}

	timestamp := s.opts.Now().UTC().Format(backupTimeFormat)
	backupName := fmt.Sprintf("%s.backup.%s", filepath.Base(path), timestamp)

	backupPath := filepath.Join(filepath.Dir(path), backupName)
	if s.opts.BackupDir != "" {
		if err := os.MkdirAll(s.opts.BackupDir, 0o755); err != nil {
			return "", fmt.Errorf("create backup directory %s: %w", s.opts.BackupDir, err)
		}
		backupPath = filepath.Join(s.opts.BackupDir, backupName)
	}

	if err := copyFile(backupPath, path, info.Mode().Perm()); err != nil {
		return "", err
	}

	s.log.Info("Backed up existing game to "+backupPath, "path", path, "backup_path", backupPath)
	return backupPath, nil
}

func copyFile(dst, src string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("create backup file %s: %w", dst, err)
	}
	defer func() {
		_ = out.Close()
	}()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("copy %s to backup %s: %w", src, dst, err)
	}
	if err := out.Sync(); err != nil {
		return fmt.Errorf("sync backup file %s: %w", dst, err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close backup file %s: %w", dst, err)
	}

	return nil
}
