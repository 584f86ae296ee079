// Package fileutils provides the filesystem operations the converter performs on
// statement files. Everything goes through an afero.Fs so tests can run against
// an in-memory filesystem and inject failures.
package fileutils

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// DefaultBackupSuffix is appended to a statement file name while it is being rewritten.
const DefaultBackupSuffix = ".bak"

// StatementSuffix is the loose name match for statement files. It matches
// "x.csv" as well as "xcsv"; StrictStatementSuffix only matches the former.
const (
	StatementSuffix       = "csv"
	StrictStatementSuffix = ".csv"
)

// DirectoryExists checks if a directory exists
func DirectoryExists(afs afero.Fs, dirPath string) bool {
	ok, err := afero.DirExists(afs, dirPath)
	return err == nil && ok
}

// FileExists checks if a file exists and is not a directory
func FileExists(afs afero.Fs, filePath string) bool {
	info, err := afs.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ListStatementFiles returns the paths of the regular entries of dirPath whose
// names end with the statement suffix, in the order the listing yields them.
// Subdirectories are never returned.
func ListStatementFiles(afs afero.Fs, dirPath string, strict bool) ([]string, error) {
	entries, err := afero.ReadDir(afs, dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory: %w", err)
	}

	suffix := StatementSuffix
	if strict {
		suffix = StrictStatementSuffix
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(entry.Name(), suffix) {
			files = append(files, filepath.Join(dirPath, entry.Name()))
		}
	}
	return files, nil
}

// BackupPath returns the sibling backup name for filePath.
func BackupPath(filePath, suffix string) string {
	if suffix == "" {
		suffix = DefaultBackupSuffix
	}
	return filePath + suffix
}

// Backup renames filePath to backupPath. An existing backupPath is never
// overwritten, since it may hold the only copy of an earlier original.
func Backup(afs afero.Fs, filePath, backupPath string) error {
	if _, err := afs.Stat(backupPath); err == nil {
		return fmt.Errorf("backup file already exists: %w", fs.ErrExist)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to check backup file: %w", err)
	}

	if err := afs.Rename(filePath, backupPath); err != nil {
		return fmt.Errorf("failed to rename to backup: %w", err)
	}
	return nil
}

// WriteFileAtomic writes the output of write to a temporary file next to
// filePath and renames it into place, so filePath is either absent, its old
// content, or the complete new content. The temporary file is removed on failure.
func WriteFileAtomic(afs afero.Fs, filePath string, perm os.FileMode, write func(io.Writer) error) (err error) {
	dir, base := filepath.Split(filePath)
	if dir == "" {
		dir = "."
	}

	tmp, err := afero.TempFile(afs, dir, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()

	defer func() {
		if err != nil {
			_ = afs.Remove(tmpPath)
		}
	}()

	if werr := write(tmp); werr != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write temporary file: %w", werr)
	}
	if serr := tmp.Sync(); serr != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to sync temporary file: %w", serr)
	}
	if cerr := tmp.Close(); cerr != nil {
		return fmt.Errorf("failed to close temporary file: %w", cerr)
	}
	if perm != 0 {
		if cerr := afs.Chmod(tmpPath, perm); cerr != nil {
			return fmt.Errorf("failed to set permissions: %w", cerr)
		}
	}
	if rerr := afs.Rename(tmpPath, filePath); rerr != nil {
		return fmt.Errorf("failed to move temporary file into place: %w", rerr)
	}
	return nil
}

// RemoveFile deletes filePath.
func RemoveFile(afs afero.Fs, filePath string) error {
	if err := afs.Remove(filePath); err != nil {
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}
