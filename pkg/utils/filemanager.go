// =============================================================================
// Adaos Calculator - File Manager Utility
// =============================================================================
//
// File-system helpers for the pipeline: directory creation, existence checks
// and processed-report archival. Archive names get a timestamp plus a short
// uuid suffix so repeated runs over same-named reports never collide.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// EnsureDir creates dir (and parents) when missing.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// FileExists reports whether path exists.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ArchiveFile moves path into archiveDir under a collision-free name and
// returns the destination path.
func ArchiveFile(path, archiveDir string) (string, error) {
	if err := EnsureDir(archiveDir); err != nil {
		return "", err
	}

	dst := filepath.Join(archiveDir, archiveName(path))
	if err := os.Rename(path, dst); err != nil {
		// Rename fails across filesystems; fall back to copy and delete.
		if err := copyFile(path, dst); err != nil {
			return "", fmt.Errorf("failed to archive %s: %w", path, err)
		}
		if err := os.Remove(path); err != nil {
			return "", fmt.Errorf("failed to remove %s after archiving: %w", path, err)
		}
	}
	return dst, nil
}

// archiveName builds "<base>_<timestamp>_<uuid8><ext>".
func archiveName(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	stamp := time.Now().Format("20060102_150405")
	id := uuid.New().String()[:8]
	return fmt.Sprintf("%s_%s_%s%s", stem, stamp, id, ext)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
