// Package restore resets the working item directory from the pristine backup
// so every patch pass starts from unmodified files.
package restore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	get "github.com/hashicorp/go-getter"

	"github.com/OCharnyshevich/morestacks/internal/storage"
)

// ErrMissingBackup is returned when the backup directory is absent, not a
// directory, or empty.
var ErrMissingBackup = errors.New("missing backup")

// Restorer copies a backup tree over the working items directory.
type Restorer struct {
	log *slog.Logger
}

// New creates a Restorer that reports progress to log.
func New(log *slog.Logger) *Restorer {
	return &Restorer{log: log}
}

// Restore deletes itemsDir and replaces it with a recursive copy of backupDir.
// Nothing is touched when the backup is missing.
func (r *Restorer) Restore(ctx context.Context, backupDir, itemsDir string) error {
	src, err := filepath.Abs(backupDir)
	if err != nil {
		return fmt.Errorf("resolve backup dir: %w", err)
	}
	dst, err := filepath.Abs(itemsDir)
	if err != nil {
		return fmt.Errorf("resolve items dir: %w", err)
	}

	if overlaps(src, dst) {
		return fmt.Errorf("backup %s and items dir %s overlap", src, dst)
	}
	if err := checkBackup(src); err != nil {
		return err
	}

	if err := os.RemoveAll(dst); err != nil {
		return fmt.Errorf("remove items dir %s: %w", dst, err)
	}

	r.log.Debug("start restoring items", "from", src, "to", dst)

	client := &get.Client{
		Ctx:  ctx,
		Src:  fileURL(src),
		Dst:  dst,
		Pwd:  filepath.Dir(src),
		Mode: get.ClientModeDir,
		Getters: map[string]get.Getter{
			"file": &get.FileGetter{Copy: true},
		},
	}
	if err := client.Get(); err != nil {
		return fmt.Errorf("copy backup %s to %s: %w", src, dst, err)
	}

	r.log.Info("items restored from backup", "from", src, "to", dst)
	return nil
}

// fileURL escapes dir so '#', '?' and '%' in mod paths stay part of the path.
func fileURL(dir string) string {
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(dir)}).String()
}

func checkBackup(dir string) error {
	fi, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s does not exist", ErrMissingBackup, dir)
		}
		return fmt.Errorf("stat backup dir: %w", err)
	}
	if !fi.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrMissingBackup, dir)
	}

	empty, err := storage.IsEmptyDir(dir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMissingBackup, err)
	}
	if empty {
		return fmt.Errorf("%w: %s is empty", ErrMissingBackup, dir)
	}
	return nil
}

func overlaps(a, b string) bool {
	return contains(a, b) || contains(b, a)
}

func contains(base, path string) bool {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
