package restore

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(b)
}

func TestRestoreCopiesTree(t *testing.T) {
	root := t.TempDir()
	backup := filepath.Join(root, "items_backup")
	items := filepath.Join(root, "items")

	writeFile(t, filepath.Join(backup, "Wood.xml"), `<Item><Prop Name="Name" Value="Wood"/></Item>`)
	writeFile(t, filepath.Join(backup, "sub", "Water.xml"), "water &#x01; bytes")

	if err := New(discardLogger()).Restore(context.Background(), backup, items); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	if got := readFile(t, filepath.Join(items, "Wood.xml")); got != `<Item><Prop Name="Name" Value="Wood"/></Item>` {
		t.Errorf("Wood.xml = %q", got)
	}
	if got := readFile(t, filepath.Join(items, "sub", "Water.xml")); got != "water &#x01; bytes" {
		t.Errorf("sub/Water.xml = %q", got)
	}

	fi, err := os.Lstat(items)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Mode()&os.ModeSymlink != 0 {
		t.Error("items dir must be a copy, not a symlink")
	}
}

func TestRestoreDiscardsPreviousState(t *testing.T) {
	root := t.TempDir()
	backup := filepath.Join(root, "items_backup")
	items := filepath.Join(root, "items")

	writeFile(t, filepath.Join(backup, "Wood.xml"), "pristine")
	writeFile(t, filepath.Join(items, "Wood.xml"), "patched")
	writeFile(t, filepath.Join(items, "stale.xml"), "left over")

	if err := New(discardLogger()).Restore(context.Background(), backup, items); err != nil {
		t.Fatalf("Restore: %v", err)
	}

	if got := readFile(t, filepath.Join(items, "Wood.xml")); got != "pristine" {
		t.Errorf("Wood.xml = %q, want pristine", got)
	}
	if _, err := os.Stat(filepath.Join(items, "stale.xml")); !os.IsNotExist(err) {
		t.Errorf("stale.xml should be gone, stat err = %v", err)
	}
}

func TestRestoreMissingBackup(t *testing.T) {
	root := t.TempDir()
	items := filepath.Join(root, "items")
	writeFile(t, filepath.Join(items, "Wood.xml"), "keep me")

	emptyBackup := filepath.Join(root, "empty")
	if err := os.Mkdir(emptyBackup, 0o755); err != nil {
		t.Fatal(err)
	}
	fileBackup := filepath.Join(root, "file")
	writeFile(t, fileBackup, "not a dir")

	tests := []struct {
		name   string
		backup string
	}{
		{"absent", filepath.Join(root, "nope")},
		{"empty", emptyBackup},
		{"not a directory", fileBackup},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(discardLogger()).Restore(context.Background(), tt.backup, items)
			if !errors.Is(err, ErrMissingBackup) {
				t.Fatalf("expected ErrMissingBackup, got %v", err)
			}
			if got := readFile(t, filepath.Join(items, "Wood.xml")); got != "keep me" {
				t.Errorf("items dir was modified: %q", got)
			}
		})
	}
}

func TestRestoreEscapesPathCharacters(t *testing.T) {
	for _, name := range []string{"mods#1", "100%mods", "a?b", "This War of Mine", "[mods] (2025)"} {
		t.Run(name, func(t *testing.T) {
			root := filepath.Join(t.TempDir(), name)
			backup := filepath.Join(root, "items_backup")
			items := filepath.Join(root, "items")
			writeFile(t, filepath.Join(backup, "Wood.xml"), "pristine")

			if err := New(discardLogger()).Restore(context.Background(), backup, items); err != nil {
				t.Fatalf("Restore: %v", err)
			}
			if got := readFile(t, filepath.Join(items, "Wood.xml")); got != "pristine" {
				t.Errorf("Wood.xml = %q, want pristine", got)
			}
		})
	}
}

func TestRestoreRefusesOverlap(t *testing.T) {
	root := t.TempDir()
	backup := filepath.Join(root, "items_backup")
	writeFile(t, filepath.Join(backup, "Wood.xml"), "pristine")

	for _, items := range []string{root, backup, filepath.Join(backup, "items")} {
		if err := New(discardLogger()).Restore(context.Background(), backup, items); err == nil {
			t.Errorf("items dir %s: expected overlap error", items)
		}
		if got := readFile(t, filepath.Join(backup, "Wood.xml")); got != "pristine" {
			t.Fatalf("backup damaged: %q", got)
		}
	}
}
