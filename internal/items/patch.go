package items

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/OCharnyshevich/morestacks/internal/storage"
)

// FileExt selects item files inside the working directory, ignoring case.
const FileExt = ".xml"

// Outcome classifies what happened to one item file.
type Outcome int

const (
	// Ineligible files have no identity or one outside the allow-list.
	Ineligible Outcome = iota
	// Scaled files had their StackSize rescaled and were rewritten.
	Scaled
	// NoStackSize files are allow-listed but carry no StackSize; they are
	// left untouched.
	NoStackSize
)

func (o Outcome) String() string {
	switch o {
	case Ineligible:
		return "ineligible"
	case Scaled:
		return "scaled"
	case NoStackSize:
		return "no-stack-size"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Result is the outcome of patching a single file.
type Result struct {
	Path     string
	Identity string
	Outcome  Outcome
	Change   ChangeRecord // set when Outcome is Scaled
}

// Summary collects the results of a directory pass.
type Summary struct {
	Results []Result
	Changes *Changes
}

// Missing returns the allow-listed identities that produced no change, in
// allow-list order.
func (s Summary) Missing(allow *AllowList) []string {
	var missing []string
	for _, name := range allow.Names() {
		if _, ok := s.Changes.Get(name); !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// WriteBack serializes d and overwrites path with it.
func WriteBack(d *Document, path string) error {
	data, err := d.Bytes()
	if err != nil {
		return err
	}
	if err := storage.WriteFile(path, data); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// PatchFile rescales the item file at path if it is allow-listed. Files that
// are not rescaled are never written.
func PatchFile(path string, allow *AllowList) (Result, error) {
	res := Result{Path: path}

	raw, err := os.ReadFile(path)
	if err != nil {
		return res, fmt.Errorf("read %s: %w", path, err)
	}
	text, err := Decode(raw)
	if err != nil {
		return res, fmt.Errorf("decode %s: %w", path, err)
	}
	doc, err := Parse(Sanitize(text))
	if err != nil {
		return res, fmt.Errorf("parse %s: %w", path, err)
	}

	identity, ok := allow.Eligible(doc)
	res.Identity = identity
	if !ok {
		return res, nil
	}

	change, scaled, err := doc.ApplyScale(identity)
	if err != nil {
		return res, fmt.Errorf("scale %s: %w", path, err)
	}
	if !scaled {
		res.Outcome = NoStackSize
		return res, nil
	}

	if err := WriteBack(doc, path); err != nil {
		return res, err
	}
	res.Outcome = Scaled
	res.Change = change
	return res, nil
}

// PatchDir patches every item file directly inside dir, in name order. It
// stops at the first error; files already rewritten stay rewritten.
func PatchDir(ctx context.Context, dir string, allow *AllowList, log *slog.Logger) (Summary, error) {
	sum := Summary{Changes: NewChanges()}

	paths, err := listItemFiles(dir)
	if err != nil {
		return sum, err
	}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		res, err := PatchFile(path, allow)
		if err != nil {
			return sum, err
		}
		sum.Results = append(sum.Results, res)

		switch res.Outcome {
		case Scaled:
			sum.Changes.Set(res.Change)
			log.Info("item scaled",
				"item", res.Identity,
				"original", res.Change.Original,
				"modified", res.Change.Modified,
				"changes", res.Change.Note,
			)
		case NoStackSize:
			log.Info("item has no stack size, left unchanged", "item", res.Identity, "file", filepath.Base(path))
		default:
			log.Debug("item skipped", "file", filepath.Base(path), "item", res.Identity)
		}
	}

	return sum, nil
}

// listItemFiles returns the item files directly inside dir. The extension is
// matched case-insensitively, as the game's Windows tooling writes both.
func listItemFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list item files: %w", err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), FileExt) {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths, nil
}
