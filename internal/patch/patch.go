// Package patch runs the full restore, rescale and report pass over a mod.
package patch

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/OCharnyshevich/morestacks/internal/config"
	"github.com/OCharnyshevich/morestacks/internal/items"
	"github.com/OCharnyshevich/morestacks/internal/report"
	"github.com/OCharnyshevich/morestacks/internal/restore"
)

// Pipeline wires the restorer, the item patcher and the report writer.
type Pipeline struct {
	cfg      *config.Config
	allow    *items.AllowList
	restorer *restore.Restorer
	log      *slog.Logger
}

// Result is what one run produced.
type Result struct {
	Summary items.Summary
	Report  string
	Missing []string // allow-listed identities that were not rescaled
}

// New creates a Pipeline for cfg gated by allow.
func New(cfg *config.Config, allow *items.AllowList, log *slog.Logger) *Pipeline {
	return &Pipeline{
		cfg:      cfg,
		allow:    allow,
		restorer: restore.New(log),
		log:      log,
	}
}

// Run restores the items directory from backup, rescales every allow-listed
// item, and writes the report. Any error aborts the run; incomplete coverage
// of the allow-list is only logged.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	var res Result

	if err := p.restorer.Restore(ctx, p.cfg.Backup(), p.cfg.Items()); err != nil {
		return res, fmt.Errorf("restore: %w", err)
	}

	sum, err := items.PatchDir(ctx, p.cfg.Items(), p.allow, p.log)
	if err != nil {
		return res, fmt.Errorf("patch items: %w", err)
	}
	res.Summary = sum

	res.Report = report.Render(p.cfg.SourceName, sum.Changes.Records())
	if err := report.Write(p.cfg.Report(), res.Report); err != nil {
		return res, err
	}
	p.log.Info("report saved", "path", p.cfg.Report(), "items", sum.Changes.Len())

	res.Missing = sum.Missing(p.allow)
	if sum.Changes.Len() != p.allow.Len() {
		p.log.Warn("not all items were modified, check the allow-list",
			"modified", sum.Changes.Len(),
			"listed", p.allow.Len(),
			"missing", res.Missing,
		)
	}

	return res, nil
}
