// Package services holds the orchestration layer between the binaries and
// the storage repository: default-category seeding and account handling.
package services

import (
	"context"
	"fmt"
	"strings"

	"tally/internal/core"
	applog "tally/internal/log"
)

// DefaultCategories is the baseline set every ledger starts with.
var DefaultCategories = []string{
	"Food & Dining",
	"Transportation",
	"Shopping",
	"Entertainment",
	"Bills & Utilities",
	"Healthcare",
	"Education",
	"Travel",
	"Groceries",
	"Gas & Fuel",
	"Insurance",
	"Rent/Mortgage",
	"Salary",
	"Freelance",
	"Investment",
	"Gift",
	"Other Income",
	"Other Expense",
}

// CategoryStore is the slice of the repository the seeder needs.
type CategoryStore interface {
	GetCategories(ctx context.Context) ([]core.Category, error)
	CreateCategory(ctx context.Context, c core.Category) (core.Category, error)
}

// SeedReport summarizes one seeding run.
type SeedReport struct {
	Created int
	Skipped int
	Failed  int
}

// SeedDefaultCategories ensures every baseline category exists, comparing
// titles case-insensitively against current state. It is safe to run on
// every process start: already-present names are skipped, and a per-name
// creation failure is counted and logged without aborting the rest.
// Only the initial listing is fatal.
func SeedDefaultCategories(ctx context.Context, store CategoryStore, logger *applog.Logger) (SeedReport, error) {
	seedLog := logger.WithComponent(applog.ComponentSeeder)

	existing, err := store.GetCategories(ctx)
	if err != nil {
		return SeedReport{}, fmt.Errorf("list categories: %w", err)
	}

	present := make(map[string]bool, len(existing))
	for _, c := range existing {
		present[strings.ToLower(c.Title)] = true
	}

	var report SeedReport
	for _, title := range DefaultCategories {
		if present[strings.ToLower(title)] {
			report.Skipped++
			continue
		}
		if _, err := store.CreateCategory(ctx, core.Category{Title: title}); err != nil {
			seedLog.WarnContext(ctx, "failed to seed category",
				"title", title, applog.FieldError, err)
			report.Failed++
			continue
		}
		report.Created++
	}

	seedLog.InfoContext(ctx, "default categories seeded",
		applog.FieldOperation, applog.OpSeed,
		"created", report.Created,
		"skipped", report.Skipped,
		"failed", report.Failed)
	return report, nil
}
