// Command tally is the CLI surface over the ledger: it records and lists
// transactions, manages categories, and prints aggregate statistics.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"tally/internal/cli"
	"tally/internal/core"
	applog "tally/internal/log"
	"tally/internal/storage"
)

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	cfg := cli.LoadAndValidateConfig()
	logger := cli.SetupLogger(cfg)

	ctx := context.Background()
	repo, err := cli.OpenLedger(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open ledger", applog.FieldError, err)
		os.Exit(1)
	}
	defer repo.Close()

	var runErr error
	switch os.Args[1] {
	case "add":
		runErr = runAdd(ctx, repo, os.Args[2:])
	case "list":
		runErr = runList(ctx, repo, os.Args[2:])
	case "categories":
		runErr = runCategories(ctx, repo, os.Args[2:])
	case "stats":
		runErr = runStats(ctx, repo, os.Args[2:])
	default:
		usage(os.Stderr)
		os.Exit(2)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}

func usage(w *os.File) {
	fmt.Fprintln(w, "Usage: tally <add|list|categories|stats> [flags]")
	fmt.Fprintln(w, "  add        record a transaction")
	fmt.Fprintln(w, "  list       list transactions, most recent first")
	fmt.Fprintln(w, "  categories list categories or add one with -add")
	fmt.Fprintln(w, "  stats      print income/expense totals and balance")
}

func runAdd(ctx context.Context, repo *storage.Repository, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	userID := fs.Int64("user", 0, "Owning user id")
	title := fs.String("title", "", "Transaction title")
	amount := fs.String("amount", "", "Amount as a decimal, e.g. 12.34")
	txType := fs.String("type", "expense", "Transaction type: income or expense")
	categoryID := fs.Int64("category", 0, "Category id")
	date := fs.String("date", "", "Date in RFC 3339 format (default: now)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cents, err := core.ParseDecimalToCents(*amount)
	if err != nil {
		return err
	}
	when := *date
	if when == "" {
		when = time.Now().UTC().Format(core.DateLayout)
	}

	tx, err := repo.CreateTransaction(ctx, core.Transaction{
		Title:      *title,
		Amount:     cents,
		Type:       core.TransactionType(*txType),
		CategoryID: *categoryID,
		Date:       when,
		UserID:     *userID,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Recorded %s #%d: %s %s\n", tx.Type, tx.ID, tx.Title, core.Money{Cents: tx.Amount})
	return nil
}

func runList(ctx context.Context, repo *storage.Repository, args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	userID := fs.Int64("user", 0, "Owning user id")
	txType := fs.String("type", "", "Filter by type: income or expense")
	categoryID := fs.Int64("category", 0, "Filter by category id")
	from := fs.String("from", "", "Start date (RFC 3339)")
	to := fs.String("to", "", "End date (RFC 3339)")
	search := fs.String("search", "", "Match transaction titles")
	limit := fs.Int("limit", 0, "Page size (default 50)")
	offset := fs.Int("offset", 0, "Rows to skip")
	if err := fs.Parse(args); err != nil {
		return err
	}

	page, err := repo.ListTransactions(ctx, *userID, core.TransactionFilter{
		Type:       core.TransactionType(*txType),
		CategoryID: *categoryID,
		StartDate:  *from,
		EndDate:    *to,
		Search:     *search,
		Limit:      *limit,
		Offset:     *offset,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tTYPE\tTITLE\tAMOUNT")
	for _, tx := range page.Items {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			tx.ID, tx.Date, tx.Type, tx.Title, core.Money{Cents: tx.Amount})
	}
	w.Flush()
	fmt.Printf("%d of %d transaction(s)\n", len(page.Items), page.Total)
	return nil
}

func runCategories(ctx context.Context, repo *storage.Repository, args []string) error {
	fs := flag.NewFlagSet("categories", flag.ExitOnError)
	add := fs.String("add", "", "Create a category with this title")
	remove := fs.Int64("delete", 0, "Delete the category with this id")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *add != "" {
		c, err := repo.CreateCategory(ctx, core.Category{Title: *add})
		if err != nil {
			return err
		}
		fmt.Printf("Created category #%d: %s\n", c.ID, c.Title)
		return nil
	}
	if *remove > 0 {
		if err := repo.DeleteCategory(ctx, *remove); err != nil {
			return err
		}
		fmt.Printf("Deleted category #%d\n", *remove)
		return nil
	}

	categories, err := repo.GetCategories(ctx)
	if err != nil {
		return err
	}
	for _, c := range categories {
		fmt.Printf("%d\t%s\n", c.ID, c.Title)
	}
	return nil
}

func runStats(ctx context.Context, repo *storage.Repository, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	userID := fs.Int64("user", 0, "Owning user id")
	from := fs.String("from", "", "Start date (RFC 3339)")
	to := fs.String("to", "", "End date (RFC 3339)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	stats, err := repo.GetTransactionStats(ctx, *userID, *from, *to)
	if err != nil {
		return err
	}

	fmt.Printf("Income:   %s (%d)\n", core.Money{Cents: stats.TotalIncome}, stats.IncomeCount)
	fmt.Printf("Expenses: %s (%d)\n", core.Money{Cents: stats.TotalExpenses}, stats.ExpenseCount)
	fmt.Printf("Balance:  %s over %d transaction(s)\n",
		core.Money{Cents: stats.Balance}, stats.TotalTransactions)
	return nil
}
