package main

import (
	"errors"
	"fmt"
	"io"
	"time"

	"gorm.io/gorm"

	"github.com/camuig/ticker-digest/internal/storage"
)

// printHistory writes the last n runs, newest first, and the last delivered one.
func printHistory(w io.Writer, repo *storage.Repository, n int) error {
	runs, err := repo.RecentRuns(n)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Fprintln(w, "no digest runs recorded")
		return nil
	}

	for _, r := range runs {
		status := "delivered"
		if !r.Delivered {
			status = "failed: " + r.Error
		}
		fmt.Fprintf(w, "%s  %s  tickers=%d articles=%d  %s\n",
			r.StartedAt.Format(time.RFC3339), r.RunID, r.TickersCount, r.ArticleCount, status)
	}

	last, err := repo.LastDelivered()
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		fmt.Fprintln(w, "last delivered: never")
	case err != nil:
		return fmt.Errorf("last delivered run: %w", err)
	default:
		fmt.Fprintf(w, "last delivered: %s (%s)\n", last.StartedAt.Format(time.RFC3339), last.RunID)
	}
	return nil
}
