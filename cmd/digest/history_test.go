package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/camuig/ticker-digest/internal/storage"
)

func newHistoryRepo(t *testing.T) *storage.Repository {
	t.Helper()
	db, err := storage.NewDatabase(filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close(db) })
	return storage.NewRepository(db)
}

func TestPrintHistoryEmpty(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printHistory(&out, newHistoryRepo(t), 10))
	assert.Equal(t, "no digest runs recorded\n", out.String())
}

func TestPrintHistoryListsNewestFirst(t *testing.T) {
	repo := newHistoryRepo(t)
	base := time.Date(2026, 10, 14, 7, 0, 0, 0, time.UTC)
	require.NoError(t, repo.SaveRun(&storage.DigestRun{RunID: "a", StartedAt: base, TickersCount: 7, ArticleCount: 5, Delivered: true}))
	require.NoError(t, repo.SaveRun(&storage.DigestRun{RunID: "b", StartedAt: base.Add(time.Hour), TickersCount: 7, Error: "status 500"}))

	var out bytes.Buffer
	require.NoError(t, printHistory(&out, repo, 10))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "2026-10-14T08:00:00Z  b  tickers=7 articles=0  failed: status 500", lines[0])
	assert.Equal(t, "2026-10-14T07:00:00Z  a  tickers=7 articles=5  delivered", lines[1])
	assert.Equal(t, "last delivered: 2026-10-14T07:00:00Z (a)", lines[2])
}

func TestPrintHistoryNeverDelivered(t *testing.T) {
	repo := newHistoryRepo(t)
	require.NoError(t, repo.SaveRun(&storage.DigestRun{RunID: "x", StartedAt: time.Date(2026, 10, 14, 7, 0, 0, 0, time.UTC), Error: "timeout"}))

	var out bytes.Buffer
	require.NoError(t, printHistory(&out, repo, 1))
	assert.True(t, strings.HasSuffix(out.String(), "last delivered: never\n"))
}
