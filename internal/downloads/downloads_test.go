package downloads

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"mirage/internal/pubsub"
	"mirage/internal/session"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestScan_ListsFilesNewestFirst(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "old.pdf", "aaaa")
	old := filepath.Join(dir, "old.pdf")
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(old, past, past))
	writeFile(t, dir, "new.zip", "bb")

	out, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, out, 2)
	require.Equal(t, "new.zip", out[0].Filename)
	require.Equal(t, "old.pdf", out[1].Filename)
	require.Equal(t, session.DownloadCompleted, out[0].Status)
	require.EqualValues(t, 4, out[1].Size)
}

func TestScan_PartialFilesInProgress(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "movie.mkv.part", "x")
	writeFile(t, dir, "page.crdownload", "x")
	writeFile(t, dir, "done.txt", "x")

	out, err := Scan(dir)
	require.NoError(t, err)

	statuses := make(map[string]session.DownloadStatus)
	for _, d := range out {
		statuses[d.Filename] = d.Status
	}
	require.Equal(t, session.DownloadInProgress, statuses["movie.mkv.part"])
	require.Equal(t, session.DownloadInProgress, statuses["page.crdownload"])
	require.Equal(t, session.DownloadCompleted, statuses["done.txt"])
}

func TestScan_SkipsDotfilesAndDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".DS_Store", "x")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))
	writeFile(t, dir, "real.txt", "x")

	out, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "real.txt", out[0].Filename)
}

func TestScan_MissingDir(t *testing.T) {
	_, err := Scan(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
}

func TestWatcher_PublishesOnChange(t *testing.T) {
	dir := t.TempDir()
	w, err := New(Config{Dir: dir, DebounceDur: 20 * time.Millisecond})
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer func() { _ = w.Stop() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := w.Broker().Subscribe(ctx)

	writeFile(t, dir, "incoming.zip", "data")

	select {
	case event := <-ch:
		require.Equal(t, pubsub.UpdatedEvent, event.Type)
	case <-time.After(2 * time.Second):
		require.Fail(t, "timeout waiting for downloads change event")
	}
}
