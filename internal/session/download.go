package session

import "time"

// DownloadStatus is the lifecycle state of a download.
type DownloadStatus string

const (
	DownloadInProgress DownloadStatus = "downloading"
	DownloadCompleted  DownloadStatus = "completed"
	DownloadFailed     DownloadStatus = "failed"
	DownloadCanceled   DownloadStatus = "canceled"
)

// Download is a data shape consumed by the downloads views. No download
// engine lives in this core; entries come from whatever subsystem owns the
// transfer (here, the downloads folder watcher).
type Download struct {
	ID        string
	Filename  string
	URL       string
	Progress  float64
	Status    DownloadStatus
	Timestamp time.Time
	Size      int64

	// Optional display-only fields.
	Speed string
	ETA   string
}

// SetDownloads replaces the download list wholesale, newest first.
func (s State) SetDownloads(downloads []Download) State {
	s.Downloads = downloads
	return s
}
