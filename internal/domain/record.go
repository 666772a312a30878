package domain

import "errors"

type Hash string

// qBittorrent state vocabulary used by this emulation. The field is an
// open string: a poller may write any state and it is echoed back verbatim.
const (
	StateDownloading = "downloading"
	StateUploading   = "uploading"
	StatePausedDL    = "pausedDL"
	StateError       = "error"
)

// TorrentRecord is one tracked download in the wire shape Sonarr/Radarr
// expect from /api/v2/torrents/info.
type TorrentRecord struct {
	Hash         Hash    `json:"hash"`
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	AddedOn      int64   `json:"added_on"`
	CompletionOn int64   `json:"completion_on"`
	Progress     float64 `json:"progress"`
	State        string  `json:"state"`
	SavePath     string  `json:"save_path"`
	DlSpeed      int64   `json:"dlspeed"`
	UpSpeed      int64   `json:"upspeed"`
}

// Validate checks domain invariants for TorrentRecord.
func (r TorrentRecord) Validate() error {
	if r.Hash == "" {
		return errors.New("torrent hash is required")
	}
	if r.Progress < 0 || r.Progress > 1 {
		return errors.New("progress must be in [0,1]")
	}
	if r.DlSpeed < 0 || r.UpSpeed < 0 {
		return errors.New("speeds must not be negative")
	}
	return nil
}
