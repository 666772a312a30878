package apihttp

import (
	"errors"
	"log/slog"
	"net/http"

	"bonarr/internal/domain"
	"bonarr/internal/metrics"
	"bonarr/internal/usecase"
)

func (s *Server) handleAddTorrent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	parseRequestForm(r)

	input := usecase.AddTorrentInput{
		Magnet:   formValue(r, magnetAliases),
		Name:     formValue(r, renameAliases),
		Category: formValue(r, addCategoryAliases),
		SavePath: formValue(r, addSavePathAliases),
	}
	if input.Magnet == "" {
		writePlain(w, http.StatusBadRequest, "Missing magnet in urls")
		return
	}
	if input.SavePath == "" {
		input.SavePath = s.savePath
	}

	record, err := s.addTorrent.Execute(r.Context(), input)
	if err != nil {
		if errors.Is(err, usecase.ErrMissingMagnet) {
			writePlain(w, http.StatusBadRequest, "Missing magnet in urls")
			return
		}
		s.logger.Error("add torrent failed", slog.String("error", err.Error()))
		writeStoreError(w, err)
		return
	}

	metrics.TorrentsAddedTotal.Inc()
	s.logger.Info("torrent added",
		slog.String("hash", string(record.Hash)),
		slog.String("name", record.Name),
		slog.String("category", record.Category),
	)
	writePlain(w, http.StatusOK, "Ok.")
}

func (s *Server) handleTorrentsInfo(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	records, err := s.repo.List(r.Context(), queryValue(r, addCategoryAliases))
	if err != nil {
		s.logger.Error("list torrents failed", slog.String("error", err.Error()))
		writeStoreError(w, err)
		return
	}
	if records == nil {
		records = []domain.TorrentRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

// torrentProperties carries the per-torrent detail shape. Sizes and piece
// counts are unknowable without real transfer data; -1 is the native
// client's own "unknown" value.
type torrentProperties struct {
	SavePath        string  `json:"save_path"`
	CreationDate    int64   `json:"creation_date"`
	PieceSize       int64   `json:"piece_size"`
	PiecesHave      int64   `json:"pieces_have"`
	PiecesNum       int64   `json:"pieces_num"`
	TotalSize       int64   `json:"total_size"`
	TotalDownloaded int64   `json:"total_downloaded"`
	TotalUploaded   int64   `json:"total_uploaded"`
	DlSpeed         int64   `json:"dl_speed"`
	UpSpeed         int64   `json:"up_speed"`
	ETA             int64   `json:"eta"`
	AdditionDate    int64   `json:"addition_date"`
	CompletionDate  int64   `json:"completion_date"`
	ShareRatio      float64 `json:"share_ratio"`
	NbConnections   int64   `json:"nb_connections"`
	Seeds           int64   `json:"seeds"`
	Peers           int64   `json:"peers"`
}

// qBittorrent reports 8640000 (100 days) as the "infinite" ETA.
const etaInfinity = 8640000

func propertiesOf(rec domain.TorrentRecord) torrentProperties {
	completion := int64(-1)
	if rec.CompletionOn > 0 {
		completion = rec.CompletionOn
	}
	return torrentProperties{
		SavePath:       rec.SavePath,
		CreationDate:   -1,
		PieceSize:      -1,
		PiecesNum:      -1,
		TotalSize:      -1,
		DlSpeed:        rec.DlSpeed,
		UpSpeed:        rec.UpSpeed,
		ETA:            etaInfinity,
		AdditionDate:   rec.AddedOn,
		CompletionDate: completion,
	}
}

// handleProperties answers both query styles: ?hash=X returns a single
// object (empty object when the hash is unknown), ?hashes=X|Y returns an
// array with unknown hashes skipped.
func (s *Server) handleProperties(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	if single := r.URL.Query().Get("hash"); single != "" {
		rec, err := s.repo.Get(r.Context(), domain.Hash(single))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				writeJSON(w, http.StatusOK, struct{}{})
				return
			}
			s.logger.Error("get torrent failed", slog.String("error", err.Error()))
			writeStoreError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, propertiesOf(rec))
		return
	}

	out := []torrentProperties{}
	for _, hash := range splitPipeList(r.URL.Query().Get("hashes")) {
		rec, err := s.repo.Get(r.Context(), domain.Hash(hash))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			s.logger.Error("get torrent failed", slog.String("error", err.Error()))
			writeStoreError(w, err)
			return
		}
		out = append(out, propertiesOf(rec))
	}
	writeJSON(w, http.StatusOK, out)
}

// handlePause and handleResume acknowledge without acting: there is no
// real transfer to pause, and clients only check for a 200.
func (s *Server) handlePause(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	parseRequestForm(r)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleResume(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	parseRequestForm(r)
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	parseRequestForm(r)

	names := splitPipeList(r.FormValue("hashes"))
	hashes := make([]domain.Hash, 0, len(names))
	for _, name := range names {
		hashes = append(hashes, domain.Hash(name))
	}

	if err := s.repo.DeleteMany(r.Context(), hashes); err != nil {
		s.logger.Error("delete torrents failed", slog.String("error", err.Error()))
		writeStoreError(w, err)
		return
	}
	metrics.TorrentsDeletedTotal.Add(float64(len(hashes)))
	w.WriteHeader(http.StatusOK)
}
