package apihttp

import (
	"log/slog"
	"net/http"
	"time"

	"bonarr/internal/domain"
)

type mainDataResponse struct {
	RID        int64                           `json:"rid"`
	FullUpdate bool                            `json:"full_update"`
	Torrents   map[string]domain.TorrentRecord `json:"torrents"`
}

// handleMainData serves the fast-poll endpoint some clients prefer over
// /torrents/info. Every response is a full update; incremental sync state
// is not tracked.
func (s *Server) handleMainData(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	records, err := s.repo.List(r.Context(), "")
	if err != nil {
		s.logger.Error("sync maindata failed", slog.String("error", err.Error()))
		writeStoreError(w, err)
		return
	}

	torrents := make(map[string]domain.TorrentRecord, len(records))
	for _, rec := range records {
		torrents[string(rec.Hash)] = rec
	}

	writeJSON(w, http.StatusOK, mainDataResponse{
		RID:        time.Now().UnixMilli(),
		FullUpdate: true,
		Torrents:   torrents,
	})
}
