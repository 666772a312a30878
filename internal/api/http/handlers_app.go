package apihttp

import (
	"net/http"
	"time"
)

type preferencesResponse struct {
	Locale                 string `json:"locale"`
	SavePath               string `json:"save_path"`
	TempPathEnabled        bool   `json:"temp_path_enabled"`
	AutoTMMEnabled         bool   `json:"auto_tmm_enabled"`
	WebUIAddress           string `json:"web_ui_address"`
	WebUIPort              int    `json:"web_ui_port"`
	CreateSubfolderEnabled bool   `json:"create_subfolder_enabled"`
	TorrentContentLayout   string `json:"torrent_content_layout"`
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"service": "bonarr", "status": "ok"})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"checkedAt": time.Now().UTC(),
	})
}

func (s *Server) handleAppVersion(w http.ResponseWriter, _ *http.Request) {
	writePlain(w, http.StatusOK, appVersion)
}

func (s *Server) handleWebAPIVersion(w http.ResponseWriter, _ *http.Request) {
	writePlain(w, http.StatusOK, webAPIVersion)
}

// handlePreferences reports a static snapshot. Automation clients read
// save_path and the content layout flags during their initial probe.
func (s *Server) handlePreferences(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, preferencesResponse{
		Locale:                 "en",
		SavePath:               s.savePath,
		TempPathEnabled:        false,
		AutoTMMEnabled:         false,
		WebUIAddress:           "*",
		WebUIPort:              s.webUIPort,
		CreateSubfolderEnabled: true,
		TorrentContentLayout:   "Original",
	})
}

func (s *Server) handleDefaultSavePath(w http.ResponseWriter, _ *http.Request) {
	writePlain(w, http.StatusOK, s.savePath)
}
