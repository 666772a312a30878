package apihttp

import "net/http"

type transferInfoResponse struct {
	DlInfoSpeed      int64  `json:"dl_info_speed"`
	DlInfoData       int64  `json:"dl_info_data"`
	UpInfoSpeed      int64  `json:"up_info_speed"`
	UpInfoData       int64  `json:"up_info_data"`
	DlRateLimit      int64  `json:"dl_rate_limit"`
	UpRateLimit      int64  `json:"up_rate_limit"`
	DHTNodes         int64  `json:"dht_nodes"`
	ConnectionStatus string `json:"connection_status"`
}

// handleTransferInfo returns zeroed statistics: no real transfer happens
// here, but clients probe this endpoint to confirm the connection works.
func (s *Server) handleTransferInfo(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, transferInfoResponse{
		ConnectionStatus: "connected",
	})
}
