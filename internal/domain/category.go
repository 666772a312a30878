package domain

// CategoryEntry mirrors the object shape of /api/v2/torrents/categories.
type CategoryEntry struct {
	Name     string `json:"name"`
	SavePath string `json:"savePath"`
}
