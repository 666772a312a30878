package apihttp

import (
	"net/http"
	"strings"
)

// Ordered alias lists for the form/query fields automation clients send.
// Different Sonarr/Radarr versions (and the qBittorrent WebUI itself) use
// different key names for the same logical field; the first non-empty
// value in list order wins.
var (
	usernameAliases       = []string{"username", "user", "login"}
	passwordAliases       = []string{"password", "pass", "pw"}
	magnetAliases         = []string{"urls", "magnet", "url"}
	renameAliases         = []string{"rename", "name"}
	addCategoryAliases    = []string{"category", "cat"}
	addSavePathAliases    = []string{"savepath", "savePath"}
	categoryNameAliases   = []string{"category", "name"}
	createSavePathAliases = []string{"savePath", "savepath", "save_path"}
	removeCategoryAliases = []string{"categories", "category"}
)

// parseRequestForm populates r.Form from either a multipart or urlencoded
// body. Sonarr posts multipart for adds and urlencoded everywhere else.
func parseRequestForm(r *http.Request) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		_ = r.ParseForm()
	}
}

func formValue(r *http.Request, aliases []string) string {
	for _, key := range aliases {
		if v := r.FormValue(key); v != "" {
			return v
		}
	}
	return ""
}

func queryValue(r *http.Request, aliases []string) string {
	for _, key := range aliases {
		if v := r.URL.Query().Get(key); v != "" {
			return v
		}
	}
	return ""
}

// splitPipeList splits the native client's |-delimited list fields.
// Empty or absent input yields an empty set, never an error.
func splitPipeList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, "|")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
