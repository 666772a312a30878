package apihttp

import (
	"log/slog"
	"net/http"

	"bonarr/internal/metrics"
)

// handleLogin mimics the native auth endpoint. The check is advisory:
// no other endpoint requires a prior login or the SID cookie, which is
// exactly how Sonarr/Radarr treat the connection test.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	parseRequestForm(r)
	username := formValue(r, usernameAliases)
	password := formValue(r, passwordAliases)

	if s.authUser != "" && s.authPass != "" {
		if username != s.authUser || password != s.authPass {
			metrics.LoginFailuresTotal.Inc()
			s.logger.Warn("login rejected", slog.String("username", username), slog.String("clientIP", clientIP(r)))
			writePlain(w, http.StatusForbidden, "Fails.")
			return
		}
	}

	// The real client issues a session cookie here. Nothing validates it
	// later, but clients that store it expect one.
	http.SetCookie(w, &http.Cookie{Name: "SID", Value: "bonarrtoken", Path: "/"})
	writePlain(w, http.StatusOK, "Ok.")
}
