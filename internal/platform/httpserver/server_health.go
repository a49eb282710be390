package httpserver

import "net/http"

type statusResponse struct {
	Service string `json:"service"`
	Status  string `json:"status"`
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Service: s.service, Status: "ok"})
}

// handleStartup reports 503 until the process has finished wiring.
func (s *Server) handleStartup(w http.ResponseWriter, _ *http.Request) {
	if !s.started.Load() {
		writeJSON(w, http.StatusServiceUnavailable, statusResponse{Service: s.service, Status: "starting"})
		return
	}
	writeJSON(w, http.StatusOK, statusResponse{Service: s.service, Status: "started"})
}

func (s *Server) handleLiveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Service: s.service, Status: "alive"})
}
