package server

import (
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/driftlens/driftlens/internal/state"
)

type scanRequest struct {
	// Path scans a file or directory on disk.
	Path string `json:"path,omitempty"`
	// Content and Language scan in-memory source text instead.
	Content  string `json:"content,omitempty"`
	Language string `json:"language,omitempty"`
	FilePath string `json:"file_path,omitempty"`
}

func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Content != "" {
		if req.Language == "" {
			s.respondError(w, http.StatusBadRequest, "language is required when scanning content")
			return
		}
		name := req.FilePath
		if name == "" {
			name = "inline"
		}
		s.logger.Debug("scan content request", zap.String("language", req.Language), zap.Int("bytes", len(req.Content)))
		pairs := s.scanner.ScanText(r.Context(), name, req.Content, req.Language)
		s.respondJSON(w, http.StatusOK, map[string]interface{}{"pairs": pairs})
		return
	}

	if req.Path == "" {
		s.respondError(w, http.StatusBadRequest, "path or content is required")
		return
	}
	abs, err := filepath.Abs(req.Path)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid path")
		return
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			s.respondError(w, http.StatusNotFound, "path not found")
			return
		}
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.logger.Debug("scan path request", zap.String("path", abs), zap.Bool("dir", info.IsDir()))
	if info.IsDir() {
		result, err := s.scanner.ScanDir(r.Context(), abs)
		if err != nil {
			s.logger.Error("scan failed", zap.Error(err))
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		s.respondJSON(w, http.StatusOK, result)
		return
	}
	pairs, err := s.scanner.ScanFile(r.Context(), abs)
	if err != nil {
		s.logger.Error("scan failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"pairs": pairs})
}

func (s *Server) handleListPairs(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.List(r.Context())
	if err != nil {
		s.logger.Error("list pairs failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if file := r.URL.Query().Get("file"); file != "" {
		filtered := make([]*state.PairRecord, 0, len(records))
		for _, rec := range records {
			if rec.FilePath == file {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{"pairs": records})
}

func (s *Server) handleMarkReviewed(w http.ResponseWriter, r *http.Request) {
	s.setReviewed(w, r, true)
}

func (s *Server) handleUnmarkReviewed(w http.ResponseWriter, r *http.Request) {
	s.setReviewed(w, r, false)
}

func (s *Server) setReviewed(w http.ResponseWriter, r *http.Request, reviewed bool) {
	id := chi.URLParam(r, "id")
	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.logger.Error("review lookup failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rec == nil {
		s.respondError(w, http.StatusNotFound, "pair not found")
		return
	}
	s.logger.Debug("review request", zap.String("id", id), zap.Bool("reviewed", reviewed))
	if err := s.store.MarkReviewed(r.Context(), id, reviewed); err != nil {
		s.logger.Error("review update failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	status := "reviewed"
	if !reviewed {
		status = "unreviewed"
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"id": id, "status": status})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	records, err := s.store.List(ctx)
	if err != nil {
		s.logger.Error("status: list pairs failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	reviewed := 0
	drifted := 0
	for _, rec := range records {
		if rec.IsReviewed {
			reviewed++
		}
		if rec.DriftScore > 0 {
			drifted++
		}
	}
	resp := map[string]interface{}{
		"pairs":    len(records),
		"reviewed": reviewed,
		"drifted":  drifted,
	}
	if last, err := s.store.LastFullScan(ctx); err == nil && last != nil {
		resp["last_full_scan"] = last
	}
	resp["config"] = map[string]interface{}{
		"languages":     s.registry.Languages(),
		"state_backend": s.config.State.Backend,
		"state_path":    s.config.State.Path,
		"scan_workers":  s.config.Scan.Workers,
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
