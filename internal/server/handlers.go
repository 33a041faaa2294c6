package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/ocrtools/textpost/internal/dict"
	"github.com/ocrtools/textpost/internal/processor"
	"github.com/ocrtools/textpost/internal/textproc"
)

// healthHandler returns server health status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := HealthResponse{
		Status: "healthy",
		Time:   time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("Failed to encode health response", "error", err)
	}
}

// processHandler post-processes OCR text or line results.
func (s *Server) processHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req ProcessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		processRequestsTotal.WithLabelValues("error").Inc()
		s.writeErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Text == "" && len(req.Lines) == 0 {
		processRequestsTotal.WithLabelValues("error").Inc()
		s.writeErrorResponse(w, "No text or lines provided", http.StatusBadRequest)
		return
	}

	lines := req.Lines
	if req.Text != "" {
		lines = append(lines, processor.OCRLine{Text: req.Text, Confidence: 1.0})
	}

	processed := s.processor.ProcessMany(lines)
	corrected := processor.FullText(processed, processor.TextCorrected)

	response := ProcessResponse{
		Lines:          processed,
		NormalizedText: processor.FullText(processed, processor.TextNormalized),
		CorrectedText:  corrected,
		Segments:       textproc.Segment(corrected),
	}

	processRequestsTotal.WithLabelValues("success").Inc()
	processedTextLength.Observe(float64(len(corrected)))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("Failed to encode process response", "error", err)
	}
}

// dictionaryHandler manages the user correction layer.
func (s *Server) dictionaryHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listDictionary(w)
	case http.MethodPost:
		s.addDictionaryEntry(w, r)
	case http.MethodDelete:
		s.removeDictionaryEntry(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) listDictionary(w http.ResponseWriter) {
	snap := s.dict.Snapshot()
	response := DictionaryResponse{
		Default: snap.Default,
		User:    snap.User,
		Count:   len(snap.Default) + len(snap.User),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("Failed to encode dictionary response", "error", err)
	}
}

func (s *Server) addDictionaryEntry(w http.ResponseWriter, r *http.Request) {
	var req DictionaryEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := s.dict.Add(req.Error, req.Correct); err != nil {
		if errors.Is(err, dict.ErrInvalidEntry) {
			s.writeErrorResponse(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.writeErrorResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.listDictionary(w)
}

func (s *Server) removeDictionaryEntry(w http.ResponseWriter, r *http.Request) {
	var req DictionaryEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Allow the key in the query string too
		req.Error = r.URL.Query().Get("error")
	}
	if req.Error == "" {
		req.Error = r.URL.Query().Get("error")
	}

	if req.Error == "" {
		s.writeErrorResponse(w, "No entry key provided", http.StatusBadRequest)
		return
	}

	if err := s.dict.Remove(req.Error); err != nil {
		s.writeErrorResponse(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.listDictionary(w)
}

// writeErrorResponse writes a JSON error response.
func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Success: false,
		Error:   message,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("Failed to encode error response", "error", err)
	}
}
