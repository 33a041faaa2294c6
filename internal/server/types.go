package server

import (
	"net/http"

	"github.com/ocrtools/textpost/internal/dict"
	"github.com/ocrtools/textpost/internal/engine"
	"github.com/ocrtools/textpost/internal/processor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	dict       *dict.Dictionary
	processor  *processor.Processor
	engine     engine.Engine
	corsOrigin string
	timeoutSec int
}

// Config holds server configuration.
type Config struct {
	Host       string
	Port       int
	CORSOrigin string
	TimeoutSec int
}

// Response types for API endpoints.
type HealthResponse struct {
	Status string `json:"status"`
	Time   string `json:"time"`
}

// ProcessRequest carries raw OCR lines to be post-processed.
type ProcessRequest struct {
	Lines []processor.OCRLine `json:"lines,omitempty"`
	Text  string              `json:"text,omitempty"`
}

// ProcessResponse returns the processed lines and the assembled texts.
type ProcessResponse struct {
	Lines          []processor.ProcessedLine `json:"lines,omitempty"`
	NormalizedText string                    `json:"normalized_text"`
	CorrectedText  string                    `json:"corrected_text"`
	Segments       []string                  `json:"segments,omitempty"`
}

// DictionaryEntryRequest adds or removes a correction entry.
type DictionaryEntryRequest struct {
	Error   string `json:"error"`
	Correct string `json:"correct,omitempty"`
}

// DictionaryResponse lists the correction layers.
type DictionaryResponse struct {
	Default map[string]string `json:"default"`
	User    map[string]string `json:"user"`
	Count   int               `json:"count"`
}

// ErrorResponse is the JSON body for failed requests.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// NewServer creates a new post-processing server instance.
func NewServer(config Config, d *dict.Dictionary, eng engine.Engine) *Server {
	return &Server{
		dict:       d,
		processor:  processor.New(d),
		engine:     eng,
		corsOrigin: config.CORSOrigin,
		timeoutSec: config.TimeoutSec,
	}
}

// Close releases server resources.
func (s *Server) Close() error {
	if s.engine != nil {
		return s.engine.Close()
	}
	return nil
}

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.corsMiddleware(s.healthHandler))
	mux.HandleFunc("/process", s.corsMiddleware(s.processHandler))
	mux.HandleFunc("/dictionary", s.corsMiddleware(s.dictionaryHandler))
	mux.HandleFunc("/ws/batch", s.batchWebSocketHandler)
	mux.Handle("/metrics", promhttp.Handler())
}
