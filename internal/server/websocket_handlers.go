package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/ocrtools/textpost/internal/batch"
)

// WebSocket upgrader with reasonable defaults.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow connections from any origin in development
		// In production, you should check against allowed origins
		return true
	},
}

// WebSocketBatchRequest starts a batch run over WebSocket.
type WebSocketBatchRequest struct {
	Sources         []string `json:"sources"`
	Recursive       bool     `json:"recursive,omitempty"`
	IncludePatterns []string `json:"include_patterns,omitempty"`
	ExcludePatterns []string `json:"exclude_patterns,omitempty"`
}

// WebSocketBatchMessage is a message streamed back during a batch run.
type WebSocketBatchMessage struct {
	Type      string        `json:"type"` // "started", "progress", "item_error", "complete", "error"
	Completed int           `json:"completed,omitempty"`
	Total     int           `json:"total,omitempty"`
	SourceID  string        `json:"source_id,omitempty"`
	State     string        `json:"state,omitempty"`
	Error     string        `json:"error,omitempty"`
	Result    *batch.Result `json:"result,omitempty"`
}

// wsBatchCallback streams batch progress over a WebSocket connection.
// Writes are serialized since the orchestrator and keepalive goroutines
// may write concurrently.
type wsBatchCallback struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func (c *wsBatchCallback) send(msg WebSocketBatchMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("Failed to marshal WebSocket batch message", "error", err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Error("Failed to send WebSocket batch message", "error", err)
		return
	}
	websocketMessagesTotal.WithLabelValues("sent").Inc()
}

func (c *wsBatchCallback) OnStart(total int) {
	c.send(WebSocketBatchMessage{Type: "started", Total: total})
}

func (c *wsBatchCallback) OnProgress(completed, total int, sourceID string) {
	c.send(WebSocketBatchMessage{Type: "progress", Completed: completed, Total: total, SourceID: sourceID})
}

func (c *wsBatchCallback) OnItemError(sourceID string, err error) {
	c.send(WebSocketBatchMessage{Type: "item_error", SourceID: sourceID, Error: err.Error()})
}

func (c *wsBatchCallback) OnComplete(result *batch.Result) {
	c.send(WebSocketBatchMessage{Type: "complete", State: result.State.String(), Result: result})
}

// batchWebSocketHandler handles WebSocket connections for streaming batch runs.
func (s *Server) batchWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade connection to WebSocket", "error", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	websocketConnections.Inc()
	defer websocketConnections.Dec()

	slog.Info("WebSocket connection established", "remote_addr", r.RemoteAddr)

	s.handleBatchConnection(r.Context(), conn)
}

// handleBatchConnection processes batch requests from a WebSocket connection.
func (s *Server) handleBatchConnection(ctx context.Context, conn *websocket.Conn) {
	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("WebSocket error", "error", err)
			}
			break
		}

		websocketMessagesTotal.WithLabelValues("received").Inc()

		if messageType == websocket.TextMessage {
			s.handleBatchRequest(ctx, conn, data)
		}
	}
}

// handleBatchRequest runs one batch and streams its progress.
func (s *Server) handleBatchRequest(ctx context.Context, conn *websocket.Conn, data []byte) {
	cb := &wsBatchCallback{conn: conn}

	var req WebSocketBatchRequest
	if err := json.Unmarshal(data, &req); err != nil {
		cb.send(WebSocketBatchMessage{Type: "error", Error: fmt.Sprintf("Failed to parse request: %v", err)})
		return
	}

	if len(req.Sources) == 0 {
		cb.send(WebSocketBatchMessage{Type: "error", Error: "No sources provided"})
		return
	}

	include := req.IncludePatterns
	if len(include) == 0 {
		include = batch.DefaultIncludePatterns
	}

	sources, err := batch.DiscoverSources(req.Sources, req.Recursive, include, req.ExcludePatterns)
	if err != nil {
		cb.send(WebSocketBatchMessage{Type: "error", Error: fmt.Sprintf("Source discovery failed: %v", err)})
		return
	}
	if len(sources) == 0 {
		cb.send(WebSocketBatchMessage{Type: "error", Error: "No matching sources found"})
		return
	}

	orch := batch.NewOrchestrator(s.processor, cb)
	if err := orch.Start(ctx, sources, s.engine); err != nil {
		cb.send(WebSocketBatchMessage{Type: "error", Error: err.Error()})
		return
	}
	orch.Wait()
}
