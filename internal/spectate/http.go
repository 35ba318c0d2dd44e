package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/google/uuid"
)

// writeTimeout bounds a single websocket write to a viewer.
const writeTimeout = 5 * time.Second

// Handler serves the hub over HTTP:
//
//	GET /matches          published matches
//	GET /matches/{id}     snapshot of one match
//	GET /watch?match=ID   websocket feed of notifications
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /matches", h.handleList)
	mux.HandleFunc("GET /matches/{id}", h.handleSnapshot)
	mux.HandleFunc("GET /watch", h.handleWatch)
	return mux
}

func (h *Hub) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.List())
}

func (h *Hub) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, "bad match id", http.StatusBadRequest)
		return
	}
	snap, err := h.Snapshot(id)
	if errors.Is(err, ErrUnknownMatch) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *Hub) handleWatch(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.URL.Query().Get("match"))
	if err != nil {
		http.Error(w, "bad match id", http.StatusBadRequest)
		return
	}
	feed, stop, err := h.Watch(id)
	if errors.Is(err, ErrUnknownMatch) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	defer stop()

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: h.insecure,
	})
	if err != nil {
		h.logger.Warn("websocket accept failed", "err", err)
		return
	}
	defer conn.CloseNow()

	// Viewers never send anything; CloseRead handles their control frames.
	ctx := conn.CloseRead(r.Context())
	h.logger.Debug("viewer connected", "match", id, "remote", r.RemoteAddr)

	for {
		select {
		case <-ctx.Done():
			h.logger.Debug("viewer left", "match", id, "remote", r.RemoteAddr)
			return
		case n, ok := <-feed:
			if !ok {
				conn.Close(websocket.StatusNormalClosure, "match ended")
				return
			}
			wctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := wsjson.Write(wctx, conn, n)
			cancel()
			if err != nil {
				h.logger.Debug("viewer write failed", "match", id, "err", err)
				return
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
