package web

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/navikt/vrooms/internal/models"
	"github.com/navikt/vrooms/internal/service"
	"github.com/r3labs/sse/v2"
)

// streamName is the single SSE stream carrying lobby status updates.
const streamName = "rooms"

// EventServer pushes lobby status updates to subscribed clients over
// server-sent events. Room members use the websocket channel; this
// stream only serves the lobby view, which needs the room list to
// refresh when any room changes.
type EventServer struct {
	server *sse.Server
	rooms  *service.RoomService
}

// NewEventServer creates an SSE server publishing on the rooms stream
// and registers it for room update notifications.
func NewEventServer(rooms *service.RoomService) *EventServer {
	server := sse.New()
	server.AutoReplay = false
	server.CreateStream(streamName)

	es := &EventServer{
		server: server,
		rooms:  rooms,
	}
	rooms.RegisterUpdateCallback(es.notifyRoomUpdate)

	return es
}

// ServeHTTP handles SSE subscriptions. The stream is selected with the
// ?stream=rooms query parameter; default it so plain GET /events works.
func (es *EventServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	if query.Get("stream") == "" {
		query.Set("stream", streamName)
		r.URL.RawQuery = query.Encode()
	}

	es.server.ServeHTTP(w, r)
}

// notifyRoomUpdate publishes a fresh lobby snapshot after a committed
// room change. Failures only cost the lobby a refresh, so they are
// logged and dropped.
func (es *EventServer) notifyRoomUpdate(_ *models.Room) {
	statuses, err := es.rooms.GetRoomStatusData(context.Background())
	if err != nil {
		log.Printf("Error building lobby snapshot for SSE update: %v", err)
		return
	}

	data, err := json.Marshal(statuses)
	if err != nil {
		log.Printf("Error encoding lobby snapshot: %v", err)
		return
	}

	es.server.Publish(streamName, &sse.Event{
		Event: []byte("update"),
		Data:  data,
	})
}

// Shutdown closes all subscriber connections.
func (es *EventServer) Shutdown() {
	es.server.Close()
}
