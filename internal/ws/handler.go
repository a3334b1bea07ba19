package ws

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/navikt/vrooms/internal/models"
	"github.com/navikt/vrooms/internal/repository"
	"github.com/navikt/vrooms/internal/service"
	"github.com/navikt/vrooms/internal/utils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Names are self-asserted and rooms are code-addressed; the
		// origin carries no trust we could verify
		return true
	},
}

// Handler upgrades HTTP requests to websocket connections and runs the
// per-connection event loop.
type Handler struct {
	hub   *Hub
	rooms *service.RoomService
}

// NewHandler creates a websocket handler backed by the given hub and
// room service.
func NewHandler(hub *Hub, rooms *service.RoomService) *Handler {
	return &Handler{
		hub:   hub,
		rooms: rooms,
	}
}

// ServeHTTP implements the websocket endpoint.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Error upgrading websocket connection: %v", err)
		return
	}

	client := newClient(conn)
	go client.writePump()
	h.readLoop(client)
}

// readLoop reads inbound events until the connection drops, then runs
// the unbind path exactly once.
func (h *Handler) readLoop(client *Client) {
	defer h.disconnect(client)

	client.conn.SetReadLimit(maxMessageSize)
	client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		client.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := client.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("Unexpected websocket close: %v", err)
			}
			return
		}

		var event models.ClientEvent
		if err := json.Unmarshal(message, &event); err != nil {
			client.sendEvent(models.NewVoteError("invalid event payload"))
			continue
		}

		h.dispatch(client, &event)
	}
}

// disconnect tears a connection down. A bound client is removed from
// its broadcast group and its departure announced; the send channel is
// closed last, once no broadcast can reach it anymore.
func (h *Handler) disconnect(client *Client) {
	client.conn.Close()

	if client.bound() {
		h.hub.unregister(client)
		if err := h.rooms.LeaveRoom(context.Background(), client.room, client.name); err != nil {
			log.Printf("Error leaving room %s: %v", client.room, err)
		}
	}

	close(client.send)
}

// dispatch routes one inbound event. Room-scoped events from an unbound
// connection are rejected with a directed error rather than defaulting
// to any room.
func (h *Handler) dispatch(client *Client, event *models.ClientEvent) {
	ctx := context.Background()

	if event.Type == models.EventJoin {
		h.handleJoin(ctx, client, event)
		return
	}

	if !client.bound() {
		client.sendEvent(models.NewVoteError("join a room first"))
		return
	}

	var err error
	switch event.Type {
	case models.EventMessage:
		err = h.rooms.PostMessage(ctx, client.room, client.name, event.Data)

	case models.EventActivateButton:
		err = h.rooms.ActivateButton(ctx, client.room, client.name)

	case models.EventSetTask, models.EventNewTask:
		err = h.rooms.SetTask(ctx, client.room, client.name, event.Title)

	case models.EventSubmitVote:
		if event.Vote == nil {
			client.sendEvent(models.NewVoteError("a numeric vote value is required"))
			return
		}
		err = h.rooms.SubmitVote(ctx, client.room, client.name, *event.Vote)

	case models.EventCloseVote:
		_, err = h.rooms.CloseVote(ctx, client.room, client.name)

	case models.EventResetVote:
		err = h.rooms.ResetVote(ctx, client.room, client.name)

	default:
		client.sendEvent(models.NewVoteError("unknown event type"))
		return
	}

	if err != nil {
		client.sendEvent(models.NewVoteError(noticeFor(err)))
	}
}

// handleJoin binds the connection to a room, creating one first when
// the event asks for it.
func (h *Handler) handleJoin(ctx context.Context, client *Client, event *models.ClientEvent) {
	if client.bound() {
		client.sendEvent(models.NewVoteError("this connection has already joined a room"))
		return
	}
	if event.Name == "" {
		client.sendEvent(models.NewVoteError("a name is required to join"))
		return
	}

	code := event.Room
	if event.Create {
		room, err := h.rooms.CreateRoom(ctx, event.Name, event.Title, event.Mode)
		if err != nil {
			client.sendEvent(models.NewVoteError(noticeFor(err)))
			return
		}
		code = room.Code
	} else if code == "" {
		client.sendEvent(models.NewVoteError("a room code is required to join"))
		return
	}

	// Bind and enroll before joining so the connection receives its own
	// arrival broadcast
	client.room = code
	client.name = event.Name
	h.hub.register(client)

	room, err := h.rooms.JoinRoom(ctx, code, event.Name)
	if err != nil {
		h.hub.unregister(client)
		client.room = ""
		client.name = ""

		log.Printf("Join failed for room %s: %v", utils.SanitizeLogString(code), err)
		client.sendEvent(models.NewVoteError(noticeFor(err)))
		return
	}

	client.sendEvent(models.NewJoined(room, event.Name))
}

// noticeFor maps an operation error to the user-visible notice sent to
// the requesting connection only.
func noticeFor(err error) string {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return "Room does not exist."
	case errors.Is(err, service.ErrForbidden):
		return "Only the room admin can do that."
	case errors.Is(err, service.ErrDuplicateVote):
		return "You have already voted for this task."
	case errors.Is(err, service.ErrNoTask):
		return "No task is open for voting."
	case errors.Is(err, service.ErrNoVotes):
		return "No votes have been submitted yet."
	case errors.Is(err, service.ErrCapacityExhausted):
		return "No room codes are available right now, try again later."
	default:
		return "Something went wrong, please try again."
	}
}
