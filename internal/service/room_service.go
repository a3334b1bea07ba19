package service

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/navikt/vrooms/internal/config"
	"github.com/navikt/vrooms/internal/models"
	"github.com/navikt/vrooms/internal/repository"
	"github.com/navikt/vrooms/internal/utils"
)

// Broadcaster fans an event out to every connection bound to a room.
// The websocket hub implements it; tests substitute a recorder.
type Broadcaster interface {
	BroadcastToRoom(code string, event *models.ServerEvent)
}

// RoomUpdateCallback is a function type for room update callbacks
type RoomUpdateCallback func(*models.Room)

// RoomService provides business logic for rooms, chat and voting. Every
// mutation runs as a load-mutate-save sequence under a per-room mutex,
// so concurrent operations on the same room can never lose updates;
// operations on different rooms proceed in parallel. Broadcasts are
// issued inside the critical section, after a successful save, so
// delivery order matches commit order.
type RoomService struct {
	repo        repository.Repository
	broadcaster Broadcaster

	codeLength   int
	codeAttempts int

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	updateCallbacks []RoomUpdateCallback
}

// NewRoomService creates a new RoomService with the given repository and
// broadcaster
func NewRoomService(repo repository.Repository, broadcaster Broadcaster, cfg config.RoomConfig) *RoomService {
	return &RoomService{
		repo:         repo,
		broadcaster:  broadcaster,
		codeLength:   cfg.CodeLength,
		codeAttempts: cfg.CodeAttempts,
		locks:        make(map[string]*sync.Mutex),
	}
}

// RegisterUpdateCallback registers a callback invoked after every
// committed room mutation. Used by the lobby status stream.
func (s *RoomService) RegisterUpdateCallback(callback RoomUpdateCallback) {
	s.updateCallbacks = append(s.updateCallbacks, callback)
}

// notifyUpdate calls all registered callbacks with the updated room
func (s *RoomService) notifyUpdate(room *models.Room) {
	for _, callback := range s.updateCallbacks {
		callback(room)
	}
}

// roomLock returns the mutex serializing access to one room code.
func (s *RoomService) roomLock(code string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()

	lock, ok := s.locks[code]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[code] = lock
	}
	return lock
}

// withRoom runs fn on the room stored under code while holding that
// room's mutex. The mutated room is saved before any of the events
// returned by fn are broadcast; if the save fails nothing is broadcast
// and the error is returned to the caller.
func (s *RoomService) withRoom(ctx context.Context, code string, fn func(*models.Room) ([]*models.ServerEvent, error)) error {
	lock := s.roomLock(code)
	lock.Lock()
	defer lock.Unlock()

	room, err := s.repo.GetRoom(ctx, code)
	if err != nil {
		return err
	}

	events, err := fn(room)
	if err != nil {
		return err
	}

	if err := s.repo.SaveRoom(ctx, room); err != nil {
		return fmt.Errorf("failed to save room %s: %w", code, err)
	}

	if s.broadcaster != nil {
		for _, event := range events {
			s.broadcaster.BroadcastToRoom(code, event)
		}
	}

	s.notifyUpdate(room)
	return nil
}

// CreateRoom allocates a unique room code and stores a freshly
// initialized room with the creator as its permanent admin. Codes are
// drawn at random and claimed check-and-save under the code's mutex;
// on collision a new code is drawn, up to the configured attempt count.
func (s *RoomService) CreateRoom(ctx context.Context, adminName, meetingTitle, mode string) (*models.Room, error) {
	for attempt := 0; attempt < s.codeAttempts; attempt++ {
		room := models.NewRoom(randomCode(s.codeLength), adminName, meetingTitle, mode)

		claimed, err := s.claimCode(ctx, room)
		if err != nil {
			return nil, err
		}
		if !claimed {
			continue
		}

		log.Printf("Room %s created with admin %s", room.Code, utils.SanitizeLogString(adminName))
		s.notifyUpdate(room)
		return room, nil
	}

	return nil, ErrCapacityExhausted
}

// RoomExists reports whether a room code is known.
func (s *RoomService) RoomExists(ctx context.Context, code string) (bool, error) {
	return s.repo.RoomExists(ctx, code)
}

// GetRoom retrieves a room by code.
func (s *RoomService) GetRoom(ctx context.Context, code string) (*models.Room, error) {
	return s.repo.GetRoom(ctx, code)
}

// DeleteRoom removes a room from the store. Connections still bound to
// it will fail their next operation with a not-found error.
func (s *RoomService) DeleteRoom(ctx context.Context, code string) error {
	lock := s.roomLock(code)
	lock.Lock()
	defer lock.Unlock()

	return s.repo.DeleteRoom(ctx, code)
}

// JoinRoom records a new member of the room and announces the arrival
// together with the one-time admin notice. It returns the room as
// persisted so the caller can hand the joining connection a snapshot.
func (s *RoomService) JoinRoom(ctx context.Context, code, name string) (*models.Room, error) {
	var joined *models.Room

	err := s.withRoom(ctx, code, func(room *models.Room) ([]*models.ServerEvent, error) {
		room.AddMember()
		joined = room
		return []*models.ServerEvent{
			models.NewChatMessage(name, "has entered the room"),
			models.NewSystemMessage(fmt.Sprintf("The admin of this room is %s.", room.Admin)),
		}, nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("%s joined room %s", utils.SanitizeLogString(name), code)
	return joined, nil
}

// LeaveRoom records a member leaving the room. The member count floors
// at zero regardless of how often this is called.
func (s *RoomService) LeaveRoom(ctx context.Context, code, name string) error {
	err := s.withRoom(ctx, code, func(room *models.Room) ([]*models.ServerEvent, error) {
		room.RemoveMember()
		return []*models.ServerEvent{
			models.NewChatMessage(name, "has left the room"),
		}, nil
	})
	if err != nil {
		return err
	}

	log.Printf("%s left room %s", utils.SanitizeLogString(name), code)
	return nil
}

// PostMessage appends a chat message to the room history and echoes it
// to every bound connection, including the sender.
func (s *RoomService) PostMessage(ctx context.Context, code, name, text string) error {
	return s.withRoom(ctx, code, func(room *models.Room) ([]*models.ServerEvent, error) {
		room.AddMessage(name, text)
		return []*models.ServerEvent{
			models.NewChatMessage(name, text),
		}, nil
	})
}

// ActivateButton sets the room's button flag. Admin only.
func (s *RoomService) ActivateButton(ctx context.Context, code, name string) error {
	return s.withRoom(ctx, code, func(room *models.Room) ([]*models.ServerEvent, error) {
		if !room.IsAdmin(name) {
			return nil, ErrForbidden
		}

		room.ButtonActivated = true
		return []*models.ServerEvent{
			models.NewButtonActivated(room.Code),
		}, nil
	})
}

// SetTask opens a fresh voting round, discarding any votes cast for a
// previous task. Admin only.
func (s *RoomService) SetTask(ctx context.Context, code, name, title string) error {
	return s.withRoom(ctx, code, func(room *models.Room) ([]*models.ServerEvent, error) {
		if !room.IsAdmin(name) {
			return nil, ErrForbidden
		}

		room.CurrentTask = models.NewTask(title)
		return []*models.ServerEvent{
			models.NewTaskUpdated(title),
		}, nil
	})
}

// SubmitVote records one participant's vote for the open task and
// announces it to the room. A second vote from the same name is
// rejected without a broadcast.
func (s *RoomService) SubmitVote(ctx context.Context, code, name string, value int) error {
	return s.withRoom(ctx, code, func(room *models.Room) ([]*models.ServerEvent, error) {
		if room.CurrentTask == nil {
			return nil, ErrNoTask
		}
		if !room.CurrentTask.AddVote(name, value) {
			return nil, ErrDuplicateVote
		}

		return []*models.ServerEvent{
			models.NewVoteSubmitted(name, value),
		}, nil
	})
}

// CloseVote computes and announces the outcome of the open round. The
// task is retained; a new task or an explicit reset starts the next
// round. Admin only.
func (s *RoomService) CloseVote(ctx context.Context, code, name string) (*models.VoteResult, error) {
	var result *models.VoteResult

	err := s.withRoom(ctx, code, func(room *models.Room) ([]*models.ServerEvent, error) {
		if !room.IsAdmin(name) {
			return nil, ErrForbidden
		}
		if room.CurrentTask == nil {
			return nil, ErrNoTask
		}

		result = room.CurrentTask.Result()
		if result == nil {
			return nil, ErrNoVotes
		}

		return []*models.ServerEvent{
			models.NewVotingResults(result),
		}, nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// ResetVote clears the votes of the current task while keeping its
// title, so the room can vote again. Admin only.
func (s *RoomService) ResetVote(ctx context.Context, code, name string) error {
	return s.withRoom(ctx, code, func(room *models.Room) ([]*models.ServerEvent, error) {
		if !room.IsAdmin(name) {
			return nil, ErrForbidden
		}
		if room.CurrentTask == nil {
			return nil, ErrNoTask
		}

		room.CurrentTask.ClearVotes()
		return []*models.ServerEvent{
			models.NewVoteReset(),
		}, nil
	})
}

// RoomStatusData represents one room in the lobby listing
type RoomStatusData struct {
	Code         string `json:"code"`
	MeetingTitle string `json:"meeting_title"`
	Members      int    `json:"members"`
	HasOpenTask  bool   `json:"has_open_task"`
	TaskTitle    string `json:"task_title,omitempty"`
	Votes        int    `json:"votes"`
}

// GetRoomStatusData returns all rooms formatted for the lobby view.
func (s *RoomService) GetRoomStatusData(ctx context.Context) ([]RoomStatusData, error) {
	rooms, err := s.repo.ListRooms(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]RoomStatusData, 0, len(rooms))
	for _, room := range rooms {
		data := RoomStatusData{
			Code:         room.Code,
			MeetingTitle: room.MeetingTitle,
			Members:      room.Members,
		}
		if room.CurrentTask != nil {
			data.HasOpenTask = true
			data.TaskTitle = room.CurrentTask.Title
			data.Votes = len(room.CurrentTask.Votes)
		}
		result = append(result, data)
	}

	return result, nil
}
