package models

// EventType discriminates websocket events in both directions.
type EventType string

// Inbound event types sent by clients.
const (
	EventJoin           EventType = "join"
	EventMessage        EventType = "message"
	EventActivateButton EventType = "activateButton"
	EventSetTask        EventType = "setTask"
	EventNewTask        EventType = "newTask"
	EventSubmitVote     EventType = "submitVote"
	EventCloseVote      EventType = "closeVote"
	EventResetVote      EventType = "resetVote"
)

// Outbound event types sent to clients.
const (
	EventJoined          EventType = "joined"
	EventButtonActivated EventType = "buttonActivated"
	EventTaskUpdated     EventType = "taskUpdated"
	EventVoteSubmitted   EventType = "voteSubmitted"
	EventVotingResults   EventType = "votingResults"
	EventVoteReset       EventType = "voteReset"
	EventVoteError       EventType = "voteError"
)

// ClientEvent is an inbound message from a connected participant. The
// set of populated fields depends on Type; unknown fields are ignored.
type ClientEvent struct {
	Type EventType `json:"type"`

	// join fields
	Name   string `json:"name,omitempty"`
	Room   string `json:"room,omitempty"`
	Create bool   `json:"create,omitempty"`
	Title  string `json:"title,omitempty"`
	Mode   string `json:"mode,omitempty"`

	// message payload
	Data string `json:"data,omitempty"`

	// submitVote payload; a pointer so a missing vote is distinguishable
	// from an explicit zero
	Vote *int `json:"vote,omitempty"`
}

// ServerEvent is an outbound message, either fanned out to every
// connection bound to a room or directed at a single connection.
type ServerEvent struct {
	Type    EventType   `json:"type"`
	Name    string      `json:"name,omitempty"`
	Message string      `json:"message,omitempty"`
	Room    string      `json:"room,omitempty"`
	Title   string      `json:"title,omitempty"`
	Vote    *int        `json:"vote,omitempty"`
	Result  *VoteResult `json:"result,omitempty"`
	State   *RoomState  `json:"state,omitempty"`
}

// RoomState is the directed snapshot a client needs to render a room it
// has just joined.
type RoomState struct {
	Room            string    `json:"room"`
	Name            string    `json:"name"`
	Admin           string    `json:"admin"`
	IsAdmin         bool      `json:"is_admin"`
	MeetingTitle    string    `json:"meeting_title"`
	Mode            string    `json:"mode,omitempty"`
	ButtonActivated bool      `json:"button_activated"`
	CurrentTask     *Task     `json:"current_task,omitempty"`
	Messages        []Message `json:"messages"`
}

// NewChatMessage creates a chat echo event carrying the sender's name.
func NewChatMessage(name, text string) *ServerEvent {
	return &ServerEvent{Type: EventMessage, Name: name, Message: text}
}

// NewSystemMessage creates a room-wide system notice.
func NewSystemMessage(text string) *ServerEvent {
	return &ServerEvent{Type: EventMessage, Name: SystemName, Message: text}
}

// NewJoined creates the directed snapshot sent to a participant that
// just bound to a room.
func NewJoined(room *Room, name string) *ServerEvent {
	return &ServerEvent{
		Type: EventJoined,
		State: &RoomState{
			Room:            room.Code,
			Name:            name,
			Admin:           room.Admin,
			IsAdmin:         room.IsAdmin(name),
			MeetingTitle:    room.MeetingTitle,
			Mode:            room.Mode,
			ButtonActivated: room.ButtonActivated,
			CurrentTask:     room.CurrentTask,
			Messages:        room.Messages,
		},
	}
}

// NewButtonActivated creates the room-wide button activation event.
func NewButtonActivated(roomCode string) *ServerEvent {
	return &ServerEvent{Type: EventButtonActivated, Room: roomCode}
}

// NewTaskUpdated announces a fresh voting round to the room.
func NewTaskUpdated(title string) *ServerEvent {
	return &ServerEvent{Type: EventTaskUpdated, Title: title}
}

// NewVoteSubmitted announces a recorded vote to the room. Individual
// votes are revealed as they arrive; clients use this to disable the
// voter's own controls.
func NewVoteSubmitted(name string, value int) *ServerEvent {
	return &ServerEvent{Type: EventVoteSubmitted, Name: name, Vote: &value}
}

// NewVotingResults announces the outcome of a closed round to the room.
func NewVotingResults(result *VoteResult) *ServerEvent {
	return &ServerEvent{Type: EventVotingResults, Result: result}
}

// NewVoteReset tells the room to re-show its voting controls.
func NewVoteReset() *ServerEvent {
	return &ServerEvent{Type: EventVoteReset}
}

// NewVoteError creates a directed error notice for the requesting
// connection only; it is never broadcast.
func NewVoteError(message string) *ServerEvent {
	return &ServerEvent{Type: EventVoteError, Message: message}
}
