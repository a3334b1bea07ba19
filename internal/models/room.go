package models

// SystemName is the reserved sender name used for system notices.
const SystemName = "System"

// Message is a single line in a room's chat history. System notices use
// the reserved sender name "System".
type Message struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}

// Room represents a code-addressed collaborative session. The admin is
// the participant who created the room and is fixed for its lifetime.
type Room struct {
	Code            string    `json:"code"`
	Admin           string    `json:"admin"`
	Members         int       `json:"members"`
	MeetingTitle    string    `json:"meeting_title"`
	Mode            string    `json:"mode,omitempty"`
	ButtonActivated bool      `json:"button_activated"`
	Messages        []Message `json:"messages"`
	CurrentTask     *Task     `json:"current_task,omitempty"`
}

// NewRoom creates a freshly initialized room with no members, no
// messages and no open task.
func NewRoom(code, admin, meetingTitle, mode string) *Room {
	return &Room{
		Code:         code,
		Admin:        admin,
		MeetingTitle: meetingTitle,
		Mode:         mode,
		Messages:     []Message{},
	}
}

// IsAdmin reports whether name is the room's creator.
func (r *Room) IsAdmin(name string) bool {
	return name != "" && name == r.Admin
}

// AddMessage appends a chat line; insertion order is chronological.
func (r *Room) AddMessage(name, text string) {
	r.Messages = append(r.Messages, Message{Name: name, Message: text})
}

// AddMember increments the live member count.
func (r *Room) AddMember() {
	r.Members++
}

// RemoveMember decrements the live member count, flooring at zero so a
// stray disconnect can never drive the count negative.
func (r *Room) RemoveMember() {
	if r.Members > 0 {
		r.Members--
	}
}
