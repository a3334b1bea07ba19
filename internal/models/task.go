package models

// Vote is one participant's estimate for the current task.
type Vote struct {
	Name string `json:"name"`
	Vote int    `json:"vote"`
}

// Task is one round of estimation voting. Votes are keyed by
// participant name; a name appears at most once per round.
type Task struct {
	Title string `json:"title"`
	Votes []Vote `json:"votes"`
}

// NewTask creates a fresh voting round with no votes.
func NewTask(title string) *Task {
	return &Task{
		Title: title,
		Votes: []Vote{},
	}
}

// HasVoted reports whether name already cast a vote this round.
func (t *Task) HasVoted(name string) bool {
	for _, v := range t.Votes {
		if v.Name == name {
			return true
		}
	}
	return false
}

// AddVote records a vote in submission order. It returns false when the
// name has already voted; the existing vote is never overwritten.
func (t *Task) AddVote(name string, value int) bool {
	if t.HasVoted(name) {
		return false
	}
	t.Votes = append(t.Votes, Vote{Name: name, Vote: value})
	return true
}

// ClearVotes drops all votes but keeps the task title, so the round can
// be re-run.
func (t *Task) ClearVotes() {
	t.Votes = []Vote{}
}

// VoteResult is the outcome of a closed voting round. When the round is
// unanimous only Value is set; otherwise Lowest and Highest carry the
// outlier votes. Value is a pointer so a unanimous zero estimate still
// carries its value on the wire.
type VoteResult struct {
	Unanimous bool  `json:"unanimous"`
	Value     *int  `json:"value,omitempty"`
	Lowest    *Vote `json:"lowest,omitempty"`
	Highest   *Vote `json:"highest,omitempty"`
}

// Result computes the outcome of the round, or nil when no votes have
// been cast. Ties at either extreme resolve to the earliest submission.
func (t *Task) Result() *VoteResult {
	if len(t.Votes) == 0 {
		return nil
	}

	lowest := t.Votes[0]
	highest := t.Votes[0]

	for _, v := range t.Votes[1:] {
		if v.Vote < lowest.Vote {
			lowest = v
		}
		if v.Vote > highest.Vote {
			highest = v
		}
	}

	if lowest.Vote == highest.Vote {
		value := lowest.Vote
		return &VoteResult{Unanimous: true, Value: &value}
	}

	low := lowest
	high := highest
	return &VoteResult{Lowest: &low, Highest: &high}
}
