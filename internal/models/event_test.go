package models_test

import (
	"encoding/json"
	"testing"

	"github.com/navikt/vrooms/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientEventDecoding(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want models.ClientEvent
	}{
		{
			name: "join existing room",
			raw:  `{"type":"join","name":"alice","room":"ABCD"}`,
			want: models.ClientEvent{Type: models.EventJoin, Name: "alice", Room: "ABCD"},
		},
		{
			name: "join with create request",
			raw:  `{"type":"join","name":"alice","create":true,"title":"Sprint 12","mode":"poker"}`,
			want: models.ClientEvent{Type: models.EventJoin, Name: "alice", Create: true, Title: "Sprint 12", Mode: "poker"},
		},
		{
			name: "chat message",
			raw:  `{"type":"message","data":"hello"}`,
			want: models.ClientEvent{Type: models.EventMessage, Data: "hello"},
		},
		{
			name: "vote of zero is distinguishable from no vote",
			raw:  `{"type":"submitVote","vote":0}`,
			want: models.ClientEvent{Type: models.EventSubmitVote, Vote: intPtr(0)},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var got models.ClientEvent
			require.NoError(t, json.Unmarshal([]byte(tc.raw), &got))
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestSubmitVoteWithoutValue(t *testing.T) {
	var got models.ClientEvent
	require.NoError(t, json.Unmarshal([]byte(`{"type":"submitVote"}`), &got))
	assert.Nil(t, got.Vote)
}

func TestNewJoinedSnapshot(t *testing.T) {
	room := models.NewRoom("ABCD", "alice", "Sprint 12", "poker")
	room.AddMessage("alice", "hi")
	room.CurrentTask = models.NewTask("login page")

	event := models.NewJoined(room, "bob")

	require.NotNil(t, event.State)
	assert.Equal(t, models.EventJoined, event.Type)
	assert.Equal(t, "ABCD", event.State.Room)
	assert.Equal(t, "bob", event.State.Name)
	assert.Equal(t, "alice", event.State.Admin)
	assert.False(t, event.State.IsAdmin)
	assert.Equal(t, room.Messages, event.State.Messages)
	assert.Equal(t, room.CurrentTask, event.State.CurrentTask)
}

func TestVoteSubmittedCarriesValue(t *testing.T) {
	event := models.NewVoteSubmitted("alice", 0)

	data, err := json.Marshal(event)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"voteSubmitted","name":"alice","vote":0}`, string(data))
}

func TestVotingResultsCarriesUnanimousZero(t *testing.T) {
	task := models.NewTask("login page")
	require.True(t, task.AddVote("alice", 0))
	require.True(t, task.AddVote("bob", 0))

	event := models.NewVotingResults(task.Result())

	data, err := json.Marshal(event)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"votingResults","result":{"unanimous":true,"value":0}}`, string(data))
}

func TestSystemMessageSender(t *testing.T) {
	event := models.NewSystemMessage("The admin of this room is alice.")
	assert.Equal(t, models.SystemName, event.Name)
	assert.Equal(t, models.EventMessage, event.Type)
}

func intPtr(v int) *int { return &v }
