package web_test

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/navikt/vrooms/internal/config"
	"github.com/navikt/vrooms/internal/repository/memory"
	"github.com/navikt/vrooms/internal/service"
	"github.com/navikt/vrooms/internal/web"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventServerPublishesLobbyUpdates(t *testing.T) {
	repo := memory.NewRepository()
	svc := service.NewRoomService(repo, nil, config.RoomConfig{CodeLength: 4, CodeAttempts: 100})
	events := web.NewEventServer(svc)
	defer events.Shutdown()

	ts := httptest.NewServer(events)
	defer ts.Close()

	// Subscribe without an explicit stream parameter; the handler
	// defaults to the rooms stream.
	req, err := http.NewRequest(http.MethodGet, ts.URL+"/events", nil)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req = req.WithContext(ctx)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Read events off the stream in the background.
	updates := make(chan string, 10)
	go func() {
		scanner := bufio.NewScanner(resp.Body)
		sawUpdate := false
		for scanner.Scan() {
			line := scanner.Text()
			if line == "event: update" || line == "event:update" {
				sawUpdate = true
				continue
			}
			if sawUpdate && strings.HasPrefix(line, "data:") {
				updates <- strings.TrimSpace(strings.TrimPrefix(line, "data:"))
				sawUpdate = false
			}
		}
	}()

	// Give the subscription a moment to register before publishing.
	time.Sleep(100 * time.Millisecond)

	room, err := svc.CreateRoom(context.Background(), "alice", "Sprint 12", "")
	require.NoError(t, err)

	select {
	case payload := <-updates:
		var statuses []service.RoomStatusData
		require.NoError(t, json.Unmarshal([]byte(payload), &statuses))
		require.Len(t, statuses, 1)
		assert.Equal(t, room.Code, statuses[0].Code)
		assert.Equal(t, "Sprint 12", statuses[0].MeetingTitle)
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for lobby update event")
	}
}
