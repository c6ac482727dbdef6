package realtime

import (
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recvEvent(t *testing.T, c *Client) Event {
	t.Helper()
	select {
	case raw, ok := <-c.Send:
		require.True(t, ok, "send channel closed")
		var ev Event
		require.NoError(t, sonic.Unmarshal(raw, &ev))
		return ev
	case <-time.After(time.Second):
		t.Fatal("no event received")
		return Event{}
	}
}

func TestHubPublishToRoom(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	teacher := NewClient(SchoolRoom("school-1"))
	other := NewClient(SchoolRoom("school-2"))
	hub.Register(teacher)
	hub.Register(other)

	waitForRoom(t, hub, SchoolRoom("school-1"), 1)
	waitForRoom(t, hub, SchoolRoom("school-2"), 1)

	hub.Publish(Event{Name: EvAssignmentCreated, Payload: map[string]string{"id": "a1"}}, SchoolRoom("school-1"))

	ev := recvEvent(t, teacher)
	assert.Equal(t, EvAssignmentCreated, ev.Name)

	select {
	case <-other.Send:
		t.Fatal("event leaked into another school's room")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubMultiRoomClientReceivesOnce(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	parent := NewClient(UserRoom("u-1"), SchoolRoom("school-1"))
	hub.Register(parent)
	waitForRoom(t, hub, UserRoom("u-1"), 1)

	hub.Publish(Event{Name: EvBadgeEarned}, UserRoom("u-1"), SchoolRoom("school-1"))

	_ = recvEvent(t, parent)
	select {
	case <-parent.Send:
		t.Fatal("client subscribed to both rooms received the event twice")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	c := NewClient(UserRoom("u-9"))
	hub.Register(c)
	waitForRoom(t, hub, UserRoom("u-9"), 1)

	hub.Unregister(c)
	waitForRoom(t, hub, UserRoom("u-9"), 0)

	_, ok := <-c.Send
	assert.False(t, ok, "send channel should be closed after unregister")

	// publishing into the emptied room must not panic
	hub.Publish(Event{Name: EvStudentActivityNew}, UserRoom("u-9"))
}

func waitForRoom(t *testing.T, hub *Hub, room string, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if hub.RoomCount(room) == want {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatalf("room %s never reached %d subscribers", room, want)
}
