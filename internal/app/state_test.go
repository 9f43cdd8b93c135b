package app

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-veylop/clutter-dashboard-tui/internal/models"
)

func TestNewState(t *testing.T) {
	s := NewState()
	require.NotNil(t, s)
	assert.Nil(t, s.User())
	assert.Empty(t, s.GetNotifications())
}

func TestState_User(t *testing.T) {
	s := NewState()

	s.SetUser(&models.User{ID: "u1", Username: "ada"})
	require.NotNil(t, s.User())
	assert.Equal(t, "ada", s.User().Username)
	assert.False(t, s.UserFetchedAt().IsZero())

	s.ClearUser()
	assert.Nil(t, s.User())
	assert.True(t, s.UserFetchedAt().IsZero())
}

func TestState_Notifications(t *testing.T) {
	s := NewState()

	id := s.AddNotification(NotificationInfo, "", "test", time.Minute)
	assert.NotEmpty(t, id)

	notifs := s.GetNotifications()
	require.Len(t, notifs, 1)
	assert.Equal(t, "test", notifs[0].Message)

	s.RemoveNotification(id)
	assert.Empty(t, s.GetNotifications())
}

func TestState_NotificationIDsAreUnique(t *testing.T) {
	s := NewState()
	a := s.AddNotification(NotificationInfo, "", "a", 0)
	b := s.AddNotification(NotificationInfo, "", "b", 0)
	assert.NotEqual(t, a, b)
}

func TestState_NotificationCap(t *testing.T) {
	s := NewState()
	for i := range 15 {
		s.AddNotification(NotificationInfo, "", fmt.Sprintf("n%d", i), 0)
	}

	notifs := s.GetNotifications()
	require.Len(t, notifs, maxNotifications)
	assert.Equal(t, "n5", notifs[0].Message)
	assert.Equal(t, "n14", notifs[len(notifs)-1].Message)
}

func TestState_ClearExpiredNotifications(t *testing.T) {
	s := NewState()

	s.notifications = append(s.notifications, Notification{
		ID:        "expired",
		CreatedAt: time.Now().Add(-2 * time.Minute),
		Duration:  time.Minute,
	})
	s.notifications = append(s.notifications, Notification{
		ID:        "active",
		CreatedAt: time.Now(),
		Duration:  time.Minute,
	})
	s.notifications = append(s.notifications, Notification{
		ID:        "sticky",
		CreatedAt: time.Now().Add(-time.Hour),
	})

	s.ClearExpiredNotifications()

	ids := make([]string, 0, len(s.notifications))
	for _, n := range s.notifications {
		ids = append(ids, n.ID)
	}
	assert.Equal(t, []string{"active", "sticky"}, ids)
}

func TestState_LoadingNotification(t *testing.T) {
	s := NewState()

	s.SetLoadingNotification("Loading...")
	s.SetLoadingNotification("Still loading...")

	notifs := s.GetNotifications()
	require.Len(t, notifs, 1)
	assert.Equal(t, LoadingNotificationID, notifs[0].ID)
	assert.Equal(t, NotificationLoading, notifs[0].Type)
	assert.Equal(t, "Still loading...", notifs[0].Message)

	s.RemoveNotification(LoadingNotificationID)
	assert.Empty(t, s.GetNotifications())
}

func TestState_ClearAllNotifications(t *testing.T) {
	s := NewState()
	s.AddNotification(NotificationError, "Error", "boom", time.Minute)
	s.SetLoadingNotification("Loading...")

	s.ClearAllNotifications()
	assert.Empty(t, s.GetNotifications())
}

func TestNotification_Text(t *testing.T) {
	tests := []struct {
		name string
		n    Notification
		want string
	}{
		{"MessageOnly", Notification{Message: "Saved"}, "Saved"},
		{"TitleOnly", Notification{Title: "Error"}, "Error"},
		{"Both", Notification{Title: "Code Sent", Message: "Check your inbox"}, "Code Sent: Check your inbox"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.n.Text())
		})
	}
}

func TestNotificationType_String(t *testing.T) {
	assert.Equal(t, "success", NotificationSuccess.String())
	assert.Equal(t, "error", NotificationError.String())
	assert.Equal(t, "warning", NotificationWarning.String())
	assert.Equal(t, "info", NotificationInfo.String())
	assert.Equal(t, "loading", NotificationLoading.String())
	assert.Equal(t, "unknown", NotificationType(99).String())
}
