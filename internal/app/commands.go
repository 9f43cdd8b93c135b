package app

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/j-veylop/clutter-dashboard-tui/internal/logger"
	"github.com/j-veylop/clutter-dashboard-tui/internal/models"
	"github.com/j-veylop/clutter-dashboard-tui/internal/services"
)

const (
	// DefaultTickInterval is the default interval between ticks.
	DefaultTickInterval = 2 * time.Second

	// DefaultNotificationDuration is the default duration for notifications.
	DefaultNotificationDuration = 5 * time.Second

	// QuickNotificationDuration is for brief notifications.
	QuickNotificationDuration = 3 * time.Second

	// LongNotificationDuration is for important notifications.
	LongNotificationDuration = 10 * time.Second
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// SessionEnder signs the user out.
type SessionEnder interface {
	Logout(ctx context.Context) (*models.AuthResponse, error)
}

// tickCmd returns a command that sends a TickMsg after the specified interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

func defaultTickCmd() tea.Cmd {
	return tickCmd(DefaultTickInterval)
}

// subscribeToServicesCmd returns a command that subscribes to service events.
func subscribeToServicesCmd(mgr *services.Manager) tea.Cmd {
	ch, _ := mgr.Subscribe()
	return func() tea.Msg {
		return SubscriptionEventMsg{Channel: ch}
	}
}

// waitForServiceEventCmd returns a command that waits for the next service event.
func waitForServiceEventCmd(ch <-chan services.ServiceEvent) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return ServiceEventMsg{Event: event}
	}
}

// clearNotificationCmd returns a command that removes a notification after a delay.
func clearNotificationCmd(id string, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return RemoveNotificationMsg{ID: id}
	})
}

// logoutCmd ends the session. The local session is dropped even when the
// backend call fails, so the error is only reported.
func logoutCmd(s SessionEnder) tea.Cmd {
	return func() tea.Msg {
		_, err := s.Logout(context.Background())
		if err != nil {
			logger.Warn("logout request failed", "error", err)
		}
		return LogoutResultMsg{Error: err}
	}
}

// copyToClipboardCmd writes text to the system clipboard.
func copyToClipboardCmd(text, label string) tea.Cmd {
	return func() tea.Msg {
		if err := writeClipboard(text); err != nil {
			logger.Warn("clipboard write failed", "error", err)
			return ClipboardResultMsg{Label: label, Error: err}
		}
		return ClipboardResultMsg{Label: label, Success: true}
	}
}

// Notify returns a command that raises a titled toast.
func Notify(kind NotificationType, title, message string) tea.Cmd {
	duration := DefaultNotificationDuration
	switch kind {
	case NotificationError:
		duration = LongNotificationDuration
	case NotificationInfo:
		duration = QuickNotificationDuration
	case NotificationLoading:
		duration = 0
	}
	return func() tea.Msg {
		return AddNotificationMsg{
			Type:     kind,
			Title:    title,
			Message:  message,
			Duration: duration,
		}
	}
}

// NotifySuccess returns a command that adds a success notification.
func NotifySuccess(message string) tea.Cmd {
	return Notify(NotificationSuccess, "", message)
}

// NotifyError returns a command that adds an error notification.
func NotifyError(message string) tea.Cmd {
	return Notify(NotificationError, "", message)
}

// NotifyInfo returns a command that adds an info notification.
func NotifyInfo(message string) tea.Cmd {
	return Notify(NotificationInfo, "", message)
}

// Navigate returns a command that shows page with params.
func Navigate(page PageID, params NavigateParams) tea.Cmd {
	return func() tea.Msg {
		return NavigateMsg{Page: page, Params: params}
	}
}

// CopyToClipboard returns a command that asks the shell to copy text.
func CopyToClipboard(text, label string) tea.Cmd {
	return func() tea.Msg {
		return CopyToClipboardMsg{Text: text, Label: label}
	}
}

// SetUser returns a command that records the signed-in user.
func SetUser(user *models.User) tea.Cmd {
	return func() tea.Msg {
		return UserLoadedMsg{User: user}
	}
}

// Logout returns a command that asks the shell to sign out.
func Logout() tea.Cmd {
	return func() tea.Msg {
		return LogoutMsg{}
	}
}
