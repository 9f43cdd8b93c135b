package app

import (
	"time"

	"github.com/j-veylop/clutter-dashboard-tui/internal/models"
	"github.com/j-veylop/clutter-dashboard-tui/internal/services"
)

// TickMsg is sent periodically to expire notifications.
type TickMsg struct {
	Time time.Time
}

// NavigateParams carries the query-like parameters of a page entry.
type NavigateParams struct {
	// SiteID selects a site on the dashboard.
	SiteID string
}

// NavigateMsg requests showing a page. The page's Enter runs on every
// navigation, including re-entry of the active page.
type NavigateMsg struct {
	Page   PageID
	Params NavigateParams
}

// AddNotificationMsg requests adding a new notification.
type AddNotificationMsg struct {
	Type     NotificationType
	Title    string
	Message  string
	Duration time.Duration
}

// RemoveNotificationMsg requests removal of a notification.
type RemoveNotificationMsg struct {
	ID string
}

// UserLoadedMsg records the signed-in user in the shared state.
type UserLoadedMsg struct {
	User *models.User
}

// LogoutMsg requests ending the session.
type LogoutMsg struct{}

// LogoutResultMsg contains the result of a logout.
type LogoutResultMsg struct {
	Error error
}

// ServiceEventMsg wraps a service event from the service manager.
type ServiceEventMsg struct {
	Event services.ServiceEvent
}

// SubscriptionEventMsg is the callback wrapper for service subscription.
type SubscriptionEventMsg struct {
	Channel chan services.ServiceEvent
}

// CopyToClipboardMsg requests copying text to clipboard.
type CopyToClipboardMsg struct {
	Text string
	// Label names what was copied in the confirmation toast.
	Label string
}

// ClipboardResultMsg contains the result of a clipboard operation.
type ClipboardResultMsg struct {
	Label   string
	Success bool
	Error   error
}

// ToggleHelpMsg toggles the help display.
type ToggleHelpMsg struct{}

// QuitMsg requests the application to quit.
type QuitMsg struct{}
