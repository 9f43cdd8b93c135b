package models

import (
	"fmt"
	"time"
)

// Site is a tracked website owned by exactly one user.
type Site struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	SiteURL   string    `json:"site_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateSiteResponse is returned when a site is registered.
type CreateSiteResponse struct {
	SiteID  string `json:"site_id"`
	Message string `json:"message"`
}

// DeleteSiteResponse is returned when a site is removed.
type DeleteSiteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// DefaultTrackerScriptURL is the script that reports visits to the backend.
const DefaultTrackerScriptURL = "https://raw.githubusercontent.com/ThEditor/clutter-ink/refs/heads/main/script.js"

// TrackingSnippet returns the HTML a site owner pastes into the <head> of
// their pages so the tracker reports visits for siteID.
func TrackingSnippet(siteID, scriptURL string) string {
	if scriptURL == "" {
		scriptURL = DefaultTrackerScriptURL
	}
	return fmt.Sprintf(`<script>window.clutterConfig={siteId:"%s"}</script><script defer src="%s"></script>`,
		siteID, scriptURL)
}
