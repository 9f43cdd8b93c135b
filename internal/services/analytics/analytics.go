// Package analytics holds the selection and request-ordering rules the
// dashboard applies to backend analytics.
package analytics

import (
	"sync/atomic"
	"time"

	"github.com/j-veylop/clutter-dashboard-tui/internal/models"
)

const (
	// Lookback is how far before now the analytics window starts.
	Lookback = 28 * 24 * time.Hour
	// Lookahead extends the window past now so today is always included.
	Lookahead = 24 * time.Hour
)

// Window returns the analytics date range for now.
func Window(now time.Time) (from, to time.Time) {
	return now.Add(-Lookback), now.Add(Lookahead)
}

// SelectSite picks the site whose id equals wantID, falling back to the first
// site. It reports false when sites is empty.
func SelectSite(sites []models.Site, wantID string) (models.Site, bool) {
	if len(sites) == 0 {
		return models.Site{}, false
	}
	if i := IndexOf(sites, wantID); i >= 0 {
		return sites[i], true
	}
	return sites[0], true
}

// IndexOf returns the position of the site with id, or -1.
func IndexOf(sites []models.Site, id string) int {
	if id == "" {
		return -1
	}
	for i := range sites {
		if sites[i].ID == id {
			return i
		}
	}
	return -1
}

// Ticket identifies one analytics request.
type Ticket struct {
	SiteID string
	seq    uint64
}

// Sequencer hands out tickets so only the response to the latest request is
// applied. Responses that arrive out of order are dropped.
type Sequencer struct {
	seq atomic.Uint64
}

// Next issues a ticket for a new request, superseding all earlier ones.
func (s *Sequencer) Next(siteID string) Ticket {
	return Ticket{SiteID: siteID, seq: s.seq.Add(1)}
}

// IsCurrent reports whether t belongs to the most recent request.
func (s *Sequencer) IsCurrent(t Ticket) bool {
	return t.seq != 0 && t.seq == s.seq.Load()
}

// Invalidate makes every outstanding ticket stale.
func (s *Sequencer) Invalidate() {
	s.seq.Add(1)
}

// Share is one slice of a breakdown, in backend order.
type Share struct {
	Label   string
	Count   int64
	Percent float64
}

// DeviceShares converts device counts into percentages of their total.
func DeviceShares(stats []models.DeviceStat) []Share {
	var total int64
	for _, s := range stats {
		total += s.Count
	}

	shares := make([]Share, len(stats))
	for i, s := range stats {
		label := s.DeviceType
		if label == "" {
			label = "unknown"
		}
		shares[i] = Share{Label: label, Count: s.Count}
		if total > 0 {
			shares[i].Percent = float64(s.Count) / float64(total) * 100
		}
	}
	return shares
}
