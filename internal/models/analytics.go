package models

// PageStat is a page path with its view count.
type PageStat struct {
	Page  string `json:"page"`
	Count int64  `json:"count"`
}

// DeviceStat is a device class with its visit count.
type DeviceStat struct {
	DeviceType string `json:"device_type"`
	Count      int64  `json:"count"`
}

// ReferrerStat is a referring source with its visit count.
type ReferrerStat struct {
	Referrer string `json:"referrer"`
	Count    int64  `json:"count"`
}

// VisitorPoint is the number of unique visitors on a single day.
type VisitorPoint struct {
	Day            string `json:"day"`
	UniqueVisitors int64  `json:"unique_visitors"`
}

// SiteAnalytics is a read-only snapshot computed by the backend for one site
// over one date window. Lists arrive already ordered for display.
type SiteAnalytics struct {
	TopPages       []PageStat     `json:"top_pages"`
	DeviceStats    []DeviceStat   `json:"device_stats"`
	TopReferrers   []ReferrerStat `json:"top_referrers"`
	VisitorGraph   []VisitorPoint `json:"visitor_graph"`
	PageViews      int64          `json:"page_views"`
	UniqueVisitors int64          `json:"unique_visitors"`
}

// IsEmpty reports whether the snapshot has no recorded pageviews. Empty
// snapshots are shown as "no data yet" rather than zeroed charts.
func (a *SiteAnalytics) IsEmpty() bool {
	return a == nil || a.PageViews == 0
}

// VisitorSeries returns the unique visitor counts of the visitor graph in
// backend order, ready for plotting.
func (a *SiteAnalytics) VisitorSeries() []float64 {
	if a == nil {
		return nil
	}
	series := make([]float64, len(a.VisitorGraph))
	for i, p := range a.VisitorGraph {
		series[i] = float64(p.UniqueVisitors)
	}
	return series
}

// VisitorDays returns the day labels of the visitor graph in backend order.
func (a *SiteAnalytics) VisitorDays() []string {
	if a == nil {
		return nil
	}
	days := make([]string, len(a.VisitorGraph))
	for i, p := range a.VisitorGraph {
		days[i] = p.Day
	}
	return days
}
