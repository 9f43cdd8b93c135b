package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/j-veylop/clutter-dashboard-tui/internal/models"
)

const sitesBasePath = "/sites"

// Sites wraps the site management and analytics endpoints.
type Sites struct {
	client *Client
}

// NewSites creates a Sites collaborator on top of c.
func NewSites(c *Client) *Sites {
	return &Sites{client: c}
}

type createSiteRequest struct {
	SiteURL string `json:"site_url"`
}

func sitePath(id string) string {
	return sitesBasePath + "/" + url.PathEscape(id)
}

// All lists the sites of the session's user in backend order.
func (s *Sites) All(ctx context.Context) ([]models.Site, error) {
	sites, err := Fetch[[]models.Site](ctx, s.client, sitesBasePath+"/all", RequestOptions{})
	if err != nil || sites == nil {
		return nil, err
	}
	return *sites, nil
}

// Get returns a single site.
func (s *Sites) Get(ctx context.Context, id string) (*models.Site, error) {
	return Fetch[models.Site](ctx, s.client, sitePath(id), RequestOptions{})
}

// Create registers a site. The URL is lower-cased and otherwise sent as
// typed; domain validation belongs to the backend.
func (s *Sites) Create(ctx context.Context, siteURL string) (*models.CreateSiteResponse, error) {
	return Fetch[models.CreateSiteResponse](ctx, s.client, sitesBasePath+"/", RequestOptions{
		Method: http.MethodPost,
		Body:   createSiteRequest{SiteURL: strings.ToLower(siteURL)},
	})
}

// Delete removes a site.
func (s *Sites) Delete(ctx context.Context, id string) (*models.DeleteSiteResponse, error) {
	return Fetch[models.DeleteSiteResponse](ctx, s.client, sitePath(id), RequestOptions{
		Method: http.MethodDelete,
	})
}

// Analytics fetches the snapshot for a site over [from, to], both rendered as
// local calendar dates.
func (s *Sites) Analytics(ctx context.Context, id string, from, to time.Time) (*models.SiteAnalytics, error) {
	q := url.Values{}
	q.Set("from", FormatDate(from))
	q.Set("to", FormatDate(to))
	return Fetch[models.SiteAnalytics](ctx, s.client, sitePath(id)+"/analytics?"+q.Encode(), RequestOptions{})
}
