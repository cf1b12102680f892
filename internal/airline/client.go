package airline

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"
)

const userAgent = "routescout/1.0"

// ReferenceStore is a persistent cache for the airport reference list,
// so repeated runs within the TTL skip the largest download.
type ReferenceStore interface {
	GetAirports() (airports []Airport, fetchedAt time.Time, ok bool)
	SetAirports(airports []Airport) error
}

// Client talks to the game's backend over an authenticated cookie session.
// The semaphore keeps exactly one request in flight; the scan engine adds
// its own pacing on top.
type Client struct {
	http     *http.Client
	baseURL  string
	email    string
	password string

	sem   chan struct{}
	group singleflight.Group
	store ReferenceStore

	airlineID   int
	airlineName string
}

// NewClient creates a client for the given server. store may be nil, in
// which case the airport list is fetched fresh every run.
func NewClient(baseURL, email, password string, store ReferenceStore) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		http: &http.Client{
			Timeout: 30 * time.Second,
			Jar:     jar,
		},
		baseURL:  strings.TrimRight(baseURL, "/"),
		email:    email,
		password: password,
		sem:      make(chan struct{}, 1),
		store:    store,
	}
}

// HealthCheck pings the server root to verify connectivity.
func (c *Client) HealthCheck() bool {
	req, err := http.NewRequest("GET", c.baseURL+"/", nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode < 500
}

// Login authenticates the session. The server sets a session cookie on the
// jar; all later calls ride on it. A failed login is fatal to the run.
func (c *Client) Login(ctx context.Context) error {
	form := url.Values{
		"email":    {c.email},
		"password": {c.password},
	}
	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/login", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	c.sem <- struct{}{}
	resp, err := c.http.Do(req)
	<-c.sem
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("login rejected (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var lr loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&lr); err != nil {
		return fmt.Errorf("login response: %w", err)
	}
	c.airlineID = lr.AirlineID
	c.airlineName = lr.AirlineName
	return nil
}

// AirlineName returns the logged-in airline's display name ("" before login).
func (c *Client) AirlineName() string {
	return c.airlineName
}

// FetchRouteOffer asks the game to quote one origin/destination pair.
func (c *Client) FetchRouteOffer(ctx context.Context, fromAirportID, toAirportID int) (*RouteOffer, error) {
	u := fmt.Sprintf("%s/plan-link?fromAirportId=%d&toAirportId=%d", c.baseURL, fromAirportID, toAirportID)
	var offer RouteOffer
	if err := c.getJSON(ctx, u, &offer); err != nil {
		return nil, fmt.Errorf("route offer %d->%d: %w", fromAirportID, toAirportID, err)
	}
	if offer.FromAirportID == 0 {
		offer.FromAirportID = fromAirportID
	}
	if offer.ToAirportID == 0 {
		offer.ToAirportID = toAirportID
	}
	return &offer, nil
}

// getJSON fetches a URL and decodes JSON into dst.
func (c *Client) getJSON(ctx context.Context, u string, dst interface{}) error {
	c.sem <- struct{}{}
	defer func() { <-c.sem }()

	req, err := http.NewRequestWithContext(ctx, "GET", u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("api %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return json.NewDecoder(resp.Body).Decode(dst)
}
