package airline

import (
	"context"
	"fmt"
	"time"

	"routescout/internal/logger"
)

// airportCacheTTL bounds how stale the persisted airport list may be before
// a fresh download. Airports change on game patches, not between scans.
const airportCacheTTL = 24 * time.Hour

// FetchAirports returns the full airport reference list, game ordering
// preserved. Lookups are layered: persistent store first (within TTL), then
// the live API. Concurrent callers are coalesced into a single fetch.
func (c *Client) FetchAirports(ctx context.Context) ([]Airport, error) {
	v, err, _ := c.group.Do("airports", func() (interface{}, error) {
		if c.store != nil {
			if airports, fetchedAt, ok := c.store.GetAirports(); ok && time.Since(fetchedAt) < airportCacheTTL {
				logger.Info("API", fmt.Sprintf("Airport list from cache (%d airports)", len(airports)))
				return airports, nil
			}
		}

		var airports []Airport
		if err := c.getJSON(ctx, c.baseURL+"/airports", &airports); err != nil {
			return nil, fmt.Errorf("fetch airports: %w", err)
		}
		if c.store != nil {
			if err := c.store.SetAirports(airports); err != nil {
				logger.Warn("API", fmt.Sprintf("Airport cache write failed: %v", err))
			}
		}
		return airports, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]Airport), nil
}

// FetchModelSpecs returns the airplane-model reference list. The list is
// small, so it is fetched fresh each run; concurrent callers coalesce.
func (c *Client) FetchModelSpecs(ctx context.Context) ([]ModelSpec, error) {
	v, err, _ := c.group.Do("airplane-models", func() (interface{}, error) {
		var specs []ModelSpec
		if err := c.getJSON(ctx, c.baseURL+"/airplane-models", &specs); err != nil {
			return nil, fmt.Errorf("fetch airplane models: %w", err)
		}
		return specs, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]ModelSpec), nil
}
