package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"routescout/internal/airline"
	"routescout/internal/logger"
)

// defaultScanInterval is the minimum pause between route-quote fetches.
const defaultScanInterval = 1200 * time.Millisecond

// progressCadence is how many processed pairs go between progress reports.
const progressCadence = 50

// QuoteSource is the external game backend as seen by the scanner: one
// login per run, reference data once, then one quote per pair.
type QuoteSource interface {
	Login(ctx context.Context) error
	FetchAirports(ctx context.Context) ([]airline.Airport, error)
	FetchModelSpecs(ctx context.Context) ([]airline.ModelSpec, error)
	FetchRouteOffer(ctx context.Context, fromAirportID, toAirportID int) (*airline.RouteOffer, error)
}

// Scanner walks every (base, destination) pair, quotes it, scores it with
// the operator's fleet, and keeps the top routes per base. It runs strictly
// sequentially: one fetch in flight, a paced gap between pairs.
type Scanner struct {
	Source  QuoteSource
	Matcher FleetMatcher
	Tariff  Tariff
	Limiter Limiter
	// Progress receives human-readable status lines. Errors from the sink
	// are logged and swallowed; progress is best-effort.
	Progress       func(msg string) error
	ResultsPerBase int
}

// NewScanner creates a scanner with the default matcher, tariff and pacing.
func NewScanner(source QuoteSource) *Scanner {
	return &Scanner{
		Source:         source,
		Matcher:        SubstringMatcher{},
		Tariff:         DefaultTariff(),
		Limiter:        NewIntervalLimiter(defaultScanInterval),
		ResultsPerBase: DefaultResultsPerBase,
	}
}

// Run executes one full scan and returns the ranked routes per base IATA.
// Login and reference-data failures abort the run; a failed quote for a
// single pair is logged and skipped.
func (s *Scanner) Run(ctx context.Context, snap Snapshot) (map[string][]RouteScore, error) {
	s.progress("Logging in...")
	if err := s.Source.Login(ctx); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	s.progress("Fetching reference data...")
	airports, err := s.Source.FetchAirports(ctx)
	if err != nil {
		return nil, fmt.Errorf("reference airports: %w", err)
	}
	specs, err := s.Source.FetchModelSpecs(ctx)
	if err != nil {
		return nil, fmt.Errorf("reference aircraft specs: %w", err)
	}
	ref := NewReference(airports, specs)

	candidates := ref.Airports
	if snap.DestinationCap > 0 && snap.DestinationCap < len(candidates) {
		candidates = candidates[:snap.DestinationCap]
	}

	homeAirports := make(map[int]bool, len(snap.Bases))
	for _, b := range snap.Bases {
		homeAirports[b.AirportID] = true
	}
	scorer := &Scorer{
		Tariff:       s.Tariff,
		Ref:          ref,
		HomeAirports: homeAirports,
		LoadFactor:   snap.LoadFactor,
	}

	results := make(map[string][]RouteScore, len(snap.Bases))
	processed := 0
	skipped := 0
	started := time.Now()

	for _, base := range snap.Bases {
		s.progress(fmt.Sprintf("Scanning base %s...", base.IATA))
		origin := ref.AirportByID[base.AirportID]
		if origin.IATA == "" {
			origin.IATA = base.IATA
		}

		var scores []RouteScore
		for _, dest := range candidates {
			if dest.ID == base.AirportID || base.Excluded[dest.ID] {
				continue
			}
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if err := s.Limiter.Wait(ctx); err != nil {
				return nil, err
			}

			offer, err := s.Source.FetchRouteOffer(ctx, base.AirportID, dest.ID)
			processed++
			if processed%progressCadence == 0 {
				s.progress(fmt.Sprintf("%s: %d pairs processed, %d routes scored", base.IATA, processed, len(scores)))
			}
			if err != nil {
				skipped++
				logger.Warn("SCAN", fmt.Sprintf("Quote %s->%s failed: %v", base.IATA, dest.IATA, err))
				continue
			}

			viable := s.Matcher.Match(snap.Fleet, offer.Options)
			if len(viable) == 0 {
				if snap.Verbose {
					logger.Info("SCAN", fmt.Sprintf("%s->%s: no owned aircraft offered", base.IATA, dest.IATA))
				}
				continue
			}
			res, ok := scorer.Score(offer, viable)
			if !ok {
				continue
			}
			scores = append(scores, RouteScore{
				FromAirportID: base.AirportID,
				FromIATA:      origin.IATA,
				FromCity:      origin.City,
				ToAirportID:   dest.ID,
				ToIATA:        dest.IATA,
				ToCity:        dest.City,
				Score:         res.Score,
				AircraftName:  res.AircraftName,
			})
		}

		// Rank and keep the top slice; stable so equal scores keep
		// encounter order.
		sort.SliceStable(scores, func(i, j int) bool {
			return scores[i].Score > scores[j].Score
		})
		limit := s.ResultsPerBase
		if limit <= 0 {
			limit = DefaultResultsPerBase
		}
		if len(scores) > limit {
			scores = scores[:limit]
		}
		results[base.IATA] = scores
	}

	logger.Stats("Pairs processed", processed)
	logger.Stats("Fetch failures", skipped)
	logger.Stats("Elapsed", time.Since(started).Round(time.Second))
	return results, nil
}

func (s *Scanner) progress(msg string) {
	if s.Progress == nil {
		return
	}
	if err := s.Progress(msg); err != nil {
		logger.Warn("SCAN", fmt.Sprintf("Progress sink failed: %v", err))
	}
}
