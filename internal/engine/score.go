package engine

import (
	"math"

	"routescout/internal/airline"
)

// Scorer turns a route offer plus the viable aircraft subset into the best
// profit-per-frequency score. It is pure over its inputs: identical inputs
// produce identical results.
type Scorer struct {
	Tariff Tariff
	Ref    *Reference
	// HomeAirports are the operator's base airport ids; endpoints in this
	// set get the home-base slot discount.
	HomeAirports map[int]bool
	// LoadFactor 0..1; zero is treated as full load.
	LoadFactor float64
}

// ScoreResult is the winning aircraft for a route and its score.
type ScoreResult struct {
	Score        int
	AircraftName string
}

// TicketPrice picks the economy price to assume for the route: the lowest
// competitor economy price when competitors exist, else the game's
// suggested price.
func TicketPrice(offer *airline.RouteOffer) float64 {
	price := 0.0
	found := false
	for _, comp := range offer.Competitors {
		if !found || comp.Price.Economy < price {
			price = comp.Price.Economy
			found = true
		}
	}
	if !found {
		price = offer.SuggestedPrice.Economy
	}
	return price
}

// Score evaluates every viable option with positive frequency and returns
// the first maximum of round(weekly profit / frequency). ok is false when
// no option has positive frequency or none can be costed.
func (s *Scorer) Score(offer *airline.RouteOffer, viable []airline.AircraftOption) (ScoreResult, bool) {
	price := TicketPrice(offer)
	from := s.endpoint(offer.FromAirportID)
	to := s.endpoint(offer.ToAirportID)

	var best ScoreResult
	found := false
	for _, opt := range viable {
		if opt.MaxFrequency <= 0 {
			continue
		}
		spec, ok := s.Ref.SpecByID[opt.ModelID]
		if !ok {
			continue
		}
		cost, ok := s.Tariff.WeeklyCost(FlightPlan{
			Distance:        offer.Distance,
			DurationMinutes: opt.Duration,
			Frequency:       opt.MaxFrequency,
			Capacity:        opt.Capacity,
			Spec:            spec,
			From:            from,
			To:              to,
			LoadFactor:      s.LoadFactor,
		})
		if !ok {
			continue
		}

		revenue := price * float64(opt.MaxFrequency) * float64(opt.Capacity)
		profit := revenue - cost
		score := int(math.Round(profit / float64(opt.MaxFrequency)))

		if !found || score > best.Score {
			best = ScoreResult{Score: score, AircraftName: opt.Name}
			found = true
		}
	}
	return best, found
}

func (s *Scorer) endpoint(airportID int) EndpointFees {
	ep := EndpointFees{HomeBase: s.HomeAirports[airportID]}
	if ap, ok := s.Ref.AirportByID[airportID]; ok {
		ep.Size = ap.Size
	}
	return ep
}
