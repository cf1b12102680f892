package engine

import "routescout/internal/airline"

// The game's weekly operating economics, reverse-engineered from observed
// link finances. Every constant lives in Tariff so recalibration against
// live data is a data change, not an algorithm change.

// FuelBand is one ascent segment of the fuel model: Width distance units
// burned at Burn times the aircraft's base rate.
type FuelBand struct {
	Width float64 `yaml:"width"`
	Burn  float64 `yaml:"burn"`
}

// Tariff is a named, versioned set of cost constants. The yaml tags let an
// operator overlay individual constants from a tariff file without restating
// the whole set.
type Tariff struct {
	Version string `yaml:"version"`

	// Fuel. Climb bands cover the first part of the flight at elevated
	// burn; distance beyond the bands burns at CruiseBurn times base rate.
	FuelUnitPrice float64    `yaml:"fuel_unit_price"`
	ClimbBands    []FuelBand `yaml:"climb_bands"`
	CruiseBurn    float64    `yaml:"cruise_burn"`
	// LoadFactorFloor is the fixed fraction of fuel burned regardless of
	// load; the rest scales with passengers carried. The multiplier is
	// exactly 1.0 at full load.
	LoadFactorFloor float64 `yaml:"load_factor_floor"`

	// Crew cost per seat per flight hour.
	CrewPerSeatHour float64 `yaml:"crew_per_seat_hour"`

	// Airport fees. Slot fees are tiered by airport size class (index
	// size-1, last entry reused above the table), scaled by the airplane
	// type multiplier, and discounted at the operator's own bases.
	SlotFeeBySize     []float64          `yaml:"slot_fee_by_size"`
	TypeFeeMultiplier map[string]float64 `yaml:"type_fee_multiplier"`
	HomeBaseDiscount  float64            `yaml:"home_base_discount"`
	// Landing fee per seat = airport size × LandingFeePerSeatSize.
	LandingFeePerSeatSize float64 `yaml:"landing_fee_per_seat_size"`

	// Flat weekly per-seat maintenance.
	MaintenancePerSeat float64 `yaml:"maintenance_per_seat"`

	// In-flight service supplies per passenger: base plus a per-hour rate
	// tiered by service quality stars (index star-1). Charged both ways.
	ServiceBasePerPax  float64   `yaml:"service_base_per_pax"`
	ServicePerHourStar []float64 `yaml:"service_per_hour_star"`
	ServiceStars       int       `yaml:"service_stars"`
}

// DefaultTariff returns the current calibration baseline.
func DefaultTariff() Tariff {
	return Tariff{
		Version:       "2026.08",
		FuelUnitPrice: 0.08,
		ClimbBands: []FuelBand{
			{Width: 180, Burn: 5.5},
			{Width: 250, Burn: 3.5},
			{Width: 570, Burn: 1.8},
		},
		CruiseBurn:      1.0,
		LoadFactorFloor: 0.3,
		CrewPerSeatHour: 12,
		SlotFeeBySize: []float64{
			80, 150, 300, 500, 800, 1200, 1800, 2500, 3500, 5000,
		},
		TypeFeeMultiplier: map[string]float64{
			"LIGHT":    1.0,
			"SMALL":    1.0,
			"REGIONAL": 1.5,
			"MEDIUM":   2.0,
			"LARGE":    4.0,
			"X_LARGE":  6.0,
			"JUMBO":    8.0,
		},
		HomeBaseDiscount:      0.5,
		LandingFeePerSeatSize: 0.6,
		MaintenancePerSeat:    100,
		ServiceBasePerPax:     10,
		ServicePerHourStar:    []float64{2, 5, 10, 16, 24},
		ServiceStars:          3,
	}
}

// EndpointFees describes one end of the route for fee purposes.
type EndpointFees struct {
	Size     int
	HomeBase bool
}

// FlightPlan is the cost model's input: one owned aircraft scheduled on one
// route at a weekly frequency.
type FlightPlan struct {
	Distance        float64
	DurationMinutes int
	Frequency       int
	Capacity        int
	Spec            airline.ModelSpec
	From            EndpointFees
	To              EndpointFees
	// LoadFactor 0..1; zero is treated as full load.
	LoadFactor float64
}

// WeeklyCost computes the total weekly operating cost of the plan under the
// tariff. ok is false when the plan cannot be costed (no usable spec), in
// which case the aircraft must be dropped from scoring for the route.
func (t Tariff) WeeklyCost(p FlightPlan) (float64, bool) {
	if p.Spec.Lifespan <= 0 || p.Spec.FuelBurn <= 0 {
		return 0, false
	}

	load := p.LoadFactor
	if load <= 0 || load > 1 {
		load = 1
	}
	freq := float64(p.Frequency)
	seats := float64(p.Capacity)
	hours := float64(p.DurationMinutes) / 60

	total := t.fuelCost(p.Distance, p.Spec.FuelBurn, freq, load)
	total += seats * hours * t.CrewPerSeatHour * freq
	total += (t.endpointFees(p.From, p.Spec.Type, seats) + t.endpointFees(p.To, p.Spec.Type, seats)) * freq
	total += p.Spec.Price / float64(p.Spec.Lifespan)
	total += seats * t.MaintenancePerSeat
	total += t.serviceCost(hours, seats, freq)

	return total, true
}

// fuelCost burns the climb bands first, then the remaining distance at
// cruise rate, and scales by unit price, frequency and load multiplier.
func (t Tariff) fuelCost(distance, burnRate, freq, load float64) float64 {
	remaining := distance
	units := 0.0
	for _, band := range t.ClimbBands {
		d := band.Width
		if remaining < d {
			d = remaining
		}
		units += d * band.Burn
		remaining -= d
		if remaining <= 0 {
			break
		}
	}
	if remaining > 0 {
		units += remaining * t.CruiseBurn
	}
	loadMult := t.LoadFactorFloor + (1-t.LoadFactorFloor)*load
	return units * burnRate * t.FuelUnitPrice * freq * loadMult
}

func (t Tariff) endpointFees(ep EndpointFees, airplaneType string, seats float64) float64 {
	slot := t.slotFee(ep.Size)
	if mult, ok := t.TypeFeeMultiplier[airplaneType]; ok {
		slot *= mult
	}
	if ep.HomeBase {
		slot *= 1 - t.HomeBaseDiscount
	}
	landing := seats * float64(ep.Size) * t.LandingFeePerSeatSize
	return slot + landing
}

func (t Tariff) slotFee(size int) float64 {
	if len(t.SlotFeeBySize) == 0 {
		return 0
	}
	idx := size - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(t.SlotFeeBySize) {
		idx = len(t.SlotFeeBySize) - 1
	}
	return t.SlotFeeBySize[idx]
}

// serviceCost is the round-trip in-flight supplies bill for a full cabin.
func (t Tariff) serviceCost(hours, seats, freq float64) float64 {
	star := t.ServiceStars
	if star < 1 {
		star = 1
	}
	if star > len(t.ServicePerHourStar) {
		star = len(t.ServicePerHourStar)
	}
	perPax := t.ServiceBasePerPax
	if len(t.ServicePerHourStar) > 0 {
		perPax += t.ServicePerHourStar[star-1] * hours
	}
	return perPax * 2 * seats * freq
}
