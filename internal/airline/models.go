package airline

// Airport is one entry from the game's airport reference list.
type Airport struct {
	ID   int    `json:"id"`
	IATA string `json:"iata"`
	Name string `json:"name"`
	City string `json:"city"`
	// Size is the game's ordinal airport class (1 = airstrip .. 10 = mega hub).
	// It drives slot and landing fee tiers.
	Size        int    `json:"size"`
	CountryCode string `json:"countryCode"`
}

// ModelSpec is one entry from the game's airplane-model reference list.
type ModelSpec struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	// FuelBurn is fuel units consumed per distance unit at cruise.
	FuelBurn float64 `json:"fuelBurn"`
	// Price is the acquisition price in game currency.
	Price float64 `json:"price"`
	// Lifespan is the operational lifespan in weeks.
	Lifespan int `json:"lifespan"`
	// Type is the game's categorical size tag (LIGHT, SMALL, REGIONAL,
	// MEDIUM, LARGE, X_LARGE, JUMBO). It scales airport slot fees.
	Type string `json:"airplaneType"`
}

// AircraftOption is one aircraft the game offers for a candidate route.
type AircraftOption struct {
	ModelID int    `json:"modelId"`
	Name    string `json:"modelName"`
	// MaxFrequency is the weekly round-trip count the aircraft can sustain
	// on this route.
	MaxFrequency int `json:"maxFrequency"`
	// Capacity is the per-flight seat count in the game's default layout.
	Capacity int `json:"capacity"`
	// Duration is the one-way flight time in minutes.
	Duration int `json:"duration"`
}

// PriceBook holds per-class ticket prices.
type PriceBook struct {
	Economy  float64 `json:"economy"`
	Business float64 `json:"business"`
	First    float64 `json:"first"`
}

// CompetitorLink is an existing competitor service on the same pair.
type CompetitorLink struct {
	AirlineID   int       `json:"airlineId"`
	AirlineName string    `json:"airlineName"`
	Price       PriceBook `json:"price"`
}

// RouteOffer is the game's quote for one origin/destination pair: geometry,
// flyable aircraft, competitor prices and a suggested fallback price.
// It is ephemeral; callers consume it and discard it.
type RouteOffer struct {
	FromAirportID  int              `json:"fromAirportId"`
	ToAirportID    int              `json:"toAirportId"`
	Distance       float64          `json:"distance"`
	SuggestedPrice PriceBook        `json:"suggestedPrice"`
	Competitors    []CompetitorLink `json:"otherLinks"`
	Options        []AircraftOption `json:"modelPlanLinkInfo"`
}

// loginResponse is the body returned by a successful login.
type loginResponse struct {
	AirlineID   int    `json:"airlineId"`
	AirlineName string `json:"airlineName"`
}
