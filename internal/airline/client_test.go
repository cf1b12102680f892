package airline

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRouteOffer_UnmarshalJSON(t *testing.T) {
	raw := `{
		"fromAirportId": 3411,
		"toAirportId": 599,
		"distance": 1234.5,
		"suggestedPrice": {"economy": 420, "business": 900, "first": 1800},
		"otherLinks": [{"airlineId": 9, "airlineName": "Rival Air", "price": {"economy": 500}}],
		"modelPlanLinkInfo": [{"modelId": 7, "modelName": "Boeing 737-800", "maxFrequency": 14, "capacity": 160, "duration": 95}]
	}`
	var offer RouteOffer
	if err := json.Unmarshal([]byte(raw), &offer); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if offer.FromAirportID != 3411 || offer.ToAirportID != 599 || offer.Distance != 1234.5 {
		t.Errorf("RouteOffer geometry = %+v", offer)
	}
	if offer.SuggestedPrice.Economy != 420 {
		t.Errorf("SuggestedPrice.Economy = %v, want 420", offer.SuggestedPrice.Economy)
	}
	if len(offer.Competitors) != 1 || offer.Competitors[0].Price.Economy != 500 {
		t.Errorf("Competitors = %+v", offer.Competitors)
	}
	if len(offer.Options) != 1 || offer.Options[0].MaxFrequency != 14 || offer.Options[0].Duration != 95 {
		t.Errorf("Options = %+v", offer.Options)
	}
}

func TestModelSpec_UnmarshalJSON(t *testing.T) {
	raw := `{"id": 7, "name": "Boeing 737-800", "fuelBurn": 3.5, "price": 95000000, "lifespan": 1820, "airplaneType": "MEDIUM"}`
	var spec ModelSpec
	if err := json.Unmarshal([]byte(raw), &spec); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if spec.ID != 7 || spec.FuelBurn != 3.5 || spec.Lifespan != 1820 || spec.Type != "MEDIUM" {
		t.Errorf("ModelSpec = %+v", spec)
	}
}

func TestLogin_SetsSessionAndIdentity(t *testing.T) {
	var sawCookie bool
	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("login method = %s, want POST", r.Method)
		}
		r.ParseForm()
		if r.FormValue("email") != "pilot@example.com" || r.FormValue("password") != "hunter2" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "PLAY_SESSION", Value: "abc123"})
		json.NewEncoder(w).Encode(map[string]interface{}{"airlineId": 42, "airlineName": "Scout Air"})
	})
	mux.HandleFunc("/plan-link", func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("PLAY_SESSION"); err == nil && c.Value == "abc123" {
			sawCookie = true
		}
		json.NewEncoder(w).Encode(RouteOffer{Distance: 100})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := NewClient(srv.URL, "pilot@example.com", "hunter2", nil)
	if err := c.Login(context.Background()); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if c.AirlineName() != "Scout Air" {
		t.Errorf("AirlineName = %q, want Scout Air", c.AirlineName())
	}

	if _, err := c.FetchRouteOffer(context.Background(), 1, 2); err != nil {
		t.Fatalf("FetchRouteOffer: %v", err)
	}
	if !sawCookie {
		t.Error("route offer request did not carry the session cookie")
	}
}

func TestLogin_RejectedIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "pilot@example.com", "wrong", nil)
	if err := c.Login(context.Background()); err == nil {
		t.Fatal("Login succeeded against a 401")
	}
}

func TestFetchRouteOffer_FillsPairWhenOmitted(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(RouteOffer{Distance: 800})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", "", nil)
	offer, err := c.FetchRouteOffer(context.Background(), 10, 20)
	if err != nil {
		t.Fatalf("FetchRouteOffer: %v", err)
	}
	if offer.FromAirportID != 10 || offer.ToAirportID != 20 {
		t.Errorf("pair = %d->%d, want 10->20", offer.FromAirportID, offer.ToAirportID)
	}
}

func TestFetchRouteOffer_ServerErrorPropagates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", "", nil)
	if _, err := c.FetchRouteOffer(context.Background(), 1, 2); err == nil {
		t.Fatal("FetchRouteOffer swallowed a 500")
	}
}

// memStore is an in-memory ReferenceStore for cache tests.
type memStore struct {
	airports  []Airport
	fetchedAt time.Time
	sets      int
}

func (m *memStore) GetAirports() ([]Airport, time.Time, bool) {
	if m.airports == nil {
		return nil, time.Time{}, false
	}
	return m.airports, m.fetchedAt, true
}

func (m *memStore) SetAirports(airports []Airport) error {
	m.airports = airports
	m.fetchedAt = time.Now()
	m.sets++
	return nil
}

func TestFetchAirports_FreshCacheSkipsNetwork(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		json.NewEncoder(w).Encode([]Airport{{ID: 1, IATA: "AAA"}})
	}))
	defer srv.Close()

	store := &memStore{
		airports:  []Airport{{ID: 1, IATA: "AAA"}, {ID: 2, IATA: "BBB"}},
		fetchedAt: time.Now().Add(-time.Hour),
	}
	c := NewClient(srv.URL, "", "", store)
	airports, err := c.FetchAirports(context.Background())
	if err != nil {
		t.Fatalf("FetchAirports: %v", err)
	}
	if len(airports) != 2 {
		t.Errorf("airports = %d, want 2 from cache", len(airports))
	}
	if hits != 0 {
		t.Errorf("server hit %d times despite fresh cache", hits)
	}
}

func TestFetchAirports_StaleCacheRefetches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"id": 3, "iata": "CCC", "name": "Gamma Intl", "city": "Gamma", "size": 4}]`)
	}))
	defer srv.Close()

	store := &memStore{
		airports:  []Airport{{ID: 1, IATA: "AAA"}},
		fetchedAt: time.Now().Add(-48 * time.Hour),
	}
	c := NewClient(srv.URL, "", "", store)
	airports, err := c.FetchAirports(context.Background())
	if err != nil {
		t.Fatalf("FetchAirports: %v", err)
	}
	if len(airports) != 1 || airports[0].IATA != "CCC" {
		t.Errorf("airports = %+v, want the refetched list", airports)
	}
	if store.sets != 1 {
		t.Errorf("store updated %d times, want 1", store.sets)
	}
}

func TestNewClient_NonNil(t *testing.T) {
	if c := NewClient("http://localhost", "", "", nil); c == nil {
		t.Fatal("NewClient returned nil")
	}
}
