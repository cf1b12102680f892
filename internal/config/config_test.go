package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"routescout/internal/engine"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://www.airline-club.com", cfg.ServerURL)
	assert.Equal(t, "routescout.db", cfg.DBPath)
	assert.Equal(t, 1200, cfg.Scan.IntervalMS)
	assert.Equal(t, 0, cfg.Scan.DestinationCap)
	assert.Equal(t, 10, cfg.Scan.ResultsPerBase)
	assert.Equal(t, 3, cfg.Scan.ServiceStars)
	assert.Equal(t, "substring", cfg.Scan.MatchMode)
	assert.Empty(t, cfg.Scan.TariffFile)
	assert.False(t, cfg.Scan.Verbose)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ROUTESCOUT_EMAIL", "pilot@example.com")
	t.Setenv("ROUTESCOUT_PASSWORD", "hunter2")
	t.Setenv("ROUTESCOUT_SCAN_INTERVAL_MS", "2500")
	t.Setenv("ROUTESCOUT_SCAN_DESTINATION_CAP", "150")
	t.Setenv("ROUTESCOUT_SCAN_MATCH_MODE", "exact")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "pilot@example.com", cfg.Email)
	assert.Equal(t, "hunter2", cfg.Password)
	assert.Equal(t, 2500, cfg.Scan.IntervalMS)
	assert.Equal(t, 150, cfg.Scan.DestinationCap)
	assert.Equal(t, "exact", cfg.Scan.MatchMode)
}

func TestLoad_RejectsBadStars(t *testing.T) {
	t.Setenv("ROUTESCOUT_SCAN_SERVICE_STARS", "9")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsBadMatchMode(t *testing.T) {
	t.Setenv("ROUTESCOUT_SCAN_MATCH_MODE", "fuzzy")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsNegativeInterval(t *testing.T) {
	t.Setenv("ROUTESCOUT_SCAN_INTERVAL_MS", "-5")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadTariff_OverlaysBase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tariff.yaml")
	overrides := `version: "2026.09-test"
fuel_unit_price: 0.12
service_stars: 5
climb_bands:
  - {width: 90, burn: 6.0}
type_fee_multiplier:
  JUMBO: 9.5
`
	require.NoError(t, os.WriteFile(path, []byte(overrides), 0o600))

	base := engine.DefaultTariff()
	got, err := LoadTariff(path, base)
	require.NoError(t, err)

	assert.Equal(t, "2026.09-test", got.Version)
	assert.Equal(t, 0.12, got.FuelUnitPrice)
	assert.Equal(t, 5, got.ServiceStars)
	require.Len(t, got.ClimbBands, 1)
	assert.Equal(t, engine.FuelBand{Width: 90, Burn: 6}, got.ClimbBands[0])
	assert.Equal(t, 9.5, got.TypeFeeMultiplier["JUMBO"])

	// Keys absent from the file keep their base values.
	assert.Equal(t, base.CrewPerSeatHour, got.CrewPerSeatHour)
	assert.Equal(t, base.SlotFeeBySize, got.SlotFeeBySize)
	assert.Equal(t, base.TypeFeeMultiplier["MEDIUM"], got.TypeFeeMultiplier["MEDIUM"])
	assert.Equal(t, base.MaintenancePerSeat, got.MaintenancePerSeat)

	// The caller's tariff is never mutated by the overlay.
	assert.Equal(t, engine.DefaultTariff(), base)
}

func TestLoadTariff_MissingFile(t *testing.T) {
	_, err := LoadTariff(filepath.Join(t.TempDir(), "absent.yaml"), engine.DefaultTariff())
	assert.Error(t, err)
}

func TestLoadTariff_RejectsBadStars(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tariff.yaml")
	require.NoError(t, os.WriteFile(path, []byte("service_stars: 7\n"), 0o600))
	_, err := LoadTariff(path, engine.DefaultTariff())
	assert.Error(t, err)
}
