package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"routescout/internal/airline"
	"routescout/internal/config"
	"routescout/internal/db"
	"routescout/internal/engine"
	"routescout/internal/logger"
	"routescout/internal/report"
)

var version = "dev"

const usage = `usage:
  routescout [scan]                      run a full route scan
  routescout plane add <model-id|name>   add an owned aircraft
  routescout plane rm <row-id>           remove an owned aircraft
  routescout plane ls                    list owned aircraft
  routescout base add <IATA>             declare a home base
  routescout base rm <IATA>              remove a home base
  routescout base ls                     list home bases
  routescout exclude add <base> <dest>   exclude a destination for one base
  routescout exclude rm <base> <dest>    lift a per-base exclusion`

func main() {
	logger.Banner(version)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("CONFIG", err.Error())
		os.Exit(1)
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("DB", err.Error())
		os.Exit(1)
	}
	defer database.Close()

	client := airline.NewClient(cfg.ServerURL, cfg.Email, cfg.Password, database)

	args := os.Args[1:]
	cmd := "scan"
	if len(args) > 0 {
		cmd = args[0]
		args = args[1:]
	}

	switch cmd {
	case "scan":
		err = runScan(cfg, database, client)
	case "plane":
		err = runPlane(database, args)
	case "base":
		err = runBase(database, client, args)
	case "exclude":
		err = runExclude(database, client, args)
	case "help", "-h", "--help":
		fmt.Println(usage)
	default:
		err = fmt.Errorf("unknown command %q\n%s", cmd, usage)
	}
	if err != nil {
		logger.Error("CLI", err.Error())
		os.Exit(1)
	}
}

func runScan(cfg *config.Config, database *db.DB, client *airline.Client) error {
	if cfg.Email == "" || cfg.Password == "" {
		return fmt.Errorf("set ROUTESCOUT_EMAIL and ROUTESCOUT_PASSWORD (or email/password in config.yaml)")
	}

	bases, err := database.Bases()
	if err != nil {
		return err
	}
	if len(bases) == 0 {
		return fmt.Errorf("no bases declared; add one with: routescout base add <IATA>")
	}
	fleet, err := database.Planes()
	if err != nil {
		return err
	}
	if len(fleet) == 0 {
		return fmt.Errorf("no owned aircraft declared; add one with: routescout plane add <model-id|name>")
	}

	if !client.HealthCheck() {
		logger.Warn("API", fmt.Sprintf("%s is not responding; proceeding anyway", cfg.ServerURL))
	}

	scanner := engine.NewScanner(client)
	scanner.Limiter = engine.NewIntervalLimiter(time.Duration(cfg.Scan.IntervalMS) * time.Millisecond)
	scanner.ResultsPerBase = cfg.Scan.ResultsPerBase
	scanner.Tariff.ServiceStars = cfg.Scan.ServiceStars
	if cfg.Scan.TariffFile != "" {
		tariff, err := config.LoadTariff(cfg.Scan.TariffFile, scanner.Tariff)
		if err != nil {
			return err
		}
		scanner.Tariff = tariff
		logger.Info("CONFIG", fmt.Sprintf("Tariff overrides loaded from %s (version %s)", cfg.Scan.TariffFile, tariff.Version))
	}
	if cfg.Scan.MatchMode == "exact" {
		scanner.Matcher = engine.ExactMatcher{}
	}
	scanner.Progress = func(msg string) error {
		logger.Info("SCAN", msg)
		return nil
	}

	snap := engine.Snapshot{
		Bases:          bases,
		Fleet:          fleet,
		DestinationCap: cfg.Scan.DestinationCap,
		Verbose:        cfg.Scan.Verbose,
	}

	results, err := scanner.Run(context.Background(), snap)
	if err != nil {
		return err
	}
	if name := client.AirlineName(); name != "" {
		logger.Success("SCAN", fmt.Sprintf("Scan complete for %s", name))
	}

	logger.Section("Results")
	order := make([]string, 0, len(bases))
	for _, b := range bases {
		order = append(order, b.IATA)
	}
	report.Render(os.Stdout, results, order)
	return nil
}

func runPlane(database *db.DB, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("plane needs a subcommand\n%s", usage)
	}
	switch args[0] {
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("plane add needs a model id or name fragment")
		}
		entry := strings.Join(args[1:], " ")
		modelID, fragment := 0, ""
		if id, err := strconv.Atoi(entry); err == nil && id > 0 {
			modelID = id
		} else {
			fragment = entry
		}
		id, err := database.AddPlane(modelID, fragment)
		if err != nil {
			return err
		}
		logger.Success("FLEET", fmt.Sprintf("Added plane #%d", id))
	case "rm":
		if len(args) < 2 {
			return fmt.Errorf("plane rm needs a row id")
		}
		id, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("bad row id %q", args[1])
		}
		if err := database.RemovePlane(id); err != nil {
			return err
		}
		logger.Success("FLEET", fmt.Sprintf("Removed plane #%d", id))
	case "ls":
		fleet, err := database.Planes()
		if err != nil {
			return err
		}
		logger.Section("Owned aircraft")
		for i, p := range fleet {
			if p.ModelID > 0 {
				logger.Stats(fmt.Sprintf("%d", i+1), fmt.Sprintf("model id %d", p.ModelID))
			} else {
				logger.Stats(fmt.Sprintf("%d", i+1), p.NameFragment)
			}
		}
		logger.Stats("Total", len(fleet))
	default:
		return fmt.Errorf("unknown plane subcommand %q", args[0])
	}
	return nil
}

func runBase(database *db.DB, client *airline.Client, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("base needs a subcommand\n%s", usage)
	}
	switch args[0] {
	case "add":
		if len(args) < 2 {
			return fmt.Errorf("base add needs an IATA code")
		}
		iata := strings.ToUpper(args[1])
		airport, err := resolveAirport(client, iata)
		if err != nil {
			return err
		}
		if err := database.AddBase(airport.IATA, airport.ID); err != nil {
			return err
		}
		logger.Success("BASE", fmt.Sprintf("Added %s (%s, airport id %d)", airport.IATA, airport.City, airport.ID))
	case "rm":
		if len(args) < 2 {
			return fmt.Errorf("base rm needs an IATA code")
		}
		if err := database.RemoveBase(args[1]); err != nil {
			return err
		}
		logger.Success("BASE", fmt.Sprintf("Removed %s", strings.ToUpper(args[1])))
	case "ls":
		bases, err := database.Bases()
		if err != nil {
			return err
		}
		logger.Section("Bases")
		for _, b := range bases {
			logger.Stats(b.IATA, fmt.Sprintf("airport id %d, %d excluded", b.AirportID, len(b.Excluded)))
		}
		logger.Stats("Total", len(bases))
	default:
		return fmt.Errorf("unknown base subcommand %q", args[0])
	}
	return nil
}

func runExclude(database *db.DB, client *airline.Client, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("exclude needs: add|rm <base-IATA> <dest-IATA>")
	}
	baseIATA := strings.ToUpper(args[1])
	dest, err := resolveAirport(client, strings.ToUpper(args[2]))
	if err != nil {
		return err
	}
	switch args[0] {
	case "add":
		if err := database.AddExclude(baseIATA, dest.ID); err != nil {
			return err
		}
		logger.Success("BASE", fmt.Sprintf("Excluded %s from %s scans", dest.IATA, baseIATA))
	case "rm":
		if err := database.RemoveExclude(baseIATA, dest.ID); err != nil {
			return err
		}
		logger.Success("BASE", fmt.Sprintf("Re-included %s for %s scans", dest.IATA, baseIATA))
	default:
		return fmt.Errorf("unknown exclude subcommand %q", args[0])
	}
	return nil
}

// resolveAirport maps an IATA code to its reference entry. The airport list
// endpoint is public, so no login is needed here.
func resolveAirport(client *airline.Client, iata string) (airline.Airport, error) {
	airports, err := client.FetchAirports(context.Background())
	if err != nil {
		return airline.Airport{}, err
	}
	for _, a := range airports {
		if strings.EqualFold(a.IATA, iata) {
			return a, nil
		}
	}
	return airline.Airport{}, fmt.Errorf("no airport with IATA %s", iata)
}
