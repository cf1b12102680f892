package db

import (
	"fmt"
	"strconv"
	"time"

	"routescout/internal/airline"
)

const airportsFetchedAtKey = "airports_fetched_at"

// GetAirports returns the cached airport reference list in its original
// ordering, with the time it was fetched. ok is false when nothing is
// cached.
func (d *DB) GetAirports() ([]airline.Airport, time.Time, bool) {
	fetchedAt, err := strconv.ParseInt(d.GetConfig(airportsFetchedAtKey, ""), 10, 64)
	if err != nil {
		return nil, time.Time{}, false
	}

	rows, err := d.sql.Query("SELECT id, iata, name, city, size, country_code FROM airports ORDER BY ordinal")
	if err != nil {
		return nil, time.Time{}, false
	}
	defer rows.Close()

	var airports []airline.Airport
	for rows.Next() {
		var a airline.Airport
		if err := rows.Scan(&a.ID, &a.IATA, &a.Name, &a.City, &a.Size, &a.CountryCode); err != nil {
			return nil, time.Time{}, false
		}
		airports = append(airports, a)
	}
	if rows.Err() != nil || len(airports) == 0 {
		return nil, time.Time{}, false
	}
	return airports, time.Unix(fetchedAt, 0), true
}

// SetAirports replaces the cached airport list, preserving list order.
func (d *DB) SetAirports(airports []airline.Airport) error {
	tx, err := d.sql.Begin()
	if err != nil {
		return fmt.Errorf("airport cache: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM airports"); err != nil {
		return fmt.Errorf("airport cache clear: %w", err)
	}
	stmt, err := tx.Prepare("INSERT INTO airports (ordinal, id, iata, name, city, size, country_code) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("airport cache prepare: %w", err)
	}
	defer stmt.Close()

	for i, a := range airports {
		if _, err := stmt.Exec(i, a.ID, a.IATA, a.Name, a.City, a.Size, a.CountryCode); err != nil {
			return fmt.Errorf("airport cache insert: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("airport cache commit: %w", err)
	}
	return d.SetConfig(airportsFetchedAtKey, strconv.FormatInt(time.Now().Unix(), 10))
}
