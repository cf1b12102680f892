package db

import (
	"fmt"
	"strings"

	"routescout/internal/engine"
)

// AddPlane records an owned aircraft, either by model id (modelID > 0) or
// by name fragment. Returns the row id.
func (d *DB) AddPlane(modelID int, nameFragment string) (int64, error) {
	nameFragment = strings.TrimSpace(nameFragment)
	if modelID <= 0 && nameFragment == "" {
		return 0, fmt.Errorf("plane needs a model id or a name fragment")
	}
	res, err := d.sql.Exec(
		"INSERT INTO planes (model_id, name_fragment) VALUES (?, ?)",
		modelID, nameFragment,
	)
	if err != nil {
		return 0, fmt.Errorf("add plane: %w", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

// RemovePlane deletes an owned-aircraft entry by row id.
func (d *DB) RemovePlane(id int64) error {
	res, err := d.sql.Exec("DELETE FROM planes WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("remove plane: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("no plane with id %d", id)
	}
	return nil
}

// Planes returns the owned-aircraft list in insertion order.
func (d *DB) Planes() ([]engine.OwnedAircraft, error) {
	rows, err := d.sql.Query("SELECT model_id, name_fragment FROM planes ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list planes: %w", err)
	}
	defer rows.Close()

	var fleet []engine.OwnedAircraft
	for rows.Next() {
		var p engine.OwnedAircraft
		if err := rows.Scan(&p.ModelID, &p.NameFragment); err != nil {
			return nil, fmt.Errorf("scan plane: %w", err)
		}
		fleet = append(fleet, p)
	}
	return fleet, rows.Err()
}

// AddBase declares a home airport for scans.
func (d *DB) AddBase(iata string, airportID int) error {
	iata = normalizeIATA(iata)
	if len(iata) != 3 {
		return fmt.Errorf("base IATA must be 3 letters, got %q", iata)
	}
	_, err := d.sql.Exec(`
		INSERT INTO bases (iata, airport_id) VALUES (?, ?)
		ON CONFLICT(iata) DO UPDATE SET airport_id = excluded.airport_id
	`, iata, airportID)
	if err != nil {
		return fmt.Errorf("add base: %w", err)
	}
	return nil
}

// RemoveBase deletes a base and its exclude list.
func (d *DB) RemoveBase(iata string) error {
	iata = normalizeIATA(iata)
	tx, err := d.sql.Begin()
	if err != nil {
		return fmt.Errorf("remove base: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM base_excludes WHERE iata = ?", iata); err != nil {
		return fmt.Errorf("remove base excludes: %w", err)
	}
	res, err := tx.Exec("DELETE FROM bases WHERE iata = ?", iata)
	if err != nil {
		return fmt.Errorf("remove base: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("no base %s", iata)
	}
	return tx.Commit()
}

// AddExclude marks an airport as skipped when scanning from one base.
// The exclusion is scoped to that base only.
func (d *DB) AddExclude(iata string, airportID int) error {
	iata = normalizeIATA(iata)
	var exists int
	if err := d.sql.QueryRow("SELECT COUNT(*) FROM bases WHERE iata = ?", iata).Scan(&exists); err != nil || exists == 0 {
		return fmt.Errorf("no base %s", iata)
	}
	_, err := d.sql.Exec(
		"INSERT OR IGNORE INTO base_excludes (iata, airport_id) VALUES (?, ?)",
		iata, airportID,
	)
	if err != nil {
		return fmt.Errorf("add exclude: %w", err)
	}
	return nil
}

// RemoveExclude lifts a per-base exclusion.
func (d *DB) RemoveExclude(iata string, airportID int) error {
	iata = normalizeIATA(iata)
	_, err := d.sql.Exec(
		"DELETE FROM base_excludes WHERE iata = ? AND airport_id = ?",
		iata, airportID,
	)
	if err != nil {
		return fmt.Errorf("remove exclude: %w", err)
	}
	return nil
}

// Bases returns all declared bases with their exclude sets, in declaration
// order (rowid order for the bases table).
func (d *DB) Bases() ([]engine.Base, error) {
	rows, err := d.sql.Query("SELECT iata, airport_id FROM bases ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("list bases: %w", err)
	}
	defer rows.Close()

	var bases []engine.Base
	for rows.Next() {
		b := engine.Base{Excluded: make(map[int]bool)}
		if err := rows.Scan(&b.IATA, &b.AirportID); err != nil {
			return nil, fmt.Errorf("scan base: %w", err)
		}
		bases = append(bases, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range bases {
		exRows, err := d.sql.Query("SELECT airport_id FROM base_excludes WHERE iata = ?", bases[i].IATA)
		if err != nil {
			return nil, fmt.Errorf("list excludes: %w", err)
		}
		for exRows.Next() {
			var id int
			if err := exRows.Scan(&id); err != nil {
				exRows.Close()
				return nil, fmt.Errorf("scan exclude: %w", err)
			}
			bases[i].Excluded[id] = true
		}
		exRows.Close()
		if err := exRows.Err(); err != nil {
			return nil, err
		}
	}
	return bases, nil
}

func normalizeIATA(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
