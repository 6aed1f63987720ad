package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"gopkg.in/yaml.v3"

	"github.com/parkops/events-backend/internal/models"
	"github.com/parkops/events-backend/pkg/database"
)

// Fixture validation errors.
var (
	ErrNoData             = errors.New("fixture has no parks and no volunteers")
	ErrParkMissingName    = errors.New("park name is required")
	ErrVolunteerNoName    = errors.New("volunteer full_name is required")
	ErrVolunteerBadStatus = errors.New("volunteer status must be active or inactive")
)

// Fixture is the reference data owned by other municipal systems, loaded for local runs.
type Fixture struct {
	Parks      []ParkFixture      `yaml:"parks"`
	Volunteers []VolunteerFixture `yaml:"volunteers"`
}

// ParkFixture is one park row.
type ParkFixture struct {
	Name    string `yaml:"name"`
	Address string `yaml:"address"`
}

// VolunteerFixture is one volunteer row.
type VolunteerFixture struct {
	FullName string `yaml:"full_name"`
	Email    string `yaml:"email"`
	Phone    string `yaml:"phone"`
	Status   string `yaml:"status"`
}

// LoadFixture reads and validates a YAML fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(data)
}

// ParseFixture decodes a fixture and applies defaults.
func ParseFixture(data []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	for i := range f.Volunteers {
		if f.Volunteers[i].Status == "" {
			f.Volunteers[i].Status = models.VolunteerStatusActive
		}
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks every entry.
func (f *Fixture) Validate() error {
	if len(f.Parks) == 0 && len(f.Volunteers) == 0 {
		return ErrNoData
	}
	for i, p := range f.Parks {
		if p.Name == "" {
			return fmt.Errorf("parks[%d]: %w", i, ErrParkMissingName)
		}
	}
	for i, v := range f.Volunteers {
		if v.FullName == "" {
			return fmt.Errorf("volunteers[%d]: %w", i, ErrVolunteerNoName)
		}
		if v.Status != models.VolunteerStatusActive && v.Status != models.VolunteerStatusInactive {
			return fmt.Errorf("volunteers[%d]: %w", i, ErrVolunteerBadStatus)
		}
	}
	return nil
}

// Apply inserts the rows that are not present yet, matched by name.
func (f *Fixture) Apply(ctx context.Context, pool *pgxpool.Pool) (parks, volunteers int64, err error) {
	const (
		insertPark = `INSERT INTO parks (name, address)
			SELECT $1, $2 WHERE NOT EXISTS (SELECT 1 FROM parks WHERE name = $1)`
		insertVolunteer = `INSERT INTO volunteers (full_name, email, phone, status)
			SELECT $1, $2, $3, $4 WHERE NOT EXISTS (SELECT 1 FROM volunteers WHERE full_name = $1)`
	)
	err = database.WithTx(ctx, pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, p := range f.Parks {
			batch.Queue(insertPark, p.Name, p.Address)
		}
		for _, v := range f.Volunteers {
			batch.Queue(insertVolunteer, v.FullName, v.Email, v.Phone, v.Status)
		}
		br := tx.SendBatch(ctx, batch)
		for i := 0; i < batch.Len(); i++ {
			tag, err := br.Exec()
			if err != nil {
				_ = br.Close()
				return fmt.Errorf("seed row %d: %w", i, err)
			}
			if i < len(f.Parks) {
				parks += tag.RowsAffected()
			} else {
				volunteers += tag.RowsAffected()
			}
		}
		return br.Close()
	})
	return parks, volunteers, err
}
