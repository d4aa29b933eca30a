package ingest

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/vacayzen/product-recommendation/internal/domain"
	"golang.org/x/sync/errgroup"
)

// DatasetSources names where each input table comes from. Costs and
// Inventory may be nil, which loads them as empty tables.
type DatasetSources struct {
	Rentals   Source
	Costs     Source
	Inventory Source
}

// Loader fetches and parses the input tables.
type Loader struct{}

func NewLoader() *Loader {
	return &Loader{}
}

// Load fetches the three tables concurrently, parses them and returns the
// dataset with a fingerprint of the raw tables.
func (l *Loader) Load(ctx context.Context, src DatasetSources) (*domain.Dataset, string, error) {
	if src.Rentals == nil {
		return nil, "", fmt.Errorf("no source given for %s", TableRentals)
	}

	started := time.Now()
	tables := make([]*Table, 3)
	sources := []Source{src.Rentals, src.Costs, src.Inventory}
	names := []string{TableRentals, TableCosts, TableInventory}

	g, gctx := errgroup.WithContext(ctx)
	for i, s := range sources {
		if s == nil {
			tables[i] = NewTable(names[i], nil, nil)
			continue
		}
		g.Go(func() error {
			t, err := s.Fetch(gctx)
			if err != nil {
				return err
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, "", err
	}

	ds := &domain.Dataset{}
	var err error
	if ds.Reservations, err = ParseReservations(tables[0]); err != nil {
		return nil, "", err
	}
	if src.Costs != nil {
		if ds.Costs, err = ParseCosts(tables[1]); err != nil {
			return nil, "", err
		}
	}
	if src.Inventory != nil {
		if ds.Inventory, err = ParseInventory(tables[2]); err != nil {
			return nil, "", err
		}
	}

	fingerprint := fingerprintTables(tables...)

	log.Info().
		Int("reservations", len(ds.Reservations)).
		Int("costs", len(ds.Costs)).
		Int("inventory", len(ds.Inventory)).
		Str("fingerprint", fingerprint).
		Dur("elapsed", time.Since(started)).
		Msg("dataset loaded")

	return ds, fingerprint, nil
}

// LoadReservations fetches and parses only the rentals table.
func (l *Loader) LoadReservations(ctx context.Context, src Source) ([]domain.ReservationRecord, error) {
	if src == nil {
		return nil, fmt.Errorf("no source given for %s", TableRentals)
	}
	t, err := src.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	return ParseReservations(t)
}

func fingerprintTables(tables ...*Table) string {
	h := sha1.New()
	for _, t := range tables {
		t.writeTo(h)
	}
	return hex.EncodeToString(h.Sum(nil))
}
