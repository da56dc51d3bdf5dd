// README: Analysis history store backed by PostgreSQL.
package history

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Insert(ctx context.Context, r *Record) error {
	result, err := json.Marshal(r.Result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	_, err = s.db.Exec(ctx, `
		INSERT INTO analyses (id, source, destination, travel_date, passenger_count,
			travel_class, priority, result, degraded, provider, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`, r.ID, r.Source, r.Destination, r.TravelDate, r.PassengerCount,
		r.TravelClass, r.Priority, result, r.Degraded, r.Provider, r.CreatedAt)
	return err
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id::text, source, destination, travel_date, passenger_count,
			travel_class, priority, result, degraded, provider, created_at
		FROM analyses
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Record, 0, limit)
	for rows.Next() {
		var (
			r      Record
			result []byte
		)
		if err := rows.Scan(&r.ID, &r.Source, &r.Destination, &r.TravelDate, &r.PassengerCount,
			&r.TravelClass, &r.Priority, &result, &r.Degraded, &r.Provider, &r.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(result, &r.Result); err != nil {
			return nil, fmt.Errorf("decode result %s: %w", r.ID, err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
