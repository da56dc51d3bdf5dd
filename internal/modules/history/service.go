// README: History service records completed analyses and lists recent ones.
package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"railmate/internal/modules/booking"
)

type Service struct {
	store *Store
	now   func() time.Time
}

func NewService(store *Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Record implements booking.Recorder.
func (s *Service) Record(ctx context.Context, a booking.Analysis) error {
	return s.store.Insert(ctx, newRecord(a, s.now().UTC()))
}

// Recent lists the latest analyses. A zero limit means DefaultLimit.
func (s *Service) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 1 || limit > MaxLimit {
		return nil, ErrBadLimit
	}
	return s.store.Recent(ctx, limit)
}

func newRecord(a booking.Analysis, now time.Time) *Record {
	return &Record{
		ID:             uuid.NewString(),
		Source:         a.Query.Source,
		Destination:    a.Query.Destination,
		TravelDate:     a.Query.TravelDate,
		PassengerCount: a.Query.PassengerCount,
		TravelClass:    string(a.Query.TravelClass),
		Priority:       string(a.Query.Priority),
		Result:         a.Result,
		Degraded:       a.Degraded,
		Provider:       a.Provider,
		CreatedAt:      now,
	}
}
