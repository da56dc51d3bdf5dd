// README: Analysis result cache backed by Redis.
package booking

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "booking:analysis:"

// Store caches AnalysisResult values under a hash of the query.
type Store struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewStore(redis *redis.Client, ttl time.Duration) *Store {
	return &Store{redis: redis, ttl: ttl}
}

func (s *Store) Get(ctx context.Context, q BookingQuery) (AnalysisResult, bool, error) {
	raw, err := s.redis.Get(ctx, cacheKey(q)).Bytes()
	if err == redis.Nil {
		return AnalysisResult{}, false, nil
	}
	if err != nil {
		return AnalysisResult{}, false, err
	}
	var res AnalysisResult
	if err := json.Unmarshal(raw, &res); err != nil {
		return AnalysisResult{}, false, err
	}
	return res, true, nil
}

func (s *Store) Set(ctx context.Context, q BookingQuery, r AnalysisResult) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, cacheKey(q), raw, s.ttl).Err()
}

// cacheKey uses the values exactly as they reach the prompt, so a hit is
// always an analysis generated for the same text.
func cacheKey(q BookingQuery) string {
	parts := []string{
		q.Source,
		q.Destination,
		q.TravelDate,
		strconv.Itoa(q.PassengerCount),
		string(q.TravelClass),
		string(q.Priority),
	}
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x1f")))
	return cacheKeyPrefix + hex.EncodeToString(sum[:])
}
