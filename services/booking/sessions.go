package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"glowbook/models"
)

const sessionKeyPrefix = "bookingSession:"

// SessionStore persists BookingSessions in Redis with a sliding TTL, keyed
// by the identifier carried in the visitor's cookie.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore builds a store on the given Redis client.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

// New creates a fresh session with a random identifier. It is not persisted
// until Save is called.
func (st *SessionStore) New() *models.BookingSession {
	return &models.BookingSession{SessionID: uuid.New().String()}
}

// Load retrieves a session; ErrSessionNotFound after expiry or for unknown
// identifiers.
func (st *SessionStore) Load(ctx context.Context, sessionID string) (*models.BookingSession, error) {
	data, err := st.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to load booking session: %w", err)
	}
	var sess models.BookingSession
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal booking session: %w", err)
	}
	return &sess, nil
}

// Save writes the session back and refreshes its TTL.
func (st *SessionStore) Save(ctx context.Context, sess *models.BookingSession) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session: %w", err)
	}
	if err := st.client.Set(ctx, sessionKeyPrefix+sess.SessionID, data, st.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store booking session: %w", err)
	}
	return nil
}

// Delete discards a session, e.g. on explicit cancellation.
func (st *SessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := st.client.Del(ctx, sessionKeyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete booking session: %w", err)
	}
	return nil
}
