package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrOTPMismatch is returned when the supplied code is unknown,
// expired, or does not match.
var ErrOTPMismatch = errors.New("otp invalid or expired")

const otpKeyPrefix = "otp:"

// OTPStore keeps one-time codes in redis under an explicit TTL. A code
// is consumed on successful verification.
type OTPStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewOTPStore builds the store.
func NewOTPStore(client *redis.Client, ttl time.Duration) *OTPStore {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &OTPStore{client: client, ttl: ttl}
}

// TTL returns the configured code lifetime.
func (s *OTPStore) TTL() time.Duration {
	return s.ttl
}

// Issue generates a 6-digit code for the email, replacing any earlier
// outstanding code.
func (s *OTPStore) Issue(ctx context.Context, email string) (string, error) {
	code, err := randomCode()
	if err != nil {
		return "", err
	}
	if err := s.client.Set(ctx, otpKeyPrefix+email, code, s.ttl).Err(); err != nil {
		return "", err
	}
	return code, nil
}

// Verify checks the code for the email and consumes it on success.
func (s *OTPStore) Verify(ctx context.Context, email, code string) error {
	key := otpKeyPrefix + email
	stored, err := s.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrOTPMismatch
		}
		return err
	}
	if stored != code {
		return ErrOTPMismatch
	}
	return s.client.Del(ctx, key).Err()
}

func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
