package storage

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Token errors returned by Parse.
var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Signer creates and validates expiring HMAC tokens that name one subject,
// such as a report id in a public share link.
type Signer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSigner constructs a signer with the provided secret and TTL.
func NewSigner(secret string, ttl time.Duration) *Signer {
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	return &Signer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock replaces the time source.
func (s *Signer) WithClock(now func() time.Time) *Signer {
	s.now = now
	return s
}

// TTL returns how long generated tokens stay valid.
func (s *Signer) TTL() time.Duration {
	return s.ttl
}

// Generate returns a token for subject and its expiry.
func (s *Signer) Generate(subject string) (string, time.Time, error) {
	if subject == "" {
		return "", time.Time{}, fmt.Errorf("subject required")
	}
	if len(s.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("signing secret missing")
	}
	expiresAt := s.now().Add(s.ttl).Truncate(time.Second)
	encoded := base64.RawURLEncoding.EncodeToString([]byte(subject))
	ts := strconv.FormatInt(expiresAt.Unix(), 10)
	token := strings.Join([]string{encoded, ts, s.sign(encoded, ts)}, ".")
	return token, expiresAt, nil
}

// Parse validates a token and returns its subject and expiry.
func (s *Signer) Parse(token string) (subject string, expiresAt time.Time, err error) {
	if len(s.secret) == 0 {
		return "", time.Time{}, fmt.Errorf("%w: signing secret missing", ErrTokenInvalid)
	}
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		return "", time.Time{}, fmt.Errorf("%w: format", ErrTokenInvalid)
	}
	encoded, ts, signature := parts[0], parts[1], parts[2]

	if !hmac.Equal([]byte(s.sign(encoded, ts)), []byte(signature)) {
		return "", time.Time{}, fmt.Errorf("%w: signature", ErrTokenInvalid)
	}
	raw, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: subject", ErrTokenInvalid)
	}
	unix, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: timestamp", ErrTokenInvalid)
	}
	expiresAt = time.Unix(unix, 0)
	if s.now().After(expiresAt) {
		return "", expiresAt, ErrTokenExpired
	}
	return string(raw), expiresAt, nil
}

func (s *Signer) sign(encoded, ts string) string {
	mac := hmac.New(sha256.New, s.secret)
	_, _ = mac.Write([]byte(encoded + "|" + ts))
	return hex.EncodeToString(mac.Sum(nil))
}
