package httpapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMissingToken = errors.New("missing seat token")
	ErrInvalidToken = errors.New("invalid seat token")
)

// SeatClaims bind a token to one seat of one game
type SeatClaims struct {
	GameID string `json:"game_id"`
	Seat   int    `json:"seat"`
	jwt.RegisteredClaims
}

// SeatTokens issues and verifies HS256 seat tokens. Players get one token
// per seat when a game is created and present it to act for that seat.
type SeatTokens struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSeatTokens creates an issuer. A zero ttl issues tokens that never expire.
func NewSeatTokens(secret string, ttl time.Duration) *SeatTokens {
	return &SeatTokens{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue signs a token for a seat
func (s *SeatTokens) Issue(gameID string, seat int) (string, error) {
	now := s.now()
	claims := SeatClaims{
		GameID: gameID,
		Seat:   seat,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  fmt.Sprintf("%s/%d", gameID, seat),
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if s.ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(s.ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// IssueAll signs one token per seat
func (s *SeatTokens) IssueAll(gameID string, seats int) ([]string, error) {
	tokens := make([]string, seats)
	for seat := range tokens {
		token, err := s.Issue(gameID, seat)
		if err != nil {
			return nil, err
		}
		tokens[seat] = token
	}
	return tokens, nil
}

// Verify checks the signature and expiry of a token and returns its claims
func (s *SeatTokens) Verify(token string) (*SeatClaims, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	claims := &SeatClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if claims.GameID == "" || claims.Seat < 0 {
		return nil, fmt.Errorf("%w: incomplete claims", ErrInvalidToken)
	}
	return claims, nil
}

// bearer extracts the token of an Authorization header
func bearer(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if token, ok := strings.CutPrefix(h, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}
