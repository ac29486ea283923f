package httpapi

import (
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeatTokens_RoundTrip(t *testing.T) {
	tokens := NewSeatTokens("secret", time.Hour)
	all, err := tokens.IssueAll("game-1", 3)
	require.NoError(t, err)
	require.Len(t, all, 3)

	for seat, token := range all {
		claims, err := tokens.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "game-1", claims.GameID)
		assert.Equal(t, seat, claims.Seat)
		assert.Equal(t, fmt.Sprintf("game-1/%d", seat), claims.Subject)
	}
}

func TestSeatTokens_Rejected(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	tokens := NewSeatTokens("secret", time.Minute)
	tokens.now = func() time.Time { return now }
	valid, err := tokens.Issue("game-1", 0)
	require.NoError(t, err)

	otherKey, err := NewSeatTokens("other", 0).Issue("game-1", 0)
	require.NoError(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, SeatClaims{GameID: "game-1"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
		err   error
	}{
		{"empty", "", ErrMissingToken},
		{"garbage", "not.a.token", ErrInvalidToken},
		{"other secret", otherKey, ErrInvalidToken},
		{"alg none", unsigned, ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tokens.Verify(tt.token)
			assert.ErrorIs(t, err, tt.err)
		})
	}

	t.Run("expired", func(t *testing.T) {
		_, err := tokens.Verify(valid)
		require.NoError(t, err)
		now = now.Add(2 * time.Minute)
		_, err = tokens.Verify(valid)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestBearer(t *testing.T) {
	tests := []struct {
		header string
		want   string
	}{
		{"", ""},
		{"Bearer abc", "abc"},
		{"Bearer  abc ", "abc"},
		{"Basic abc", ""},
	}
	for _, tt := range tests {
		r := httptest.NewRequest("GET", "/", nil)
		if tt.header != "" {
			r.Header.Set("Authorization", tt.header)
		}
		assert.Equal(t, tt.want, bearer(r), tt.header)
	}
}
