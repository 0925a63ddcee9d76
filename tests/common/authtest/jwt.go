//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"studio-booking/internal/pkg/config"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// JWTHelper mints tokens the way the auth gateway would. The engine itself
// only validates.
type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) MintStaffToken(t *testing.T, subject, role string) string {
	t.Helper()
	return h.mint(t, subject, role, time.Hour)
}

func (h *JWTHelper) MintExpiredToken(t *testing.T, subject, role string) string {
	t.Helper()
	return h.mint(t, subject, role, -time.Hour)
}

func (h *JWTHelper) mint(t *testing.T, subject, role string, ttl time.Duration) string {
	t.Helper()

	now := time.Now()
	claims := gojwt.MapClaims{
		"sub":  subject,
		"role": role,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.cfg.Secret))
	require.NoError(t, err)
	return signed
}
