package jwt_test

import (
	"testing"
	"time"

	"github.com/connyyu/pdbstats/internal/config"
	"github.com/connyyu/pdbstats/internal/pkg/timex"
	"github.com/connyyu/pdbstats/internal/platform/jwt"
)

const testKey = "testsecret"

func newTestSigner() jwt.Signer {
	cfg := &config.JWT{
		JTILength: 16,
		Issuer:    "pdbstats",
		TTL:       timex.Duration{Duration: 15 * time.Minute},
	}
	return jwt.NewGolangJWTSigner(cfg, testKey)
}

func TestGolangJWTSigner_SignAndVerify(t *testing.T) {
	t.Parallel()

	signer := newTestSigner()

	token, err := signer.Sign("admin", []string{"pdbstats"}, 15*time.Minute)
	if err != nil {
		t.Fatalf("signer.Sign() = %v, want: nil error", err)
	}

	claims, err := signer.Verify(token)
	if err != nil {
		t.Fatalf("signer.Verify() = %v, want: nil error", err)
	}

	if got, want := claims.Subject, "admin"; got != want {
		t.Errorf("claims.Subject = %q, want: %q", got, want)
	}
}

func TestGolangJWTSigner_VerifyExpiredToken(t *testing.T) {
	t.Parallel()

	signer := newTestSigner()

	token, err := signer.Sign("admin", []string{"pdbstats"}, -time.Minute)
	if err != nil {
		t.Fatalf("signer.Sign() = %v, want: nil error", err)
	}

	if _, err := signer.Verify(token); err == nil {
		t.Error("signer.Verify() = nil error, want: error for expired token")
	}
}

func TestGolangJWTSigner_VerifyTamperedToken(t *testing.T) {
	t.Parallel()

	signer := newTestSigner()

	token, err := signer.Sign("admin", []string{"pdbstats"}, 15*time.Minute)
	if err != nil {
		t.Fatalf("signer.Sign() = %v, want: nil error", err)
	}

	otherSigner := jwt.NewGolangJWTSigner(&config.JWT{JTILength: 16, Issuer: "pdbstats"}, "otherkey")
	if _, err := otherSigner.Verify(token); err == nil {
		t.Error("otherSigner.Verify() = nil error, want: error for wrong key")
	}
}
