package services

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/promptvault/promptvault-backend/internal/logger"
	"github.com/promptvault/promptvault-backend/internal/requestdata"
	"github.com/promptvault/promptvault-backend/internal/types"
)

const testSecret = "test-secret"

func newTokenAuthService() *authService {
	svc := NewAuthService(nil, logger.NewNop(), nil, nil, testSecret, time.Hour, 24*time.Hour)
	return svc.(*authService)
}

func TestSetContextFromTokenRoundTrip(t *testing.T) {
	as := newTokenAuthService()
	user := &types.User{ID: uuid.New(), IsAdmin: true}

	token, err := as.generateAccessToken(user)
	if err != nil {
		t.Fatalf("generateAccessToken: %v", err)
	}

	ctx, err := as.SetContextFromToken(context.Background(), token)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		t.Fatal("no request data attached to context")
	}
	if rd.UserID != user.ID {
		t.Errorf("UserID = %s, want %s", rd.UserID, user.ID)
	}
	if !rd.IsAdmin {
		t.Error("IsAdmin flag was not carried through the token")
	}
	if rd.TokenString != token {
		t.Error("TokenString not preserved")
	}
}

func TestSetContextFromTokenEmptyIsAnonymous(t *testing.T) {
	as := newTokenAuthService()
	ctx, err := as.SetContextFromToken(context.Background(), "")
	if err != nil {
		t.Fatalf("empty token must not error: %v", err)
	}
	if rd := requestdata.GetRequestData(ctx); rd != nil {
		t.Errorf("request data = %+v, want none for anonymous", rd)
	}
}

func TestSetContextFromTokenRejectsBadSignature(t *testing.T) {
	as := newTokenAuthService()
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("wrong-secret"))
	if err != nil {
		t.Fatalf("sign forged token: %v", err)
	}
	if _, err := as.SetContextFromToken(context.Background(), forged); err == nil {
		t.Error("expected error for token signed with the wrong secret")
	}
}

func TestSetContextFromTokenRejectsExpired(t *testing.T) {
	as := newTokenAuthService()
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign expired token: %v", err)
	}
	if _, err := as.SetContextFromToken(context.Background(), expired); err == nil {
		t.Error("expected error for expired token")
	}
}
