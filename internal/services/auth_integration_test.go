package services

import (
	"context"
	"testing"
	"time"

	"github.com/reelstack/dvdrental-backend/internal/data/repos/testutil"
	userrepo "github.com/reelstack/dvdrental-backend/internal/data/repos/user"
	types "github.com/reelstack/dvdrental-backend/internal/domain"
	"github.com/reelstack/dvdrental-backend/internal/platform/apierr"
)

func newAuthService(t *testing.T) AuthService {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	return NewAuthService(db, log, userrepo.NewUserRepo(db, log), "test-secret", time.Hour)
}

func TestAuthRegisterLoginRoundTrip(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{
		Email:    "Rita@Example.com",
		Password: "correct-horse",
		Nickname: "rita",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.Email != "rita@example.com" {
		t.Fatalf("email must be normalized, got %q", user.Email)
	}
	if user.Role != types.RoleUser {
		t.Fatalf("new accounts default to USER, got %q", user.Role)
	}

	token, logged, err := svc.Login(ctx, "rita@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if logged.ID != user.ID {
		t.Fatalf("login returned the wrong user")
	}

	claims, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != types.RoleUser {
		t.Fatalf("claims do not match the account: %+v", claims)
	}
}

func TestAuthRegister_DuplicateEmail(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	in := RegisterInput{Email: "dup@example.com", Password: "correct-horse", Nickname: "first"}
	if _, err := svc.Register(ctx, in); err != nil {
		t.Fatalf("first register: %v", err)
	}
	in.Nickname = "second"
	if _, err := svc.Register(ctx, in); !apierr.IsCode(err, apierr.CodeValidation) {
		t.Fatalf("expected validation_error for duplicate email, got %v", err)
	}
}

func TestAuthLogin_WrongPassword(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, RegisterInput{
		Email: "sam@example.com", Password: "correct-horse", Nickname: "sam",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, _, err := svc.Login(ctx, "sam@example.com", "wrong-horse")
	if !apierr.IsCode(err, apierr.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	_, _, err = svc.Login(ctx, "nobody@example.com", "whatever")
	if !apierr.IsCode(err, apierr.CodeUnauthorized) {
		t.Fatalf("unknown accounts must look like bad credentials, got %v", err)
	}
}

func TestAuthParseToken_Garbage(t *testing.T) {
	svc := newAuthService(t)
	if _, err := svc.ParseToken("not-a-token"); !apierr.IsCode(err, apierr.CodeUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
