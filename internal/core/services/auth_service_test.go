package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"fitconnect/internal/adapters/persistence/models"
	"fitconnect/internal/config"
	"fitconnect/internal/core/domain"
	"fitconnect/internal/core/session"
	"fitconnect/internal/pkg/password"
)

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
}

type authFixture struct {
	service  *AuthService
	sessions *session.Authority
	users    *fakeUserRepo
	tokens   *fakeRefreshTokenRepo
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	users := newFakeUserRepo()
	tokens := newFakeRefreshTokenRepo()
	trainers := newFakeTrainerRepo()
	members := newFakeMemberRepo()
	memberships := newFakeMembershipRepo()
	sessions := session.New(newMemorySessionStore())

	hashed, err := password.Hash("correct-horse-1")
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	ctx := context.Background()

	admin := &models.User{Username: "admin", Password: hashed, Role: "ADMIN", Status: models.UserStatusActive}
	_ = users.Create(ctx, admin)

	trainerUser := &models.User{Username: "kru", Password: hashed, Role: "TRAINER", Status: models.UserStatusActive}
	_ = users.Create(ctx, trainerUser)
	_ = trainers.Create(ctx, &models.Trainer{UserID: trainerUser.ID, FullName: "Kru Somsak", Status: models.UserStatusActive})

	memberUser := &models.User{Username: "somchai", Password: hashed, Role: "MEMBER", Status: models.UserStatusActive}
	_ = users.Create(ctx, memberUser)
	member := &models.Member{UserID: memberUser.ID, FullName: "Somchai J.", Status: models.UserStatusActive}
	_ = members.Create(ctx, member)
	_ = memberships.Create(ctx, &models.Membership{
		MemberID:  member.ID,
		StartDate: time.Now().AddDate(0, -1, 0),
		EndDate:   time.Now().AddDate(0, 1, 0),
		Status:    models.MembershipStatusActive,
	})

	lapsedUser := &models.User{Username: "lapsed", Password: hashed, Role: "MEMBER", Status: models.UserStatusActive}
	_ = users.Create(ctx, lapsedUser)
	lapsed := &models.Member{UserID: lapsedUser.ID, FullName: "Lapsed L.", Status: models.UserStatusActive}
	_ = members.Create(ctx, lapsed)
	_ = memberships.Create(ctx, &models.Membership{
		MemberID:  lapsed.ID,
		StartDate: time.Now().AddDate(0, -3, 0),
		EndDate:   time.Now().AddDate(0, 0, -2),
		Status:    models.MembershipStatusActive,
	})

	frozen := &models.User{Username: "frozen", Password: hashed, Role: "MEMBER", Status: models.UserStatusSuspended}
	_ = users.Create(ctx, frozen)

	service := NewAuthService(users, tokens, trainers, members, memberships, sessions, testConfig())
	return &authFixture{service: service, sessions: sessions, users: users, tokens: tokens}
}

func TestLoginPerRole(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	cases := []struct {
		username string
		role     string
		fullName string
	}{
		{"admin", "ADMIN", "admin"},
		{"kru", "TRAINER", "Kru Somsak"},
		{"somchai", "MEMBER", "Somchai J."},
	}
	for _, tc := range cases {
		t.Run(tc.role, func(t *testing.T) {
			result, err := fx.service.Login(ctx, &LoginInput{
				Username: tc.username,
				Password: "correct-horse-1",
				Role:     tc.role,
			})
			if err != nil {
				t.Fatalf("login failed: %v", err)
			}
			if result.User.FullName != tc.fullName {
				t.Errorf("expected full name %q, got %q", tc.fullName, result.User.FullName)
			}
			if result.AccessToken == "" || result.RefreshToken == "" {
				t.Error("expected a token pair")
			}

			current, err := fx.sessions.Current(ctx)
			if err != nil {
				t.Fatalf("no session after login: %v", err)
			}
			if current.Username != tc.username || current.Role.String() != tc.role {
				t.Errorf("session holds %s/%s, want %s/%s", current.Username, current.Role, tc.username, tc.role)
			}
		})
	}
}

func TestLoginProfileIDIsNotUserID(t *testing.T) {
	fx := newAuthFixture(t)

	// somchai is user 3 but member profile 1
	result, err := fx.service.Login(context.Background(), &LoginInput{
		Username: "somchai", Password: "correct-horse-1", Role: "MEMBER",
	})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.User.ID == result.User.ProfileID {
		t.Fatalf("user id %d and profile id %d should differ in this fixture", result.User.ID, result.User.ProfileID)
	}
	if result.User.ProfileID != 1 {
		t.Errorf("expected member profile id 1, got %d", result.User.ProfileID)
	}
}

func TestLoginFailsUniformly(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input LoginInput
	}{
		{"unknown username", LoginInput{Username: "nobody", Password: "correct-horse-1", Role: "MEMBER"}},
		{"wrong password", LoginInput{Username: "somchai", Password: "wrong", Role: "MEMBER"}},
		{"wrong role portal", LoginInput{Username: "somchai", Password: "correct-horse-1", Role: "TRAINER"}},
		{"admin portal as member", LoginInput{Username: "somchai", Password: "correct-horse-1", Role: "ADMIN"}},
		{"invalid role", LoginInput{Username: "somchai", Password: "correct-horse-1", Role: "GUEST"}},
		{"username case mismatch", LoginInput{Username: "Somchai", Password: "correct-horse-1", Role: "MEMBER"}},
		{"lapsed membership", LoginInput{Username: "lapsed", Password: "correct-horse-1", Role: "MEMBER"}},
		{"suspended account", LoginInput{Username: "frozen", Password: "correct-horse-1", Role: "MEMBER"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := fx.service.Login(ctx, &tc.input)
			if !errors.Is(err, domain.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
			if fx.sessions.IsLoggedIn(ctx) {
				t.Error("failed login must not establish a session")
			}
		})
	}
}

func TestRefreshRotatesToken(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	login, err := fx.service.Login(ctx, &LoginInput{Username: "admin", Password: "correct-horse-1", Role: "ADMIN"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	refreshed, err := fx.service.RefreshToken(ctx, login.RefreshToken)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if refreshed.RefreshToken == login.RefreshToken {
		t.Error("refresh must rotate the refresh token")
	}

	// The old token is revoked and cannot be replayed
	if _, err := fx.service.RefreshToken(ctx, login.RefreshToken); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid on replay, got %v", err)
	}
}

func TestRefreshRejectsGarbage(t *testing.T) {
	fx := newAuthFixture(t)

	_, err := fx.service.RefreshToken(context.Background(), "not-a-jwt")
	if !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestLogoutTearsDownSession(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	login, err := fx.service.Login(ctx, &LoginInput{Username: "somchai", Password: "correct-horse-1", Role: "MEMBER"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := fx.service.Logout(ctx, login.RefreshToken); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if fx.sessions.IsLoggedIn(ctx) {
		t.Error("expected session torn down after logout")
	}
	if _, err := fx.service.RefreshToken(ctx, login.RefreshToken); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Fatalf("expected revoked token to be rejected, got %v", err)
	}
}

func TestValidateAccessToken(t *testing.T) {
	fx := newAuthFixture(t)
	ctx := context.Background()

	login, err := fx.service.Login(ctx, &LoginInput{Username: "kru", Password: "correct-horse-1", Role: "TRAINER"})
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	claims, err := fx.service.ValidateAccessToken(login.AccessToken)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if claims.Username != "kru" || claims.Role != "TRAINER" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}
