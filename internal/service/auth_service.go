package service

import (
	"context"
	"time"

	"github.com/ansh808s/cause-drop/internal/model"
	appErr "github.com/ansh808s/cause-drop/internal/pkg/errors"
	"github.com/ansh808s/cause-drop/internal/pkg/jwt"
	"github.com/ansh808s/cause-drop/internal/pkg/timeutil"
	"github.com/ansh808s/cause-drop/internal/wallet"
)

// UserStore is the durable-store contract the auth flow consumes. Create
// must enforce address uniqueness and return ErrConflict on violation.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByAddress(ctx context.Context, address string) (*model.User, error)
	GetByID(ctx context.Context, userID string) (*model.User, error)
}

type AuthService struct {
	users      UserStore
	jwtSecret  []byte
	jwtTTL     time.Duration
	signDomain string
}

func NewAuthService(users UserStore, secret []byte, ttl time.Duration, signDomain string) *AuthService {
	return &AuthService{users: users, jwtSecret: secret, jwtTTL: ttl, signDomain: signDomain}
}

// Challenge composes the message the wallet is asked to sign. Any address
// string is accepted here; validity is checked when the signature comes
// back.
func (s *AuthService) Challenge(address string) string {
	return wallet.Compose(s.signDomain, address, time.Now())
}

// SignIn verifies the detached signature and issues a session token,
// creating the user on first sight of the address. A concurrent first
// sign-in losing the insert race falls back to the winner's row.
func (s *AuthService) SignIn(ctx context.Context, address, signature, message string) (*model.User, string, error) {
	if !wallet.Verify(address, signature, message) {
		return nil, "", appErr.ErrInvalidSignature
	}
	user, err := s.users.GetByAddress(ctx, address)
	if appErr.IsNotFound(err) {
		user = &model.User{
			ID:      newID(),
			Address: address,
			Ctime:   timeutil.NowUnix(),
		}
		err = s.users.Create(ctx, user)
		if appErr.IsConflict(err) {
			user, err = s.users.GetByAddress(ctx, address)
		}
	}
	if err != nil {
		return nil, "", err
	}
	token, err := jwt.GenerateToken(user.ID, user.Address, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Verify resolves a presented token back to a live user.
func (s *AuthService) Verify(ctx context.Context, token string) (*model.User, error) {
	claims, err := jwt.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, appErr.ErrInvalidToken
	}
	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	return user, nil
}
