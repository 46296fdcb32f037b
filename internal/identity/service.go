package identity

import (
	"context"
	"errors"
	"time"

	"github.com/simpleapi/simpleapi/internal/models"
	"github.com/simpleapi/simpleapi/internal/users"
	"github.com/simpleapi/simpleapi/pkg/logger"
)

// SignUpInput is the registration request payload.
type SignUpInput struct {
	UserName string `json:"userName" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginInput is the login request payload.
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginOutput is returned on a successful login.
type LoginOutput struct {
	Success      bool   `json:"success"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	UserID       string `json:"userId"`
	Username     string `json:"username"`
}

// Service orchestrates sign-up and login over the credential store and the
// token signer.
type Service struct {
	store          users.Store
	signer         *Signer
	accessTokenTTL time.Duration
}

func NewService(store users.Store, signer *Signer, accessTokenTTL time.Duration) *Service {
	return &Service{store: store, signer: signer, accessTokenTTL: accessTokenTTL}
}

// SignUp creates a new account with a confirmed email and lockout disabled,
// so repeated failed logins never lock it. Store rejections surface as
// *RegistrationError with one detail per reason.
func (s *Service) SignUp(ctx context.Context, input SignUpInput) error {
	u := &models.UserRecord{
		Username:       input.UserName,
		Email:          input.Email,
		EmailConfirmed: true,
	}
	logger.Infof("User creating account: %s / %s", input.UserName, input.Email)
	if err := s.store.Create(ctx, u, input.Password); err != nil {
		var rej *users.RejectedError
		if errors.As(err, &rej) {
			return &RegistrationError{Message: "User can't be created", Details: rej.Reasons}
		}
		return err
	}
	logger.Infof("User created successfully: %s / %s", input.UserName, input.Email)
	return s.store.SetLockout(ctx, u.ID, false)
}

// Login verifies the credentials and issues an access/refresh token pair.
// Every failure mode collapses into ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, input LoginInput) (*LoginOutput, error) {
	byEmail, err := s.store.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if byEmail == nil || byEmail.Username == "" {
		return nil, ErrInvalidCredentials
	}
	ok, err := s.store.VerifyPassword(ctx, byEmail, input.Password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	user, err := s.store.FindByUsername(ctx, byEmail.Username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	accessClaims, err := BuildClaims(ctx, s.store, user, true)
	if err != nil {
		return nil, err
	}
	refreshClaims, err := BuildClaims(ctx, s.store, user, false)
	if err != nil {
		return nil, err
	}

	// Refresh tokens currently share the access-token window; nothing
	// redeems them for a new access token yet.
	accessExpiry := time.Now().Add(s.accessTokenTTL)
	refreshExpiry := time.Now().Add(s.accessTokenTTL)

	accessToken, err := s.signer.Issue(accessClaims, accessExpiry)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.signer.Issue(refreshClaims, refreshExpiry)
	if err != nil {
		return nil, err
	}

	return &LoginOutput{
		Success:      true,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		UserID:       user.ID,
		Username:     user.Username,
	}, nil
}
