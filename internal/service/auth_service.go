package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/auth"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/config"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/domain"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/events"
	"github.com/ohhpeejoshi/grievance-management-system-sub000/internal/repository"
	apperrors "github.com/ohhpeejoshi/grievance-management-system-sub000/pkg/util/errorutil"
)

// AuthService coordinates account registration and the two-step
// password + one-time-code login.
type AuthService struct {
	accounts   repository.AccountRepository
	otp        *auth.OTPStore
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(cfg config.AuthConfig, accounts repository.AccountRepository, otp *auth.OTPStore, dispatcher events.Dispatcher) *AuthService {
	return &AuthService{
		accounts:   accounts,
		otp:        otp,
		tokenMgr:   auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
		dispatcher: dispatcher,
		bcryptCost: cfg.BcryptCost,
	}
}

// TokenManager exposes the manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

// Register creates an account with a role tag. Office bearers must
// carry a department.
func (s *AuthService) Register(ctx context.Context, name, email, mobile, password string, role domain.AccountRole, departmentID *string) (*domain.Account, error) {
	if role == domain.RoleOfficeBearer && departmentID == nil {
		return nil, apperrors.NewValidationError("office bearer requires a department", nil)
	}
	if _, err := s.accounts.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewValidationError("email already registered", map[string]any{"email": email})
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.NewStorageError(err)
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	account := &domain.Account{
		Name:         name,
		Email:        email,
		Mobile:       mobile,
		PasswordHash: hash,
		Role:         role,
		DepartmentID: departmentID,
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, apperrors.NewStorageError(err)
	}

	s.publish(ctx, events.Event{
		Type: events.EventAccountRegistered,
		Payload: events.AccountRegisteredPayload{
			Name:  account.Name,
			Email: account.Email,
			Role:  account.Role,
		},
	})
	return account, nil
}

// RequestLoginOTP checks the password and mails a one-time code. The
// code lives in the TTL store until verified or expired.
func (s *AuthService) RequestLoginOTP(ctx context.Context, email, password string) error {
	account, err := s.getByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err := auth.ComparePassword(account.PasswordHash, password); err != nil {
		return apperrors.NewUnauthorized("invalid credentials")
	}

	code, err := s.otp.Issue(ctx, account.Email)
	if err != nil {
		return apperrors.NewInternalError(err)
	}

	s.publish(ctx, events.Event{
		Type: events.EventOTPRequested,
		Payload: events.OTPRequestedPayload{
			Email: account.Email,
			Code:  code,
			TTL:   s.otp.TTL().String(),
		},
	})
	return nil
}

// VerifyLoginOTP consumes the code and issues an access token.
func (s *AuthService) VerifyLoginOTP(ctx context.Context, email, code string) (*domain.Account, string, time.Time, error) {
	account, err := s.getByEmail(ctx, email)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	if err := s.otp.Verify(ctx, account.Email, code); err != nil {
		if errors.Is(err, auth.ErrOTPMismatch) {
			return nil, "", time.Time{}, apperrors.NewUnauthorized("invalid or expired code")
		}
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}

	token, expiresAt, err := s.tokenMgr.GenerateToken(account.ID, account.Role)
	if err != nil {
		return nil, "", time.Time{}, apperrors.NewInternalError(err)
	}
	return account, token, expiresAt, nil
}

func (s *AuthService) getByEmail(ctx context.Context, email string) (*domain.Account, error) {
	account, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return nil, apperrors.NewStorageError(err)
	}
	return account, nil
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
