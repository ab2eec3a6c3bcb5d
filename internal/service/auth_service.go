package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/taellinglin/LingTreasury/internal/auth"
	"github.com/taellinglin/LingTreasury/internal/model"
	"github.com/taellinglin/LingTreasury/internal/repository"
)

const bcryptCost = 10

var (
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUsernameTaken is returned when the username already exists.
	ErrUsernameTaken = errors.New("username already exists")
	// ErrEmailTaken is returned when the email is already registered.
	ErrEmailTaken = errors.New("email already registered")
	// ErrTOTPRequired is returned when login needs a two-factor code.
	ErrTOTPRequired = errors.New("two-factor code required")
	// ErrInvalidTOTP is returned when the two-factor code does not verify.
	ErrInvalidTOTP = errors.New("invalid two-factor code")
	// ErrInvalidRefreshToken is returned when refresh token is invalid or expired.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
)

// Enrollment carries what a freshly registered user needs to finish
// two-factor setup.
type Enrollment struct {
	User            *model.User
	ProvisioningURI string
	QRCodeBase64    string
}

// AuthService handles registration, login, and token lifecycle.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (*Enrollment, error)
	Login(ctx context.Context, username, password, totpCode string) (accessToken, refreshToken string, user *model.User, err error)
	VerifySetup(ctx context.Context, username, totpCode string) (accessToken, refreshToken string, user *model.User, err error)
	RefreshToken(ctx context.Context, refreshToken string) (accessToken string, err error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	users      repository.UserRepository
	jwtService *auth.JWTService
	totp       *auth.TOTPService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(users repository.UserRepository, jwtService *auth.JWTService, totp *auth.TOTPService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		users:      users,
		jwtService: jwtService,
		totp:       totp,
		tokenStore: tokenStore,
	}
}

// Register creates a new user with a hashed password and a fresh two-factor
// secret, returning the provisioning QR for enrollment.
func (s *authService) Register(ctx context.Context, username, email, password string) (*Enrollment, error) {
	if existing, err := s.users.FindByUsername(ctx, username); err == nil && existing != nil {
		return nil, ErrUsernameTaken
	} else if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if existing, err := s.users.FindByEmail(ctx, email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	} else if err != nil && err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	secret, err := s.totp.GenerateSecret(username)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:        username,
		Email:           email,
		PasswordHash:    string(hashedPassword),
		TwoFactorSecret: secret,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	uri := s.totp.ProvisioningURI(username, secret)
	qr, err := s.totp.QRCodeBase64(uri)
	if err != nil {
		return nil, err
	}

	return &Enrollment{User: user, ProvisioningURI: uri, QRCodeBase64: qr}, nil
}

// Login authenticates a user. Users with two-factor enabled must supply a
// valid TOTP code alongside the password.
func (s *authService) Login(ctx context.Context, username, password, totpCode string) (string, string, *model.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", "", nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", "", nil, ErrInvalidCredentials
	}

	if user.TwoFactorEnabled() {
		if totpCode == "" {
			return "", "", nil, ErrTOTPRequired
		}
		if !s.totp.Verify(user.TwoFactorSecret, totpCode) {
			return "", "", nil, ErrInvalidTOTP
		}
	}

	return s.issueTokens(ctx, user)
}

// VerifySetup confirms two-factor enrollment with a wider clock window and
// logs the user in on success.
func (s *authService) VerifySetup(ctx context.Context, username, totpCode string) (string, string, *model.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", "", nil, ErrInvalidCredentials
	}
	if !s.totp.VerifySetup(user.TwoFactorSecret, totpCode) {
		return "", "", nil, ErrInvalidTOTP
	}
	return s.issueTokens(ctx, user)
}

func (s *authService) issueTokens(ctx context.Context, user *model.User) (string, string, *model.User, error) {
	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate access token: %w", err)
	}

	tokenID, refreshToken, err := s.jwtService.GenerateRefreshToken(user.ID, user.Username)
	if err != nil {
		return "", "", nil, fmt.Errorf("generate refresh token: %w", err)
	}

	if err := s.tokenStore.StoreRefreshToken(ctx, tokenID, user.ID, user.Username, auth.RefreshTokenExpiry); err != nil {
		return "", "", nil, fmt.Errorf("store refresh token: %w", err)
	}

	return accessToken, refreshToken, user, nil
}

// RefreshToken validates a refresh token and returns a new access token.
func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (string, error) {
	claims, err := s.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}

	storedUserID, storedUsername, err := s.tokenStore.GetRefreshToken(ctx, tokenID)
	if err != nil {
		return "", ErrInvalidRefreshToken
	}
	if storedUserID != claims.UserID || storedUsername != claims.Username {
		return "", ErrInvalidRefreshToken
	}

	accessToken, err := s.jwtService.GenerateAccessToken(claims.UserID, claims.Username)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}

// Logout invalidates a refresh token.
func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	tokenID, err := s.jwtService.ExtractTokenID(refreshToken)
	if err != nil {
		return ErrInvalidRefreshToken
	}
	return s.tokenStore.DeleteRefreshToken(ctx, tokenID)
}
