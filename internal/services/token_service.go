package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/videotube-backend/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrMissingToken      = errors.New("token is missing")
	ErrInvalidToken      = errors.New("invalid or expired token")
	ErrRefreshTokenReuse = errors.New("refresh token is expired or used")
)

// AccessClaims are carried by the short-lived access token. Subject is the user id.
type AccessClaims struct {
	jwt.RegisteredClaims
	Email    string `json:"email"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
}

// RefreshClaims carry only the user id (Subject) and a unique token id.
type RefreshClaims struct {
	jwt.RegisteredClaims
}

type TokenService struct {
	users repository.UserRepository
	cfg   *config.Config
}

func NewTokenService(users repository.UserRepository, cfg *config.Config) *TokenService {
	return &TokenService{users: users, cfg: cfg}
}

// IssueTokenPair signs a new access/refresh pair and stores the refresh token
// hash on the user, replacing any previous one.
func (s *TokenService) IssueTokenPair(ctx context.Context, user *models.User) (*dto.TokenPair, error) {
	pair, err := s.signPair(user)
	if err != nil {
		return nil, err
	}

	if err := s.users.SetRefreshTokenHash(ctx, user.ID, hashToken(pair.RefreshToken)); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}
	return pair, nil
}

func (s *TokenService) signPair(user *models.User) (*dto.TokenPair, error) {
	accessToken, err := s.generateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshToken, err := s.generateRefreshToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}
	return &dto.TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

func (s *TokenService) VerifyAccessToken(tokenString string) (*AccessClaims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}
	claims := &AccessClaims{}
	if err := parse(tokenString, claims, s.cfg.AccessTokenSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *TokenService) VerifyRefreshToken(tokenString string) (*RefreshClaims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}
	claims := &RefreshClaims{}
	if err := parse(tokenString, claims, s.cfg.RefreshTokenSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

// RotateRefreshToken exchanges a refresh token for a new pair. The incoming
// token must be the one currently stored on the user. The swap is a single
// conditional update, so of two concurrent rotations with the same token only
// one succeeds.
func (s *TokenService) RotateRefreshToken(ctx context.Context, incoming string) (*dto.TokenPair, error) {
	claims, err := s.VerifyRefreshToken(incoming)
	if err != nil {
		return nil, err
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}

	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown user", ErrInvalidToken)
		}
		return nil, err
	}

	incomingHash := hashToken(incoming)
	if user.RefreshTokenHash == nil || *user.RefreshTokenHash != incomingHash {
		return nil, ErrRefreshTokenReuse
	}

	pair, err := s.signPair(user)
	if err != nil {
		return nil, err
	}
	if err := s.users.ReplaceRefreshTokenHash(ctx, user.ID, incomingHash, hashToken(pair.RefreshToken)); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrRefreshTokenReuse
		}
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}
	return pair, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

// AccessSecret is the key the request middleware verifies access tokens with.
func (s *TokenService) AccessSecret() []byte {
	return []byte(s.cfg.AccessTokenSecret)
}

func (s *TokenService) generateAccessToken(user *models.User) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.AccessTokenExpiry)),
		},
		Email:    user.Email,
		Username: user.Username,
		FullName: user.FullName,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.AccessTokenSecret))
}

func (s *TokenService) generateRefreshToken(user *models.User) (string, error) {
	now := time.Now()
	claims := RefreshClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.RefreshTokenExpiry)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.RefreshTokenSecret))
}

func parse(tokenString string, claims jwt.Claims, secret string) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid {
		return ErrInvalidToken
	}
	return nil
}
