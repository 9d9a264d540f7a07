package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/crewlearn/crewlearn-backend/internal/data/repos"
	domainagg "github.com/crewlearn/crewlearn-backend/internal/domain/aggregates"
	"github.com/crewlearn/crewlearn-backend/internal/platform/logger"
	"github.com/crewlearn/crewlearn-backend/internal/requestdata"
)

type AuthService interface {
	RegisterUser(ctx context.Context, in domainagg.RegisterUserInput) (domainagg.RegisterUserResult, error)
	LoginUser(ctx context.Context, username, password string) (LoginResult, error)
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	GetAccessTTL() time.Duration
}

type LoginResult struct {
	AccessToken string
	UserID      uuid.UUID
	TenantID    *uuid.UUID
	ExpiresAt   time.Time
}

// JWTClaims carries the tenant context alongside the user subject so
// the middleware can scope requests without a DB read.
type JWTClaims struct {
	jwt.RegisteredClaims
	TenantID      string `json:"tenant_id,omitempty"`
	IsTenantAdmin bool   `json:"is_tenant_admin,omitempty"`
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	membership   domainagg.MembershipAggregate
	jwtSecretKey string
	accessTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	membership domainagg.MembershipAggregate,
	jwtSecretKey string,
	accessTTL time.Duration,
) AuthService {
	return &authService{
		db:           db,
		log:          log.With("service", "AuthService"),
		userRepo:     userRepo,
		membership:   membership,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
	}
}

func (as *authService) RegisterUser(ctx context.Context, in domainagg.RegisterUserInput) (domainagg.RegisterUserResult, error) {
	in.Username = strings.TrimSpace(strings.ToLower(in.Username))
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	return as.membership.RegisterUser(ctx, in)
}

func (as *authService) LoginUser(ctx context.Context, username, password string) (LoginResult, error) {
	var out LoginResult
	username = strings.TrimSpace(strings.ToLower(username))
	if username == "" || password == "" {
		return out, fmt.Errorf("username and password are required")
	}

	user, err := as.userRepo.GetByUsername(ctx, nil, username)
	if err != nil {
		as.log.Warn("Login failed, user lookup", "username", username, "error", err)
		return out, fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return out, fmt.Errorf("invalid credentials")
	}

	now := time.Now()
	expiresAt := now.Add(as.accessTTL)
	claims := JWTClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		IsTenantAdmin: user.IsTenantAdmin,
	}
	if user.TenantID != nil {
		claims.TenantID = user.TenantID.String()
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		as.log.Error("Failed to sign access token", "error", err)
		return out, fmt.Errorf("sign access token: %w", err)
	}

	out.AccessToken = signed
	out.UserID = user.ID
	out.TenantID = user.TenantID
	out.ExpiresAt = expiresAt
	return out, nil
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	if tokenString == "" {
		return ctx, nil
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil {
		return ctx, fmt.Errorf("parse token: %w", err)
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return ctx, fmt.Errorf("invalid or expired token")
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ctx, fmt.Errorf("invalid user id in token: %w", err)
	}
	rd := &requestdata.RequestData{
		TokenString:   tokenString,
		UserID:        userID,
		IsTenantAdmin: claims.IsTenantAdmin,
	}
	if claims.TenantID != "" {
		tenantID, err := uuid.Parse(claims.TenantID)
		if err != nil {
			return ctx, fmt.Errorf("invalid tenant id in token: %w", err)
		}
		rd.TenantID = tenantID
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) GetAccessTTL() time.Duration {
	return as.accessTTL
}
