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

	"github.com/D4V1DYL/HydroSenseAPI/internal/apierr"
	"github.com/D4V1DYL/HydroSenseAPI/internal/logger"
	"github.com/D4V1DYL/HydroSenseAPI/internal/repos"
	"github.com/D4V1DYL/HydroSenseAPI/internal/requestdata"
	"github.com/D4V1DYL/HydroSenseAPI/internal/types"
)

type RegisterInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type AuthService interface {
	RegisterUser(ctx context.Context, in RegisterInput) (*types.User, error)
	LoginUser(ctx context.Context, email, password string) (string, error)
	ParseToken(tokenString string) (*requestdata.RequestData, error)
}

type authService struct {
	db           *gorm.DB
	log          *logger.Logger
	userRepo     repos.UserRepo
	roleRepo     repos.RoleRepo
	jwtSecretKey string
	accessTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	roleRepo repos.RoleRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
) AuthService {
	return &authService{
		db:           db,
		log:          baseLog.With("service", "AuthService"),
		userRepo:     userRepo,
		roleRepo:     roleRepo,
		jwtSecretKey: jwtSecretKey,
		accessTTL:    accessTTL,
	}
}

func (as *authService) RegisterUser(ctx context.Context, in RegisterInput) (*types.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" {
		return nil, fmt.Errorf("%w: an email is required to register", apierr.ErrInvalid)
	}
	if in.Password == "" {
		return nil, fmt.Errorf("%w: a password is required to register", apierr.ErrInvalid)
	}
	exists, err := as.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, fmt.Errorf("%w: email is already registered", apierr.ErrInvalid)
	}

	role, err := as.roleRepo.GetByName(ctx, nil, types.RoleUser)
	if err != nil {
		return nil, fmt.Errorf("resolve default role: %w", err)
	}
	if role == nil {
		return nil, fmt.Errorf("%w: default role %q not seeded", apierr.ErrNotFound, types.RoleUser)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &types.User{
		ID:        uuid.New(),
		FirstName: strings.TrimSpace(in.FirstName),
		LastName:  strings.TrimSpace(in.LastName),
		Email:     email,
		Password:  string(hashed),
		RoleID:    role.ID,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	if _, err := as.userRepo.Create(ctx, nil, []*types.User{user}); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	user.Role = role
	as.log.Info("Registered user", "user_id", user.ID, "email", email)
	return user, nil
}

func (as *authService) LoginUser(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return "", fmt.Errorf("%w: email and password are required", apierr.ErrInvalid)
	}
	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return "", fmt.Errorf("get user: %w", err)
	}
	if user == nil {
		return "", fmt.Errorf("%w: invalid credentials", apierr.ErrUnauthorized)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", fmt.Errorf("%w: invalid credentials", apierr.ErrUnauthorized)
	}

	roleName := ""
	if user.Role != nil {
		roleName = user.Role.Name
	}
	claims := jwt.MapClaims{
		"sub":     user.Email,
		"user_id": user.ID.String(),
		"role":    roleName,
		"exp":     time.Now().Add(as.accessTTL).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	as.log.Debug("Issued access token", "user_id", user.ID, "role", roleName)
	return signed, nil
}

// ParseToken verifies the signature and expiry and extracts the caller's
// identity for the request context.
func (as *authService) ParseToken(tokenString string) (*requestdata.RequestData, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: could not validate credentials", apierr.ErrUnauthorized)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: could not validate credentials", apierr.ErrUnauthorized)
	}
	email, _ := claims["sub"].(string)
	roleName, _ := claims["role"].(string)
	userIDStr, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("%w: could not validate credentials", apierr.ErrUnauthorized)
	}
	return &requestdata.RequestData{UserID: userID, Email: email, Role: roleName}, nil
}
