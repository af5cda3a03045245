package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/bookstore/app/models"
	"github.com/shashiranjanraj/bookstore/app/repositories"
	"github.com/shashiranjanraj/bookstore/pkg/auth"
	"github.com/shashiranjanraj/bookstore/pkg/database"
	"github.com/shashiranjanraj/bookstore/pkg/logger"
)

// AuthService registers users, issues tokens and resolves token subjects.
type AuthService struct {
	db  *gorm.DB
	now Clock
}

func NewAuthService(db *gorm.DB, now Clock) *AuthService {
	return &AuthService{db: db, now: clockOrDefault(now)}
}

// Registration is the input of Register.
type Registration struct {
	Username string
	Email    string
	Password string
}

// Token is the password-grant response body.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register creates a user with role "user". A taken username or email is a
// conflict and nothing is written.
func (s *AuthService) Register(ctx context.Context, in Registration) (models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return models.User{}, fmt.Errorf("%w: username, email and password are required", ErrValidation)
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Username:       in.Username,
		Email:          in.Email,
		HashedPassword: hash,
		Role:           models.RoleUser,
	}
	user.CreatedAt = s.now()

	err = database.Transact(ctx, s.db, func(tx *gorm.DB) error {
		users := repositories.NewUserRepository(tx)

		nameTaken, emailTaken, err := users.Taken(ctx, in.Username, in.Email)
		if err != nil {
			return err
		}
		if nameTaken {
			return fmt.Errorf("username %w", ErrConflict)
		}
		if emailTaken {
			return fmt.Errorf("email %w", ErrConflict)
		}
		return users.Create(ctx, &user)
	})
	if err != nil {
		return models.User{}, err
	}

	logger.WithCtx(ctx).Info("user registered", "user_id", user.ID.String(), "username", user.Username)
	return user, nil
}

// Login verifies credentials and returns a bearer token. Unknown users and
// wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (Token, error) {
	user, err := repositories.NewUserRepository(s.db).FindByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Token{}, ErrInvalidCredentials
	}
	if err != nil {
		return Token{}, err
	}
	if !auth.CheckPassword(user.HashedPassword, password) {
		return Token{}, ErrInvalidCredentials
	}

	tok, err := auth.GenerateToken(user.ID.String(), user.Username, string(user.Role), s.now())
	if err != nil {
		return Token{}, fmt.Errorf("sign token: %w", err)
	}
	return Token{AccessToken: tok, TokenType: "bearer"}, nil
}

// Resolve loads the user a verified token names. The role is read from the
// database so promotions apply without a new token.
func (s *AuthService) Resolve(ctx context.Context, claims *auth.Claims) (auth.Principal, error) {
	user, err := repositories.NewUserRepository(s.db).FindByUsername(ctx, claims.Subject)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return auth.Principal{}, ErrUnauthenticated
	}
	if err != nil {
		return auth.Principal{}, err
	}
	return auth.Principal{UserID: user.ID, Username: user.Username, Role: string(user.Role)}, nil
}

// Me returns the caller's user record.
func (s *AuthService) Me(ctx context.Context, p auth.Principal) (models.User, error) {
	user, err := repositories.NewUserRepository(s.db).FindByID(ctx, p.UserID)
	return user, notFound(err, "user")
}

// MakeAdmin promotes the named user. Promoting an admin is a no-op.
func (s *AuthService) MakeAdmin(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := database.Transact(ctx, s.db, func(tx *gorm.DB) error {
		users := repositories.NewUserRepository(tx)

		var err error
		if user, err = users.FindByUsername(ctx, username); err != nil {
			return notFound(err, "user")
		}
		if user.IsAdmin() {
			return nil
		}
		if err := users.SetRole(ctx, user.ID, models.RoleAdmin); err != nil {
			return err
		}
		user.Role = models.RoleAdmin
		return nil
	})
	if err != nil {
		return models.User{}, err
	}

	logger.WithCtx(ctx).Info("user promoted to admin", "user_id", user.ID.String(), "username", user.Username)
	return user, nil
}
