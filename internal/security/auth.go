package security

import (
	"context"
	"delivery-route-map/internal/domain"
	"delivery-route-map/internal/ports"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidToken       = errors.New("invalid token")
)

// Claims carried by access tokens.
type Claims struct {
	Username string `json:"username"`
	Admin    bool   `json:"admin"`
	jwt.RegisteredClaims
}

func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("hash password: password must be non-empty")
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Authenticator checks credentials and issues/validates HS256 tokens.
type Authenticator struct {
	users  ports.UserRepository
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthenticator(users ports.UserRepository, secret string, ttl time.Duration) *Authenticator {
	return &Authenticator{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// Login returns a signed token for valid credentials.
func (a *Authenticator) Login(ctx context.Context, username, password string) (string, error) {
	u, err := a.users.FindByUsername(ctx, username)
	if errors.Is(err, domain.ErrUserNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return a.IssueToken(u)
}

func (a *Authenticator) IssueToken(u *domain.User) (string, error) {
	now := a.now()
	claims := Claims{
		Username: u.Username,
		Admin:    u.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.Itoa(u.ID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}

func (a *Authenticator) ParseToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	}, jwt.WithTimeFunc(a.now))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}

// EnsureAdmin creates an administrator account unless the username is
// already taken. It reports whether an account was created.
func EnsureAdmin(ctx context.Context, users ports.UserRepository, username, password string) (bool, error) {
	_, err := users.FindByUsername(ctx, username)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return false, fmt.Errorf("ensure admin %q: %w", username, err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("ensure admin %q: %w", username, err)
	}

	if _, err := users.CreateUser(ctx, username, hash, true); err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return false, nil
		}
		return false, fmt.Errorf("ensure admin %q: %w", username, err)
	}
	return true, nil
}
