package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/user/dreamyvoice/internal/logger"
	"github.com/user/dreamyvoice/internal/model"
	"github.com/user/dreamyvoice/internal/repository"
	"github.com/user/dreamyvoice/internal/utils"
)

// SessionService is the session store. Cookie values are HS256 tokens that
// carry the session id.
type SessionService struct {
	sessions *repository.SessionRepository
	ttl      time.Duration
	secret   []byte
	now      func() time.Time
}

// NewSessionService creates the session store.
func NewSessionService(sessions *repository.SessionRepository, ttl time.Duration, secret string) *SessionService {
	return &SessionService{
		sessions: sessions,
		ttl:      ttl,
		secret:   []byte(secret),
		now:      time.Now,
	}
}

// Create opens a session for userID that expires after the configured TTL.
func (s *SessionService) Create(ctx context.Context, userID, userAgent, ip string) (*model.Session, error) {
	session := &model.Session{
		UserID:    userID,
		ExpiresAt: s.now().Add(s.ttl),
		UserAgent: optional(userAgent),
		IP:        optional(ip),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, utils.Upstream(err)
	}
	return session, nil
}

// Resolve loads an active session with its user. Missing and expired
// sessions both yield (nil, nil); expired ones are deleted best-effort.
func (s *SessionService) Resolve(ctx context.Context, id string) (*model.Session, error) {
	session, err := s.sessions.FindWithUser(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, utils.Upstream(err)
	}

	if session.ExpiredAt(s.now()) {
		if err := s.sessions.Delete(context.WithoutCancel(ctx), session.ID); err != nil {
			logger.Warningf("session: failed to delete expired session %s: %v", session.ID, err)
		}
		return nil, nil
	}
	return session, nil
}

// Delete removes a session. Failures are logged, never returned.
func (s *SessionService) Delete(ctx context.Context, id string) {
	if err := s.sessions.Delete(context.WithoutCancel(ctx), id); err != nil {
		logger.Warningf("session: failed to delete session %s: %v", id, err)
	}
}

// PurgeExpired removes every expired session.
func (s *SessionService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.sessions.DeleteExpired(ctx, s.now())
}

// SignToken returns the cookie value for session.
func (s *SessionService) SignToken(session *model.Session) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        session.ID,
		IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
		ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// ParseToken verifies a cookie value and returns the session id inside it.
// Expiry is left to the store so expired sessions can still be cleaned up.
func (s *SessionService) ParseToken(token string) (string, error) {
	var claims jwt.RegisteredClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithoutClaimsValidation())
	if err != nil {
		return "", fmt.Errorf("parse session token: %w", err)
	}
	if !parsed.Valid || claims.ID == "" {
		return "", errors.New("parse session token: missing session id")
	}
	return claims.ID, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
