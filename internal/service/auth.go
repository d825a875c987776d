package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/user/dreamyvoice/internal/model"
	"github.com/user/dreamyvoice/internal/repository"
	"github.com/user/dreamyvoice/internal/utils"
	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor for stored password hashes.
const BcryptCost = 12

// AuthService is the credential store.
type AuthService struct {
	users *repository.UserRepository
	cost  int

	dummyOnce sync.Once
	dummyHash []byte
}

// NewAuthService creates the credential store.
func NewAuthService(users *repository.UserRepository) *AuthService {
	return &AuthService{users: users, cost: BcryptCost}
}

// Register creates a user. The first user ever registered becomes ADMIN.
func (s *AuthService) Register(ctx context.Context, username, password string) (*model.User, error) {
	username = strings.TrimSpace(username)

	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return nil, utils.Conflict("username is already taken")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, utils.Upstream(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, utils.Upstream(err)
	}

	user, err := s.users.Create(ctx, username, string(hash))
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, utils.Conflict("username is already taken")
	}
	if err != nil {
		return nil, utils.Upstream(err)
	}
	return user, nil
}

// Authenticate returns the user matching the credentials, or nil. An unknown
// username and a wrong password look the same to the caller, and both cost
// one bcrypt comparison.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*model.User, error) {
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, repository.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(password))
		return nil, nil
	}
	if err != nil {
		return nil, utils.Upstream(err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil
	}
	return user, nil
}

// ToPublicView strips credentials from a user.
func (s *AuthService) ToPublicView(user *model.User) model.PublicUser {
	return model.ToPublicUser(user)
}

func (s *AuthService) dummy() []byte {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dreamyvoice-placeholder"), s.cost)
	})
	return s.dummyHash
}
