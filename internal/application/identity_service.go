package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/jioni/internal/domain/entity"
	repo "github.com/oksasatya/jioni/internal/domain/repository"
	"github.com/oksasatya/jioni/internal/monitoring"
	"github.com/oksasatya/jioni/pkg/helpers"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// IdentityService registers users and exchanges credentials for
// bearer tokens.
type IdentityService struct {
	Users  repo.UserRepository
	JWT    *helpers.JWTManager
	Hasher helpers.PasswordHasher
	Logger *logrus.Logger
}

func NewIdentityService(users repo.UserRepository, jwt *helpers.JWTManager, hasher helpers.PasswordHasher, logger *logrus.Logger) *IdentityService {
	return &IdentityService{Users: users, JWT: jwt, Hasher: hasher, Logger: logger}
}

// Profile is the public slice of a user echoed on auth responses.
type Profile struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type RegisterInput struct {
	Email    string
	FullName string
	Phone    string
	Password string
	Role     string
}

// Register stores a new user and issues a session token. The role
// defaults to buyer when the caller omits it.
func (s *IdentityService) Register(ctx context.Context, in RegisterInput) (string, *Profile, error) {
	role := in.Role
	if role == "" {
		role = entity.RoleBuyer
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return "", nil, err
	}

	u := &entity.User{
		ID:        uuid.NewString(),
		Email:     in.Email,
		FullName:  in.FullName,
		Phone:     in.Phone,
		Password:  hash,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return "", nil, ErrEmailTaken
		}
		return "", nil, err
	}

	token, err := s.JWT.Issue(u.Email)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("email", u.Email).Error("issue token failed")
		}
		return "", nil, err
	}

	monitoring.TrackRegistration()
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"email": u.Email, "role": u.Role}).Info("user registered")
	}
	return token, &Profile{Email: u.Email, FullName: u.FullName, Role: u.Role}, nil
}

// Login validates credentials and issues a fresh token. Unknown
// emails and wrong passwords fail identically.
func (s *IdentityService) Login(ctx context.Context, email, password string) (string, *Profile, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil || u == nil {
		return "", nil, ErrInvalidCredentials
	}
	if !s.Hasher.Compare(u.Password, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.JWT.Issue(u.Email)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("email", u.Email).Error("issue token failed")
		}
		return "", nil, err
	}
	return token, &Profile{Email: u.Email, FullName: u.FullName, Role: u.Role}, nil
}
