package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/petcare-service/internal/auth"
	"github.com/spec-kit/petcare-service/internal/config"
	"github.com/spec-kit/petcare-service/internal/domain"
	"github.com/spec-kit/petcare-service/internal/events"
	"github.com/spec-kit/petcare-service/internal/repository"
	apperrors "github.com/spec-kit/petcare-service/pkg/util"
)

// RegisterInput is the public registration payload.
type RegisterInput struct {
	Email     string
	Password  string
	Rut       string
	Nombre    string
	Apellidos string
}

// AuthService coordinates registration, login and identity resolution.
type AuthService struct {
	users      repository.UserRepository
	hasher     *auth.PasswordHasher
	tokenMgr   *auth.TokenManager
	dispatcher events.Dispatcher
	logger     *zap.Logger

	dummyOnce sync.Once
	dummyHash string
}

// AuthDependencies encapsulates collaborators for the auth service.
type AuthDependencies struct {
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewAuthService builds the service. The signing key and hashing cost come
// from cfg and are fixed for the lifetime of the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		users:      deps.UserRepo,
		hasher:     auth.NewPasswordHasher(cfg.Auth.BcryptCost),
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes),
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// Register validates input, checks uniqueness and persists a new user with the default role.
//
// The email and rut lookups are advisory. Two concurrent registrations can both
// pass them; the unique constraints on usuarios then reject the second insert
// and the violation is reported as the matching duplicate error.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	in = normalizeRegistration(in)
	if err := validateRegistration(in); err != nil {
		return nil, err
	}
	return s.createUser(ctx, in, domain.RoleUser)
}

func (s *AuthService) createUser(ctx context.Context, in RegisterInput, role domain.Role) (*domain.User, error) {
	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if existing != nil {
		return nil, apperrors.NewDuplicateEmail()
	}

	existing, err = s.users.FindByRut(ctx, in.Rut)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if existing != nil {
		return nil, apperrors.NewDuplicateRut()
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	user := &domain.User{
		Email:        in.Email,
		PasswordHash: hash,
		Nombre:       in.Nombre,
		Apellidos:    in.Apellidos,
		Rut:          in.Rut,
		Rol:          role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, mapCreateError(err)
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID), zap.String("rol", string(user.Rol)))
	s.publish(ctx, events.NewEvent(events.EventUserRegistered, user.Email, events.UserRegisteredPayload{
		UserID: user.ID,
		Email:  user.Email,
		Nombre: user.Nombre,
	}))
	return user, nil
}

// Login verifies credentials and issues a bearer token bound to the user's email.
// Unknown emails and wrong passwords fail identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.Token, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperrors.NewInvalidInput("email and password required", nil)
	}
	if passwordTooLong(password) {
		// No stored password can match; spend the comparison time anyway.
		s.hasher.Verify(password[:auth.MaxPasswordBytes], s.fallbackHash())
		s.logger.Info("login rejected", zap.String("reason", "password_too_long"))
		return nil, apperrors.NewInvalidCredentials()
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if user == nil {
		// Spend the same hashing time as a real comparison.
		s.hasher.Verify(password, s.fallbackHash())
		s.logger.Info("login rejected", zap.String("reason", "unknown_email"))
		return nil, apperrors.NewInvalidCredentials()
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		s.logger.Info("login rejected", zap.String("reason", "password_mismatch"), zap.String("user_id", user.ID))
		return nil, apperrors.NewInvalidCredentials()
	}

	token, err := s.tokenMgr.GenerateToken(user.Email)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return token, nil
}

// ResolveIdentity verifies a bearer token and loads the user it names.
func (s *AuthService) ResolveIdentity(ctx context.Context, token string) (*domain.User, error) {
	email, err := s.tokenMgr.ParseToken(token)
	if err != nil {
		s.logger.Debug("token rejected", zap.Error(err))
		return nil, apperrors.NewUnauthenticated("invalid or expired token")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if user == nil {
		return nil, apperrors.NewNotFound("user", nil)
	}
	return user, nil
}

// DeleteUser removes the account registered under email.
func (s *AuthService) DeleteUser(ctx context.Context, email string) error {
	deleted, err := s.users.DeleteByEmail(ctx, email)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	if deleted == 0 {
		return apperrors.NewNotFound("user", nil)
	}

	s.logger.Info("user deleted")
	s.publish(ctx, events.NewEvent(events.EventUserDeleted, email, nil))
	return nil
}

// EnsureAdmin creates the bootstrap admin account when it does not exist yet.
// An existing account under that email is left untouched.
func (s *AuthService) EnsureAdmin(ctx context.Context, in RegisterInput) (*domain.User, error) {
	in = normalizeRegistration(in)
	if in.Nombre == "" {
		in.Nombre = "Admin"
	}
	if in.Apellidos == "" {
		in.Apellidos = "Admin"
	}
	if err := validateRegistration(in); err != nil {
		return nil, err
	}

	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if existing != nil {
		if !existing.IsAdmin() {
			s.logger.Warn("bootstrap admin email belongs to a non-admin account", zap.String("user_id", existing.ID))
		}
		return existing, nil
	}
	return s.createUser(ctx, in, domain.RoleAdmin)
}

// TokenManager exposes the underlying token manager.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}

func (s *AuthService) fallbackHash() string {
	s.dummyOnce.Do(func() {
		hash, err := s.hasher.Hash("timing-equalizer")
		if err == nil {
			s.dummyHash = hash
		}
	})
	return s.dummyHash
}

func (s *AuthService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

func normalizeRegistration(in RegisterInput) RegisterInput {
	in.Email = strings.TrimSpace(in.Email)
	in.Rut = strings.ToUpper(strings.TrimSpace(in.Rut))
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Apellidos = strings.TrimSpace(in.Apellidos)
	return in
}

func validateRegistration(in RegisterInput) error {
	errs := fieldErrors{}
	errs.required("email", in.Email)
	errs.required("password", in.Password)
	errs.required("rut", in.Rut)
	errs.required("nombre", in.Nombre)
	errs.required("apellidos", in.Apellidos)

	errs.email("email", in.Email)
	if _, set := errs["password"]; !set {
		switch {
		case !validPassword(in.Password):
			errs["password"] = "must be at least 6 characters"
		case passwordTooLong(in.Password):
			errs["password"] = fmt.Sprintf("must be at most %d bytes", auth.MaxPasswordBytes)
		}
	}
	if _, set := errs["rut"]; !set && !ValidRut(in.Rut) {
		errs["rut"] = "must match NN.NNN.NNN-C"
	}
	return errs.err("invalid registration data")
}

func mapCreateError(err error) error {
	var uv *repository.UniqueViolationError
	if !errors.As(err, &uv) {
		return apperrors.NewInternalError(err)
	}
	switch uv.Constraint {
	case repository.ConstraintUserEmail:
		return apperrors.NewDuplicateEmail()
	case repository.ConstraintUserRut:
		return apperrors.NewDuplicateRut()
	default:
		return apperrors.NewConstraintViolation(uv.Constraint)
	}
}
