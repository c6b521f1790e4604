// Package auth implementa el proveedor de identidad: credenciales bcrypt y sesiones JWT.
package auth

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/goldfolio-api/internal/application/access"
	"github.com/jhoicas/goldfolio-api/internal/application/dto"
	"github.com/jhoicas/goldfolio-api/internal/application/ports"
	"github.com/jhoicas/goldfolio-api/internal/domain"
	"github.com/jhoicas/goldfolio-api/internal/domain/entity"
	"github.com/jhoicas/goldfolio-api/internal/domain/repository"
	"github.com/jhoicas/goldfolio-api/pkg/jwt"
	"github.com/jhoicas/goldfolio-api/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength longitud mínima de contraseña.
const MinPasswordLength = 6

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Config configuración para tokens y throttling de login.
type Config struct {
	Secret           string
	ExpMinutes       int
	Issuer           string
	MaxLoginAttempts int
	LoginWindow      time.Duration
}

// AuthUseCase casos de uso de autenticación: login, logout, alta de credenciales y cambio de contraseña.
type AuthUseCase struct {
	credRepo repository.CredentialRepository
	userRepo repository.UserRepository
	sessions ports.SessionStore
	metrics  ports.Recorder
	cfg      Config
	log      *logger.Logger
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	credRepo repository.CredentialRepository,
	userRepo repository.UserRepository,
	sessions ports.SessionStore,
	metrics ports.Recorder,
	cfg Config,
	log *logger.Logger,
) *AuthUseCase {
	if metrics == nil {
		metrics = ports.NopRecorder{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{
		credRepo: credRepo,
		userRepo: userRepo,
		sessions: sessions,
		metrics:  metrics,
		cfg:      cfg,
		log:      log.Named("auth"),
		now:      time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func loginKey(email string) string { return "login:" + email }

// SignIn verifica email/password y emite un JWT. Tras MaxLoginAttempts fallos dentro de
// LoginWindow responde ErrTooManyAttempts sin verificar la contraseña.
func (uc *AuthUseCase) SignIn(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := normalizeEmail(in.Email)
	if !emailRegexp.MatchString(email) {
		return nil, domain.ErrInvalidEmail
	}
	key := loginKey(email)
	failures, err := uc.sessions.Failures(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("auth: leer intentos: %w", err)
	}
	if failures >= uc.cfg.MaxLoginAttempts {
		return nil, domain.ErrTooManyAttempts
	}

	cred, err := uc.credRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("auth: buscar credencial: %w", err)
	}
	if cred == nil || bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(in.Password)) != nil {
		return nil, uc.fail(ctx, key, email)
	}
	if err := uc.sessions.ResetFailures(ctx, key); err != nil {
		uc.log.Warn().Err(err).Msg("reset de intentos fallidos")
	}

	user, err := uc.userRepo.GetByID(ctx, cred.SubjectID)
	if err != nil {
		return nil, fmt.Errorf("auth: cargar perfil: %w", err)
	}
	if user == nil {
		uc.log.Warn().Str("subject_id", cred.SubjectID).Msg("credencial sin perfil de usuario")
		return nil, domain.ErrUserNotFound
	}

	token, err := jwt.Generate(uc.cfg.Secret, user.ID, user.BranchID, string(user.Role), uc.cfg.Issuer, uc.cfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("auth: generar token: %w", err)
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: uc.now().Add(time.Duration(uc.cfg.ExpMinutes) * time.Minute).UTC(),
		User:      ToUserResponse(user),
	}, nil
}

func (uc *AuthUseCase) fail(ctx context.Context, key, email string) error {
	uc.metrics.LoginFailed()
	n, err := uc.sessions.RegisterFailure(ctx, key, uc.cfg.LoginWindow)
	if err != nil {
		return fmt.Errorf("auth: registrar intento: %w", err)
	}
	uc.log.Info().Str("email", email).Int("failures", n).Msg("login fallido")
	return domain.ErrInvalidCredentials
}

// SignOut revoca el token por su jti durante el tiempo de vida que le queda.
func (uc *AuthUseCase) SignOut(ctx context.Context, token string) error {
	claims, err := jwt.Parse(uc.cfg.Secret, token)
	if err != nil {
		return domain.ErrUnauthorized
	}
	ttl := claims.Remaining(uc.now())
	if ttl == 0 || claims.ID == "" {
		return nil
	}
	if err := uc.sessions.Revoke(ctx, claims.ID, ttl); err != nil {
		return fmt.Errorf("auth: revocar token: %w", err)
	}
	return nil
}

// Authenticate valida el token, rechaza los revocados y recarga el perfil.
// Rol y sucursal salen siempre del perfil, no de los claims.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	claims, err := jwt.Parse(uc.cfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if claims.ID != "" {
		revoked, err := uc.sessions.IsRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("auth: consultar revocación: %w", err)
		}
		if revoked {
			return nil, domain.ErrUnauthorized
		}
	}
	user, err := uc.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("auth: cargar perfil: %w", err)
	}
	if user == nil || !user.Role.Valid() {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// CreateAccount da de alta una credencial y devuelve el subject id.
// No emite token: la sesión de quien la crea no cambia.
// credRepo permite ejecutarlo dentro de la transacción del caller.
func (uc *AuthUseCase) CreateAccount(ctx context.Context, credRepo repository.CredentialRepository, email, password string) (string, error) {
	if credRepo == nil {
		credRepo = uc.credRepo
	}
	cred, err := NewCredential(email, password, uc.now())
	if err != nil {
		return "", err
	}
	existing, err := credRepo.GetByEmail(ctx, cred.Email)
	if err != nil {
		return "", fmt.Errorf("auth: buscar credencial: %w", err)
	}
	if existing != nil {
		return "", domain.ErrEmailAlreadyExists
	}
	if err := credRepo.Create(ctx, cred); err != nil {
		return "", err
	}
	return cred.SubjectID, nil
}

// ChangePassword cambia la contraseña del usuario autenticado.
// Si CurrentPassword viene informado se verifica antes.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, p access.Principal, in dto.ChangePasswordRequest) error {
	if len(in.NewPassword) < MinPasswordLength {
		return domain.ErrWeakPassword
	}
	cred, err := uc.credRepo.GetBySubject(ctx, p.UserID)
	if err != nil {
		return fmt.Errorf("auth: buscar credencial: %w", err)
	}
	if cred == nil {
		return domain.ErrUserNotFound
	}
	if in.CurrentPassword != "" {
		if bcrypt.CompareHashAndPassword([]byte(cred.PasswordHash), []byte(in.CurrentPassword)) != nil {
			return domain.ErrInvalidCredentials
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("auth: hash: %w", err)
	}
	return uc.credRepo.UpdatePassword(ctx, p.UserID, string(hash))
}

// Me perfil y capacidades de la sesión.
func (uc *AuthUseCase) Me(ctx context.Context, p access.Principal) (*dto.MeResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("auth: cargar perfil: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return &dto.MeResponse{
		User:              ToUserResponse(user),
		SeesAllBranches:   user.Role.SeesAllBranches(),
		CanManageBranches: user.Role.CanManageBranches(),
		CanManageUsers:    user.Role.CanManageUsers(),
		CanChooseBranch:   user.Role.CanChooseBranch(),
	}, nil
}

// NewCredential valida email y contraseña y arma la credencial con hash bcrypt.
func NewCredential(email, password string, now time.Time) (*entity.Credential, error) {
	email = normalizeEmail(email)
	var errs []error
	if !emailRegexp.MatchString(email) {
		errs = append(errs, domain.ErrInvalidEmail)
	}
	if len(password) < MinPasswordLength {
		errs = append(errs, domain.ErrWeakPassword)
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash: %w", err)
	}
	return &entity.Credential{
		SubjectID:    uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    now.UTC(),
		UpdatedAt:    now.UTC(),
	}, nil
}

// ToUserResponse mapea el perfil al DTO de salida.
func ToUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Role:      string(u.Role),
		BranchID:  u.BranchID,
		CreatedAt: u.CreatedAt,
	}
}
