package auth

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	appauthz "github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/application/authz"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/application/dto"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/application/usecase"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain/entity"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/internal/domain/repository"
	"github.com/Muhammad-Ali1445/FBR-Invoice-Management-System/pkg/jwt"
)

// JWTConfig token issuance settings.
type JWTConfig struct {
	Secret     string
	ExpMinutes int // application default is 7 days
	Issuer     string
}

// UseCase authentication flows: signup and signin. Both end with a signed
// session token plus the {role, permissions} snapshot the client caches for
// its route guards.
type UseCase struct {
	userRepo repository.UserRepository
	roleRepo repository.RoleRepository
	resolver *appauthz.Resolver
	counter  *usecase.RoleCounter
	jwtCfg   JWTConfig
}

// NewUseCase builds the auth use case.
func NewUseCase(
	userRepo repository.UserRepository,
	roleRepo repository.RoleRepository,
	resolver *appauthz.Resolver,
	counter *usecase.RoleCounter,
	jwtCfg JWTConfig,
) *UseCase {
	return &UseCase{userRepo: userRepo, roleRepo: roleRepo, resolver: resolver, counter: counter, jwtCfg: jwtCfg}
}

// Signup creates an account. The requested role must resolve to an ACTIVE
// role (default "Viewer"); email and fullname must be unused. The password is
// bcrypt-hashed here, never stored or logged in plaintext.
func (uc *UseCase) Signup(in dto.SignupRequest) (*dto.AuthResponse, error) {
	if in.FullName == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: fullname, email and password are required", domain.ErrValidation)
	}
	if len(in.Password) < 6 {
		return nil, fmt.Errorf("%w: password must have at least 6 characters", domain.ErrValidation)
	}

	if existing, err := uc.userRepo.GetByEmail(in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	if existing, err := uc.userRepo.GetByFullName(in.FullName); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}

	roleName := in.RoleName
	if roleName == "" {
		roleName = entity.DefaultRoleName
	}
	role, err := uc.roleRepo.GetByName(roleName)
	if err != nil {
		return nil, err
	}
	if role == nil || !role.IsActive {
		return nil, fmt.Errorf("%w: unknown or inactive role %q", domain.ErrValidation, roleName)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		FullName:     in.FullName,
		Email:        in.Email,
		PasswordHash: string(hash),
		RoleID:       role.ID,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	if _, err := uc.counter.Recompute(role.ID); err != nil {
		return nil, err
	}

	return uc.issueSession(user)
}

// Signin authenticates by email and password among ACTIVE users. Unknown
// email, wrong password and inactive account all fail with the same
// ErrInvalidCredentials so the response leaks nothing about which it was.
// On success the last-login stamp is updated and a fresh snapshot issued.
func (uc *UseCase) Signin(in dto.SigninRequest) (*dto.AuthResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}

	now := time.Now()
	if err := uc.userRepo.UpdateLastLogin(user.ID, now); err != nil {
		return nil, err
	}
	user.LastLogin = &now

	return uc.issueSession(user)
}

func (uc *UseCase) issueSession(user *entity.User) (*dto.AuthResponse, error) {
	snap, err := uc.resolver.SnapshotFor(user)
	if err != nil {
		return nil, err
	}
	token, err := jwt.Generate(
		uc.jwtCfg.Secret, user.ID, user.FullName, user.Email, snap.Role,
		uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes,
	)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Token: token,
		User: dto.SessionUser{
			ID:          user.ID,
			FullName:    user.FullName,
			Email:       user.Email,
			Role:        snap.Role,
			Permissions: snap.Permissions,
		},
	}, nil
}
