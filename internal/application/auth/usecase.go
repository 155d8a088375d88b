package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/wareline/warehouse-api/internal/application/dto"
	"github.com/wareline/warehouse-api/internal/domain"
	"github.com/wareline/warehouse-api/internal/domain/entity"
	"github.com/wareline/warehouse-api/internal/domain/repository"
	"github.com/wareline/warehouse-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig token generation parameters.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase registration and login. New accounts always start as pending
// clients; an admin approves them before they can log in.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase builds the auth use case.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Register creates a pending client account with a bcrypt-hashed password.
// Returns ErrEmailAlreadyExists when the email is taken.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.CustomerResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.userRepo.GetByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Phone:        in.Phone,
		Address:      in.Address,
		Role:         entity.RoleClient,
		Status:       entity.StatusPending,
		StorageMode:  entity.StorageModeProduct,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}
	return ToCustomerResponse(user), nil
}

// Login verifies the credentials and issues a JWT. Pending accounts are
// rejected with ErrNotApproved.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Role == entity.RoleClient && user.Status != entity.StatusApproved {
		return nil, domain.ErrNotApproved
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		Token:  token,
		UserID: user.ID,
		Name:   user.Name,
		Role:   user.Role,
		Status: user.Status,
	}, nil
}

// ToCustomerResponse maps an account to its admin-facing representation.
func ToCustomerResponse(u *entity.User) *dto.CustomerResponse {
	if u == nil {
		return nil
	}
	return &dto.CustomerResponse{
		ID:          u.ID,
		Email:       u.Email,
		Name:        u.Name,
		Phone:       u.Phone,
		Address:     u.Address,
		Status:      u.Status,
		StorageMode: u.StorageMode,
		PalletCount: u.PalletCount,
	}
}
