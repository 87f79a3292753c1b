package usecases

import (
	"context"
	"errors"

	"ekoink.backend/internal/config"
	"ekoink.backend/internal/domain/entities"
	domainerrors "ekoink.backend/internal/domain/errors"
	"ekoink.backend/internal/domain/repositories"
	"ekoink.backend/pkg/crypto"
	"ekoink.backend/pkg/jwt"
)

// AuthUsecase handles dashboard registration and login.
type AuthUsecase struct {
	userRepo    repositories.UserRepository
	accountRepo repositories.AccountRepository
	jwtService  *jwt.JWTService
	billing     config.BillingConfig
}

func NewAuthUsecase(
	userRepo repositories.UserRepository,
	accountRepo repositories.AccountRepository,
	jwtService *jwt.JWTService,
	billing config.BillingConfig,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:    userRepo,
		accountRepo: accountRepo,
		jwtService:  jwtService,
		billing:     billing,
	}
}

// AuthResult bundles the authenticated user with their session tokens.
type AuthResult struct {
	User   *entities.User `json:"user"`
	Tokens *jwt.TokenPair `json:"tokens"`
}

// Register creates a new account and its owner user in one step.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.CreateUserInput) (*AuthResult, error) {
	if _, err := u.userRepo.GetByEmail(ctx, input.Email); err == nil {
		return nil, domainerrors.ErrAlreadyExists
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	account := &entities.Account{
		CompanyName:     input.CompanyName,
		BillingType:     entities.BillingTypeUsage,
		APIMonthlyLimit: u.billing.DefaultMonthlyLimit,
		CardPriceCents:  u.billing.DefaultCardPriceCents,
	}
	if err := u.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	user := &entities.User{
		AccountID:    account.ID,
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: passwordHash,
		Role:         entities.UserRoleOwner,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	tokens, err := u.jwtService.GenerateTokenPair(user.ID, user.AccountID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Tokens: tokens}, nil
}

// Login verifies credentials and issues a token pair. An unknown email and
// a wrong password produce the same error.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*AuthResult, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	tokens, err := u.jwtService.GenerateTokenPair(user.ID, user.AccountID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}
	return &AuthResult{User: user, Tokens: tokens}, nil
}
