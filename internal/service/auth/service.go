package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/attend-hq/attendance-backend-go/internal/domain/auth"
	"github.com/attend-hq/attendance-backend-go/internal/domain/employee"
	"github.com/attend-hq/attendance-backend-go/internal/pkg/database"
	"github.com/attend-hq/attendance-backend-go/internal/pkg/jwt"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	tx database.TxManager
	employee.EmployeeRepository
	auth.RefreshTokenRepository
	jwt.Service
}

func NewAuthService(
	tx database.TxManager,
	employeeRepo employee.EmployeeRepository,
	refreshTokenRepo auth.RefreshTokenRepository,
	jwtService jwt.Service,
) auth.AuthService {
	return &AuthServiceImpl{
		tx:                     tx,
		EmployeeRepository:     employeeRepo,
		RefreshTokenRepository: refreshTokenRepo,
		Service:                jwtService,
	}
}

const timestampFormat = "2006-01-02 15:04:05"

// codeAttempts bounds the employee-code collision loop. The code space is
// small (4096 values), so retries are expected once the table grows.
const codeAttempts = 50

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.RegisterResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.RegisterResponse{}, err
	}

	emailTaken, err := a.EmployeeRepository.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return auth.RegisterResponse{}, fmt.Errorf("failed to check email: %w", err)
	}
	if emailTaken {
		return auth.RegisterResponse{}, employee.ErrEmailExists
	}

	usernameTaken, err := a.EmployeeRepository.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return auth.RegisterResponse{}, fmt.Errorf("failed to check username: %w", err)
	}
	if usernameTaken {
		return auth.RegisterResponse{}, employee.ErrUsernameExists
	}

	code, err := a.generateEmployeeCode(ctx)
	if err != nil {
		return auth.RegisterResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return auth.RegisterResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := a.EmployeeRepository.Create(ctx, employee.Employee{
		Code:         code,
		Email:        req.Email,
		Username:     req.Username,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hash),
		IsActive:     true,
		IsStaff:      false,
		IsAdmin:      false,
	})
	if err != nil {
		return auth.RegisterResponse{}, err
	}

	return auth.RegisterResponse{
		Message:  "Employee registered successfully",
		Employee: mapEmployeeToResponse(created),
	}, nil
}

// generateEmployeeCode produces "EMP" plus the first three characters of a
// random UUID, uppercased, retrying on collision.
func (a *AuthServiceImpl) generateEmployeeCode(ctx context.Context) (string, error) {
	for i := 0; i < codeAttempts; i++ {
		code := "EMP" + strings.ToUpper(uuid.NewString()[:3])

		exists, err := a.EmployeeRepository.ExistsByCode(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check employee code: %w", err)
		}
		if !exists {
			return code, nil
		}
	}

	return "", employee.ErrCodeGeneration
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	emp, err := a.EmployeeRepository.GetByLogin(ctx, req.Login)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get employee by login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)) != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if !emp.IsActive {
		return auth.TokenResponse{}, auth.ErrAccountInactive
	}

	return a.issueTokens(ctx, emp)
}

// Refresh implements auth.AuthService. The old token is revoked and a new
// pair issued in one transaction, so a refresh token is usable exactly once.
func (a *AuthServiceImpl) Refresh(ctx context.Context, req auth.RefreshRequest) (auth.TokenResponse, error) {
	if req.RefreshToken == "" {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	employeeCode, err := a.Service.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	stored, err := a.RefreshTokenRepository.GetByToken(ctx, req.RefreshToken)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	if stored.RevokedAt != nil {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}
	if time.Now().After(stored.ExpiresAt) {
		return auth.TokenResponse{}, auth.ErrRefreshTokenExpired
	}

	emp, err := a.EmployeeRepository.GetByCode(ctx, employeeCode)
	if err != nil {
		return auth.TokenResponse{}, err
	}

	var resp auth.TokenResponse
	err = a.tx.InTx(ctx, func(ctx context.Context) error {
		if err := a.RefreshTokenRepository.Revoke(ctx, req.RefreshToken); err != nil {
			return err
		}

		resp, err = a.issueTokens(ctx, emp)
		return err
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return resp, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, req auth.LogoutRequest) error {
	if req.RefreshToken == "" {
		return auth.ErrInvalidToken
	}

	return a.RefreshTokenRepository.Revoke(ctx, req.RefreshToken)
}

func (a *AuthServiceImpl) issueTokens(ctx context.Context, emp employee.Employee) (auth.TokenResponse, error) {
	accessToken, accessExpiresAt, err := a.Service.GenerateAccessToken(emp.Code, emp.Email, emp.IsAdmin)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	refreshToken, refreshExpiresAt, err := a.Service.GenerateRefreshToken(emp.Code)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	if err := a.RefreshTokenRepository.Store(ctx, emp.Code, refreshToken, time.Unix(refreshExpiresAt, 0)); err != nil {
		return auth.TokenResponse{}, err
	}

	return auth.TokenResponse{
		AccessToken:           accessToken,
		AccessTokenExpiresIn:  accessExpiresAt,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresIn: refreshExpiresAt,
		Employee:              mapEmployeeToResponse(emp),
	}, nil
}

func mapEmployeeToResponse(emp employee.Employee) employee.EmployeeResponse {
	return employee.EmployeeResponse{
		ID:         emp.ID,
		Code:       emp.Code,
		Email:      emp.Email,
		Username:   emp.Username,
		FirstName:  emp.FirstName,
		LastName:   emp.LastName,
		IsActive:   emp.IsActive,
		IsStaff:    emp.IsStaff,
		IsAdmin:    emp.IsAdmin,
		DateJoined: emp.DateJoined.Format(timestampFormat),
	}
}
