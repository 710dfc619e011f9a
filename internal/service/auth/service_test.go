package auth

import (
	"context"
	"testing"
	"time"

	"github.com/attend-hq/attendance-backend-go/internal/domain/auth"
	"github.com/attend-hq/attendance-backend-go/internal/domain/employee"
	"github.com/attend-hq/attendance-backend-go/internal/pkg/jwt"
	"github.com/attend-hq/attendance-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const (
	testSecret     = "test-secret-key-for-jwt"
	testAccessExp  = "1h"
	testRefreshExp = "24h"
)

type fakeTx struct{}

func (fakeTx) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeEmployeeRepo struct {
	byCode map[string]employee.Employee
	nextID int64
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{byCode: map[string]employee.Employee{}}
}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	f.nextID++
	emp.ID = f.nextID
	emp.DateJoined = time.Now()
	f.byCode[emp.Code] = emp
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByCode(_ context.Context, code string) (employee.Employee, error) {
	emp, ok := f.byCode[code]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByLogin(_ context.Context, login string) (employee.Employee, error) {
	for _, emp := range f.byCode {
		if emp.Code == login || emp.Email == login || emp.Username == login {
			return emp, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	for _, emp := range f.byCode {
		if emp.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEmployeeRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	for _, emp := range f.byCode {
		if emp.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeEmployeeRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	_, ok := f.byCode[code]
	return ok, nil
}

func (f *fakeEmployeeRepo) List(context.Context, employee.ListFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

type fakeRefreshTokenRepo struct {
	tokens map[string]*auth.RefreshToken
	nextID int64
}

func newFakeRefreshTokenRepo() *fakeRefreshTokenRepo {
	return &fakeRefreshTokenRepo{tokens: map[string]*auth.RefreshToken{}}
}

func (f *fakeRefreshTokenRepo) Store(_ context.Context, employeeCode, token string, expiresAt time.Time) error {
	f.nextID++
	f.tokens[token] = &auth.RefreshToken{
		ID:           f.nextID,
		EmployeeCode: employeeCode,
		Token:        token,
		ExpiresAt:    expiresAt,
		CreatedAt:    time.Now(),
	}
	return nil
}

func (f *fakeRefreshTokenRepo) GetByToken(_ context.Context, token string) (auth.RefreshToken, error) {
	row, ok := f.tokens[token]
	if !ok {
		return auth.RefreshToken{}, auth.ErrRefreshTokenUnknown
	}
	return *row, nil
}

func (f *fakeRefreshTokenRepo) Revoke(_ context.Context, token string) error {
	row, ok := f.tokens[token]
	if !ok {
		return auth.ErrRefreshTokenUnknown
	}
	if row.RevokedAt != nil {
		return auth.ErrRefreshTokenRevoked
	}
	now := time.Now()
	row.RevokedAt = &now
	return nil
}

func newTestService() (auth.AuthService, *fakeEmployeeRepo, *fakeRefreshTokenRepo) {
	employees := newFakeEmployeeRepo()
	tokens := newFakeRefreshTokenRepo()
	jwtService := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp)
	return NewAuthService(fakeTx{}, employees, tokens, jwtService), employees, tokens
}

func registerTestEmployee(t *testing.T, svc auth.AuthService) employee.EmployeeResponse {
	t.Helper()
	resp, err := svc.Register(context.Background(), auth.RegisterRequest{
		Email:     "jordan@example.com",
		Username:  "jordan",
		FirstName: "Jordan",
		LastName:  "Lee",
		Password:  "password123",
	})
	require.NoError(t, err)
	return resp.Employee
}

func TestRegisterGeneratesEmployeeCode(t *testing.T) {
	svc, employees, _ := newTestService()

	emp := registerTestEmployee(t, svc)

	assert.True(t, validator.IsValidEmployeeCode(emp.Code), "got code %q", emp.Code)
	assert.True(t, emp.IsActive)
	assert.False(t, emp.IsAdmin)

	// The stored password is hashed, never the plaintext.
	stored, err := employees.GetByCode(context.Background(), emp.Code)
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password123")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService()
	registerTestEmployee(t, svc)

	_, err := svc.Register(context.Background(), auth.RegisterRequest{
		Email:     "jordan@example.com",
		Username:  "other",
		FirstName: "Other",
		LastName:  "Person",
		Password:  "password123",
	})
	assert.ErrorIs(t, err, employee.ErrEmailExists)
}

func TestRegisterValidation(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Register(context.Background(), auth.RegisterRequest{
		Email:    "not-an-email",
		Username: "x",
		Password: "short",
	})

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	details := errs.ToMap()
	assert.Contains(t, details, "email")
	assert.Contains(t, details, "password")
	assert.Contains(t, details, "first_name")
}

func TestLoginByCodeEmailAndUsername(t *testing.T) {
	svc, _, _ := newTestService()
	emp := registerTestEmployee(t, svc)

	for _, login := range []string{emp.Code, "jordan@example.com", "jordan"} {
		resp, err := svc.Login(context.Background(), auth.LoginRequest{
			Login:    login,
			Password: "password123",
		})
		require.NoError(t, err, "login %q", login)
		assert.NotEmpty(t, resp.AccessToken)
		assert.NotEmpty(t, resp.RefreshToken)
		assert.Equal(t, emp.Code, resp.Employee.Code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _, _ := newTestService()
	registerTestEmployee(t, svc)

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Login:    "jordan",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginUnknownEmployee(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Login:    "nobody",
		Password: "password123",
	})
	// Unknown logins look exactly like bad passwords.
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	svc, employees, _ := newTestService()
	emp := registerTestEmployee(t, svc)

	stored := employees.byCode[emp.Code]
	stored.IsActive = false
	employees.byCode[emp.Code] = stored

	_, err := svc.Login(context.Background(), auth.LoginRequest{
		Login:    "jordan",
		Password: "password123",
	})
	assert.ErrorIs(t, err, auth.ErrAccountInactive)
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, _, tokens := newTestService()
	registerTestEmployee(t, svc)

	loginResp, err := svc.Login(context.Background(), auth.LoginRequest{
		Login:    "jordan",
		Password: "password123",
	})
	require.NoError(t, err)

	refreshResp, err := svc.Refresh(context.Background(), auth.RefreshRequest{
		RefreshToken: loginResp.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEqual(t, loginResp.RefreshToken, refreshResp.RefreshToken)

	// The old token was revoked by the rotation and cannot be reused.
	old, err := tokens.GetByToken(context.Background(), loginResp.RefreshToken)
	require.NoError(t, err)
	assert.NotNil(t, old.RevokedAt)

	_, err = svc.Refresh(context.Background(), auth.RefreshRequest{
		RefreshToken: loginResp.RefreshToken,
	})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}

func TestRefreshGarbageToken(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Refresh(context.Background(), auth.RefreshRequest{
		RefreshToken: "not-a-jwt",
	})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	svc, _, _ := newTestService()
	registerTestEmployee(t, svc)

	loginResp, err := svc.Login(context.Background(), auth.LoginRequest{
		Login:    "jordan",
		Password: "password123",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), auth.LogoutRequest{
		RefreshToken: loginResp.RefreshToken,
	}))

	// Logging out twice reports the token as already revoked.
	err = svc.Logout(context.Background(), auth.LogoutRequest{
		RefreshToken: loginResp.RefreshToken,
	})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)

	_, err = svc.Refresh(context.Background(), auth.RefreshRequest{
		RefreshToken: loginResp.RefreshToken,
	})
	assert.ErrorIs(t, err, auth.ErrRefreshTokenRevoked)
}
