package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Service interface {
	GenerateAccessToken(employeeCode string, email string, isAdmin bool) (token string, expiresAt int64, err error)
	GenerateRefreshToken(employeeCode string) (token string, expiresAt int64, err error)
	ValidateRefreshToken(tokenString string) (employeeCode string, err error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey                  string
	accessTokenExpirationTime  string
	refreshTokenExpirationTime string
	tokenAuth                  *jwtauth.JWTAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string, refreshTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                  secretKey,
		accessTokenExpirationTime:  accessTokenExpirationTime,
		refreshTokenExpirationTime: refreshTokenExpirationTime,
		tokenAuth:                  jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func (j *JWTService) GenerateAccessToken(employeeCode string, email string, isAdmin bool) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"employee_code": employeeCode,
		"email":         email,
		"is_admin":      isAdmin,
		"type":          "access",
		"exp":           expiresAt,
		"jti":           uuid.NewString(),
	})
	return tokenString, expiresAt, err
}

func (j *JWTService) GenerateRefreshToken(employeeCode string) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.refreshTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		"employee_code": employeeCode,
		"type":          "refresh",
		"exp":           expiresAt,
		// Tokens minted within the same second would otherwise serialize
		// identically, breaking rotation.
		"jti": uuid.NewString(),
	})
	return tokenString, expiresAt, err
}

// ValidateRefreshToken decodes a refresh token, checks its type claim, and
// returns the employee code it was issued for.
func (j *JWTService) ValidateRefreshToken(tokenString string) (string, error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return "", err
	}

	tokenType, ok := token.Get("type")
	if !ok || tokenType != "refresh" {
		return "", jwt.ErrInvalidJWT()
	}

	codeVal, ok := token.Get("employee_code")
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}

	code, ok := codeVal.(string)
	if !ok {
		return "", jwt.ErrInvalidJWT()
	}

	return code, nil
}
