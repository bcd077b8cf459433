package auth

import (
	"context"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	autherrors "go-dailyreport/internal/auth/errors"
	"go-dailyreport/internal/employee"
	"go-dailyreport/internal/middleware"
	"go-dailyreport/internal/shared/contextutil"
)

const sessionTTL = 8 * time.Hour

type Service interface {
	Login(ctx context.Context, code, password string) (token string, resp SessionResponse, err error)
}

type service struct {
	employeeRepo employee.Repository
	logger       *zap.Logger
}

func NewService(employeeRepo employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{employeeRepo: employeeRepo, logger: l}
}

// Login verifies the code/password pair against the active employee
// record and issues the session token. Lookup and password failures
// collapse into the same error so the form cannot be used to probe
// which employee codes exist.
func (s *service) Login(ctx context.Context, code, password string) (string, SessionResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	empl, err := s.employeeRepo.FindByCode(ctx, code)
	if err != nil {
		log.Debug("login lookup failed", zap.String("code", code), zap.Error(err))
		return "", SessionResponse{}, autherrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(empl.Password), []byte(password)); err != nil {
		log.Debug("login password mismatch", zap.String("code", code))
		return "", SessionResponse{}, autherrors.ErrInvalidCredentials
	}

	token, err := s.generateToken(empl.Code, string(empl.Role), sessionTTL)
	if err != nil {
		log.Error("login token generation failed", zap.Error(err))
		return "", SessionResponse{}, autherrors.ErrTokenGenerationFailed
	}

	log.Info("login success", zap.String("code", empl.Code))

	return token, SessionResponse{
		EmployeeCode: empl.Code,
		Name:         empl.Name,
		Role:         string(empl.Role),
	}, nil
}

func (s *service) generateToken(code, role string, expiry time.Duration) (string, error) {
	claims := jwt.MapClaims{
		middleware.ContextEmployeeCode: code,
		middleware.ContextRole:         role,
		"exp":                          time.Now().Add(expiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
