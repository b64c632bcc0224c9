package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/argon2"

	"complaint-backend/internal/apperr"
	"complaint-backend/internal/models"
	"complaint-backend/internal/repository"
)

const (
	argonTime    = 1
	argonMemory  = 64 * 1024
	argonThreads = 4
	argonKeyLen  = 32
	argonSaltLen = 16
)

type SignUpRequest struct {
	Username    string
	Password    string
	DisplayName string
	Email       string
}

type AuthService interface {
	SignUp(req SignUpRequest) error
	Login(username, password string) (string, time.Time, error) // Returns JWT token, expiration time, and error
	UsernameAvailable(username string) (bool, error)
}

type authService struct {
	repo      repository.UserRepository
	jwtSecret []byte
	tokenTTL  time.Duration
	logger    *zap.Logger
}

func NewAuthService(repo repository.UserRepository, jwtSecret []byte, tokenTTL time.Duration, logger *zap.Logger) AuthService {
	return &authService{
		repo:      repo,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
	}
}

func (s *authService) SignUp(req SignUpRequest) error {
	if req.Username == "" || req.Password == "" {
		return apperr.Wrap(apperr.ErrValidation, "username and password are required")
	}

	exists, err := s.repo.ExistsByUsername(req.Username)
	if err != nil {
		s.logger.Error("Failed to check username", zap.Error(err))
		return fmt.Errorf("failed to check existing users: %w", err)
	}
	if exists {
		s.logger.Info("Duplicate username on signup", zap.String("username", req.Username))
		return apperr.ErrDuplicateUser
	}

	passwordHash, err := hashPassword(req.Password)
	if err != nil {
		s.logger.Error("Failed to hash password", zap.Error(err))
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: passwordHash,
		DisplayName:  req.DisplayName,
		Email:        req.Email,
		Role:         models.RoleCitizen,
	}

	if err := s.repo.CreateUser(user); err != nil {
		// The unique index is what actually guards against concurrent signups;
		// the existence check above can always race.
		if errors.Is(err, repository.ErrUsernameTaken) {
			return apperr.ErrDuplicateUser
		}
		s.logger.Error("Failed to create user", zap.Error(err))
		return fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User created", zap.String("username", user.Username), zap.Int64("id", user.ID))
	return nil
}

func (s *authService) Login(username, password string) (string, time.Time, error) {
	user, err := s.repo.GetUserByUsername(username)
	if err != nil {
		s.logger.Error("Failed to get user by username", zap.Error(err))
		return "", time.Time{}, fmt.Errorf("failed to retrieve user: %w", err)
	}
	if user == nil {
		return "", time.Time{}, apperr.ErrUserNotFound
	}

	if !verifyPassword(user.PasswordHash, password) {
		return "", time.Time{}, apperr.ErrInvalidCredential
	}

	expirationTime := time.Now().Add(s.tokenTTL)
	claims := &models.Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		s.logger.Error("Failed to generate JWT token", zap.Error(err))
		return "", time.Time{}, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("User logged in successfully.", zap.String("username", user.Username))
	return tokenString, expirationTime, nil
}

func (s *authService) UsernameAvailable(username string) (bool, error) {
	exists, err := s.repo.ExistsByUsername(username)
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return false, apperr.ErrDuplicateUser
	}
	s.logger.Info("Username available", zap.String("username", username))
	return true, nil
}

// hashPassword derives an argon2id hash and encodes it together with its
// parameters and salt, e.g.
// $argon2id$v=19$m=65536,t=1,p=4$BASE64_SALT$BASE64_HASH
func hashPassword(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)

	encodedSalt := base64.RawStdEncoding.EncodeToString(salt)
	encodedHash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads, encodedSalt, encodedHash), nil
}

// verifyPassword compares a plaintext password with an encoded argon2id hash.
func verifyPassword(hashedPassword, password string) bool {
	sections := strings.Split(strings.TrimPrefix(hashedPassword, "$"), "$")
	// Expected: ["argon2id", "v=19", "m=65536,t=1,p=4", salt, hash]
	if len(sections) != 5 || sections[0] != "argon2id" {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(sections[1], "v=%d", &version); err != nil {
		return false
	}

	var m, t uint32
	var p uint8
	if _, err := fmt.Sscanf(sections[2], "m=%d,t=%d,p=%d", &m, &t, &p); err != nil {
		return false
	}

	decodedSalt, err := base64.RawStdEncoding.DecodeString(sections[3])
	if err != nil {
		return false
	}
	decodedHash, err := base64.RawStdEncoding.DecodeString(sections[4])
	if err != nil {
		return false
	}

	comparisonHash := argon2.IDKey([]byte(password), decodedSalt, t, m, p, uint32(len(decodedHash)))
	return subtle.ConstantTimeCompare(comparisonHash, decodedHash) == 1
}
