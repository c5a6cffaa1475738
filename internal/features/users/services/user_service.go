package users_services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	users_dto "clubhub/internal/features/users/dto"
	users_models "clubhub/internal/features/users/models"
	users_repositories "clubhub/internal/features/users/repositories"
	"clubhub/internal/util/login_limit"
)

// verificationTokenLife bounds how long an emailed verification link stays
// usable. Compared explicitly against the send timestamp.
const verificationTokenLife = 24 * time.Hour

type UserService struct {
	userRepository      *users_repositories.UserRepository
	secretKeyRepository *users_repositories.SecretKeyRepository
	loginLimiter        *login_limit.LoginLimiter
	mailer              *Mailer
	logger              *slog.Logger
}

func (s *UserService) SignUp(request *users_dto.SignUpRequestDTO) (*users_models.User, error) {
	if fieldErrors := validateOptionalContactFields(request.Phone, request.ProfileLink); len(fieldErrors) > 0 {
		return nil, fieldErrors
	}

	existingUser, err := s.userRepository.GetUserByEmail(request.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	if existingUser != nil {
		return nil, ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	hashedPasswordStr := string(hashedPassword)
	verificationToken := uuid.New().String()
	now := time.Now().UTC()

	user := &users_models.User{
		ID:                   uuid.New(),
		Name:                 request.Name,
		Email:                request.Email,
		HashedPassword:       &hashedPasswordStr,
		PasswordCreationTime: now,
		Phone:                request.Phone,
		ProfileLink:          request.ProfileLink,
		Role:                 request.Role,
		VerificationToken:    &verificationToken,
		VerificationSentAt:   &now,
		CreatedAt:            now,
		UpdatedAt:            now,
	}

	if err := s.userRepository.CreateUser(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.mailer.SendVerificationLink(user.Email, verificationToken); err != nil {
		// registration stands even when delivery fails; the link can be resent
		s.logger.Error("Failed to send verification email",
			slog.String("email", user.Email),
			slog.String("error", err.Error()))
	}

	s.logger.Info("User registered",
		slog.String("userId", user.ID.String()),
		slog.String("role", string(user.Role)))

	return user, nil
}

func (s *UserService) SignIn(
	request *users_dto.SignInRequestDTO,
	clientIP string,
) (*users_dto.SignInResponseDTO, error) {
	lockStatus, err := s.loginLimiter.Check(request.Email, clientIP)
	if err != nil {
		return nil, fmt.Errorf("failed to check sign-in attempts: %w", err)
	}

	if lockStatus.Locked {
		return nil, fmt.Errorf("%w: try again in %d seconds", ErrRateLimited, lockStatus.RetryAfterSec)
	}

	user, err := s.userRepository.GetUserByEmail(request.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if user == nil || !user.HasPassword() {
		return nil, s.registerFailedSignIn(request.Email, clientIP)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*user.HashedPassword), []byte(request.Password)); err != nil {
		return nil, s.registerFailedSignIn(request.Email, clientIP)
	}

	if err := s.loginLimiter.Reset(request.Email, clientIP); err != nil {
		return nil, fmt.Errorf("failed to reset sign-in attempts: %w", err)
	}

	response, err := s.GenerateAccessToken(user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User signed in", slog.String("userId", user.ID.String()))

	return response, nil
}

// registerFailedSignIn bumps the per-key counter and always returns the
// opaque credentials error so callers cannot tell email and password
// failures apart.
func (s *UserService) registerFailedSignIn(email, clientIP string) error {
	status, err := s.loginLimiter.RegisterFailure(email, clientIP)
	if err != nil {
		s.logger.Error("Failed to record sign-in failure",
			slog.String("error", err.Error()))
		return ErrInvalidCredentials
	}

	if status.Locked && status.FailedAttempts == login_limit.MaxFailedAttempts {
		s.logger.Warn("Sign-in lockout triggered",
			slog.String("key", login_limit.AttemptKey(email, clientIP)),
			slog.Int("failedAttempts", status.FailedAttempts))
	}

	return ErrInvalidCredentials
}

func (s *UserService) VerifyEmail(token string) (*users_models.User, error) {
	user, err := s.userRepository.GetUserByVerificationToken(token)
	if err != nil {
		return nil, fmt.Errorf("failed to look up verification token: %w", err)
	}

	if user == nil {
		return nil, ErrInvalidToken
	}

	// a second verification of an already-verified account is a no-op success
	if user.IsVerified() {
		return user, nil
	}

	if user.VerificationSentAt == nil ||
		user.VerificationSentAt.Before(time.Now().UTC().Add(-verificationTokenLife)) {
		return nil, ErrInvalidToken
	}

	if err := s.userRepository.MarkEmailVerified(user.ID); err != nil {
		return nil, fmt.Errorf("failed to mark email verified: %w", err)
	}

	s.logger.Info("Email verified", slog.String("userId", user.ID.String()))

	return s.userRepository.GetUserByID(user.ID)
}

func (s *UserService) ResendVerification(user *users_models.User) error {
	if user.IsVerified() {
		return nil
	}

	verificationToken := uuid.New().String()
	if err := s.userRepository.UpdateVerificationToken(user.ID, verificationToken); err != nil {
		return fmt.Errorf("failed to rotate verification token: %w", err)
	}

	if err := s.mailer.SendVerificationLink(user.Email, verificationToken); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	return nil
}

func (s *UserService) GetUserFromToken(token string) (*users_models.User, error) {
	secretKey, err := s.secretKeyRepository.GetSecretKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret key: %w", err)
	}

	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := parsedToken.Claims.(jwt.MapClaims); ok && parsedToken.Valid {
		userIDStr, ok := claims["sub"].(string)
		if !ok {
			return nil, errors.New("invalid token claims")
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			return nil, errors.New("invalid token claims")
		}

		user, err := s.userRepository.GetUserByID(userID)
		if err != nil {
			return nil, err
		}

		if passwordCreationTimeUnix, ok := claims["passwordCreationTime"].(float64); ok {
			tokenPasswordTime := time.Unix(int64(passwordCreationTimeUnix), 0)

			tokenTimeSeconds := tokenPasswordTime.Truncate(time.Second)
			userTimeSeconds := user.PasswordCreationTime.Truncate(time.Second)

			if !tokenTimeSeconds.Equal(userTimeSeconds) {
				return nil, errors.New("password has been changed, please sign in again")
			}
		} else {
			return nil, errors.New("invalid token claims: missing password creation time")
		}

		return user, nil
	}

	return nil, errors.New("invalid token")
}

func (s *UserService) GenerateAccessToken(user *users_models.User) (*users_dto.SignInResponseDTO, error) {
	secretKey, err := s.secretKeyRepository.GetSecretKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get secret key: %w", err)
	}

	expiration := time.Now().UTC().Add(time.Hour * 24 * 30)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":                  user.ID.String(),
		"exp":                  expiration.Unix(),
		"iat":                  time.Now().UTC().Unix(),
		"role":                 string(user.Role),
		"passwordCreationTime": user.PasswordCreationTime.Unix(),
	})

	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &users_dto.SignInResponseDTO{
		UserID:     user.ID,
		Email:      user.Email,
		Token:      tokenString,
		IsVerified: user.IsVerified(),
	}, nil
}

func (s *UserService) ChangeUserPassword(userID uuid.UUID, newPassword string) error {
	user, err := s.userRepository.GetUserByID(userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}

	if !user.HasPassword() {
		return errors.New("user has no password set")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.userRepository.UpdateUserPassword(userID, string(hashedPassword)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.Info("Password changed", slog.String("userId", userID.String()))

	return nil
}

func (s *UserService) GetUserByID(userID uuid.UUID) (*users_models.User, error) {
	return s.userRepository.GetUserByID(userID)
}

func (s *UserService) GetUserByEmail(email string) (*users_models.User, error) {
	return s.userRepository.GetUserByEmail(email)
}

func (s *UserService) GetCurrentUserProfile(user *users_models.User) *users_dto.UserProfileResponseDTO {
	return &users_dto.UserProfileResponseDTO{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Phone:       user.Phone,
		ProfileLink: user.ProfileLink,
		Role:        user.Role,
		IsVerified:  user.IsVerified(),
		CreatedAt:   user.CreatedAt,
	}
}
