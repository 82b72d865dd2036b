package serviceimpl

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"golang.org/x/crypto/bcrypt"

	"github.com/pinkcat015/todolist/domain/dto"
	"github.com/pinkcat015/todolist/domain/models"
	"github.com/pinkcat015/todolist/domain/ports"
	"github.com/pinkcat015/todolist/domain/repositories"
	"github.com/pinkcat015/todolist/domain/services"
	"github.com/pinkcat015/todolist/pkg/logger"
	"github.com/pinkcat015/todolist/pkg/utils"
)

const resetTokenBytes = 32

// UserServiceConfig carries the auth and account settings the service needs.
type UserServiceConfig struct {
	JWTSecret     string
	TokenTTL      time.Duration
	FrontendURL   string
	ResetTokenTTL time.Duration
	MaxAvatarSize int64
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
	storage  ports.StoragePort
	mailer   ports.MailerPort
	cfg      UserServiceConfig
	now      func() time.Time
}

func NewUserService(userRepo repositories.UserRepository, storage ports.StoragePort, mailer ports.MailerPort, cfg UserServiceConfig) *UserServiceImpl {
	if cfg.ResetTokenTTL <= 0 {
		cfg.ResetTokenTTL = time.Hour
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 7 * 24 * time.Hour
	}
	return &UserServiceImpl{
		userRepo: userRepo,
		storage:  storage,
		mailer:   mailer,
		cfg:      cfg,
		now:      time.Now,
	}
}

// WithClock replaces the time source, used by tests around token expiry.
func (s *UserServiceImpl) WithClock(now func() time.Time) *UserServiceImpl {
	s.now = now
	return s
}

func (s *UserServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (string, *models.User, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		logger.WarnContext(ctx, "Username already exists", "username", username)
		return "", nil, services.ErrUsernameTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return "", nil, err
	}

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		logger.WarnContext(ctx, "Email already exists", "email", email)
		return "", nil, services.ErrEmailTaken
	} else if !errors.Is(err, repositories.ErrNotFound) {
		return "", nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to hash password", "error", err)
		return "", nil, err
	}

	user := &models.User{
		Username:             username,
		Email:                email,
		Password:             string(hashedPassword),
		DefaultRemindMinutes: models.DefaultRemindMinutes,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		logger.ErrorContext(ctx, "Failed to create user in database", "error", err)
		return "", nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}

	logger.InfoContext(ctx, "User registered", "user_id", user.ID, "username", user.Username)
	return token, user, nil
}

func (s *UserServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (string, *models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			logger.WarnContext(ctx, "Login failed - user not found", "username", req.Username)
			return "", nil, services.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		logger.WarnContext(ctx, "Login failed - invalid password", "user_id", user.ID)
		return "", nil, services.ErrInvalidCredentials
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}

	logger.InfoContext(ctx, "User logged in", "user_id", user.ID)
	return token, user, nil
}

func (s *UserServiceImpl) GetProfile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, services.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *UserServiceImpl) UpdateProfile(ctx context.Context, userID int64, req *dto.UpdateProfileRequest, avatar *dto.AvatarUpload) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		user.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Phone != nil {
		user.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.TelegramChatID != nil {
		if *req.TelegramChatID == 0 {
			user.TelegramChatID = nil
		} else {
			chatID := *req.TelegramChatID
			user.TelegramChatID = &chatID
		}
	}
	if req.DefaultRemindMinutes != nil {
		user.DefaultRemindMinutes = *req.DefaultRemindMinutes
	}

	var oldAvatar string
	if avatar != nil {
		key, err := s.uploadAvatar(ctx, user.ID, avatar)
		if err != nil {
			return nil, err
		}
		oldAvatar, user.Avatar = user.Avatar, key
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		logger.ErrorContext(ctx, "Failed to update profile", "user_id", userID, "error", err)
		return nil, err
	}

	if oldAvatar != "" && oldAvatar != user.Avatar && s.storage != nil {
		if err := s.storage.DeleteFile(oldAvatar); err != nil {
			logger.WarnContext(ctx, "Failed to delete old avatar", "user_id", userID, "path", oldAvatar, "error", err)
		}
	}

	logger.InfoContext(ctx, "Profile updated", "user_id", userID)
	return user, nil
}

func (s *UserServiceImpl) ChangePassword(ctx context.Context, userID int64, req *dto.ChangePasswordRequest) error {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		logger.WarnContext(ctx, "Change password failed - wrong current password", "user_id", userID)
		return services.ErrWrongPassword
	}

	if err := s.setPassword(user, req.NewPassword); err != nil {
		return err
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		logger.ErrorContext(ctx, "Failed to save new password", "user_id", userID, "error", err)
		return err
	}

	logger.InfoContext(ctx, "Password changed", "user_id", userID)
	return nil
}

// ForgotPassword issues a reset token and mails the link. Unknown emails succeed silently.
func (s *UserServiceImpl) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			logger.InfoContext(ctx, "Password reset requested for unknown email")
			return nil
		}
		return err
	}

	token, err := utils.GenerateSecureToken(resetTokenBytes)
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}
	expiresAt := s.now().Add(s.cfg.ResetTokenTTL)
	user.ResetToken = &token
	user.ResetTokenExpiresAt = &expiresAt

	if err := s.userRepo.Update(ctx, user); err != nil {
		logger.ErrorContext(ctx, "Failed to store reset token", "user_id", user.ID, "error", err)
		return err
	}

	link := s.cfg.FrontendURL + "/reset-password?token=" + url.QueryEscape(token)
	if err := s.mailer.SendPasswordReset(ctx, user.Email, user.Username, link); err != nil {
		logger.ErrorContext(ctx, "Failed to send password reset email", "user_id", user.ID, "error", err)
		return fmt.Errorf("send reset email: %w", err)
	}

	logger.InfoContext(ctx, "Password reset email sent", "user_id", user.ID)
	return nil
}

func (s *UserServiceImpl) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	user, err := s.userRepo.GetByResetToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return services.ErrInvalidResetToken
		}
		return err
	}

	if !user.ResetTokenValid(req.Token, s.now()) {
		logger.WarnContext(ctx, "Expired reset token used", "user_id", user.ID)
		return services.ErrInvalidResetToken
	}

	if err := s.setPassword(user, req.NewPassword); err != nil {
		return err
	}
	user.ClearResetToken()

	if err := s.userRepo.Update(ctx, user); err != nil {
		logger.ErrorContext(ctx, "Failed to reset password", "user_id", user.ID, "error", err)
		return err
	}

	logger.InfoContext(ctx, "Password reset", "user_id", user.ID)
	return nil
}

func (s *UserServiceImpl) AvatarURL(user *models.User) string {
	if user == nil || user.Avatar == "" || s.storage == nil {
		return ""
	}
	return s.storage.GetFileURL(user.Avatar)
}

func (s *UserServiceImpl) issueToken(user *models.User) (string, error) {
	return utils.GenerateToken(user.ID, user.Username, user.Email, s.cfg.JWTSecret, s.cfg.TokenTTL)
}

func (s *UserServiceImpl) setPassword(user *models.User, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return nil
}

func (s *UserServiceImpl) uploadAvatar(ctx context.Context, userID int64, avatar *dto.AvatarUpload) (string, error) {
	if !strings.HasPrefix(avatar.ContentType, "image/") {
		return "", services.ErrInvalidAvatar
	}
	if s.cfg.MaxAvatarSize > 0 && avatar.Size > s.cfg.MaxAvatarSize {
		return "", services.ErrAvatarTooLarge
	}
	if s.storage == nil {
		return "", errors.New("storage is not configured")
	}

	file, err := avatar.Open()
	if err != nil {
		return "", fmt.Errorf("open avatar: %w", err)
	}
	defer file.Close()

	key := AvatarObjectKey(userID, avatar.Filename)
	if _, err := s.storage.UploadFile(file, key, avatar.Size, avatar.ContentType); err != nil {
		logger.ErrorContext(ctx, "Failed to upload avatar", "user_id", userID, "provider", s.storage.GetProviderName(), "error", err)
		return "", err
	}
	return key, nil
}

// AvatarObjectKey builds avatars/<userID>/<short-uuid>-<slugged-name><ext>.
func AvatarObjectKey(userID int64, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	name := slug.Make(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	if name == "" {
		name = "avatar"
	}
	return fmt.Sprintf("avatars/%d/%s-%s%s", userID, uuid.NewString()[:8], name, ext)
}
