package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"rent-backend/config"
	"rent-backend/models"
	"rent-backend/utils"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const resetTokenTTL = 10 * time.Minute

type UserService struct {
	DB     *gorm.DB
	Cfg    *config.Config
	Mailer *utils.Mailer
}

func NewUserService(db *gorm.DB, cfg *config.Config, mailer *utils.Mailer) *UserService {
	return &UserService{DB: db, Cfg: cfg, Mailer: mailer}
}

type SignupInput struct {
	Name        string
	Email       string
	PhoneNumber string
	Password    string
	Avatar      string
}

func (s *UserService) Signup(in SignupInput) (*models.User, error) {
	if in.Name == "" || in.Email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", ErrValidation)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	avatarURL := in.Avatar
	if avatarURL == "" {
		avatarURL = models.DefaultAvatarURL
	}

	user := models.User{
		Name:        in.Name,
		Email:       strings.ToLower(strings.TrimSpace(in.Email)),
		PhoneNumber: in.PhoneNumber,
		Password:    hash,
		Avatar:      models.Avatar{URL: avatarURL},
	}

	if err := s.DB.Create(&user).Error; err != nil {
		if isDuplicateEntry(err) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &user, nil
}

func (s *UserService) Login(email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: please provide email and password", ErrValidation)
	}

	var user models.User
	err := s.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: incorrect email or password", ErrCredentials)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, fmt.Errorf("%w: incorrect email or password", ErrCredentials)
	}

	return &user, nil
}

func (s *UserService) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &user, nil
}

type UpdateProfileInput struct {
	Name        string
	Email       string
	PhoneNumber string
	Avatar      string // URL or base64 data URI; uploaded to the asset host
}

// UpdateProfile applies the allowed profile fields. Anything else on the
// request body is ignored; passwords go through UpdatePassword.
func (s *UserService) UpdateProfile(ctx context.Context, id uint, in UpdateProfileInput) (*models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if in.Name != "" {
		updates["name"] = in.Name
	}
	if in.Email != "" {
		updates["email"] = strings.ToLower(strings.TrimSpace(in.Email))
	}
	if in.PhoneNumber != "" {
		updates["phone_number"] = in.PhoneNumber
	}

	if in.Avatar != "" {
		publicID, url, upErr := utils.UploadAvatar(ctx, s.Cfg.CloudinaryURL, in.Avatar)
		if upErr != nil {
			return nil, fmt.Errorf("%w: avatar upload: %v", ErrUpstream, upErr)
		}
		updates["avatar_public_id"] = publicID
		updates["avatar_url"] = url
	}

	if len(updates) == 0 {
		return user, nil
	}

	if err := s.DB.Model(user).Updates(updates).Error; err != nil {
		if isDuplicateEntry(err) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, fmt.Errorf("update user: %w", err)
	}

	return s.GetByID(id)
}

// UpdatePassword verifies the current password before setting a new one.
func (s *UserService) UpdatePassword(id uint, current, next string) (*models.User, error) {
	if next == "" {
		return nil, fmt.Errorf("%w: new password is required", ErrValidation)
	}

	user, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if !utils.CheckPasswordHash(current, user.Password) {
		return nil, fmt.Errorf("%w: your current password is wrong", ErrCredentials)
	}

	return s.setPassword(user, next)
}

// ForgotPassword issues a reset token and mails the link. Only the sha256
// digest of the token is stored; if the mail fails, the token is cleared so
// no unusable state lingers.
func (s *UserService) ForgotPassword(email string) error {
	var user models.User
	err := s.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: there is no user with this email", ErrNotFound)
		}
		return fmt.Errorf("find user: %w", err)
	}

	rawToken, err := utils.GenerateSecureToken(32)
	if err != nil {
		return fmt.Errorf("generate reset token: %w", err)
	}

	expires := time.Now().Add(resetTokenTTL)
	err = s.DB.Model(&user).Updates(map[string]interface{}{
		"password_reset_token":   utils.HashResetToken(rawToken),
		"password_reset_expires": expires,
	}).Error
	if err != nil {
		return fmt.Errorf("store reset token: %w", err)
	}

	resetURL := fmt.Sprintf("%s/user/resetPassword/%s", strings.TrimRight(s.Cfg.FrontendURL, "/"), rawToken)
	if err := s.Mailer.SendPasswordReset(user.Email, user.Name, resetURL); err != nil {
		s.DB.Model(&user).Updates(map[string]interface{}{
			"password_reset_token":   "",
			"password_reset_expires": nil,
		})
		log.WithError(err).Warn("password reset mail failed")
		return fmt.Errorf("%w: there was an error sending the email, try again later", ErrUpstream)
	}

	return nil
}

// ResetPassword consumes a mailed token.
func (s *UserService) ResetPassword(rawToken, next string) (*models.User, error) {
	if next == "" {
		return nil, fmt.Errorf("%w: new password is required", ErrValidation)
	}

	var user models.User
	err := s.DB.
		Where("password_reset_token = ? AND password_reset_expires > ?", utils.HashResetToken(rawToken), time.Now()).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: token is invalid or expired", ErrResetToken)
		}
		return nil, fmt.Errorf("find reset token: %w", err)
	}

	updated, err := s.setPassword(&user, next)
	if err != nil {
		return nil, err
	}

	err = s.DB.Model(updated).Updates(map[string]interface{}{
		"password_reset_token":   "",
		"password_reset_expires": nil,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("clear reset token: %w", err)
	}
	updated.PasswordResetToken = ""
	updated.PasswordResetExpires = nil

	return updated, nil
}

func (s *UserService) setPassword(user *models.User, next string) (*models.User, error) {
	hash, err := utils.HashPassword(next)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// Backdated one second: JWT iat is truncated to whole seconds, so a
	// token minted in the same request must not read as pre-change.
	now := time.Now().Add(-time.Second)
	err = s.DB.Model(user).Updates(map[string]interface{}{
		"password":            hash,
		"password_changed_at": now,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("update password: %w", err)
	}

	user.Password = hash
	user.PasswordChangedAt = &now
	return user, nil
}
