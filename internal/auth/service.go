package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/hugh/go-desk/internal/apperr"
	"github.com/hugh/go-desk/internal/database/models"
	"github.com/hugh/go-desk/internal/tasks"
	"gorm.io/gorm"
)

const recoveryTokenTTL = time.Hour

// EmailBlocklist answers whether an address is barred from registration.
type EmailBlocklist interface {
	IsBlockedEmail(ctx context.Context, email string) bool
}

// TaskEnqueuer dispatches background tasks. Satisfied by *asynq.Client.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type Service struct {
	db        *gorm.DB
	jwt       *JWTService
	blocklist EmailBlocklist
	queue     TaskEnqueuer
}

func NewService(db *gorm.DB, jwt *JWTService, blocklist EmailBlocklist, queue TaskEnqueuer) *Service {
	return &Service{db: db, jwt: jwt, blocklist: blocklist, queue: queue}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates an account. When the email's domain matches a company
// with domain auto-join enabled, the user is attached to that company in the
// same transaction and the company's user counter moves with the membership.
func (s *Service) Register(ctx context.Context, input RegisterInput) error {
	if s.blocklist.IsBlockedEmail(ctx, input.Email) {
		return apperr.BadRequest("Unable to complete registration")
	}

	var existing models.User
	err := s.db.WithContext(ctx).Where("email = ?", input.Email).First(&existing).Error
	if err == nil {
		return apperr.BadRequest("User with same email already exists")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return err
	}

	target, err := s.evaluateAutoJoin(ctx, input.Email)
	if err != nil {
		return err
	}

	firstName, lastName := splitName(input.Name)

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user := models.User{
			Email:        input.Email,
			PasswordHash: &hash,
			FullName:     input.Name,
			FirstName:    firstName,
			LastName:     lastName,
			IsActive:     true,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		if target == nil {
			return nil
		}

		// The guarded update decides the capacity race: the membership is
		// created iff the counter moved, so user_usage never exceeds
		// user_limit and never drifts from the membership rows.
		res := tx.Model(&models.Company{}).
			Where("id = ? AND user_usage < user_limit", target.CompanyID).
			Update("user_usage", gorm.Expr("user_usage + 1"))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}

		return tx.Create(&models.Membership{
			UserID:    user.ID,
			CompanyID: target.CompanyID,
			RoleID:    target.RoleID,
		}).Error
	})
}

// Login verifies email+password and issues a signed session token.
func (s *Service) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	var user models.User
	if err := s.db.WithContext(ctx).
		Where("email = ?", input.Email).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.BadRequest("Invalid credentials.")
		}
		return nil, err
	}

	if user.PasswordHash == nil {
		return nil, apperr.BadRequest("User does not have a password, use social login.")
	}

	if !CheckPassword(input.Password, *user.PasswordHash) {
		return nil, apperr.BadRequest("Invalid credentials.")
	}

	token, err := s.jwt.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{Token: token, User: &user}, nil
}

// GetActiveUser loads the user behind a verified token and enforces that
// deactivation revokes access even for still-valid credentials.
func (s *Service) GetActiveUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", id, true).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorized("User not found or inactive")
		}
		return nil, err
	}
	return &user, nil
}

// GetProfile returns the user with the companies they own.
func (s *Service) GetProfile(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).
		Preload("OwnsCompanies").
		First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.BadRequest("User not found")
		}
		return nil, err
	}
	return &user, nil
}

// RequestPasswordRecover issues a single-use recovery code. Unknown emails
// succeed silently so the endpoint cannot be used to enumerate accounts.
func (s *Service) RequestPasswordRecover(ctx context.Context, email string) error {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	token := models.RecoveryToken{
		ID:        uuid.New(),
		Type:      models.TokenTypePasswordRecover,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(recoveryTokenTTL),
	}
	if err := s.db.WithContext(ctx).Create(&token).Error; err != nil {
		return err
	}

	if s.queue != nil {
		task, err := tasks.NewRecoveryNoticeTask(tasks.RecoveryNoticePayload{
			UserID: user.ID,
			Email:  user.Email,
			Code:   token.ID.String(),
		})
		if err != nil {
			return err
		}
		if _, err := s.queue.EnqueueContext(ctx, task); err != nil {
			return err
		}
	}

	return nil
}

// ResetPassword consumes a recovery code. The code never survives one use
// attempt: expired codes are deleted before the failure is reported, and
// valid ones are deleted in the same transaction as the password update.
func (s *Service) ResetPassword(ctx context.Context, code, password string) error {
	id, err := uuid.Parse(code)
	if err != nil {
		return apperr.Unauthorized("Unauthorized")
	}

	var token models.RecoveryToken
	if err := s.db.WithContext(ctx).First(&token, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.Unauthorized("Unauthorized")
		}
		return err
	}

	if token.Type != models.TokenTypePasswordRecover {
		return apperr.Unauthorized("Unauthorized")
	}

	if token.Expired(time.Now()) {
		if err := s.db.WithContext(ctx).Delete(&models.RecoveryToken{}, "id = ?", id).Error; err != nil {
			return err
		}
		return apperr.Unauthorized("Unauthorized")
	}

	hash, err := HashPassword(password)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.User{}).
			Where("id = ?", token.UserID).
			Update("password_hash", hash).Error; err != nil {
			return err
		}
		return tx.Delete(&models.RecoveryToken{}, "id = ?", id).Error
	})
}

func splitName(name string) (first, last string) {
	parts := strings.Fields(name)
	if len(parts) == 0 {
		return "", ""
	}
	return parts[0], strings.Join(parts[1:], " ")
}
