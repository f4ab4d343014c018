package sql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"foodhub/internal/entity/db"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CreatePasswordResetToken persists a token digest. Any previous tokens for
// the same user are superseded and removed first.
func (r *GormRepository) CreatePasswordResetToken(ctx context.Context, token *db.PasswordResetToken) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if token == nil || token.UserID == 0 {
		return fmt.Errorf("invalid reset token")
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", token.UserID).Delete(&db.PasswordResetToken{}).Error; err != nil {
			return err
		}
		return tx.Create(token).Error
	})
}

// GetPasswordResetTokenByHash loads a token record by its digest.
func (r *GormRepository) GetPasswordResetTokenByHash(ctx context.Context, hash string) (*db.PasswordResetToken, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(hash)
	if trimmed == "" {
		return nil, fmt.Errorf("token hash is empty")
	}
	var token db.PasswordResetToken
	if err := r.db.WithContext(ctx).Where("token_hash = ?", trimmed).First(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// DeletePasswordResetTokensForUser removes every token of the user.
func (r *GormRepository) DeletePasswordResetTokensForUser(ctx context.Context, userID uint) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if userID == 0 {
		return fmt.Errorf("invalid user id")
	}
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&db.PasswordResetToken{}).Error
}

// UpsertEmailVerification stores or replaces the pending code for an email.
func (r *GormRepository) UpsertEmailVerification(ctx context.Context, verification *db.EmailVerification) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if verification == nil || strings.TrimSpace(verification.Email) == "" {
		return fmt.Errorf("invalid verification")
	}
	verification.Email = strings.ToLower(strings.TrimSpace(verification.Email))
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "expires_at", "created_at"}),
	}).Create(verification).Error
}

// GetEmailVerification loads the pending code for an email.
func (r *GormRepository) GetEmailVerification(ctx context.Context, email string) (*db.EmailVerification, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.ToLower(strings.TrimSpace(email))
	if trimmed == "" {
		return nil, fmt.Errorf("email is empty")
	}
	var verification db.EmailVerification
	if err := r.db.WithContext(ctx).Where("email = ?", trimmed).First(&verification).Error; err != nil {
		return nil, err
	}
	return &verification, nil
}

// DeleteEmailVerification removes the pending code for an email.
func (r *GormRepository) DeleteEmailVerification(ctx context.Context, email string) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	trimmed := strings.ToLower(strings.TrimSpace(email))
	if trimmed == "" {
		return fmt.Errorf("email is empty")
	}
	return r.db.WithContext(ctx).Where("email = ?", trimmed).Delete(&db.EmailVerification{}).Error
}

// CreateSession persists a new session row.
func (r *GormRepository) CreateSession(ctx context.Context, session *db.Session) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if session == nil || session.ID == "" {
		return fmt.Errorf("invalid session")
	}
	return r.db.WithContext(ctx).Create(session).Error
}

// GetSession loads a session by its ID.
func (r *GormRepository) GetSession(ctx context.Context, id string) (*db.Session, error) {
	if r == nil || r.db == nil {
		return nil, fmt.Errorf("repository not initialised")
	}
	trimmed := strings.TrimSpace(id)
	if trimmed == "" {
		return nil, fmt.Errorf("session id is empty")
	}
	var session db.Session
	if err := r.db.WithContext(ctx).Where("id = ?", trimmed).First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// TouchSession extends the session window.
func (r *GormRepository) TouchSession(ctx context.Context, id string, expiresAt, refreshedAt time.Time) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("session id is empty")
	}
	return r.db.WithContext(ctx).Model(&db.Session{}).Where("id = ?", id).Updates(map[string]interface{}{
		"expires_at":   expiresAt,
		"refreshed_at": refreshedAt,
	}).Error
}

// DeleteSession removes a session by its ID.
func (r *GormRepository) DeleteSession(ctx context.Context, id string) error {
	if r == nil || r.db == nil {
		return fmt.Errorf("repository not initialised")
	}
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("session id is empty")
	}
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&db.Session{}).Error
}
