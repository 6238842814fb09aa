package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var ErrCredentialNotFound = errors.New("credential not found")

// Credential is the remote bearer token stored for a signed-in user.
type Credential struct {
	UserID   int64  `gorm:"primaryKey;autoIncrement:false" db:"user_id"`
	Token    string `gorm:"not null" db:"token"`
	Role     string `gorm:"not null" db:"role"`
	UserName string `gorm:"not null" db:"user_name"`

	CreatedAt time.Time `gorm:"not null" db:"-"`
	UpdatedAt time.Time `gorm:"not null" db:"-"`
}

type CredentialDAO struct {
	db *gorm.DB
}

func NewCredentialDAO(db *gorm.DB) *CredentialDAO {
	return &CredentialDAO{
		db: db,
	}
}

// Upsert inserts the credential or replaces the one already stored for the user.
func (d *CredentialDAO) Upsert(ctx context.Context, cred Credential) error {
	result := d.db.WithContext(ctx).Create(&cred)
	if result.Error == nil {
		return nil
	}

	var err *pgconn.PgError
	if !errors.As(result.Error, &err) || err.Code != pgerrcode.UniqueViolation {
		return result.Error
	}

	result = d.db.WithContext(ctx).Model(&Credential{}).
		Where("user_id = ?", cred.UserID).
		Updates(map[string]any{
			"token":      cred.Token,
			"role":       cred.Role,
			"user_name":  cred.UserName,
			"updated_at": time.Now(),
		})

	return result.Error
}

func (d *CredentialDAO) FindByUserID(ctx context.Context, userID int64) (Credential, error) {
	var cred Credential
	result := d.db.WithContext(ctx).First(&cred, "user_id = ?", userID)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Credential{}, ErrCredentialNotFound
		}

		return Credential{}, result.Error
	}

	return cred, nil
}

func (d *CredentialDAO) Delete(ctx context.Context, userID int64) error {
	return d.db.WithContext(ctx).Delete(&Credential{}, "user_id = ?", userID).Error
}
