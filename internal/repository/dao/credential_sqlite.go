package dao

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

const credentialSchema = `
CREATE TABLE IF NOT EXISTS credentials(
  user_id INTEGER PRIMARY KEY,
  token TEXT NOT NULL,
  role TEXT NOT NULL,
  user_name TEXT NOT NULL,
  updated_at TEXT
);`

// SQLiteCredentialDAO stores credentials in a local sqlite file for single-node setups.
type SQLiteCredentialDAO struct{ db *sqlx.DB }

func NewSQLiteCredentialDAO(db *sqlx.DB) *SQLiteCredentialDAO { return &SQLiteCredentialDAO{db: db} }

func (d *SQLiteCredentialDAO) EnsureSchema(ctx context.Context) error {
	_, err := d.db.ExecContext(ctx, credentialSchema)
	return err
}

func (d *SQLiteCredentialDAO) Upsert(ctx context.Context, cred Credential) error {
	_, err := d.db.ExecContext(ctx, `
	  INSERT INTO credentials(user_id, token, role, user_name, updated_at)
	  VALUES(?, ?, ?, ?, ?)
	  ON CONFLICT(user_id) DO UPDATE SET
	    token=excluded.token, role=excluded.role,
	    user_name=excluded.user_name, updated_at=excluded.updated_at
	`, cred.UserID, cred.Token, cred.Role, cred.UserName, time.Now().Format(time.RFC3339))
	return err
}

func (d *SQLiteCredentialDAO) FindByUserID(ctx context.Context, userID int64) (Credential, error) {
	var cred Credential
	err := d.db.GetContext(ctx, &cred,
		`SELECT user_id, token, role, user_name FROM credentials WHERE user_id=?`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return Credential{}, ErrCredentialNotFound
	}
	return cred, err
}

func (d *SQLiteCredentialDAO) Delete(ctx context.Context, userID int64) error {
	_, err := d.db.ExecContext(ctx, `DELETE FROM credentials WHERE user_id=?`, userID)
	return err
}
