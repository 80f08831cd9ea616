package localauth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/ncruces/go-sqlite3"
)

// ErrEmailTaken is returned when an account with the same email exists.
// Emails compare case-insensitively.
var ErrEmailTaken = errors.New("email already registered")

// Account is a stored account without its password hash.
type Account struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type accountRepository struct {
	db *sql.DB
}

func newAccountRepository(db *sql.DB) *accountRepository {
	return &accountRepository{db: db}
}

// Create inserts a new account.
func (r *accountRepository) Create(ctx context.Context, a Account, passwordHash []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO accounts (id, name, email, password_hash, role, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		a.ID, a.Name, a.Email, string(passwordHash), a.Role, a.CreatedAt.Unix(),
	)
	if err != nil {
		if errors.Is(err, sqlite3.CONSTRAINT_UNIQUE) {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

// List returns every account, oldest first.
func (r *accountRepository) List(ctx context.Context) ([]Account, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, email, role, created_at FROM accounts ORDER BY created_at, rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	accounts := []Account{}
	for rows.Next() {
		var a Account
		var createdAt int64
		if err := rows.Scan(&a.ID, &a.Name, &a.Email, &a.Role, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		a.CreatedAt = time.Unix(createdAt, 0).UTC()
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}
	return accounts, nil
}
