package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"locacar/internal/apperrors"
	"locacar/internal/db"
)

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(database *sql.DB) *UserRepository {
	return &UserRepository{DB: database}
}

const userColumns = `id, username, password_hash, role, full_name, is_active, created_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*db.User, error) {
	var u db.User
	err := row.Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.FullName,
		&u.IsActive, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByUsername looks a user up for login. Returns nil, nil when no account
// exists so the caller can answer with a uniform invalid-credentials error.
func (r *UserRepository) GetByUsername(username string) (*db.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	u, err := scanUser(r.DB.QueryRow(query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error querying user by username: %w", err)
	}
	return u, nil
}

// ListManagers returns users with the manager role, ordered by username.
func (r *UserRepository) ListManagers() ([]db.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY username ASC`
	rows, err := r.DB.Query(query, "manager")
	if err != nil {
		return nil, fmt.Errorf("error querying managers: %w", err)
	}
	defer rows.Close()

	var users []db.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning manager: %w", err)
		}
		users = append(users, *u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error after iterating manager rows: %w", err)
	}
	return users, nil
}

func (r *UserRepository) GetManagerByID(id string) (*db.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND role = $2`
	u, err := scanUser(r.DB.QueryRow(query, id, "manager"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.New(apperrors.NotFound, "Manager not found.")
		}
		return nil, fmt.Errorf("error querying manager: %w", err)
	}
	return u, nil
}

func (r *UserRepository) Create(u *db.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.Exec(query,
		u.ID, u.Username, u.PasswordHash, u.Role, u.FullName,
		u.IsActive, u.CreatedAt, u.UpdatedAt,
	)
	return mapWriteError(err)
}

func (r *UserRepository) Save(u *db.User) error {
	query := `
		UPDATE users
		SET username = $2, password_hash = $3, full_name = $4, is_active = $5, updated_at = $6
		WHERE id = $1`
	res, err := r.DB.Exec(query, u.ID, u.Username, u.PasswordHash, u.FullName, u.IsActive, u.UpdatedAt)
	if err != nil {
		return mapWriteError(err)
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return apperrors.New(apperrors.NotFound, "Manager not found.")
	}
	return nil
}

func (r *UserRepository) DeleteManager(id string) error {
	res, err := r.DB.Exec(`DELETE FROM users WHERE id = $1 AND role = $2`, id, "manager")
	if err != nil {
		return fmt.Errorf("error deleting manager: %w", err)
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return apperrors.New(apperrors.NotFound, "Manager not found.")
	}
	return nil
}
