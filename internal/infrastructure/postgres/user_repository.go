package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/wareline/warehouse-api/internal/domain"
	"github.com/wareline/warehouse-api/internal/domain/entity"
	"github.com/wareline/warehouse-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, email, password_hash, name, phone, address, role, status, storage_mode, pallet_count, created_at, updated_at`

// UserRepo implements UserRepository over PostgreSQL (usable with pool or tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository builds the persistence adapter for accounts.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persists a new account.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, user.Name,
		nullIfEmpty(user.Phone), nullIfEmpty(user.Address),
		user.Role, user.Status, user.StorageMode, user.PalletCount,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID fetches an account by id; nil when absent.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get user by id")
}

// GetByEmail fetches an account by email; nil when absent.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, email), "get user by email")
}

// ListClients lists client accounts, optionally filtered by status. Deleted
// accounts are excluded unless the filter asks for them.
func (r *UserRepo) ListClients(status string, limit, offset int) ([]*entity.User, error) {
	if limit <= 0 {
		limit = 100
	}
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE role = $1 AND ($2 = '' AND status <> 'deleted' OR status = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, entity.RoleClient, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// ListApprovedClients returns every approved client account.
func (r *UserRepo) ListApprovedClients() ([]*entity.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE role = $1 AND status = $2
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, entity.RoleClient, entity.StatusApproved)
	if err != nil {
		return nil, fmt.Errorf("list approved clients: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// UpdateStatus changes an account's approval state.
func (r *UserRepo) UpdateStatus(id, status string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE users SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update user status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Update rewrites the mutable profile fields.
func (r *UserRepo) Update(user *entity.User) error {
	query := `
		UPDATE users
		SET email = $2, password_hash = $3, name = $4, phone = $5, address = $6,
		    status = $7, storage_mode = $8, pallet_count = $9, updated_at = $10
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Email, user.PasswordHash, user.Name,
		nullIfEmpty(user.Phone), nullIfEmpty(user.Address),
		user.Status, user.StorageMode, user.PalletCount, user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

func (r *UserRepo) scanOne(row pgx.Row, op string) (*entity.User, error) {
	var u entity.User
	var phone, address *string
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &phone, &address,
		&u.Role, &u.Status, &u.StorageMode, &u.PalletCount,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	u.Phone = deref(phone)
	u.Address = deref(address)
	return &u, nil
}

func (r *UserRepo) scanAll(rows pgx.Rows) ([]*entity.User, error) {
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		var phone, address *string
		if err := rows.Scan(
			&u.ID, &u.Email, &u.PasswordHash, &u.Name, &phone, &address,
			&u.Role, &u.Status, &u.StorageMode, &u.PalletCount,
			&u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		u.Phone = deref(phone)
		u.Address = deref(address)
		list = append(list, &u)
	}
	return list, rows.Err()
}

func deref(p *string) string {
	if p != nil {
		return *p
	}
	return ""
}
