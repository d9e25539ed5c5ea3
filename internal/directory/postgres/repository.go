// Package postgres provides the PostgreSQL implementation of the directory
// repository.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/abijith/user-directory/internal/directory"
	"github.com/abijith/user-directory/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	uniqueViolationCode       = "23505"
	invalidTextRepresentation = "22P02"
)

const userColumns = `id, email, first_name, last_name, phone, custom_attributes, enabled, roles, created_at, updated_at`

// Repository implements directory.Repository using PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user and fills in the generated id. A unique
// violation on the enabled-email index is reported as ErrEmailExists.
func (r *Repository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (email, first_name, last_name, phone, custom_attributes, enabled, roles, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query,
		user.Email,
		user.FirstName,
		user.LastName,
		user.Phone,
		user.CustomAttributes,
		user.Enabled,
		rolesToStrings(user.Roles),
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return directory.ErrEmailExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// Update overwrites the mutable columns of an existing user. Re-enabling a
// user whose email has since been claimed by another enabled user trips the
// enabled-email index and is reported as ErrEmailExists.
func (r *Repository) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET first_name = $2, last_name = $3, phone = $4, custom_attributes = $5, enabled = $6, updated_at = $7
		WHERE id = $1
	`
	result, err := r.db.Exec(ctx, query,
		user.ID,
		user.FirstName,
		user.LastName,
		user.Phone,
		user.CustomAttributes,
		user.Enabled,
		user.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case uniqueViolationCode:
				return directory.ErrEmailExists
			case invalidTextRepresentation:
				return directory.ErrUserNotFound
			}
		}
		return fmt.Errorf("update user: %w", err)
	}

	if result.RowsAffected() == 0 {
		return directory.ErrUserNotFound
	}
	return nil
}

// GetByID retrieves an enabled user by id. An id that is not a valid UUID
// cannot address any row and is reported as not found rather than failing
// to encode against the UUID-typed column.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if !isUUID(id) {
		return nil, directory.ErrUserNotFound
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND enabled`
	return r.queryOne(ctx, query, id)
}

// GetByEmail retrieves an enabled user by email.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND enabled`
	return r.queryOne(ctx, query, email)
}

// GetByIDAny retrieves a user by id regardless of the enabled flag.
func (r *Repository) GetByIDAny(ctx context.Context, id string) (*domain.User, error) {
	if !isUUID(id) {
		return nil, directory.ErrUserNotFound
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.queryOne(ctx, query, id)
}

// ListEnabled returns one page of enabled users ordered ascending by
// params.SortBy, plus the total enabled count. The sort field is interpolated
// into the query and must already be validated against a whitelist.
func (r *Repository) ListEnabled(ctx context.Context, params directory.ListParams) ([]domain.User, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM users WHERE enabled`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT %s FROM users WHERE enabled ORDER BY %s ASC LIMIT $1 OFFSET $2`,
		userColumns, params.SortBy,
	)
	users, err := r.queryMany(ctx, query, params.Size, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// SearchFirstName returns enabled users whose first name matches the
// case-insensitive regex pattern.
func (r *Repository) SearchFirstName(ctx context.Context, pattern string) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE enabled AND first_name ~* $1 ORDER BY id`
	return r.queryMany(ctx, query, pattern)
}

// SearchLastName returns enabled users whose last name matches the
// case-insensitive regex pattern.
func (r *Repository) SearchLastName(ctx context.Context, pattern string) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE enabled AND last_name ~* $1 ORDER BY id`
	return r.queryMany(ctx, query, pattern)
}

// SearchEmail returns enabled users whose email matches the case-insensitive
// regex pattern.
func (r *Repository) SearchEmail(ctx context.Context, pattern string) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE enabled AND email ~* $1 ORDER BY id`
	return r.queryMany(ctx, query, pattern)
}

func (r *Repository) queryOne(ctx context.Context, query string, args ...any) (*domain.User, error) {
	var user domain.User
	var roles []string

	err := r.db.QueryRow(ctx, query, args...).Scan(
		&user.ID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Phone,
		&user.CustomAttributes,
		&user.Enabled,
		&roles,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, directory.ErrUserNotFound
		}
		// The id column is UUID typed; a lookup with a malformed id fails to
		// cast (22P02) and means the record cannot exist.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == invalidTextRepresentation {
			return nil, directory.ErrUserNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	user.Roles = rolesFromStrings(roles)
	return &user, nil
}

func (r *Repository) queryMany(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0)
	for rows.Next() {
		var user domain.User
		var roles []string
		err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.FirstName,
			&user.LastName,
			&user.Phone,
			&user.CustomAttributes,
			&user.Enabled,
			&roles,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		user.Roles = rolesFromStrings(roles)
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate users: %w", err)
	}
	return users, nil
}

// isUUID reports whether s can address the UUID-typed id column.
func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

func rolesToStrings(roles []domain.Role) []string {
	out := make([]string, len(roles))
	for i, role := range roles {
		out[i] = string(role)
	}
	return out
}

func rolesFromStrings(roles []string) []domain.Role {
	out := make([]domain.Role, len(roles))
	for i, role := range roles {
		out[i] = domain.Role(role)
	}
	return out
}
