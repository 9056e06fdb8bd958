package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/punchline/punchline-api/internal/core/domain"
	"github.com/punchline/punchline-api/internal/core/ports"
)

// UserRepository implements ports.UserRepository on PostgreSQL. Roles are
// stored as their numeric codes; the conversion happens only here.
type UserRepository struct {
	db DB
}

func NewUserRepository(db DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByID(ctx context.Context, id int) (*domain.User, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row, "find user by id")
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findByField(ctx, ports.UserFieldUsername, username)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findByField(ctx, ports.UserFieldEmail, email)
}

func (r *UserRepository) findByField(ctx context.Context, field ports.UserField, value string) (*domain.User, error) {
	q, err := findQuery(field)
	if err != nil {
		return nil, err
	}
	return scanUser(r.db.QueryRow(ctx, q, value), "find user by "+string(field))
}

// ExistsByField reports whether any row matches the field exactly.
func (r *UserRepository) ExistsByField(ctx context.Context, field ports.UserField, value string) (bool, error) {
	q, err := existsQuery(field)
	if err != nil {
		return false, err
	}

	var exists bool
	if err := r.db.QueryRow(ctx, q, value).Scan(&exists); err != nil {
		return false, fmt.Errorf("existence check on %s: %w", field, err)
	}
	return exists, nil
}

// Insert stores a new user and returns the assigned id. A unique-constraint
// violation, the losing side of a registration race, maps to
// domain.ErrUserExists.
func (r *UserRepository) Insert(ctx context.Context, user *domain.User) (int, error) {
	var id int
	err := r.db.QueryRow(ctx, `
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, user.Username, user.Email, user.PasswordHash, user.Role.Code()).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return 0, domain.ErrUserExists
		}
		return 0, fmt.Errorf("insert user: %w", err)
	}
	return id, nil
}

func (r *UserRepository) UpdateRole(ctx context.Context, id int, role domain.Role) error {
	tag, err := r.db.Exec(ctx, `UPDATE users SET role = $1 WHERE id = $2`, role.Code(), id)
	if err != nil {
		return fmt.Errorf("update role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// SearchByUsername matches usernames against a case-insensitive regular
// expression pattern.
func (r *UserRepository) SearchByUsername(ctx context.Context, pattern string) ([]domain.User, error) {
	rows, err := r.db.Query(ctx, `SELECT `+userColumns+` FROM users WHERE username ~* $1 ORDER BY id`, pattern)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUserRow(rows)
		if err != nil {
			return nil, fmt.Errorf("search users: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return users, nil
}

func scanUser(row pgx.Row, op string) (*domain.User, error) {
	user, err := scanUserRow(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

func scanUserRow(row pgx.Row) (*domain.User, error) {
	var user domain.User
	var roleCode int
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &roleCode); err != nil {
		return nil, err
	}
	user.Role = domain.RoleFromCode(roleCode)
	return &user, nil
}
