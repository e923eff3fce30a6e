package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/editorial-api/internal/domain"
	"github.com/jhoicas/editorial-api/internal/domain/entity"
	"github.com/jhoicas/editorial-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
// Las cuentas no participan en transacciones de negocio, así que usa el pool directo.
type UserRepo struct {
	pool *pgxpool.Pool
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Create persiste un nuevo usuario y asigna el ID generado.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (username, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	err := r.pool.QueryRow(context.Background(), query,
		user.Username, user.PasswordHash, user.Role, user.CreatedAt,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(id int64) (*entity.User, error) {
	query := `
		SELECT id, username, password_hash, role, created_at
		FROM users WHERE id = $1`
	var u entity.User
	err := r.pool.QueryRow(context.Background(), query, id).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}
	return &u, nil
}

// FindByUsername obtiene un usuario por nombre de usuario.
func (r *UserRepo) FindByUsername(username string) (*entity.User, error) {
	query := `
		SELECT id, username, password_hash, role, created_at
		FROM users WHERE username = $1 LIMIT 1`
	var u entity.User
	err := r.pool.QueryRow(context.Background(), query, username).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}
	return &u, nil
}

// UpdatePassword reemplaza el hash de contraseña del usuario.
func (r *UserRepo) UpdatePassword(id int64, passwordHash string) error {
	_, err := r.pool.Exec(context.Background(),
		`UPDATE users SET password_hash = $2 WHERE id = $1`,
		id, passwordHash,
	)
	if err != nil {
		return fmt.Errorf("update user password: %w", err)
	}
	return nil
}
