package pgsql

import (
	"context"

	"github.com/SscSPs/manna/internal/core/domain"
	portsrepo "github.com/SscSPs/manna/internal/core/ports/repositories"
	"github.com/SscSPs/manna/internal/models"
	"github.com/SscSPs/manna/internal/utils/mapping"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &PgxUserRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (user_id, email, name, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.UserID,
		m.Email,
		m.Name,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	return mapDBError(err, "failed to save user")
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT user_id, email, name, created_at, created_by, last_updated_at, last_updated_by
		FROM users
		WHERE user_id = $1;
	`
	var m models.User
	err := r.Pool.QueryRow(ctx, query, userID).Scan(
		&m.UserID,
		&m.Email,
		&m.Name,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, notFoundOr(err, "user", userID)
	}

	user := mapping.ToDomainUser(m)
	return &user, nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		UPDATE users
		SET email = $1, name = $2, last_updated_at = $3, last_updated_by = $4
		WHERE user_id = $5;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Email,
		m.Name,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		m.UserID,
	)
	if err != nil {
		return mapDBError(err, "failed to update user "+m.UserID)
	}
	return expectOneRow(tag, "user", m.UserID)
}
