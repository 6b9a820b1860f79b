// Copyright (c) 2026 Medialib. All rights reserved.
// Author: numaochi.dev@gmail.com

package auth

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/numaochi/medialib/internal/platform/dberr"
)

// PostgresUserRepository implements [UserRepository] on pgx.
type PostgresUserRepository struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepository(db *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (repository *PostgresUserRepository) FindByUsername(ctx context.Context, username string) (*User, error) {
	user := &User{}
	err := repository.db.QueryRow(ctx, `
		SELECT id, username, password_hash FROM users WHERE username = $1
	`, username).Scan(&user.ID, &user.Username, &user.PasswordHash)
	if err != nil {
		if dberr.IsNoRows(err) {
			return nil, nil
		}
		return nil, dberr.Wrap(err, "find_user_by_username")
	}

	return user, nil
}

func (repository *PostgresUserRepository) CreateUser(ctx context.Context, user *User) error {
	err := repository.db.QueryRow(ctx, `
		INSERT INTO users (username, password_hash) VALUES ($1, $2) RETURNING id
	`, user.Username, user.PasswordHash).Scan(&user.ID)
	return dberr.Wrap(err, "create_user")
}
