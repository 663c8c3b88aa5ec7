package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mortydex/mortydex/mortydex/database/models"
	"github.com/uptrace/bun"
)

type UserRepository interface {
	// CreateWithAlbum persists a new user together with their album in one
	// transaction. A duplicate email yields a ConflictError.
	CreateWithAlbum(ctx context.Context, user *models.User) (*models.Album, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetAll(ctx context.Context) ([]*models.User, error)
	Update(ctx context.Context, user *models.User) error
	// Delete removes the user, their album and every card in it.
	Delete(ctx context.Context, id int64) error
}

type userRepository struct {
	*BaseRepository
}

func NewUserRepository(db *bun.DB) UserRepository {
	return &userRepository{BaseRepository: NewBaseRepository(db)}
}

func (r *userRepository) CreateWithAlbum(ctx context.Context, user *models.User) (*models.Album, error) {
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	album := new(models.Album)
	err := r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewInsert().Model(user).Exec(ctx); err != nil {
			return err
		}

		album.UserID = user.ID
		album.CreatedAt = time.Now()
		album.UpdatedAt = time.Now()
		if _, err := tx.NewInsert().Model(album).Exec(ctx); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &ConflictError{Entity: "user", Field: "email", Value: user.Email}
		}
		return nil, fmt.Errorf("failed to create user with album: %w", err)
	}

	slog.Debug("User created",
		slog.String("type", "db"),
		slog.Int64("user_id", user.ID),
		slog.Int64("album_id", album.ID))

	return album, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user := new(models.User)
	err := r.db.NewSelect().
		Model(user).
		Where("id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, r.HandleErrorWithID("get", "user", id, err)
	}
	return user, nil
}

func (r *userRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	err := r.db.NewSelect().
		Model(&users).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *userRepository) Update(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	res, err := r.db.NewUpdate().
		Model(user).
		Column("name", "email", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		if isUniqueViolation(err) {
			return &ConflictError{Entity: "user", Field: "email", Value: user.Email}
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return &NotFoundError{Entity: "user", ID: user.ID}
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, id int64) error {
	return r.Transaction(ctx, func(ctx context.Context, tx bun.Tx) error {
		// Proposals the user is party to go first, so no trade row is left
		// pointing at a deleted user or card.
		if _, err := tx.NewDelete().
			Model((*models.TradeProposal)(nil)).
			Where("offerer_id = ? OR receiver_id = ?", id, id).
			Exec(ctx); err != nil {
			return fmt.Errorf("failed to delete trade proposals: %w", err)
		}

		album := new(models.Album)
		err := tx.NewSelect().
			Model(album).
			Where("user_id = ?", id).
			Scan(ctx)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to load album for user %d: %w", id, err)
		}

		if err == nil {
			if _, err := tx.NewDelete().
				Model((*models.Card)(nil)).
				Where("album_id = ?", album.ID).
				Exec(ctx); err != nil {
				return fmt.Errorf("failed to delete cards: %w", err)
			}
			if _, err := tx.NewDelete().
				Model(album).
				WherePK().
				Exec(ctx); err != nil {
				return fmt.Errorf("failed to delete album: %w", err)
			}
		}

		res, err := tx.NewDelete().
			Model((*models.User)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			return &NotFoundError{Entity: "user", ID: id}
		}
		return nil
	})
}
