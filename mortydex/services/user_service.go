package services

import (
	"context"
	"strings"

	"github.com/mortydex/mortydex/mortydex/database/models"
	"github.com/mortydex/mortydex/mortydex/database/repositories"
)

// UserService manages user accounts. Every user owns exactly one album,
// created in the same transaction as the user itself.
type UserService struct {
	users  repositories.UserRepository
	albums repositories.AlbumRepository
}

func NewUserService(users repositories.UserRepository, albums repositories.AlbumRepository) *UserService {
	return &UserService{users: users, albums: albums}
}

// UserWithAlbum pairs a user with their album id for listing and detail
// views without exposing a live back-reference.
type UserWithAlbum struct {
	User    *models.User `json:"user"`
	AlbumID int64        `json:"album_id"`
}

func (s *UserService) Create(ctx context.Context, name, email string) (*UserWithAlbum, error) {
	if err := validateUserInput(name, email); err != nil {
		return nil, err
	}

	user := &models.User{Name: name, Email: email}
	album, err := s.users.CreateWithAlbum(ctx, user)
	if err != nil {
		if repositories.IsConflict(err) {
			return nil, wrapError(KindConflict, err, "email %q is already registered", email)
		}
		return nil, err
	}
	return &UserWithAlbum{User: user, AlbumID: album.ID}, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*UserWithAlbum, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, wrapError(KindNotFound, err, "user %d not found", id)
		}
		return nil, err
	}

	album, err := s.albums.GetByUserID(ctx, id)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, wrapError(KindNotFound, err, "no album for user %d", id)
		}
		return nil, err
	}
	return &UserWithAlbum{User: user, AlbumID: album.ID}, nil
}

func (s *UserService) Update(ctx context.Context, id int64, name, email string) (*models.User, error) {
	if err := validateUserInput(name, email); err != nil {
		return nil, err
	}

	user := &models.User{ID: id, Name: name, Email: email}
	if err := s.users.Update(ctx, user); err != nil {
		switch {
		case repositories.IsNotFound(err):
			return nil, wrapError(KindNotFound, err, "user %d not found", id)
		case repositories.IsConflict(err):
			return nil, wrapError(KindConflict, err, "email %q is already registered", email)
		default:
			return nil, err
		}
	}
	return user, nil
}

// Delete removes the user together with their album and cards.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if repositories.IsNotFound(err) {
			return wrapError(KindNotFound, err, "user %d not found", id)
		}
		return err
	}
	return nil
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.users.GetAll(ctx)
}

func validateUserInput(name, email string) error {
	if strings.TrimSpace(name) == "" {
		return newError(KindInvalidArgument, "name must not be empty")
	}
	if !strings.Contains(email, "@") {
		return newError(KindInvalidArgument, "email %q is not valid", email)
	}
	return nil
}
