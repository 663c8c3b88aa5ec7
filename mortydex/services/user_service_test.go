package services

import (
	"context"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/mortydex/mortydex/mortydex/database/models"
	"github.com/mortydex/mortydex/mortydex/database/repositories"
	repomock "github.com/mortydex/mortydex/mortydex/database/repositories/mock"
)

func newUserService(t *testing.T) (*UserService, *repomock.MockUserRepository, *repomock.MockAlbumRepository) {
	ctrl := gomock.NewController(t)
	users := repomock.NewMockUserRepository(ctrl)
	albums := repomock.NewMockAlbumRepository(ctrl)
	return NewUserService(users, albums), users, albums
}

func TestUserService_Create(t *testing.T) {
	s, users, _ := newUserService(t)

	users.EXPECT().
		CreateWithAlbum(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user *models.User) (*models.Album, error) {
			user.ID = 1
			return &models.Album{ID: 10, UserID: 1}, nil
		})

	got, err := s.Create(context.Background(), "Rick Sanchez", "rick@citadel.dev")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if got.User.ID != 1 || got.User.Name != "Rick Sanchez" {
		t.Errorf("Create() user = %+v", got.User)
	}
	if got.AlbumID != 10 {
		t.Errorf("Create() album id = %d, want 10", got.AlbumID)
	}
}

func TestUserService_Create_Validation(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
	}{
		{name: "empty name", userName: "", email: "rick@citadel.dev"},
		{name: "blank name", userName: "   ", email: "rick@citadel.dev"},
		{name: "email without at sign", userName: "Rick", email: "rick.citadel.dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// No repository expectations: validation fails first.
			s, _, _ := newUserService(t)
			_, err := s.Create(context.Background(), tt.userName, tt.email)
			if !IsInvalidArgument(err) {
				t.Errorf("Create() error = %v, want invalid argument", err)
			}
		})
	}
}

func TestUserService_Create_DuplicateEmail(t *testing.T) {
	s, users, _ := newUserService(t)

	users.EXPECT().
		CreateWithAlbum(gomock.Any(), gomock.Any()).
		Return(nil, &repositories.ConflictError{Entity: "user", Field: "email", Value: "rick@citadel.dev"})

	_, err := s.Create(context.Background(), "Rick", "rick@citadel.dev")
	if !IsConflict(err) {
		t.Errorf("Create() error = %v, want conflict", err)
	}
}

func TestUserService_Get(t *testing.T) {
	s, users, albums := newUserService(t)

	users.EXPECT().GetByID(gomock.Any(), int64(1)).Return(&models.User{ID: 1, Name: "Rick"}, nil)
	albums.EXPECT().GetByUserID(gomock.Any(), int64(1)).Return(&models.Album{ID: 10, UserID: 1}, nil)

	got, err := s.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.User.Name != "Rick" || got.AlbumID != 10 {
		t.Errorf("Get() = %+v", got)
	}
}

func TestUserService_Get_NotFound(t *testing.T) {
	s, users, _ := newUserService(t)

	users.EXPECT().
		GetByID(gomock.Any(), int64(9)).
		Return(nil, &repositories.NotFoundError{Entity: "user", ID: int64(9)})

	_, err := s.Get(context.Background(), 9)
	if !IsNotFound(err) {
		t.Errorf("Get() error = %v, want not found", err)
	}
}

func TestUserService_Update(t *testing.T) {
	s, users, _ := newUserService(t)

	users.EXPECT().Update(gomock.Any(), gomock.Any()).Return(nil)

	got, err := s.Update(context.Background(), 1, "Rick Prime", "prime@citadel.dev")
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got.ID != 1 || got.Name != "Rick Prime" || got.Email != "prime@citadel.dev" {
		t.Errorf("Update() = %+v", got)
	}
}

func TestUserService_Update_NotFound(t *testing.T) {
	s, users, _ := newUserService(t)

	users.EXPECT().
		Update(gomock.Any(), gomock.Any()).
		Return(&repositories.NotFoundError{Entity: "user", ID: int64(9)})

	_, err := s.Update(context.Background(), 9, "Rick", "rick@citadel.dev")
	if !IsNotFound(err) {
		t.Errorf("Update() error = %v, want not found", err)
	}
}

func TestUserService_Delete_NotFound(t *testing.T) {
	s, users, _ := newUserService(t)

	users.EXPECT().
		Delete(gomock.Any(), int64(9)).
		Return(&repositories.NotFoundError{Entity: "user", ID: int64(9)})

	err := s.Delete(context.Background(), 9)
	if !IsNotFound(err) {
		t.Errorf("Delete() error = %v, want not found", err)
	}
}

func TestUserService_List(t *testing.T) {
	s, users, _ := newUserService(t)

	want := []*models.User{{ID: 1, Name: "Rick"}, {ID: 2, Name: "Morty"}}
	users.EXPECT().GetAll(gomock.Any()).Return(want, nil)

	got, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 || got[0].Name != "Rick" || got[1].Name != "Morty" {
		t.Errorf("List() = %+v", got)
	}
}
