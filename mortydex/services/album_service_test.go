package services

import (
	"context"
	"reflect"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/mortydex/mortydex/mortydex/catalog"
	"github.com/mortydex/mortydex/mortydex/database/models"
	"github.com/mortydex/mortydex/mortydex/database/repositories"
	repomock "github.com/mortydex/mortydex/mortydex/database/repositories/mock"
)

func TestAlbumService_Progress(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		distinct int
		want     float64
	}{
		{name: "half complete", total: 826, distinct: 413, want: 50.0},
		{name: "single character rounds down", total: 826, distinct: 1, want: 0.12},
		{name: "repeating fraction", total: 3, distinct: 1, want: 33.33},
		{name: "exact half rounds up", total: 800, distinct: 1, want: 0.13},
		{name: "complete album", total: 826, distinct: 826, want: 100.0},
		{name: "empty album", total: 826, distinct: 0, want: 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			albums := repomock.NewMockAlbumRepository(ctrl)
			albums.EXPECT().
				GetByUserID(gomock.Any(), int64(1)).
				Return(&models.Album{ID: 10, UserID: 1}, nil)
			albums.EXPECT().
				CountDistinctCharacters(gomock.Any(), int64(10)).
				Return(tt.distinct, nil)

			s := NewAlbumService(albums, loadedTotals(t, tt.total))
			got, err := s.Progress(context.Background(), 1)
			if err != nil {
				t.Fatalf("Progress() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Progress() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAlbumService_Progress_TotalNotLoaded(t *testing.T) {
	ctrl := gomock.NewController(t)
	albums := repomock.NewMockAlbumRepository(ctrl)
	albums.EXPECT().
		GetByUserID(gomock.Any(), int64(1)).
		Return(&models.Album{ID: 10, UserID: 1}, nil)

	// CountDistinctCharacters has no expectation: with no total there is
	// nothing to divide by and the query is skipped.
	s := NewAlbumService(albums, catalog.NewTotals())
	got, err := s.Progress(context.Background(), 1)
	if err != nil {
		t.Fatalf("Progress() error = %v", err)
	}
	if got != 0.0 {
		t.Errorf("Progress() = %v, want 0.0", got)
	}
}

func TestAlbumService_Progress_NoAlbum(t *testing.T) {
	ctrl := gomock.NewController(t)
	albums := repomock.NewMockAlbumRepository(ctrl)
	albums.EXPECT().
		GetByUserID(gomock.Any(), int64(5)).
		Return(nil, &repositories.NotFoundError{Entity: "album", ID: int64(5)})

	s := NewAlbumService(albums, loadedTotals(t, 826))
	_, err := s.Progress(context.Background(), 5)
	if !IsNotFound(err) {
		t.Errorf("Progress() error = %v, want not found", err)
	}
}

func TestAlbumService_DuplicateReport(t *testing.T) {
	cards := []*models.Card{
		{ID: 1, CharacterName: "Rick Sanchez", Rarity: models.RarityCommon},
		{ID: 2, CharacterName: "Rick Sanchez", Rarity: models.RarityCommon},
		{ID: 3, CharacterName: "Rick Sanchez", Rarity: models.RarityCommon},
		{ID: 4, CharacterName: "Rick Sanchez", Rarity: models.RarityRare},
		{ID: 5, CharacterName: "Morty Smith", Rarity: models.RarityCommon},
		{ID: 6, CharacterName: "Birdperson", Rarity: models.RaritySpecial},
		{ID: 7, CharacterName: "Birdperson", Rarity: models.RaritySpecial},
	}

	ctrl := gomock.NewController(t)
	albums := repomock.NewMockAlbumRepository(ctrl)
	albums.EXPECT().
		GetByUserID(gomock.Any(), int64(1)).
		Return(&models.Album{ID: 10, UserID: 1}, nil)
	albums.EXPECT().
		GetCards(gomock.Any(), int64(10)).
		Return(cards, nil)

	s := NewAlbumService(albums, loadedTotals(t, 826))
	got, err := s.DuplicateReport(context.Background(), 1)
	if err != nil {
		t.Fatalf("DuplicateReport() error = %v", err)
	}

	// Same character at a different rarity is its own group, and groups of
	// one never appear.
	want := map[DuplicateKey]int{
		{CharacterName: "Rick Sanchez", Rarity: models.RarityCommon}: 2,
		{CharacterName: "Birdperson", Rarity: models.RaritySpecial}:  1,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("DuplicateReport() = %v, want %v", got, want)
	}
}

func TestAlbumService_Detail(t *testing.T) {
	cards := []*models.Card{
		{ID: 1, CharacterID: 1, CharacterName: "Rick Sanchez", Rarity: models.RarityCommon},
		{ID: 2, CharacterID: 1, CharacterName: "Rick Sanchez", Rarity: models.RarityCommon},
		{ID: 3, CharacterID: 2, CharacterName: "Morty Smith", Rarity: models.RarityRare},
	}

	ctrl := gomock.NewController(t)
	albums := repomock.NewMockAlbumRepository(ctrl)
	albums.EXPECT().
		GetByUserID(gomock.Any(), int64(1)).
		Return(&models.Album{ID: 10, UserID: 1}, nil).
		Times(2)
	albums.EXPECT().
		GetCards(gomock.Any(), int64(10)).
		Return(cards, nil)
	albums.EXPECT().
		CountDistinctCharacters(gomock.Any(), int64(10)).
		Return(2, nil)

	s := NewAlbumService(albums, loadedTotals(t, 826))
	detail, err := s.Detail(context.Background(), 1)
	if err != nil {
		t.Fatalf("Detail() error = %v", err)
	}

	if detail.AlbumID != 10 {
		t.Errorf("Detail().AlbumID = %d, want 10", detail.AlbumID)
	}
	if len(detail.Cards) != 3 {
		t.Errorf("Detail() returned %d cards, want 3", len(detail.Cards))
	}
	if detail.Progress != 0.24 {
		t.Errorf("Detail().Progress = %v, want 0.24", detail.Progress)
	}
	wantDuplicates := map[DuplicateKey]int{
		{CharacterName: "Rick Sanchez", Rarity: models.RarityCommon}: 1,
	}
	if !reflect.DeepEqual(detail.Duplicates, wantDuplicates) {
		t.Errorf("Detail().Duplicates = %v, want %v", detail.Duplicates, wantDuplicates)
	}
}
