package services

import (
	"context"
	"math"

	"github.com/mortydex/mortydex/mortydex/catalog"
	"github.com/mortydex/mortydex/mortydex/database/models"
	"github.com/mortydex/mortydex/mortydex/database/repositories"
)

// DuplicateKey identifies a group of interchangeable copies: same character,
// same rarity. A Rick in COMMON and a Rick in RARE are different groups.
type DuplicateKey struct {
	CharacterName string
	Rarity        models.Rarity
}

// AlbumDetail is the fully computed view of one user's album.
type AlbumDetail struct {
	AlbumID    int64
	Cards      []*models.Card
	Duplicates map[DuplicateKey]int
	Progress   float64
}

// AlbumService derives completion progress and duplicate accounting from an
// album's current card set.
type AlbumService struct {
	albums repositories.AlbumRepository
	totals *catalog.Totals
}

func NewAlbumService(albums repositories.AlbumRepository, totals *catalog.Totals) *AlbumService {
	return &AlbumService{albums: albums, totals: totals}
}

// Progress returns the completion percentage in [0,100], rounded half-up to
// two decimals. Duplicate copies of a character count once. An unloaded
// catalog total yields 0.0 by definition, not an error.
func (s *AlbumService) Progress(ctx context.Context, userID int64) (float64, error) {
	album, err := s.getAlbum(ctx, userID)
	if err != nil {
		return 0, err
	}

	total := s.totals.Total()
	if total == 0 {
		return 0, nil
	}

	distinct, err := s.albums.CountDistinctCharacters(ctx, album.ID)
	if err != nil {
		return 0, err
	}

	percentage := float64(distinct) / float64(total) * 100.0
	return math.Round(percentage*100) / 100, nil
}

// DuplicateReport maps each (character, rarity) group with more than one copy
// to its count of extra copies. Groups of one are omitted; the first copy is
// never a duplicate.
func (s *AlbumService) DuplicateReport(ctx context.Context, userID int64) (map[DuplicateKey]int, error) {
	album, err := s.getAlbum(ctx, userID)
	if err != nil {
		return nil, err
	}

	cards, err := s.albums.GetCards(ctx, album.ID)
	if err != nil {
		return nil, err
	}
	return duplicatesOf(cards), nil
}

// Detail returns the card list, duplicate counts and progress in one view.
func (s *AlbumService) Detail(ctx context.Context, userID int64) (*AlbumDetail, error) {
	album, err := s.getAlbum(ctx, userID)
	if err != nil {
		return nil, err
	}

	cards, err := s.albums.GetCards(ctx, album.ID)
	if err != nil {
		return nil, err
	}

	progress, err := s.Progress(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &AlbumDetail{
		AlbumID:    album.ID,
		Cards:      cards,
		Duplicates: duplicatesOf(cards),
		Progress:   progress,
	}, nil
}

func (s *AlbumService) getAlbum(ctx context.Context, userID int64) (*models.Album, error) {
	album, err := s.albums.GetByUserID(ctx, userID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, wrapError(KindNotFound, err, "no album for user %d", userID)
		}
		return nil, err
	}
	return album, nil
}

func duplicatesOf(cards []*models.Card) map[DuplicateKey]int {
	counts := make(map[DuplicateKey]int)
	for _, card := range cards {
		counts[DuplicateKey{CharacterName: card.CharacterName, Rarity: card.Rarity}]++
	}

	duplicates := make(map[DuplicateKey]int)
	for key, count := range counts {
		if count > 1 {
			duplicates[key] = count - 1
		}
	}
	return duplicates
}
