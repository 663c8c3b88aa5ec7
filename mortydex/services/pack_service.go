package services

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mortydex/mortydex/mortydex/catalog"
	"github.com/mortydex/mortydex/mortydex/database/models"
	"github.com/mortydex/mortydex/mortydex/database/repositories"
)

// PackSize is the number of cards in one pack.
const PackSize = 5

// Rand is the random source used for character and rarity draws. math/rand's
// *Rand satisfies it; tests inject a scripted sequence.
type Rand interface {
	Intn(n int) int
}

// PackService draws packs of cards for a user's album.
type PackService struct {
	albums repositories.AlbumRepository
	cards  repositories.CardRepository
	client catalog.Client
	totals *catalog.Totals

	mu  sync.Mutex
	rng Rand
}

func NewPackService(
	albums repositories.AlbumRepository,
	cards repositories.CardRepository,
	client catalog.Client,
	totals *catalog.Totals,
	rng Rand,
) *PackService {
	return &PackService{
		albums: albums,
		cards:  cards,
		client: client,
		totals: totals,
		rng:    rng,
	}
}

// OpenPack draws five cards for the user's album and persists them as one
// atomic batch. Each draw is independent, so a pack can contain duplicate
// characters. Returns the cards in draw order.
func (s *PackService) OpenPack(ctx context.Context, userID int64) ([]*models.Card, error) {
	total := s.totals.Total()
	if total == 0 {
		return nil, newError(KindUnavailable, "character catalog not loaded yet, try again shortly")
	}

	album, err := s.albums.GetByUserID(ctx, userID)
	if err != nil {
		if repositories.IsNotFound(err) {
			return nil, wrapError(KindNotFound, err, "no album for user %d", userID)
		}
		return nil, err
	}

	// Draw character ids and rarity rolls first, in a fixed interleaved
	// order, so an injected source produces reproducible packs regardless of
	// how the catalog fetches below are scheduled.
	characterIDs := make([]int64, PackSize)
	rolls := make([]int, PackSize)
	s.mu.Lock()
	for i := 0; i < PackSize; i++ {
		characterIDs[i] = 1 + int64(s.rng.Intn(total))
		rolls[i] = s.rng.Intn(100)
	}
	s.mu.Unlock()

	characters := make([]*catalog.Character, PackSize)
	g, gctx := errgroup.WithContext(ctx)
	for i := range characterIDs {
		g.Go(func() error {
			character, err := s.client.GetCharacter(gctx, characterIDs[i])
			if err != nil {
				return err
			}
			characters[i] = character
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// No card is created without a successful lookup; the whole pack
		// aborts before anything is persisted.
		return nil, wrapError(KindUnavailable, err, "character catalog unavailable")
	}

	pack := make([]*models.Card, PackSize)
	for i, character := range characters {
		pack[i] = &models.Card{
			AlbumID:       album.ID,
			CharacterID:   character.ID,
			CharacterName: character.Name,
			Rarity:        RarityForStatus(character.Status, rolls[i]),
		}
	}

	if err := s.cards.CreateBatch(ctx, pack); err != nil {
		return nil, err
	}

	slog.Info("Pack opened",
		slog.String("type", "sys"),
		slog.Int64("user_id", userID),
		slog.Int64("album_id", album.ID))

	return pack, nil
}

// RarityForStatus maps a catalog status and a uniform roll in [0,100) to a
// rarity tier. Living characters are mostly common, dead ones skew rare, and
// anything else (the catalog reports "unknown") is always special.
func RarityForStatus(status string, roll int) models.Rarity {
	switch {
	case strings.EqualFold(status, "Alive"):
		if roll < 70 {
			return models.RarityCommon
		}
		return models.RarityRare
	case strings.EqualFold(status, "Dead"):
		if roll < 60 {
			return models.RarityRare
		}
		return models.RarityLegendary
	default:
		return models.RaritySpecial
	}
}
