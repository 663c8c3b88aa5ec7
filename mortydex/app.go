// Package mortydex wires the sticker-album application together: config,
// database, the character catalog, and the domain services.
package mortydex

import (
	"math/rand"
	"time"

	"github.com/mortydex/mortydex/mortydex/catalog"
	"github.com/mortydex/mortydex/mortydex/database"
	"github.com/mortydex/mortydex/mortydex/database/repositories"
	"github.com/mortydex/mortydex/mortydex/services"
)

type App struct {
	Cfg     Config
	Version string
	Commit  string

	DB      *database.DB
	Catalog catalog.Client
	Totals  *catalog.Totals

	UserRepository  repositories.UserRepository
	AlbumRepository repositories.AlbumRepository
	CardRepository  repositories.CardRepository
	TradeRepository repositories.TradeRepository

	Users  *services.UserService
	Albums *services.AlbumService
	Packs  *services.PackService
	Trades *services.TradeService
}

func New(cfg Config, version string, commit string) *App {
	return &App{
		Cfg:     cfg,
		Version: version,
		Commit:  commit,
		Totals:  catalog.NewTotals(),
	}
}

// Setup builds repositories and services once DB and Catalog are attached.
func (a *App) Setup() {
	bunDB := a.DB.BunDB()
	a.UserRepository = repositories.NewUserRepository(bunDB)
	a.AlbumRepository = repositories.NewAlbumRepository(bunDB)
	a.CardRepository = repositories.NewCardRepository(bunDB)
	a.TradeRepository = repositories.NewTradeRepository(bunDB)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	a.Users = services.NewUserService(a.UserRepository, a.AlbumRepository)
	a.Albums = services.NewAlbumService(a.AlbumRepository, a.Totals)
	a.Packs = services.NewPackService(a.AlbumRepository, a.CardRepository, a.Catalog, a.Totals, rng)
	a.Trades = services.NewTradeService(a.TradeRepository, a.UserRepository, a.CardRepository, a.AlbumRepository)
}
