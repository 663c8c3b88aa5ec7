// Package server exposes the album and trade services over HTTP. The
// handlers stay thin: parse, delegate, map domain errors to status codes.
package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/mortydex/mortydex/mortydex/services"
)

type Server struct {
	app    *fiber.App
	users  *services.UserService
	albums *services.AlbumService
	packs  *services.PackService
	trades *services.TradeService
}

func New(users *services.UserService, albums *services.AlbumService, packs *services.PackService, trades *services.TradeService) *Server {
	s := &Server{
		users:  users,
		albums: albums,
		packs:  packs,
		trades: trades,
	}

	s.app = fiber.New(fiber.Config{
		AppName:      "mortydex",
		ErrorHandler: errorHandler,
	})

	s.app.Use(recover.New())
	s.app.Use(cors.New())
	s.app.Use(RequestLogger())

	s.routes()
	return s
}

func (s *Server) routes() {
	s.app.Post("/users", s.createUser)
	s.app.Get("/users", s.listUsers)
	s.app.Get("/users/:id", s.getUser)
	s.app.Put("/users/:id", s.updateUser)
	s.app.Delete("/users/:id", s.deleteUser)

	s.app.Post("/packs/:userID/open", s.openPack)

	s.app.Get("/albums/:userID", s.albumDetail)
	s.app.Get("/albums/:userID/progress", s.albumProgress)

	s.app.Post("/trades", s.proposeTrade)
	s.app.Put("/trades/:id/accept", s.acceptTrade)
	s.app.Delete("/trades/:id", s.deleteTrade)
	s.app.Get("/trades/:id", s.tradeDetail)
}

func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the underlying fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// errorHandler maps domain error kinds onto HTTP status codes.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "internal server error"

	var fiberErr *fiber.Error
	var domainErr *services.Error
	switch {
	case errors.As(err, &domainErr):
		code = statusForKind(domainErr.Kind)
		message = domainErr.Msg
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
		message = fiberErr.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error": fiber.Map{
			"code":    code,
			"message": message,
		},
	})
}

func statusForKind(kind services.ErrorKind) int {
	switch kind {
	case services.KindNotFound:
		return fiber.StatusNotFound
	case services.KindConflict, services.KindInvalidState:
		return fiber.StatusConflict
	case services.KindForbidden:
		return fiber.StatusForbidden
	case services.KindUnavailable:
		return fiber.StatusServiceUnavailable
	case services.KindInvalidArgument:
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
