package server

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
)

type userRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type proposeTradeRequest struct {
	OfferUserID   int64 `json:"offer_user_id"`
	OfferCardID   int64 `json:"offer_card_id"`
	ReceiveUserID int64 `json:"receive_user_id"`
	DesiredCardID int64 `json:"desired_card_id"`
}

type acceptTradeRequest struct {
	UserID int64 `json:"user_id"`
}

func (s *Server) createUser(c *fiber.Ctx) error {
	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	user, err := s.users.Create(c.Context(), req.Name, req.Email)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (s *Server) listUsers(c *fiber.Ctx) error {
	users, err := s.users.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(users)
}

func (s *Server) getUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	user, err := s.users.Get(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (s *Server) updateUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req userRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	user, err := s.users.Update(c.Context(), id, req.Name, req.Email)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (s *Server) deleteUser(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := s.users.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) openPack(c *fiber.Ctx) error {
	userID, err := paramID(c, "userID")
	if err != nil {
		return err
	}

	cards, err := s.packs.OpenPack(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(cards)
}

func (s *Server) albumDetail(c *fiber.Ctx) error {
	userID, err := paramID(c, "userID")
	if err != nil {
		return err
	}

	detail, err := s.albums.Detail(c.Context(), userID)
	if err != nil {
		return err
	}

	// Map keys are not JSON-encodable as structs; render them as
	// "name (RARITY)" like the album view shows them.
	duplicates := make(map[string]int, len(detail.Duplicates))
	for key, count := range detail.Duplicates {
		duplicates[key.CharacterName+" ("+string(key.Rarity)+")"] = count
	}

	return c.JSON(fiber.Map{
		"album_id":   detail.AlbumID,
		"cards":      detail.Cards,
		"duplicates": duplicates,
		"progress":   detail.Progress,
	})
}

func (s *Server) albumProgress(c *fiber.Ctx) error {
	userID, err := paramID(c, "userID")
	if err != nil {
		return err
	}

	progress, err := s.albums.Progress(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"progress": progress})
}

func (s *Server) proposeTrade(c *fiber.Ctx) error {
	var req proposeTradeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	proposal, err := s.trades.Propose(c.Context(), req.OfferUserID, req.OfferCardID, req.ReceiveUserID, req.DesiredCardID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(proposal)
}

func (s *Server) acceptTrade(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	var req acceptTradeRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	proposal, err := s.trades.Accept(c.Context(), id, req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(proposal)
}

func (s *Server) deleteTrade(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	if err := s.trades.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) tradeDetail(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}

	detail, err := s.trades.Detail(c.Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(detail)
}

func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "invalid "+name)
	}
	return id, nil
}
