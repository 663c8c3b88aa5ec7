package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/mortydex/mortydex/mortydex/catalog"
	catalogmock "github.com/mortydex/mortydex/mortydex/catalog/mock"
	"github.com/mortydex/mortydex/mortydex/database/models"
	"github.com/mortydex/mortydex/mortydex/database/repositories"
	repomock "github.com/mortydex/mortydex/mortydex/database/repositories/mock"
	"github.com/mortydex/mortydex/mortydex/services"
)

type fixedRand struct{}

func (fixedRand) Intn(int) int { return 0 }

type serverMocks struct {
	users  *repomock.MockUserRepository
	albums *repomock.MockAlbumRepository
	cards  *repomock.MockCardRepository
	trades *repomock.MockTradeRepository
}

func newTestServer(t *testing.T, totals *catalog.Totals) (*Server, serverMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := serverMocks{
		users:  repomock.NewMockUserRepository(ctrl),
		albums: repomock.NewMockAlbumRepository(ctrl),
		cards:  repomock.NewMockCardRepository(ctrl),
		trades: repomock.NewMockTradeRepository(ctrl),
	}

	s := New(
		services.NewUserService(m.users, m.albums),
		services.NewAlbumService(m.albums, totals),
		services.NewPackService(m.albums, m.cards, catalogmock.NewMockClient(ctrl), totals, fixedRand{}),
		services.NewTradeService(m.trades, m.users, m.cards, m.albums),
	)
	return s, m
}

func loadedTotals(t *testing.T, total int) *catalog.Totals {
	t.Helper()
	client := catalogmock.NewMockClient(gomock.NewController(t))
	client.EXPECT().GetTotalCount(gomock.Any()).Return(total, nil)

	totals := catalog.NewTotals()
	if err := totals.Refresh(context.Background(), client); err != nil {
		t.Fatalf("failed to load totals: %v", err)
	}
	return totals
}

func errorStatus(t *testing.T, resp *http.Response) int {
	t.Helper()
	var body struct {
		Error struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if body.Error.Message == "" {
		t.Error("error body has no message")
	}
	return body.Error.Code
}

func TestServer_CreateUser(t *testing.T) {
	s, m := newTestServer(t, catalog.NewTotals())

	m.users.EXPECT().
		CreateWithAlbum(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, user *models.User) (*models.Album, error) {
			user.ID = 1
			return &models.Album{ID: 10, UserID: 1}, nil
		})

	req := httptest.NewRequest(http.MethodPost, "/users",
		bytes.NewBufferString(`{"name":"Rick Sanchez","email":"rick@citadel.dev"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.App().Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var body struct {
		User    *models.User `json:"user"`
		AlbumID int64        `json:"album_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.User.ID != 1 || body.AlbumID != 10 {
		t.Errorf("body = %+v", body)
	}
}

func TestServer_CreateUser_InvalidEmail(t *testing.T) {
	s, _ := newTestServer(t, catalog.NewTotals())

	req := httptest.NewRequest(http.MethodPost, "/users",
		bytes.NewBufferString(`{"name":"Rick","email":"not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.App().Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
	if code := errorStatus(t, resp); code != http.StatusBadRequest {
		t.Errorf("error code = %d, want 400", code)
	}
}

func TestServer_GetUser_NotFound(t *testing.T) {
	s, m := newTestServer(t, catalog.NewTotals())

	m.users.EXPECT().
		GetByID(gomock.Any(), int64(9)).
		Return(nil, &repositories.NotFoundError{Entity: "user", ID: int64(9)})

	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/users/9", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestServer_GetUser_BadID(t *testing.T) {
	s, _ := newTestServer(t, catalog.NewTotals())

	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/users/abc", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestServer_AlbumProgress(t *testing.T) {
	s, m := newTestServer(t, loadedTotals(t, 826))

	m.albums.EXPECT().
		GetByUserID(gomock.Any(), int64(1)).
		Return(&models.Album{ID: 10, UserID: 1}, nil)
	m.albums.EXPECT().
		CountDistinctCharacters(gomock.Any(), int64(10)).
		Return(413, nil)

	resp, err := s.App().Test(httptest.NewRequest(http.MethodGet, "/albums/1/progress", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var body struct {
		Progress float64 `json:"progress"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body.Progress != 50.0 {
		t.Errorf("progress = %v, want 50.0", body.Progress)
	}
}

func TestServer_OpenPack_CatalogNotLoaded(t *testing.T) {
	s, _ := newTestServer(t, catalog.NewTotals())

	resp, err := s.App().Test(httptest.NewRequest(http.MethodPost, "/packs/1/open", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want 503", resp.StatusCode)
	}
}

func TestServer_AcceptTrade_OwnershipConflict(t *testing.T) {
	s, m := newTestServer(t, catalog.NewTotals())

	m.trades.EXPECT().
		GetByID(gomock.Any(), int64(5)).
		Return(&models.TradeProposal{ID: 5, OffererID: 1, ReceiverID: 2, Status: models.TradePending}, nil)
	m.trades.EXPECT().
		ExecuteSwap(gomock.Any(), int64(5)).
		Return(repositories.ErrOwnershipChanged)

	req := httptest.NewRequest(http.MethodPut, "/trades/5/accept",
		bytes.NewBufferString(`{"user_id":2}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.App().Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("status = %d, want 409", resp.StatusCode)
	}
}

func TestServer_AcceptTrade_WrongUser(t *testing.T) {
	s, m := newTestServer(t, catalog.NewTotals())

	m.trades.EXPECT().
		GetByID(gomock.Any(), int64(5)).
		Return(&models.TradeProposal{ID: 5, OffererID: 1, ReceiverID: 2, Status: models.TradePending}, nil)

	req := httptest.NewRequest(http.MethodPut, "/trades/5/accept",
		bytes.NewBufferString(`{"user_id":1}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.App().Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403", resp.StatusCode)
	}
}

func TestServer_DeleteTrade_Accepted(t *testing.T) {
	s, m := newTestServer(t, catalog.NewTotals())

	m.trades.EXPECT().
		GetByID(gomock.Any(), int64(5)).
		Return(&models.TradeProposal{ID: 5, Status: models.TradeAccepted}, nil)

	resp, err := s.App().Test(httptest.NewRequest(http.MethodDelete, "/trades/5", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("status = %d, want 409", resp.StatusCode)
	}
}
