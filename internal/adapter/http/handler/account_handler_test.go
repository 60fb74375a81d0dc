package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/iho/bookkeeper/internal/adapter/http/dto"
	"github.com/iho/bookkeeper/internal/domain"
	"github.com/iho/bookkeeper/internal/usecase"
)

type accountServiceStub struct {
	createFn func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error)
	getFn    func(ctx context.Context, id string) (*domain.Account, error)
	listFn   func(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error)
	updateFn func(ctx context.Context, id string, input usecase.UpdateAccountInput) (*domain.Account, error)
	deleteFn func(ctx context.Context, id string) error
}

func (s *accountServiceStub) CreateAccount(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
	return s.createFn(ctx, input)
}

func (s *accountServiceStub) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return s.getFn(ctx, id)
}

func (s *accountServiceStub) ListAccounts(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error) {
	return s.listFn(ctx, input)
}

func (s *accountServiceStub) UpdateAccount(ctx context.Context, id string, input usecase.UpdateAccountInput) (*domain.Account, error) {
	return s.updateFn(ctx, id, input)
}

func (s *accountServiceStub) DeleteAccount(ctx context.Context, id string) error {
	return s.deleteFn(ctx, id)
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)

	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeData[T any](t *testing.T, body []byte) T {
	t.Helper()

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("failed to decode envelope: %v", err)
	}

	if !envelope.Success {
		t.Fatalf("expected success envelope, got %s", body)
	}

	var data T
	if err := json.Unmarshal(envelope.Data, &data); err != nil {
		t.Fatalf("failed to decode data: %v", err)
	}

	return data
}

func TestAccountHandler_Create_Success(t *testing.T) {
	account := &domain.Account{
		ID:       "acc-1",
		Code:     "1000",
		Name:     "Cash",
		Type:     domain.AccountTypeAsset,
		IsActive: true,
	}

	var captured usecase.CreateAccountInput
	handler := NewAccountHandler(&accountServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
			captured = input
			return account, nil
		},
	}, zerolog.Nop())

	body, _ := json.Marshal(dto.CreateAccountRequest{
		Code: "1000",
		Name: "Cash",
		Type: "asset",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.Code != "1000" || captured.Name != "Cash" || captured.Type != "asset" {
		t.Fatalf("expected input to match request, got %+v", captured)
	}

	resp := decodeData[dto.AccountResponse](t, rec.Body.Bytes())
	if resp.ID != "acc-1" || resp.Type != "asset" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAccountHandler_Create_InvalidJSON(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
			t.Fatal("CreateAccount should not be called for invalid payload")
			return nil, nil
		},
	}, zerolog.Nop())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewBufferString("{invalid json"))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAccountHandler_Create_DuplicateCode(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		createFn: func(ctx context.Context, input usecase.CreateAccountInput) (*domain.Account, error) {
			return nil, domain.ErrDuplicateCode
		},
	}, zerolog.Nop())

	body, _ := json.Marshal(dto.CreateAccountRequest{Code: "1000", Name: "Cash", Type: "asset"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Create(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestAccountHandler_Get_NotFound(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		getFn: func(ctx context.Context, id string) (*domain.Account, error) {
			return nil, domain.ErrAccountNotFound
		},
	}, zerolog.Nop())

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/accounts/missing", nil), "id", "missing")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAccountHandler_List(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		listFn: func(ctx context.Context, input usecase.ListAccountsInput) ([]*domain.Account, error) {
			if input.Limit != 50 || input.Offset != 10 {
				t.Fatalf("expected limit=50 offset=10, got %+v", input)
			}
			return []*domain.Account{
				{ID: "acc-1", Code: "1000", Name: "Cash", Type: domain.AccountTypeAsset, IsActive: true},
			}, nil
		},
	}, zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts?limit=50&offset=10", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	resp := decodeData[[]dto.AccountResponse](t, rec.Body.Bytes())
	if len(resp) != 1 || resp[0].Code != "1000" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAccountHandler_Update_Success(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		updateFn: func(ctx context.Context, id string, input usecase.UpdateAccountInput) (*domain.Account, error) {
			if id != "acc-1" {
				t.Fatalf("expected id acc-1, got %s", id)
			}
			if input.Name == nil || *input.Name != "Petty Cash" {
				t.Fatalf("expected name update, got %+v", input)
			}
			return &domain.Account{ID: "acc-1", Code: "1000", Name: "Petty Cash", Type: domain.AccountTypeAsset, IsActive: true}, nil
		},
	}, zerolog.Nop())

	body := bytes.NewBufferString(`{"name":"Petty Cash"}`)
	req := withURLParam(httptest.NewRequest(http.MethodPut, "/api/v1/accounts/acc-1", body), "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Update(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAccountHandler_Delete_HasEntries(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		deleteFn: func(ctx context.Context, id string) error {
			return domain.ErrAccountHasEntries
		},
	}, zerolog.Nop())

	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/v1/accounts/acc-1", nil), "id", "acc-1")
	rec := httptest.NewRecorder()

	handler.Delete(rec, req)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}
