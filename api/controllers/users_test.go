package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/starterhq/backoffice-backend/api/middleware"
	usersvc "github.com/starterhq/backoffice-backend/internal/users"
	pkgerrors "github.com/starterhq/backoffice-backend/pkg/errors"
	"github.com/starterhq/backoffice-backend/pkg/pagination"
)

type stubUserService struct {
	user       *usersvc.UserDTO
	page       *pagination.Page[usersvc.UserDTO]
	currentID  uuid.UUID
	lastActor  uuid.UUID
	lastInput  usersvc.UpdateUserInput
	lastParams pagination.Params
	err        error
}

func (s *stubUserService) GetUser(_ context.Context, _ uuid.UUID) (*usersvc.UserDTO, error) {
	return s.user, s.err
}

func (s *stubUserService) DeleteUser(_ context.Context, _ uuid.UUID) (*usersvc.UserDTO, error) {
	return s.user, s.err
}

func (s *stubUserService) ListUsers(_ context.Context, params pagination.Params) (*pagination.Page[usersvc.UserDTO], error) {
	s.lastParams = params
	return s.page, s.err
}

func (s *stubUserService) CurrentUserID(_ context.Context, _ string) (uuid.UUID, error) {
	return s.currentID, s.err
}

func (s *stubUserService) UpdateUser(_ context.Context, actorID, _ uuid.UUID, input usersvc.UpdateUserInput) (*usersvc.UserDTO, error) {
	s.lastActor = actorID
	s.lastInput = input
	return s.user, s.err
}

func newRequestWithID(method, target, id string, body string) *http.Request {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestGetUserRejectsMalformedID(t *testing.T) {
	handler := GetUser(&stubUserService{}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, newRequestWithID(http.MethodGet, "/api/v1/users/nope", "nope", ""))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestGetUserEnvelope(t *testing.T) {
	dto := &usersvc.UserDTO{ID: uuid.New(), Email: "jane@example.com"}
	handler := GetUser(&stubUserService{user: dto}, nil)

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, newRequestWithID(http.MethodGet, "/api/v1/users/"+dto.ID.String(), dto.ID.String(), ""))
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}

	var body struct {
		Success bool            `json:"success"`
		Message string          `json:"message"`
		Data    usersvc.UserDTO `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || body.Message != "User retrieved successfully" {
		t.Fatalf("unexpected envelope: %+v", body)
	}
	if body.Data.Email != "jane@example.com" {
		t.Fatalf("unexpected data: %+v", body.Data)
	}
}

func TestGetUserNotFoundStatus(t *testing.T) {
	svc := &stubUserService{err: pkgerrors.New(pkgerrors.CodeNotFound, "user not found")}
	handler := GetUser(svc, nil)

	id := uuid.NewString()
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, newRequestWithID(http.MethodGet, "/api/v1/users/"+id, id, ""))
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
}

func TestListUsersForwardsPageParams(t *testing.T) {
	page := pagination.NewPage([]usersvc.UserDTO{}, 1, 10, 0)
	svc := &stubUserService{page: &page}
	handler := ListUsers(svc, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users?page=1&size=10&sort=email", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.lastParams.Page != 1 || svc.lastParams.Size != 10 || svc.lastParams.Sort != "email" {
		t.Fatalf("unexpected params: %+v", svc.lastParams)
	}
}

func TestUpdateUserThreadsActor(t *testing.T) {
	dto := &usersvc.UserDTO{ID: uuid.New()}
	svc := &stubUserService{user: dto}
	handler := UpdateUser(svc, nil)

	actorID := uuid.New()
	body := `{"email":"jane@example.com","roles":["ROLE_MANAGER"]}`
	req := newRequestWithID(http.MethodPut, "/api/v1/users/"+dto.ID.String(), dto.ID.String(), body)
	req = req.WithContext(middleware.WithUserID(req.Context(), actorID.String()))

	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if svc.lastActor != actorID {
		t.Fatalf("expected actor %s got %s", actorID, svc.lastActor)
	}
	if len(svc.lastInput.Roles) != 1 {
		t.Fatalf("expected one parsed role, got %+v", svc.lastInput.Roles)
	}
}

func TestUpdateUserRejectsUnknownRole(t *testing.T) {
	handler := UpdateUser(&stubUserService{user: &usersvc.UserDTO{}}, nil)

	id := uuid.NewString()
	body := `{"roles":["ROLE_WIZARD"]}`
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, newRequestWithID(http.MethodPut, "/api/v1/users/"+id, id, body))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestUpdateUserRequiresRoles(t *testing.T) {
	handler := UpdateUser(&stubUserService{user: &usersvc.UserDTO{}}, nil)

	id := uuid.NewString()
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, newRequestWithID(http.MethodPut, "/api/v1/users/"+id, id, `{"email":"a@b.co"}`))
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
