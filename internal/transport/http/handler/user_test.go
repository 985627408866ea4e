package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ErlanBelekov/shop-api/internal/apperror"
	"github.com/ErlanBelekov/shop-api/internal/domain"
	"github.com/ErlanBelekov/shop-api/internal/transport/http/handler"
	"github.com/ErlanBelekov/shop-api/internal/transport/http/middleware"
	"github.com/ErlanBelekov/shop-api/internal/usecase"
	"github.com/gin-gonic/gin"
)

type fakeUserUsecase struct {
	register func(ctx context.Context, in usecase.UserInput) (*domain.User, error)
	create   func(ctx context.Context, in usecase.UserInput) (*domain.User, error)
	login    func(ctx context.Context, email, password string) (*usecase.LoginResult, error)
	list     func(ctx context.Context) ([]*domain.User, error)
	get      func(ctx context.Context, id string) (*domain.User, error)
	update   func(ctx context.Context, id string, in usecase.UserInput) (*domain.User, error)
	delete   func(ctx context.Context, id string) error
	count    func(ctx context.Context) (int, error)
}

func (f *fakeUserUsecase) Register(ctx context.Context, in usecase.UserInput) (*domain.User, error) {
	return f.register(ctx, in)
}

func (f *fakeUserUsecase) Create(ctx context.Context, in usecase.UserInput) (*domain.User, error) {
	return f.create(ctx, in)
}

func (f *fakeUserUsecase) Login(ctx context.Context, email, password string) (*usecase.LoginResult, error) {
	return f.login(ctx, email, password)
}

func (f *fakeUserUsecase) List(ctx context.Context) ([]*domain.User, error) {
	return f.list(ctx)
}

func (f *fakeUserUsecase) Get(ctx context.Context, id string) (*domain.User, error) {
	return f.get(ctx, id)
}

func (f *fakeUserUsecase) Update(ctx context.Context, id string, in usecase.UserInput) (*domain.User, error) {
	return f.update(ctx, id, in)
}

func (f *fakeUserUsecase) Delete(ctx context.Context, id string) error {
	return f.delete(ctx, id)
}

func (f *fakeUserUsecase) Count(ctx context.Context) (int, error) {
	return f.count(ctx)
}

func newUserEngine(uc *fakeUserUsecase) *gin.Engine {
	h := handler.NewUserHandler(uc, discard)

	r := gin.New()
	r.Use(middleware.Errors(apperror.NewNormalizer(false), discard))
	r.POST("/users/register", h.Register)
	r.POST("/users/login", h.Login)
	r.GET("/users/:id", h.Get)
	r.DELETE("/users/:id", h.Delete)
	r.GET("/users/get/count", h.Count)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRegister_InvalidJSON_Returns400(t *testing.T) {
	w := postJSON(newUserEngine(&fakeUserUsecase{}), "/users/register", `{bad json}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if got := errorBody(t, w); got.Kind != apperror.KindValidationFailed {
		t.Errorf("kind = %q", got.Kind)
	}
}

func TestRegister_InvalidEmail_Returns400(t *testing.T) {
	w := postJSON(newUserEngine(&fakeUserUsecase{}), "/users/register", `{"name":"Ada","email":"not-an-email"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestRegister_PasswordHashNeverSerialized(t *testing.T) {
	uc := &fakeUserUsecase{
		register: func(_ context.Context, in usecase.UserInput) (*domain.User, error) {
			return &domain.User{ID: "u-1", Name: in.Name, Email: in.Email, PasswordHash: "$2a$10$secret"}, nil
		},
	}

	w := postJSON(newUserEngine(uc), "/users/register", `{"name":"Ada","email":"ada@example.com","password":"correct-horse"}`)

	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d (body %s)", w.Code, w.Body.String())
	}
	if strings.Contains(w.Body.String(), "secret") || strings.Contains(w.Body.String(), "password") {
		t.Errorf("body leaks credentials: %s", w.Body.String())
	}
}

func TestRegister_EmailTaken_Returns400(t *testing.T) {
	uc := &fakeUserUsecase{
		register: func(_ context.Context, _ usecase.UserInput) (*domain.User, error) {
			return nil, domain.ErrEmailTaken
		},
	}

	w := postJSON(newUserEngine(uc), "/users/register", `{"name":"Ada","email":"ada@example.com","password":"correct-horse"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	if got := errorBody(t, w); got.Message != "Email is already registered" {
		t.Errorf("message = %q", got.Message)
	}
}

func TestLogin_Success_ReturnsToken(t *testing.T) {
	uc := &fakeUserUsecase{
		login: func(_ context.Context, email, password string) (*usecase.LoginResult, error) {
			if email != "ada@example.com" || password != "correct-horse" {
				t.Errorf("login(%q, %q)", email, password)
			}
			return &usecase.LoginResult{User: &domain.User{Email: email}, Token: "jwt"}, nil
		},
	}

	w := postJSON(newUserEngine(uc), "/users/login", `{"email":"ada@example.com","password":"correct-horse"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["token"] != "jwt" || body["user"] != "ada@example.com" {
		t.Errorf("body = %v", body)
	}
}

func TestLogin_BadCredentials_Returns400(t *testing.T) {
	uc := &fakeUserUsecase{
		login: func(_ context.Context, _, _ string) (*usecase.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}

	w := postJSON(newUserEngine(uc), "/users/login", `{"email":"ada@example.com","password":"nope"}`)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestDeleteUser_NotFound_Returns404(t *testing.T) {
	uc := &fakeUserUsecase{
		delete: func(_ context.Context, _ string) error { return domain.ErrUserNotFound },
	}

	w := httptest.NewRecorder()
	newUserEngine(uc).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/users/"+testProductID, nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if got := errorBody(t, w); got.Message != "User not found" || got.Kind != apperror.KindValidationFailed {
		t.Errorf("body = %+v", got)
	}
}

func TestUserCount(t *testing.T) {
	uc := &fakeUserUsecase{
		count: func(_ context.Context) (int, error) { return 7, nil },
	}

	w := httptest.NewRecorder()
	newUserEngine(uc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users/get/count", nil))

	if w.Code != http.StatusOK || w.Body.String() != `{"userCount":7}` {
		t.Errorf("status = %d body = %s", w.Code, w.Body.String())
	}
}
