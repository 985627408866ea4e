package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ErlanBelekov/shop-api/internal/domain"
	"github.com/ErlanBelekov/shop-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// TokenIssuer signs access tokens for authenticated users.
type TokenIssuer interface {
	Issue(userID string, admin bool) (string, error)
}

type UserUsecase struct {
	users  repository.UserRepository
	issuer TokenIssuer
	cost   int
}

func NewUserUsecase(users repository.UserRepository, issuer TokenIssuer) *UserUsecase {
	return &UserUsecase{users: users, issuer: issuer, cost: bcrypt.DefaultCost}
}

type UserInput struct {
	Name      string `validate:"required,max=120"`
	Email     string `validate:"required,email"`
	Password  string `validate:"omitempty,min=8,max=72"`
	Phone     string `validate:"required,max=32"`
	IsAdmin   bool
	Street    string
	Apartment string
	Zip       string
	City      string
	Country   string
}

type LoginResult struct {
	User  *domain.User
	Token string
}

// Register creates a non-admin account. A password is required.
func (u *UserUsecase) Register(ctx context.Context, in UserInput) (*domain.User, error) {
	in.IsAdmin = false
	return u.Create(ctx, in)
}

// Create is the administrative form of Register and honours IsAdmin.
func (u *UserUsecase) Create(ctx context.Context, in UserInput) (*domain.User, error) {
	if in.Password == "" {
		return nil, fmt.Errorf("%w: password is required", domain.ErrInvalidUser)
	}
	if err := check(in, domain.ErrInvalidUser); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := newUser(in)
	user.PasswordHash = string(hash)

	created, err := u.users.Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return created, nil
}

// Login checks the credentials and issues a signed token. Unknown emails and
// wrong passwords fail the same way.
func (u *UserUsecase) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := u.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := u.issuer.Issue(user.ID, user.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &LoginResult{User: user, Token: token}, nil
}

func (u *UserUsecase) List(ctx context.Context) ([]*domain.User, error) {
	users, err := u.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (u *UserUsecase) Get(ctx context.Context, id string) (*domain.User, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}
	user, err := u.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return user, nil
}

// Update replaces the profile. An empty password keeps the stored hash.
func (u *UserUsecase) Update(ctx context.Context, id string, in UserInput) (*domain.User, error) {
	if err := parseID(id); err != nil {
		return nil, err
	}
	if err := check(in, domain.ErrInvalidUser); err != nil {
		return nil, err
	}

	existing, err := u.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	user := newUser(in)
	user.ID = id
	user.PasswordHash = existing.PasswordHash
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), u.cost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	updated, err := u.users.Update(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	return updated, nil
}

func (u *UserUsecase) Delete(ctx context.Context, id string) error {
	if err := parseID(id); err != nil {
		return err
	}
	if err := u.users.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

func (u *UserUsecase) Count(ctx context.Context) (int, error) {
	n, err := u.users.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}

func newUser(in UserInput) *domain.User {
	return &domain.User{
		Name:      in.Name,
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:     in.Phone,
		IsAdmin:   in.IsAdmin,
		Street:    in.Street,
		Apartment: in.Apartment,
		Zip:       in.Zip,
		City:      in.City,
		Country:   in.Country,
	}
}
