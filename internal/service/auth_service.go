package service

import (
	"context"
	"time"

	"fleet-service/internal/auth"
	"fleet-service/internal/model"
)

type AuthService struct {
	users  UserStore
	issuer *auth.Issuer
	now    func() time.Time
}

func NewAuthService(users UserStore, issuer *auth.Issuer) *AuthService {
	return &AuthService{users: users, issuer: issuer, now: time.Now}
}

type LoginResult struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	if !user.Active {
		return nil, ErrAccountDisabled
	}

	now := s.now()
	user.LastLoginAt = &now
	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.issuer.Issue(user.ID, user.Username, user.Roles)
	if err != nil {
		return nil, err
	}

	return &LoginResult{Token: token, User: *user}, nil
}

func (s *AuthService) Profile(ctx context.Context, principal model.Principal) (*model.User, error) {
	user, err := s.users.GetByID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

type ProfileInput struct {
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// UpdateProfile lets a user edit their own contact details; changing
// the password additionally requires the current one.
func (s *AuthService) UpdateProfile(ctx context.Context, principal model.Principal, input ProfileInput) (*model.User, error) {
	user, err := s.users.GetByID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	user.Email = input.Email
	user.Phone = input.Phone

	if input.NewPassword != "" {
		if !user.CheckPassword(input.CurrentPassword) {
			return nil, ErrInvalidCredentials
		}
		if err := user.SetPassword(input.NewPassword); err != nil {
			return nil, err
		}
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// EnsureAdmin seeds the configured admin account when the users table
// is empty, so a fresh deployment is immediately usable.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	count, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	admin := &model.User{
		FirstName: "System",
		LastName:  "Administrator",
		Username:  username,
		Roles:     model.RoleSet{model.RoleAdmin: {}}.String(),
		Active:    true,
	}
	if err := admin.SetPassword(password); err != nil {
		return err
	}
	return s.users.Create(ctx, admin)
}
