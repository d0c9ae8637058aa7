package service

import (
	"context"
	"strings"

	"fleet-service/internal/model"
)

type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type UserService struct {
	users UserStore
}

func NewUserService(users UserStore) *UserService {
	return &UserService{users: users}
}

type UserInput struct {
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Username  string   `json:"username"`
	Password  string   `json:"password"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Roles     []string `json:"roles"`
	Active    *bool    `json:"active"`
}

// defaultCredential derives the conventional <last>.<first> username
// (and initial password) for a new account.
func defaultCredential(firstName, lastName string) string {
	return strings.ToLower(strings.ReplaceAll(lastName, " ", "")) +
		"." +
		strings.ToLower(strings.ReplaceAll(firstName, " ", ""))
}

func rolesFromInput(raw []string) (model.RoleSet, error) {
	if len(raw) == 0 {
		return model.RoleSet{model.RoleStaff: {}}, nil
	}
	roles := model.RoleSet{}
	for _, r := range raw {
		role := model.Role(r)
		if !role.Valid() {
			return nil, ErrInvalidInput
		}
		roles.Add(role)
	}
	return roles, nil
}

func (s *UserService) Create(ctx context.Context, input UserInput) (*model.User, error) {
	if input.FirstName == "" || input.LastName == "" {
		return nil, ErrInvalidInput
	}
	roles, err := rolesFromInput(input.Roles)
	if err != nil {
		return nil, err
	}

	username := input.Username
	if username == "" {
		username = defaultCredential(input.FirstName, input.LastName)
	}
	password := input.Password
	if password == "" {
		password = defaultCredential(input.FirstName, input.LastName)
	}

	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrConflict
	}

	user := &model.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Username:  username,
		Email:     input.Email,
		Phone:     input.Phone,
		Roles:     roles.String(),
		Active:    true,
	}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, principal model.Principal, id uint, input UserInput) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
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
	if input.Username != "" && input.Username != user.Username {
		other, err := s.users.GetByUsername(ctx, input.Username)
		if err != nil {
			return nil, err
		}
		if other != nil && other.ID != id {
			return nil, ErrConflict
		}
		user.Username = input.Username
	}
	user.Email = input.Email
	user.Phone = input.Phone

	if len(input.Roles) > 0 {
		roles, err := rolesFromInput(input.Roles)
		if err != nil {
			return nil, err
		}
		// An admin cannot strip the admin role from their own account.
		if id == principal.UserID && user.HasRole(model.RoleAdmin) && !roles.Has(model.RoleAdmin) {
			return nil, ErrPermissionDenied
		}
		user.Roles = roles.String()
	}

	if input.Active != nil {
		if id == principal.UserID && !*input.Active {
			return nil, ErrPermissionDenied
		}
		user.Active = *input.Active
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// ResetPassword sets the account password back to the default
// <last>.<first> credential.
func (s *UserService) ResetPassword(ctx context.Context, id uint) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	if err := user.SetPassword(defaultCredential(user.FirstName, user.LastName)); err != nil {
		return err
	}
	return s.users.Update(ctx, user)
}

func (s *UserService) Delete(ctx context.Context, principal model.Principal, id uint) error {
	if id == principal.UserID {
		return ErrPermissionDenied
	}
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}
	return s.users.Delete(ctx, id)
}
