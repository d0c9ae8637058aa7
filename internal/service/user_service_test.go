package service

import (
	"context"
	"testing"

	"fleet-service/internal/model"
)

type fakeUserStore struct {
	users  map[uint]*model.User
	nextID uint
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uint]*model.User{}, nextID: 1}
}

func (f *fakeUserStore) Create(_ context.Context, user *model.User) error {
	user.ID = f.nextID
	f.nextID++
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserStore) GetByID(_ context.Context, id uint) (*model.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeUserStore) List(_ context.Context) ([]model.User, error) {
	var out []model.User
	for _, user := range f.users {
		out = append(out, *user)
	}
	return out, nil
}

func (f *fakeUserStore) Update(_ context.Context, user *model.User) error {
	copied := *user
	f.users[user.ID] = &copied
	return nil
}

func (f *fakeUserStore) Delete(_ context.Context, id uint) error {
	delete(f.users, id)
	return nil
}

func (f *fakeUserStore) Count(_ context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func TestCreateUserDefaultsUsername(t *testing.T) {
	svc := NewUserService(newFakeUserStore())

	user, err := svc.Create(context.Background(), UserInput{
		FirstName: "Jean",
		LastName:  "Dupont",
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if user.Username != "dupont.jean" {
		t.Errorf("username = %q, want dupont.jean", user.Username)
	}
	if !user.CheckPassword("dupont.jean") {
		t.Error("default password must match the default username")
	}
	if !user.HasRole(model.RoleStaff) {
		t.Error("new user without explicit roles must default to staff")
	}
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	svc := NewUserService(newFakeUserStore())
	ctx := context.Background()

	if _, err := svc.Create(ctx, UserInput{FirstName: "Jean", LastName: "Dupont"}); err != nil {
		t.Fatalf("create first user: %v", err)
	}
	if _, err := svc.Create(ctx, UserInput{FirstName: "Jean", LastName: "Dupont"}); err != ErrConflict {
		t.Fatalf("err = %v, want ErrConflict", err)
	}
}

func TestUpdateUserRejectsSelfDemotion(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store)
	ctx := context.Background()

	admin, err := svc.Create(ctx, UserInput{
		FirstName: "Ada",
		LastName:  "Root",
		Roles:     []string{"admin"},
	})
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}

	principal := model.Principal{UserID: admin.ID, Username: admin.Username, Roles: admin.RoleSet()}
	_, err = svc.Update(ctx, principal, admin.ID, UserInput{Roles: []string{"staff"}})
	if err != ErrPermissionDenied {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}
}

func TestDeleteUserRejectsSelf(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store)
	ctx := context.Background()

	admin, err := svc.Create(ctx, UserInput{FirstName: "Ada", LastName: "Root", Roles: []string{"admin"}})
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}

	principal := model.Principal{UserID: admin.ID}
	if err := svc.Delete(ctx, principal, admin.ID); err != ErrPermissionDenied {
		t.Fatalf("self delete err = %v, want ErrPermissionDenied", err)
	}

	other, err := svc.Create(ctx, UserInput{FirstName: "Bob", LastName: "Smith"})
	if err != nil {
		t.Fatalf("create other: %v", err)
	}
	if err := svc.Delete(ctx, principal, other.ID); err != nil {
		t.Fatalf("delete other: %v", err)
	}
}

func TestResetPasswordRestoresDefault(t *testing.T) {
	store := newFakeUserStore()
	svc := NewUserService(store)
	ctx := context.Background()

	user, err := svc.Create(ctx, UserInput{FirstName: "Jean", LastName: "Dupont", Password: "secret123"})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := svc.ResetPassword(ctx, user.ID); err != nil {
		t.Fatalf("reset password: %v", err)
	}

	stored, _ := store.GetByID(ctx, user.ID)
	if !stored.CheckPassword("dupont.jean") {
		t.Error("password after reset must be the default credential")
	}
}
