package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"staffdesk/internal/core/model"
	"staffdesk/internal/core/repository"
)

func validInput() RegisterInput {
	return RegisterInput{
		Name:     "Asha Rao",
		Email:    "asha@example.com",
		DOB:      "1996-04-12",
		Gender:   "Female",
		Role:     "vendor",
		Age:      "29",
		Mobile:   "9876543210",
		Password: "secret!1",
	}
}

func newService(t *testing.T) (UserService, repository.UserRepository) {
	t.Helper()
	repo := repository.NewInMemoryUserRepository()
	return NewUserService(repo), repo
}

func TestRegister(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	employeeID, err := svc.Register(ctx, validInput())
	require.NoError(t, err)
	assert.Equal(t, "EMP1001", employeeID)

	stored, err := repo.FindByEmail(ctx, "asha@example.com")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "EMP1001", stored.EmployeeID)
	assert.Equal(t, model.RoleVendor, stored.Role)
	assert.Equal(t, 29, stored.Age)
	assert.False(t, stored.CreatedAt.IsZero())

	// Stored value is a hash of the plaintext, not the plaintext.
	assert.NotEqual(t, "secret!1", stored.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("secret!1")))
}

func TestRegisterSequentialIDs(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	first, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	second := validInput()
	second.Email = "ravi@example.com"
	secondID, err := svc.Register(ctx, second)
	require.NoError(t, err)

	assert.Equal(t, "EMP1001", first)
	assert.Equal(t, "EMP1002", secondID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	dup := validInput()
	dup.Name = "Someone Else"
	_, err = svc.Register(ctx, dup)
	assert.ErrorIs(t, err, repository.ErrDuplicateEmail)

	// The failed attempt wrote nothing.
	vendors, err := repo.FindByRole(ctx, model.RoleVendor)
	require.NoError(t, err)
	assert.Len(t, vendors, 1)
}

func TestRegisterInvalidInput(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	in := validInput()
	in.Email = "not-an-email"
	in.Mobile = "12345"
	_, err := svc.Register(ctx, in)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Invalid email", ve.Fields["email"])
	assert.Equal(t, "Enter 10-digit number", ve.Fields["mobile"])

	vendors, err := repo.FindByRole(ctx, model.RoleVendor)
	require.NoError(t, err)
	assert.Empty(t, vendors, "invalid input must not reach the store")
}

func TestRegisterContinuesExistingSeries(t *testing.T) {
	repo := repository.NewInMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	// A record created by the legacy scheme is already on file.
	legacy := model.NewUser(model.NewUserParams{
		EmployeeID: "EMP1042",
		Name:       "Legacy Vendor",
		Email:      "legacy@example.com",
		Role:       model.RoleVendor,
		Gender:     model.GenderOther,
	})
	require.NoError(t, repo.Create(ctx, legacy))

	in := validInput()
	employeeID, err := svc.Register(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "EMP1043", employeeID)
}

func TestRegisterMalformedStoredID(t *testing.T) {
	repo := repository.NewInMemoryUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	broken := model.NewUser(model.NewUserParams{
		EmployeeID: "EMPoops",
		Email:      "broken@example.com",
		Role:       model.RoleManager,
	})
	require.NoError(t, repo.Create(ctx, broken))

	_, err := svc.Register(ctx, validInput())
	require.Error(t, err, "malformed stored id must fail the request, not default")
}

func TestAuthenticate(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "asha@example.com", "secret!1")
	require.NoError(t, err)
	assert.Equal(t, "asha@example.com", user.Email)

	_, err = svc.Authenticate(ctx, "asha@example.com", "wrong!pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody@example.com", "secret!1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func registerPair(t *testing.T, svc UserService) (vendorID, managerID string) {
	t.Helper()
	ctx := context.Background()

	vendor := validInput()
	_, err := svc.Register(ctx, vendor)
	require.NoError(t, err)

	manager := validInput()
	manager.Email = "ravi@example.com"
	manager.Role = "manager"
	_, err = svc.Register(ctx, manager)
	require.NoError(t, err)

	vendors, err := svc.ListByRole(ctx, model.RoleVendor)
	require.NoError(t, err)
	require.Len(t, vendors, 1)
	managers, err := svc.ListByRole(ctx, model.RoleManager)
	require.NoError(t, err)
	require.Len(t, managers, 1)
	return vendors[0].ID, managers[0].ID
}

func TestListByRolePartitions(t *testing.T) {
	svc, _ := newService(t)
	vendorID, managerID := registerPair(t, svc)
	assert.NotEqual(t, vendorID, managerID)
}

func strPtr(s string) *string { return &s }

func TestUpdateChangesOnlyPatchedFields(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	vendorID, _ := registerPair(t, svc)

	updated, err := svc.Update(ctx, vendorID, model.RoleVendor, model.UserPatch{
		Phone:   strPtr("0123456789"),
		Company: strPtr("Acme Supplies"),
	})
	require.NoError(t, err)

	assert.Equal(t, "0123456789", updated.Phone)
	assert.Equal(t, "Acme Supplies", updated.Company)
	assert.Equal(t, "asha@example.com", updated.Email, "email is immutable")
	assert.Equal(t, "Asha Rao", updated.Name)
	assert.Equal(t, model.RoleVendor, updated.Role)
}

func TestUpdateValidatesPatch(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	vendorID, _ := registerPair(t, svc)

	_, err := svc.Update(ctx, vendorID, model.RoleVendor, model.UserPatch{
		Mobile: strPtr("12345"),
	})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "Enter 10-digit number", ve.Fields["mobile"])
}

func TestUpdateUnknownID(t *testing.T) {
	svc, _ := newService(t)
	registerPair(t, svc)

	_, err := svc.Update(context.Background(), "no-such-id", model.RoleVendor, model.UserPatch{
		Name: strPtr("Ghost"),
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateWrongRoleIsNotFound(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	_, managerID := registerPair(t, svc)

	// A manager record is invisible to the vendor management surface.
	_, err := svc.Update(ctx, managerID, model.RoleVendor, model.UserPatch{
		Name: strPtr("Sneaky"),
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDelete(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	vendorID, _ := registerPair(t, svc)

	require.NoError(t, svc.Delete(ctx, vendorID, model.RoleVendor))

	vendors, err := svc.ListByRole(ctx, model.RoleVendor)
	require.NoError(t, err)
	assert.Empty(t, vendors)

	managers, err := svc.ListByRole(ctx, model.RoleManager)
	require.NoError(t, err)
	assert.Len(t, managers, 1, "deleting a vendor leaves managers alone")

	err = svc.Delete(ctx, vendorID, model.RoleVendor)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestDeleteUnknownIDLeavesCollectionAlone(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()
	registerPair(t, svc)

	err := svc.Delete(ctx, "no-such-id", model.RoleVendor)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	vendors, err := svc.ListByRole(ctx, model.RoleVendor)
	require.NoError(t, err)
	assert.Len(t, vendors, 1)
}

func TestCreatedAtOrdersListing(t *testing.T) {
	svc, repo := newService(t)
	ctx := context.Background()

	older := model.NewUser(model.NewUserParams{
		EmployeeID: "EMP1001",
		Email:      "old@example.com",
		Role:       model.RoleVendor,
	})
	older.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, repo.Create(ctx, older))

	in := validInput()
	_, err := svc.Register(ctx, in)
	require.NoError(t, err)

	vendors, err := svc.ListByRole(ctx, model.RoleVendor)
	require.NoError(t, err)
	require.Len(t, vendors, 2)
	assert.Equal(t, "old@example.com", vendors[0].Email)
}

func TestRegisterErrorIsNotValidation(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validInput())
	require.NoError(t, err)

	dup := validInput()
	_, err = svc.Register(ctx, dup)
	var ve *ValidationError
	assert.False(t, errors.As(err, &ve), "duplicate email is not a field validation failure")
}
