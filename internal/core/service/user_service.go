package service

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"staffdesk/internal/core/model"
	"staffdesk/internal/core/repository"
	"staffdesk/internal/core/validation"
)

// hashCost matches the cost the system has always used; changing it
// only affects newly stored hashes.
const hashCost = 10

// RegisterInput carries the raw form values. Everything is a string at
// this point: the rule set judges exactly what the client submitted,
// conversion happens after it passes.
type RegisterInput struct {
	Name     string
	Email    string
	DOB      string
	Gender   string
	Role     string
	Age      string
	Mobile   string
	Password string
}

func (in RegisterInput) fields() map[string]string {
	return map[string]string{
		validation.FieldName:     in.Name,
		validation.FieldEmail:    in.Email,
		validation.FieldDOB:      in.DOB,
		validation.FieldGender:   in.Gender,
		validation.FieldRole:     in.Role,
		validation.FieldAge:      in.Age,
		validation.FieldMobile:   in.Mobile,
		validation.FieldPassword: in.Password,
	}
}

type UserService interface {
	Register(ctx context.Context, in RegisterInput) (string, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, error)
	ListByRole(ctx context.Context, role model.Role) ([]*model.User, error)
	Update(ctx context.Context, id string, role model.Role, patch model.UserPatch) (*model.User, error)
	Delete(ctx context.Context, id string, role model.Role) error
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{
		userRepo: userRepo,
	}
}

// Register runs the whole registration flow: authoritative field
// validation, duplicate-email check, password hash, id allocation,
// insert. The unique email index backs up the explicit check, so a
// concurrent duplicate still comes back as ErrDuplicateEmail.
func (s *userService) Register(ctx context.Context, in RegisterInput) (string, error) {
	if failed := validation.ValidateAll(in.fields()); len(failed) > 0 {
		return "", &ValidationError{Fields: failed}
	}

	existing, err := s.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return "", fmt.Errorf("checking existing email: %w", err)
	}
	if existing != nil {
		return "", repository.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), hashCost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}

	employeeID, err := s.userRepo.NextEmployeeID(ctx)
	if err != nil {
		return "", fmt.Errorf("allocating employee id: %w", err)
	}

	age, err := strconv.Atoi(in.Age)
	if err != nil {
		return "", fmt.Errorf("parsing age: %w", err)
	}

	user := model.NewUser(model.NewUserParams{
		EmployeeID:   employeeID,
		Name:         in.Name,
		Email:        in.Email,
		DOB:          in.DOB,
		Gender:       model.Gender(in.Gender),
		Role:         model.Role(in.Role),
		PasswordHash: string(hash),
		Mobile:       in.Mobile,
		Age:          age,
	})
	if err := s.userRepo.Create(ctx, user); err != nil {
		return "", err
	}
	return employeeID, nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *userService) ListByRole(ctx context.Context, role model.Role) ([]*model.User, error) {
	return s.userRepo.FindByRole(ctx, role)
}

// Update applies a partial edit to a record of the given role. Patch
// fields run through the same rules as registration; identity fields
// are not part of UserPatch and so cannot be changed here.
func (s *userService) Update(ctx context.Context, id string, role model.Role, patch model.UserPatch) (*model.User, error) {
	failed := make(map[string]string)
	check := func(field, value string) {
		if res := validation.Validate(field, value); !res.Valid {
			failed[field] = res.Message
		}
	}
	if patch.Name != nil {
		check(validation.FieldName, *patch.Name)
	}
	if patch.DOB != nil {
		check(validation.FieldDOB, *patch.DOB)
	}
	if patch.Gender != nil {
		check(validation.FieldGender, *patch.Gender)
	}
	if patch.Age != nil {
		check(validation.FieldAge, strconv.Itoa(*patch.Age))
	}
	if patch.Mobile != nil {
		check(validation.FieldMobile, *patch.Mobile)
	}
	if len(failed) > 0 {
		return nil, &ValidationError{Fields: failed}
	}

	return s.userRepo.Update(ctx, id, role, patch)
}

func (s *userService) Delete(ctx context.Context, id string, role model.Role) error {
	return s.userRepo.Delete(ctx, id, role)
}
