package model

import (
	"time"

	"github.com/google/uuid"
)

// Role discriminates vendor records from manager (employee) records
// within the shared users collection. It is a closed set so a typo'd
// role can never drop a record out of both listings.
type Role string

const (
	RoleVendor  Role = "vendor"
	RoleManager Role = "manager"
)

func (r Role) Valid() bool {
	return r == RoleVendor || r == RoleManager
}

type Gender string

const (
	GenderMale   Gender = "Male"
	GenderFemale Gender = "Female"
	GenderOther  Gender = "Other"
)

func (g Gender) Valid() bool {
	return g == GenderMale || g == GenderFemale || g == GenderOther
}

type User struct {
	ID         string    `bson:"_id" json:"id"`
	EmployeeID string    `bson:"employeeId" json:"employeeId"`
	Name       string    `bson:"name" json:"name"`
	Email      string    `bson:"email" json:"email"`
	DOB        string    `bson:"dob" json:"dob"`
	Gender     Gender    `bson:"gender" json:"gender"`
	Role       Role      `bson:"role" json:"role"`
	Password   string    `bson:"password" json:"-"` // bcrypt hash, never serialized
	Mobile     string    `bson:"mobile" json:"mobile"`
	Age        int       `bson:"age" json:"age"`
	Phone      string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Company    string    `bson:"company,omitempty" json:"company,omitempty"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

type NewUserParams struct {
	EmployeeID   string
	Name         string
	Email        string
	DOB          string
	Gender       Gender
	Role         Role
	PasswordHash string
	Mobile       string
	Age          int
}

func NewUser(p NewUserParams) *User {
	return &User{
		ID:         uuid.NewString(),
		EmployeeID: p.EmployeeID,
		Name:       p.Name,
		Email:      p.Email,
		DOB:        p.DOB,
		Gender:     p.Gender,
		Role:       p.Role,
		Password:   p.PasswordHash,
		Mobile:     p.Mobile,
		Age:        p.Age,
		CreatedAt:  time.Now(),
	}
}

// UserPatch is a partial update of the mutable fields. Identity fields
// (employeeId, email, role, password, createdAt) are deliberately absent
// so a client echoing the whole record back cannot change them.
type UserPatch struct {
	Name    *string `json:"name"`
	DOB     *string `json:"dob"`
	Gender  *string `json:"gender"`
	Age     *int    `json:"age"`
	Mobile  *string `json:"mobile"`
	Phone   *string `json:"phone"`
	Company *string `json:"company"`
}

func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.DOB == nil && p.Gender == nil && p.Age == nil &&
		p.Mobile == nil && p.Phone == nil && p.Company == nil
}
