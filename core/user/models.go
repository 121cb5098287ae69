package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Roles
const (
	RoleStudent    = "student"
	RoleInstructor = "instructor"
	RoleAdmin      = "admin"
)

// DemoPassword is the single password every seeded account accepts.
const DemoPassword = "password123"

var (
	AllRoles = []string{RoleStudent, RoleInstructor, RoleAdmin}

	Roles = []Role{
		{Name: "Student", Value: RoleStudent},
		{Name: "Instructor", Value: RoleInstructor},
		{Name: "Admin", Value: RoleAdmin},
	}
)

type Role struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type User struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	Role            string    `json:"role"`
	Avatar          string    `json:"avatar,omitempty"`
	EnrolledCourses []string  `json:"enrolledCourses"`
	CreatedAt       time.Time `json:"createdAt"` // UTC
	PasswordHash    []byte    `json:"-"`
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

func (u *User) IsAdmin() bool      { return u.Role == RoleAdmin }
func (u *User) IsInstructor() bool { return u.Role == RoleInstructor }
func (u *User) IsStudent() bool    { return u.Role == RoleStudent }

// IsEnrolled reports whether courseID is in the user's enrollment list.
func (u *User) IsEnrolled(courseID string) bool {
	for _, id := range u.EnrolledCourses {
		if id == courseID {
			return true
		}
	}
	return false
}

// RoleName is the display name of the user's role.
func (u *User) RoleName() string {
	for _, r := range Roles {
		if r.Value == u.Role {
			return r.Name
		}
	}
	return u.Role
}

// QueryFilter narrows QueryAllUsers results. Empty fields match everything.
type QueryFilter struct {
	Search string `query:"search"`
	Role   string `query:"role" validate:"omitempty,oneof=student instructor admin"`
}

func (qf *QueryFilter) IsEmpty() bool {
	return qf.Search == "" && qf.Role == ""
}
