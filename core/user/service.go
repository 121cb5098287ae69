package user

import (
	"strings"

	"github.com/trezcool/eduverse/core"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("user")
)

type (
	Repository interface {
		QueryAllUsers() ([]User, error)
		GetUserByID(id string) (User, error)
		// GetUserByEmail matches the address exactly, case included.
		GetUserByEmail(email string) (User, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) QueryAll() ([]User, error) {
	return svc.repo.QueryAllUsers()
}

func (svc *Service) GetByID(id string) (User, error) {
	return svc.repo.GetUserByID(id)
}

// GetByEmail matches the address exactly: no trimming, case-sensitive.
func (svc *Service) GetByEmail(email string) (User, error) {
	return svc.repo.GetUserByEmail(email)
}

// Filter applies an AND on the set QueryFilter fields.
// QueryFilter.Search does a case-insensitive match on one of User.Name or User.Email.
func (svc *Service) Filter(filter QueryFilter) ([]User, error) {
	users, err := svc.repo.QueryAllUsers()
	if err != nil {
		return nil, err
	}
	if filter.IsEmpty() {
		return users, nil
	}
	search := core.CleanString(filter.Search)
	res := make([]User, 0, len(users))
	for _, u := range users {
		if filter.Role != "" && u.Role != filter.Role {
			continue
		}
		if search != "" && !core.ContainsFold(u.Name, search) && !core.ContainsFold(u.Email, search) {
			continue
		}
		res = append(res, u)
	}
	return res, nil
}

// CountByRole counts the users of a role, for the admin overview.
func (svc *Service) CountByRole(role string) (int, error) {
	users, err := svc.repo.QueryAllUsers()
	if err != nil {
		return 0, err
	}
	var n int
	for _, u := range users {
		if strings.EqualFold(u.Role, role) {
			n++
		}
	}
	return n, nil
}
