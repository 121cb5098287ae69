package catalog

import "github.com/trezcool/eduverse/core"

var (
	// errors
	ErrCourseNotFound      = core.NewNotFoundError("course")
	ErrLessonNotFound      = core.NewNotFoundError("lesson")
	ErrCertificateNotFound = core.NewNotFoundError("certificate")
)

type (
	Repository interface {
		// QueryAllCourses returns courses in catalog order.
		QueryAllCourses() ([]Course, error)
		GetCourseByID(id string) (Course, error)
		QueryAllWebinars() ([]Webinar, error)
		QueryAllCertificates() ([]Certificate, error)
		GetCertificateByNumber(number string) (Certificate, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Courses(filter QueryFilter) ([]Course, error) {
	courses, err := svc.repo.QueryAllCourses()
	if err != nil {
		return nil, err
	}
	return Filter(courses, filter), nil
}

func (svc *Service) AllCourses() ([]Course, error) {
	return svc.repo.QueryAllCourses()
}

func (svc *Service) Course(id string) (Course, error) {
	return svc.repo.GetCourseByID(id)
}

func (svc *Service) Featured() ([]Course, error) {
	courses, err := svc.repo.QueryAllCourses()
	if err != nil {
		return nil, err
	}
	featured := make([]Course, 0, len(courses))
	for _, c := range courses {
		if c.Featured {
			featured = append(featured, c)
		}
	}
	return featured, nil
}

func (svc *Service) Webinars() ([]Webinar, error) {
	return svc.repo.QueryAllWebinars()
}

// LiveWebinars and UpcomingWebinars partition Webinars on IsLive.
func (svc *Service) LiveWebinars() ([]Webinar, error) {
	return svc.webinars(true)
}

func (svc *Service) UpcomingWebinars() ([]Webinar, error) {
	return svc.webinars(false)
}

func (svc *Service) webinars(live bool) ([]Webinar, error) {
	all, err := svc.repo.QueryAllWebinars()
	if err != nil {
		return nil, err
	}
	res := make([]Webinar, 0, len(all))
	for _, w := range all {
		if w.IsLive == live {
			res = append(res, w)
		}
	}
	return res, nil
}

func (svc *Service) Certificates() ([]Certificate, error) {
	return svc.repo.QueryAllCertificates()
}

func (svc *Service) CertificatesFor(userID string) ([]Certificate, error) {
	all, err := svc.repo.QueryAllCertificates()
	if err != nil {
		return nil, err
	}
	res := make([]Certificate, 0, len(all))
	for _, cert := range all {
		if cert.UserID == userID {
			res = append(res, cert)
		}
	}
	return res, nil
}

// Certificate only returns certificates owned by userID.
func (svc *Service) Certificate(userID, id string) (Certificate, error) {
	certs, err := svc.CertificatesFor(userID)
	if err != nil {
		return Certificate{}, err
	}
	for _, cert := range certs {
		if cert.ID == id {
			return cert, nil
		}
	}
	return Certificate{}, ErrCertificateNotFound
}

func (svc *Service) CertificateByNumber(number string) (Certificate, error) {
	return svc.repo.GetCertificateByNumber(number)
}
