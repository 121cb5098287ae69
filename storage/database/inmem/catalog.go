package inmemdb

import (
	"github.com/trezcool/eduverse/core/catalog"
)

type catalogRepository struct {
	courses *courseTable
	webs    *webinarTable
	certs   *certificateTable
}

func NewCatalogRepository(db *DB) catalog.Repository {
	return &catalogRepository{courses: db.course, webs: db.webinar, certs: db.certificate}
}

func (repo *catalogRepository) CreateCourse(c catalog.Course) (catalog.Course, error) {
	repo.courses.insert(c)
	return c, nil
}

func (repo *catalogRepository) QueryAllCourses() ([]catalog.Course, error) {
	repo.courses.RLock()
	defer repo.courses.RUnlock()

	courses := make([]catalog.Course, 0, len(repo.courses.order))
	for _, id := range repo.courses.order {
		courses = append(courses, copyCourse(*repo.courses.table[id]))
	}
	return courses, nil
}

func (repo *catalogRepository) GetCourseByID(id string) (catalog.Course, error) {
	repo.courses.RLock()
	defer repo.courses.RUnlock()

	if c, ok := repo.courses.table[id]; ok {
		return copyCourse(*c), nil
	}
	return catalog.Course{}, catalog.ErrCourseNotFound
}

func (repo *catalogRepository) QueryAllWebinars() ([]catalog.Webinar, error) {
	repo.webs.RLock()
	defer repo.webs.RUnlock()

	webs := make([]catalog.Webinar, len(repo.webs.rows))
	copy(webs, repo.webs.rows)
	return webs, nil
}

func (repo *catalogRepository) QueryAllCertificates() ([]catalog.Certificate, error) {
	repo.certs.RLock()
	defer repo.certs.RUnlock()

	certs := make([]catalog.Certificate, len(repo.certs.rows))
	copy(certs, repo.certs.rows)
	return certs, nil
}

func (repo *catalogRepository) GetCertificateByNumber(number string) (catalog.Certificate, error) {
	repo.certs.RLock()
	defer repo.certs.RUnlock()

	for _, cert := range repo.certs.rows {
		if cert.CertificateNumber == number {
			return cert, nil
		}
	}
	return catalog.Certificate{}, catalog.ErrCertificateNotFound
}

func copyCourse(c catalog.Course) catalog.Course {
	lessons := make([]catalog.Lesson, len(c.Lessons))
	copy(lessons, c.Lessons)
	c.Lessons = lessons
	return c
}
