package catalog

import (
	"sort"

	"github.com/trezcool/eduverse/core/user"
)

// ManagedCoursesLimit is how many courses the admin course table lists.
const ManagedCoursesLimit = 5

// Overview holds the admin panel aggregates.
type Overview struct {
	TotalRevenue       float64 `json:"totalRevenue"`
	TotalStudents      int     `json:"totalStudents"`
	ActiveCourses      int     `json:"activeCourses"`
	CertificatesIssued int     `json:"certificatesIssued"`
	Instructors        int     `json:"instructors"`
}

// EnrolledCourses keeps the courses whose id is in the user's enrollment list, in catalog order.
func EnrolledCourses(usr user.User, courses []Course) []Course {
	res := make([]Course, 0, len(usr.EnrolledCourses))
	for _, c := range courses {
		if usr.IsEnrolled(c.ID) {
			res = append(res, c)
		}
	}
	return res
}

// Recommendations returns the first n catalog courses that are not in enrolled.
func Recommendations(enrolled, courses []Course, n int) []Course {
	ids := make(map[string]struct{}, len(enrolled))
	for _, c := range enrolled {
		ids[c.ID] = struct{}{}
	}
	res := make([]Course, 0, n)
	for _, c := range courses {
		if len(res) >= n {
			break
		}
		if _, ok := ids[c.ID]; !ok {
			res = append(res, c)
		}
	}
	return res
}

func NewOverview(courses []Course, certs []Certificate, instructors int) Overview {
	ov := Overview{
		ActiveCourses:      len(courses),
		CertificatesIssued: len(certs),
		Instructors:        instructors,
	}
	for _, c := range courses {
		ov.TotalRevenue += c.Revenue()
		ov.TotalStudents += c.StudentsEnrolled
	}
	return ov
}

// TopCourses returns the n most enrolled courses. The input slice is left untouched.
func TopCourses(courses []Course, n int) []Course {
	sorted := make([]Course, len(courses))
	copy(sorted, courses)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].StudentsEnrolled > sorted[j].StudentsEnrolled })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// ManagedCourses is the head of the catalog shown in the admin course table.
func ManagedCourses(courses []Course) []Course {
	if len(courses) > ManagedCoursesLimit {
		return courses[:ManagedCoursesLimit]
	}
	return courses
}
