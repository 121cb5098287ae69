package inmemdb

import (
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/eduverse/core/catalog"
	"github.com/trezcool/eduverse/core/user"
)

const unsplash = "https://images.unsplash.com/"

var (
	demoHash     []byte
	demoHashErr  error
	demoHashOnce sync.Once
)

// demoPasswordHash hashes user.DemoPassword once per process.
func demoPasswordHash() ([]byte, error) {
	demoHashOnce.Do(func() {
		var u user.User
		demoHashErr = u.SetPassword(user.DemoPassword)
		demoHash = u.PasswordHash
	})
	return demoHash, demoHashErr
}

func date(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}

func avatar(photo string) string {
	return unsplash + photo + "?w=400&h=400&fit=crop"
}

func thumbnail(photo string) string {
	return unsplash + photo + "?w=800&h=600&fit=crop"
}

func seed(db *DB) error {
	hash, err := demoPasswordHash()
	if err != nil {
		return errors.Wrap(err, "hashing demo password")
	}
	for _, usr := range seedUsers() {
		usr.PasswordHash = hash
		db.user.insert(usr)
	}
	for _, c := range seedCourses() {
		db.course.insert(c)
	}
	db.webinar.rows = seedWebinars()
	db.certificate.rows = seedCertificates()
	return nil
}

func seedUsers() []user.User {
	return []user.User{
		{
			ID:              "1",
			Email:           "john.doe@example.com",
			Name:            "John Doe",
			Role:            user.RoleStudent,
			Avatar:          avatar("photo-1472099645785-5658abf4ff4e"),
			EnrolledCourses: []string{"1", "2", "3"},
			CreatedAt:       date("2024-01-15T00:00:00Z"),
		},
		{
			ID:              "2",
			Email:           "sarah.johnson@example.com",
			Name:            "Dr. Sarah Johnson",
			Role:            user.RoleInstructor,
			Avatar:          avatar("photo-1494790108377-be9c29b29330"),
			EnrolledCourses: []string{},
			CreatedAt:       date("2023-06-10T00:00:00Z"),
		},
		{
			ID:              "3",
			Email:           "admin@elearning.com",
			Name:            "Admin User",
			Role:            user.RoleAdmin,
			Avatar:          avatar("photo-1507003211169-0a1dd7228f2d"),
			EnrolledCourses: []string{},
			CreatedAt:       date("2023-01-01T00:00:00Z"),
		},
	}
}

func seedCourses() []catalog.Course {
	return []catalog.Course{
		{
			ID:               "1",
			Title:            "Complete Web Development Bootcamp 2024",
			Description:      "Master modern web development with HTML, CSS, JavaScript, React, Node.js, and more. Build real-world projects and launch your career as a full-stack developer.",
			Instructor:       "Dr. Sarah Johnson",
			InstructorAvatar: avatar("photo-1494790108377-be9c29b29330"),
			Thumbnail:        thumbnail("photo-1498050108023-c5249f4df085"),
			Price:            89.99,
			Duration:         "52 hours",
			Level:            catalog.LevelBeginner,
			Category:         "Web Development",
			Rating:           4.8,
			StudentsEnrolled: 12453,
			Featured:         true,
			CreatedAt:        date("2024-01-01T00:00:00Z"),
			Lessons: []catalog.Lesson{
				{
					ID:          "l1",
					Title:       "Introduction to Web Development",
					Description: "Learn the fundamentals of web development and set up your development environment",
					Duration:    "45 min",
					VideoURL:    "https://www.youtube.com/watch?v=sample1",
					Order:       1,
				},
				{
					ID:          "l2",
					Title:       "HTML5 Fundamentals",
					Description: "Deep dive into HTML5 structure, semantic elements, and best practices",
					Duration:    "1.5 hours",
					VideoURL:    "https://www.youtube.com/watch?v=sample2",
					Order:       2,
				},
				{
					ID:          "l3",
					Title:       "CSS3 and Modern Styling",
					Description: "Master CSS3, Flexbox, Grid, and responsive design techniques",
					Duration:    "2 hours",
					VideoURL:    "https://www.youtube.com/watch?v=sample3",
					Order:       3,
				},
			},
		},
		{
			ID:               "2",
			Title:            "Machine Learning and AI Fundamentals",
			Description:      "Dive into the world of artificial intelligence and machine learning. Learn Python, TensorFlow, neural networks, and build intelligent applications.",
			Instructor:       "Prof. Michael Chen",
			InstructorAvatar: avatar("photo-1500648767791-00dcc994a43e"),
			Thumbnail:        thumbnail("photo-1555949963-aa79dcee981c"),
			Price:            129.99,
			Duration:         "68 hours",
			Level:            catalog.LevelIntermediate,
			Category:         "Data Science",
			Rating:           4.9,
			StudentsEnrolled: 8792,
			Featured:         true,
			CreatedAt:        date("2024-02-15T00:00:00Z"),
			Lessons: []catalog.Lesson{
				{
					ID:          "l4",
					Title:       "Introduction to Machine Learning",
					Description: "Understanding ML concepts, types of learning, and real-world applications",
					Duration:    "1 hour",
					Order:       1,
				},
				{
					ID:          "l5",
					Title:       "Python for Data Science",
					Description: "Master Python libraries: NumPy, Pandas, Matplotlib for data analysis",
					Duration:    "2.5 hours",
					Order:       2,
				},
			},
		},
		{
			ID:               "3",
			Title:            "Digital Marketing Masterclass",
			Description:      "Learn SEO, social media marketing, content strategy, email marketing, and analytics. Grow your business or start a marketing career.",
			Instructor:       "Emily Rodriguez",
			InstructorAvatar: avatar("photo-1438761681033-6461ffad8d80"),
			Thumbnail:        thumbnail("photo-1460925895917-afdab827c52f"),
			Price:            79.99,
			Duration:         "42 hours",
			Level:            catalog.LevelBeginner,
			Category:         "Marketing",
			Rating:           4.7,
			StudentsEnrolled: 15621,
			Featured:         true,
			CreatedAt:        date("2024-03-01T00:00:00Z"),
			Lessons: []catalog.Lesson{
				{
					ID:          "l6",
					Title:       "Digital Marketing Overview",
					Description: "Introduction to digital marketing channels and strategies",
					Duration:    "50 min",
					Order:       1,
				},
			},
		},
		{
			ID:               "4",
			Title:            "UI/UX Design Pro: From Beginner to Expert",
			Description:      "Master user interface and user experience design. Learn Figma, design thinking, prototyping, and create stunning designs.",
			Instructor:       "Alex Thompson",
			InstructorAvatar: avatar("photo-1519345182560-3f2917c472ef"),
			Thumbnail:        thumbnail("photo-1561070791-2526d30994b5"),
			Price:            99.99,
			Duration:         "38 hours",
			Level:            catalog.LevelIntermediate,
			Category:         "Design",
			Rating:           4.8,
			StudentsEnrolled: 9234,
			CreatedAt:        date("2024-02-20T00:00:00Z"),
			Lessons: []catalog.Lesson{
				{
					ID:          "l7",
					Title:       "Design Thinking Principles",
					Description: "Understanding user-centered design and design thinking methodology",
					Duration:    "1.2 hours",
					Order:       1,
				},
			},
		},
		{
			ID:               "5",
			Title:            "Cloud Computing with AWS",
			Description:      "Learn Amazon Web Services from scratch. Master EC2, S3, Lambda, and become AWS certified.",
			Instructor:       "David Kumar",
			InstructorAvatar: avatar("photo-1506794778202-cad84cf45f1d"),
			Thumbnail:        thumbnail("photo-1451187580459-43490279c0fa"),
			Price:            119.99,
			Duration:         "55 hours",
			Level:            catalog.LevelAdvanced,
			Category:         "Cloud Computing",
			Rating:           4.9,
			StudentsEnrolled: 6845,
			CreatedAt:        date("2024-01-20T00:00:00Z"),
			Lessons: []catalog.Lesson{
				{
					ID:          "l8",
					Title:       "Introduction to AWS",
					Description: "Getting started with Amazon Web Services and cloud concepts",
					Duration:    "1 hour",
					Order:       1,
				},
			},
		},
		{
			ID:               "6",
			Title:            "Mobile App Development with React Native",
			Description:      "Build cross-platform mobile apps for iOS and Android using React Native and JavaScript.",
			Instructor:       "Lisa Martinez",
			InstructorAvatar: avatar("photo-1487412720507-e7ab37603c6f"),
			Thumbnail:        thumbnail("photo-1512941937669-90a1b58e7e9c"),
			Price:            94.99,
			Duration:         "48 hours",
			Level:            catalog.LevelIntermediate,
			Category:         "Mobile Development",
			Rating:           4.7,
			StudentsEnrolled: 7432,
			CreatedAt:        date("2024-03-10T00:00:00Z"),
			Lessons: []catalog.Lesson{
				{
					ID:          "l9",
					Title:       "React Native Basics",
					Description: "Setting up React Native and understanding core components",
					Duration:    "1.5 hours",
					Order:       1,
				},
			},
		},
	}
}

func seedWebinars() []catalog.Webinar {
	return []catalog.Webinar{
		{
			ID:                  "w1",
			Title:               "The Future of AI in Education",
			Description:         "Join us for an insightful discussion on how artificial intelligence is transforming the educational landscape and what it means for learners and educators.",
			Instructor:          "Prof. Michael Chen",
			InstructorAvatar:    avatar("photo-1500648767791-00dcc994a43e"),
			ScheduledDate:       date("2025-11-15T14:00:00Z"),
			Duration:            "90 minutes",
			MaxParticipants:     500,
			CurrentParticipants: 347,
			Thumbnail:           thumbnail("photo-1485827404703-89b55fcc595e"),
			Category:            "Technology",
		},
		{
			ID:                  "w2",
			Title:               "Live Coding: Building a Full-Stack App",
			Description:         "Watch and learn as we build a complete full-stack application from scratch using React, Node.js, and MongoDB in real-time.",
			Instructor:          "Dr. Sarah Johnson",
			InstructorAvatar:    avatar("photo-1494790108377-be9c29b29330"),
			ScheduledDate:       date("2025-11-12T18:00:00Z"),
			Duration:            "2 hours",
			MaxParticipants:     300,
			CurrentParticipants: 289,
			Thumbnail:           thumbnail("photo-1516116216624-53e697fedbea"),
			IsLive:              true,
			Category:            "Web Development",
			Price:               29.99,
		},
		{
			ID:                  "w3",
			Title:               "Career Path in UI/UX Design",
			Description:         "Discover the roadmap to becoming a successful UI/UX designer, including portfolio tips, job search strategies, and industry insights.",
			Instructor:          "Alex Thompson",
			InstructorAvatar:    avatar("photo-1519345182560-3f2917c472ef"),
			ScheduledDate:       date("2025-11-20T16:00:00Z"),
			Duration:            "60 minutes",
			MaxParticipants:     200,
			CurrentParticipants: 142,
			Thumbnail:           thumbnail("photo-1559028012-481c04fa702d"),
			Category:            "Design",
		},
	}
}

func seedCertificates() []catalog.Certificate {
	return []catalog.Certificate{
		{
			ID:                "cert1",
			UserID:            "1",
			CourseID:          "1",
			CourseName:        "Complete Web Development Bootcamp 2024",
			StudentName:       "John Doe",
			CompletionDate:    date("2024-10-15T00:00:00Z"),
			CertificateNumber: "WD-2024-001234",
		},
	}
}
