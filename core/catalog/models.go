package catalog

import "time"

// Levels
const (
	LevelBeginner     = "Beginner"
	LevelIntermediate = "Intermediate"
	LevelAdvanced     = "Advanced"
)

// Payment statuses
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// Payment methods
const (
	MethodCreditCard = "credit_card"
	MethodPayPal     = "paypal"
	MethodStripe     = "stripe"
)

var PaymentMethods = []string{MethodCreditCard, MethodPayPal, MethodStripe}

type Lesson struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Duration    string `json:"duration"`
	VideoURL    string `json:"videoUrl,omitempty"`
	Order       int    `json:"order"`
}

type Course struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Instructor       string    `json:"instructor"`
	InstructorAvatar string    `json:"instructorAvatar"`
	Thumbnail        string    `json:"thumbnail"`
	Price            float64   `json:"price"`
	Duration         string    `json:"duration"`
	Level            string    `json:"level"`
	Category         string    `json:"category"`
	Rating           float64   `json:"rating"`
	StudentsEnrolled int       `json:"studentsEnrolled"`
	Lessons          []Lesson  `json:"lessons"`
	CreatedAt        time.Time `json:"createdAt"`
	Featured         bool      `json:"featured,omitempty"`
}

// Lesson returns the lesson with the given id, if the course has it.
func (c *Course) Lesson(id string) (Lesson, bool) {
	for _, l := range c.Lessons {
		if l.ID == id {
			return l, true
		}
	}
	return Lesson{}, false
}

// Revenue is what the course grossed at list price.
func (c *Course) Revenue() float64 {
	return c.Price * float64(c.StudentsEnrolled)
}

type Webinar struct {
	ID                  string    `json:"id"`
	Title               string    `json:"title"`
	Description         string    `json:"description"`
	Instructor          string    `json:"instructor"`
	InstructorAvatar    string    `json:"instructorAvatar"`
	ScheduledDate       time.Time `json:"scheduledDate"`
	Duration            string    `json:"duration"`
	MaxParticipants     int       `json:"maxParticipants"`
	CurrentParticipants int       `json:"currentParticipants"`
	Thumbnail           string    `json:"thumbnail"`
	IsLive              bool      `json:"isLive"`
	Category            string    `json:"category"`
	Price               float64   `json:"price"`
}

func (w *Webinar) IsFree() bool { return w.Price == 0 }

// SeatsLeft never goes below zero.
func (w *Webinar) SeatsLeft() int {
	if n := w.MaxParticipants - w.CurrentParticipants; n > 0 {
		return n
	}
	return 0
}

type Certificate struct {
	ID                string    `json:"id"`
	UserID            string    `json:"userId"`
	CourseID          string    `json:"courseId"`
	CourseName        string    `json:"courseName"`
	StudentName       string    `json:"studentName"`
	CompletionDate    time.Time `json:"completionDate"`
	CertificateNumber string    `json:"certificateNumber"`
}

// Payment is only ever produced as the receipt of a simulated checkout.
type Payment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	CourseID  string    `json:"courseId"`
	Amount    float64   `json:"amount"`
	Status    string    `json:"status"`
	Method    string    `json:"method"`
	CreatedAt time.Time `json:"createdAt"`
}

type Enrollment struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	CourseID    string    `json:"courseId"`
	Progress    int       `json:"progress"`
	EnrolledAt  time.Time `json:"enrolledAt"`
	CompletedAt time.Time `json:"completedAt,omitempty"`
}
