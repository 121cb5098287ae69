package classroom

type (
	Participant struct {
		Name       string `json:"name"`
		Instructor bool   `json:"instructor"`
	}

	ChatMessage struct {
		Author string `json:"author"`
		Text   string `json:"text"`
	}

	SessionInfo struct {
		Status   string `json:"status"`
		Duration string `json:"duration"`
		Topic    string `json:"topic"`
		Course   string `json:"course"`
	}
)

// Initial returns the first letter of the name, used as avatar.
func (p Participant) Initial() string {
	for _, r := range p.Name {
		return string(r)
	}
	return ""
}

// Participants is the static roster; the instructor comes first.
func Participants() []Participant {
	names := []string{
		"Emma Johnson", "Michael Chen", "Sarah Williams", "James Anderson",
		"Olivia Garcia", "William Brown", "Sophia Davis", "Robert Miller",
		"Isabella Wilson", "John Taylor", "Mia Thomas", "David Moore",
		"Emily Jackson", "Daniel White", "Ava Harris",
	}
	ps := make([]Participant, 0, len(names)+1)
	ps = append(ps, Participant{Name: "Prof. David Martinez (Instructor)", Instructor: true})
	for _, n := range names {
		ps = append(ps, Participant{Name: n})
	}
	return ps
}

// Transcript is the static chat history. Posted messages are accepted and discarded.
func Transcript() []ChatMessage {
	return []ChatMessage{
		{"Prof. David Martinez", "Welcome everyone! Today we'll explore advanced concepts in 3D web development."},
		{"Emma Johnson", "Thank you Professor! Looking forward to this session."},
		{"Michael Chen", "This virtual classroom is incredible! So immersive!"},
		{"Sarah Williams", "Can't wait to learn about Three.js and WebGL!"},
	}
}

// NewSessionInfo labels the session with a course name; an empty one keeps the default label.
func NewSessionInfo(course string) SessionInfo {
	if course == "" {
		course = "Advanced Web Dev"
	}
	return SessionInfo{
		Status:   "Live Session",
		Duration: "1h 30min",
		Topic:    "3D Web Development",
		Course:   course,
	}
}
