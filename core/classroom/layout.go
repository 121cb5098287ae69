package classroom

import "fmt"

// Layout places the students in rows facing the front (negative z).
// Row i sits at FrontZ + i*RowSpacing; seats of a row are centred on x = 0, SeatSpacing apart.
type Layout struct {
	Rows         []int    `json:"rows" validate:"required,dive,gt=0"`
	FrontZ       float64  `json:"frontZ"`
	RowSpacing   float64  `json:"rowSpacing" validate:"gt=0"`
	SeatSpacing  float64  `json:"seatSpacing" validate:"gt=0"`
	StudentScale float64  `json:"studentScale" validate:"gt=0"`
	Figures      []string `json:"figures" validate:"required,min=1"` // alternated across rows and seats
	Furniture    bool     `json:"furniture"`                         // a desk and a chair per seat
}

// Seat is one student position.
type Seat struct {
	Row, Index int
	Position   Vec3
}

func (l Layout) Seats() []Seat {
	var seats []Seat
	for r, n := range l.Rows {
		z := l.FrontZ + float64(r)*l.RowSpacing
		for i := 0; i < n; i++ {
			x := (float64(i) - float64(n-1)/2) * l.SeatSpacing
			seats = append(seats, Seat{Row: r, Index: i, Position: Vec3{x, 0, z}})
		}
	}
	return seats
}

func (l Layout) Capacity() int {
	var n int
	for _, r := range l.Rows {
		n += r
	}
	return n
}

// Students turns the seats into actors, alternating figures like a checkerboard.
func (l Layout) Students() []Actor {
	seats := l.Seats()
	actors := make([]Actor, 0, len(seats))
	for _, s := range seats {
		actors = append(actors, Actor{
			Name:   fmt.Sprintf("student-%d-%d", s.Row+1, s.Index+1),
			Figure: l.Figures[(s.Row+s.Index)%len(l.Figures)],
			Transform: Transform{
				Position: s.Position,
				Scale:    l.StudentScale,
			},
		})
	}
	return actors
}
