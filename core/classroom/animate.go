package classroom

import "math"

// Pose is the animated local rotation of one node at a given time.
type Pose struct {
	Path     string `json:"path"`
	Rotation Vec3   `json:"rotation"`
}

const (
	headAmplitude = 0.15 // radians
	headSpeed     = 0.8  // radians per second
	armRest       = -0.6
	armAmplitude  = 0.35
	armSpeed      = 2.0
)

// Frame returns the idle animation poses at elapsed seconds: every primitive head turns a
// little, each with its own phase, and the teacher gestures with the right arm.
// It only depends on elapsed and never fails.
func (g *Graph) Frame(elapsed float64) []Pose {
	poses := make([]Pose, 0, len(g.heads)+1)
	for i, path := range g.heads {
		phase := float64(i) * 0.7
		poses = append(poses, Pose{Path: path, Rotation: Vec3{0, headAmplitude * math.Sin(elapsed*headSpeed+phase), 0}})
	}
	if g.arm != "" {
		poses = append(poses, Pose{Path: g.arm, Rotation: Vec3{armRest + armAmplitude*math.Sin(elapsed*armSpeed), 0, 0}})
	}
	return poses
}

// Animate applies the poses of Frame(elapsed) to the graph and updates world transforms.
// The graph must not be shared between goroutines while animating.
func (g *Graph) Animate(elapsed float64) {
	for _, p := range g.Frame(elapsed) {
		if n, ok := g.Find(p.Path); ok {
			n.Local.Rotation = p.Rotation
		}
	}
	g.Update()
}
