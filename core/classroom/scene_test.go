package classroom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/eduverse/core"
)

func TestLayout(t *testing.T) {
	l := studentLayout()
	assert.Equal(t, 15, l.Capacity())

	seats := l.Seats()
	require.Len(t, seats, 15)
	assert.Equal(t, Vec3{-3, 0, -2}, seats[0].Position)
	assert.Equal(t, Vec3{3, 0, -2}, seats[3].Position)
	assert.Equal(t, Vec3{-2, 0, 4}, seats[12].Position)
	assert.Equal(t, Vec3{0, 0, 4}, seats[13].Position)

	students := l.Students()
	require.Len(t, students, 15)
	assert.Equal(t, "student-1-1", students[0].Name)
	assert.Equal(t, "girl", students[0].Figure)
	assert.Equal(t, "man", students[1].Figure)
	assert.Equal(t, "man", students[4].Figure) // second row starts shifted
	assert.Equal(t, 0.95, students[0].Transform.Scale)
}

func TestScene_Validate(t *testing.T) {
	validate, _ := core.NewValidator()

	for name, s := range Variants() {
		t.Run(name, func(t *testing.T) {
			assert.NoError(t, s.Validate(validate))
		})
	}

	tests := []struct {
		name   string
		mutate func(s *Scene)
	}{
		{"min distance above max", func(s *Scene) { s.Orbit.MinDistance = 40 }},
		{"negative distance", func(s *Scene) { s.Orbit.MinDistance = -1 }},
		{"polar angle over pi", func(s *Scene) { s.Orbit.MaxPolarAngle = 4 }},
		{"min polar above max", func(s *Scene) { s.Orbit.MinPolarAngle = math.Pi / 2 }},
		{"bad background", func(s *Scene) { s.Background = "navy" }},
		{"unknown light", func(s *Scene) { s.Lights[0].Kind = "neon" }},
		{"empty row", func(s *Scene) { s.Layout.Rows = []int{4, 0} }},
		{"unknown teacher figure", func(s *Scene) { s.Teacher.Figure = "robot" }},
		{"unknown student figure", func(s *Scene) { s.Layout.Figures = []string{"girl", "robot"} }},
		{"flat whiteboard", func(s *Scene) { s.Whiteboard.Height = 0 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := PrimitivesScene()
			tc.mutate(&s)
			assert.Error(t, s.Validate(validate))
		})
	}
}

func TestScene_ModelRefs(t *testing.T) {
	s := ModelsScene()
	assert.Equal(t, []string{"/classroom/scene.gltf", "/man_sitting/scene.gltf", "/sitting_girl/scene.gltf"}, s.ModelRefs())

	p := PrimitivesScene()
	assert.Empty(t, p.ModelRefs())
}

func TestScene_Copy(t *testing.T) {
	s := PrimitivesScene()
	c := s.Copy()
	c.Lights[0].Intensity = 9
	c.Figures["man"] = Figure{Color: "#000000"}
	c.Layout.Rows[0] = 1
	c.Whiteboard.Text = "changed"

	assert.Equal(t, 0.5, s.Lights[0].Intensity)
	assert.Equal(t, "#3B82F6", s.Figures["man"].Color)
	assert.Equal(t, 4, s.Layout.Rows[0])
	assert.Equal(t, "3D Web Development", s.Whiteboard.Text)
}

func TestVariant(t *testing.T) {
	s, ok := Variant(VariantModels)
	assert.True(t, ok)
	assert.Equal(t, VariantModels, s.Name)

	_, ok = Variant("holodeck")
	assert.False(t, ok)
}
