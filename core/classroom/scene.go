// Package classroom describes the 3D virtual classroom: one scene description per variant,
// the scene graph built from it, the orbit camera bounds and the idle animation.
package classroom

import (
	"math"
	"sort"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// Variants
const (
	VariantModels     = "models"
	VariantPrimitives = "primitives"
)

// Light kinds
const (
	LightAmbient     = "ambient"
	LightDirectional = "directional"
	LightPoint       = "point"
	LightSpot        = "spot"
)

type (
	// Scene is everything the renderer needs; variants only differ in data.
	Scene struct {
		Name       string            `json:"name" validate:"required"`
		Background string            `json:"background" validate:"required,hexcolor"`
		Camera     Camera            `json:"camera"`
		Orbit      OrbitBounds       `json:"orbit"`
		Lights     []Light           `json:"lights" validate:"required,dive"`
		Room       Room              `json:"room"`
		Figures    map[string]Figure `json:"figures" validate:"required,dive"`
		Teacher    Actor             `json:"teacher"`
		Layout     Layout            `json:"layout"`
		Whiteboard *Whiteboard       `json:"whiteboard,omitempty"`
	}

	Camera struct {
		Position Vec3    `json:"position"`
		FOV      float64 `json:"fov" validate:"gt=0,lt=180"`
	}

	// OrbitBounds constrains the orbit camera around Target.
	OrbitBounds struct {
		Target        Vec3    `json:"target"`
		MinDistance   float64 `json:"minDistance" validate:"gt=0"`
		MaxDistance   float64 `json:"maxDistance" validate:"gtefield=MinDistance"`
		MinPolarAngle float64 `json:"minPolarAngle" validate:"angle"`
		MaxPolarAngle float64 `json:"maxPolarAngle" validate:"angle,gtefield=MinPolarAngle"`
		EnablePan     bool    `json:"enablePan"`
		EnableZoom    bool    `json:"enableZoom"`
		EnableRotate  bool    `json:"enableRotate"`
		DampingFactor float64 `json:"dampingFactor" validate:"gte=0,lte=1"`
	}

	Light struct {
		Kind       string  `json:"kind" validate:"oneof=ambient directional point spot"`
		Position   Vec3    `json:"position"`
		Target     *Vec3   `json:"target,omitempty"`
		Intensity  float64 `json:"intensity" validate:"gte=0"`
		Color      string  `json:"color,omitempty" validate:"omitempty,hexcolor"`
		Distance   float64 `json:"distance,omitempty" validate:"gte=0"`
		Angle      float64 `json:"angle,omitempty" validate:"omitempty,angle"`
		Penumbra   float64 `json:"penumbra,omitempty" validate:"gte=0,lte=1"`
		CastShadow bool    `json:"castShadow,omitempty"`
	}

	// Room is a floor and three walls, or a model asset when Model is set.
	Room struct {
		Model      string  `json:"model,omitempty"`
		Width      float64 `json:"width" validate:"gt=0"`
		Depth      float64 `json:"depth" validate:"gt=0"`
		Height     float64 `json:"height" validate:"gt=0"`
		FloorColor string  `json:"floorColor" validate:"hexcolor"`
		WallColor  string  `json:"wallColor" validate:"hexcolor"`
	}

	// Figure is a humanoid look: a model asset, or primitives in the given colors when Model is empty.
	Figure struct {
		Model     string `json:"model,omitempty"`
		Color     string `json:"color" validate:"hexcolor"`
		SkinColor string `json:"skinColor" validate:"hexcolor"`
	}

	Actor struct {
		Name      string    `json:"name" validate:"required"`
		Figure    string    `json:"figure" validate:"required"`
		Transform Transform `json:"transform"`
	}

	Whiteboard struct {
		Transform Transform `json:"transform"`
		Width     float64   `json:"width" validate:"gt=0"`
		Height    float64   `json:"height" validate:"gt=0"`
		Text      string    `json:"text"`
	}
)

// Validate checks struct constraints, then that every actor uses a known figure.
func (s *Scene) Validate(validate *validator.Validate) error {
	if err := validate.Struct(s); err != nil {
		return err
	}
	if _, ok := s.Figures[s.Teacher.Figure]; !ok {
		return errors.Errorf("teacher: unknown figure %q", s.Teacher.Figure)
	}
	for _, f := range s.Layout.Figures {
		if _, ok := s.Figures[f]; !ok {
			return errors.Errorf("layout: unknown figure %q", f)
		}
	}
	return nil
}

// ModelRefs lists the distinct model assets the scene refers to, sorted.
func (s *Scene) ModelRefs() []string {
	seen := make(map[string]struct{})
	if s.Room.Model != "" {
		seen[s.Room.Model] = struct{}{}
	}
	for _, f := range s.Figures {
		if f.Model != "" {
			seen[f.Model] = struct{}{}
		}
	}
	refs := make([]string, 0, len(seen))
	for ref := range seen {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return refs
}

// Copy returns a deep copy, so that asset fallbacks never alter a shared description.
func (s Scene) Copy() Scene {
	lights := make([]Light, len(s.Lights))
	copy(lights, s.Lights)
	s.Lights = lights

	figures := make(map[string]Figure, len(s.Figures))
	for k, v := range s.Figures {
		figures[k] = v
	}
	s.Figures = figures

	s.Layout.Rows = append([]int(nil), s.Layout.Rows...)
	s.Layout.Figures = append([]string(nil), s.Layout.Figures...)
	if s.Whiteboard != nil {
		wb := *s.Whiteboard
		s.Whiteboard = &wb
	}
	return s
}

// Variants returns the known scene descriptions by name.
func Variants() map[string]Scene {
	return map[string]Scene{
		VariantModels:     ModelsScene(),
		VariantPrimitives: PrimitivesScene(),
	}
}

// Variant returns the named scene description; ok is false for an unknown name.
func Variant(name string) (Scene, bool) {
	s, ok := Variants()[name]
	return s, ok
}

func vec(x, y, z float64) *Vec3 { return &Vec3{x, y, z} }

func defaultOrbit() OrbitBounds {
	return OrbitBounds{
		Target:        Vec3{0, 2, -1},
		MinDistance:   8,
		MaxDistance:   30,
		MinPolarAngle: math.Pi / 6,
		MaxPolarAngle: math.Pi / 2.2,
		EnablePan:     true,
		EnableZoom:    true,
		EnableRotate:  true,
		DampingFactor: 0.05,
	}
}

func studentLayout() Layout {
	return Layout{
		Rows:         []int{4, 4, 4, 3},
		FrontZ:       -2,
		RowSpacing:   2,
		SeatSpacing:  2,
		StudentScale: 0.95,
		Figures:      []string{"girl", "man"},
	}
}

// ModelsScene is the classroom made of model assets; the room model carries the furniture and blackboard.
func ModelsScene() Scene {
	layout := studentLayout()
	return Scene{
		Name:       VariantModels,
		Background: "#0f172a",
		Camera:     Camera{Position: Vec3{0, 6, 14}, FOV: 60},
		Orbit:      defaultOrbit(),
		Lights: []Light{
			{Kind: LightAmbient, Intensity: 0.7},
			{Kind: LightDirectional, Position: Vec3{8, 12, 6}, Intensity: 1.5, CastShadow: true},
			{Kind: LightPoint, Position: Vec3{-4, 6, -2}, Intensity: 0.8, Color: "#FFF8E1", Distance: 12},
			{Kind: LightPoint, Position: Vec3{4, 6, -2}, Intensity: 0.8, Color: "#FFF8E1", Distance: 12},
			{Kind: LightPoint, Position: Vec3{-4, 6, 2}, Intensity: 0.8, Color: "#FFF8E1", Distance: 12},
			{Kind: LightPoint, Position: Vec3{4, 6, 2}, Intensity: 0.8, Color: "#FFF8E1", Distance: 12},
			{Kind: LightSpot, Position: Vec3{0, 8, -3}, Target: vec(0, 1, -5), Intensity: 1.2, Angle: 0.6, Penumbra: 0.3, CastShadow: true},
		},
		Room: Room{
			Model:      "/classroom/scene.gltf",
			Width:      14,
			Depth:      16,
			Height:     7,
			FloorColor: "#8B7355",
			WallColor:  "#E8E4D9",
		},
		Figures: map[string]Figure{
			"man":  {Model: "/man_sitting/scene.gltf", Color: "#3B82F6", SkinColor: "#F1C27D"},
			"girl": {Model: "/sitting_girl/scene.gltf", Color: "#EC4899", SkinColor: "#E0AC69"},
		},
		Teacher: Actor{
			Name:      "Prof. David Martinez",
			Figure:    "man",
			Transform: At(0, 0, -5).RotatedY(math.Pi).Scaled(1.1),
		},
		Layout: layout,
	}
}

// PrimitivesScene builds everything from boxes and spheres: desks, chairs, figures and a whiteboard.
func PrimitivesScene() Scene {
	layout := studentLayout()
	layout.Furniture = true
	return Scene{
		Name:       VariantPrimitives,
		Background: "#0f172a",
		Camera:     Camera{Position: Vec3{0, 6, 14}, FOV: 60},
		Orbit:      defaultOrbit(),
		Lights: []Light{
			{Kind: LightAmbient, Intensity: 0.5},
			{Kind: LightDirectional, Position: Vec3{5, 10, 5}, Intensity: 1, CastShadow: true},
			{Kind: LightPoint, Position: Vec3{0, 6, 0}, Intensity: 0.6, Color: "#FFFFFF", Distance: 20},
			{Kind: LightSpot, Position: Vec3{0, 8, -3}, Target: vec(0, 2, -6), Intensity: 1, Angle: 0.5, Penumbra: 0.4, CastShadow: true},
		},
		Room: Room{
			Width:      14,
			Depth:      16,
			Height:     7,
			FloorColor: "#8B7355",
			WallColor:  "#E8E4D9",
		},
		Figures: map[string]Figure{
			"teacher": {Color: "#1E3A8A", SkinColor: "#F1C27D"},
			"man":     {Color: "#3B82F6", SkinColor: "#F1C27D"},
			"girl":    {Color: "#EC4899", SkinColor: "#E0AC69"},
		},
		Teacher: Actor{
			Name:      "Prof. David Martinez",
			Figure:    "teacher",
			Transform: At(0, 0, -5).RotatedY(math.Pi).Scaled(1.1),
		},
		Layout: layout,
		Whiteboard: &Whiteboard{
			Transform: At(0, 3, -7.4),
			Width:     6,
			Height:    2.5,
			Text:      "3D Web Development",
		},
	}
}
