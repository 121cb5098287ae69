package classroom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrbitCamera(t *testing.T) {
	s := ModelsScene()
	o := NewOrbitCamera(s.Camera, s.Orbit)

	assert.InDelta(t, math.Sqrt(4*4+15*15), o.Distance(), 1e-9)
	assertVec(t, s.Camera.Position, o.Position())

	tests := []struct {
		name      string
		move      func(o *OrbitCamera)
		distance  float64
		polar     float64
		checkDist bool
	}{
		{name: "zoom in past min", move: func(o *OrbitCamera) { o.Zoom(0.1) }, distance: 8, checkDist: true},
		{name: "zoom out past max", move: func(o *OrbitCamera) { o.Zoom(100) }, distance: 30, checkDist: true},
		{name: "rotate over the top", move: func(o *OrbitCamera) { o.Rotate(0, -10) }, polar: math.Pi / 6},
		{name: "rotate under the floor", move: func(o *OrbitCamera) { o.Rotate(0, 10) }, polar: math.Pi / 2.2},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			o := NewOrbitCamera(s.Camera, s.Orbit)
			tc.move(o)
			if tc.checkDist {
				assert.InDelta(t, tc.distance, o.Distance(), 1e-9)
			} else {
				assert.InDelta(t, tc.polar, o.PolarAngle(), 1e-9)
			}
			assert.InDelta(t, o.Distance(), o.Position().Sub(o.Target()).Length(), 1e-9)
		})
	}
}

func TestOrbitCamera_outOfBoundsStart(t *testing.T) {
	s := ModelsScene()
	o := NewOrbitCamera(Camera{Position: Vec3{0, 100, -1}}, s.Orbit)
	assert.InDelta(t, 30, o.Distance(), 1e-9)
	assert.InDelta(t, math.Pi/6, o.PolarAngle(), 1e-9)
}

func TestOrbitCamera_Pan(t *testing.T) {
	s := ModelsScene()
	o := NewOrbitCamera(s.Camera, s.Orbit)

	o.Pan(2, 0)
	assertVec(t, Vec3{2, 2, -1}, o.Target()) // looking down -z, right is +x
	assert.InDelta(t, math.Sqrt(4*4+15*15), o.Distance(), 1e-9)

	bounds := s.Orbit
	bounds.EnablePan = false
	bounds.EnableZoom = false
	bounds.EnableRotate = false
	fixed := NewOrbitCamera(s.Camera, bounds)
	fixed.Pan(2, 2)
	fixed.Zoom(2)
	fixed.Rotate(1, 1)
	assertVec(t, s.Camera.Position, fixed.Position())
}

func TestMoveCamera(t *testing.T) {
	s := ModelsScene()

	start := MoveCamera(s, CameraMove{})
	assertVec(t, s.Camera.Position, start.Position)
	assertVec(t, s.Orbit.Target, start.Target)

	far := MoveCamera(s, CameraMove{Zoom: 100})
	assert.InDelta(t, 30, far.Distance, 1e-9)

	top := MoveCamera(s, CameraMove{From: &far, Rotate: [2]float64{0.5, -10}})
	assert.InDelta(t, 30, top.Distance, 1e-9, "resumes from the given state")
	assert.InDelta(t, math.Pi/6, top.Polar, 1e-9)
	assert.InDelta(t, far.Azimuth+0.5, top.Azimuth, 1e-9)

	panned := MoveCamera(s, CameraMove{Pan: [2]float64{2, 0}})
	assertVec(t, Vec3{2, 2, -1}, panned.Target)

	outside := CameraState{Target: s.Orbit.Target, Distance: 1, Polar: 0}
	clamped := MoveCamera(s, CameraMove{From: &outside})
	assert.InDelta(t, 8, clamped.Distance, 1e-9)
	assert.InDelta(t, math.Pi/6, clamped.Polar, 1e-9)
	assert.InDelta(t, clamped.Distance, clamped.Position.Sub(clamped.Target).Length(), 1e-9)
}
