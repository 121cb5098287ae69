package classroom

import "math"

// OrbitCamera orbits a target on a sphere, kept within OrbitBounds.
// Angles are in radians; the polar angle is measured from the up axis.
type OrbitCamera struct {
	bounds  OrbitBounds
	target  Vec3
	radius  float64
	azimuth float64
	polar   float64
}

// NewOrbitCamera starts at the camera position, clamped into bounds.
func NewOrbitCamera(cam Camera, bounds OrbitBounds) *OrbitCamera {
	offset := cam.Position.Sub(bounds.Target)
	r := offset.Length()
	o := &OrbitCamera{bounds: bounds, target: bounds.Target, radius: r}
	if r > 0 {
		o.polar = math.Acos(clamp(offset[1]/r, -1, 1))
		o.azimuth = math.Atan2(offset[0], offset[2])
	}
	o.clamp()
	return o
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func (o *OrbitCamera) clamp() {
	o.radius = clamp(o.radius, o.bounds.MinDistance, o.bounds.MaxDistance)
	o.polar = clamp(o.polar, o.bounds.MinPolarAngle, o.bounds.MaxPolarAngle)
}

// Rotate moves around the target by the given azimuth and polar deltas.
func (o *OrbitCamera) Rotate(dAzimuth, dPolar float64) {
	if !o.bounds.EnableRotate {
		return
	}
	o.azimuth += dAzimuth
	o.polar += dPolar
	o.clamp()
}

// Zoom multiplies the distance to the target; factors below 1 get closer.
func (o *OrbitCamera) Zoom(factor float64) {
	if !o.bounds.EnableZoom || factor <= 0 {
		return
	}
	o.radius *= factor
	o.clamp()
}

// Pan slides the target, and the camera with it, in the view plane.
func (o *OrbitCamera) Pan(dx, dy float64) {
	if !o.bounds.EnablePan {
		return
	}
	forward := o.target.Sub(o.Position()).Normalize()
	right := forward.Cross(Vec3{0, 1, 0}).Normalize()
	up := right.Cross(forward)
	o.target = o.target.Add(right.Scale(dx)).Add(up.Scale(dy))
}

func (o *OrbitCamera) Target() Vec3        { return o.target }
func (o *OrbitCamera) Distance() float64   { return o.radius }
func (o *OrbitCamera) PolarAngle() float64 { return o.polar }
func (o *OrbitCamera) Azimuth() float64    { return o.azimuth }

func (o *OrbitCamera) Position() Vec3 {
	sin := math.Sin(o.polar)
	return o.target.Add(Vec3{
		o.radius * sin * math.Sin(o.azimuth),
		o.radius * math.Cos(o.polar),
		o.radius * sin * math.Cos(o.azimuth),
	})
}

// CameraState is where an orbit camera stands.
type CameraState struct {
	Position Vec3    `json:"position"`
	Target   Vec3    `json:"target"`
	Distance float64 `json:"distance"`
	Azimuth  float64 `json:"azimuth"`
	Polar    float64 `json:"polar"`
}

func (o *OrbitCamera) State() CameraState {
	return CameraState{
		Position: o.Position(),
		Target:   o.target,
		Distance: o.radius,
		Azimuth:  o.azimuth,
		Polar:    o.polar,
	}
}

// CameraMove is one gesture. Zero fields leave the camera where it is.
type CameraMove struct {
	From   *CameraState `json:"from"`   // the scene camera when nil
	Rotate [2]float64   `json:"rotate"` // azimuth and polar deltas
	Zoom   float64      `json:"zoom"`   // distance factor
	Pan    [2]float64   `json:"pan"`
}

// MoveCamera applies m within the scene's orbit bounds.
func MoveCamera(s Scene, m CameraMove) CameraState {
	o := NewOrbitCamera(s.Camera, s.Orbit)
	if m.From != nil {
		o = &OrbitCamera{
			bounds:  s.Orbit,
			target:  m.From.Target,
			radius:  m.From.Distance,
			azimuth: m.From.Azimuth,
			polar:   m.From.Polar,
		}
		o.clamp()
	}
	o.Rotate(m.Rotate[0], m.Rotate[1])
	o.Zoom(m.Zoom)
	o.Pan(m.Pan[0], m.Pan[1])
	return o.State()
}
