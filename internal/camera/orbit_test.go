package camera

import (
	"testing"

	"github.com/Faultbox/fairingkit/pkg/fairing"
	"github.com/Faultbox/fairingkit/pkg/math"
)

func TestPositionOnSphere(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = math.Vec3{X: 1, Y: 2, Z: 3}
	c.Distance = 10
	c.Pitch = 0
	c.Yaw = 0

	want := math.Vec3{X: 1, Y: 2, Z: 13}
	if got := c.Position(); !got.ApproxEqual(want, 1e-5) {
		t.Errorf("Position() = %v, want %v", got, want)
	}

	c.Yaw = 1.2
	c.Pitch = -0.7
	if d := c.Position().Sub(c.Center).Length(); math.Abs(d-10) > 1e-4 {
		t.Errorf("distance from center = %v, want 10", d)
	}
}

func TestViewMatrixLooksAtCenter(t *testing.T) {
	c := NewOrbitCamera()
	c.Center = math.Vec3{Y: 1}
	p := c.ViewMatrix().TransformPoint(c.Center)

	if math.Abs(p.X) > 1e-4 || math.Abs(p.Y) > 1e-4 || math.Abs(p.Z+c.Distance) > 1e-4 {
		t.Errorf("center in view space = %v, want (0,0,-%v)", p, c.Distance)
	}
}

func TestDragClampsPitch(t *testing.T) {
	c := NewOrbitCamera()
	c.HandleDrag(0, 10000)
	if c.Pitch != c.MaxPitch {
		t.Errorf("pitch = %v, want %v", c.Pitch, c.MaxPitch)
	}
	c.HandleDrag(0, -20000)
	if c.Pitch != c.MinPitch {
		t.Errorf("pitch = %v, want %v", c.Pitch, c.MinPitch)
	}

	yaw := c.Yaw
	c.HandleDrag(100, 0)
	if c.Yaw >= yaw {
		t.Errorf("dragging right should decrease yaw, got %v from %v", c.Yaw, yaw)
	}
}

func TestZoomClamps(t *testing.T) {
	c := NewOrbitCamera()
	for i := 0; i < 200; i++ {
		c.HandleZoom(1)
	}
	if c.Distance != c.MinDistance {
		t.Errorf("distance = %v, want min %v", c.Distance, c.MinDistance)
	}
	for i := 0; i < 200; i++ {
		c.HandleZoom(-1)
	}
	if c.Distance != c.MaxDistance {
		t.Errorf("distance = %v, want max %v", c.Distance, c.MaxDistance)
	}
}

func TestFitBounds(t *testing.T) {
	c := NewOrbitCamera()
	b := fairing.Bounds{Min: [3]float32{-1, 0, -1}, Max: [3]float32{1, 4, 1}}
	c.FitBounds(b)

	if !c.Center.ApproxEqual(math.Vec3{Y: 2}, 1e-6) {
		t.Errorf("center = %v, want (0,2,0)", c.Center)
	}
	radius := b.Size().Length() / 2
	if c.Distance < radius {
		t.Errorf("distance %v inside bounding sphere %v", c.Distance, radius)
	}
}
