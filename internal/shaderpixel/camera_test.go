package shaderpixel

import (
	"math"
	"testing"
)

func TestCameraViewLooksDownMinusZ(t *testing.T) {
	c := NewCamera()
	if c.Position != StartPosition {
		t.Fatalf("start position %v", c.Position)
	}
	// a point straight ahead ends up on the -Z axis of view space
	ahead := c.Position.Add(Vec3{0, 0, -5})
	v := mulPos(c.View(), ahead)
	if math.Abs(v[0]) > 1e-12 || math.Abs(v[1]) > 1e-12 || math.Abs(v[2]+5) > 1e-12 {
		t.Fatalf("view space %v", v)
	}
	c.Yaw, c.Pitch = 0.7, 0.3
	v = mulPos(c.View(), c.Position.Add(c.Forward().Mul(2)))
	if math.Abs(v[0]) > 1e-9 || math.Abs(v[1]) > 1e-9 || math.Abs(v[2]+2) > 1e-9 {
		t.Fatalf("Forward() does not match View(): %v", v)
	}
}

func TestCameraMove(t *testing.T) {
	c := NewCamera()
	c.Move(Input{Forward: true}, 1)
	want := StartPosition.Add(Vec3{0, 0, -MoveSpeed})
	if c.Position.Sub(want).Len() > 1e-12 {
		t.Fatalf("walk forward: %v, want %v", c.Position, want)
	}
	// walk mode ignores pitch
	c.Reset()
	c.Pitch = 0.5
	c.Move(Input{Forward: true}, 1)
	if math.Abs(c.Position[1]-StartPosition[1]) > 1e-12 {
		t.Fatalf("walk mode changed height: %v", c.Position)
	}
	// fly mode follows it
	c.Reset()
	c.FlyMode = true
	c.Pitch = 0.5
	c.Move(Input{Forward: true}, 1)
	if !(c.Position[1] < StartPosition[1]) {
		t.Fatalf("fly mode looking down must descend: %v", c.Position)
	}
}

func TestCameraMoveFollowsOrientation(t *testing.T) {
	// diagonal motion is the plain sum of both axes
	c := NewCamera()
	c.Move(Input{Forward: true, Right: true}, 1)
	if d := c.Position.Sub(StartPosition); math.Abs(d.Len()-MoveSpeed*math.Sqrt2) > 1e-12 {
		t.Fatalf("diagonal moved %g", d.Len())
	}
	// walk mode: up is world up whatever the pitch
	c.Reset()
	c.Pitch = 0.5
	c.Move(Input{Up: true}, 1)
	if d := c.Position.Sub(StartPosition.Add(Vec3{0, MoveSpeed, 0})); d.Len() > 1e-12 {
		t.Fatalf("walk up: %v", c.Position)
	}
	// fly mode: up is the camera's up, tilted with the pitch
	c.Reset()
	c.FlyMode = true
	c.Pitch = 0.5
	c.Move(Input{Up: true}, 1)
	want := StartPosition.Add(Vec3{0, math.Cos(0.5), -math.Sin(0.5)}.Mul(MoveSpeed))
	if c.Position.Sub(want).Len() > 1e-12 {
		t.Fatalf("fly up: %v, want %v", c.Position, want)
	}
	// fly forward is exactly the view direction
	c.Reset()
	c.Yaw, c.Pitch = 0.7, -0.3
	c.Move(Input{Forward: true}, 0.5)
	if d := c.Position.Sub(StartPosition.Add(c.Forward().Mul(MoveSpeed * 0.5))); d.Len() > 1e-12 {
		t.Fatalf("fly forward off by %v", d)
	}
}

func TestCameraScrollSpeed(t *testing.T) {
	c := NewCamera()
	c.Move(Input{Scroll: 2}, 0)
	if math.Abs(c.Speed()-MoveSpeed*math.Exp(0.8)) > 1e-12 {
		t.Fatalf("speed %g", c.Speed())
	}
	c.Move(Input{LookDY: 1e6}, 0)
	if c.Pitch > maxPitch+1e-12 {
		t.Fatalf("pitch not clamped: %g", c.Pitch)
	}
	c.Reset()
	if c.Speed() != MoveSpeed || c.Pitch != 0 {
		t.Fatal("reset")
	}
}

func TestOrbitCameraFacesTarget(t *testing.T) {
	c := OrbitCamera(Vec3{}, 3, 0.4, 0.3)
	if math.Abs(c.Position.Len()-3) > 1e-12 {
		t.Fatalf("orbit radius %g", c.Position.Len())
	}
	if d := c.Forward().Sub(norm(c.Position.Mul(-1))).Len(); d > 1e-9 {
		t.Fatalf("orbit camera not facing the target (off by %g)", d)
	}
}

func TestContainerStage(t *testing.T) {
	cam := NewCamera()
	model := artModel(Vec3{0, 1.5, 0}, 0)
	s := NewContainerStage(model, cam.View(), cam.Projection(4.0/3.0), cam.Position)
	// camera at (0,1.5,3) is at object z = 3/0.5 = 6
	if s.CamObj.Sub(Vec3{0, 0, 6}).Len() > 1e-9 {
		t.Fatalf("object-space camera %v", s.CamObj)
	}
	if s.CameraInside() {
		t.Fatal("camera is outside")
	}
	if d := s.ContainerDist(Vec3{0, 0, 1}); math.Abs(d-5) > 1e-9 {
		t.Fatalf("container distance %g", d)
	}
	in := s.Fragment(Vec3{0.5, 0, 1}, [2]Real{}, [2]Real{1, 1}, 0)
	if math.Abs(in.ContainerDist-math.Sqrt(25.25)) > 1e-9 {
		t.Fatalf("fragment container distance %g", in.ContainerDist)
	}
	if in.Dir.Sub(norm(Vec3{0.5, 0, -5})).Len() > 1e-9 {
		t.Fatalf("fragment dir %v", in.Dir)
	}
	clip := s.Clip(Vec3{0, 0, 1})
	if math.Abs(clip[0]/clip[3]) > 1e-9 || math.Abs(clip[1]/clip[3]) > 1e-9 {
		t.Fatalf("front face center should project to the screen center: %v", clip)
	}
	if d := s.WorldDepth(Vec3{0, 0, 1}); math.Abs(d-2.5) > 1e-9 {
		t.Fatalf("world depth %g", d)
	}
}
