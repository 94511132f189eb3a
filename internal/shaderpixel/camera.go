package shaderpixel

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// StartPosition is where the gallery camera spawns and where Reset puts it back.
var StartPosition = Vec3{0, 1.5, 3}

// Input is one frame worth of user intent, independent of the windowing toolkit.
type Input struct {
	Forward, Back, Left, Right bool
	Up, Down                   bool
	LookDX, LookDY             Real // pixels of mouse motion while looking
	Scroll                     Real // wheel steps this frame
}

// Camera is a first-person camera. In walk mode WASD moves in the horizontal plane and
// Up/Down along world Y; in fly mode every axis follows the view orientation.
type Camera struct {
	Position Vec3
	Yaw      Real // radians, 0 looks down -Z
	Pitch    Real // radians, positive looks down
	FlyMode  bool
	Scroll   Real // accumulated wheel steps, scales speed
}

func NewCamera() *Camera {
	return &Camera{Position: StartPosition}
}

// Reset restores the spawn position and orientation, keeping the fly mode.
func (c *Camera) Reset() {
	c.Position = StartPosition
	c.Yaw, c.Pitch, c.Scroll = 0, 0, 0
}

// Speed is units per second after the wheel multiplier.
func (c *Camera) Speed() Real {
	return MoveSpeed * math.Exp(ScrollFactor*c.Scroll)
}

// Forward is the unit view direction in world space.
func (c *Camera) Forward() Vec3 {
	cp := math.Cos(c.Pitch)
	return Vec3{math.Sin(c.Yaw) * cp, -math.Sin(c.Pitch), -math.Cos(c.Yaw) * cp}
}

const (
	lookSensitivity = 0.005
	maxPitch        = 89 * math.Pi / 180
)

// Move applies one frame of input over dt seconds.
func (c *Camera) Move(in Input, dt Real) {
	c.Scroll += in.Scroll
	c.Yaw += in.LookDX * lookSensitivity
	c.Pitch = clamp(c.Pitch+in.LookDY*lookSensitivity, -maxPitch, maxPitch)

	// camera-space translation; diagonals are not normalized
	axis := func(pos, neg bool) Real {
		switch {
		case pos && !neg:
			return 1
		case neg && !pos:
			return -1
		}
		return 0
	}
	local := Vec3{axis(in.Right, in.Left), axis(in.Up, in.Down), axis(in.Back, in.Forward)}
	if local.Len() < epsDist {
		return
	}
	c.Position = c.Position.Add(mulDir(c.moveRotation(), local).Mul(c.Speed() * dt))
}

// moveRotation takes camera-space motion to world space: yaw only in walk mode,
// yaw and pitch in fly mode.
func (c *Camera) moveRotation() mgl64.Mat4 {
	rot := mgl64.HomogRotate3DY(c.Yaw)
	if c.FlyMode {
		rot = mgl64.HomogRotate3DX(c.Pitch).Mul4(rot)
	}
	return rot.Transpose()
}

// View is RotX(pitch)·RotY(yaw)·Translate(-position).
func (c *Camera) View() mgl64.Mat4 {
	p := c.Position
	return mgl64.HomogRotate3DX(c.Pitch).
		Mul4(mgl64.HomogRotate3DY(c.Yaw)).
		Mul4(mgl64.Translate3D(-p[0], -p[1], -p[2]))
}

// Projection is the perspective matrix for the given width/height ratio.
func (c *Camera) Projection(aspect Real) mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(FovYDeg), aspect, Near, Far)
}

// OrbitCamera looks at target from distance dist, rotated by yaw around Y and raised by
// elevation radians. Used to frame a single art piece.
func OrbitCamera(target Vec3, dist, yaw, elevation Real) *Camera {
	off := Vec3{
		math.Sin(yaw) * math.Cos(elevation),
		math.Sin(elevation),
		math.Cos(yaw) * math.Cos(elevation),
	}.Mul(dist)
	c := &Camera{Position: target.Add(off)}
	d := norm(target.Sub(c.Position))
	c.Yaw = math.Atan2(d[0], -d[2])
	c.Pitch = -math.Asin(clamp(d[1], -1, 1))
	return c
}
