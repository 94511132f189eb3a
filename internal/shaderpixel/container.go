package shaderpixel

import (
	"github.com/go-gl/mathgl/mgl64"
)

// ContainerStage is the vertex side shared by every 3D program: the art lives in the
// object space of a unit cube placed in the world by Model.
type ContainerStage struct {
	Model    mgl64.Mat4
	inverse  mgl64.Mat4
	mvp      mgl64.Mat4
	CamWorld Vec3
	CamObj   Vec3
}

// NewContainerStage prepares the per-frame matrices.
func NewContainerStage(model, view, proj mgl64.Mat4, camWorld Vec3) *ContainerStage {
	s := &ContainerStage{Model: model, inverse: model.Inv(), CamWorld: camWorld}
	s.mvp = proj.Mul4(view).Mul4(model)
	s.CamObj = mulPos(s.inverse, camWorld)
	return s
}

// Clip transforms an object-space vertex to clip space.
func (s *ContainerStage) Clip(pos Vec3) mgl64.Vec4 {
	return s.mvp.Mul4x1(pos.Vec4(1))
}

// ContainerDist is the object-space distance from the camera to a point on the container.
func (s *ContainerStage) ContainerDist(pos Vec3) Real {
	return pos.Sub(s.CamObj).Len()
}

// CameraInside reports whether the camera sits in the container.
func (s *ContainerStage) CameraInside() bool {
	return UnitContainer.Contains(s.CamObj)
}

// Fragment builds the program input for an interpolated object-space surface point.
// ContainerDist is taken at pos itself: a per-vertex distance interpolated across a face
// overshoots the surface and would start the march inside the art.
func (s *ContainerStage) Fragment(pos Vec3, uv [2]Real, res [2]Real, time Real) FragmentInput {
	return FragmentInput{
		Pos:           pos,
		Cam:           s.CamObj,
		Dir:           norm(pos.Sub(s.CamObj)),
		ContainerDist: s.ContainerDist(pos),
		UV:            uv,
		Resolution:    res,
		Time:          time,
	}
}

// WorldDepth converts an object-space distance along a view ray to a world-space one.
func (s *ContainerStage) WorldDepth(objPos Vec3) Real {
	return mulPos(s.Model, objPos).Sub(s.CamWorld).Len()
}

// cubeTris lists the 12 triangles of the unit container as object-space corners,
// counter-clockwise seen from outside, with the face id of each.
func cubeTris() (tris [12][3]Vec3, faces [12]Face) {
	quads := []struct {
		f Face
		c [4]Vec3
	}{
		{FacePosX, [4]Vec3{{1, -1, 1}, {1, -1, -1}, {1, 1, -1}, {1, 1, 1}}},
		{FaceNegX, [4]Vec3{{-1, -1, -1}, {-1, -1, 1}, {-1, 1, 1}, {-1, 1, -1}}},
		{FacePosY, [4]Vec3{{-1, 1, 1}, {1, 1, 1}, {1, 1, -1}, {-1, 1, -1}}},
		{FaceNegY, [4]Vec3{{-1, -1, -1}, {1, -1, -1}, {1, -1, 1}, {-1, -1, 1}}},
		{FacePosZ, [4]Vec3{{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1}}},
		{FaceNegZ, [4]Vec3{{1, -1, -1}, {-1, -1, -1}, {-1, 1, -1}, {1, 1, -1}}},
	}
	for i, q := range quads {
		tris[2*i] = [3]Vec3{q.c[0], q.c[1], q.c[2]}
		tris[2*i+1] = [3]Vec3{q.c[0], q.c[2], q.c[3]}
		faces[2*i], faces[2*i+1] = q.f, q.f
	}
	return
}
