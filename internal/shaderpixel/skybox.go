package shaderpixel

import (
	"github.com/fogleman/fauxgl"
	"github.com/go-gl/mathgl/mgl64"
)

// SkyboxShader draws a cube centered on the camera, colored by the cubemap in the
// direction of each fragment. Translation is stripped from the view.
type SkyboxShader struct {
	Sky *Cubemap
	VP  mgl64.Mat4
}

var _ fauxgl.Shader = (*SkyboxShader)(nil)

func NewSkyboxShader(sky *Cubemap, view, proj mgl64.Mat4) *SkyboxShader {
	rot := view
	rot.SetCol(3, mgl64.Vec4{0, 0, 0, 1})
	return &SkyboxShader{Sky: sky, VP: proj.Mul4(rot)}
}

func (s *SkyboxShader) Vertex(v fauxgl.Vertex) fauxgl.Vertex {
	v.Output = clipOutput(s.VP.Mul4x1(vecOf(v.Position).Vec4(1)))
	return v
}

func (s *SkyboxShader) Fragment(v fauxgl.Vertex) fauxgl.Color {
	c, _ := s.Sky.Sample(norm(vecOf(v.Position))).Straight()
	return fcolor(c, 1)
}

// skyboxTris is the unit cube, seen from inside.
func skyboxTris() []*fauxgl.Triangle {
	tris, _ := cubeTris()
	out := make([]*fauxgl.Triangle, 0, len(tris))
	for _, t := range tris {
		out = append(out, fauxgl.NewTriangle(
			fauxgl.Vertex{Position: fvec(t[0])},
			fauxgl.Vertex{Position: fvec(t[1])},
			fauxgl.Vertex{Position: fvec(t[2])},
		))
	}
	return out
}
