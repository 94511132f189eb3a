package shaderpixel

import (
	"context"
	"fmt"
	"image"
	"math"
	"sort"

	"github.com/fogleman/fauxgl"
	"github.com/go-gl/mathgl/mgl64"
)

// Art is one program placed in the room. 3D programs fill a unit container cube,
// flat ones a [-1,1]² quad facing +Z in model space.
type Art struct {
	Program Program
	Model   mgl64.Mat4
}

func (a Art) center() Vec3 { return mulPos(a.Model, Vec3{}) }

func artModel(pos Vec3, rotY Real) mgl64.Mat4 {
	return mgl64.Translate3D(pos[0], pos[1], pos[2]).
		Mul4(mgl64.HomogRotate3DY(rotY)).
		Mul4(mgl64.Scale3D(0.5, 0.5, 0.5))
}

// DefaultLayout places programs on the podests and the wall.
var DefaultLayout = []struct {
	Name string
	Pos  Vec3
	RotY Real
}{
	{"mandelbox", Vec3{-2.5, 1.51, -0.5}, 0},
	{"menger", Vec3{2.5, 1.51, -0.5}, 0},
	{"solar", Vec3{-2.5, 1.51, -5.5}, 0},
	{"mountain", Vec3{2.5, 1.51, -5.5}, 0},
	{"mandelbrot", Vec3{5.99, 1.5, -1.5}, -math.Pi / 2},
	{"cat", Vec3{5.99, 1.5, -4.5}, -math.Pi / 2},
}

// DefaultArts builds the default layout.
func DefaultArts() ([]Art, error) {
	arts := make([]Art, 0, len(DefaultLayout))
	for _, l := range DefaultLayout {
		p, err := Lookup(l.Name)
		if err != nil {
			return nil, err
		}
		arts = append(arts, Art{Program: p, Model: artModel(l.Pos, l.RotY)})
	}
	return arts, nil
}

// ArtShader runs the container vertex stage and a program as the fragment stage.
type ArtShader struct {
	Stage      *ContainerStage
	Program    Program
	Time       Real
	Resolution [2]Real
}

var _ fauxgl.Shader = (*ArtShader)(nil)

// Vertex keeps the object-space position for the fragment.
func (s *ArtShader) Vertex(v fauxgl.Vertex) fauxgl.Vertex {
	v.Output = clipOutput(s.Stage.Clip(vecOf(v.Position)))
	return v
}

func (s *ArtShader) Fragment(v fauxgl.Vertex) fauxgl.Color {
	in := s.Stage.Fragment(vecOf(v.Position), [2]Real{v.Texture.X, v.Texture.Y}, s.Resolution, s.Time)
	c, a := s.Program.Shade(in).Straight()
	return fcolor(c.clamp01(), clamp01(a))
}

func containerTris() []*fauxgl.Triangle {
	tris, _ := cubeTris()
	out := make([]*fauxgl.Triangle, 0, len(tris))
	for _, t := range tris {
		var vs [3]fauxgl.Vertex
		for i, p := range t {
			vs[i] = fauxgl.Vertex{Position: fvec(p), Texture: fauxgl.Vector{X: 0.5 * (p[0] + 1), Y: 0.5 * (p[1] + 1)}}
		}
		out = append(out, fauxgl.NewTriangle(vs[0], vs[1], vs[2]))
	}
	return out
}

func quadTris() []*fauxgl.Triangle {
	c := [4]Vec3{{-1, -1, 0}, {1, -1, 0}, {1, 1, 0}, {-1, 1, 0}}
	v := func(p Vec3) fauxgl.Vertex {
		return fauxgl.Vertex{Position: fvec(p), Texture: fauxgl.Vector{X: 0.5 * (p[0] + 1), Y: 0.5 * (p[1] + 1)}}
	}
	return []*fauxgl.Triangle{
		fauxgl.NewTriangle(v(c[0]), v(c[1]), v(c[2])),
		fauxgl.NewTriangle(v(c[0]), v(c[2]), v(c[3])),
	}
}

// Gallery is the rasterized room: skybox, environment mesh, an optional loaded model
// and the art pieces.
type Gallery struct {
	Env           []*fauxgl.Triangle
	Arts          []Art
	Sky           *Cubemap
	ShowSky       bool
	Texture       fauxgl.Texture
	TextureWeight Real
	Model         *fauxgl.Mesh
	ModelMatrix   mgl64.Mat4

	sky       []*fauxgl.Triangle
	container []*fauxgl.Triangle
	quad      []*fauxgl.Triangle
}

func NewGallery(arts []Art, sky *Cubemap) *Gallery {
	if sky == nil {
		sky = ProceduralSky(SkySize)
	}
	return &Gallery{
		Env:         EnvMesh(),
		Arts:        arts,
		Sky:         sky,
		ShowSky:     true,
		ModelMatrix: mgl64.Ident4(),
		sky:         skyboxTris(),
		container:   containerTris(),
		quad:        quadTris(),
	}
}

// DefaultModelPos is where a loaded model stands unless configured otherwise.
var DefaultModelPos = Vec3{0, 0.5, -3}

// PlaceModel shows mesh, normalized by fit, centered at pos.
func (g *Gallery) PlaceModel(mesh *fauxgl.Mesh, fit mgl64.Mat4, pos Vec3) {
	g.Model = mesh
	g.ModelMatrix = mgl64.Translate3D(pos[0], pos[1], pos[2]).Mul4(fit)
}

// FadeTexture moves the texture weight towards 1 (on) or 0 (off) at TexFadeSpeed.
func (g *Gallery) FadeTexture(on bool, dt Real) {
	if on {
		g.TextureWeight = clamp01(g.TextureWeight + TexFadeSpeed*dt)
	} else {
		g.TextureWeight = clamp01(g.TextureWeight - TexFadeSpeed*dt)
	}
}

// RenderImage rasterizes one view of the gallery.
func (g *Gallery) RenderImage(ctx context.Context, cam *Camera, time Real, w, h int) (*image.NRGBA, error) {
	dc := fauxgl.NewContext(w, h)
	dc.ClearColorBufferWith(fauxgl.Black)
	dc.ClearDepthBuffer()

	view := cam.View()
	proj := cam.Projection(Real(w) / Real(h))

	if g.ShowSky && g.Sky != nil {
		dc.Shader = NewSkyboxShader(g.Sky, view, proj)
		dc.Cull = fauxgl.CullNone
		dc.WriteDepth = false
		dc.ReadDepth = false
		dc.DrawTriangles(g.sky)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dc.WriteDepth, dc.ReadDepth = true, true
	dc.Cull = fauxgl.CullBack
	ms := NewMeshShader(mgl64.Ident4(), view, proj)
	ms.Texture, ms.TextureWeight = g.Texture, g.TextureWeight
	dc.Shader = ms
	dc.DrawTriangles(g.Env)
	if g.Model != nil {
		mm := NewMeshShader(g.ModelMatrix, view, proj)
		dc.Shader = mm
		dc.Cull = fauxgl.CullNone
		dc.DrawTriangles(g.Model.Triangles)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// art is partly transparent: far to near, test depth but never write it
	arts := append([]Art(nil), g.Arts...)
	sort.SliceStable(arts, func(i, j int) bool {
		return arts[i].center().Sub(cam.Position).Len() > arts[j].center().Sub(cam.Position).Len()
	})
	dc.WriteDepth = false
	dc.AlphaBlend = true
	res := [2]Real{Real(w), Real(h)}
	for _, a := range arts {
		stage := NewContainerStage(a.Model, view, proj, cam.Position)
		dc.Shader = &ArtShader{Stage: stage, Program: a.Program, Time: time, Resolution: res}
		if !a.Program.Is3D() {
			dc.Cull = fauxgl.CullNone
			dc.DrawTriangles(g.quad)
			continue
		}
		if stage.CameraInside() {
			dc.Cull = fauxgl.CullFront
		} else {
			dc.Cull = fauxgl.CullBack
		}
		dc.DrawTriangles(g.container)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	im, ok := dc.Image().(*image.NRGBA)
	if !ok {
		return nil, fmt.Errorf("unexpected color buffer type %T", dc.Image())
	}
	return im, nil
}

// Render rasterizes one view into a frame.
func (g *Gallery) Render(ctx context.Context, cam *Camera, time Real, w, h int) (*Frame, error) {
	im, err := g.RenderImage(ctx, cam, time, w, h)
	if err != nil {
		return nil, fmt.Errorf("render gallery: %w", err)
	}
	f := FrameFromImage(im)
	f.Time, f.Name = time, "gallery"
	return f, nil
}
