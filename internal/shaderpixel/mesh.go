package shaderpixel

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/fogleman/fauxgl"
	"github.com/go-gl/mathgl/mgl64"
)

func fvec(v Vec3) fauxgl.Vector { return fauxgl.Vector{X: v[0], Y: v[1], Z: v[2]} }

func vecOf(v fauxgl.Vector) Vec3 { return Vec3{v.X, v.Y, v.Z} }

func fcolor(c RGB, a Real) fauxgl.Color { return fauxgl.Color{R: c.R, G: c.G, B: c.B, A: a} }

// clipOutput stores a clip-space position where fauxgl expects it.
func clipOutput(p mgl64.Vec4) fauxgl.VectorW {
	return fauxgl.VectorW{X: p[0], Y: p[1], Z: p[2], W: p[3]}
}

// MeshShader draws vertex-colored meshes, optionally blended with a texture,
// under one directional light.
type MeshShader struct {
	Model         mgl64.Mat4
	MVP           mgl64.Mat4
	Texture       fauxgl.Texture
	TextureWeight Real // 0 = vertex colors only, 1 = texture only
	BaseColor     RGB  // used when a vertex carries no color
	LightDir      Vec3
	Ambient       Real
}

var _ fauxgl.Shader = (*MeshShader)(nil)

func NewMeshShader(model, view, proj mgl64.Mat4) *MeshShader {
	return &MeshShader{
		Model:     model,
		MVP:       proj.Mul4(view).Mul4(model),
		BaseColor: RGB{0.75, 0.75, 0.75},
		LightDir:  norm(Vec3{0.3, 1, 0.5}),
		Ambient:   0.35,
	}
}

func (s *MeshShader) Vertex(v fauxgl.Vertex) fauxgl.Vertex {
	v.Output = clipOutput(s.MVP.Mul4x1(vecOf(v.Position).Vec4(1)))
	v.Normal = fvec(norm(mulDir(s.Model, vecOf(v.Normal))))
	return v
}

func (s *MeshShader) Fragment(v fauxgl.Vertex) fauxgl.Color {
	base := v.Color
	if base.A == 0 {
		base = fcolor(s.BaseColor, 1)
	}
	if s.Texture != nil && s.TextureWeight > 0 {
		tex := s.Texture.BilinearSample(v.Texture.X, v.Texture.Y)
		base = base.Lerp(tex, clamp01(s.TextureWeight))
	}
	n := norm(vecOf(v.Normal))
	k := s.Ambient + (1-s.Ambient)*lambert(n, s.LightDir)
	return fauxgl.Color{R: base.R * k, G: base.G * k, B: base.B * k, A: 1}
}

// meshBuilder collects world-space triangles with planar texture coordinates.
type meshBuilder struct {
	tris []*fauxgl.Triangle
}

func (b *meshBuilder) vertex(p, n Vec3, c RGB, u, v Real) fauxgl.Vertex {
	return fauxgl.Vertex{
		Position: fvec(p),
		Normal:   fvec(n),
		Texture:  fauxgl.Vector{X: u, Y: v},
		Color:    fcolor(c, 1),
	}
}

// quad adds a, b, c, d (counter-clockwise seen from the front) as two triangles.
// uv selects the two coordinates used for texturing.
func (b *meshBuilder) quad(a, bb, c, d Vec3, col RGB, uv func(Vec3) (Real, Real)) {
	n := norm(bb.Sub(a).Cross(c.Sub(a)))
	vs := [4]fauxgl.Vertex{}
	for i, p := range [4]Vec3{a, bb, c, d} {
		u, v := uv(p)
		vs[i] = b.vertex(p, n, col, u, v)
	}
	b.tris = append(b.tris,
		fauxgl.NewTriangle(vs[0], vs[1], vs[2]),
		fauxgl.NewTriangle(vs[0], vs[2], vs[3]),
	)
}

func uvXZ(p Vec3) (Real, Real) { return p[0], p[2] }
func uvXY(p Vec3) (Real, Real) { return p[0], p[1] }
func uvZY(p Vec3) (Real, Real) { return p[2], p[1] }

// box adds the five visible faces of an axis-aligned block standing on the floor.
func (b *meshBuilder) box(min, max Vec3, col RGB) {
	x0, y0, z0 := min[0], min[1], min[2]
	x1, y1, z1 := max[0], max[1], max[2]
	b.quad(Vec3{x0, y1, z1}, Vec3{x1, y1, z1}, Vec3{x1, y1, z0}, Vec3{x0, y1, z0}, col, uvXZ)
	b.quad(Vec3{x0, y0, z1}, Vec3{x1, y0, z1}, Vec3{x1, y1, z1}, Vec3{x0, y1, z1}, col, uvXY)
	b.quad(Vec3{x1, y0, z0}, Vec3{x0, y0, z0}, Vec3{x0, y1, z0}, Vec3{x1, y1, z0}, col, uvXY)
	b.quad(Vec3{x1, y0, z1}, Vec3{x1, y0, z0}, Vec3{x1, y1, z0}, Vec3{x1, y1, z1}, col, uvZY)
	b.quad(Vec3{x0, y0, z0}, Vec3{x0, y0, z1}, Vec3{x0, y1, z1}, Vec3{x0, y1, z0}, col, uvZY)
}

// Podests are the floor footprints (min x, min z) of the unit-wide art stands.
var Podests = [][2]Real{{-3, -1}, {2, -1}, {-3, -6}, {2, -6}}

const (
	floorCells   = 20
	floorOrigin  = -10.0
	podestHeight = 0.99
	wallHeight   = 3.0
)

// EnvMesh builds the gallery room: a checkered floor grid, the art podests and a wall.
func EnvMesh() []*fauxgl.Triangle {
	b := &meshBuilder{}
	light, dark := RGB{0.62, 0.6, 0.56}, RGB{0.42, 0.4, 0.38}
	for i := 0; i < floorCells; i++ {
		for j := 0; j < floorCells; j++ {
			x, z := floorOrigin+Real(i), floorOrigin+Real(j)
			col := light
			if (i+j)%2 == 1 {
				col = dark
			}
			b.quad(Vec3{x, 0, z + 1}, Vec3{x + 1, 0, z + 1}, Vec3{x + 1, 0, z}, Vec3{x, 0, z}, col, uvXZ)
		}
	}
	for _, p := range Podests {
		b.box(Vec3{p[0], 0, p[1]}, Vec3{p[0] + 1, podestHeight, p[1] + 1}, RGB{0.85, 0.85, 0.88})
	}
	b.box(Vec3{6, 0, -9}, Vec3{6.2, wallHeight, 0}, RGB{0.8, 0.78, 0.74})
	DebugLog("Environment mesh: %d triangles", len(b.tris))
	return b.tris
}

// ModelMatrix fits a model with the given bounds into a unit-size box centered at the
// origin and turns it -90 degrees about Y.
func ModelMatrix(min, max Vec3) mgl64.Mat4 {
	size := max.Sub(min)
	s := maxComp(size)
	if s < epsDist {
		s = 1
	}
	c := min.Add(max).Mul(0.5)
	return mgl64.HomogRotate3DY(-math.Pi / 2).
		Mul4(mgl64.Scale3D(1/s, 1/s, 1/s)).
		Mul4(mgl64.Translate3D(-c[0], -c[1], -c[2]))
}

// LoadModel reads an OBJ file and returns it with the matrix that normalizes it.
func LoadModel(path string) (*fauxgl.Mesh, mgl64.Mat4, error) {
	mesh, err := fauxgl.LoadOBJ(path)
	if err != nil {
		return nil, mgl64.Ident4(), fmt.Errorf("load model %q: %w", path, err)
	}
	box := mesh.BoundingBox()
	DebugLog("Loaded model %s: %d triangles", path, len(mesh.Triangles))
	return mesh, ModelMatrix(vecOf(box.Min), vecOf(box.Max)), nil
}

// LoadTexture decodes an image file into a sampler.
func LoadTexture(path string) (fauxgl.Texture, error) {
	im, err := imaging.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load texture %q: %w", path, err)
	}
	return fauxgl.NewImageTexture(im), nil
}

// Carousel cycles through the images of a directory.
type Carousel struct {
	Paths []string
	idx   int
}

func isImageFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff":
		return true
	}
	return false
}

// NewCarousel lists the images in dir, sorted by name.
func NewCarousel(dir string) (*Carousel, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	c := &Carousel{idx: -1}
	for _, e := range entries {
		if !e.IsDir() && isImageFile(e.Name()) {
			c.Paths = append(c.Paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(c.Paths)
	if len(c.Paths) == 0 {
		return nil, fmt.Errorf("no images in %s", dir)
	}
	return c, nil
}

// Next loads the following image, wrapping around.
func (c *Carousel) Next() (fauxgl.Texture, string, error) {
	c.idx = (c.idx + 1) % len(c.Paths)
	p := c.Paths[c.idx]
	tex, err := LoadTexture(p)
	return tex, p, err
}
