// Package render draws slides with Ebitengine. Every instance of a slide is transformed on the CPU, textured with the slide's image
// as projected when the slide was built, depth sorted, and drawn in as few DrawTriangles calls as possible.
package render

import (
	"image"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/solarlune/slides3d"
)

// MaxTriangleCount is the number of triangles drawn per DrawTriangles call; larger slides are drawn in several batches.
const MaxTriangleCount = 21845

const sortingBinCount = 256

// DebugInfo holds statistics about the last rendered frame.
type DebugInfo struct {
	FrameTime  time.Duration // Amount of CPU frame time spent transforming vertices and calling Image.DrawTriangles.
	DrawCalls  int
	DrawnTris  int
	TotalTris  int
	Instances  int
	TextureCnt int
}

type slideTexture struct {
	image         *ebiten.Image
	width, height float32
}

type triangle struct {
	vertices [3]ebiten.Vertex
}

// Renderer draws slides from the point of view of a Camera.
type Renderer struct {
	Camera *slides3d.Camera

	// BackfaceCulling skips triangles facing away from the camera. Leaves are thin, so it's usually turned off for spiral slides.
	BackfaceCulling bool

	// Lights shade the instances; with no lights, instances are drawn fully lit.
	Lights []Light

	DebugInfo DebugInfo

	textures  map[*slides3d.Slide]slideTexture
	triangles []triangle
	bucket    *sortingTriangleBucket

	vertexList []ebiten.Vertex
	indexList  []uint16
}

// NewRenderer creates a new Renderer for the Camera given.
func NewRenderer(camera *slides3d.Camera) *Renderer {

	r := &Renderer{
		Camera:          camera,
		BackfaceCulling: true,
		Lights: []Light{
			NewAmbientLight(1, 1, 1, 0.65),
			NewDirectionalLight(1, 1, 1, 0.35, slides3d.NewVector(-0.3, -0.5, -1)),
		},
		textures:   map[*slides3d.Slide]slideTexture{},
		bucket:     newSortingTriangleBucket(sortingBinCount, MaxTriangleCount),
		vertexList: make([]ebiten.Vertex, MaxTriangleCount*3),
		indexList:  make([]uint16, MaxTriangleCount*3),
	}

	for i := range r.indexList {
		r.indexList[i] = uint16(i)
	}

	return r

}

// texture returns the slide's image with two white rows appended below it. Triangles the image doesn't reach sample the white rows,
// tinted with the fallback color, so a whole slide can be drawn with a single image.
func (r *Renderer) texture(slide *slides3d.Slide) slideTexture {

	if tex, exists := r.textures[slide]; exists {
		return tex
	}

	bounds := slide.Image.Bounds()

	img := ebiten.NewImage(bounds.Dx(), bounds.Dy()+2)
	img.DrawImage(ebiten.NewImageFromImage(slide.Image), nil)
	img.SubImage(image.Rect(0, bounds.Dy(), bounds.Dx(), bounds.Dy()+2)).(*ebiten.Image).Fill(color.White)

	tex := slideTexture{image: img, width: float32(bounds.Dx()), height: float32(bounds.Dy())}
	r.textures[slide] = tex
	r.DebugInfo.TextureCnt = len(r.textures)
	return tex

}

// Forget releases the texture cached for the slide.
func (r *Renderer) Forget(slide *slides3d.Slide) {
	if tex, exists := r.textures[slide]; exists {
		tex.image.Deallocate()
		delete(r.textures, slide)
		r.DebugInfo.TextureCnt = len(r.textures)
	}
}

// Clear fills the screen with the color given and resets the frame statistics.
func (r *Renderer) Clear(screen *ebiten.Image, clearColor slides3d.Color) {
	screen.Fill(clearColor.ToNRGBA64())
	r.DebugInfo = DebugInfo{TextureCnt: len(r.textures)}
}

// Render draws the visible instances of the slides given onto the screen.
func (r *Renderer) Render(screen *ebiten.Image, slides ...*slides3d.Slide) {

	start := time.Now()

	for _, slide := range slides {
		if slide.Controller.Visible() {
			r.renderSlide(screen, slide)
		}
	}

	r.DebugInfo.FrameTime += time.Since(start)

}

func (r *Renderer) renderSlide(screen *ebiten.Image, slide *slides3d.Slide) {

	tex := r.texture(slide)

	viewProjection := r.Camera.ViewMatrix().Mult(r.Camera.Projection())

	binding := slide.Binding
	fallback := binding.FallbackColor
	positions := slide.Controller.Positions()
	mesh := slide.Mesh

	r.triangles = r.triangles[:0]
	r.bucket.Clear()

	minDepth := float32(math.MaxFloat32)
	maxDepth := float32(-math.MaxFloat32)

	for i, transform := range slide.Controller.Transforms() {

		// Parked instances are out of view
		if positions[i] <= 0 || positions[i] >= 1 {
			continue
		}

		r.DebugInfo.Instances++

		for v := 0; v < len(mesh.Vertices); v += 3 {

			r.DebugInfo.TotalTris++

			tri := triangle{}
			screenPos := [3]slides3d.Vector{}
			textured := true
			behind := false
			depth := 0.0

			for c := 0; c < 3; c++ {

				vert := mesh.Vertices[v+c]

				world := transform.MultVec(vert.Position)
				clip := viewProjection.MultVecW(world)

				if clip.W <= r.Camera.Near() {
					behind = true
					break
				}

				screenPos[c] = r.Camera.ClipToScreen(clip)
				depth += clip.W

				u, tv, ok := binding.Project(vert.Position, vert.Normal, i)
				if !ok {
					textured = false
				}

				lr, lg, lb := lightVertex(r.Lights, transform.MultDirection(vert.Normal).Unit())

				tri.vertices[c] = ebiten.Vertex{
					DstX:   float32(screenPos[c].X),
					DstY:   float32(screenPos[c].Y),
					SrcX:   float32(u) * tex.width,
					SrcY:   float32(1-tv) * tex.height,
					ColorR: lr,
					ColorG: lg,
					ColorB: lb,
					ColorA: 1,
				}

			}

			if behind {
				continue
			}

			if r.BackfaceCulling {
				// Screen Y points down, which flips the winding of front faces
				a := screenPos[1].Sub(screenPos[0])
				b := screenPos[2].Sub(screenPos[0])
				if a.X*b.Y-a.Y*b.X > 0 {
					continue
				}
			}

			if !textured {
				for c := range tri.vertices {
					tri.vertices[c].SrcX = tex.width / 2
					tri.vertices[c].SrcY = tex.height + 1
					tri.vertices[c].ColorR *= fallback.R
					tri.vertices[c].ColorG *= fallback.G
					tri.vertices[c].ColorB *= fallback.B
				}
			}

			d := float32(depth / 3)
			minDepth = min(minDepth, d)
			maxDepth = max(maxDepth, d)

			r.bucket.AddTriangle(len(r.triangles), d)
			r.triangles = append(r.triangles, tri)

		}

	}

	if r.bucket.Len() == 0 {
		return
	}

	r.bucket.Sort(minDepth, maxDepth)

	vertexListIndex := 0

	flush := func() {
		if vertexListIndex == 0 {
			return
		}
		screen.DrawTriangles(r.vertexList[:vertexListIndex], r.indexList[:vertexListIndex], tex.image, &ebiten.DrawTrianglesOptions{Filter: ebiten.FilterLinear})
		r.DebugInfo.DrawCalls++
		r.DebugInfo.DrawnTris += vertexListIndex / 3
		vertexListIndex = 0
	}

	r.bucket.ForEach(func(triID int) {
		copy(r.vertexList[vertexListIndex:vertexListIndex+3], r.triangles[triID].vertices[:])
		vertexListIndex += 3
		if vertexListIndex >= len(r.vertexList) {
			flush()
		}
	})

	flush()

}
