package render

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/solarlune/slides3d"
	"golang.org/x/image/font/basicfont"
)

var debugTextTexture *ebiten.Image

// DebugDrawText draws the text provided at the location provided to the screen given, with a dark outline.
func DebugDrawText(screen *ebiten.Image, txtStr string, posX, posY, textScale float64, color slides3d.Color) {

	size := text.BoundString(basicfont.Face7x13, txtStr).Size()

	if debugTextTexture == nil || size.X > debugTextTexture.Bounds().Dx() || size.Y+13 > debugTextTexture.Bounds().Dy() {
		debugTextTexture = ebiten.NewImage(max(size.X, 1), size.Y+13)
	}

	debugTextTexture.Clear()

	opt := &ebiten.DrawImageOptions{}
	opt.GeoM.Translate(0, 13)
	text.DrawWithOptions(debugTextTexture, txtStr, basicfont.Face7x13, opt)

	dr := &ebiten.DrawImageOptions{}
	dr.ColorScale.Scale(0, 0, 0, 1)

	periodOffset := 8.0

	for y := -1; y < 2; y++ {

		for x := -1; x < 2; x++ {

			dr.GeoM.Reset()
			dr.GeoM.Translate(posX+4+float64(x), posY+4+float64(y)+periodOffset)
			dr.GeoM.Scale(textScale, textScale)

			screen.DrawImage(debugTextTexture, dr)
		}

	}

	dr.ColorScale.Reset()
	dr.ColorScale.ScaleWithColor(color.ToNRGBA64())

	dr.GeoM.Reset()
	dr.GeoM.Translate(posX+4, posY+4+periodOffset)
	dr.GeoM.Scale(textScale, textScale)

	screen.DrawImage(debugTextTexture, dr)

}

// DrawDebugRenderInfo draws the frame statistics of the Renderer to the screen.
func (r *Renderer) DrawDebugRenderInfo(screen *ebiten.Image, textScale float64, color slides3d.Color) {

	m := r.DebugInfo.FrameTime.Microseconds()
	ft := fmt.Sprintf("%.2fms", float32(m)/1000)

	debugText := fmt.Sprintf(
		"TPS: %f\nFPS: %f\nTotal render frame-time: %s\nDraw calls: %d\nRendered triangles: %d/%d\nInstances in view: %d\nTextures: %d",
		ebiten.ActualTPS(),
		ebiten.ActualFPS(),
		ft,
		r.DebugInfo.DrawCalls,
		r.DebugInfo.DrawnTris,
		r.DebugInfo.TotalTris,
		r.DebugInfo.Instances,
		r.DebugInfo.TextureCnt,
	)

	DebugDrawText(screen, debugText, 0, 0, textScale, color)

}

// DrawDebugPaths draws the sampled paths of the slide as polylines through their control points.
func (r *Renderer) DrawDebugPaths(screen *ebiten.Image, slide *slides3d.Slide, color slides3d.Color) {

	viewProjection := r.Camera.ViewMatrix().Mult(r.Camera.Projection())
	clr := color.ToNRGBA64()

	for _, path := range slide.Controller.DebugPaths() {

		for i := 1; i < len(path.Points); i++ {

			a := viewProjection.MultVecW(path.Points[i-1])
			b := viewProjection.MultVecW(path.Points[i])

			if a.W <= r.Camera.Near() || b.W <= r.Camera.Near() {
				continue
			}

			a = r.Camera.ClipToScreen(a)
			b = r.Camera.ClipToScreen(b)

			vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 1, clr, true)

		}

	}

}

// DrawDebugPointer draws a circle the size of the pointer's push radius around its last recorded position.
func (r *Renderer) DrawDebugPointer(screen *ebiten.Image, slide *slides3d.Slide, radius float64, color slides3d.Color) {

	pointer, ok := slide.Controller.Pointer()
	if !ok {
		return
	}

	center := r.Camera.WorldToScreenPixels(pointer)
	edge := r.Camera.WorldToScreenPixels(pointer.Add(slides3d.NewVector(radius, 0, 0)))

	vector.StrokeCircle(screen, float32(center.X), float32(center.Y), float32(edge.X-center.X), 1, color.ToNRGBA64(), true)

}
