package overlay

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/widgetlab/widget-cli/internal/model"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Annotate draws bounding boxes and ID labels for matched nodes on a
// screenshot of the inspected window. windowBounds is [x, y, w, h] of the
// window in screen points; node bounds are screen-absolute points and get
// converted to image pixels using the ratio of image to window dimensions,
// which also absorbs HiDPI scale factors.
func Annotate(img image.Image, matches []*model.Node, windowBounds [4]int) image.Image {
	rgba := toRGBA(img)

	imgBounds := img.Bounds()
	scaleX, scaleY := 1.0, 1.0
	if windowBounds[2] > 0 {
		scaleX = float64(imgBounds.Dx()) / float64(windowBounds[2])
	}
	if windowBounds[3] > 0 {
		scaleY = float64(imgBounds.Dy()) / float64(windowBounds[3])
	}

	boxColor := color.RGBA{R: 255, G: 0, B: 0, A: 100}
	textColor := color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor := color.RGBA{R: 0, G: 0, B: 0, A: 200}

	for _, n := range matches {
		// Virtual entities carry their owner's geometry.
		b := n.Bounds
		if n.IsVirtual() {
			b = n.Virtual.Owner.Bounds
		}
		x := int(float64(b[0]-windowBounds[0]) * scaleX)
		y := int(float64(b[1]-windowBounds[1]) * scaleY)
		w := int(float64(b[2]) * scaleX)
		h := int(float64(b[3]) * scaleY)

		drawRectangle(rgba, x, y, x+w, y+h, boxColor)
		drawTextWithOutline(rgba, labelFor(n), x+w/2, y+h/2, textColor, outlineColor)
	}

	return rgba
}

func labelFor(n *model.Node) string {
	if n.IsVirtual() {
		return fmt.Sprintf("[%s %d]", n.Virtual.Kind, n.Virtual.Owner.ID)
	}
	return fmt.Sprintf("[%d]", n.ID)
}

func toRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}

func inBounds(bounds image.Rectangle, x, y int) bool {
	return x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y
}

// drawRectangle draws a rectangle outline, clamped to the image.
func drawRectangle(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	bounds := img.Bounds()

	if x1 < bounds.Min.X {
		x1 = bounds.Min.X
	}
	if y1 < bounds.Min.Y {
		y1 = bounds.Min.Y
	}
	if x2 > bounds.Max.X {
		x2 = bounds.Max.X
	}
	if y2 > bounds.Max.Y {
		y2 = bounds.Max.Y
	}
	if x2 <= x1 || y2 <= y1 {
		return
	}

	for x := x1; x < x2; x++ {
		if inBounds(bounds, x, y1) {
			img.Set(x, y1, c)
		}
		if inBounds(bounds, x, y2-1) {
			img.Set(x, y2-1, c)
		}
	}
	for y := y1; y < y2; y++ {
		if inBounds(bounds, x1, y) {
			img.Set(x1, y, c)
		}
		if inBounds(bounds, x2-1, y) {
			img.Set(x2-1, y, c)
		}
	}
}

// drawTextWithOutline draws text centered at (x, y) with a 1px outline for
// visibility on any background.
func drawTextWithOutline(img *image.RGBA, text string, x, y int, textColor, outlineColor color.Color) {
	// basicfont.Face7x13: 7px advance, 13px height
	offsetX := x - len(text)*7/2
	offsetY := y - 13/2

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			d := &font.Drawer{
				Dst:  img,
				Src:  image.NewUniform(outlineColor),
				Face: basicfont.Face7x13,
				Dot: fixed.Point26_6{
					X: fixed.Int26_6((offsetX + dx) * 64),
					Y: fixed.Int26_6((offsetY + dy) * 64),
				},
			}
			d.DrawString(text)
		}
	}

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textColor),
		Face: basicfont.Face7x13,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(offsetX * 64),
			Y: fixed.Int26_6(offsetY * 64),
		},
	}
	d.DrawString(text)
}
