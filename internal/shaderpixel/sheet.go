package shaderpixel

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const sheetLabelH = 16

// ContactSheet tiles frames into one image, cols per row, each tile scaled to tile
// pixels wide keeping the aspect ratio, with its label underneath.
func ContactSheet(frames []*Frame, labels []string, cols, tile int, gamma Real) (*image.NRGBA, error) {
	if len(frames) == 0 {
		return nil, ErrNoOutput
	}
	if cols <= 0 {
		cols = imax(1, len(frames))
	}
	if cols > len(frames) {
		cols = len(frames)
	}
	if tile <= 0 {
		tile = 256
	}
	f0 := frames[0]
	tileH := imax(1, tile*f0.H/imax(1, f0.W))
	rows := (len(frames) + cols - 1) / cols
	cellH := tileH + sheetLabelH

	sheet := image.NewNRGBA(image.Rect(0, 0, cols*tile, rows*cellH))
	draw.Draw(sheet, sheet.Bounds(), image.NewUniform(color.NRGBA{24, 24, 28, 255}), image.Point{}, draw.Src)

	for i, f := range frames {
		col, row := i%cols, i/cols
		dst := image.Rect(col*tile, row*cellH, (col+1)*tile, row*cellH+tileH)
		src := f.Image(gamma)
		draw.ApproxBiLinear.Scale(sheet, dst, src, src.Bounds(), draw.Over, nil)

		label := f.Name
		if i < len(labels) && labels[i] != "" {
			label = labels[i]
		}
		d := font.Drawer{
			Dst:  sheet,
			Src:  image.NewUniform(color.NRGBA{230, 230, 230, 255}),
			Face: basicfont.Face7x13,
			Dot:  fixed.P(dst.Min.X+4, dst.Max.Y+12),
		}
		d.DrawString(label)
	}
	DebugLog("Contact sheet: %d tiles, %dx%d", len(frames), sheet.Bounds().Dx(), sheet.Bounds().Dy())
	return sheet, nil
}

// SaveContactSheet renders and writes a contact sheet PNG.
func SaveContactSheet(frames []*Frame, labels []string, cols, tile int, gamma Real, path string) error {
	sheet, err := ContactSheet(frames, labels, cols, tile, gamma)
	if err != nil {
		return err
	}
	return writePNG(path, sheet)
}
