package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/tzgrid/tzgrid/timetable"
)

// Table geometry. The label column is wider than hour cells so long country
// names fit.
const (
	labelColWidth = 200
	cellWidth     = 100
	cellHeight    = 40
	titleHeight   = 50
	textPadding   = 10
)

var (
	black  = color.RGBA{A: 0xFF}
	white  = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	yellow = color.RGBA{R: 0xFF, G: 0xFF, B: 0x00, A: 0xFF}
)

var (
	faceOnce    sync.Once
	faceErr     error
	regularFace font.Face
	boldFace    font.Face
)

// loadFaces parses the embedded Go fonts once: regular 12pt for cells,
// bold 16pt for the title.
func loadFaces() error {
	faceOnce.Do(func() {
		regular, err := opentype.Parse(goregular.TTF)
		if err != nil {
			faceErr = fmt.Errorf("failed to parse regular font: %w", err)
			return
		}
		bold, err := opentype.Parse(gobold.TTF)
		if err != nil {
			faceErr = fmt.Errorf("failed to parse bold font: %w", err)
			return
		}

		regularFace, err = opentype.NewFace(regular, &opentype.FaceOptions{Size: 12, DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			faceErr = fmt.Errorf("failed to create regular face: %w", err)
			return
		}
		boldFace, err = opentype.NewFace(bold, &opentype.FaceOptions{Size: 16, DPI: 72, Hinting: font.HintingFull})
		if err != nil {
			faceErr = fmt.Errorf("failed to create bold face: %w", err)
		}
	})
	return faceErr
}

// fillRect fills a rectangle with a solid color.
func fillRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// strokeRect draws a 1px border on the rectangle edges.
func strokeRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	fillRect(img, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), c)
	fillRect(img, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), c)
	fillRect(img, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), c)
	fillRect(img, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), c)
}

// drawText draws a string into a cell rectangle, vertically centered.
// Horizontal placement is centered unless leftAlign is set.
func drawText(img *image.RGBA, r image.Rectangle, text string, face font.Face, c color.RGBA, leftAlign bool) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
	}

	x := r.Min.X + textPadding
	if !leftAlign {
		textWidth := d.MeasureString(text).Ceil()
		x = r.Min.X + (r.Dx()-textWidth)/2
	}

	metrics := face.Metrics()
	textHeight := (metrics.Ascent + metrics.Descent).Ceil()
	y := r.Min.Y + (r.Dy()-textHeight)/2 + metrics.Ascent.Ceil()

	d.Dot = fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)}
	d.DrawString(text)
}

// WritePNG renders the table as a PNG at path, creating parent directories
// as needed. Layout: a yellow title band, a black header row with the
// reference hours, a black label column, and one bucket-colored cell per
// (country, hour) pair.
func WritePNG(table *timetable.Table, scheme Scheme, path string) error {
	if len(table.Rows) == 0 {
		return fmt.Errorf("no table rows to render")
	}
	if err := loadFaces(); err != nil {
		return err
	}

	hours := table.Hours()
	width := labelColWidth + len(hours)*cellWidth
	height := titleHeight + (len(table.Rows)+1)*cellHeight

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fillRect(img, img.Bounds(), white)

	// Title band.
	titleBand := image.Rect(0, 0, width, titleHeight)
	fillRect(img, titleBand, yellow)
	drawText(img, titleBand, table.Title(), boldFace, black, false)

	// Header row: reference-zone hours on black.
	headerRow := image.Rect(labelColWidth, titleHeight, width, titleHeight+cellHeight)
	fillRect(img, headerRow, black)
	for col, hour := range hours {
		cell := headerCell(col)
		drawText(img, cell, fmt.Sprintf("%02d:00", hour), regularFace, white, false)
	}

	// Country rows.
	for rowIdx, row := range table.Rows {
		y := titleHeight + (rowIdx+1)*cellHeight

		labelCell := image.Rect(0, y, labelColWidth, y+cellHeight)
		fillRect(img, labelCell, black)
		drawText(img, labelCell, row.Country.Name, regularFace, white, true)

		for col, c := range row.Cells {
			cell := image.Rect(labelColWidth+col*cellWidth, y, labelColWidth+(col+1)*cellWidth, y+cellHeight)
			fillRect(img, cell, scheme.For(c.Bucket))
			strokeRect(img, cell, black)
			drawText(img, cell, timetable.FormatLocal(c.Local), regularFace, black, false)
		}
	}

	drawGrid(img, len(table.Rows), len(hours))

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

// headerCell returns the rectangle for a header column.
func headerCell(col int) image.Rectangle {
	x := labelColWidth + col*cellWidth
	return image.Rect(x, titleHeight, x+cellWidth, titleHeight+cellHeight)
}

// drawGrid strokes the horizontal and vertical separators below the title.
func drawGrid(img *image.RGBA, rows, columns int) {
	width := labelColWidth + columns*cellWidth
	height := titleHeight + (rows+1)*cellHeight

	for row := 0; row <= rows+1; row++ {
		y := titleHeight + row*cellHeight
		if y >= height {
			y = height - 1
		}
		fillRect(img, image.Rect(0, y, width, y+1), black)
	}

	fillRect(img, image.Rect(0, titleHeight, 1, height), black)
	fillRect(img, image.Rect(labelColWidth, titleHeight, labelColWidth+1, height), black)
	for col := 0; col <= columns; col++ {
		x := labelColWidth + col*cellWidth
		if x >= width {
			x = width - 1
		}
		fillRect(img, image.Rect(x, titleHeight, x+1, height), black)
	}
}
