// Package canvas is a fixed-size grid of colors that can be written out as a
// plain-text PPM or a PNG.
package canvas

import (
	"bufio"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"raykernel/color"

	"golang.org/x/xerrors"
)

// ErrUnknownFormat is returned by Save for file extensions it cannot write.
var ErrUnknownFormat = xerrors.New("unknown image format")

// maxPPMLine is the longest line a PPM writer should emit.
const maxPPMLine = 70

type Canvas struct {
	width, height int
	pixels        []color.RGB
}

// New returns a width x height canvas with every pixel black.
func New(width, height int) *Canvas {
	if width < 0 || height < 0 {
		width, height = 0, 0
	}
	return &Canvas{
		width:  width,
		height: height,
		pixels: make([]color.RGB, width*height),
	}
}

func (c *Canvas) Width() int  { return c.width }
func (c *Canvas) Height() int { return c.height }

func (c *Canvas) inBounds(x, y int) bool {
	return 0 <= x && x < c.width && 0 <= y && y < c.height
}

// At returns the pixel at column x, row y.  Pixels outside the canvas read as
// black.
func (c *Canvas) At(x, y int) color.RGB {
	if !c.inBounds(x, y) {
		return color.Black
	}
	return c.pixels[y*c.width+x]
}

// Set paints the pixel at column x, row y.  Writes outside the canvas are
// dropped, so callers can plot projected points without clipping them first.
func (c *Canvas) Set(x, y int, col color.RGB) {
	if !c.inBounds(x, y) {
		return
	}
	c.pixels[y*c.width+x] = col
}

// Fill paints every pixel.
func (c *Canvas) Fill(col color.RGB) {
	for i := range c.pixels {
		c.pixels[i] = col
	}
}

// WritePPM writes the canvas as a P3 PPM.  Each image row starts a new line,
// and no line is longer than 70 characters.
func (c *Canvas) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)

	header := "P3\n" + strconv.Itoa(c.width) + " " + strconv.Itoa(c.height) + "\n255\n"
	if _, err := bw.WriteString(header); err != nil {
		return xerrors.Errorf("while writing PPM header: %w", err)
	}

	line := &strings.Builder{}
	flush := func() error {
		if line.Len() == 0 {
			return nil
		}
		line.WriteByte('\n')
		_, err := bw.WriteString(line.String())
		line.Reset()
		return err
	}
	emit := func(v uint8) error {
		s := strconv.Itoa(int(v))
		if line.Len() > 0 && line.Len()+1+len(s) > maxPPMLine {
			if err := flush(); err != nil {
				return err
			}
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(s)
		return nil
	}

	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			r, g, b := c.pixels[y*c.width+x].Bytes()
			for _, v := range []uint8{r, g, b} {
				if err := emit(v); err != nil {
					return xerrors.Errorf("while writing PPM row %d: %w", y, err)
				}
			}
		}
		if err := flush(); err != nil {
			return xerrors.Errorf("while writing PPM row %d: %w", y, err)
		}
	}

	if err := bw.Flush(); err != nil {
		return xerrors.Errorf("while flushing PPM: %w", err)
	}
	return nil
}

// Image converts the canvas to an 8-bit image.
func (c *Canvas) Image() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, c.width, c.height))
	for y := 0; y < c.height; y++ {
		rowOff := y * img.Stride
		for x := 0; x < c.width; x++ {
			r, g, b := c.pixels[y*c.width+x].Bytes()
			p := rowOff + x*4
			img.Pix[p+0] = r
			img.Pix[p+1] = g
			img.Pix[p+2] = b
			img.Pix[p+3] = 0xFF
		}
	}
	return img
}

func (c *Canvas) WritePNG(w io.Writer) error {
	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(w, c.Image()); err != nil {
		return xerrors.Errorf("while encoding PNG: %w", err)
	}
	return nil
}

// Save writes the canvas to path, choosing PPM or PNG from the extension.
func (c *Canvas) Save(path string) error {
	var write func(io.Writer) error
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".ppm":
		write = c.WritePPM
	case ".png":
		write = c.WritePNG
	default:
		return xerrors.Errorf("while saving %q: extension %q: %w", path, ext, ErrUnknownFormat)
	}

	f, err := os.Create(path)
	if err != nil {
		return xerrors.Errorf("while creating %q: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return xerrors.Errorf("while saving %q: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return xerrors.Errorf("while closing %q: %w", path, err)
	}
	return nil
}
