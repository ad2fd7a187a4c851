// font2vdp.go - Convert a PNG glyph sheet to a raw 1bpp Quark VDP font
//
// Usage: go run font2vdp.go -height 8 sheet.png font.bin
// The sheet is a 16-column grid of 8-pixel-wide cells starting at glyph 32.
// The output is loaded with -font font.bin -font-height 8.

package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
)

const (
	cellWidth   = 8
	sheetCols   = 16
	firstGlyph  = 32
	glyphCount  = 256 - firstGlyph
	inkLumaTrip = 0x80
)

func main() {
	height := flag.Int("height", 8, "Glyph height in rows")
	flag.Parse()
	if flag.NArg() != 2 || *height <= 0 {
		fmt.Println("Usage: font2vdp [-height 8] sheet.png font.bin")
		os.Exit(1)
	}

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Printf("Error opening sheet: %v\n", err)
		os.Exit(1)
	}
	img, err := png.Decode(f)
	f.Close()
	if err != nil {
		fmt.Printf("Error decoding PNG: %v\n", err)
		os.Exit(1)
	}

	bounds := img.Bounds()
	fmt.Printf("Sheet size: %dx%d\n", bounds.Dx(), bounds.Dy())
	if bounds.Dx() < sheetCols*cellWidth {
		fmt.Printf("Error: sheet must be at least %d pixels wide\n", sheetCols*cellWidth)
		os.Exit(1)
	}

	data, glyphs := pack(img, *height)
	if err := os.WriteFile(flag.Arg(1), data, 0644); err != nil {
		fmt.Printf("Error writing output: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Written %d glyphs (%d bytes) to %s\n", glyphs, len(data), flag.Arg(1))
}

// pack reads whole cells row by row. Bit 7 of each byte is the leftmost
// pixel; a pixel is set when its luma is above the midpoint.
func pack(img image.Image, height int) ([]byte, int) {
	b := img.Bounds()
	rows := b.Dy() / height
	glyphs := min(rows*sheetCols, glyphCount)
	out := make([]byte, glyphs*height)

	for g := range glyphs {
		x0 := b.Min.X + (g%sheetCols)*cellWidth
		y0 := b.Min.Y + (g/sheetCols)*height
		for row := range height {
			var bits byte
			for col := range cellWidth {
				gray := color.GrayModel.Convert(img.At(x0+col, y0+row)).(color.Gray)
				if gray.Y >= inkLumaTrip {
					bits |= 0x80 >> col
				}
			}
			out[g*height+row] = bits
		}
	}
	return out, glyphs
}
