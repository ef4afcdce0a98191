package graphics

import (
	"image"
	"image/color"

	"github.com/go-gl/gl/v4.1-core/gl"
	xdraw "golang.org/x/image/draw"
)

const (
	// AtlasTiles is the number of tiles laid out horizontally, one per block type.
	AtlasTiles = 16
	// AtlasTileSize is the edge length of one tile in the uploaded atlas.
	AtlasTileSize = 16

	patternSize = 8
)

// NewAtlas paints the block texture atlas. Each block type gets a small
// procedural pattern that is upscaled with nearest-neighbor filtering.
func NewAtlas() *image.RGBA {
	src := image.NewRGBA(image.Rect(0, 0, AtlasTiles*patternSize, patternSize))
	for tile := 0; tile < AtlasTiles; tile++ {
		for y := 0; y < patternSize; y++ {
			for x := 0; x < patternSize; x++ {
				src.SetRGBA(tile*patternSize+x, y, tilePixel(tile, x, y))
			}
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, AtlasTiles*AtlasTileSize, AtlasTileSize))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

func speckle(x, y, salt int) int {
	return ((x*7919 + y*104729 + salt*31) ^ (x * y * 17)) & 7
}

// tilePixel returns the pattern color of a tile. Rows grow upwards on the
// block face, so the last rows are the top edge.
func tilePixel(tile, x, y int) color.RGBA {
	s := speckle(x, y, tile)
	switch tile {
	case 0: // air
		return color.RGBA{}
	case 1: // dirt
		return color.RGBA{uint8(120 + s*4), uint8(85 + s*3), 55, 255}
	case 2: // topsoil
		if y >= patternSize-2 || (y == patternSize-3 && s < 4) {
			return color.RGBA{80, uint8(140 + s*4), 45, 255}
		}
		return color.RGBA{uint8(120 + s*4), uint8(85 + s*3), 55, 255}
	case 3: // grass
		return color.RGBA{uint8(70 + s*3), uint8(140 + s*5), 45, 255}
	case 4: // leaves
		if s < 2 {
			return color.RGBA{}
		}
		return color.RGBA{30, uint8(100 + s*6), 30, 255}
	case 5: // wood
		if x%3 == 0 {
			return color.RGBA{70, 50, 30, 255}
		}
		return color.RGBA{uint8(100 + s*3), 75, 45, 255}
	case 6: // stone
		return color.RGBA{uint8(120 + s*5), uint8(120 + s*5), uint8(120 + s*5), 255}
	case 7: // sand
		return color.RGBA{uint8(210 + s), uint8(200 + s), 150, 255}
	case 8: // water
		return color.RGBA{40, 80, uint8(200 + s*4), 160}
	case 9: // glass
		if x == 0 || y == 0 || x == patternSize-1 || y == patternSize-1 {
			return color.RGBA{200, 230, 240, 255}
		}
		return color.RGBA{}
	case 10: // brick
		if y%4 == 3 || (x+(y/4)*4)%8 == 0 {
			return color.RGBA{200, 200, 190, 255}
		}
		return color.RGBA{uint8(160 + s*4), 50, 40, 255}
	case 11: // ore
		if s == 0 {
			return color.RGBA{220, 180, 40, 255}
		}
		return color.RGBA{uint8(120 + s*5), uint8(120 + s*5), uint8(120 + s*5), 255}
	case 12: // woodrings
		dx, dy := 2*x-patternSize+1, 2*y-patternSize+1
		if ((dx*dx+dy*dy)/12)%2 == 0 {
			return color.RGBA{170, 130, 80, 255}
		}
		return color.RGBA{120, 85, 50, 255}
	case 13: // white
		return color.RGBA{255, 255, 255, 255}
	case 14: // black
		return color.RGBA{0, 0, 0, 255}
	default: // x-y
		return color.RGBA{uint8(x * 255 / (patternSize - 1)), uint8(y * 255 / (patternSize - 1)), 0, 255}
	}
}

func uploadAtlas(img *image.RGBA) uint32 {
	var tex uint32
	gl.ActiveTexture(gl.TEXTURE0)
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	size := img.Bounds().Size()
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(size.X), int32(size.Y), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	return tex
}
