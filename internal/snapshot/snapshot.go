// Package snapshot writes the CHIP-8 framebuffer as an image file.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	"github.com/retroenv/retrochip8/internal/chip8"
	xdraw "golang.org/x/image/draw"
)

// Image converts the framebuffer to a grayscale image of the native
// 64x32 resolution. Lit pixels are white.
func Image(framebuffer [chip8.ScreenSize]byte) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, chip8.ScreenWidth, chip8.ScreenHeight))
	for y := range chip8.ScreenHeight {
		for x := range chip8.ScreenWidth {
			if framebuffer[y*chip8.ScreenWidth+x] != 0 {
				img.SetGray(x, y, color.Gray{Y: 0xFF})
			}
		}
	}
	return img
}

// WritePNG encodes the framebuffer as PNG, every pixel enlarged to a
// scale x scale block.
func WritePNG(w io.Writer, framebuffer [chip8.ScreenSize]byte, scale int) error {
	if scale < 1 {
		return fmt.Errorf("invalid scale %d", scale)
	}

	src := Image(framebuffer)
	dst := image.NewGray(image.Rect(0, 0, chip8.ScreenWidth*scale, chip8.ScreenHeight*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)

	if err := png.Encode(w, dst); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// WriteFile writes the framebuffer as PNG to the given file.
func WriteFile(path string, framebuffer [chip8.ScreenSize]byte, scale int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating screenshot file: %w", err)
	}

	if err := WritePNG(f, framebuffer, scale); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing screenshot file: %w", err)
	}
	return nil
}
