// Package render composites participant names onto the certificate template
// image.
package render

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

type TemplateRenderer struct {
	TemplatePath string
	FontPath     string
	FontSize     float64
	BaselineY    int // Pixels from the top of the template
}

func NewTemplateRenderer(templatePath, fontPath string) *TemplateRenderer {
	return &TemplateRenderer{
		TemplatePath: templatePath,
		FontPath:     fontPath,
		FontSize:     60,
		BaselineY:    550,
	}
}

// Render draws name centered horizontally onto the template and writes the
// result as PNG to outPath.
func (r *TemplateRenderer) Render(name, outPath string) error {
	templateFile, err := os.Open(r.TemplatePath)
	if err != nil {
		return fmt.Errorf("failed to open certificate template: %w", err)
	}
	defer templateFile.Close()

	templateImg, err := png.Decode(templateFile)
	if err != nil {
		return fmt.Errorf("failed to decode certificate template: %w", err)
	}

	bounds := templateImg.Bounds()
	canvas := image.NewRGBA(bounds)
	draw.Draw(canvas, bounds, templateImg, bounds.Min, draw.Src)

	fontBytes, err := os.ReadFile(r.FontPath)
	if err != nil {
		return fmt.Errorf("failed to read certificate font: %w", err)
	}
	parsedFont, err := opentype.Parse(fontBytes)
	if err != nil {
		return fmt.Errorf("failed to parse certificate font: %w", err)
	}
	face, err := opentype.NewFace(parsedFont, &opentype.FaceOptions{
		Size:    r.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return fmt.Errorf("failed to build font face: %w", err)
	}
	defer face.Close()

	drawer := &font.Drawer{
		Dst:  canvas,
		Src:  image.Black,
		Face: face,
	}
	textWidth := drawer.MeasureString(name)
	drawer.Dot = fixed.Point26_6{
		X: (fixed.I(bounds.Dx()) - textWidth) / 2,
		Y: fixed.I(r.BaselineY),
	}
	drawer.DrawString(name)

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("failed to create certificate output dir: %w", err)
	}
	outFile, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("failed to create certificate file: %w", err)
	}
	defer outFile.Close()

	if err := png.Encode(outFile, canvas); err != nil {
		return fmt.Errorf("failed to encode certificate: %w", err)
	}
	return nil
}
