// Package pdf encodes laid-out invoices as PDF using gofpdf.
package pdf

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"
	"go.uber.org/zap"

	"invoiceforge/internal/domain"
	"invoiceforge/internal/layout"
)

const contentType = "application/pdf"

// Options tunes the generated file.
type Options struct {
	FontFamily string
	Creator    string
	Compress   bool
}

// DefaultOptions uses the Helvetica core font, which needs no font files.
func DefaultOptions() Options {
	return Options{FontFamily: "Helvetica", Creator: "invoiceforge", Compress: true}
}

// Renderer implements port.DocumentRenderer.
type Renderer struct {
	opts   Options
	logger *zap.Logger
}

// NewRenderer creates a Renderer.
func NewRenderer(opts Options, logger *zap.Logger) *Renderer {
	if opts.FontFamily == "" {
		opts.FontFamily = DefaultOptions().FontFamily
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Renderer{opts: opts, logger: logger.Named("pdf")}
}

func (r *Renderer) ContentType() string {
	return contentType
}

// Render draws every page of doc at the document's page size. Layout uses a
// bottom-left origin; gofpdf measures from the top, so y is flipped here.
func (r *Renderer) Render(ctx context.Context, doc *layout.Document) ([]byte, error) {
	if doc == nil || len(doc.Pages) == 0 {
		return nil, fmt.Errorf("%w: empty document", domain.ErrRenderFailed)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	size := gofpdf.SizeType{Wd: doc.Geometry.Width, Ht: doc.Geometry.Height}
	f := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           size,
	})
	f.SetAutoPageBreak(false, 0)
	f.SetMargins(0, 0, 0)
	f.SetCompression(r.opts.Compress)
	f.SetCreator(r.opts.Creator, true)

	p := &painter{
		f:          f,
		tr:         f.UnicodeTranslatorFromDescriptor(""),
		family:     r.opts.FontFamily,
		pageHeight: doc.Geometry.Height,
		registered: make(map[string]bool),
	}
	for _, page := range doc.Pages {
		f.AddPageFormat("P", size)
		for _, in := range page.Instructions {
			if err := p.draw(in); err != nil {
				return nil, err
			}
		}
	}
	if f.Err() {
		return nil, fmt.Errorf("%w: %v", domain.ErrRenderFailed, f.Error())
	}

	// Last point at which an export can be abandoned.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrRenderFailed, err)
	}
	r.logger.Debug("pdf rendered", zap.Int("pages", len(doc.Pages)), zap.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

type painter struct {
	f          *gofpdf.Fpdf
	tr         func(string) string
	family     string
	pageHeight float64
	registered map[string]bool
}

func (p *painter) draw(in layout.Instruction) error {
	switch v := in.(type) {
	case layout.Text:
		p.text(v)
	case layout.MultilineText:
		for _, line := range v.Lines {
			p.text(line)
		}
	case layout.TableRow:
		for _, cell := range v.Cells {
			p.text(cell)
		}
	case layout.Image:
		return p.image(v)
	default:
		return fmt.Errorf("%w: unknown instruction kind %q", domain.ErrRenderFailed, in.Kind())
	}
	return nil
}

func (p *painter) text(t layout.Text) {
	if t.Content == "" {
		return
	}
	style := ""
	if t.Bold {
		style = "B"
	}
	p.f.SetFont(p.family, style, t.Size)
	p.f.SetTextColor(int(t.Color.R), int(t.Color.G), int(t.Color.B))
	p.f.Text(t.X, p.pageHeight-t.Y, p.tr(t.Content))
}

// image registers each distinct Ref once; the same logo on every page is
// stored a single time in the file.
func (p *painter) image(img layout.Image) error {
	src := img.Source
	if len(src.Data) == 0 {
		return fmt.Errorf("%w: image %s has no data", domain.ErrRenderFailed, src.Ref)
	}
	opts := gofpdf.ImageOptions{ImageType: string(src.Format)}
	if !p.registered[src.Ref] {
		p.f.RegisterImageOptionsReader(src.Ref, opts, bytes.NewReader(src.Data))
		if p.f.Err() {
			return fmt.Errorf("%w: registering image %s: %v", domain.ErrRenderFailed, src.Ref, p.f.Error())
		}
		p.registered[src.Ref] = true
	}
	top := p.pageHeight - img.Y - img.Height
	p.f.ImageOptions(src.Ref, img.X, top, img.Width, img.Height, false, opts, 0, "")
	return nil
}
