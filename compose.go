package badgekit

import (
	"bytes"
	"fmt"
	"io"

	"codeberg.org/go-pdf/fpdf"
	"github.com/sirupsen/logrus"

	"github.com/lvillar/badgekit/fields"
	"github.com/lvillar/badgekit/geometry"
)

// Composer turns a template and a contact record into a one-page PDF. It
// holds only immutable configuration and is safe for concurrent use.
type Composer struct {
	cfg *config
}

// New creates a Composer.
func New(opts ...Option) *Composer {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Composer{cfg: cfg}
}

// Artifact is the result of rendering one badge.
type Artifact struct {
	PDF     []byte
	Preview *Preview
	// Problems lists elements that could not be drawn as designed. The page
	// is complete apart from these.
	Problems []*ElementError
	// Width and Height are the page size in points.
	Width, Height float64
}

// Render validates t, fills it from rec and returns the PDF together with
// its structural preview. An invalid template yields ValidationErrors and
// nothing is drawn.
func (c *Composer) Render(t *Template, rec fields.Record) (*Artifact, error) {
	var buf bytes.Buffer
	problems, err := c.RenderTo(&buf, t, rec)
	if err != nil {
		return nil, err
	}
	preview, err := c.Preview(t, rec)
	if err != nil {
		return nil, err
	}
	w, h := t.Page.Geometry().Size()
	return &Artifact{
		PDF:      buf.Bytes(),
		Preview:  preview,
		Problems: problems,
		Width:    float64(w),
		Height:   float64(h),
	}, nil
}

// RenderTo writes the badge PDF to w and returns the per-element problems.
func (c *Composer) RenderTo(w io.Writer, t *Template, rec fields.Record) ([]*ElementError, error) {
	if err := Validate(t); err != nil {
		return nil, err
	}
	pdf := c.newDocument(t)
	s := newPDFSurface(pdf)
	problems, err := c.Draw(s, t, rec)
	if err != nil {
		return nil, err
	}
	if err := pdf.Output(w); err != nil {
		return nil, newRenderError("Output", err)
	}
	return problems, nil
}

func (c *Composer) newDocument(t *Template) *fpdf.Fpdf {
	pw, ph := t.Page.Geometry().Size()
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: float64(pw), Ht: float64(ph)},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCompression(c.cfg.compress)
	pdf.SetCreator(c.cfg.creator, true)
	pdf.SetTitle(t.Name, true)
	pdf.SetCreationDate(c.cfg.creationDate)
	pdf.SetModificationDate(c.cfg.creationDate)
	pdf.SetCatalogSort(true)
	pdf.AddPage()
	return pdf
}

// Draw paints t onto s: the page background first, then every element in
// template order. Element failures are logged and returned as problems;
// only an invalid template or a backend failure is an error.
func (c *Composer) Draw(s Surface, t *Template, rec fields.Record) ([]*ElementError, error) {
	if err := Validate(t); err != nil {
		return nil, err
	}
	tr, err := t.Page.Transform()
	if err != nil {
		return nil, err
	}
	log := c.cfg.logger.WithField("template", t.Name)
	r := &renderer{cfg: c.cfg, record: rec}

	var problems []*ElementError
	if t.Page.BackgroundImage != "" {
		if err := c.drawBackground(s, t.Page); err != nil {
			log.WithError(err).Warn("page background not drawn")
			problems = append(problems, &ElementError{Index: PageLevel, Type: TypeBackgroundImage, Err: err})
		}
	}

	for i, e := range t.Elements {
		e = normalize(e)
		elog := log.WithFields(logrus.Fields{
			"index":   i,
			"element": e.Bounds().ID,
			"type":    e.Type(),
		})
		if !tr.InBounds(e.Bounds().Box()) {
			elog.Warn("element extends beyond the page")
		}
		p := tr.Place(e.Bounds().Box())
		if err := drawPlaced(r, s, e, p); err != nil {
			elog.WithError(err).Error("element not drawn as designed")
			problems = append(problems, &ElementError{Index: i, ID: e.Bounds().ID, Type: e.Type(), Err: err})
		}
	}

	if err := s.Err(); err != nil {
		return nil, newRenderError("Draw", err)
	}
	return problems, nil
}

func (c *Composer) drawBackground(s Surface, page Page) error {
	a, err := loadAsset(page.BackgroundImage, c.cfg.maxImageDim, c.cfg.maxImagePx)
	if err != nil {
		return err
	}
	w, h := page.Geometry().Size()
	return drawAsset(s, a, 0, 0, float64(w), float64(h))
}

// drawPlaced draws one element, upside down when its box was mirrored onto
// the back face. A panicking renderer only loses its own element.
func drawPlaced(r *renderer, s Surface, e Element, p geometry.Placement) (err error) {
	box := p.Box
	if p.Mirrored {
		s.BeginRotation(180, float64(box.CenterX()), float64(box.CenterY()))
		defer s.EndRotation()
	}
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("%w: %v", ErrElementPanic, v)
		}
	}()
	if err := r.draw(s, e, box); err != nil {
		return err
	}
	if err := s.Err(); err != nil {
		return newRenderError("Draw", err)
	}
	return nil
}
