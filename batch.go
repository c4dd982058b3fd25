package badgekit

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/lvillar/badgekit/fields"
	"github.com/lvillar/badgekit/pageops"
)

// RenderBatch renders one badge per record, at most WithBatchLimit at a
// time. Results are in record order. The first error cancels the records
// that have not started yet.
func (c *Composer) RenderBatch(ctx context.Context, t *Template, records []fields.Record) ([]*Artifact, error) {
	if err := Validate(t); err != nil {
		return nil, err
	}
	out := make([]*Artifact, len(records))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.cfg.batchLimit)
	for i, rec := range records {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			a, err := c.Render(t, rec)
			if err != nil {
				return fmt.Errorf("badgekit: record %d: %w", i, err)
			}
			out[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// RenderBatchPDF renders every record and writes them to w as a single
// print job with one badge per page.
func (c *Composer) RenderBatchPDF(ctx context.Context, w io.Writer, t *Template, records []fields.Record) ([]*Artifact, error) {
	arts, err := c.RenderBatch(ctx, t, records)
	if err != nil {
		return nil, err
	}
	if err := pageops.Merge(w, pdfs(arts)...); err != nil {
		return nil, newRenderError("Merge", err)
	}
	return arts, nil
}

// RenderBatchSheets is RenderBatchPDF with several badges per sheet.
func (c *Composer) RenderBatchSheets(ctx context.Context, w io.Writer, layout pageops.Layout, t *Template, records []fields.Record) ([]*Artifact, error) {
	arts, err := c.RenderBatch(ctx, t, records)
	if err != nil {
		return nil, err
	}
	if err := pageops.Impose(w, layout, pdfs(arts)...); err != nil {
		return nil, newRenderError("Impose", err)
	}
	return arts, nil
}

func pdfs(arts []*Artifact) [][]byte {
	docs := make([][]byte, len(arts))
	for i, a := range arts {
		docs[i] = a.PDF
	}
	return docs
}
