// Command badgekit renders a badge template for every record in a JSON or
// CSV file and writes one print-ready PDF.
//
//	badgekit -template attendee.yaml -records contacts.csv -out badges.pdf
//	badgekit -template attendee.json -records vip.json -sheet letter -crop -proof PROOF
//	badgekit -template attendee.json -records vip.json -preview -mode fold-preview
//
// Settings may also come from the environment or a .env file:
//
//	BADGEKIT_FONT           core font family (Helvetica, Times, Courier)
//	BADGEKIT_MAX_IMAGE_DIM  longest embedded image side in pixels, 0 disables
//	BADGEKIT_LOG_LEVEL      logrus level, default info
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/lvillar/badgekit"
	"github.com/lvillar/badgekit/fields"
	"github.com/lvillar/badgekit/geometry"
	"github.com/lvillar/badgekit/pageops"
)

type options struct {
	template    string
	records     string
	out         string
	preview     bool
	mode        string
	concurrency int
	sheet       string
	cols, rows  int
	gutter      float64
	crop        bool
	proof       string
}

func main() {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.JSONFormatter{})
	loadDotEnv(log)

	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, log, os.Stdout); err != nil {
		log.WithError(err).Error("badgekit failed")
		os.Exit(1)
	}
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("badgekit", flag.ContinueOnError)
	fs.StringVar(&o.template, "template", "", "template file (JSON or YAML)")
	fs.StringVar(&o.records, "records", "", "records file (.json array or .csv with a header row)")
	fs.StringVar(&o.out, "out", "badges.pdf", "output PDF path")
	fs.BoolVar(&o.preview, "preview", false, "print the resolved preview as JSON instead of rendering")
	fs.StringVar(&o.mode, "mode", "print", "preview mode: print, design or fold-preview")
	fs.IntVar(&o.concurrency, "concurrency", 0, "records rendered in parallel (default 4)")
	fs.StringVar(&o.sheet, "sheet", "", "impose badges on letter or a4 sheets")
	fs.IntVar(&o.cols, "cols", 0, "badges across each sheet (default: as many as fit)")
	fs.IntVar(&o.rows, "rows", 0, "badges down each sheet (default: as many as fit)")
	fs.Float64Var(&o.gutter, "gutter", 0, "space between imposed badges in points")
	fs.BoolVar(&o.crop, "crop", false, "draw crop marks around imposed badges")
	fs.StringVar(&o.proof, "proof", "", "watermark text stamped on every page")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.template == "" {
		fmt.Fprintln(fs.Output(), "badgekit: -template is required")
		fs.Usage()
		return o, flag.ErrHelp
	}
	return o, nil
}

func run(ctx context.Context, o options, log *logrus.Logger, stdout io.Writer) error {
	env, err := loadEnv()
	if err != nil {
		return err
	}
	log.SetLevel(env.logLevel)

	tpl, err := badgekit.LoadTemplateFile(o.template)
	if err != nil {
		return err
	}
	records := []fields.Record{{}}
	if o.records != "" {
		if records, err = loadRecords(o.records); err != nil {
			return err
		}
	}

	composerOpts := append(env.options(), badgekit.WithLogger(log))
	if o.concurrency > 0 {
		composerOpts = append(composerOpts, badgekit.WithBatchLimit(o.concurrency))
	}
	c := badgekit.New(composerOpts...)

	if o.preview {
		return writePreviews(c, tpl, records, o.mode, stdout)
	}

	var buf bytes.Buffer
	var arts []*badgekit.Artifact
	if o.sheet != "" {
		layout, err := layoutFor(o)
		if err != nil {
			return err
		}
		arts, err = c.RenderBatchSheets(ctx, &buf, layout, tpl, records)
		if err != nil {
			return err
		}
	} else {
		arts, err = c.RenderBatchPDF(ctx, &buf, tpl, records)
		if err != nil {
			return err
		}
	}

	data := buf.Bytes()
	if o.proof != "" {
		var stamped bytes.Buffer
		if err := pageops.AddTextWatermark(&stamped, data, pageops.TextWatermark{Text: o.proof}); err != nil {
			return fmt.Errorf("stamping proof watermark: %w", err)
		}
		data = stamped.Bytes()
	}
	if err := os.WriteFile(o.out, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", o.out, err)
	}

	problems := 0
	for _, a := range arts {
		problems += len(a.Problems)
	}
	log.WithFields(logrus.Fields{
		"output":   o.out,
		"badges":   len(arts),
		"bytes":    len(data),
		"problems": problems,
	}).Info("badges written")
	return nil
}

func writePreviews(c *badgekit.Composer, tpl *badgekit.Template, records []fields.Record, mode string, w io.Writer) error {
	m, err := geometry.ParseMode(mode)
	if err != nil {
		return err
	}
	previews := make([]*badgekit.Preview, 0, len(records))
	for _, rec := range records {
		p, err := c.PreviewMode(tpl, rec, m)
		if err != nil {
			return err
		}
		previews = append(previews, p)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(previews)
}

func layoutFor(o options) (pageops.Layout, error) {
	layout := pageops.Layout{Cols: o.cols, Rows: o.rows, Gutter: o.gutter, CropMarks: o.crop}
	switch strings.ToLower(o.sheet) {
	case "letter":
		layout.Sheet = pageops.Letter
	case "a4":
		layout.Sheet = pageops.A4
	default:
		return layout, fmt.Errorf("unknown sheet %q, want letter or a4", o.sheet)
	}
	return layout, nil
}
