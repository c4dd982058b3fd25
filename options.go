package badgekit

import (
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/lvillar/badgekit/fields"
)

// Option is a functional option for configuring a Composer via New.
type Option func(*config)

type config struct {
	logger       logrus.FieldLogger
	fontFamily   string
	compress     bool
	maxImageDim  int
	maxImagePx   int
	batchLimit   int
	creator      string
	creationDate time.Time
	resolver     fields.Chain
}

// DefaultCreationDate is stamped into every PDF unless WithCreationDate is
// used, so identical inputs produce identical bytes.
var DefaultCreationDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

func defaultConfig() *config {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	return &config{
		logger:       discard,
		fontFamily:   "Helvetica",
		compress:     true,
		maxImageDim:  1200,
		maxImagePx:   DefaultMaxImagePixels,
		batchLimit:   4,
		creator:      "badgekit",
		creationDate: DefaultCreationDate,
		resolver:     fields.DefaultChain,
	}
}

// WithLogger sets the logger used for per-element failures and bounds
// warnings. The default logger discards everything.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithFontFamily sets the core PDF font family: "Helvetica", "Times" or "Courier".
func WithFontFamily(family string) Option {
	return func(c *config) {
		if family != "" {
			c.fontFamily = family
		}
	}
}

// WithCompression toggles content stream compression. Disabling it makes
// the output easier to inspect.
func WithCompression(on bool) Option {
	return func(c *config) {
		c.compress = on
	}
}

// WithMaxImageDimension bounds the longest side, in pixels, of embedded
// raster images. Larger images are downscaled before embedding; 0 disables it.
func WithMaxImageDimension(px int) Option {
	return func(c *config) {
		if px >= 0 {
			c.maxImageDim = px
		}
	}
}

// DefaultMaxImagePixels is the largest declared width x height accepted for
// an embedded raster.
const DefaultMaxImagePixels = 40_000_000

// WithMaxImagePixels bounds the pixel count an embedded raster may declare in
// its header. Larger images fail like undecodable ones; 0 disables the check.
func WithMaxImagePixels(n int) Option {
	return func(c *config) {
		if n >= 0 {
			c.maxImagePx = n
		}
	}
}

// WithBatchLimit sets how many records RenderBatch renders concurrently.
func WithBatchLimit(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.batchLimit = n
		}
	}
}

// WithCreator sets the PDF creator metadata.
func WithCreator(creator string) Option {
	return func(c *config) {
		c.creator = creator
	}
}

// WithCreationDate sets the PDF creation and modification dates.
func WithCreationDate(t time.Time) Option {
	return func(c *config) {
		c.creationDate = t
	}
}

// WithResolver replaces the placeholder lookup chain.
func WithResolver(chain fields.Chain) Option {
	return func(c *config) {
		if len(chain) > 0 {
			c.resolver = chain
		}
	}
}
