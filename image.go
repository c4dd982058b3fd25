package badgekit

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// imageCodec decodes one raster format. config reads only the header.
type imageCodec struct {
	decode func(io.Reader) (image.Image, error)
	config func(io.Reader) (image.Config, error)
}

// imageCodecs maps a data URI's image subtype to its codec.
var imageCodecs = map[string]imageCodec{
	"png":      {png.Decode, png.DecodeConfig},
	"jpeg":     {jpeg.Decode, jpeg.DecodeConfig},
	"jpg":      {jpeg.Decode, jpeg.DecodeConfig},
	"pjpeg":    {jpeg.Decode, jpeg.DecodeConfig},
	"gif":      {gif.Decode, gif.DecodeConfig},
	"bmp":      {bmp.Decode, bmp.DecodeConfig},
	"x-ms-bmp": {bmp.Decode, bmp.DecodeConfig},
	"tiff":     {tiff.Decode, tiff.DecodeConfig},
	"webp":     {webp.Decode, webp.DecodeConfig},
}

// asset is decoded image content: either a raster or a PDF page.
type asset struct {
	picture *Picture
	pdf     []byte
}

// loadAsset decodes a data URI, choosing the codec from its declared media
// type. Rasters declaring more than maxPixels pixels are rejected before any
// pixel data is allocated; 0 disables the check. Accepted rasters are
// normalised to 8-bit PNG (or kept as JPEG when possible) and downscaled so
// their longest side is at most maxDim pixels.
func loadAsset(uri string, maxDim, maxPixels int) (asset, error) {
	d, err := ParseDataURI(uri)
	if err != nil {
		return asset{}, err
	}
	if d.MediaType == "application/pdf" {
		if !bytes.HasPrefix(d.Data, []byte("%PDF-")) {
			return asset{}, fmt.Errorf("%w: payload is not a PDF", ErrImageDecode)
		}
		return asset{pdf: d.Data}, nil
	}

	typ, sub := d.MediaType, d.Subtype()
	codec, ok := imageCodecs[sub]
	if !ok || typ != "image/"+sub {
		return asset{}, fmt.Errorf("%w: %s", ErrUnsupportedImage, d.MediaType)
	}
	cfg, err := codec.config(bytes.NewReader(d.Data))
	if err != nil {
		return asset{}, fmt.Errorf("%w: %s: %v", ErrImageDecode, d.MediaType, err)
	}
	if maxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > int64(maxPixels) {
		return asset{}, fmt.Errorf("%w: %s: %dx%d exceeds %d pixels",
			ErrImageDecode, d.MediaType, cfg.Width, cfg.Height, maxPixels)
	}
	img, err := codec.decode(bytes.NewReader(d.Data))
	if err != nil {
		return asset{}, fmt.Errorf("%w: %s: %v", ErrImageDecode, d.MediaType, err)
	}

	pic, err := preparePicture(img, d.Data, sub == "jpeg" || sub == "jpg" || sub == "pjpeg", maxDim)
	if err != nil {
		return asset{}, err
	}
	return asset{picture: pic}, nil
}

func preparePicture(img image.Image, raw []byte, isJPEG bool, maxDim int) (*Picture, error) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrImageDecode)
	}

	if maxDim > 0 && (b.Dx() > maxDim || b.Dy() > maxDim) {
		img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	} else if isJPEG {
		return newPicture("JPG", raw, b.Dx(), b.Dy()), nil
	}

	var buf bytes.Buffer
	// Clone yields 8-bit NRGBA, which the PDF backend's PNG reader handles.
	if err := png.Encode(&buf, imaging.Clone(img)); err != nil {
		return nil, fmt.Errorf("%w: re-encoding: %v", ErrImageDecode, err)
	}
	nb := img.Bounds()
	return newPicture("PNG", buf.Bytes(), nb.Dx(), nb.Dy()), nil
}

func newPicture(format string, data []byte, w, h int) *Picture {
	sum := sha256.Sum256(data)
	return &Picture{
		Key:    "img-" + hex.EncodeToString(sum[:12]),
		Format: format,
		Data:   data,
		Width:  w,
		Height: h,
	}
}

// drawAsset places a decoded asset into the box.
func drawAsset(s Surface, a asset, x, y, w, h float64) error {
	if a.pdf != nil {
		return s.PDFPage(a.pdf, x, y, w, h)
	}
	return s.Image(a.picture, x, y, w, h)
}
