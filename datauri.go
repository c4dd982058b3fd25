package badgekit

import (
	"encoding/base64"
	"fmt"
	"mime"
	"net/url"
	"strings"
)

// DataURI is a decoded RFC 2397 data URI.
type DataURI struct {
	MediaType string // e.g. "image/png"; "text/plain" when omitted
	Params    map[string]string
	Data      []byte
}

// Subtype returns the part of the media type after the slash.
func (d *DataURI) Subtype() string {
	_, sub, _ := strings.Cut(d.MediaType, "/")
	return sub
}

// ParseDataURI decodes "data:[<mediatype>][;base64],<data>". Whitespace
// inside base64 payloads is ignored and missing padding is tolerated.
func ParseDataURI(s string) (*DataURI, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(s), "data:")
	if !ok {
		return nil, fmt.Errorf("%w: missing data: scheme", ErrImageDecode)
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, fmt.Errorf("%w: missing ',' separator", ErrImageDecode)
	}

	isBase64 := false
	if h, found := strings.CutSuffix(header, ";base64"); found {
		header, isBase64 = h, true
	}

	d := &DataURI{MediaType: "text/plain"}
	if header != "" {
		mt, params, err := mime.ParseMediaType(header)
		if err != nil {
			return nil, fmt.Errorf("%w: media type %q: %v", ErrImageDecode, header, err)
		}
		d.MediaType, d.Params = mt, params
	}

	if isBase64 {
		clean := strings.Map(func(r rune) rune {
			switch r {
			case ' ', '\n', '\r', '\t':
				return -1
			}
			return r
		}, payload)
		data, err := base64.StdEncoding.DecodeString(clean)
		if err != nil {
			data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(clean, "="))
		}
		if err != nil {
			return nil, fmt.Errorf("%w: base64 payload: %v", ErrImageDecode, err)
		}
		d.Data = data
		return d, nil
	}

	data, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: payload: %v", ErrImageDecode, err)
	}
	d.Data = []byte(data)
	return d, nil
}
