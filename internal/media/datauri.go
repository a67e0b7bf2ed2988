package media

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	domainErrors "github.com/polkiloo/marketplace/internal/domain/errors"
)

var extensionPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9.+-]*$`)

// Image is a decoded data URI payload.
type Image struct {
	Data []byte
	// Extension is the MIME subtype declared by the data URI.
	Extension string
	// ContentType is sniffed from the decoded bytes.
	ContentType string
}

// DecodeDataURI decodes "data:<type>/<subtype>;base64,<payload>" strings.
func DecodeDataURI(raw string) (*Image, error) {
	header, payload, found := strings.Cut(raw, ",")
	header = strings.TrimSpace(header)
	if !found || payload == "" {
		return nil, fmt.Errorf("%w: image must be a data uri", domainErrors.ErrValidationFailed)
	}

	_, declared, found := strings.Cut(header, ":")
	if !found {
		return nil, fmt.Errorf("%w: image must be a data uri", domainErrors.ErrValidationFailed)
	}
	declared, _, _ = strings.Cut(declared, ";")
	_, subtype, found := strings.Cut(declared, "/")
	subtype = strings.ToLower(strings.TrimSpace(subtype))
	if !found || subtype == "" {
		return nil, fmt.Errorf("%w: image mime type is missing", domainErrors.ErrValidationFailed)
	}
	if !extensionPattern.MatchString(subtype) || strings.Contains(subtype, "..") {
		return nil, fmt.Errorf("%w: unsupported image mime type %q", domainErrors.ErrValidationFailed, subtype)
	}

	data, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(payload, " ", "+"))
	if err != nil {
		return nil, fmt.Errorf("%w: decode image: %v", domainErrors.ErrValidationFailed, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: image is empty", domainErrors.ErrValidationFailed)
	}

	return &Image{
		Data:        data,
		Extension:   subtype,
		ContentType: mimetype.Detect(data).String(),
	}, nil
}
