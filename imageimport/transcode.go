package imageimport

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// transcoded is the output of one resize-and-reencode.
type transcoded struct {
	data        []byte
	width       int
	height      int
	bytesBefore int64
	sha1        string
}

// transcodeFile reads an image from disk, applies EXIF orientation, shrinks
// it to fit within maxDimension (never enlarging) and re-encodes it as
// lossy WebP at the given quality.
func transcodeFile(sourcePath string, maxDimension, quality int) (*transcoded, error) {
	raw, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(raw), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxDimension || bounds.Dy() > maxDimension {
		img = imaging.Fit(img, maxDimension, maxDimension, imaging.Lanczos)
	}

	var out bytes.Buffer
	if err := webp.Encode(&out, img, &webp.Options{Quality: float32(quality)}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}

	sum := sha1.Sum(out.Bytes())
	final := img.Bounds()
	return &transcoded{
		data:        out.Bytes(),
		width:       final.Dx(),
		height:      final.Dy(),
		bytesBefore: int64(len(raw)),
		sha1:        hex.EncodeToString(sum[:]),
	}, nil
}
