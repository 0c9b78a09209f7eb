package pixmap

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"strconv"
)

const magic = "P6"

// MaxPixels bounds width×height of a decoded image, so that a corrupt
// header cannot overflow or exhaust the raster allocation.
const MaxPixels = 1 << 28

var (
	ErrBadMagic         = errors.New("pixmap: not a binary PPM (P6) file")
	ErrBadHeader        = errors.New("pixmap: malformed header")
	ErrUnsupportedDepth = errors.New("pixmap: unsupported max channel value")
)

func init() {
	image.RegisterFormat("ppm", magic, decodeImage, DecodeConfig)
}

// header is the parsed text prefix of a P6 file.
type header struct {
	width, height, maxVal int
}

func readHeader(br *bufio.Reader) (header, error) {
	var h header
	tok, err := readToken(br)
	if err != nil {
		return h, err
	}
	if tok != magic {
		return h, ErrBadMagic
	}
	fields := []*int{&h.width, &h.height, &h.maxVal}
	names := []string{"width", "height", "max value"}
	for i, f := range fields {
		tok, err = readToken(br)
		if err != nil {
			return h, fmt.Errorf("reading %s: %w", names[i], err)
		}
		n, err := strconv.Atoi(tok)
		if err != nil || n < 0 {
			return h, fmt.Errorf("%w: bad %s %q", ErrBadHeader, names[i], tok)
		}
		*f = n
	}
	if h.width > 0 && h.height > MaxPixels/h.width {
		return h, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrBadHeader, h.width, h.height, MaxPixels)
	}
	if h.maxVal < 1 || h.maxVal > 255 {
		return h, fmt.Errorf("%w: %d", ErrUnsupportedDepth, h.maxVal)
	}
	return h, nil
}

// readToken returns the next whitespace-delimited header token, skipping
// '#' comments. The single whitespace byte ending the token is consumed, so
// after the max value token the reader sits on the first raster byte.
func readToken(br *bufio.Reader) (string, error) {
	var tok []byte
	for {
		c, err := br.ReadByte()
		if err != nil {
			if err == io.EOF {
				return "", fmt.Errorf("%w: unexpected end of file", ErrBadHeader)
			}
			return "", err
		}
		switch {
		case isSpace(c):
			if len(tok) > 0 {
				return string(tok), nil
			}
		case c == '#' && len(tok) == 0:
			if _, err := br.ReadString('\n'); err != nil {
				return "", fmt.Errorf("%w: unterminated comment", ErrBadHeader)
			}
		default:
			tok = append(tok, c)
		}
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

// Decode reads a binary PPM image. Samples with a max value below 255 are
// rescaled to the full 8-bit range.
func Decode(r io.Reader) (*Image, error) {
	br := bufio.NewReader(r)
	h, err := readHeader(br)
	if err != nil {
		return nil, err
	}
	m := New(h.width, h.height)
	if _, err := io.ReadFull(br, m.Pix); err != nil {
		return nil, fmt.Errorf("reading %dx%d raster: %w", h.width, h.height, err)
	}
	if h.maxVal != 255 {
		for i, v := range m.Pix {
			if int(v) > h.maxVal {
				v = uint8(h.maxVal)
			}
			m.Pix[i] = uint8((int(v)*255 + h.maxVal/2) / h.maxVal)
		}
	}
	return m, nil
}

// DecodeConfig returns the dimensions of a binary PPM image without reading
// the raster.
func DecodeConfig(r io.Reader) (image.Config, error) {
	h, err := readHeader(bufio.NewReader(r))
	if err != nil {
		return image.Config{}, err
	}
	return image.Config{ColorModel: color.RGBAModel, Width: h.width, Height: h.height}, nil
}

func decodeImage(r io.Reader) (image.Image, error) {
	return Decode(r)
}

// Encode writes m as a binary PPM image with a max value of 255.
func Encode(w io.Writer, m *Image) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%s\n%d %d\n255\n", magic, m.Width, m.Height); err != nil {
		return err
	}
	if _, err := bw.Write(m.Pix); err != nil {
		return err
	}
	return bw.Flush()
}

// ReadFile decodes the PPM file at path.
func ReadFile(path string) (*Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open file: %w", err)
	}
	defer f.Close()

	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode %s: %w", path, err)
	}
	return m, nil
}

// WriteFile encodes m to path, replacing any existing file.
func WriteFile(path string, m *Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("could not create file: %w", err)
	}
	if err := Encode(f, m); err != nil {
		f.Close()
		return fmt.Errorf("could not encode %s: %w", path, err)
	}
	return f.Close()
}
