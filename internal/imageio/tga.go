package imageio

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types accepted by DecodeTGA.
const (
	tgaTrueColor    = 2
	tgaTrueColorRLE = 10
	tgaGray         = 3
	tgaGrayRLE      = 11
	tgaHeaderSize   = 18
	tgaTopToBottom  = 0x20
)

// ErrTGA reports a malformed or unsupported TGA file.
var ErrTGA = errors.New("tga")

// DecodeTGA decodes uncompressed or RLE TGA data with 8-bit gray,
// 24-bit or 32-bit pixels. TGA has no magic number, so it cannot be
// registered with image.Decode and is selected by file extension.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("%w: header too short", ErrTGA)
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&tgaTopToBottom != 0

	if colorMapType != 0 {
		return nil, fmt.Errorf("%w: color-mapped images not supported", ErrTGA)
	}
	gray := imageType == tgaGray || imageType == tgaGrayRLE
	switch {
	case gray && bpp == 8:
	case (imageType == tgaTrueColor || imageType == tgaTrueColorRLE) && (bpp == 24 || bpp == 32):
	default:
		return nil, fmt.Errorf("%w: unsupported type %d at %d bpp", ErrTGA, imageType, bpp)
	}
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: empty image %dx%d", ErrTGA, width, height)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("%w: truncated id field", ErrTGA)
	}

	d := &tgaDecoder{
		img:         image.NewNRGBA(image.Rect(0, 0, width, height)),
		data:        data[offset:],
		width:       width,
		height:      height,
		bytesPerPix: bpp / 8,
		topToBottom: topToBottom,
	}

	var err error
	if imageType == tgaTrueColorRLE || imageType == tgaGrayRLE {
		err = d.decodeRLE()
	} else {
		err = d.decodeRaw()
	}
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

type tgaDecoder struct {
	img         *image.NRGBA
	data        []byte
	pos         int
	width       int
	height      int
	bytesPerPix int
	topToBottom bool
}

// pixel reads one pixel at the cursor.
func (d *tgaDecoder) pixel() (color.NRGBA, bool) {
	if d.pos+d.bytesPerPix > len(d.data) {
		return color.NRGBA{}, false
	}
	p := d.data[d.pos : d.pos+d.bytesPerPix]
	d.pos += d.bytesPerPix

	if d.bytesPerPix == 1 {
		return color.NRGBA{R: p[0], G: p[0], B: p[0], A: 255}, true
	}
	c := color.NRGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if d.bytesPerPix == 4 {
		c.A = p[3]
	}
	return c, true
}

// put stores the i-th pixel in file order, flipping bottom-up images.
func (d *tgaDecoder) put(i int, c color.NRGBA) {
	x, y := i%d.width, i/d.width
	if !d.topToBottom {
		y = d.height - 1 - y
	}
	d.img.SetNRGBA(x, y, c)
}

func (d *tgaDecoder) decodeRaw() error {
	for i := 0; i < d.width*d.height; i++ {
		c, ok := d.pixel()
		if !ok {
			return fmt.Errorf("%w: pixel data truncated", ErrTGA)
		}
		d.put(i, c)
	}
	return nil
}

func (d *tgaDecoder) decodeRLE() error {
	total := d.width * d.height
	for i := 0; i < total; {
		if d.pos >= len(d.data) {
			return fmt.Errorf("%w: rle data truncated at pixel %d", ErrTGA, i)
		}
		packet := d.data[d.pos]
		d.pos++
		count := int(packet&0x7F) + 1

		if packet&0x80 != 0 {
			c, ok := d.pixel()
			if !ok {
				return fmt.Errorf("%w: rle data truncated at pixel %d", ErrTGA, i)
			}
			for n := 0; n < count && i < total; n++ {
				d.put(i, c)
				i++
			}
			continue
		}

		for n := 0; n < count && i < total; n++ {
			c, ok := d.pixel()
			if !ok {
				return fmt.Errorf("%w: rle data truncated at pixel %d", ErrTGA, i)
			}
			d.put(i, c)
			i++
		}
	}
	return nil
}
