package device

import (
	"errors"
	"fmt"
	"image"

	"periph.io/x/conn/v3"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// SH1107DefaultAddr is the usual I2C address of SH1107 modules.
const SH1107DefaultAddr = 0x3C

const (
	sh1107ControlCmd  = 0x00
	sh1107ControlData = 0x40
	sh1107PageBase    = 0xB0
)

var sh1107InitSequence = []byte{
	0xAE, 0x00, 0x10, 0x40, 0x81, 0xCF, 0xA1, 0xC8,
	0xA6, 0xA8, 0x3F, 0xD3, 0x00, 0xD5, 0x80, 0xD9,
	0xF1, 0xDA, 0x12, 0xDB, 0x40, 0x20, 0x00, 0x8D,
	0x14, 0xA4, 0xA6, 0xAF,
}

// SH1107 drives a monochrome OLED controller over I2C in page mode.
type SH1107 struct {
	c      conn.Conn
	width  int
	height int
}

// NewSH1107 initializes the controller and clears the screen.
// c is normally an *i2c.Dev addressed at SH1107DefaultAddr.
func NewSH1107(c conn.Conn, width, height int) (*SH1107, error) {
	if width <= 0 || height <= 0 || height%8 != 0 {
		return nil, fmt.Errorf("sh1107: invalid size %dx%d", width, height)
	}
	d := &SH1107{c: c, width: width, height: height}
	for _, cmd := range sh1107InitSequence {
		if err := d.command(cmd); err != nil {
			return nil, fmt.Errorf("sh1107 init: %w", err)
		}
	}
	if err := d.Show(image1bit.NewVerticalLSB(d.Bounds())); err != nil {
		return nil, fmt.Errorf("sh1107 clear: %w", err)
	}
	return d, nil
}

func (d *SH1107) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.width, d.height)
}

// Show writes img one 8-pixel page at a time.
func (d *SH1107) Show(img *image1bit.VerticalLSB) error {
	if img.Rect.Dx() != d.width || img.Rect.Dy() != d.height {
		return errors.New("sh1107: image size does not match the panel")
	}
	pages := d.height / 8
	for page := 0; page < pages; page++ {
		for _, cmd := range []byte{sh1107PageBase + byte(page), 0x00, 0x10} {
			if err := d.command(cmd); err != nil {
				return err
			}
		}
		row := img.Pix[page*img.Stride : page*img.Stride+d.width]
		if err := d.data(row); err != nil {
			return err
		}
	}
	return nil
}

func (d *SH1107) command(cmd byte) error {
	return d.c.Tx([]byte{sh1107ControlCmd, cmd}, nil)
}

func (d *SH1107) data(buf []byte) error {
	w := make([]byte, 0, len(buf)+1)
	w = append(w, sh1107ControlData)
	w = append(w, buf...)
	return d.c.Tx(w, nil)
}
