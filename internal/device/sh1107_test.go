package device

import (
	"bytes"
	"errors"
	"image"
	"testing"

	"periph.io/x/conn/v3"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// recordConn captures every I2C write.
type recordConn struct {
	writes [][]byte
	err    error
}

func (c *recordConn) String() string { return "record" }
func (c *recordConn) Duplex() conn.Duplex { return conn.Half }
func (c *recordConn) Tx(w, r []byte) error {
	if c.err != nil {
		return c.err
	}
	c.writes = append(c.writes, append([]byte(nil), w...))
	return nil
}

func TestNewSH1107_InitAndClear(t *testing.T) {
	c := &recordConn{}
	d, err := NewSH1107(c, 128, 128)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Bounds() != image.Rect(0, 0, 128, 128) {
		t.Fatalf("bounds: %v", d.Bounds())
	}

	n := len(sh1107InitSequence)
	for i, cmd := range sh1107InitSequence {
		if !bytes.Equal(c.writes[i], []byte{0x00, cmd}) {
			t.Fatalf("init write %d: got % x, want 00 %02x", i, c.writes[i], cmd)
		}
	}

	// 16 pages, each: 3 commands + 1 data write
	if got, want := len(c.writes)-n, 16*4; got != want {
		t.Fatalf("clear writes: got %d, want %d", got, want)
	}
	page3 := c.writes[n+3*4 : n+4*4]
	if !bytes.Equal(page3[0], []byte{0x00, 0xB3}) {
		t.Fatalf("page address: got % x", page3[0])
	}
	data := page3[3]
	if len(data) != 129 || data[0] != 0x40 {
		t.Fatalf("data write: len=%d prefix=%02x", len(data), data[0])
	}
	for _, b := range data[1:] {
		if b != 0 {
			t.Fatalf("clear should write zeros")
		}
	}
}

func TestSH1107_ShowWritesImagePages(t *testing.T) {
	c := &recordConn{}
	d, err := NewSH1107(c, 64, 16)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c.writes = nil

	img := image1bit.NewVerticalLSB(d.Bounds())
	img.SetBit(5, 9, image1bit.On) // page 1, bit 1

	if err := d.Show(img); err != nil {
		t.Fatalf("show: %v", err)
	}
	if len(c.writes) != 8 {
		t.Fatalf("got %d writes, want 8", len(c.writes))
	}
	page1 := c.writes[7]
	if page1[1+5] != 0x02 {
		t.Fatalf("pixel (5,9): got %08b, want 00000010", page1[1+5])
	}

	if err := d.Show(image1bit.NewVerticalLSB(image.Rect(0, 0, 8, 8))); err == nil {
		t.Fatalf("expected size mismatch error")
	}
}

func TestNewSH1107_Errors(t *testing.T) {
	if _, err := NewSH1107(&recordConn{}, 128, 100); err == nil {
		t.Fatalf("expected invalid size error")
	}
	boom := errors.New("nack")
	if _, err := NewSH1107(&recordConn{err: boom}, 128, 128); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped bus error, got %v", err)
	}
}
