package device

import (
	"context"
	"fmt"
	"image"

	"deskclock/internal/logger"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

// Layout of the text frame, in pixels.
const (
	textLeft    = 4
	firstLine   = 14
	lineSpacing = 18
)

// FrameLines is the text shown for f, top to bottom.
func FrameLines(f Frame) []string {
	temp := "T: --.- C"
	if f.HasReading {
		temp = fmt.Sprintf("T: %.1f C", f.TemperatureC)
	}
	return []string{
		f.Local.Date(),
		f.Local.Clock(),
		temp,
		f.AlarmSummary,
	}
}

// Panel pushes a finished 1-bit image to the glass.
type Panel interface {
	Bounds() image.Rectangle
	Show(img *image1bit.VerticalLSB) error
}

// OLEDDisplay renders frames with the 7x13 bitmap font onto a Panel.
type OLEDDisplay struct {
	panel Panel
	img   *image1bit.VerticalLSB
}

func NewOLEDDisplay(panel Panel) *OLEDDisplay {
	return &OLEDDisplay{panel: panel, img: image1bit.NewVerticalLSB(panel.Bounds())}
}

func (d *OLEDDisplay) Render(ctx context.Context, f Frame) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	DrawFrame(d.img, f)
	return d.panel.Show(d.img)
}

// DrawFrame clears img and draws the frame text on it.
func DrawFrame(img *image1bit.VerticalLSB, f Frame) {
	for i := range img.Pix {
		img.Pix[i] = 0
	}
	dr := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(image1bit.On),
		Face: basicfont.Face7x13,
	}
	for i, line := range FrameLines(f) {
		dr.Dot = fixed.P(img.Rect.Min.X+textLeft, img.Rect.Min.Y+firstLine+i*lineSpacing)
		dr.DrawString(line)
	}
}

// ConsoleDisplay writes the frame lines to the log; used when no panel is attached.
type ConsoleDisplay struct {
	log *logger.Logger
}

func NewConsoleDisplay(log *logger.Logger) *ConsoleDisplay {
	return &ConsoleDisplay{log: log}
}

func (d *ConsoleDisplay) Render(_ context.Context, f Frame) error {
	lines := FrameLines(f)
	d.log.Debugw("display", "date", lines[0], "time", lines[1], "temp", lines[2], "alarm", lines[3])
	return nil
}
