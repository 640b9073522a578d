package epd2in7

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"time"

	"github.com/flavioheleno/statuspaper/image1bit"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"
)

// Controller commands.
const (
	cmdPanelSetting          = 0x00
	cmdPowerSetting          = 0x01
	cmdPowerOff              = 0x02
	cmdPowerOn               = 0x04
	cmdBoosterSoftStart      = 0x06
	cmdDeepSleep             = 0x07
	cmdDataStart1            = 0x10
	cmdDisplayRefresh        = 0x12
	cmdDataStart2            = 0x13
	cmdPartialDataStart2     = 0x15
	cmdPartialDisplayRefresh = 0x16
	cmdLUTVCOM               = 0x20
	cmdLUTWW                 = 0x21
	cmdLUTBW                 = 0x22
	cmdLUTBB                 = 0x23
	cmdLUTWB                 = 0x24
	cmdPLLControl            = 0x30
	cmdVCMDCSetting          = 0x82
	cmdPowerOptimization     = 0xF8
)

var (
	errHalted = errors.New("epd2in7: halted")
	errAsleep = errors.New("epd2in7: asleep, call Init first")

	// ErrBusyTimeout is returned when the BUSY line does not release in time.
	ErrBusyTimeout = errors.New("epd2in7: busy timeout")
)

// Opts is the configuration for the panel.
type Opts struct {
	// Display dimensions in pixels, native orientation
	W int // Width (default: 176, must be a multiple of 8)
	H int // Height (default: 264)

	RST  gpio.PinOut // Reset pin (optional, nil if not used)
	Busy gpio.PinIn  // Busy pin (optional, low while the controller works)

	// BusyTimeout bounds every wait on the BUSY line (default: 10s). Without a
	// Busy pin the driver sleeps for this duration instead.
	BusyTimeout time.Duration

	// PartialRefresh sends only the changed window of a frame once a full frame
	// has been shown.
	PartialRefresh bool
}

// Dev is the device handle for the panel.
type Dev struct {
	// Communication
	c    conn.Conn
	dc   gpio.PinOut
	rst  gpio.PinOut
	busy gpio.PinIn

	busyTimeout time.Duration
	partial     bool

	rect image.Rectangle

	// Pixel buffers
	buffer   []byte                   // Frame currently on the panel
	next     *image1bit.HorizontalMSB // Lazily allocated back buffer
	hasFrame bool                     // buffer reflects the panel content

	// State
	asleep bool
	halted bool
}

// NewSPI creates a new panel device connected via SPI.
//
// The SPI port is configured for 2MHz, Mode0, 8-bit transfers. The dc
// (Data/Command) pin must be provided. opts can be nil to use defaults.
//
// The panel is not initialized; call Init before drawing.
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	o, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	if dc == nil {
		return nil, errors.New("epd2in7: dc pin is required")
	}

	c, err := p.Connect(2*physic.MegaHertz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("epd2in7: failed to connect SPI: %w", err)
	}

	return &Dev{
		c:           c,
		dc:          dc,
		rst:         o.RST,
		busy:        o.Busy,
		busyTimeout: o.BusyTimeout,
		partial:     o.PartialRefresh,
		rect:        image.Rect(0, 0, o.W, o.H),
		buffer:      make([]byte, o.W*o.H/8),
		asleep:      true,
	}, nil
}

func (o *Opts) withDefaults() (Opts, error) {
	r := Opts{W: 176, H: 264}
	if o != nil {
		r = *o
	}
	if r.W <= 0 || r.W%8 != 0 {
		return r, errors.New("epd2in7: width must be a positive multiple of 8")
	}
	if r.H <= 0 {
		return r, errors.New("epd2in7: height must be positive")
	}
	if r.BusyTimeout <= 0 {
		r.BusyTimeout = 10 * time.Second
	}
	return r, nil
}

// Init resets the controller and uploads the power and waveform settings.
//
// It is safe to call again after Sleep or Halt to wake the panel.
func (d *Dev) Init() error {
	if d.rst != nil {
		if err := d.rst.Out(gpio.Low); err != nil {
			return fmt.Errorf("epd2in7: failed to pull RST low: %w", err)
		}
		time.Sleep(200 * time.Millisecond)

		if err := d.rst.Out(gpio.High); err != nil {
			return fmt.Errorf("epd2in7: failed to pull RST high: %w", err)
		}
		time.Sleep(200 * time.Millisecond)
	}

	for _, s := range powerUp {
		if err := d.command(s.cmd, s.data...); err != nil {
			return err
		}
	}
	if err := d.sendCommand(cmdPowerOn); err != nil {
		return err
	}
	if err := d.waitIdle(); err != nil {
		return err
	}
	for _, s := range panelSetup {
		if err := d.command(s.cmd, s.data...); err != nil {
			return err
		}
	}

	d.asleep = false
	d.halted = false
	d.hasFrame = false
	return nil
}

// command sends a command byte followed by its optional data bytes.
func (d *Dev) command(cmd byte, data ...byte) error {
	if err := d.sendCommand(cmd); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return d.sendData(data)
}

// sendCommand sends a single command byte.
func (d *Dev) sendCommand(cmd byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return err
	}
	return d.c.Tx([]byte{cmd}, nil)
}

// sendData sends a slice of data bytes.
func (d *Dev) sendData(data []byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return err
	}
	return d.c.Tx(data, nil)
}

// waitIdle blocks until the controller releases BUSY (driven high).
func (d *Dev) waitIdle() error {
	if d.busy == nil {
		time.Sleep(d.busyTimeout)
		return nil
	}
	deadline := time.Now().Add(d.busyTimeout)
	for d.busy.Read() == gpio.Low {
		if time.Now().After(deadline) {
			return ErrBusyTimeout
		}
		time.Sleep(10 * time.Millisecond)
	}
	return nil
}

func (d *Dev) ready() error {
	if d.halted {
		return errHalted
	}
	if d.asleep {
		return errAsleep
	}
	return nil
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds returns the image bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Write writes raw pixel data to the display in HorizontalMSB format and
// triggers a full refresh. The data must be exactly W*H/8 bytes.
func (d *Dev) Write(pixels []byte) (int, error) {
	if err := d.ready(); err != nil {
		return 0, err
	}
	if len(pixels) != len(d.buffer) {
		return 0, errors.New("epd2in7: invalid buffer size")
	}
	if err := d.writeFullFrame(pixels); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// Draw draws an image onto the display.
//
// Without partial refresh every call transfers and refreshes the whole frame.
// With partial refresh only the byte-aligned bounding box of changed pixels is
// sent, and a frame identical to the one shown is not sent at all.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	if err := d.ready(); err != nil {
		return err
	}

	dst = dst.Intersect(d.rect)
	if dst.Empty() {
		return nil
	}

	// Fast path: full-size native frame
	if srcImg, ok := src.(*image1bit.HorizontalMSB); ok && !d.partial {
		if dst == d.rect && sp == (image.Point{}) && srcImg.Rect == d.rect {
			return d.writeFullFrame(srcImg.Pix)
		}
	}

	if d.next == nil {
		d.next = image1bit.NewHorizontalMSB(d.rect)
		copy(d.next.Pix, d.buffer)
	}
	draw.Draw(d.next, dst, src, sp, draw.Src)

	if !d.partial || !d.hasFrame {
		return d.writeFullFrame(d.next.Pix)
	}

	minCol, maxCol, minRow, maxRow := d.calculateDiff()
	if minCol > maxCol {
		// No changes
		return nil
	}

	changed := d.extractRegion(minCol, maxCol, minRow, maxRow)
	if err := d.writePartial(minCol, minRow, maxCol-minCol+1, maxRow-minRow+1, changed); err != nil {
		return err
	}
	copy(d.buffer, d.next.Pix)
	return nil
}

// calculateDiff compares the shown and next frames and returns the minimal
// changed region, aligned to whole bytes horizontally. minCol > maxCol means
// nothing changed.
func (d *Dev) calculateDiff() (minCol, maxCol, minRow, maxRow int) {
	width := d.rect.Dx()
	height := d.rect.Dy()
	stride := width / 8

	minRow = height
	maxRow = -1
	minCol = width
	maxCol = -1

	for y := 0; y < height; y++ {
		rowStart := y * stride
		rowEnd := rowStart + stride

		if bytes.Equal(d.buffer[rowStart:rowEnd], d.next.Pix[rowStart:rowEnd]) {
			continue
		}
		if y < minRow {
			minRow = y
		}
		if y > maxRow {
			maxRow = y
		}
		for x := 0; x < stride; x++ {
			if d.buffer[rowStart+x] != d.next.Pix[rowStart+x] {
				// Each byte represents 8 pixels
				if x*8 < minCol {
					minCol = x * 8
				}
				if x*8+7 > maxCol {
					maxCol = x*8 + 7
				}
			}
		}
	}
	return
}

// extractRegion extracts the pixel data for a byte-aligned rectangular region.
func (d *Dev) extractRegion(minCol, maxCol, minRow, maxRow int) []byte {
	stride := d.rect.Dx() / 8
	byteWidth := (maxCol - minCol + 1) / 8
	height := maxRow - minRow + 1

	result := make([]byte, byteWidth*height)
	dstIdx := 0
	for y := minRow; y <= maxRow; y++ {
		srcStart := y*stride + minCol/8
		copy(result[dstIdx:], d.next.Pix[srcStart:srcStart+byteWidth])
		dstIdx += byteWidth
	}
	return result
}

// writeFullFrame clears the old-data RAM, writes the new frame and refreshes.
func (d *Dev) writeFullFrame(pixels []byte) error {
	old := bytes.Repeat([]byte{0xFF}, len(pixels))
	if err := d.command(cmdDataStart1, old...); err != nil {
		return err
	}
	time.Sleep(2 * time.Millisecond)
	if err := d.command(cmdDataStart2, pixels...); err != nil {
		return err
	}
	time.Sleep(2 * time.Millisecond)
	if err := d.sendCommand(cmdDisplayRefresh); err != nil {
		return err
	}
	if err := d.waitIdle(); err != nil {
		return err
	}

	copy(d.buffer, pixels)
	if d.next != nil {
		copy(d.next.Pix, pixels)
	}
	d.hasFrame = true
	return nil
}

// window encodes an x, y, w, h rectangle the way the partial commands expect.
func window(x, y, w, h int) []byte {
	return []byte{
		byte(x >> 8), byte(x & 0xF8),
		byte(y >> 8), byte(y & 0xFF),
		byte(w >> 8), byte(w & 0xF8),
		byte(h >> 8), byte(h & 0xFF),
	}
}

// writePartial writes a window of pixels and refreshes only that window.
func (d *Dev) writePartial(x, y, w, h int, pixels []byte) error {
	win := window(x, y, w, h)
	if err := d.command(cmdPartialDataStart2, win...); err != nil {
		return err
	}
	time.Sleep(2 * time.Millisecond)
	if err := d.sendData(pixels); err != nil {
		return err
	}
	time.Sleep(2 * time.Millisecond)
	if err := d.command(cmdPartialDisplayRefresh, win...); err != nil {
		return err
	}
	return d.waitIdle()
}

// Sleep puts the panel in deep sleep. The image stays visible; Init must be
// called before the next Draw.
func (d *Dev) Sleep() error {
	if d.halted {
		return errHalted
	}
	if d.asleep {
		return nil
	}
	if err := d.command(cmdDeepSleep, 0xA5); err != nil {
		return err
	}
	d.asleep = true
	return nil
}

// Halt turns the panel power off.
// After calling Halt, the display will not respond to further commands
// until the device is re-initialized.
func (d *Dev) Halt() error {
	d.halted = true
	if err := d.sendCommand(cmdPowerOff); err != nil {
		return err
	}
	return d.waitIdle()
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("epd2in7.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}
