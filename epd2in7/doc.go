// Package epd2in7 controls a Waveshare 2.7" black and white e-paper panel via SPI.
//
// The panel is 176x264 pixels in its native portrait orientation and stores one
// bit per pixel, 1 being white. Frames are accepted as image1bit.HorizontalMSB,
// which matches the controller RAM layout byte for byte. The driver implements
// the Draw/Bounds/ColorModel set of periph.io's display.Drawer.
//
// # Hardware Connection
//
//	Panel Pin → Raspberry Pi
//	VCC       → 3.3V
//	GND       → GND
//	DIN       → GPIO10 (SPI0 MOSI)
//	CLK       → GPIO11 (SPI0 SCLK)
//	CS        → GPIO8 (SPI0 CE0)
//	DC        → GPIO25
//	RST       → GPIO17
//	BUSY      → GPIO24
//
// # Basic Usage
//
//	if _, err := host.Init(); err != nil {
//		log.Fatal(err)
//	}
//	b, err := spireg.Open("")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
//	dev, err := epd2in7.NewSPI(b, gpioreg.ByName("GPIO25"), &epd2in7.Opts{
//		W:    176,
//		H:    264,
//		RST:  gpioreg.ByName("GPIO17"),
//		Busy: gpioreg.ByName("GPIO24"),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	if err := dev.Init(); err != nil {
//		log.Fatal(err)
//	}
//	defer dev.Sleep()
//
//	img := image1bit.NewHorizontalMSB(dev.Bounds())
//	img.Fill(image1bit.White)
//	dev.Draw(dev.Bounds(), img, image.Point{})
//
// # Refresh Modes
//
// By default every Draw performs a full refresh, which flashes the panel and
// takes a few seconds. With Opts.PartialRefresh the driver keeps the last frame
// and sends only the byte-aligned window that changed; identical frames are
// skipped. The first frame after Init is always a full refresh.
//
// # Power
//
// Sleep puts the controller in deep sleep; the image stays on the panel without
// power. Halt turns the charge pump off. Both require Init before the next Draw.
package epd2in7
