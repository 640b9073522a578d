// Package statuspaper lays out label/value rows and paints them onto a bi-level
// e-paper frame.
//
// The pipeline is:
//
//	rows := []statuspaper.Row{
//		{Label: "Hostname", Value: "pi"},
//		{Label: "IP Address", Value: "10.0.0.2"},
//		{}, // group separator
//		{Label: "Refreshed", Value: "12:00:00 01/01/24"},
//	}
//	lines := statuspaper.Align(rows)
//	screen := statuspaper.NewScreen(dev, statuspaper.NewRenderer(style))
//	err := screen.Show(lines)
//
// Align pads values so they start in the same column within each group. The
// Renderer splits the landscape canvas into rows of equal height, fills every
// other row with the band color and, after the first blank line, stacks the
// remaining rows upward from the bottom edge. The Screen rotates the canvas into
// the panel's native portrait orientation and hands it to the Display.
package statuspaper
