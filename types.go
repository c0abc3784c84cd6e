package md2cv

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-rod/rod/lib/proto"
)

// Page formats.
const (
	FormatA3      = "a3"
	FormatA4      = "a4"
	FormatA5      = "a5"
	FormatLetter  = "letter"
	FormatLegal   = "legal"
	FormatTabloid = "tabloid"
)

// paperSizes maps formats to portrait width and height in inches.
var paperSizes = map[string][2]float64{
	FormatA3:      {11.69, 16.54},
	FormatA4:      {8.27, 11.69},
	FormatA5:      {5.83, 8.27},
	FormatLetter:  {8.5, 11},
	FormatLegal:   {8.5, 14},
	FormatTabloid: {11, 17},
}

// WaitCondition selects when a loaded document is considered ready.
type WaitCondition string

const (
	// WaitNetworkIdle waits for the load event and then for no network
	// requests during networkIdleWindow.
	WaitNetworkIdle WaitCondition = "networkidle"
	// WaitLoad waits for the load event only.
	WaitLoad WaitCondition = "load"
)

// Render defaults.
const (
	DefaultTimeout = 30 * time.Second
	DefaultMargin  = "10mm"

	// networkIdleWindow is how long the page must go without requests.
	networkIdleWindow = 500 * time.Millisecond

	// maxMarginInches rejects margins that cannot leave room for content.
	maxMarginInches = 4.0
)

// Margins holds CSS lengths for each page edge, e.g. "10mm", "0.5in".
type Margins struct {
	Top    string `yaml:"top"`
	Right  string `yaml:"right"`
	Bottom string `yaml:"bottom"`
	Left   string `yaml:"left"`
}

// UniformMargins returns Margins with the same length on every edge.
func UniformMargins(length string) Margins {
	return Margins{Top: length, Right: length, Bottom: length, Left: length}
}

// RenderOptions controls rasterization of the document to PDF.
type RenderOptions struct {
	Format            string
	Margins           Margins
	PrintBackground   bool
	PreferCSSPageSize bool
	Landscape         bool
	Timeout           time.Duration
	WaitUntil         WaitCondition
}

// DefaultRenderOptions returns A4 with 10mm margins, backgrounds printed,
// CSS page size preferred, portrait, a 30s timeout and network idle wait.
func DefaultRenderOptions() RenderOptions {
	return RenderOptions{
		Format:            FormatA4,
		Margins:           UniformMargins(DefaultMargin),
		PrintBackground:   true,
		PreferCSSPageSize: true,
		Timeout:           DefaultTimeout,
		WaitUntil:         WaitNetworkIdle,
	}
}

// Validate checks that render options are usable.
func (o RenderOptions) Validate() error {
	if _, ok := paperSizes[strings.ToLower(o.Format)]; !ok {
		return fmt.Errorf("%w: %q (expected a3, a4, a5, letter, legal or tabloid)", ErrInvalidPageFormat, o.Format)
	}
	for _, m := range []string{o.Margins.Top, o.Margins.Right, o.Margins.Bottom, o.Margins.Left} {
		if _, err := ParseLength(m); err != nil {
			return err
		}
	}
	if o.Timeout <= 0 {
		return fmt.Errorf("%w: %v (must be positive)", ErrInvalidTimeout, o.Timeout)
	}
	switch o.WaitUntil {
	case WaitNetworkIdle, WaitLoad:
	default:
		return fmt.Errorf("%w: %q (expected networkidle or load)", ErrInvalidWaitCondition, o.WaitUntil)
	}
	return nil
}

// printParams converts validated options to the CDP print request.
func (o RenderOptions) printParams() (*proto.PagePrintToPDF, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	size := paperSizes[strings.ToLower(o.Format)]
	top, _ := ParseLength(o.Margins.Top)
	right, _ := ParseLength(o.Margins.Right)
	bottom, _ := ParseLength(o.Margins.Bottom)
	left, _ := ParseLength(o.Margins.Left)

	return &proto.PagePrintToPDF{
		Landscape:         o.Landscape,
		PrintBackground:   o.PrintBackground,
		PreferCSSPageSize: o.PreferCSSPageSize,
		PaperWidth:        floatPtr(size[0]),
		PaperHeight:       floatPtr(size[1]),
		MarginTop:         floatPtr(top),
		MarginRight:       floatPtr(right),
		MarginBottom:      floatPtr(bottom),
		MarginLeft:        floatPtr(left),
	}, nil
}

// unitsPerInch lists the CSS absolute length units accepted for margins.
var unitsPerInch = map[string]float64{
	"in": 1,
	"cm": 2.54,
	"mm": 25.4,
	"pt": 72,
	"px": 96,
}

// ParseLength converts a CSS length such as "10mm" or "0.5in" to inches.
// A bare "0" is accepted; any other value needs a unit.
func ParseLength(s string) (float64, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "0" {
		return 0, nil
	}
	if len(v) < 3 {
		return 0, fmt.Errorf("%w: %q (expected a length like 10mm, 1cm, 0.5in, 36pt or 48px)", ErrInvalidMargin, s)
	}

	unit := v[len(v)-2:]
	perInch, ok := unitsPerInch[unit]
	if !ok {
		return 0, fmt.Errorf("%w: %q (unknown unit %q)", ErrInvalidMargin, s, unit)
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(v[:len(v)-2]), 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMargin, s)
	}

	inches := n / perInch
	if inches < 0 || inches > maxMarginInches {
		return 0, fmt.Errorf("%w: %q (must be between 0 and %.0fin)", ErrInvalidMargin, s, maxMarginInches)
	}
	return inches, nil
}

// Input is one document to generate.
type Input struct {
	Markdown    string // source text, required
	Title       string // overrides the generator default title
	Description string // overrides the generator default description
	SkipATS     bool   // keep strong/em and original whitespace
}

func floatPtr(v float64) *float64 {
	return &v
}
