// Package geometry converts image pixel dimensions into document render
// sizes expressed in EMUs (English Metric Units).
package geometry

// EMUsPerInch is the number of English Metric Units in one inch.
const EMUsPerInch = 914400

// TwipsPerInch is the number of twentieths of a point in one inch.
// Page sizes and margins in WordprocessingML are expressed in twips.
const TwipsPerInch = 1440

// Intrinsic describes an image as stored: its pixel grid and resolution.
type Intrinsic struct {
	PixelWidth  int
	PixelHeight int
	DPIX        float64
	DPIY        float64
}

// Size is a render size in EMUs.
type Size struct {
	Width  int64
	Height int64
}

// Resolve computes the render size of img, shrinking it proportionally when
// its natural width exceeds printableWidth. Images narrower than the page are
// never enlarged. A non-positive printableWidth sets no limit. DPI values
// must be positive.
func Resolve(img Intrinsic, printableWidth int64) Size {
	w := int64(float64(img.PixelWidth) / img.DPIX * EMUsPerInch)
	h := int64(float64(img.PixelHeight) / img.DPIY * EMUsPerInch)

	if printableWidth <= 0 || w <= printableWidth || w == 0 {
		return Size{Width: w, Height: h}
	}

	ratio := float64(h) / float64(w)
	return Size{
		Width:  printableWidth,
		Height: int64(float64(printableWidth) * ratio),
	}
}

// PrintableWidth returns the width between the page margins in EMUs, or 0
// when the margins leave no room. All arguments are in twips.
func PrintableWidth(pageWidth, leftMargin, rightMargin int64) int64 {
	twips := pageWidth - leftMargin - rightMargin
	if twips <= 0 {
		return 0
	}
	return int64(float64(twips) / TwipsPerInch * EMUsPerInch)
}
