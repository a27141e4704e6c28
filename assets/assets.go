// Package assets bundles the image shown and analysed by default.
package assets

import _ "embed"

// Image is a PNG photo of a smart plug display
//
//go:embed image.png
var Image []byte

// ImageName is the file name of the bundled image
const ImageName = "image.png"
