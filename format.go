package barrier

import (
	"github.com/vkngwrapper/core/v3/core1_0"
)

// HasStencilComponent returns true when the provided format carries a stencil aspect
func HasStencilComponent(format core1_0.Format) bool {
	switch format {
	case core1_0.FormatS8UnsignedInt,
		core1_0.FormatD16UnsignedNormalizedS8UnsignedInt,
		core1_0.FormatD24UnsignedNormalizedS8UnsignedInt,
		core1_0.FormatD32SignedFloatS8UnsignedInt:
		return true
	}

	return false
}

// HasDepthComponent returns true when the provided format carries a depth aspect
func HasDepthComponent(format core1_0.Format) bool {
	switch format {
	case core1_0.FormatD16UnsignedNormalized,
		core1_0.FormatD16UnsignedNormalizedS8UnsignedInt,
		core1_0.FormatD24UnsignedNormalizedS8UnsignedInt,
		core1_0.FormatD32SignedFloat,
		core1_0.FormatD32SignedFloatS8UnsignedInt,
		core1_0.FormatD24X8UnsignedNormalizedPacked:
		return true
	}

	return false
}

// AspectsForFormat returns the aspect mask a barrier subresource range should cover for
// an image of the provided format: the depth and/or stencil aspects for depth/stencil
// formats, and the color aspect for everything else.
func AspectsForFormat(format core1_0.Format) core1_0.ImageAspectFlags {
	var aspects core1_0.ImageAspectFlags

	if HasDepthComponent(format) {
		aspects |= core1_0.ImageAspectDepth
	}
	if HasStencilComponent(format) {
		aspects |= core1_0.ImageAspectStencil
	}
	if aspects == 0 {
		aspects = core1_0.ImageAspectColor
	}

	return aspects
}
