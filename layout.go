package barrier

import (
	"fmt"

	"github.com/vkngwrapper/core/v3/core1_0"
	"github.com/vkngwrapper/extensions/v3/khr_maintenance2"
	"github.com/vkngwrapper/extensions/v3/khr_swapchain"
)

// SourceAccessForLayout returns the mask of accesses that may have been performed on an
// image while it was in the provided layout. A barrier transitioning an image out of that
// layout must make these accesses available, so the result belongs in the barrier's source
// access mask.
//
// ImageLayoutUndefined produces an empty mask- the contents of an image leaving the
// undefined layout are not preserved, so there is nothing to make available.
// ImageLayoutPreinitialized produces AccessHostWrite, because preinitialized contents were
// written through host-mapped memory rather than by any device stage.
//
// ImageLayoutGeneral panics: it defeats the purpose of explicit layout tracking by forcing
// worst-case synchronization, so consumers must transition to a specific optimal layout
// instead. Layout values outside the supported set also panic.
func SourceAccessForLayout(layout core1_0.ImageLayout) core1_0.AccessFlags {
	switch layout {
	case core1_0.ImageLayoutUndefined:
		return 0
	case core1_0.ImageLayoutGeneral:
		panic("the general image layout is not supported- transition to a specific optimal layout instead")
	case core1_0.ImageLayoutColorAttachmentOptimal:
		return core1_0.AccessColorAttachmentWrite
	case core1_0.ImageLayoutDepthStencilAttachmentOptimal:
		return core1_0.AccessDepthStencilAttachmentWrite
	case core1_0.ImageLayoutDepthStencilReadOnlyOptimal:
		return core1_0.AccessDepthStencilAttachmentRead
	case core1_0.ImageLayoutShaderReadOnlyOptimal:
		return core1_0.AccessShaderRead
	case core1_0.ImageLayoutTransferSrcOptimal:
		return core1_0.AccessTransferRead
	case core1_0.ImageLayoutTransferDstOptimal:
		return core1_0.AccessTransferWrite
	case core1_0.ImageLayoutPreInitialized:
		return core1_0.AccessHostWrite
	case khr_maintenance2.ImageLayoutDepthReadOnlyStencilAttachmentOptimal:
		return core1_0.AccessDepthStencilAttachmentRead
	case khr_maintenance2.ImageLayoutDepthAttachmentStencilReadOnlyOptimal:
		return core1_0.AccessDepthStencilAttachmentRead
	case khr_swapchain.ImageLayoutPresentSrc:
		return core1_0.AccessMemoryRead
	default:
		panic(fmt.Sprintf("unexpected old image layout %s", layout.String()))
	}
}

// DestAccessForLayout returns the mask of accesses that may be performed on an image once
// it has entered the provided layout. A barrier transitioning an image into that layout
// must make prior writes visible to these accesses, so the result belongs in the barrier's
// destination access mask.
//
// ImageLayoutUndefined and ImageLayoutPreinitialized panic: both layouts are only valid as
// the initial layout of an image or as the old layout in a transition, never as a
// transition target. ImageLayoutGeneral panics for the same reason it does in
// SourceAccessForLayout, and layout values outside the supported set also panic.
//
// Entering a read-only depth/stencil layout resolves to a pure read access, even for the
// khr_maintenance2 layouts where one aspect remains writable. Both of those layouts are
// deliberately given identical masks here, mirroring their identical treatment in the
// source table- review both tables together if either ever diverges.
func DestAccessForLayout(layout core1_0.ImageLayout) core1_0.AccessFlags {
	switch layout {
	case core1_0.ImageLayoutUndefined:
		panic("the new layout in a transition must not be the undefined layout- it is only valid as an initial layout or as the old layout in a transition")
	case core1_0.ImageLayoutGeneral:
		panic("the general image layout is not supported- transition to a specific optimal layout instead")
	case core1_0.ImageLayoutColorAttachmentOptimal:
		return core1_0.AccessColorAttachmentWrite
	case core1_0.ImageLayoutDepthStencilAttachmentOptimal:
		return core1_0.AccessDepthStencilAttachmentWrite
	case core1_0.ImageLayoutDepthStencilReadOnlyOptimal:
		return core1_0.AccessDepthStencilAttachmentRead
	case core1_0.ImageLayoutShaderReadOnlyOptimal:
		return core1_0.AccessShaderRead | core1_0.AccessInputAttachmentRead
	case core1_0.ImageLayoutTransferSrcOptimal:
		return core1_0.AccessTransferRead
	case core1_0.ImageLayoutTransferDstOptimal:
		return core1_0.AccessTransferWrite
	case core1_0.ImageLayoutPreInitialized:
		panic("the new layout in a transition must not be the preinitialized layout- it is only valid as an initial layout or as the old layout in a transition")
	case khr_maintenance2.ImageLayoutDepthReadOnlyStencilAttachmentOptimal:
		return core1_0.AccessDepthStencilAttachmentRead
	case khr_maintenance2.ImageLayoutDepthAttachmentStencilReadOnlyOptimal:
		return core1_0.AccessDepthStencilAttachmentRead
	case khr_swapchain.ImageLayoutPresentSrc:
		return core1_0.AccessMemoryRead
	default:
		panic(fmt.Sprintf("unexpected new image layout %s", layout.String()))
	}
}

// DeriveAccessMasks returns the source and destination access masks implied by a layout
// transition. The source mask depends only on oldLayout and the destination mask depends
// only on newLayout- the two lookups are independent.
func DeriveAccessMasks(oldLayout, newLayout core1_0.ImageLayout) (srcAccess, dstAccess core1_0.AccessFlags) {
	return SourceAccessForLayout(oldLayout), DestAccessForLayout(newLayout)
}
