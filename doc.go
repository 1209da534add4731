// Package barrier derives hazard-correct pipeline barriers for image layout transitions
// recorded through the vkngwrapper bindings.
//
// Vulkan requires the caller of vkCmdPipelineBarrier to name the access masks being made
// available and visible and the pipeline stages that perform them. Getting those masks
// wrong is invisible at the API level: an under-synchronized barrier corrupts data only on
// some hardware and only under load, while an over-synchronized barrier silently
// serializes the pipeline. This package keeps the two authoritative mappings- access kind
// to capable stages, and image layout to implied accesses- in one place, and uses them to
// record transitions either one at a time (Emitter) or coalesced per flush (Batcher).
package barrier
