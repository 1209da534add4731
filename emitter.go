package barrier

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/barrier/internal/utils"
	"github.com/vkngwrapper/core/v3/core1_0"
)

// Emitter records image layout transitions one pipeline barrier command at a time. It
// derives the source and destination access masks implied by the transition's layouts, and
// when the caller does not provide explicit stage masks it infers them from those accesses
// via its StageMapper.
//
// An Emitter performs no Vulkan calls other than CmdPipelineBarrier and holds no
// per-image state- it may be shared between images freely. The command buffer passed to
// TransitionImageLayout must be externally synchronized for the duration of the call.
type Emitter struct {
	logger      *slog.Logger
	driver      core1_0.DeviceDriver
	stageMapper StageMapper

	statsMutex utils.OptionalRWMutex
	stats      Statistics
}

// NewEmitter creates a new Emitter that records barriers through the provided driver.
// A nil driver panics. A nil logger falls back to slog.Default().
func NewEmitter(logger *slog.Logger, driver core1_0.DeviceDriver, options EmitterOptions) *Emitter {
	if driver == nil {
		panic("attempted to create an emitter with a nil device driver")
	}
	if logger == nil {
		logger = slog.Default()
	}

	stageMapper := options.StageMapper
	if stageMapper == nil {
		stageMapper = defaultStageMapper
	}

	useMutex := options.Flags&CreateExternallySynchronized == 0
	return &Emitter{
		logger:      logger,
		driver:      driver,
		stageMapper: stageMapper,

		statsMutex: utils.OptionalRWMutex{UseMutex: useMutex},
	}
}

// resolveStageMasks fills in whichever of the two stage masks the caller left empty.
// Explicit masks are used verbatim- the mapper is only consulted for masks that are
// missing, so a caller can override inference when it has stage requirements this
// library cannot know about. A mask that is still empty after inference (an access mask
// with no producing or consuming stage, such as an undefined source or a present
// destination) falls back to the top or bottom of the pipe.
func resolveStageMasks(
	mapper StageMapper,
	srcAccess, dstAccess core1_0.AccessFlags,
	srcStages, dstStages core1_0.PipelineStageFlags,
) (core1_0.PipelineStageFlags, core1_0.PipelineStageFlags) {
	if srcStages == 0 {
		srcStages = mapper.StagesForAccess(srcAccess)
		if srcStages == 0 {
			srcStages = core1_0.PipelineStageTopOfPipe
		}
	}

	if dstStages == 0 {
		dstStages = mapper.StagesForAccess(dstAccess)
		if dstStages == 0 {
			dstStages = core1_0.PipelineStageBottomOfPipe
		}
	}

	return srcStages, dstStages
}

func buildImageBarrier(
	image core1_0.Image,
	aspectMask core1_0.ImageAspectFlags,
	oldLayout, newLayout core1_0.ImageLayout,
	subresourceRange core1_0.ImageSubresourceRange,
) core1_0.ImageMemoryBarrier {
	srcAccess, dstAccess := DeriveAccessMasks(oldLayout, newLayout)

	imageBarrier := core1_0.ImageMemoryBarrier{
		SrcAccessMask: srcAccess,
		DstAccessMask: dstAccess,
		OldLayout:     oldLayout,
		NewLayout:     newLayout,
		// Queue family ownership transfers are out of scope- both families are ignored
		SrcQueueFamilyIndex: -1,
		DstQueueFamilyIndex: -1,
		Image:               image,
		SubresourceRange:    subresourceRange,
	}
	imageBarrier.SubresourceRange.AspectMask = aspectMask

	return imageBarrier
}

// TransitionImageLayout records a single pipeline barrier command that transitions the
// provided subresource range of an image from oldLayout to newLayout.
//
// srcStages and dstStages are optional hints: when either is zero, the corresponding
// stage mask is inferred from the access masks implied by the transition. Passing a
// non-zero mask bypasses inference entirely for that side.
//
// The command buffer must be in the recording state and externally synchronized. A zero
// command buffer panics, as do unsupported layout values- these are contract violations
// on the caller's part, not runtime failures. The returned error is only non-nil when the
// driver rejects the recorded command.
func (e *Emitter) TransitionImageLayout(
	commandBuffer core1_0.CommandBuffer,
	image core1_0.Image,
	aspectMask core1_0.ImageAspectFlags,
	oldLayout, newLayout core1_0.ImageLayout,
	subresourceRange core1_0.ImageSubresourceRange,
	srcStages, dstStages core1_0.PipelineStageFlags,
) error {
	if commandBuffer == (core1_0.CommandBuffer{}) {
		panic("attempted to record an image layout transition to a zero command buffer")
	}

	imageBarrier := buildImageBarrier(image, aspectMask, oldLayout, newLayout, subresourceRange)
	srcStages, dstStages = resolveStageMasks(e.stageMapper, imageBarrier.SrcAccessMask, imageBarrier.DstAccessMask, srcStages, dstStages)

	e.logger.LogAttrs(context.Background(), slog.LevelDebug, "Emitter::TransitionImageLayout",
		slog.String("oldLayout", oldLayout.String()),
		slog.String("newLayout", newLayout.String()),
		slog.String("srcStages", srcStages.String()),
		slog.String("dstStages", dstStages.String()),
	)

	err := e.driver.CmdPipelineBarrier(commandBuffer, srcStages, dstStages, 0, nil, nil,
		[]core1_0.ImageMemoryBarrier{imageBarrier})
	if err != nil {
		return errors.Wrapf(err, "failed to record image layout transition %s -> %s", oldLayout, newLayout)
	}

	e.statsMutex.Lock()
	e.stats.TransitionCount++
	e.stats.BarrierCount++
	e.statsMutex.Unlock()

	return nil
}

// Statistics returns a snapshot of this emitter's activity counters
func (e *Emitter) Statistics() Statistics {
	e.statsMutex.RLock()
	defer e.statsMutex.RUnlock()

	return e.stats
}

// BuildStatsString writes this emitter's activity counters to the provided json stream
func (e *Emitter) BuildStatsString(writer *jwriter.Writer) {
	e.statsMutex.RLock()
	defer e.statsMutex.RUnlock()

	e.stats.BuildStatsString(writer)
}
