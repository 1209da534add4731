package barrier

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/vkngwrapper/barrier/internal/utils"
	"github.com/vkngwrapper/core/v3/core1_0"
)

// Batcher accumulates pending image layout transitions and records them as a single
// pipeline barrier command per flush. Recording one barrier command per transition is
// correct but pays the fixed cost of a pipeline barrier for every image- batching
// amortizes that cost and hands the driver all of the dependencies at once.
//
// Transitions are staged with the same mask derivation the Emitter performs and flushed
// in the order they were staged, so per-image transition order is preserved. A Batcher's
// pending queue is scoped to one recording session- stage transitions, flush them into a
// command buffer, repeat.
type Batcher struct {
	logger      *slog.Logger
	driver      core1_0.DeviceDriver
	stageMapper StageMapper

	mutex           utils.OptionalMutex
	pending         []core1_0.ImageMemoryBarrier
	pendingSrcMask  core1_0.PipelineStageFlags
	pendingDstMask  core1_0.PipelineStageFlags
	pendingPerImage *swiss.Map[core1_0.Image, int]

	stats Statistics
}

// NewBatcher creates a new Batcher that records barriers through the provided driver.
// A nil driver panics. A nil logger falls back to slog.Default().
func NewBatcher(logger *slog.Logger, driver core1_0.DeviceDriver, options BatcherOptions) *Batcher {
	if driver == nil {
		panic("attempted to create a batcher with a nil device driver")
	}
	if logger == nil {
		logger = slog.Default()
	}

	stageMapper := options.StageMapper
	if stageMapper == nil {
		stageMapper = defaultStageMapper
	}

	useMutex := options.Flags&CreateExternallySynchronized == 0
	return &Batcher{
		logger:      logger,
		driver:      driver,
		stageMapper: stageMapper,

		mutex:           utils.OptionalMutex{UseMutex: useMutex},
		pendingPerImage: swiss.NewMap[core1_0.Image, int](8),
	}
}

// Stage enqueues a layout transition for the provided subresource range of an image
// without recording anything. Access masks are derived from the layouts and missing stage
// masks are inferred exactly as in Emitter.TransitionImageLayout- the masks are resolved
// at stage time, not flush time, so inference behaves identically whether or not
// transitions are batched.
func (b *Batcher) Stage(
	image core1_0.Image,
	aspectMask core1_0.ImageAspectFlags,
	oldLayout, newLayout core1_0.ImageLayout,
	subresourceRange core1_0.ImageSubresourceRange,
	srcStages, dstStages core1_0.PipelineStageFlags,
) {
	imageBarrier := buildImageBarrier(image, aspectMask, oldLayout, newLayout, subresourceRange)
	srcStages, dstStages = resolveStageMasks(b.stageMapper, imageBarrier.SrcAccessMask, imageBarrier.DstAccessMask, srcStages, dstStages)

	b.mutex.Lock()
	defer b.mutex.Unlock()

	b.pending = append(b.pending, imageBarrier)
	b.pendingSrcMask |= srcStages
	b.pendingDstMask |= dstStages

	count, _ := b.pendingPerImage.Get(image)
	b.pendingPerImage.Put(image, count+1)

	b.stats.TransitionCount++
}

// Flush coalesces every pending transition into one pipeline barrier command recorded to
// the provided command buffer, then clears the queue. The recorded barrier array keeps
// staging order, and the command's stage masks are the union of the masks resolved for
// each staged transition.
//
// Flushing an empty queue is a no-op and returns nil. A zero command buffer panics when
// there is anything to record. The pending queue is retained when the driver rejects the
// command, so a failed flush can be retried.
func (b *Batcher) Flush(commandBuffer core1_0.CommandBuffer) error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if len(b.pending) == 0 {
		b.stats.EmptyFlushCount++
		return nil
	}

	if commandBuffer == (core1_0.CommandBuffer{}) {
		panic("attempted to flush pending barriers to a zero command buffer")
	}

	b.logger.LogAttrs(context.Background(), slog.LevelDebug, "Batcher::Flush",
		slog.Int("barrierCount", len(b.pending)),
		slog.String("srcStages", b.pendingSrcMask.String()),
		slog.String("dstStages", b.pendingDstMask.String()),
	)

	err := b.driver.CmdPipelineBarrier(commandBuffer, b.pendingSrcMask, b.pendingDstMask, 0, nil, nil, b.pending)
	if err != nil {
		return errors.Wrapf(err, "failed to record a batch of %d pending image barriers", len(b.pending))
	}

	b.stats.BarrierCount += len(b.pending)
	b.stats.FlushCount++

	b.pending = b.pending[:0]
	b.pendingSrcMask = 0
	b.pendingDstMask = 0
	b.pendingPerImage.Clear()

	return nil
}

// PendingCount returns the number of staged transitions that have not been flushed
func (b *Batcher) PendingCount() int {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	return len(b.pending)
}

// PendingCountForImage returns the number of unflushed staged transitions for a single image
func (b *Batcher) PendingCountForImage(image core1_0.Image) int {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	count, _ := b.pendingPerImage.Get(image)
	return count
}

// Statistics returns a snapshot of this batcher's activity counters
func (b *Batcher) Statistics() Statistics {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	return b.stats
}

// BuildStatsString writes this batcher's activity counters and pending-queue state to the
// provided json stream
func (b *Batcher) BuildStatsString(writer *jwriter.Writer) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	obj := writer.Object()
	defer obj.End()

	obj.Name("Transitions").Int(b.stats.TransitionCount)
	obj.Name("Barriers").Int(b.stats.BarrierCount)
	obj.Name("Flushes").Int(b.stats.FlushCount)
	obj.Name("EmptyFlushes").Int(b.stats.EmptyFlushCount)
	obj.Name("Pending").Int(len(b.pending))
}
