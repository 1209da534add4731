package barrier

import (
	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
)

// Statistics is a running tally of barrier activity for an Emitter or Batcher. Counters
// only ever increase until Clear is called.
type Statistics struct {
	// TransitionCount is the number of layout transitions requested
	TransitionCount int
	// BarrierCount is the number of image memory barriers actually recorded
	BarrierCount int
	// FlushCount is the number of flushes that recorded at least one barrier
	FlushCount int
	// EmptyFlushCount is the number of flushes that found nothing pending and recorded nothing
	EmptyFlushCount int
}

func (s *Statistics) Clear() {
	s.TransitionCount = 0
	s.BarrierCount = 0
	s.FlushCount = 0
	s.EmptyFlushCount = 0
}

func (s *Statistics) AddStatistics(other *Statistics) {
	s.TransitionCount += other.TransitionCount
	s.BarrierCount += other.BarrierCount
	s.FlushCount += other.FlushCount
	s.EmptyFlushCount += other.EmptyFlushCount
}

// BuildStatsString writes this object's counters to the provided json stream
func (s *Statistics) BuildStatsString(writer *jwriter.Writer) {
	obj := writer.Object()
	defer obj.End()

	obj.Name("Transitions").Int(s.TransitionCount)
	obj.Name("Barriers").Int(s.BarrierCount)
	obj.Name("Flushes").Int(s.FlushCount)
	obj.Name("EmptyFlushes").Int(s.EmptyFlushCount)
}
