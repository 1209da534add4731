package barrier

import (
	"github.com/vkngwrapper/core/v3/common"
)

// CreateFlags indicate specific emitter or batcher behaviors to activate or deactivate
type CreateFlags int32

var createFlagsMapping = common.NewFlagStringMapping[CreateFlags]()

func (f CreateFlags) Register(str string) {
	createFlagsMapping.Register(f, str)
}
func (f CreateFlags) String() string {
	return createFlagsMapping.FlagsToString(f)
}

const (
	// CreateExternallySynchronized ensures that the created object will not be synchronized
	// internally. The consumer must guarantee it is used from only one thread at a time or is
	// synchronized by some other mechanism, but performance may improve because internal
	// mutexes are not used. Command buffers are never synchronized by this library- the
	// caller must guarantee exclusive access to a command buffer for the duration of any call
	// that records to it, regardless of this flag.
	CreateExternallySynchronized CreateFlags = 1 << iota
)

func init() {
	CreateExternallySynchronized.Register("CreateExternallySynchronized")
}

// EmitterOptions contains optional settings when creating an Emitter
type EmitterOptions struct {
	// Flags indicates specific emitter behaviors to activate or deactivate
	Flags CreateFlags

	// StageMapper is the access-to-stage inference used when a caller does not provide
	// explicit stage masks. When nil, the built-in AccessStageMapper is used.
	StageMapper StageMapper
}

// BatcherOptions contains optional settings when creating a Batcher
type BatcherOptions struct {
	// Flags indicates specific batcher behaviors to activate or deactivate
	Flags CreateFlags

	// StageMapper is the access-to-stage inference used when a caller does not provide
	// explicit stage masks. When nil, the built-in AccessStageMapper is used.
	StageMapper StageMapper
}
