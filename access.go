package barrier

import (
	"fmt"

	"github.com/vkngwrapper/core/v3/core1_0"
)

// allGraphicsShaderStages is the set of pipeline stages that execute graphics shader code. Shader
// and uniform accesses can be performed by any of these stages, as well as by the compute stage.
const allGraphicsShaderStages = core1_0.PipelineStageVertexShader |
	core1_0.PipelineStageTessellationControlShader |
	core1_0.PipelineStageTessellationEvaluationShader |
	core1_0.PipelineStageGeometryShader |
	core1_0.PipelineStageFragmentShader

// StageMapper maps a mask of memory accesses to the set of pipeline stages capable of
// performing those accesses. Emitter and Batcher consult a StageMapper to fill in stage
// masks the caller did not provide explicitly.
type StageMapper interface {
	// StagesForAccess returns the union of all pipeline stages capable of performing at
	// least one of the accesses in the provided mask. An empty access mask produces an
	// empty stage mask.
	StagesForAccess(access core1_0.AccessFlags) core1_0.PipelineStageFlags
}

// AccessStageMapper is the default StageMapper. It implements the access-to-stage table
// from the Vulkan spec section 6.1.3: an application must not specify an access flag in a
// synchronization command unless the corresponding stage mask includes a stage able to
// perform accesses of that type.
type AccessStageMapper struct{}

var defaultStageMapper StageMapper = AccessStageMapper{}

// StagesForAccess returns the union of all pipeline stages capable of performing at least
// one of the accesses in the provided mask.
//
// AccessMemoryRead and AccessMemoryWrite are wildcard accesses performed by non-specific
// entities (the presentation engine, for example). They exist to make writes available and
// visible, not to name a stage, so they contribute nothing to the result. Any other
// unrecognized access bit panics.
func (AccessStageMapper) StagesForAccess(access core1_0.AccessFlags) core1_0.PipelineStageFlags {
	var stages core1_0.PipelineStageFlags

	for access != 0 {
		accessBit := access & ^(access - 1)
		access &= access - 1

		switch accessBit {
		case core1_0.AccessIndirectCommandRead:
			stages |= core1_0.PipelineStageDrawIndirect
		case core1_0.AccessIndexRead:
			stages |= core1_0.PipelineStageVertexInput
		case core1_0.AccessVertexAttributeRead:
			stages |= core1_0.PipelineStageVertexInput
		case core1_0.AccessUniformRead:
			stages |= allGraphicsShaderStages | core1_0.PipelineStageComputeShader
		case core1_0.AccessInputAttachmentRead:
			stages |= core1_0.PipelineStageFragmentShader
		case core1_0.AccessShaderRead:
			stages |= allGraphicsShaderStages | core1_0.PipelineStageComputeShader
		case core1_0.AccessShaderWrite:
			stages |= allGraphicsShaderStages | core1_0.PipelineStageComputeShader
		case core1_0.AccessColorAttachmentRead:
			stages |= core1_0.PipelineStageColorAttachmentOutput
		case core1_0.AccessColorAttachmentWrite:
			stages |= core1_0.PipelineStageColorAttachmentOutput
		case core1_0.AccessDepthStencilAttachmentRead:
			stages |= core1_0.PipelineStageEarlyFragmentTests | core1_0.PipelineStageLateFragmentTests
		case core1_0.AccessDepthStencilAttachmentWrite:
			stages |= core1_0.PipelineStageEarlyFragmentTests | core1_0.PipelineStageLateFragmentTests
		case core1_0.AccessTransferRead:
			stages |= core1_0.PipelineStageTransfer
		case core1_0.AccessTransferWrite:
			stages |= core1_0.PipelineStageTransfer
		case core1_0.AccessHostRead:
			stages |= core1_0.PipelineStageHost
		case core1_0.AccessHostWrite:
			stages |= core1_0.PipelineStageHost
		case core1_0.AccessMemoryRead, core1_0.AccessMemoryWrite:
			// Wildcard accesses by non-specific entities- no stage to infer
		default:
			panic(fmt.Sprintf("unknown memory access flag %s in access mask", accessBit.String()))
		}
	}

	return stages
}
