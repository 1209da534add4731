package barrier_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/barrier"
	"github.com/vkngwrapper/core/v3/core1_0"
)

const allShaderStages = core1_0.PipelineStageVertexShader |
	core1_0.PipelineStageTessellationControlShader |
	core1_0.PipelineStageTessellationEvaluationShader |
	core1_0.PipelineStageGeometryShader |
	core1_0.PipelineStageFragmentShader |
	core1_0.PipelineStageComputeShader

var singleAccessTestCases = map[string]struct {
	Access   core1_0.AccessFlags
	Expected core1_0.PipelineStageFlags
}{
	"IndirectCommandRead": {
		Access:   core1_0.AccessIndirectCommandRead,
		Expected: core1_0.PipelineStageDrawIndirect,
	},
	"IndexRead": {
		Access:   core1_0.AccessIndexRead,
		Expected: core1_0.PipelineStageVertexInput,
	},
	"VertexAttributeRead": {
		Access:   core1_0.AccessVertexAttributeRead,
		Expected: core1_0.PipelineStageVertexInput,
	},
	"UniformRead": {
		Access:   core1_0.AccessUniformRead,
		Expected: allShaderStages,
	},
	"InputAttachmentRead": {
		Access:   core1_0.AccessInputAttachmentRead,
		Expected: core1_0.PipelineStageFragmentShader,
	},
	"ShaderRead": {
		Access:   core1_0.AccessShaderRead,
		Expected: allShaderStages,
	},
	"ShaderWrite": {
		Access:   core1_0.AccessShaderWrite,
		Expected: allShaderStages,
	},
	"ColorAttachmentRead": {
		Access:   core1_0.AccessColorAttachmentRead,
		Expected: core1_0.PipelineStageColorAttachmentOutput,
	},
	"ColorAttachmentWrite": {
		Access:   core1_0.AccessColorAttachmentWrite,
		Expected: core1_0.PipelineStageColorAttachmentOutput,
	},
	"DepthStencilAttachmentRead": {
		Access:   core1_0.AccessDepthStencilAttachmentRead,
		Expected: core1_0.PipelineStageEarlyFragmentTests | core1_0.PipelineStageLateFragmentTests,
	},
	"DepthStencilAttachmentWrite": {
		Access:   core1_0.AccessDepthStencilAttachmentWrite,
		Expected: core1_0.PipelineStageEarlyFragmentTests | core1_0.PipelineStageLateFragmentTests,
	},
	"TransferRead": {
		Access:   core1_0.AccessTransferRead,
		Expected: core1_0.PipelineStageTransfer,
	},
	"TransferWrite": {
		Access:   core1_0.AccessTransferWrite,
		Expected: core1_0.PipelineStageTransfer,
	},
	"HostRead": {
		Access:   core1_0.AccessHostRead,
		Expected: core1_0.PipelineStageHost,
	},
	"HostWrite": {
		Access:   core1_0.AccessHostWrite,
		Expected: core1_0.PipelineStageHost,
	},
	"MemoryRead": {
		Access:   core1_0.AccessMemoryRead,
		Expected: 0,
	},
	"MemoryWrite": {
		Access:   core1_0.AccessMemoryWrite,
		Expected: 0,
	},
}

func TestStagesForAccess_SingleBits(t *testing.T) {
	var mapper barrier.AccessStageMapper

	for testName, testCase := range singleAccessTestCases {
		t.Run(testName, func(t *testing.T) {
			require.Equal(t, testCase.Expected, mapper.StagesForAccess(testCase.Access))
		})
	}
}

func TestStagesForAccess_Empty(t *testing.T) {
	var mapper barrier.AccessStageMapper

	require.Equal(t, core1_0.PipelineStageFlags(0), mapper.StagesForAccess(0))
}

// The mapping is a homomorphism over set union: the stages for a combined access mask must
// equal the union of the stages for each access bit individually
func TestStagesForAccess_Unions(t *testing.T) {
	var mapper barrier.AccessStageMapper

	pairwise := core1_0.AccessIndexRead | core1_0.AccessTransferWrite
	require.Equal(t,
		core1_0.PipelineStageVertexInput|core1_0.PipelineStageTransfer,
		mapper.StagesForAccess(pairwise))

	readOnlyDepthSample := core1_0.AccessDepthStencilAttachmentRead | core1_0.AccessShaderRead
	require.Equal(t,
		core1_0.PipelineStageEarlyFragmentTests|core1_0.PipelineStageLateFragmentTests|allShaderStages,
		mapper.StagesForAccess(readOnlyDepthSample))

	var fullMask core1_0.AccessFlags
	var expectedStages core1_0.PipelineStageFlags
	for _, testCase := range singleAccessTestCases {
		fullMask |= testCase.Access
		expectedStages |= testCase.Expected
	}
	require.Equal(t, expectedStages, mapper.StagesForAccess(fullMask))
}

func TestStagesForAccess_UnknownBitPanics(t *testing.T) {
	var mapper barrier.AccessStageMapper

	require.Panics(t, func() {
		mapper.StagesForAccess(core1_0.AccessFlags(1 << 30))
	})
}
