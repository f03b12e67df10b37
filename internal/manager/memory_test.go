package manager

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"argmap/internal/accel"
)

func TestGetDevice(t *testing.T) {
	acc := gpu(1)
	h := newHarness(t, acc, newEnv())
	assert.Equal(t, accel.DeviceCUDA, h.m.GetDevice())

	// evaluated live on every call
	acc.Set()
	assert.Equal(t, accel.DeviceCPU, h.m.GetDevice())
}

func TestGetCUDAMemory_CPUIsZero(t *testing.T) {
	h := newHarness(t, accel.None(), newEnv())
	r, err := h.m.GetCUDAMemory()
	require.NoError(t, err)
	assert.Equal(t, MemoryReport{}, r)
}

func TestGetCUDAMemory_SumsDevices(t *testing.T) {
	acc := accel.NewStatic(
		accel.StaticDevice{Name: "a", Free: 2 * accel.GiB, Total: 8 * accel.GiB, Allocated: accel.GiB},
		accel.StaticDevice{Name: "b", Free: 3 * accel.GiB, Total: 8 * accel.GiB, Allocated: 0},
	)
	h := newHarness(t, acc, newEnv())

	r, err := h.m.GetCUDAMemory()
	require.NoError(t, err)
	assert.Equal(t, MemoryReport{Free: 5 * accel.GiB, Allocated: accel.GiB, Total: 16 * accel.GiB}, r)

	h.m.PrintCUDAMemory()
	assert.Equal(t, []string{"CUDA Memory: 5.0 GB free, 1.0 GB allocated, 16.0 GB total"}, h.diag.lines())
}

func TestPrintCUDAMemory_CPU(t *testing.T) {
	h := newHarness(t, accel.None(), newEnv())
	h.m.PrintCUDAMemory()
	assert.Equal(t, []string{"Running on CPU - no CUDA memory to report"}, h.diag.lines())
}

func TestEnsureCUDAMemory_CPUWarnsOnly(t *testing.T) {
	h := newHarness(t, accel.None(), newEnv())
	assert.NoError(t, h.m.EnsureCUDAMemory(1000))
	assert.Equal(t, []string{"Warning: Running on CPU, CUDA memory check skipped"}, h.diag.lines())
}

func TestEnsureCUDAMemory_ComparesBytes(t *testing.T) {
	// 7.96 GiB prints as 8.0 but is still short of 8 GiB
	freeGiB := 7.96
	acc := accel.NewStatic(accel.StaticDevice{Free: uint64(freeGiB * accel.GiB), Total: 16 * accel.GiB})
	h := newHarness(t, acc, newEnv())

	err := h.m.EnsureCUDAMemory(8)
	require.Error(t, err)
	assert.True(t, IsResource(err))
	assert.Equal(t, "Insufficient CUDA memory: 8.0 GB free, 8 GB required", err.Error())

	assert.NoError(t, h.m.EnsureCUDAMemory(7.9))

	acc.Set(accel.StaticDevice{Free: 8 * accel.GiB, Total: 16 * accel.GiB})
	assert.NoError(t, h.m.EnsureCUDAMemory(8), "exactly the required bytes passes")
}

func TestEnsureCUDAMemory_Property(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 200
	properties := gopter.NewProperties(params)

	properties.Property("passes iff free bytes >= required GiB in bytes", prop.ForAll(
		func(freeMiB uint32, requiredTenths uint16) bool {
			free := uint64(freeMiB) << 20
			required := float64(requiredTenths) / 10
			acc := accel.NewStatic(accel.StaticDevice{Free: free, Total: free + accel.GiB})
			h := newHarness(t, acc, newEnv())
			err := h.m.EnsureCUDAMemory(required)
			if free >= uint64(required*accel.GiB) {
				return err == nil
			}
			return IsResource(err) && strings.HasPrefix(err.Error(), "Insufficient CUDA memory: ")
		},
		gen.UInt32Range(0, 80*1024),
		gen.UInt16Range(0, 800),
	))
	properties.TestingRun(t)
}

func TestEnsureCUDAMemory_IgnoresAllocatedQuery(t *testing.T) {
	acc := noAllocated{Static: gpu(20)}
	h := newHarness(t, acc, newEnv())

	assert.NoError(t, h.m.EnsureCUDAMemory(1))
	assert.Empty(t, h.diag.lines())

	err := h.m.EnsureCUDAMemory(21)
	assert.True(t, IsResource(err))
}

func TestGetCUDAMemory_AllocatedUnavailableCountsAsZero(t *testing.T) {
	acc := noAllocated{Static: gpu(20)}
	h := newHarness(t, acc, newEnv())

	r, err := h.m.GetCUDAMemory()
	require.NoError(t, err)
	assert.Equal(t, MemoryReport{Free: 20 * accel.GiB, Total: 24 * accel.GiB}, r)

	h.m.PrintCUDAMemory()
	lines := h.diag.lines()
	require.Len(t, lines, 3)
	assert.Equal(t, "CUDA allocated memory unavailable on device 0: nvml running processes: Not Supported", lines[0])
	assert.Equal(t, "CUDA Memory: 20.0 GB free, 0.0 GB allocated, 24.0 GB total", lines[2])
}

func TestGB(t *testing.T) {
	assert.Equal(t, 0.0, GB(0))
	assert.Equal(t, 1.0, GB(accel.GiB))
	assert.Equal(t, 1.5, GB(accel.GiB+accel.GiB/2))
	assert.Equal(t, 0.1, GB(accel.GiB/10))
}

func TestMemoryResponse(t *testing.T) {
	h := newHarness(t, gpu(20), newEnv())
	r := h.m.MemoryResponse()
	assert.Equal(t, "cuda", r.Device)
	assert.Equal(t, 20.0, r.FreeGB)
	assert.Equal(t, 4.0, r.AllocatedGB)
	assert.Equal(t, 24.0, r.TotalGB)
	assert.EqualValues(t, 24*accel.GiB, r.TotalBytes)
}
