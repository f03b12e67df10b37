//go:build linux && cgo

package accel

import (
	"fmt"
	"os"
	"sync"

	"github.com/NVIDIA/go-nvml/pkg/nvml"
)

// nvmlAccelerator queries NVIDIA devices through NVML. The library is
// dlopen'ed on first use; hosts without a driver report no devices.
type nvmlAccelerator struct {
	once    sync.Once
	initErr error
	lookup  func(string) (string, bool)
	pid     uint32
}

// NewNVML returns an NVML-backed Accelerator. Device visibility follows
// CUDA_VISIBLE_DEVICES as read through lookup (os.LookupEnv when nil).
func NewNVML(lookup func(string) (string, bool)) Accelerator {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &nvmlAccelerator{lookup: lookup, pid: uint32(os.Getpid())}
}

func nvmlErr(op string, ret nvml.Return) error {
	return fmt.Errorf("nvml %s: %s", op, nvml.ErrorString(ret))
}

func (a *nvmlAccelerator) init() error {
	a.once.Do(func() {
		if ret := nvml.Init(); ret != nvml.SUCCESS {
			a.initErr = nvmlErr("init", ret)
		}
	})
	return a.initErr
}

// visible returns the physical indices of the devices visible to the process.
func (a *nvmlAccelerator) visible() []int {
	if a.init() != nil {
		return nil
	}
	n, ret := nvml.DeviceGetCount()
	if ret != nvml.SUCCESS || n <= 0 {
		return nil
	}
	value, set := a.lookup(VisibleDevicesEnv)
	sel := parseVisible(value, set)
	return sel.resolve(n, func(i int) string {
		dev, ret := nvml.DeviceGetHandleByIndex(i)
		if ret != nvml.SUCCESS {
			return ""
		}
		uuid, ret := dev.GetUUID()
		if ret != nvml.SUCCESS {
			return ""
		}
		return uuid
	})
}

func (a *nvmlAccelerator) handle(i int) (nvml.Device, error) {
	vis := a.visible()
	if i < 0 || i >= len(vis) {
		return nil, ErrNoDevice
	}
	dev, ret := nvml.DeviceGetHandleByIndex(vis[i])
	if ret != nvml.SUCCESS {
		return nil, nvmlErr("device handle", ret)
	}
	return dev, nil
}

func (a *nvmlAccelerator) Available() bool { return a.DeviceCount() > 0 }

func (a *nvmlAccelerator) DeviceCount() int { return len(a.visible()) }

func (a *nvmlAccelerator) MemGetInfo(i int) (uint64, uint64, error) {
	dev, err := a.handle(i)
	if err != nil {
		return 0, 0, err
	}
	mem, ret := dev.GetMemoryInfo()
	if ret != nvml.SUCCESS {
		return 0, 0, nvmlErr("memory info", ret)
	}
	return mem.Free, mem.Total, nil
}

func (a *nvmlAccelerator) MemoryAllocated(i int) (uint64, error) {
	dev, err := a.handle(i)
	if err != nil {
		return 0, err
	}
	procs, ret := dev.GetComputeRunningProcesses()
	if ret != nvml.SUCCESS {
		return 0, nvmlErr("running processes", ret)
	}
	var used uint64
	for _, p := range procs {
		if p.Pid == a.pid {
			used += p.UsedGpuMemory
		}
	}
	return used, nil
}

func (a *nvmlAccelerator) Name(i int) (string, error) {
	dev, err := a.handle(i)
	if err != nil {
		return "", err
	}
	name, ret := dev.GetName()
	if ret != nvml.SUCCESS {
		return "", nvmlErr("device name", ret)
	}
	return name, nil
}

func (a *nvmlAccelerator) DriverVersion() (string, error) {
	if err := a.init(); err != nil {
		return "", err
	}
	v, ret := nvml.SystemGetDriverVersion()
	if ret != nvml.SUCCESS {
		return "", nvmlErr("driver version", ret)
	}
	return v, nil
}

func (a *nvmlAccelerator) CUDAVersion() (string, error) {
	if err := a.init(); err != nil {
		return "", err
	}
	v, ret := nvml.SystemGetCudaDriverVersion()
	if ret != nvml.SUCCESS {
		return "", nvmlErr("cuda version", ret)
	}
	return formatCUDAVersion(v), nil
}
