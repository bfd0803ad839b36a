// Package system 探测运行环境的硬件能力，为图像处理选择合适的并行度和插值质量。
package system

import (
	"log"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Capabilities 环境探测结果
type Capabilities struct {
	// CropWorkers 异步视口裁剪使用的并行条带数
	CropWorkers int

	// HighQualityScaling 是否使用高质量插值（CatmullRom）
	// 可用内存紧张时降级为近似双线性，避免大图缩放时的峰值分配压力
	HighQualityScaling bool

	PhysicalCores int    // 物理核心数
	TotalMemoryMB uint64 // 物理内存总量（MB）
}

// 高质量插值所需的最低可用内存（多百万像素源图的缩放工作集）
const highQualityMinAvailableMB = 1024

// Probe 探测 CPU 与内存并推导处理参数
//
// gopsutil 探测失败时回退到 runtime.NumCPU 和保守默认值，不会报错。
func Probe() Capabilities {
	caps := Capabilities{
		CropWorkers:        runtime.NumCPU(),
		HighQualityScaling: true,
		PhysicalCores:      runtime.NumCPU(),
	}

	if physical, err := cpu.Counts(false); err == nil && physical > 0 {
		caps.PhysicalCores = physical
		caps.CropWorkers = physical
	} else if err != nil {
		log.Printf("[System] CPU probe failed: %v (falling back to NumCPU=%d)", err, runtime.NumCPU())
	}

	if caps.CropWorkers > 8 {
		// 条带切得太细反而放大调度开销
		caps.CropWorkers = 8
	}
	if caps.CropWorkers < 1 {
		caps.CropWorkers = 1
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		caps.TotalMemoryMB = vm.Total / 1024 / 1024
		availableMB := vm.Available / 1024 / 1024
		if availableMB < highQualityMinAvailableMB {
			caps.HighQualityScaling = false
			log.Printf("[System] Low available memory (%d MB), using fast scaling", availableMB)
		}
	} else {
		log.Printf("[System] Memory probe failed: %v (assuming high quality scaling)", err)
	}

	log.Printf("[System] Capabilities: cores=%d, cropWorkers=%d, highQuality=%v, memMB=%d",
		caps.PhysicalCores, caps.CropWorkers, caps.HighQualityScaling, caps.TotalMemoryMB)
	return caps
}
