package system

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/ivlev/vacdoc/internal/logging"
)

const (
	minCacheBudget = 64 << 20
	maxCacheBudget = 2 << 30
)

// DefaultWorkers возвращает число физических ядер, а если их не удалось
// определить, то число логических CPU.
func DefaultWorkers() int {
	n, err := cpu.Counts(false)
	if err != nil || n < 1 {
		logging.Logger().Debug("system: physical core count unavailable", "err", err)
		return runtime.NumCPU()
	}
	return n
}

// CacheBudget возвращает, сколько байт декодированных изображений можно
// держать в кэше: восьмая часть доступной памяти в пределах [64 MiB, 2 GiB].
func CacheBudget() int64 {
	vm, err := mem.VirtualMemory()
	if err != nil {
		logging.Logger().Warn("system: memory probe failed", "err", err)
		return minCacheBudget
	}
	return clampBudget(int64(vm.Available / 8))
}

func clampBudget(b int64) int64 {
	if b < minCacheBudget {
		return minCacheBudget
	}
	if b > maxCacheBudget {
		return maxCacheBudget
	}
	return b
}
