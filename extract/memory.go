package extract

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

const (
	// defaultMemoryBudgetMB bounds how much raster data a single page
	// batch may hold. Scanned foundry manuals routinely carry full-page
	// 300dpi images, around 25-50MB decoded each.
	defaultMemoryBudgetMB = 512

	minPageBatch = 1
	maxPageBatch = 10
)

// pageBatchSize derives the page batch size from a memory budget.
// Roughly one page per 50MB of budget, clamped so tiny budgets still
// make progress and huge budgets do not defer GC for too long.
func pageBatchSize(budgetMB int) int {
	n := budgetMB / 50
	if n < minPageBatch {
		return minPageBatch
	}
	if n > maxPageBatch {
		return maxPageBatch
	}
	return n
}

// AvailableMemoryMB reads MemAvailable from /proc/meminfo. Returns 0 on
// any failure; callers fall back to the configured default budget.
func AvailableMemoryMB() int {
	f, err := os.Open("/proc/meminfo")
	if err != nil {
		return 0
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "MemAvailable:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0
		}
		kb, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return 0
		}
		return int(kb / 1024)
	}
	return 0
}
