package tracer

import (
	"math"
	"time"
)

// Render feedback for one block of frame rows.
type BlockStats struct {
	// Rendered block height.
	BlockH uint32

	// Time spent rendering the block.
	BlockTime time.Duration
}

// The BlockScheduler interface is implemented by all block scheduling
// algorithms. Schedulers split the frame into horizontal blocks, one per
// worker, optionally using feedback collected from previous frames.
type BlockScheduler interface {
	// Return the block height assignment for each worker. lastFrame holds
	// per-worker stats from the previous frame, or nil for the first one.
	Schedule(numWorkers int, frameH uint32, lastFrame []BlockStats) []uint32
}

// The perfect scheduler assumes the volume of tracing work between two
// subsequent frames is approximately the same: each worker's next block is
// sized proportionally to the row throughput it achieved on the previous
// frame. The first frame is split evenly.
type perfectScheduler struct {
	blockAssignment []uint32
}

// Create a new perfect scheduler instance.
func NewPerfectScheduler() BlockScheduler {
	return &perfectScheduler{}
}

func (sch *perfectScheduler) Schedule(numWorkers int, frameH uint32, lastFrame []BlockStats) []uint32 {
	if numWorkers < 1 {
		numWorkers = 1
	}
	// Blocks are at least one row tall; extra workers would overcommit the
	// frame.
	if uint32(numWorkers) > frameH {
		numWorkers = int(frameH)
	}

	// No usable feedback; distribute rows evenly.
	if len(sch.blockAssignment) != numWorkers || len(lastFrame) != numWorkers {
		sch.blockAssignment = make([]uint32, numWorkers)
		evenBlockH := frameH / uint32(numWorkers)
		for idx := range sch.blockAssignment {
			sch.blockAssignment[idx] = evenBlockH
		}
		sch.blockAssignment[0] += frameH - evenBlockH*uint32(numWorkers)
		return sch.blockAssignment
	}

	// Size blocks proportionally to last frame row throughput.
	var total float64
	for _, stat := range lastFrame {
		if stat.BlockTime <= 0 {
			continue
		}
		total += float64(stat.BlockH) / float64(stat.BlockTime)
	}
	if total == 0 {
		return sch.Schedule(numWorkers, frameH, nil)
	}

	scaler := float64(frameH) / total
	var scheduledRows uint32
	for idx, stat := range lastFrame {
		var throughput float64
		if stat.BlockTime > 0 {
			throughput = float64(stat.BlockH) / float64(stat.BlockTime)
		}
		sch.blockAssignment[idx] = uint32(math.Max(1.0, math.Floor(throughput*scaler)))
		scheduledRows += sch.blockAssignment[idx]
	}

	// In case rows don't add up to the frame height, assign the missing
	// ones to the first worker.
	if scheduledRows < frameH {
		sch.blockAssignment[0] += frameH - scheduledRows
	} else if scheduledRows > frameH {
		sch.trimOverflow(scheduledRows - frameH)
	}

	return sch.blockAssignment
}

// Remove overflow rows, never shrinking a block below one row.
func (sch *perfectScheduler) trimOverflow(overflow uint32) {
	for overflow > 0 {
		removed := false
		for idx := range sch.blockAssignment {
			if overflow == 0 {
				break
			}
			if sch.blockAssignment[idx] > 1 {
				sch.blockAssignment[idx]--
				overflow--
				removed = true
			}
		}
		if !removed {
			break
		}
	}
}
