package kernel

import (
	"github.com/stride-hpc/stride/internal/device"
	"github.com/stride-hpc/stride/internal/parallel"
)

// Policy selects the loop construct a For or Tile statement compiles to.
// The set is closed: sequential, worker-pool parallel, or device-axis
// mapping. Compile resolves the policy once; no per-iteration branch asks
// which policy is in effect.
type Policy interface {
	policyTag()
}

// Seq executes the loop as an ordinary counted loop on the calling
// goroutine.
type Seq struct{}

func (Seq) policyTag() {}

// Par executes the loop on the worker pool, privatizing descent state and
// reduction accumulators per worker and combining after the region. Zero
// fields take defaults from the pool configuration.
type Par struct {
	Workers int
	Grain   int
}

func (Par) policyTag() {}

func (p Par) config() parallel.Config {
	cfg := parallel.DefaultConfig()
	if p.Workers > 0 {
		cfg.NumWorkers = p.Workers
		cfg.Enabled = p.Workers > 1
	}
	if p.Grain > 0 {
		cfg.MinGrain = p.Grain
	}
	return cfg
}

// DeviceLevel distinguishes thread-axis from block-axis mapping.
type DeviceLevel int

// Device mapping levels.
const (
	ThreadLevel DeviceLevel = iota
	BlockLevel
)

// DeviceMap assigns the loop's dimension to one axis of the device
// hierarchy. Direct mapping (Strided == false) requires the iteration count
// to fit the physical axis width and fails fatally otherwise; strided
// ("loop") mapping covers arbitrary counts by striding over the width.
type DeviceMap struct {
	Level   DeviceLevel
	Axis    device.Axis
	Strided bool
}

func (DeviceMap) policyTag() {}

// Direct thread-axis mappings.
var (
	ThreadX = DeviceMap{Level: ThreadLevel, Axis: device.X}
	ThreadY = DeviceMap{Level: ThreadLevel, Axis: device.Y}
	ThreadZ = DeviceMap{Level: ThreadLevel, Axis: device.Z}
)

// Strided thread-axis mappings.
var (
	ThreadXLoop = DeviceMap{Level: ThreadLevel, Axis: device.X, Strided: true}
	ThreadYLoop = DeviceMap{Level: ThreadLevel, Axis: device.Y, Strided: true}
	ThreadZLoop = DeviceMap{Level: ThreadLevel, Axis: device.Z, Strided: true}
)

// Direct block-axis mappings.
var (
	BlockX = DeviceMap{Level: BlockLevel, Axis: device.X}
	BlockY = DeviceMap{Level: BlockLevel, Axis: device.Y}
	BlockZ = DeviceMap{Level: BlockLevel, Axis: device.Z}
)

// Strided block-axis mappings.
var (
	BlockXLoop = DeviceMap{Level: BlockLevel, Axis: device.X, Strided: true}
	BlockYLoop = DeviceMap{Level: BlockLevel, Axis: device.Y, Strided: true}
	BlockZLoop = DeviceMap{Level: BlockLevel, Axis: device.Z, Strided: true}
)
