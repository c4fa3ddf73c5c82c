package kernel

import (
	"fmt"

	"github.com/stride-hpc/stride/internal/device"
	"github.com/stride-hpc/stride/internal/parallel"
	"github.com/stride-hpc/stride/internal/reduce"
)

// compileList resolves an ordered statement list into one executor running
// the children in sequence.
func compileList(stmts []Statement, env *compileEnv) (executor, error) {
	execs := make([]executor, len(stmts))
	for i, s := range stmts {
		e, err := compileStmt(s, env)
		if err != nil {
			return nil, err
		}
		execs[i] = e
	}
	if len(execs) == 1 {
		return execs[0], nil
	}
	return func(c *Context) {
		for _, e := range execs {
			e(c)
		}
	}, nil
}

// compileStmt dispatches on the statement kind exactly once, at compile
// time; the returned executor carries no node-kind branch.
func compileStmt(s Statement, env *compileEnv) (executor, error) {
	switch s := s.(type) {
	case *ForStmt:
		return compileFor(s, env)
	case *TileStmt:
		return compileTile(s, env)
	case *LambdaStmt:
		if s.N < 0 || s.N >= env.arity.Lambdas {
			return nil, fmt.Errorf("kernel: Lambda references callback %d, plan has %d lambdas", s.N, env.arity.Lambdas)
		}
		n := s.N
		return func(c *Context) { c.lambdas[n](c) }, nil
	case *InitScopedMemStmt:
		return compileInitScopedMem(s, env)
	case *IfStmt:
		if s.Cond == nil {
			return nil, fmt.Errorf("kernel: If statement has nil condition")
		}
		inner, err := compileList(s.Body, env)
		if err != nil {
			return nil, err
		}
		cond := s.Cond
		return func(c *Context) {
			if cond(c) {
				inner(c)
			}
		}, nil
	case *SetShmemWindowStmt:
		inner, err := compileList(s.Body, env)
		if err != nil {
			return nil, err
		}
		return func(c *Context) {
			for d := range c.wins {
				c.shmWin[d] = c.wins[d].begin
			}
			inner(c)
		}, nil
	case *LaunchStmt:
		return compileLaunch(s, env)
	case *SyncStmt:
		if !env.inLaunch {
			return nil, fmt.Errorf("kernel: SyncThreads outside a Launch")
		}
		return func(c *Context) { c.blk.Sync() }, nil
	case nil:
		return nil, fmt.Errorf("kernel: nil statement")
	default:
		return nil, fmt.Errorf("kernel: unknown statement %T", s)
	}
}

func compileFor(s *ForStmt, env *compileEnv) (executor, error) {
	if err := env.checkDim(s.Dim, "For"); err != nil {
		return nil, err
	}
	if err := env.checkPolicy(s.Pol, "For"); err != nil {
		return nil, err
	}
	dim := s.Dim

	switch pol := s.Pol.(type) {
	case Seq:
		inner, err := compileList(s.Body, env)
		if err != nil {
			return nil, err
		}
		return func(c *Context) {
			w := c.wins[dim]
			for v := w.begin; v < w.begin+w.size; v++ {
				c.index[dim] = v
				inner(c)
			}
		}, nil

	case Par:
		parEnv := *env
		parEnv.inPar = true
		inner, err := compileList(s.Body, &parEnv)
		if err != nil {
			return nil, err
		}
		cfg := pol.config()
		return func(c *Context) {
			w := c.wins[dim]
			runParallel(c, w.size, cfg, func(cc *Context, i int) {
				cc.index[dim] = w.begin + i
				inner(cc)
			})
		}, nil

	case DeviceMap:
		inner, err := compileList(s.Body, env)
		if err != nil {
			return nil, err
		}
		return deviceLoop(dim, pol, inner, "For"), nil
	}
	return nil, fmt.Errorf("kernel: For has unknown policy %T", s.Pol)
}

func compileTile(s *TileStmt, env *compileEnv) (executor, error) {
	if err := env.checkDim(s.Dim, "Tile"); err != nil {
		return nil, err
	}
	if s.Width <= 0 {
		return nil, fmt.Errorf("kernel: Tile of dimension %d has non-positive width %d", s.Dim, s.Width)
	}
	if err := env.checkPolicy(s.Pol, "Tile"); err != nil {
		return nil, err
	}
	dim, width := s.Dim, s.Width

	switch pol := s.Pol.(type) {
	case Seq:
		inner, err := compileList(s.Body, env)
		if err != nil {
			return nil, err
		}
		return func(c *Context) {
			orig := c.wins[dim]
			for b := orig.begin; b < orig.begin+orig.size; b += width {
				c.wins[dim] = window{begin: b, size: min(width, orig.begin+orig.size-b)}
				inner(c)
			}
			c.wins[dim] = orig
		}, nil

	case Par:
		parEnv := *env
		parEnv.inPar = true
		inner, err := compileList(s.Body, &parEnv)
		if err != nil {
			return nil, err
		}
		cfg := pol.config()
		return func(c *Context) {
			orig := c.wins[dim]
			tiles := (orig.size + width - 1) / width
			runParallel(c, tiles, cfg, func(cc *Context, t int) {
				b := orig.begin + t*width
				cc.wins[dim] = window{begin: b, size: min(width, orig.begin+orig.size-b)}
				inner(cc)
				cc.wins[dim] = orig
			})
		}, nil

	case DeviceMap:
		inner, err := compileList(s.Body, env)
		if err != nil {
			return nil, err
		}
		return deviceTileLoop(dim, width, pol, inner), nil
	}
	return nil, fmt.Errorf("kernel: Tile has unknown policy %T", s.Pol)
}

func compileInitScopedMem(s *InitScopedMemStmt, env *compileEnv) (executor, error) {
	for _, slot := range s.Slots {
		if slot < 0 || slot >= env.arity.Params {
			return nil, fmt.Errorf("kernel: InitScopedMem references param slot %d, plan has %d params", slot, env.arity.Params)
		}
		env.scoped[slot] = true
	}
	inner, err := compileList(s.Body, env)
	if err != nil {
		return nil, err
	}
	slots := append([]int(nil), s.Slots...)
	return func(c *Context) {
		for _, slot := range slots {
			c.params[slot].(scopedParam).acquire()
		}
		// Handles are invalidated in listed order on every exit path,
		// including a panic unwinding through the subtree.
		defer func() {
			for _, slot := range slots {
				c.params[slot].(scopedParam).release()
			}
		}()
		inner(c)
	}, nil
}

func compileLaunch(s *LaunchStmt, env *compileEnv) (executor, error) {
	if env.inLaunch {
		return nil, fmt.Errorf("kernel: nested Launch statements")
	}
	if env.inPar {
		return nil, fmt.Errorf("kernel: Launch inside a worker-pool region")
	}
	if err := device.Validate(s.Grid, s.Block); err != nil {
		return nil, err
	}
	launchEnv := *env
	launchEnv.inLaunch = true
	inner, err := compileList(s.Body, &launchEnv)
	if err != nil {
		return nil, err
	}
	grid, block := s.Grid, s.Block
	return func(c *Context) {
		// One privatized slot per device thread; combined after the launch,
		// mirroring the worker-pool bracket in runParallel.
		reducers := collectReducers(c.params)
		reduce.Setup(reducers, grid.Count()*block.Count())
		device.Launch(grid, block, func(blk *device.Block) device.Kernel {
			bc := c.forkBlock(blk)
			return func(tid device.ThreadID) {
				tc := bc.forkThread(tid)
				inner(tc)
			}
		})
		reduce.Finish(reducers)
	}, nil
}

// runParallel executes body over [0, n) on the worker pool, privatizing the
// descent state per worker and bracketing the region with reducer
// setup/combine.
func runParallel(c *Context, n int, cfg parallel.Config, body func(cc *Context, i int)) {
	workers := parallel.MaxWorkers(n, cfg)
	reducers := collectReducers(c.params)
	reduce.Setup(reducers, workers)

	clones := make([]*Context, workers)
	for w := range clones {
		clones[w] = c.forkWorker(w)
	}
	parallel.ForWorker(n, func(w, i int) {
		body(clones[w], i)
	}, cfg)

	reduce.Finish(reducers)
}

func collectReducers(params []any) []reduce.Reducer {
	var out []reduce.Reducer
	for _, p := range params {
		if r, ok := p.(reduce.Reducer); ok {
			out = append(out, r)
		}
	}
	return out
}

// axisSlot returns the position and width of the mapped axis for the
// current thread.
func axisSlot(c *Context, pol DeviceMap) (idx, width int) {
	if pol.Level == BlockLevel {
		return c.tid.BlockIdx.Axis(pol.Axis), c.tid.GridDim.Axis(pol.Axis)
	}
	return c.tid.ThreadIdx.Axis(pol.Axis), c.tid.BlockDim.Axis(pol.Axis)
}

func deviceLevelName(pol DeviceMap) string {
	if pol.Level == BlockLevel {
		return "block"
	}
	return "thread"
}

// deviceLoop binds a For statement's dimension to a device axis. Direct
// mapping assigns one index per axis position and fails fatally when the
// iteration count exceeds the physical width; strided mapping covers any
// count by striding over the width.
func deviceLoop(dim int, pol DeviceMap, inner executor, kind string) executor {
	if pol.Strided {
		return func(c *Context) {
			w := c.wins[dim]
			idx, width := axisSlot(c, pol)
			for i := idx; i < w.size; i += width {
				c.index[dim] = w.begin + i
				inner(c)
			}
		}
	}
	return func(c *Context) {
		w := c.wins[dim]
		idx, width := axisSlot(c, pol)
		if w.size > width {
			panic(fmt.Sprintf("kernel: direct %s-%s mapping of %s dimension %d: %d work items exceed physical width %d",
				deviceLevelName(pol), pol.Axis, kind, dim, w.size, width))
		}
		if idx < w.size {
			c.index[dim] = w.begin + idx
			inner(c)
		}
	}
}

// deviceTileLoop binds a Tile statement's tile loop to a device axis, one
// tile per axis position (direct) or strided over the width.
func deviceTileLoop(dim, width int, pol DeviceMap, inner executor) executor {
	setTile := func(c *Context, orig window, t int) {
		b := orig.begin + t*width
		c.wins[dim] = window{begin: b, size: min(width, orig.begin+orig.size-b)}
		inner(c)
		c.wins[dim] = orig
	}
	if pol.Strided {
		return func(c *Context) {
			orig := c.wins[dim]
			tiles := (orig.size + width - 1) / width
			idx, axisWidth := axisSlot(c, pol)
			for t := idx; t < tiles; t += axisWidth {
				setTile(c, orig, t)
			}
		}
	}
	return func(c *Context) {
		orig := c.wins[dim]
		tiles := (orig.size + width - 1) / width
		idx, axisWidth := axisSlot(c, pol)
		if tiles > axisWidth {
			panic(fmt.Sprintf("kernel: direct %s-%s mapping of Tile dimension %d: %d tiles exceed physical width %d",
				deviceLevelName(pol), pol.Axis, dim, tiles, axisWidth))
		}
		if idx < tiles {
			setTile(c, orig, idx)
		}
	}
}
