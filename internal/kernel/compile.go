package kernel

import "fmt"

// Arity fixes the shape of the execution context a plan runs against: how
// many segments, callbacks and parameter slots it may reference. Compile
// checks every statement against it so that a reference to a missing
// callback or slot is rejected before any iteration runs.
type Arity struct {
	Segments int
	Lambdas  int
	Params   int
}

// Plan is a compiled statement tree: the policy choices have been resolved
// into a closure tree, and all structural validation is done. A Plan is
// immutable and safe to Run many times and from multiple goroutines (each
// Run owns its Context).
type Plan struct {
	arity  Arity
	root   executor
	scoped []int
}

// executor is one compiled statement: it performs the node's side effects
// against the context, delegating to nested executors for loop bodies.
type executor func(c *Context)

type compileEnv struct {
	arity    Arity
	inLaunch bool
	inPar    bool
	scoped   map[int]bool
}

// Compile validates the statement tree against the arity and resolves it
// into an executable plan. Malformed trees (bad callback index, bad
// dimension, bad parameter slot, device policy outside a Launch, nested
// parallel regions) are reported here and only here.
func Compile(arity Arity, stmts ...Statement) (*Plan, error) {
	if arity.Segments < 0 || arity.Lambdas < 0 || arity.Params < 0 {
		return nil, fmt.Errorf("kernel: negative arity %+v", arity)
	}
	env := &compileEnv{arity: arity, scoped: make(map[int]bool)}
	root, err := compileList(stmts, env)
	if err != nil {
		return nil, err
	}
	scoped := make([]int, 0, len(env.scoped))
	for slot := range env.scoped {
		scoped = append(scoped, slot)
	}
	return &Plan{arity: arity, root: root, scoped: scoped}, nil
}

// MustCompile is Compile that panics on a malformed tree.
func MustCompile(arity Arity, stmts ...Statement) *Plan {
	p, err := Compile(arity, stmts...)
	if err != nil {
		panic(err.Error())
	}
	return p
}

// Run executes the plan once over the given segments, parameter slots and
// callbacks. Context-shape mismatches and scoped-slot type mismatches are
// rejected up front, before the first iteration.
func (p *Plan) Run(segs []Segment, params []any, lambdas ...Body) {
	if len(segs) != p.arity.Segments {
		panic(fmt.Sprintf("kernel: plan compiled for %d segments, got %d", p.arity.Segments, len(segs)))
	}
	if len(lambdas) != p.arity.Lambdas {
		panic(fmt.Sprintf("kernel: plan compiled for %d lambdas, got %d", p.arity.Lambdas, len(lambdas)))
	}
	if len(params) != p.arity.Params {
		panic(fmt.Sprintf("kernel: plan compiled for %d params, got %d", p.arity.Params, len(params)))
	}
	for _, slot := range p.scoped {
		requireScoped(params[slot], slot)
	}

	c := &Context{
		segs:    segs,
		wins:    make([]window, len(segs)),
		index:   make([]int, len(segs)),
		lambdas: lambdas,
		params:  params,
		shmWin:  make([]int, len(segs)),
	}
	for d, seg := range segs {
		c.wins[d] = window{begin: seg.Begin(), size: seg.Size()}
		c.index[d] = seg.Begin()
	}
	p.root(c)
}

func (env *compileEnv) checkDim(dim int, kind string) error {
	if dim < 0 || dim >= env.arity.Segments {
		return fmt.Errorf("kernel: %s references dimension %d, plan has %d segments", kind, dim, env.arity.Segments)
	}
	return nil
}

func (env *compileEnv) checkPolicy(pol Policy, kind string) error {
	switch pol := pol.(type) {
	case Seq:
		return nil
	case Par:
		if env.inLaunch {
			return fmt.Errorf("kernel: %s uses a worker-pool policy inside a device Launch", kind)
		}
		if env.inPar {
			return fmt.Errorf("kernel: %s nests a worker-pool policy inside another parallel region", kind)
		}
		return nil
	case DeviceMap:
		if !env.inLaunch {
			return fmt.Errorf("kernel: %s uses device %s-axis mapping outside a Launch", kind, pol.Axis)
		}
		return nil
	case nil:
		return fmt.Errorf("kernel: %s has no policy", kind)
	default:
		return fmt.Errorf("kernel: %s has unknown policy %T", kind, pol)
	}
}
