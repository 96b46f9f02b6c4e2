package rrdt

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/jkwang1992/rrdtplan/spatial"
)

// ProposalMode selects which of the three directional-proposal behaviors a
// particle's PMFState uses.
type ProposalMode int

const (
	// ProposalOriginal samples the current working PMF A on every draw and
	// never updates A on failure.
	ProposalOriginal ProposalMode = iota
	// ProposalDynamicVonMises samples A and updates it with a Gaussian bump
	// on every failure.
	ProposalDynamicVonMises
	// ProposalRayCasting repeats the last direction after a success
	// ("directional momentum") when keepGoForth is set, and otherwise takes
	// argmax(A); it also updates A on failure.
	ProposalRayCasting
)

const (
	vonMisesKappa  = 1.5 * math.Pi
	bumpSigmaScale = 0.9
	bumpEllRad     = math.Pi / 10
)

// PMFState is the dynamic von-Mises-like proposal distribution: a fixed
// support of unit vectors on the sphere, a base PMF centered on the last
// successful direction, and a working PMF that is eroded around failed
// directions and reset on success.
type PMFState struct {
	mode ProposalMode

	support []spatial.Config // X: S unit vectors, sampled once
	mu      spatial.Config   // last successful direction, nil on cold start

	y       []float64 // base von-Mises-Fisher PMF over support, stale unless yValid
	a       []float64 // current working PMF, stale unless aValid
	yValid  bool
	aValid  bool

	lastSucceeded bool // for ProposalRayCasting's momentum shortcut
	provisionDir  spatial.Config

	// keepGoForth gates the ray-casting momentum shortcut; when false,
	// ray-casting always falls back to argmax(A) even after a success.
	keepGoForth bool
}

// NewPMFState builds a PMFState for a d-dimensional configuration space,
// sampling its fixed support of unit vectors via rng once. keepGoForth
// only matters for ProposalRayCasting.
func NewPMFState(d int, mode ProposalMode, keepGoForth bool, rng *distuv.Normal) *PMFState {
	s := spatial.SupportSize(d)
	support := make([]spatial.Config, s)
	for i := range support {
		support[i] = spatial.RandUnitVector(d, rng)
	}
	return &PMFState{mode: mode, support: support, keepGoForth: keepGoForth}
}

// Draw proposes the next direction given the particle's current direction
// origin (used verbatim by the ray-casting momentum shortcut) and the
// shared PRNG. It records the returned direction so a subsequent Success
// call can promote it to mu.
func (p *PMFState) Draw(origin spatial.Config, rng *rand.Rand) spatial.Config {
	if p.mu == nil {
		dir := p.support[rng.Intn(len(p.support))]
		p.provisionDir = dir
		return dir
	}

	if p.mode == ProposalRayCasting && p.keepGoForth && p.lastSucceeded {
		p.provisionDir = origin
		return origin
	}

	p.ensureY()
	p.ensureA()

	var dir spatial.Config
	if p.mode == ProposalRayCasting {
		dir = p.support[argmax(p.a)]
	} else {
		dir = p.support[categorical(p.a, rng)]
	}
	p.provisionDir = dir
	return dir
}

// Fail applies the failure update to modes dynamic-vonmises and
// ray-casting: subtract a Gaussian-on-sphere bump centered at xi from the
// working PMF, clip to non-negative, and L1-renormalize. mode=original
// leaves A untouched.
func (p *PMFState) Fail(xi spatial.Config) {
	p.lastSucceeded = false
	if p.mode == ProposalOriginal {
		return
	}
	p.ensureY()
	p.ensureA()

	for i, x := range p.support {
		sigma2 := bumpSigmaScale * bumpSigmaScale * p.a[i]
		dist := floats.Distance(x, xi, 2)
		bump := sigma2 * math.Exp(-2*math.Pow(math.Sin(dist/2), 2)/(bumpEllRad*bumpEllRad))
		p.a[i] -= bump
		if p.a[i] < 0 {
			p.a[i] = 0
		}
	}
	normalizeL1(p.a)
}

// Success promotes the last drawn direction to mu and invalidates the
// cached base/working PMFs so they are recomputed lazily on next use.
func (p *PMFState) Success() {
	p.mu = p.provisionDir
	p.yValid = false
	p.aValid = false
	p.lastSucceeded = true
}

// A returns the current working PMF, recomputing it if stale. Exposed for
// tests: it must always hold sum(A)~=1, A>=0.
func (p *PMFState) A() []float64 {
	p.ensureY()
	p.ensureA()
	return p.a
}

// Support returns the fixed unit-vector support set.
func (p *PMFState) Support() []spatial.Config { return p.support }

func (p *PMFState) ensureY() {
	if p.yValid {
		return
	}
	y := make([]float64, len(p.support))
	if p.mu == nil {
		for i := range y {
			y[i] = 1
		}
	} else {
		for i, x := range p.support {
			y[i] = math.Exp(vonMisesKappa * floats.Dot(p.mu, x))
		}
	}
	normalizeL1(y)
	p.y = y
	p.yValid = true
}

func (p *PMFState) ensureA() {
	if p.aValid {
		return
	}
	a := make([]float64, len(p.y))
	copy(a, p.y)
	p.a = a
	p.aValid = true
}

func normalizeL1(v []float64) {
	sum := floats.Sum(v)
	if sum <= 0 || math.IsNaN(sum) {
		for i := range v {
			v[i] = 1 / float64(len(v))
		}
		return
	}
	floats.Scale(1/sum, v)
}

func argmax(v []float64) int {
	best := 0
	for i, x := range v {
		if x > v[best] {
			best = i
		}
	}
	return best
}

// categorical draws an index from weights (assumed to sum to ~1) using
// rng, the single shared PRNG threaded through the planner for
// determinism.
func categorical(weights []float64, rng *rand.Rand) int {
	r := rng.Float64()
	cum := 0.0
	for i, w := range weights {
		cum += w
		if r <= cum {
			return i
		}
	}
	return len(weights) - 1
}
