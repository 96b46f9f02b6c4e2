package rrdt

import "math/rand"

// randomRestartEvery is the number of RunOnce iterations between sweeps
// for low-energy particles.
const randomRestartEvery = 20

// lowEnergyThreshold is the energy floor below which a particle is queued
// for restart during a periodic sweep.
const lowEnergyThreshold = 0.1

// mabScheduler is the multi-armed-bandit particle scheduler: an energy
// vector over particles, a categorical pick weighted by energy, and a
// periodic low-energy restart sweep.
type mabScheduler struct {
	particles []*Particle
	counter   int
}

func newMABScheduler(particles []*Particle) *mabScheduler {
	return &mabScheduler{particles: particles}
}

// prob returns E/sum(E) across all particles.
func (m *mabScheduler) prob() []float64 {
	sum := 0.0
	for _, p := range m.particles {
		sum += p.Energy
	}
	probs := make([]float64, len(m.particles))
	if sum <= 0 || sum != sum { // desync: sum<=0 or NaN
		m.resync()
		sum = float64(len(m.particles))
		for i := range probs {
			probs[i] = 1 / sum
		}
		return probs
	}
	for i, p := range m.particles {
		probs[i] = p.Energy / sum
	}
	return probs
}

// resync recovers from a numerical desync by resetting every energy to 1.
func (m *mabScheduler) resync() {
	for _, p := range m.particles {
		p.Energy = 1
	}
}

// pick draws a particle index weighted by prob(), using rng.
func (m *mabScheduler) pick(rng *rand.Rand) int {
	return categorical(m.prob(), rng)
}

// onSuccess applies the MAB's success bookkeeping: none.
func (m *mabScheduler) onSuccess(j int) {}

// onFailure applies the MAB's failure decay: E[j] <- E[j]*0.7.
func (m *mabScheduler) onFailure(j int) {
	m.particles[j].decayEnergy()
}

// tick advances the periodic-restart counter and reports whether a
// low-energy sweep is due this iteration, resetting the counter if so.
func (m *mabScheduler) tick() bool {
	m.counter++
	if m.counter > randomRestartEvery {
		m.counter = 0
		return true
	}
	return false
}

// lowEnergyIndices returns, in particle-index order, every particle whose
// energy is below lowEnergyThreshold.
func (m *mabScheduler) lowEnergyIndices() []int {
	var idx []int
	for i, p := range m.particles {
		if p.Energy < lowEnergyThreshold {
			idx = append(idx, i)
		}
	}
	return idx
}
