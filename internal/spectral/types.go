package spectral

// Device is a finalized device with leads. Implementations must not change
// while a computation is running.
type Device interface {
	// Area normalizes both DOS engines.
	Area() float64
	LeadCount() int
	// ScatteringStates solves the device at one energy.
	ScatteringStates(energy float64) (ScatteringStates, error)
	// Density evaluates the density operator on a mode, summed over all
	// sites and orbitals.
	Density(mode []complex128) float64
	// SpectralEstimator returns a fresh moment-expansion estimator.
	SpectralEstimator() (SpectralEstimator, error)
}

// ScatteringStates are the propagating modes of every lead at one energy.
type ScatteringStates interface {
	Modes(lead int) ([][]complex128, error)
}

// SpectralEstimator approximates the spectral density of a closed
// Hamiltonian on its own energy grid.
type SpectralEstimator interface {
	AddMoments(resolution float64) error
	Moments() int
	// Spectrum returns ascending energies and their densities, normalized
	// to integrate to the number of states.
	Spectrum() (energies, densities []float64)
}

// Observer is notified as direct-engine samples finish. Calls may arrive
// out of order when more than one worker is used.
type Observer interface {
	OnSample(index int, energy, dos float64)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(index int, energy, dos float64)

func (f ObserverFunc) OnSample(index int, energy, dos float64) { f(index, energy, dos) }

// KPMResult is the DOS of the moment-expansion engine on its native grid.
type KPMResult struct {
	DOS      []float64
	Energies []float64
	// Degraded is set when the estimator could not reach the requested
	// resolution.
	Degraded   bool
	Moments    int
	Resolution float64
}

// IDOSResult pairs an integrated DOS with the energies it is sampled on.
// IDOS and Energies always have equal length.
type IDOSResult struct {
	IDOS     []float64
	Energies []float64
	DOS      []float64
	Degraded bool
	// Moments is zero in direct mode.
	Moments int
}
