package topo

// Signature is the radioactive metadata attached to every state of a decay
// family. Signatures come from a fixed three-entry table and are shared
// read-only by all states of the same family.
type Signature struct {
	Isotope   string
	Decay     DecayType
	EnergyEV  float64
	HalfLifeS float64
	Spin      float64
}

const secondsPerYear = 3.154e7

var signatures = [3]Signature{
	Beta:  {Isotope: "Sr-90", Decay: Beta, EnergyEV: 546000.0, HalfLifeS: 28.8 * secondsPerYear, Spin: 0},
	Gamma: {Isotope: "Tc-99m", Decay: Gamma, EnergyEV: 140000.0, HalfLifeS: 0.25 * secondsPerYear, Spin: 4.5},
	Alpha: {Isotope: "Pu-238", Decay: Alpha, EnergyEV: 5590000.0, HalfLifeS: 87.7 * secondsPerYear, Spin: 0},
}

// SignatureFor returns the fixed signature of a decay family.
func SignatureFor(d DecayType) Signature { return signatures[d] }

// Isotope describes a light nuclear isotope with its H7 bookkeeping. The
// table backs the oracle's nuclear search, which uses H7Index as the hidden
// secret.
type Isotope struct {
	Name             string
	Z                int
	N                int
	A                int
	BindingEnergyMeV float64
	ChiralityIndex   float64
	Handedness       string
	H7Index          int
	H7Partner        int
}

// H7Conserved reports whether the isotope's index/partner pair sums to 7.
func (i Isotope) H7Conserved() bool { return i.H7Index+i.H7Partner == 7 }

var isotopes = map[string]Isotope{
	"H":    {Name: "H", Z: 1, N: 0, A: 1, BindingEnergyMeV: 0.0, ChiralityIndex: 0.0, Handedness: "ACHIRAL", H7Index: 7, H7Partner: 0},
	"D":    {Name: "D", Z: 1, N: 1, A: 2, BindingEnergyMeV: 1.112, ChiralityIndex: 0.0, Handedness: "ACHIRAL", H7Index: 0, H7Partner: 7},
	"T":    {Name: "T", Z: 1, N: 2, A: 3, BindingEnergyMeV: 2.827, ChiralityIndex: 1.0, Handedness: "LEFT-HANDED", H7Index: 2, H7Partner: 5},
	"He-3": {Name: "He-3", Z: 2, N: 1, A: 3, BindingEnergyMeV: 7.718, ChiralityIndex: -1.0, Handedness: "RIGHT-HANDED", H7Index: 5, H7Partner: 2},
	"He-4": {Name: "He-4", Z: 2, N: 2, A: 4, BindingEnergyMeV: 28.296, ChiralityIndex: 0.0, Handedness: "CENTER", H7Index: 1, H7Partner: 6},
}

// LookupIsotope returns the named nuclear isotope from the fixed table.
func LookupIsotope(name string) (Isotope, bool) {
	iso, ok := isotopes[name]
	return iso, ok
}

// IsotopeNames lists the table entries in a stable order.
func IsotopeNames() []string { return []string{"H", "D", "T", "He-3", "He-4"} }
