package trace

// DischargeRecord captures the discharge computation of one unit at one step.
type DischargeRecord struct {
	Iteration   int
	Time        float64
	Unit        int
	Regime      string // "closed", "weir" or "blended"
	MuWeir      float64
	MuSubmerged float64
	MuBlend     float64
	Discharge   float64
}
