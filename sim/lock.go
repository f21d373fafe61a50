package sim

// LockChamber is the water-retaining basin between the two heads.
type LockChamber struct {
	Width  float64 // m, > 0
	Length float64 // m, > 0
}

// PlanArea is the horizontal surface of the chamber.
func (c LockChamber) PlanArea() float64 {
	return c.Width * c.Length
}

// UpperHead is the high-water side of the lock.
type UpperHead struct {
	Surface      float64 // upstream water surface elevation (m)
	Sill         float64 // upstream sill elevation (m)
	ChannelWidth float64 // approach channel width (m)
}

// Depth is the upstream water depth over the sill.
func (h UpperHead) Depth() float64 {
	return h.Surface - h.Sill
}

// LowerHead is the low-water side of the lock.
type LowerHead struct {
	Surface      float64 // downstream water surface elevation (m)
	Sill         float64 // downstream sill elevation (m)
	ChannelWidth float64 // approach channel width (m)
}

// Depth is the downstream water depth over the sill.
func (h LowerHead) Depth() float64 {
	return h.Surface - h.Sill
}

// Lock is one chamber with its two heads and its filling system.
// A Lock is not modified by a simulation run and can be filled repeatedly.
type Lock struct {
	Chamber LockChamber
	Upper   UpperHead
	Lower   LowerHead
	Filling *FillingSystem
}

// NewLock creates a Lock.
func NewLock(chamber LockChamber, upper UpperHead, lower LowerHead, filling *FillingSystem) *Lock {
	return &Lock{
		Chamber: chamber,
		Upper:   upper,
		Lower:   lower,
		Filling: filling,
	}
}

// Lift is the difference between the upstream and downstream water surfaces.
func (l *Lock) Lift() float64 {
	return l.Upper.Surface - l.Lower.Surface
}

// SillOffset is the elevation of the upper sill above the lower sill.
func (l *Lock) SillOffset() float64 {
	return l.Upper.Sill - l.Lower.Sill
}

// TargetLevel is the chamber level, measured from the lower sill, at which the
// chamber is level with the upstream water surface.
func (l *Lock) TargetLevel() float64 {
	return l.Upper.Surface - l.Lower.Sill
}

// InitialVolume is the chamber volume at the downstream water level.
func (l *Lock) InitialVolume() float64 {
	return l.Chamber.PlanArea() * l.Lower.Depth()
}
