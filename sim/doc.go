// Package sim provides the hydraulic core of the lock filling simulator.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - cross_section.go: the FillingCrossSection interface and the shared quadrature
//   - rectangular.go: the rectangular gate opening and its empirical loss coefficients
//   - unit.go: one opening placed in the lock, blending weir and submerged flow
//   - simulator.go: the mass-balance loop that advances the chamber level
//
// # Architecture
//
// The sim package owns the physics; everything around it lives in sub-packages:
//   - sim/lockspec/: YAML lock configuration, validation, construction of *Lock
//   - sim/trace/: per-unit discharge trace records (loss coefficients, regimes)
//   - sim/report/: CSV and JSON writers for steps, events and run summaries
//   - sim/design/: feasibility criteria and parameter searches over opening geometry
//
// # Key Interfaces
//
// FillingCrossSection is the single extension point. A new opening shape implements
// the four geometry queries and the two loss-coefficient queries; QuadratureWeir and
// QuadratureSubmerged work unchanged on top of it.
package sim
