// Package models provides compartmental epidemic models.
//
// Each model implements the [sim.Dynamics] interface, defining the
// differential equations governing the spread of infection through a
// population of normalized size 1:
//
//   - [SIR]: susceptible-infected-recovered, the classic closed epidemic
//   - [SIS]: susceptible-infected-susceptible, endemic steady states
//   - [SEIR]: adds an exposed (incubating) compartment
//   - [SIRD]: splits removals into recovered and dead
//
// All models also implement [sim.Configurable] for runtime parameter
// adjustment and [sim.Conserved] for population mass accounting.
//
// The single control input, where a model accepts one, is a contact
// reduction factor in [0, 1] applied to the transmission term. With
// zero control the equations reduce to the textbook forms.
package models
