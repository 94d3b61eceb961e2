// Package sim provides core primitives for numerical simulation of
// compartmental epidemic models.
//
// The package defines the fundamental interfaces and types for
// integrating ordinary differential equations (ODEs):
//
//   - [State]: vector of compartment fractions
//   - [Dynamics]: interface for ODE systems (dX/dt = f(X, u, t))
//   - [Integrator]: numerical stepper interface
//   - [Controller]: intervention policy interface
//   - [Simulator]: orchestrates simulation runs
//
// # Example
//
//	dyn := models.NewSIR()
//	integ := integrators.NewRK45()
//	s := sim.New(dyn, integ, nil)
//	result, _ := s.Run(ctx, x0, cfg)
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. For parameter sweeps across
// goroutines, use the [Sweep] type which builds one simulator per run.
package sim
