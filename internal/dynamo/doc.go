// Package dynamo holds the primitives shared by the spring integrators, the
// trace runner and the run store:
//
//   - [State]: flat state vector of one control point, [x, y, vx, vy]
//   - [Metric], [Observer]: per-step hooks used by trace runs
//   - error sentinels and [SimulationError]
//
// None of these types are safe for concurrent mutation; a State belongs to the
// loop that steps it.
package dynamo
