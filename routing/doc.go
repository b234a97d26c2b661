// Package routing builds the wait/ride time graph over a catalogue and
// answers minimum-time trip queries.
//
// Every stop projects onto two vertices: the bus-enter side (vertex k)
// and the wait side (vertex k+N, N the stop count). A wait edge from
// k+N to k charges the fixed boarding wait exactly once per boarding;
// ride edges connect the enter side of a stop to the wait side of every
// stop reachable on the same bus without transfer. Queries start and
// end on the wait side.
package routing
