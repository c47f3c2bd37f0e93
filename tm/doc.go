// Package tm implements the single-tape, two-symbol Turing machine
// substrate.
//
// States live in an index-addressed arena owned by a Graph. A state is
// allocated undefined, so cyclic transition graphs need no forward
// references, and is given its transition function exactly once with
// Define. Each state carries one Transition per scanned symbol: the
// symbol to write, the head direction, and the next state (or Halt).
//
// The Graph also provides reachability, duplicate-state compression,
// and the canonical transition-table listing, plus the unbounded
// half-tape Stack used by the simulator.
package tm
