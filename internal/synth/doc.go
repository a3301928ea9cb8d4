// Package synth augments a trace with a synthetic (size, cost) pair per key.
//
// A Synthesizer owns the key -> Assignment mapping for one run. The first
// time a key is seen it draws a size and then a cost uniformly from the
// configured candidate sets; every later line with the same key reuses that
// pair. Nothing is shared between Synthesizer values.
package synth
