// Package watch re-runs a transform whenever its input file changes.
//
// Run uses fsnotify to follow write and create events for a single path. Bursts
// of events (an editor or a copy writing in several chunks) are coalesced
// into one run after a short settle delay. A failed run is logged and the
// watch continues; callers write outputs atomically so the previous result
// stays in place. The watch is placed on the parent directory and events are
// filtered by name, so an atomic save (write a temporary file, rename it over
// the input) shows up as a create of the input path and is followed like any
// other write.
package watch
