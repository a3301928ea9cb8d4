// Package groupmean computes per-(group, sub-key) means over a sectioned file.
//
// Input is a sequence of group header lines (a single field, no comma), each
// followed by records of the form "<subkey>,...,<value>". Every record is
// filed under the most recent header; a record before the first header is an
// error. Results are ordered by group name, then by numeric sub-key.
package groupmean
