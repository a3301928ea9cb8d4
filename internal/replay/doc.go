// Package replay drives a synthesized trace through a cache and reports how
// often, and at what cost, requests missed.
//
// Each line is ",<key>,<size>,<cost>". A request that misses is admitted
// with its size and cost; both the request and its cost count towards the
// totals whether it hit or missed.
package replay
