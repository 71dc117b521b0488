// Package sampler turns cumulative /proc counters into utilization figures.
//
// A Source yields immutable snapshots. The Tracker keeps the previous snapshot
// of every live process and derives a CPU ratio from the pair; processes that
// are not seen in a cycle are dropped from its map, so memory stays bounded by
// the live process count. The Aggregator runs one refresh cycle per Sample
// call: it drives the Tracker, computes system CPU against the retained
// previous system snapshot and computes memory utilization.
//
// Ratios are plain fractions. A process ratio of 1.0 means one full core
// during the window; system and memory ratios are in [0,1].
//
// The engine is pull based and does no background work. Sample is serialized
// by a mutex, and a hung read of a virtual file stalls the whole cycle.
package sampler
