// Package analytics turns a restaurant's stored reviews into rollups: the
// aggregate rating, time-windowed sentiment snapshots, improvement reports and
// cross-restaurant comparisons.
//
// Everything here is a pure function of its inputs. Loading the reviews,
// authorization and caching belong to the app layer.
package analytics
