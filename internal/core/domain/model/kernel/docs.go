// Package kernel holds the value objects shared by the courier and order
// aggregates: UUID identifiers and geographic Locations, plus DistanceKm, the
// Haversine distance every dispatch decision is based on.
package kernel
