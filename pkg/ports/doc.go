/*
Package ports defines the driven ports (interfaces) for waypoint.

These interfaces decouple the onboarding host from where the version marker
lives, so the same host runs against a local file, an embedded database or a
shared Redis instance.

# Key Interfaces

  - MarkerStore: Reads, writes and clears the last-seen version marker.
*/
package ports
