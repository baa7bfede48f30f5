/*
Package waypoint shows first-run tours and "What's New" sheets in Go applications.

On each activation a Host reads the last version the user was onboarded on,
decides which flow to present and, once the user completes it, writes the
current version back. The decision is deliberately simple:

  - no marker stored: the paged first-launch tour (FlowFirstLaunch)
  - marker differs from the running version: the feature sheet (FlowWhatsNew)
  - marker equals the running version: nothing (FlowNone)

Versions are opaque strings; no semantic version ordering is applied.

# Architecture

The core is split the same way as any hexagonal service:

  - pkg/domain: pages, feature rows, flow kinds, lifecycle events and errors.
  - pkg/gate, pkg/flow, pkg/motion: the decision, the navigation state
    machines and the animation policy. None of them perform I/O.
  - pkg/ports and pkg/adapters: where the version marker lives (memory, file,
    Redis, SQLite).

Presenters (the bundled Bubble Tea TUI, the line Runner in this package, or
your own UI) only drive a Presentation and render its state.

# Usage

	host, err := waypoint.New("2.1.0",
		waypoint.WithStore(file.New(path)),
		waypoint.WithPages(pages),
		waypoint.WithFeatures(features),
	)
	if err != nil {
		log.Fatal(err)
	}

	p, err := host.Activate(ctx)
	if err != nil {
		log.Fatal(err)
	}
	if p != nil {
		// Render p.Flow or p.Sheet; completion writes the marker.
		err = waypoint.NewRunner().Run(ctx, p)
	}
*/
package waypoint
