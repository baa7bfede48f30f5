/*
Package domain contains the core onboarding models shared by every other package.

It defines what an onboarding flow is made of, without any knowledge of how it
is rendered or where the version marker is stored. The package is kept free of
I/O so that controllers and adapters can depend on it without pulling in
infrastructure.

# Key Entities

  - Page: One screen of the first-launch tour, optionally carrying an Action.
  - FeatureRow: One entry in the "What's New" sheet.
  - Icon: A symbol or asset reference rendered by the presentation layer.
  - FlowKind: Which flow (if any) a host should present.
  - Direction: The direction of the last page transition, used by motion policy.
  - LifecycleHooks: Observability callbacks emitted by controllers and the host.
*/
package domain
