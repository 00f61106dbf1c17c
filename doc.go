// Package modbind wires named scene resources into mod components.
//
// A host (the mod loader) asks a root component which resources it needs,
// loads them, and hands them back as a two-level table. The components get
// their tagged fields filled, their initializers run, and their children wired
// in a fixed order.
//
// The goal is to keep declarations next to the fields they fill, keep the
// lifecycle strict about ordering, and stay forgiving about missing resources.
//
// Package modbind See subpackages:
//   - bind: scanning, resolution and the root/child lifecycle
//   - config: environment configuration and logger construction
//   - manifest: YAML scene manifests used as a resource source by hosts
//   - examples: a sample mod with a root and two children
//   - cmd/modhost: a command-line host that drives the sample mod
package modbind
