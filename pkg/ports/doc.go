// Package ports defines the interfaces between the engine core and its
// host-side adapters: session snapshot persistence and metric sinks live
// behind these contracts so hosts can swap implementations.
package ports
