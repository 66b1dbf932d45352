// Package resolver defines the shared types and error taxonomy for platform
// link resolution.
//
// Key responsibilities:
//   - The ReleaseQuery input unit and the ResolvedLink output unit shared by
//     every resolver and the orchestrator.
//   - Structured error markers plus the Wrap helper so failures carry a
//     category (network, parse, authentication, catalog-not-found, render
//     timeout, extraction) that operator tooling can distinguish.
//   - Context helpers that stamp correlation identifiers for logging.
//
// Direct resolvers absorb their own failures into found=false results; the
// markers exist for the aggregator path, where "the session is broken" and
// "this release has no catalog presence" must not collapse into one failure.
package resolver
