// Package world implements the world data management feature.
//
// It ingests authored world documents (rooms with their exits, character
// archetypes, item prototypes) into the normalized store tables, and
// reassembles the denormalized views on the way back out. Entity kinds
// load independently, so one broken document never blocks the rest of a
// load, and reloading the same documents is idempotent.
//
// # Components
//
//   - Service: Bulk loader (LoadWorld), denormalizing readers (Rooms,
//     Room, Archetypes, Prototypes, World) and connectivity verification
//     (Verify).
//   - Handler: Exposes the read-side HTTP endpoints.
//   - Loader: Registers the feature with the application.
//
// # HTTP Endpoints
//
//   - GET /world/rooms : All rooms with exits joined in.
//   - GET /world/rooms/:id : One room with its exits.
//   - GET /world/archetypes : Archetypes keyed by name.
//   - GET /world/prototypes : Item prototypes.
//   - GET /world/verify : Connectivity check (dangling, orphaned,
//     unreachable).
//
// Bulk loading is not exposed over HTTP; it runs through the load
// command.
package world
