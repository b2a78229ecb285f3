// Package service contains the application-specific use cases and business
// logic. It orchestrates interactions between domain objects and repositories
// (defined in internal/store) to fulfill application features.
//
// Services receive their dependencies (stores, the zipcode resolver, the
// event emitter) through constructor injection and translate store-level
// errors to application-level errors meaningful to the API layer. Business
// rules that need the stored state of an entity, such as the partial-update
// merge checks, live here rather than in the domain package.
package service
