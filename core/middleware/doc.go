// Package middleware holds the Fiber middleware shared by every route group.
//
//   - auth: header API-key check; requests without the configured key get 401.
//   - rayid: assigns each request a ray id (or keeps the caller's), echoed in
//     the response header and stored in locals for log correlation.
//
// Both are registered globally in the server bootstrap.
package middleware
