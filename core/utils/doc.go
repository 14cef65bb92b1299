// Package utils provides common utility functions for the world-manager
// application. It includes helper functions for coercing the loosely typed
// values that hand-authored world documents carry, and other shared logic
// that doesn't fit into domain-specific packages.
package utils
