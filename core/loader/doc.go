// Package loader wires features into the HTTP application.
//
// Each feature bundles its own service and route registration behind the
// Feature interface:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps the registry. Features are added with Register() and
// mounted in order with LoadAll(); disabled features are skipped, and the
// first load error aborts startup.
//
// Keeping 'world', 'items', and 'integrity' behind this seam lets each be
// built and tested without the others.
package loader
