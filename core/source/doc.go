// Package source reads authored world documents from a backing source.
//
// Two sources are supported: a local directory of JSON files (the default,
// matching how world data is authored) and an object storage bucket for
// deployments where documents are published centrally. Both implement the
// Loader interface, so the bulk loader does not care where documents live.
//
// The package also provides Publish, which uploads a local document
// directory into the bucket so the two sources can be kept in step.
package source
