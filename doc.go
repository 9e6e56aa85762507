// Package sketchkit reads, models, mutates and writes Sketch design files.
//
// A .sketch file is a ZIP container holding JSON documents (document.json,
// meta.json, user.json and one pages/<id>.json per page) plus raster assets.
// The packages of this module split the work as follows:
//
//   - schema: the declarative registry of every entity, its fields and the
//     polymorphic variants, built once and consulted by the codec.
//   - model: the Go types for the entity graph, with optional-value wrappers
//     and sealed variant interfaces.
//   - codec: decode raw JSON into the typed graph and encode it back,
//     honoring unknown-key policy and optional-field omission.
//   - sketch: the document aggregate and the mutation API that keeps
//     document.json, meta.json and user.json consistent.
//   - container and raster: thin collaborators for ZIP entries and images.
//
// The root package carries the shared error model (Issue, Issues), decode
// options, presence metadata and the Codec contract.
//
// Typical usage:
//
//	f, err := sketch.Open(ctx, "design.sketch")
//	page, err := f.AddPage("Page 2")
//	ab := model.NewArtboard("Home", 0, 0, 375, 812)
//	err = f.AddArtboard(page, ab)
//	err = f.Save(ctx, "out.sketch")
package sketchkit
