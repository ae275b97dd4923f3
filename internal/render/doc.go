// Package render turns detection results into annotated images.
//
// Two products are supported:
//
//   - Overlay: the input image with every detected source outlined in
//     a distinct color and tagged with its numeric ID.
//   - Cutout: one source extracted from the image with everything
//     outside its (dilated) footprint blanked.
//
// Both return the encoded PNG as base64 alongside the raw RGBA image,
// so callers can embed the result in a JSON response or write it to
// disk directly.
//
// # Coordinate System
//
// Detection coordinates are 0-based with the origin at the top-left of
// the image, matching the field layout used by the pipeline. Images
// with a non-zero bounds origin are normalized before drawing.
package render
