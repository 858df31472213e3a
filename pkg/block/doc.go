// Package block defines the element model of the canvas: rectangular blocks
// with a type tag, a bounding box, text content and a text style.
//
// Only [Text] blocks exist today. The type tag is validated at construction
// so that renderers and editors can switch on it exhaustively; an unknown
// type is rejected by [New] and [Block.Validate] with
// errors.ErrCodeInvalidBlockType and never reaches the render pipeline.
//
// Block ids are opaque strings, generated with github.com/google/uuid unless
// the caller supplies one with [WithID].
package block
