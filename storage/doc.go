// Package storage persists the catalogue together with its render and
// routing settings as a single binary artifact.
//
// The artifact uses the protobuf wire format, written and read directly
// with google.golang.org/protobuf/encoding/protowire against a fixed
// field schema; there is no generated code. Doubles are stored as
// fixed64 bit patterns and collections in deterministic order, so a
// save/load round-trip reproduces the catalogue bit for bit.
package storage
