// Package jsonio handles the JSON boundary of the catalogue: parsing
// the input document (base requests, stat requests, settings sections)
// and building the response array.
//
// Responses are assembled with Builder, a typestate JSON builder whose
// dicts preserve insertion order. Malformed builder call sequences are
// programming errors and panic immediately.
package jsonio
