// Package catalogue is the transport entity store.
//
// A Catalogue owns every Stop and Bus and the directed distance table
// between stops. It is populated in two ordered phases — stops (with
// their outgoing road distances) first, then buses, which resolve stop
// references by name — and is read-only afterwards. The *Stop and *Bus
// values handed out point into the store and stay valid for its
// lifetime.
//
// Catalogue instances are not safe for concurrent mutation; once
// population is finished, concurrent readers are fine.
package catalogue
