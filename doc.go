// Package transportcatalogue is the top-level orchestration layer of
// the transport catalogue engine.
//
// The engine runs in two phases. make_base ingests a batch of stops,
// buses and road distances from a JSON document, builds the catalogue
// and persists it together with the render and routing settings as a
// binary artifact (see the storage package). process_requests reloads
// the artifact and answers stat requests: stop and bus statistics, a
// rendered SVG map of every route, and minimum-time trips over the
// wait/ride graph.
//
// This package wires the domain subpackages together:
//   - catalogue: the entity store and derived queries
//   - routing: the two-layer time graph and trip queries
//   - render: the sphere projector and the SVG map renderer
//   - jsonio: input parsing and response building
//   - storage: the persistence codec
//
// Basic flow:
//
//	reader, _ := jsonio.NewReader(os.Stdin)
//	cat, _ := transportcatalogue.BuildCatalogue(reader)
//	router := routing.NewRouter(routerSettings, cat)
//	renderer := render.NewMapRenderer(renderSettings)
//	handler := transportcatalogue.NewStatHandler(cat, renderer, router)
//	handler.Process(os.Stdout, reader.StatRequests())
//
// Handlers are not safe for concurrent use; build before query is the
// only lifecycle ordering that matters.
package transportcatalogue
