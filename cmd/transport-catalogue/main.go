package main

import (
	"fmt"
	"log"
	"os"

	lib "github.com/urban-transit-tools/transport-catalogue"
	"github.com/urban-transit-tools/transport-catalogue/config"
	"github.com/urban-transit-tools/transport-catalogue/jsonio"
	"github.com/urban-transit-tools/transport-catalogue/render"
	"github.com/urban-transit-tools/transport-catalogue/routing"
	"github.com/urban-transit-tools/transport-catalogue/storage"
)

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage: transport-catalogue [make_base|process_requests]")
}

func main() {
	if len(os.Args) != 2 {
		printUsage()
		os.Exit(1)
	}

	lib.InitLogging()
	cfg, err := config.LoadAppConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	switch os.Args[1] {
	case "make_base":
		makeBase(cfg)
	case "process_requests":
		processRequests(cfg)
	default:
		printUsage()
		os.Exit(1)
	}
}

func makeBase(cfg config.AppConfig) {
	reader, err := jsonio.NewReader(os.Stdin)
	if err != nil {
		log.Fatalf("make_base: %v", err)
	}

	renderSettings, hasRender := reader.RenderSettings()
	if hasRender {
		if err := config.Validate(renderSettings); err != nil {
			log.Fatalf("make_base: invalid render settings: %v", err)
		}
	}
	routingSettings, hasRouting := reader.RoutingSettings()
	if hasRouting {
		if err := config.Validate(routingSettings); err != nil {
			log.Fatalf("make_base: invalid routing settings: %v", err)
		}
	}

	cat, err := lib.BuildCatalogue(reader)
	if err != nil {
		log.Fatalf("make_base: %v", err)
	}
	log.Printf("catalogue built: %d stops, %d buses", cat.StopCount(), len(cat.Buses()))

	serializer := storage.NewSerializer(serializationSettings(reader, cfg))
	if err := serializer.Save(cat, renderSettings, routingSettings); err != nil {
		log.Fatalf("make_base: %v", err)
	}
	log.Printf("saved base to %s", serializationSettings(reader, cfg).File)
}

func processRequests(cfg config.AppConfig) {
	reader, err := jsonio.NewReader(os.Stdin)
	if err != nil {
		log.Fatalf("process_requests: %v", err)
	}

	serializer := storage.NewSerializer(serializationSettings(reader, cfg))
	data, err := serializer.Load()
	if err != nil {
		log.Fatalf("process_requests: %v", err)
	}

	renderer := render.NewMapRenderer(data.RenderSettings)
	router := routing.NewRouter(data.RouterSettings, data.Catalogue)

	handler := lib.NewStatHandler(data.Catalogue, renderer, router)
	if err := handler.Process(os.Stdout, reader.StatRequests()); err != nil {
		log.Fatalf("process_requests: %v", err)
	}
}

func serializationSettings(reader *jsonio.Reader, cfg config.AppConfig) storage.Settings {
	if settings, ok := reader.SerializationSettings(); ok && settings.File != "" {
		return settings
	}
	return cfg.Serialization
}
