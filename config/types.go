package config

import "github.com/urban-transit-tools/transport-catalogue/storage"

// AppConfig is the root of the optional config.yml.
type AppConfig struct {
	Serialization storage.Settings `yaml:"serialization"`
}

// DefaultSerializationFile is used when neither the input document nor
// config.yml names an artifact file.
const DefaultSerializationFile = "transport_catalogue.db"
