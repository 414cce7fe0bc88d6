package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "CASHFLOW_"

type Application struct {
	Server     Server     `koanf:"server"`
	Database   Database   `koanf:"db"`
	Projection Projection `koanf:"projection"`
}

type Server struct {
	Port int `koanf:"port"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

type Projection struct {
	// TimelineParallelism bounds the months projected at once. 0 means unbounded.
	TimelineParallelism int `koanf:"timelineparallelism"`
}

func Defaults() Application {
	return Application{
		Server: Server{
			Port: 8181,
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "cashflow",
			Pass:   "",
			Name:   "cashflow",
			Schema: "cashflow",
		},
		Projection: Projection{
			TimelineParallelism: 4,
		},
	}
}

// Load reads the defaults, then the YAML file at path when it exists, then CASHFLOW_ environment
// variables, e.g. CASHFLOW_DB_HOST for db.host.
func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
