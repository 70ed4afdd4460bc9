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

type Application struct {
	Addr string `koanf:"addr"`
	// Currency is the default currency code; remote transactions in any
	// other currency are ignored by the aggregator.
	Currency string `koanf:"currency"`
	// Timezone is the IANA name of the location in which budget windows
	// and transaction timestamps are interpreted.
	Timezone string   `koanf:"timezone"`
	Wise     Wise     `koanf:"wise"`
	Database Database `koanf:"db"`
}

type Wise struct {
	APIKey    string `koanf:"apikey"`
	ProfileID string `koanf:"profileid"`
	BaseURL   string `koanf:"baseurl"`
	// Timeout is the remote fetch timeout in seconds. A stalled fetch is
	// treated as a fetch failure once it expires.
	Timeout int `koanf:"timeout"`
}

type Database struct {
	Driver string `koanf:"driver"`
	Path   string `koanf:"path"`
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Addr:     ":8181",
		Currency: "MXN",
		Timezone: "UTC",
		Wise: Wise{
			BaseURL: "https://api.wise.com",
			Timeout: 10,
		},
		Database: Database{
			Driver: "sqlite",
			Path:   "database/app.db",
			Host:   "localhost",
			Port:   5432,
			User:   "centavo",
			Pass:   "",
			Name:   "centavo",
			Schema: "centavo",
		},
	}, "koanf"), nil)
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
		Prefix: "CENTAVO_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "CENTAVO_")), "_", ".")
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
