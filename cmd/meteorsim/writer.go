package main

import (
	"errors"
	"os"
	"strings"

	"meteorsim/internal/config"
	"meteorsim/internal/engine"
)

// loadConfig loads the YAML config when the file exists and falls back to
// stock defaults otherwise, so the CLI works out of the box.
func loadConfig(configPath, schemaPath string) (*config.SimulationConfig, error) {
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		return config.Default(), nil
	}
	return config.Load(configPath, schemaPath)
}

// newWriters sets up result writers based on flags, config, and env vars.
// It returns the writer and a cleanup function to close any resources.
func newWriters(cfg *config.SimulationConfig, printOnly, pretty bool, logFile string) (engine.ResultWriter, func(), error) {
	cleanup := func() {}

	writer, err := baseWriter(cfg, printOnly, pretty)
	if err != nil {
		return nil, nil, err
	}
	if logFile == "" {
		return writer, cleanup, nil
	}

	fw, err := engine.NewFileWriter(logFile)
	if err != nil {
		return nil, nil, err
	}
	mw := engine.NewMultiWriter(writer, fw)
	cleanup = func() { fw.Close() }
	return mw, cleanup, nil
}

// baseWriter chooses the underlying writers. Remote sinks come from config
// or env; without any, results go to STDOUT.
func baseWriter(cfg *config.SimulationConfig, printOnly, pretty bool) (engine.ResultWriter, error) {
	stdout := func() engine.ResultWriter {
		if pretty {
			return engine.NewColorStdoutWriter()
		}
		return &engine.StdoutWriter{}
	}

	if printOnly {
		return stdout(), nil
	}

	var writers []engine.ResultWriter

	endpoint := os.Getenv("GREPTIMEDB_ENDPOINT")
	if endpoint == "" {
		endpoint = cfg.Greptime.Endpoint
	}
	if endpoint != "" {
		gw, err := engine.NewGreptimeDBWriter(endpoint, cfg.Greptime.Database)
		if err != nil {
			return nil, err
		}
		writers = append(writers, gw)
	}

	brokers := cfg.Kafka.Brokers
	if env := os.Getenv("KAFKA_BROKERS"); env != "" {
		brokers = strings.Split(env, ",")
	}
	if len(brokers) > 0 {
		topic := cfg.Kafka.Topic
		if topic == "" {
			topic = "impact-results"
		}
		writers = append(writers, engine.NewKafkaWriter(brokers, topic))
	}

	if len(writers) == 0 {
		return stdout(), nil
	}
	if len(writers) == 1 {
		return writers[0], nil
	}
	return engine.NewMultiWriter(writers...), nil
}
