// Package container provides dependency injection for the taxcalc application.
// It centralizes the creation and wiring of all application dependencies,
// making them explicit and testable.
package container

import (
	"fmt"

	"fjacquet/taxcalc/internal/batch"
	"fjacquet/taxcalc/internal/common"
	"fjacquet/taxcalc/internal/config"
	"fjacquet/taxcalc/internal/logging"
	"fjacquet/taxcalc/internal/metrics"
	"fjacquet/taxcalc/internal/report"
	"fjacquet/taxcalc/internal/server"
	"fjacquet/taxcalc/internal/store"
	"fjacquet/taxcalc/internal/taxengine"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation: all fields are private and only reachable
// through getters.
type Container struct {
	logger     logging.Logger
	config     *config.Config
	store      *store.RuleStore
	calculator *taxengine.Calculator
	metrics    *metrics.Metrics
	reporter   *report.ReportGenerator
	processor  *batch.Processor
}

// NewContainer creates and wires all application dependencies, using a logger built
// from the configuration.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	return NewContainerWithLogger(cfg, logging.NewLogrusAdapterFromLogger(config.ConfigureLoggingFromConfig(cfg)))
}

// NewContainerWithLogger is NewContainer with a caller-supplied logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	ruleStore := store.NewRuleStore(cfg.Tax.RulesFile, logger)
	rules, err := ruleStore.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load tax rules: %w", err)
	}

	if delim := []rune(cfg.CSV.Delimiter); len(delim) == 1 {
		common.SetDelimiter(delim[0])
	}

	calc := taxengine.NewCalculator(rules, logger)
	m := metrics.New()

	logger.Debug("Container initialized successfully",
		logging.F(logging.FieldRuleSet, rules.Name),
		logging.F("workers", cfg.Batch.Workers))

	return &Container{
		logger:     logger,
		config:     cfg,
		store:      ruleStore,
		calculator: calc,
		metrics:    m,
		reporter:   report.NewReportGenerator(logger, cfg.Tax.CurrencySymbol),
		processor:  batch.NewProcessor(calc, cfg.Batch.Workers, logger, m),
	}, nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetStore returns the rule store the active rules were loaded from.
func (c *Container) GetStore() *store.RuleStore {
	return c.store
}

// GetCalculator returns the shared tax calculator.
func (c *Container) GetCalculator() *taxengine.Calculator {
	return c.calculator
}

// GetMetrics returns the metrics registry wrapper.
func (c *Container) GetMetrics() *metrics.Metrics {
	return c.metrics
}

// GetReportGenerator returns the report generator configured with the currency symbol.
func (c *Container) GetReportGenerator() *report.ReportGenerator {
	return c.reporter
}

// GetBatchProcessor returns the batch processor sized by batch.workers.
func (c *Container) GetBatchProcessor() *batch.Processor {
	return c.processor
}

// NewServer builds the HTTP server from the container's dependencies.
func (c *Container) NewServer() *server.Server {
	return server.NewServer(c.calculator, c.metrics, c.logger, server.Options{
		Port:     c.config.Server.Port,
		Currency: c.config.Tax.CurrencySymbol,
	})
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}
