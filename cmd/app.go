package cmd

import (
	"context"
	"io"

	"github.com/sirupsen/logrus"

	"eduforge/config"
	"eduforge/generator"
	"eduforge/publisher"
	"eduforge/studio"
)

// app bundles the wired components shared by the commands.
type app struct {
	cfg      *config.Config
	logger   *logrus.Logger
	handler  *studio.Handler
	exporter *publisher.Exporter
}

func newApp(ctx context.Context, opts *rootOptions, logOut io.Writer) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg, opts.verbose, logOut)

	llm, err := generator.NewLLMFromConfig(ctx, &generator.LLMSettings{
		Provider: cfg.LLM.Provider,
		Model:    cfg.LLM.Model,
		APIKey:   cfg.LLM.APIKey,
		BaseURL:  cfg.LLM.BaseURL,
	}, logger)
	if err != nil {
		return nil, err
	}
	return wire(cfg, logger, llm, publisher.NewWkhtmltopdfRenderer(cfg.Export.EnginePath, cfg.Export.PageSize))
}

func wire(cfg *config.Config, logger *logrus.Logger, llm generator.LLMClient, renderer publisher.Renderer) (*app, error) {
	agent, err := generator.NewAgent(llm, cfg.LLM.Timeout(), logger)
	if err != nil {
		return nil, err
	}
	exporter, err := publisher.New(renderer, cfg.Export.Timeout(), logger)
	if err != nil {
		return nil, err
	}
	handler, err := studio.NewHandler(agent, exporter, logger)
	if err != nil {
		return nil, err
	}
	if err := exporter.Available(); err != nil {
		logger.Warn("[cli] pdf export disabled until wkhtmltopdf is installed")
	}
	logger.WithFields(logrus.Fields{
		"provider": cfg.LLM.Provider,
		"model":    cfg.LLM.Model,
	}).Debug("[cli] components wired")
	return &app{cfg: cfg, logger: logger, handler: handler, exporter: exporter}, nil
}
