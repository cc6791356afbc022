package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"

	"github.com/faresweep/faresweep/browse"
	"github.com/faresweep/faresweep/config"
	"github.com/faresweep/faresweep/llm/openai"
	"github.com/faresweep/faresweep/sweep"
)

func main() {
	configPath := flag.String("config", "faresweep.yaml", "path to the run configuration")
	exportPath := flag.String("export", "", "optional path for an xlsx export of the ranked offers")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	// Interrupts cancel between query units; completed units survive.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, *exportPath); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, cfg *config.Config, exportPath string) error {
	model, err := openai.New(
		openai.WithToken(cfg.Provider.APIKey()),
		openai.WithModel(cfg.Provider.Model),
		openai.WithBaseURL(cfg.Provider.BaseURL),
		openai.WithHTTPClient(&http.Client{Timeout: cfg.Timeouts.LLM.Std()}),
	)
	if err != nil {
		return err
	}

	session := browse.NewSession(browse.WithHTTPClient(httpClientFor(cfg)))
	if err := session.Open(ctx); err != nil {
		return err
	}
	defer session.Close()

	agent := browse.NewAgent(session, model,
		browse.WithTemperature(cfg.Provider.Temperature))
	extractor := browse.NewExtractor(session, model,
		browse.WithTemperature(cfg.Provider.Temperature))

	units, err := unitsFor(cfg)
	if err != nil {
		return err
	}
	aggregator := sweep.NewAggregator(agent, extractor,
		sweep.WithConstraints(cfg.Constraints),
		sweep.WithLimit(cfg.Sweep.Limit),
		sweep.WithUnitTimeout(cfg.Timeouts.Unit.Std()),
		sweep.WithFailurePolicy(policyFor(cfg)),
		sweep.WithRateLimit(cfg.Sweep.RequestsPerSecond),
	)

	result, runErr := aggregator.Run(ctx, units)
	if runErr != nil && len(result.Offers) == 0 {
		return runErr
	}
	if runErr != nil {
		log.Printf("sweep ended early: %v", runErr)
	}

	ranked, rendered := sweep.Present(ctx, sweep.LogSink{}, result)
	fmt.Println(rendered)

	if exportPath != "" {
		if err := sweep.ExportXLSX(exportPath, ranked); err != nil {
			return err
		}
		log.Printf("exported %d offers to %s", len(ranked), exportPath)
	}
	return nil
}

// httpClientFor builds the session's client for the configured
// environment: remote runs route through the proxy settings in the
// process environment, local runs connect directly.
func httpClientFor(cfg *config.Config) *http.Client {
	client := &http.Client{Timeout: cfg.Timeouts.HTTP.Std()}
	if cfg.Env == config.EnvRemote {
		client.Transport = &http.Transport{Proxy: http.ProxyFromEnvironment}
	}
	return client
}

func unitsFor(cfg *config.Config) ([]sweep.QueryUnit, error) {
	switch cfg.Sweep.Mode {
	case config.ModeSingle:
		return sweep.SingleUnit(cfg.Sweep.URL, cfg.Sweep.Instruction), nil
	case config.ModeRange:
		start, end, err := cfg.DateRange()
		if err != nil {
			return nil, err
		}
		return sweep.RangeUnits(cfg.Sweep.URLTemplate, start, end), nil
	case config.ModeAuto:
		return sweep.AutonomousUnit(cfg.Sweep.Goal), nil
	default:
		return nil, errors.Errorf("unknown mode %q", cfg.Sweep.Mode)
	}
}

// policyFor resolves the failure policy: an explicit setting wins,
// otherwise range sweeps skip failed units and the one-shot modes abort.
func policyFor(cfg *config.Config) sweep.FailurePolicy {
	switch cfg.Sweep.Policy {
	case config.PolicySkip:
		return sweep.FailSkip
	case config.PolicyAbort:
		return sweep.FailAbort
	default:
		if cfg.Sweep.Mode == config.ModeRange {
			return sweep.FailSkip
		}
		return sweep.FailAbort
	}
}
