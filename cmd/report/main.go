package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"flighthours-service/internal/infrastructure/config"
	"flighthours-service/internal/infrastructure/router"
	reportRepo "flighthours-service/internal/interface/repository"
	flightUsecase "flighthours-service/internal/usecase"
	"flighthours-service/pkg/logger"
	"flighthours-service/pkg/metrics"
	"flighthours-service/pkg/utils"
)

// report computes the month reports for one input file and writes the
// output file. Rejected records are printed to stderr. The exit status is
// non-zero only when the input cannot be read or the output cannot be
// written.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}

	input := flag.String("input", cfg.InputFile, "input roster file")
	output := flag.String("output", cfg.OutputFile, "output report file")
	locale := flag.String("locale", cfg.MonthLocale, "month name locale (ru, en)")
	flag.Parse()

	if !utils.IsSupportedLocale(*locale) {
		fmt.Fprintf(os.Stderr, "unsupported locale %q\n", *locale)
		os.Exit(2)
	}

	log := logger.NewLogger(cfg.LogLevel)
	defer log.Sync()

	m := metrics.NewNopMetrics()
	parser := utils.NewTimestampParser(cfg.DateTimeLayouts)
	fileRepository := reportRepo.NewJSONFileRepository(*input, *output, parser, *locale, log)

	sinkRouter := router.NewSinkRouter(m, log)
	sinkRouter.Register(fileRepository)

	processor := flightUsecase.NewFlightTimeProcessor(flightUsecase.NewRecordValidator(), m, log, cfg.Workers)
	orchestrator := flightUsecase.NewReportOrchestrator(fileRepository, nil, processor, sinkRouter, m, log)

	result, err := orchestrator.Run(context.Background())
	if result != nil {
		for _, msg := range result.Diagnostics.Messages() {
			fmt.Fprintln(os.Stderr, msg)
		}
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Sync()
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "%d crew members written to %s\n", len(result.Output.Specialists), *output)
}
