package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/RohithRamesh28/onlycrawls/pkg/config"
	"github.com/RohithRamesh28/onlycrawls/pkg/crawler"
)

// runCrawlCmd executes one crawl invocation from CLI flags and arguments.
func runCrawlCmd(cmd *cobra.Command, args []string) error {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, TimestampFormat: "15:04:05.000"})
	log.SetLevel(logrus.InfoLevel)

	logLevel, _ := cmd.Flags().GetString("loglevel")
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		log.Warnf("Invalid log level '%s', using default 'info'. Error: %v", logLevel, err)
	} else {
		log.SetLevel(level)
	}

	cfg, err := buildConfig(cmd, log)
	if err != nil {
		return err
	}

	targetURL, err := resolveTarget(cmd, args)
	if err != nil {
		return err
	}

	// Invalid base URL is the one fatal configuration error.
	crawlerInstance, err := crawler.New(targetURL, cfg, log)
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	// Ctrl-C stops the crawl before its next round; a second signal kills.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		sig, ok := <-sigCh
		if !ok {
			return
		}
		log.Warnf("Received signal: %v. Finishing current round then stopping...", sig)
		cancel()
		if sig, ok = <-sigCh; ok {
			log.Warnf("Received second signal: %v. Forcing exit.", sig)
			os.Exit(1)
		}
	}()

	fmt.Printf("\nStarting depth-limited crawl for: %s\n", targetURL)
	urls, summary := crawlerInstance.Run(ctx)
	fmt.Printf("\nTotal crawl time: %.2f seconds\n", summary.Duration.Seconds())

	outputPath, _ := cmd.Flags().GetString("output")
	if outputPath == "" {
		outputPath = cfg.OutputCSV
	}
	if err := crawler.ExportCSV(outputPath, urls, logrus.NewEntry(log)); err != nil {
		return fmt.Errorf("exporting results: %w", err)
	}
	fmt.Printf("\nExported %d URLs to %s\n", len(urls), outputPath)
	return nil
}

// buildConfig loads the optional YAML config file, applies flag overrides,
// and validates the result, logging any validation warnings.
func buildConfig(cmd *cobra.Command, log *logrus.Logger) (*config.AppConfig, error) {
	cfg := &config.AppConfig{}
	if configPath, _ := cmd.Flags().GetString("config"); configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		log.Infof("Loaded configuration from %s", configPath)
	}

	if cmd.Flags().Changed("tasks") {
		cfg.MaxTasks, _ = cmd.Flags().GetInt("tasks")
	}
	if cmd.Flags().Changed("depth") {
		cfg.MaxDepth, _ = cmd.Flags().GetInt("depth")
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputCSV, _ = cmd.Flags().GetString("output")
	}

	warnings, err := cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	for _, w := range warnings {
		log.Warn(w)
	}
	return cfg, nil
}

// resolveTarget returns the crawl target from the positional argument, or
// prompts for one on stdin when none was given.
func resolveTarget(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return strings.TrimSpace(args[0]), nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Enter a site URL (e.g., https://books.toscrape.com)")
	fmt.Fprint(cmd.OutOrStdout(), "Target: ")
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading target URL: %w", err)
	}
	target := strings.TrimSpace(line)
	if target == "" {
		return "", fmt.Errorf("no target URL provided")
	}
	return target, nil
}
