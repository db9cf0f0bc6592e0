// Package main provides the CLI entrypoint for the PhishNet service.
// It wires subcommands (serve, predict, migrate), loads configuration, and initializes logging.
package main

import (
	"context"
	"flag"
	"io"
	"log"
	"os"
	"phishnet/internal/config"
	"phishnet/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// main sets up the root Cobra command, loads configuration and logging, and
// registers subcommands before executing the CLI.
func main() {
	rootCmd := &cobra.Command{
		Use:   "phishnet",
		Short: "Deep learning phishing URL classifier",
	}

	// there is no way to access flags before command execution in cobra.
	// the paths here are parsed using the standard flags package.
	// following lines are just added to prevent errors when Cobra is parsing the flags.
	rootCmd.PersistentFlags().StringP("config", "c", "config.yml", "Config File Path")
	rootCmd.PersistentFlags().StringP("env", "e", ".env", "Dotenv File Path")

	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flags.SetOutput(io.Discard)
	configPath := flags.String("c", "config.yml", "The config file path")
	envPath := flags.String("e", ".env", "The dotenv file path")
	_ = flags.Parse(leadingFlags(os.Args[1:]))

	log.Println("loading config ...")
	cfg, err := config.Load(*configPath, *envPath)
	if err != nil {
		log.Fatal("could not load config file: ", err)
	}

	if err = logger.Setup(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatal("could not setup logger: ", err)
	}

	ctx := context.Background()

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "captured panic, exiting...", zap.Any("panic", p))
			_ = logger.Get(ctx).Sync()

			panic(p)
		}
	}()

	rootCmd.AddCommand(
		migrateCommand(cfg),
		serveCommand(cfg),
		predictCommand(cfg),
	)

	err = rootCmd.Execute()
	_ = logger.Get(ctx).Sync()
	if err != nil {
		os.Exit(1) //nolint: gocritic
	}
}

// leadingFlags keeps only the -c/-e flags (and their values) so the
// standard flag package does not stop at the subcommand name.
func leadingFlags(args []string) []string {
	var out []string
	for i := 0; i < len(args); i++ {
		var name string
		switch args[i] {
		case "-c", "--config":
			name = "-c"
		case "-e", "--env":
			name = "-e"
		default:
			continue
		}
		if i+1 < len(args) {
			out = append(out, name, args[i+1])
			i++
		}
	}

	return out
}
