package main

import (
	"fmt"
	"os"

	"github.com/AmyAssist/Amy-sub000/config"
	"github.com/AmyAssist/Amy-sub000/speech"
	"github.com/spf13/cobra"
)

var rootFlags = struct {
	config *string
}{}

var rootCmd = &cobra.Command{
	Use:   "amy",
	Short: "Compile speech grammars and resolve utterances to intents",
	Long: `amy provides the following features:
- Compiles the intents of a configuration into a JSGF grammar file for the speech recognizer.
- Resolves utterances to intents and prints the bound entities.
  This feature is primarily aimed at debugging the grammars.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func init() {
	rootFlags.config = rootCmd.PersistentFlags().StringP("config", "c", "", "config file path (default ./amy.yaml, ./configs/amy.yaml, or /etc/amy/amy.yaml)")
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return err
	}
	return nil
}

// loadRegistry reads the configuration and registers its entities and intents.
func loadRegistry() (*speech.Registry, *config.Config, error) {
	cfg, err := config.Load(*rootFlags.config)
	if err != nil {
		return nil, nil, err
	}
	logger := config.SetupLogging(cfg.Logging, os.Stderr)
	r, err := speech.Load(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("registry ready", "intents", len(r.Intents()), "language", cfg.Language, "stemmer", cfg.Stemmer)
	return r, cfg, nil
}
