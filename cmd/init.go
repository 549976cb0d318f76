package cmd

import (
	"fmt"

	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	tt "github.com/slinlang/slin/internal/types"
	"github.com/slinlang/slin/lint"
)

// initCmd: slin init
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new linter configuration file",
	Run: func(cmd *cobra.Command, args []string) {
		if err := initConfigurationFile(cfgFile); err != nil {
			logger.Error("Error initializing config file", zap.Error(err))
			return
		}
		fmt.Printf("Configuration file created/updated: %s\n", cfgFile)
	},
}

func initConfigurationFile(configurationPath string) error {
	if configurationPath == "" {
		configurationPath = ".slin.yaml"
	}

	// Create a yaml file with rules
	config := lint.Config{
		Name: "slin",
		Rules: map[string]tt.ConfigRule{
			"redundant-type-annotation": {
				Severity:           tt.SeverityWarning,
				IgnoredAnnotations: []string{},
			},
		},
	}
	d, err := yaml.Marshal(config)
	if err != nil {
		return err
	}

	f, err := os.Create(configurationPath)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(d)
	if err != nil {
		return err
	}

	return nil
}
