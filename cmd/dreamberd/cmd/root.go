package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var configPath string

// runtimeConfig is the optional host-only configuration a user can
// supply with --config — there is no language-level config format,
// only these construction-time interpreter options (grounded on the
// teacher's root.go persistent-flag pattern, generalized to a YAML
// file the way aiseeq-glint reads its linter rules).
type runtimeConfig struct {
	Trace bool `yaml:"trace"`
}

var rootCmd = &cobra.Command{
	Use:   "dreamberd",
	Short: "DreamBerd language runtime",
	Long: `dreamberd runs programs written in DreamBerd, a deliberately
eccentric scripting language: lexer, parser, and tree-walking evaluator
over a variable store with history, lifetimes, and reactive 'when'
subscribers.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	defaultConfig, err := xdg.ConfigFile(filepath.Join("dreamberd", "config.yaml"))
	if err != nil {
		defaultConfig = ""
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfig, "path to an optional YAML config file")
}

// loadConfig reads path if it exists; a missing file is not an error
// since --config always carries an XDG-resolved default.
func loadConfig(path string) (runtimeConfig, error) {
	var cfg runtimeConfig
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
