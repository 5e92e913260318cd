// Command opticsbench runs the 2D optics tracer against a built-in
// demonstration scene and reports the completed rays.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgPath  string
	logLevel string
	logger   *zap.SugaredLogger
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "opticsbench",
		Short:         "Trace rays through 2D geometric/wave optics scenes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initLogger()
		},
	}
	cmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to a YAML constants overlay (defaults embedded if absent)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	cmd.AddCommand(traceCmd())
	cmd.AddCommand(listScenesCmd())
	return cmd
}

func initLogger() error {
	zcfg := zap.NewProductionConfig()
	zcfg.Encoding = "console"
	if err := zcfg.Level.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
	}
	zl, err := zcfg.Build()
	if err != nil {
		return err
	}
	logger = zl.Sugar()
	return nil
}

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "opticsbench:", err)
		os.Exit(1)
	}
}
