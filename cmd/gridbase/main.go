// Command gridbase runs or drives the in-memory tabular data engine:
// "serve" starts the HTTP command surface, "exec" runs a single
// command against the data directory, "load" (re)loads every CSV in
// the data directory, and "tags" prints the commands.tag file.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"gridbase/command"
	"gridbase/config"
	"gridbase/registry"
	"gridbase/server"
	"gridbase/tags"
)

var configPath string

// verbose is declared against the standalone pflag.CommandLine set and
// merged into cobra's flag set below, the same
// "declare via pflag, merge into cobra" idiom the pack's
// cmd/manifest-query/manifest-query.go uses because cobra does not
// support package-level global pflags directly.
var verbose = pflag.BoolP("verbose", "v", false, "enable verbose (debug-level) logging")

func main() {
	root := &cobra.Command{
		Use:   "gridbase",
		Short: "In-memory tabular data engine",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "gridbase.yaml", "path to the YAML config file")
	root.PersistentFlags().AddFlagSet(pflag.CommandLine)

	root.AddCommand(serveCmd(), execCmd(), loadCmd(), tagsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, nil, err
	}
	logCfg := zap.NewProductionConfig()
	if *verbose {
		logCfg.Level.SetLevel(zap.DebugLevel)
	}
	log, err := logCfg.Build()
	if err != nil {
		return cfg, nil, err
	}
	return cfg, log, nil
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP command surface",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			defer log.Sync()

			reg := registry.New()
			if err := reg.LoadDir(cfg.DataDir); err != nil {
				log.Warn("initial load failed", zap.Error(err))
			}

			srv := server.New(reg, command.DefaultEnv(cfg.DataDir), cfg.TagsFile, log)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return srv.ListenAndServe(ctx, cfg.Addr)
		},
	}
}

func loadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "(Re)load every CSV file in the data directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			reg := registry.New()
			if err := reg.LoadDir(cfg.DataDir); err != nil {
				return err
			}
			for _, name := range reg.List() {
				fmt.Println(name)
			}
			return nil
		},
	}
}

func tagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "Print the commands.tag file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			list, err := tags.Load(cfg.TagsFile)
			if err != nil {
				return err
			}
			for _, tag := range list {
				fmt.Println(tag)
			}
			return nil
		},
	}
}

func execCmd() *cobra.Command {
	var (
		paramsJSON string
	)
	c := &cobra.Command{
		Use:   "exec COMMAND_NAME",
		Short: "Run a single command against the data directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, err := loadConfig()
			if err != nil {
				return err
			}
			defer log.Sync()

			var params command.Params
			if paramsJSON != "" {
				if err := json.Unmarshal([]byte(paramsJSON), &params); err != nil {
					return fmt.Errorf("parsing --params: %w", err)
				}
			}

			reg := registry.New()
			if err := reg.LoadDir(cfg.DataDir); err != nil {
				log.Warn("initial load failed", zap.Error(err))
			}

			res, err := command.Execute(context.Background(), reg, command.Name(args[0]), params, command.DefaultEnv(cfg.DataDir), log)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res.Table)
		},
	}
	c.Flags().StringVar(&paramsJSON, "params", "", "JSON-encoded command parameters")
	return c
}
