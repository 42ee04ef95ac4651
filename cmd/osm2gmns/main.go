package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/LdDl/osm2gmns"
	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

type consolidateFlags struct {
	nodesFname   string
	linksFname   string
	out          string
	geojsonFname string
	configFname  string
	delimiter    string
	autoIdentify bool
	intBuffer    float64
	contract     bool
	verbose      bool
}

func newLogger(level log.Level) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

func newRootCmd() *cobra.Command {
	flags := consolidateFlags{}
	cmd := &cobra.Command{
		Use:          "osm2gmns",
		Short:        "Consolidate complex intersections of GMNS network",
		Long:         `Merges groups of closely spaced signalized nodes (a single real-world intersection digitized as several nodes) into single nodes and rewires links to them.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := log.InfoLevel
			if flags.verbose {
				level = log.DebugLevel
			}
			logger := newLogger(level)
			err := run(cmd, flags, logger)
			if err != nil {
				logger.Error("Consolidation failed", "err", err)
			}
			return err
		},
	}
	cmd.Flags().StringVar(&flags.nodesFname, "nodes", "node.csv", "GMNS nodes file")
	cmd.Flags().StringVar(&flags.linksFname, "links", "link.csv", "GMNS links file")
	cmd.Flags().StringVar(&flags.out, "out", "consolidated.csv", "Output file name. E.g.: if file name is 'map.csv' then 'map_nodes.csv' and 'map_links.csv' will be produced")
	cmd.Flags().StringVar(&flags.geojsonFname, "geojson", "", "Optional GeoJSON output file for consolidated network")
	cmd.Flags().StringVar(&flags.configFname, "config", "", "Optional configuration file (TOML or YAML)")
	cmd.Flags().StringVar(&flags.delimiter, "delimiter", ",", "CSV delimiter for input and output files")
	cmd.Flags().BoolVar(&flags.autoIdentify, "auto", false, "Identify complex intersections automatically")
	cmd.Flags().Float64Var(&flags.intBuffer, "int-buffer", osm2gmns.DEFAULT_INT_BUFFER, "Max length of link (meters) between two signalized nodes of the same intersection")
	cmd.Flags().BoolVar(&flags.contract, "contract", false, "Prepare contraction hierarchies for consolidated network and export shortcuts")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	return cmd
}

func run(cmd *cobra.Command, flags consolidateFlags, logger *log.Logger) error {
	if len([]rune(flags.delimiter)) != 1 {
		return errors.Errorf("Delimiter must be a single character, got '%s'", flags.delimiter)
	}
	comma := []rune(flags.delimiter)[0]

	cfg := osm2gmns.DefaultConfiguration()
	if flags.configFname != "" {
		var err error
		cfg, err = osm2gmns.LoadConfiguration(flags.configFname)
		if err != nil {
			return err
		}
	}
	// Explicit flags take precedence over configuration file
	if cmd.Flags().Changed("auto") {
		cfg.AutoIdentify = flags.autoIdentify
	}
	if cmd.Flags().Changed("int-buffer") {
		cfg.IntBuffer = flags.intBuffer
	}
	if flags.verbose {
		cfg.Verbose = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	st := time.Now()
	net, err := osm2gmns.ImportFromCSV(flags.nodesFname, flags.linksFname, comma)
	if err != nil {
		return err
	}
	logger.Info("Network imported", "nodes", net.NodesNum(), "links", net.LinksNum(), "elapsed", time.Since(st))

	consolidator := osm2gmns.NewIntersectionConsolidator(append(cfg.Options(), osm2gmns.WithLogger(logger))...)
	logger.Debug(consolidator.String())
	stats := consolidator.Consolidate(net)
	logger.Info("Network consolidated",
		"groups", stats.ConsolidatedGroups,
		"nodes", net.NodesNum(),
		"links", net.LinksNum(),
	)

	err = net.ExportToCSV(flags.out, comma)
	if err != nil {
		return err
	}
	if flags.geojsonFname != "" {
		err = net.ExportToGeoJSON(flags.geojsonFname)
		if err != nil {
			return err
		}
	}

	if flags.contract {
		graph, err := net.ToContractionGraph()
		if err != nil {
			return err
		}
		logger.Info("Starting contraction process")
		st := time.Now()
		graph.PrepareContractionHierarchies()
		logger.Info("Done contraction process", "elapsed", time.Since(st))
		fnameShortcuts := strings.Split(flags.out, ".csv")[0] + "_shortcuts.csv"
		err = graph.ExportShortcutsToFile(fnameShortcuts)
		if err != nil {
			return errors.Wrap(err, "Can't export shortcuts")
		}
	}
	return nil
}
