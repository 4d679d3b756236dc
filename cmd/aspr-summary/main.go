// Command aspr-summary counts the records of an ASPR synthetic population
// dataset per FIPS region.
//
// Usage:
//
//	go run ./cmd/aspr-summary [dataset-path]
//
// The dataset path defaults to ASPR_DATA_PATH. Records are counted at
// SUMMARY_LEVEL (state, county, tract or block), optionally restricted to the
// comma-separated FIPS codes in SUMMARY_PREFIXES:
//
//	SUMMARY_LEVEL=county SUMMARY_PREFIXES=48201 go run ./cmd/aspr-summary aspr.zip
package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.uber.org/zap"

	"github.com/andreiashu/synthpop"
	"github.com/andreiashu/synthpop/fips"
	"github.com/andreiashu/synthpop/internal/config"
	"github.com/andreiashu/synthpop/internal/logging"
	"github.com/andreiashu/synthpop/metrics"
	"github.com/andreiashu/synthpop/schema"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	level, err := cfg.Summary.FIPSLevel()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	defer logger.Sync()

	reg := prometheus.NewRegistry()
	opts := []synthpop.Option{
		synthpop.WithLogger(logger),
		synthpop.WithMetrics(metrics.New(reg)),
	}
	if cfg.Data.SchemaFile != "" {
		s, err := schema.LoadFile(cfg.Data.SchemaFile)
		if err != nil {
			return err
		}
		opts = append(opts, synthpop.WithSchema(cfg.Data.SchemaPattern, s))
	}

	path := cfg.Data.Path
	if len(args) > 0 {
		path = args[0]
	}
	if path != "" {
		synthpop.SetDataPath(path)
	}
	d, err := synthpop.OpenDefault(opts...)
	if err != nil {
		return err
	}
	defer d.Close()

	log := logger.Sugar()
	onErr := func(err error) bool {
		log.Warnw("skipping unreadable data", "error", err)
		return true
	}

	prefixes := cfg.Summary.PrefixCodes()
	if len(prefixes) == 0 {
		idx, err := synthpop.BuildIndexFunc(d.Records(), level, onErr)
		if err != nil {
			return err
		}
		report(os.Stdout, idx, cfg.Summary.Limit)
	}
	for _, p := range prefixes {
		rs := d.RecordsIn(p)
		idx, err := synthpop.BuildIndexFunc(rs, level, onErr)
		rs.Close()
		if err != nil {
			return err
		}
		fmt.Printf("# %s\n", p)
		report(os.Stdout, idx, cfg.Summary.Limit)
	}

	if cfg.Summary.Metrics {
		return dumpMetrics(reg, logger)
	}
	return nil
}

func report(out io.Writer, idx *synthpop.Index, limit int) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FIPS\tSTATE\tRECORDS")
	for i, c := range idx.Counts() {
		if limit > 0 && i == limit {
			fmt.Fprintf(w, "...\t\t(%d more)\n", idx.Len()-limit)
			break
		}
		st, _ := fips.StateByCode(c.Code.State())
		fmt.Fprintf(w, "%s\t%s\t%d\n", c.Code, st.Abbrev, c.N)
	}
	fmt.Fprintf(w, "total\t\t%d\n", idx.Total())
	w.Flush()
}

func dumpMetrics(reg *prometheus.Registry, logger *zap.Logger) error {
	mfs, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(os.Stderr, mf); err != nil {
			logger.Warn("writing metrics", zap.Error(err))
		}
	}
	return nil
}
