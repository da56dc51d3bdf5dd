// README: Smoke runner against a running API; executes HTTP/DB/Redis checks and prints results.
package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"railmate/internal/infra"
)

const (
	statusPass    = "PASS"
	statusFail    = "FAIL"
	statusPending = "PENDING"
	statusSkip    = "SKIP"
)

type smokeConfig struct {
	BaseURL        string
	DSN            string
	RedisAddr      string
	MigrationPath  string
	ApplyMigration bool
	Strict         bool
	Timeout        time.Duration
	Concurrency    int
	Duration       time.Duration
}

func newSmokeCmd() *cobra.Command {
	var cfg smokeConfig
	cmd := &cobra.Command{
		Use:   "smoke",
		Short: "Run smoke checks against a running railmate-api",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout)
			defer cancel()
			return runSmoke(ctx, cmd.OutOrStdout(), cfg)
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&cfg.BaseURL, "base-url", "http://localhost:8080", "API base URL")
	fl.StringVar(&cfg.DSN, "dsn", "", "Postgres DSN; history checks are skipped when empty")
	fl.StringVar(&cfg.RedisAddr, "redis", "", "Redis address; cache checks are skipped when empty")
	fl.StringVar(&cfg.MigrationPath, "migration", "migrations/0001_analyses.sql", "migration SQL path")
	fl.BoolVar(&cfg.ApplyMigration, "apply-migration", false, "apply migration SQL before checks")
	fl.BoolVar(&cfg.Strict, "strict", false, "fail on pending checks")
	fl.DurationVar(&cfg.Timeout, "timeout", 3*time.Minute, "total timeout")
	fl.IntVar(&cfg.Concurrency, "concurrency", 10, "concurrency for the load check")
	fl.DurationVar(&cfg.Duration, "duration", 5*time.Second, "duration of the load check; 0 skips it")
	return cmd
}

func runSmoke(ctx context.Context, out io.Writer, cfg smokeConfig) error {
	r := newRunner(cfg, out)
	results := r.runAll(ctx)

	fmt.Fprintln(out, "\n== Summary ==")
	counts := map[string]int{}
	for _, res := range results {
		counts[res.Status]++
	}
	fmt.Fprintf(out, "PASS=%d FAIL=%d PENDING=%d SKIP=%d\n",
		counts[statusPass], counts[statusFail], counts[statusPending], counts[statusSkip])

	if counts[statusFail] > 0 {
		return fmt.Errorf("%d smoke checks failed", counts[statusFail])
	}
	if cfg.Strict && counts[statusPending] > 0 {
		return fmt.Errorf("%d smoke checks pending", counts[statusPending])
	}
	return nil
}

type runner struct {
	cfg   smokeConfig
	out   io.Writer
	httpc *http.Client
	db    *pgxpool.Pool
	dbErr error
	redis *redis.Client
	rdErr error
}

type result struct {
	Status  string
	Latency time.Duration
	Note    string
}

type smokeCase struct {
	Name string
	Run  func(ctx context.Context, r *runner) result
}

func newRunner(cfg smokeConfig, out io.Writer) *runner {
	return &runner{
		cfg:   cfg,
		out:   out,
		httpc: &http.Client{Timeout: 90 * time.Second},
	}
}

func (r *runner) runAll(ctx context.Context) []result {
	if r.cfg.DSN != "" {
		r.db, r.dbErr = infra.NewDB(ctx, r.cfg.DSN)
	}
	if r.cfg.RedisAddr != "" {
		r.redis, r.rdErr = infra.NewRedis(ctx, r.cfg.RedisAddr, "", 0)
	}
	defer func() {
		if r.db != nil {
			r.db.Close()
		}
		if r.redis != nil {
			_ = r.redis.Close()
		}
	}()

	cases := r.cases()
	results := make([]result, 0, len(cases))
	for _, tc := range cases {
		res := tc.Run(ctx, r)
		results = append(results, res)
		fmt.Fprintf(r.out, "%-7s %s", res.Status, tc.Name)
		if res.Latency > 0 {
			fmt.Fprintf(r.out, " (%s)", res.Latency.Round(time.Millisecond))
		}
		if res.Note != "" {
			fmt.Fprintf(r.out, " - %s", res.Note)
		}
		fmt.Fprintln(r.out)
	}
	return results
}
