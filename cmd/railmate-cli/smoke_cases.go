package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"regexp"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"railmate/internal/modules/booking"
)

var scenarioA = map[string]any{
	"source":         "Mumbai Central",
	"destination":    "New Delhi",
	"travelDate":     "2025-12-01",
	"passengerCount": 2,
	"travelClass":    "3A",
	"priority":       "confirmation",
}

func (r *runner) cases() []smokeCase {
	base := r.cfg.BaseURL
	analyze := base + "/api/analyze"

	tooMany := copyBody(scenarioA)
	tooMany["passengerCount"] = 7

	return []smokeCase{
		{
			Name: "Env: Postgres connect",
			Run: func(ctx context.Context, r *runner) result {
				switch {
				case r.cfg.DSN == "":
					return result{Status: statusSkip, Note: "no dsn"}
				case r.dbErr != nil:
					return result{Status: statusFail, Note: r.dbErr.Error()}
				}
				return result{Status: statusPass}
			},
		},
		{
			Name: "Env: Redis connect",
			Run: func(ctx context.Context, r *runner) result {
				switch {
				case r.cfg.RedisAddr == "":
					return result{Status: statusSkip, Note: "no redis address"}
				case r.rdErr != nil:
					return result{Status: statusFail, Note: r.rdErr.Error()}
				}
				return result{Status: statusPass}
			},
		},
		{
			Name: "Migration: apply (optional)",
			Run: func(ctx context.Context, r *runner) result {
				if !r.cfg.ApplyMigration {
					return result{Status: statusSkip, Note: "apply-migration=false"}
				}
				if r.db == nil {
					return result{Status: statusFail, Note: "db not available"}
				}
				sql, err := os.ReadFile(r.cfg.MigrationPath)
				if err != nil {
					return result{Status: statusFail, Note: err.Error()}
				}
				for _, s := range splitSQL(string(sql)) {
					if _, err := r.db.Exec(ctx, s); err != nil {
						return result{Status: statusFail, Note: err.Error()}
					}
				}
				return result{Status: statusPass}
			},
		},
		{
			Name: "Migration: tables exist",
			Run: func(ctx context.Context, r *runner) result {
				if r.db == nil {
					return result{Status: statusSkip, Note: "db not available"}
				}
				tables, err := extractTables(r.cfg.MigrationPath)
				if err != nil {
					return result{Status: statusFail, Note: err.Error()}
				}
				for _, t := range tables {
					var exists bool
					err := r.db.QueryRow(ctx,
						"SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name=$1)",
						t,
					).Scan(&exists)
					if err != nil {
						return result{Status: statusFail, Note: err.Error()}
					}
					if !exists {
						return result{Status: statusFail, Note: "missing table: " + t}
					}
				}
				return result{Status: statusPass}
			},
		},
		{
			Name: "API: health",
			Run: func(ctx context.Context, r *runner) result {
				res, body := r.do(ctx, http.MethodGet, base+"/health", "")
				if res.Status == statusFail {
					return res
				}
				if strings.TrimSpace(body) != "OK" {
					res.Status = statusFail
					res.Note += " body=" + body
				}
				return res
			},
		},

		httpCase("Analyze: missing fields -> 400", analyze, `{"source":"Mumbai Central"}`, []int{400}),
		httpCase("Analyze: passengerCount 7 -> 400", analyze, mustJSON(tooMany), []int{400}),
		httpCase("Analyze: malformed JSON -> 400", analyze, `{"source":`, []int{400}),
		{
			Name: "Analyze: scenario A returns seven sections",
			Run: func(ctx context.Context, r *runner) result {
				res, body := r.do(ctx, http.MethodPost, analyze, mustJSON(scenarioA))
				if res.Status == statusFail {
					return res
				}
				if !strings.Contains(res.Note, "status=200") {
					res.Status = statusFail
					return res
				}
				var got map[string]any
				if err := json.Unmarshal([]byte(body), &got); err != nil {
					return result{Status: statusFail, Latency: res.Latency, Note: err.Error()}
				}
				for _, s := range (booking.AnalysisResult{}).Sections() {
					if _, ok := got[s.Key]; !ok {
						return result{Status: statusFail, Latency: res.Latency, Note: "missing key " + s.Key}
					}
				}
				if _, ok := got["error"]; ok {
					res.Status = statusPending
					res.Note += " provider not configured"
				}
				return res
			},
		},
		{
			Name: "History: recent analyses",
			Run: func(ctx context.Context, r *runner) result {
				res, _ := r.do(ctx, http.MethodGet, base+"/api/analyses/recent?limit=5", "")
				if strings.Contains(res.Note, "status=404") {
					return result{Status: statusSkip, Latency: res.Latency, Note: "history disabled"}
				}
				if res.Status != statusFail && !strings.Contains(res.Note, "status=200") {
					res.Status = statusFail
				}
				return res
			},
		},
		{
			Name: "Perf: validation path under load",
			Run: func(ctx context.Context, r *runner) result {
				if r.cfg.Duration <= 0 {
					return result{Status: statusSkip, Note: "duration=0"}
				}
				return perfLoad(ctx, r, analyze, mustJSON(tooMany))
			},
		},
	}
}

// do sends one request and reports the status in Note. Status is FAIL only on transport errors.
func (r *runner) do(ctx context.Context, method, url, body string) (result, string) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return result{Status: statusFail, Note: err.Error()}, ""
	}
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	start := time.Now()
	resp, err := r.httpc.Do(req)
	if err != nil {
		return result{Status: statusFail, Note: err.Error()}, ""
	}
	defer resp.Body.Close()
	b, _ := io.ReadAll(resp.Body)
	return result{
		Status:  statusPass,
		Latency: time.Since(start),
		Note:    fmt.Sprintf("status=%d", resp.StatusCode),
	}, string(b)
}

func httpCase(name, url, body string, okStatuses []int) smokeCase {
	return smokeCase{
		Name: name,
		Run: func(ctx context.Context, r *runner) result {
			res, _ := r.do(ctx, http.MethodPost, url, body)
			if res.Status == statusFail {
				return res
			}
			var code int
			_, _ = fmt.Sscanf(res.Note, "status=%d", &code)
			switch {
			case slices.Contains(okStatuses, code):
			case code == http.StatusTooManyRequests:
				res.Status = statusPending
				res.Note += " rate limited"
			default:
				res.Status = statusFail
			}
			return res
		},
	}
}

// perfLoad hammers url for the configured duration. 429s count as completed requests.
func perfLoad(ctx context.Context, r *runner, url, body string) result {
	end := time.Now().Add(r.cfg.Duration)
	var count, limited, errCount atomic.Int64
	var wg sync.WaitGroup

	for i := 0; i < r.cfg.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for time.Now().Before(end) && ctx.Err() == nil {
				req, _ := http.NewRequestWithContext(ctx, http.MethodPost, url, strings.NewReader(body))
				req.Header.Set("Content-Type", "application/json")
				resp, err := r.httpc.Do(req)
				if err != nil {
					errCount.Add(1)
					continue
				}
				_, _ = io.Copy(io.Discard, resp.Body)
				resp.Body.Close()
				count.Add(1)
				if resp.StatusCode == http.StatusTooManyRequests {
					limited.Add(1)
				}
			}
		}()
	}
	wg.Wait()

	if count.Load() == 0 {
		return result{Status: statusFail, Note: "no requests completed"}
	}
	rps := float64(count.Load()) / r.cfg.Duration.Seconds()
	return result{Status: statusPass, Note: fmt.Sprintf("rps=%.1f limited=%d errors=%d", rps, limited.Load(), errCount.Load())}
}

func copyBody(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}

var createTableRe = regexp.MustCompile(`(?i)create\s+table\s+if\s+not\s+exists\s+([a-zA-Z0-9_]+)`)

func extractTables(path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	matches := createTableRe.FindAllStringSubmatch(string(b), -1)
	tables := make([]string, 0, len(matches))
	for _, m := range matches {
		tables = append(tables, m[1])
	}
	return tables, nil
}

func splitSQL(sql string) []string {
	lines := strings.Split(sql, "\n")
	filtered := make([]string, 0, len(lines))
	for _, line := range lines {
		l := strings.TrimSpace(line)
		if strings.HasPrefix(l, "--") || l == "" {
			continue
		}
		filtered = append(filtered, line)
	}
	parts := strings.Split(strings.Join(filtered, "\n"), ";")
	stmts := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			stmts = append(stmts, s)
		}
	}
	return stmts
}
