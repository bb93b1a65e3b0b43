// Package report 把估计结果和对比结果格式化成文本或 JSON
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"percolation_tool/pkg/bench"
	"percolation_tool/pkg/percstats"
)

type Format string

const (
	FormatTxt  Format = "txt"
	FormatJSON Format = "json"
)

// 为了让 VarP 接收自定义类型，实现 flag.Value 接口(String Set Type)即可
func (f *Format) String() string { return string(*f) }

func (f *Format) Set(val string) error {
	switch val {
	case string(FormatTxt), string(FormatJSON):
		*f = Format(val)
		return nil
	default:
		return fmt.Errorf("无效的 format 值: %s", val)
	}
}

func (f *Format) Type() string {
	return "format"
}

// FormatStats 输出一次估计的统计结果
func FormatStats(s percstats.Summary, elapsed time.Duration, label string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Running PercolationStats with %s:\n", label)
	fmt.Fprintf(&b, "n = %s, trials = %s\n", humanize.Comma(int64(s.N)), humanize.Comma(int64(s.Trials)))
	fmt.Fprintf(&b, "mean()           = %.6f\n", s.Mean)
	fmt.Fprintf(&b, "stddev()         = %.6f\n", s.Stddev)
	fmt.Fprintf(&b, "confidenceLow()  = %.6f\n", s.ConfidenceLow)
	fmt.Fprintf(&b, "confidenceHigh() = %.6f\n", s.ConfidenceHigh)
	fmt.Fprintf(&b, "elapsed time     = %.6f\n", elapsed.Seconds())
	return b.String()
}

// 按显示宽度右对齐，保证表格在中英文混排时也能对齐
func renderTable(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	line := func(cells []string) string {
		parts := make([]string, len(cells))
		for i, c := range cells {
			parts[i] = runewidth.FillLeft(c, widths[i])
		}
		return strings.Join(parts, "  ")
	}

	var out []string
	head := line(header)
	out = append(out, head)
	out = append(out, strings.Repeat("-", runewidth.StringWidth(head)))
	for _, row := range rows {
		out = append(out, line(row))
	}
	return strings.Join(out, "\n") + "\n"
}

// FormatCompare 输出 Quick-Find 和带权并查集的耗时对比表
func FormatCompare(r *bench.Report) string {
	var b strings.Builder
	b.WriteString("=== PERFORMANCE COMPARISON ===\n")
	fmt.Fprintf(&b, "Comparing Quick-Find vs Weighted Quick-Union (trials = %s, limit = %s)\n\n",
		humanize.Comma(int64(r.Trials)), r.Limit)

	header := []string{"n", "Quick-Find (s)", "Weighted QU (s)", "Speedup"}
	var rows [][]string
	for _, row := range r.Rows() {
		if row.TimedOut {
			rows = append(rows, []string{
				humanize.Comma(int64(row.N)),
				fmt.Sprintf(">%.1f", r.Limit.Seconds()),
				"-",
				"-",
			})
			continue
		}
		rows = append(rows, []string{
			humanize.Comma(int64(row.N)),
			fmt.Sprintf("%.3f", row.QuickFind.Seconds()),
			fmt.Sprintf("%.3f", row.Weighted.Seconds()),
			humanize.FtoaWithDigits(row.Speedup, 3) + "x",
		})
	}
	b.WriteString(renderTable(header, rows))

	if n, ok := r.TimedOutAt(); ok {
		fmt.Fprintf(&b, "Quick-Find exceeded time limit at n=%d\n", n)
	}
	return b.String()
}

// FormatMaxNProgress 输出最大规模搜索中单个规模的结果
func FormatMaxNProgress(p bench.Progress) string {
	if p.TimedOut {
		return fmt.Sprintf("%s n=%d exceeded time limit (%.3fs)\n", p.Kind.Label(), p.N, p.Elapsed.Seconds())
	}
	return fmt.Sprintf("%s n=%d completed in %.3fs\n", p.Kind.Label(), p.N, p.Elapsed.Seconds())
}

func FormatMaxNResult(res bench.MaxNResult) string {
	return fmt.Sprintf("Maximum n for %s (within %s): %d\n", res.Kind.Label(), res.Limit, res.MaxN)
}

// FormatMaxN 输出两种引擎在时间预算内能完成的最大规模
func FormatMaxN(qf, wqu bench.MaxNResult) string {
	var b strings.Builder
	b.WriteString("RESULTS:\n")
	b.WriteString(FormatMaxNResult(qf))
	b.WriteString(FormatMaxNResult(wqu))
	if qf.MaxN > 0 {
		fmt.Fprintf(&b, "Performance improvement: %sx\n", humanize.FtoaWithDigits(bench.Improvement(qf, wqu), 3))
	} else {
		b.WriteString("Performance improvement: n/a\n")
	}
	return b.String()
}

type kv struct {
	path  string
	value any
}

// 依次写入字段，最后统一缩进
func buildJSON(js string, fields []kv) (string, error) {
	var err error
	for _, f := range fields {
		js, err = sjson.Set(js, f.path, f.value)
		if err != nil {
			return "", fmt.Errorf("写入 JSON 字段 %s 失败: %w", f.path, err)
		}
	}
	return string(pretty.Pretty([]byte(js))), nil
}

func StatsJSON(s percstats.Summary, elapsed time.Duration) (string, error) {
	return buildJSON("{}", []kv{
		{"n", s.N},
		{"trials", s.Trials},
		{"engine", string(s.Engine)},
		{"mean", s.Mean},
		{"stddev", s.Stddev},
		{"confidence_low", s.ConfidenceLow},
		{"confidence_high", s.ConfidenceHigh},
		{"min", s.Min},
		{"max", s.Max},
		{"elapsed_seconds", elapsed.Seconds()},
	})
}

func CompareJSON(r *bench.Report) (string, error) {
	fields := []kv{
		{"trials", r.Trials},
		{"limit_seconds", r.Limit.Seconds()},
		{"rows", []any{}},
	}
	// rows.-1 表示追加到数组末尾
	for _, row := range r.Rows() {
		fields = append(fields, kv{"rows.-1", map[string]any{
			"n":                 row.N,
			"quickfind_seconds": row.QuickFind.Seconds(),
			"weighted_seconds":  row.Weighted.Seconds(),
			"speedup":           row.Speedup,
			"timed_out":         row.TimedOut,
		}})
	}
	return buildJSON("{}", fields)
}

func MaxNJSON(results ...bench.MaxNResult) (string, error) {
	fields := []kv{{"results", []any{}}}
	for _, res := range results {
		fields = append(fields, kv{"results.-1", map[string]any{
			"engine":          string(res.Kind),
			"max_n":           res.MaxN,
			"elapsed_seconds": res.Elapsed.Seconds(),
			"limit_seconds":   res.Limit.Seconds(),
		}})
	}
	return buildJSON("{}", fields)
}

// JSONList 把多个 JSON 文档合并成一个数组
func JSONList(docs ...string) string {
	return string(pretty.Pretty([]byte("[" + strings.Join(docs, ",") + "]")))
}
