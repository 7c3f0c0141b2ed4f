// Copyright 2025 Zintix Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package compare

import (
	"html/template"
	"io"

	"github.com/zintix-labs/duckdice-bot/errs"
)

// reportTemplate renders a self-contained HTML document: every style rule
// is inlined, nothing is fetched at view time.
const reportTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>duckdice strategy comparison</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #222; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #ccc; padding: 0.4rem 0.6rem; text-align: right; }
th, td:first-child { text-align: left; }
tr.skipped { color: #888; }
tr.failed { color: #a00; }
caption { caption-side: top; font-size: 1.2rem; margin-bottom: 0.5rem; text-align: left; }
</style>
</head>
<body>
<h1>Strategy comparison</h1>
<p>
Seed {{.Config.Seed}}, starting balance {{.Config.StartingBalance.String}},
max bets {{.Config.MaxBets}}, currency {{.Config.Currency.String}}.
</p>
<p>Profit variance across strategies: {{printf "%.8f" .ProfitVariance}}, std dev: {{printf "%.8f" .ProfitStdDev}}.</p>
<table>
<caption>Per-strategy results</caption>
<thead>
<tr>
<th>Strategy</th><th>Risk</th><th>Bets</th><th>Win rate</th><th>Profit</th>
<th>ROI</th><th>Max drawdown</th><th>Profit factor</th><th>Risk of ruin</th><th>Note</th>
</tr>
</thead>
<tbody>
{{range .Rows}}
<tr class="{{.RowClass}}">
<td>{{.Name}}</td>
<td>{{.Metadata.RiskLevel}}</td>
{{if .Ok}}
<td>{{.Summary.BetCount}}</td>
<td>{{printf "%.2f%%" (pct .Risk.WinRate)}}</td>
<td>{{.Summary.Profit.String}}</td>
<td>{{printf "%.2f%%" (pct .Risk.ROI)}}</td>
<td>{{.Risk.MaxDrawdownAbs.String}} ({{printf "%.2f%%" (pct .Risk.MaxDrawdownPct)}})</td>
<td>{{printf "%.3f" .Risk.ProfitFactor}}</td>
<td>{{printf "%.2f%%" (pct .Risk.RiskOfRuin)}}</td>
<td></td>
{{else}}
<td colspan="8"></td>
<td>{{.Note}}</td>
{{end}}
</tr>
{{end}}
</tbody>
</table>
</body>
</html>
`

type reportRow struct {
	StrategyResult
	Ok bool
}

func (r reportRow) RowClass() string {
	switch {
	case r.Skipped:
		return "skipped"
	case r.Err != "":
		return "failed"
	default:
		return ""
	}
}

func (r reportRow) Note() string {
	switch {
	case r.Skipped:
		return "skipped: " + r.SkipReason
	case r.Err != "":
		return "error: " + r.Err
	default:
		return ""
	}
}

type reportView struct {
	Report
	Rows []reportRow
}

var reportFuncs = template.FuncMap{
	"pct": func(f float64) float64 { return f * 100 },
}

var reportTmpl = template.Must(template.New("compare").Funcs(reportFuncs).Parse(reportTemplate))

// RenderHTML writes a self-contained HTML report of rep to w.
func RenderHTML(w io.Writer, rep Report) error {
	order := sortedByProfit(rep.Results)
	rows := make([]reportRow, len(order))
	for i, idx := range order {
		res := rep.Results[idx]
		rows[i] = reportRow{StrategyResult: res, Ok: !res.Skipped && res.Err == ""}
	}
	view := reportView{Report: rep, Rows: rows}
	if err := reportTmpl.Execute(w, view); err != nil {
		return errs.Wrap(err, "compare: render html report")
	}
	return nil
}
