package renderer

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/etnz/gbce"
	md "github.com/nao1215/markdown"
)

// ReportMarkdown renders the full market report.
func ReportMarkdown(r *Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Market Report on %s", r.Time.Format(time.DateTime)))
	doc.PlainText(fmt.Sprintf("Trades accepted: %d, rejected: %d", r.Accepted, r.Rejected))

	doc.H2("Analytics")
	rows := make([][]string, 0, len(r.VolumeWeighted)+1)
	for _, k := range r.VolumeWeighted {
		rows = append(rows, []string{
			fmt.Sprintf("Volume Weighted Price (%s, last %s)", k.Kind, r.Window),
			formatMetric(k.Price, formatPence),
		})
	}
	rows = append(rows, []string{"All Share Index", formatMetric(r.AllShareIndex, formatPence)})
	doc.Table(md.TableSet{
		Header: []string{"Indicator", "Value"},
		Rows:   rows,
	})

	doc.H2("Securities")
	doc.Table(securitiesTable(r.Securities))

	doc.H2("Trades")
	if len(r.Trades) == 0 {
		doc.PlainText("No trades.")
	} else {
		rows := make([][]string, 0, len(r.Trades))
		for _, t := range r.Trades {
			rows = append(rows, []string{
				t.Time.Format(time.TimeOnly),
				t.Symbol,
				t.Kind.String(),
				t.Direction.String(),
				strconv.Itoa(t.Quantity),
				t.Price.String(),
				t.Value.Display(),
			})
		}
		doc.Table(md.TableSet{
			Header: []string{"Time", "Symbol", "Kind", "Direction", "Quantity", "Price (p)", "Value"},
			Rows:   rows,
		})
	}

	return doc.String()
}

// SecuritiesMarkdown renders the table of securities.
func SecuritiesMarkdown(lines []SecurityLine) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	doc.H1("Securities")
	doc.Table(securitiesTable(lines))
	return doc.String()
}

func securitiesTable(lines []SecurityLine) md.TableSet {
	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		fixed := "-"
		if l.HasFixed {
			fixed = fmt.Sprintf("%.2f%%", l.FixedDividend*100)
		}
		quote, dy, pe := "-", "-", "-"
		if l.Quote > 0 {
			quote = formatPence(l.Quote)
			dy = formatMetric(l.DividendYield, formatPercent)
			pe = formatMetric(l.PERatio, formatRatio)
		}
		rows = append(rows, []string{
			l.Symbol,
			l.Kind.String(),
			l.ParValue.String(),
			l.LastDividend.String(),
			fixed,
			quote,
			dy,
			pe,
		})
	}
	return md.TableSet{
		Header: []string{"Symbol", "Kind", "Par (p)", "Last Dividend (p)", "Fixed Dividend", "Quote", "Dividend Yield", "P/E"},
		Rows:   rows,
	}
}

func formatPence(v float64) string   { return fmt.Sprintf("%.2fp", v) }
func formatPercent(v float64) string { return fmt.Sprintf("%.2f%%", v*100) }
func formatRatio(v float64) string   { return fmt.Sprintf("%.2f", v) }

// formatMetric formats m, or a short reason when it could not be computed.
func formatMetric(m Metric, format func(float64) string) string {
	switch {
	case m.Err == nil:
		return format(m.Value)
	case errors.Is(m.Err, gbce.ErrUnsupported):
		return "n/a"
	case errors.Is(m.Err, gbce.ErrNoTradesInWindow):
		return "no trades in window"
	case errors.Is(m.Err, gbce.ErrNoTrades):
		return "no trades"
	default:
		return "error: " + m.Err.Error()
	}
}
