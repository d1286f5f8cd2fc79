package cli

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"
)

const metricPrefix = "fleetcheck_kv_"

// Stats prints the storage backend counters gathered by the metrics
// registry.
func (a *App) Stats(_ context.Context, _ []string) error {
	if a.gatherer == nil {
		return fmt.Errorf("metrics are not enabled")
	}
	families, err := a.gatherer.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	var rows []string
	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), metricPrefix) {
			continue
		}
		name := strings.TrimPrefix(mf.GetName(), metricPrefix)
		for _, m := range mf.GetMetric() {
			labels := make([]string, 0, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			var value string
			switch {
			case m.GetCounter() != nil:
				value = fmt.Sprintf("%.0f", m.GetCounter().GetValue())
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				value = fmt.Sprintf("%d obs, %.3fms total", h.GetSampleCount(), h.GetSampleSum()*1000)
			default:
				continue
			}
			rows = append(rows, fmt.Sprintf("%s\t%s\t%s", name, strings.Join(labels, ","), value))
		}
	}
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "No storage operations yet")
		return nil
	}
	sort.Strings(rows)

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "METRIC\tLABELS\tVALUE")
	for _, r := range rows {
		fmt.Fprintln(tw, r)
	}
	return tw.Flush()
}
