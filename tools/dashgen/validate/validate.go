// Package validate checks generated dashboards and rules for PromQL that
// fails to parse or references metrics the service does not export.
package validate

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/terminusgps/wialon-registration/tools/dashgen/rules"
)

// Result collects problems found during validation. Errors are fatal;
// warnings flag dashboards that still render.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether validation found no errors.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) merge(o Result) {
	r.Errors = append(r.Errors, o.Errors...)
	r.Warnings = append(r.Warnings, o.Warnings...)
}

// Expr parses a single PromQL expression and checks every selected metric
// against known.
func Expr(where, expr string, known map[string]bool) Result {
	var res Result

	parsed, err := parser.ParseExpr(expr)
	if err != nil {
		res.Errors = append(res.Errors, fmt.Sprintf("%s: parsing %q: %v", where, expr, err))
		return res
	}

	for _, name := range MetricNames(parsed) {
		if !known[name] {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: unknown metric %q", where, name))
		}
	}
	return res
}

// MetricNames returns the sorted, de-duplicated metric names selected by
// expr. Histogram series suffixes are stripped so they match the family
// name.
func MetricNames(expr parser.Expr) []string {
	seen := map[string]struct{}{}
	parser.Inspect(expr, func(node parser.Node, _ []parser.Node) error {
		if vs, ok := node.(*parser.VectorSelector); ok && vs.Name != "" {
			seen[familyName(vs.Name)] = struct{}{}
		}
		return nil
	})

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func familyName(name string) string {
	for _, suffix := range []string{"_bucket", "_count", "_sum"} {
		if len(name) > len(suffix) && name[len(name)-len(suffix):] == suffix {
			return name[:len(name)-len(suffix)]
		}
	}
	return name
}

// Dashboard validates every Prometheus target in dash, including panels
// nested in rows. Panels without a description produce a warning.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var res Result

	for _, p := range dash.Panels {
		switch {
		case p.Panel != nil:
			res.merge(panel(*p.Panel, known))
		case p.RowPanel != nil:
			for _, inner := range p.RowPanel.Panels {
				res.merge(panel(inner, known))
			}
		}
	}
	return res
}

func panel(p dashboard.Panel, known map[string]bool) Result {
	var res Result

	title := "untitled panel"
	if p.Title != nil {
		title = *p.Title
	}
	if p.Description == nil || *p.Description == "" {
		res.Warnings = append(res.Warnings, fmt.Sprintf("panel %q has no description", title))
	}
	if len(p.Targets) == 0 {
		res.Errors = append(res.Errors, fmt.Sprintf("panel %q has no targets", title))
	}

	for _, t := range p.Targets {
		// Targets are dataquery variants; the expression is read from
		// their wire form.
		raw, err := json.Marshal(t)
		if err != nil {
			res.Errors = append(res.Errors, fmt.Sprintf("panel %q: encoding target: %v", title, err))
			continue
		}
		var q struct {
			Expr string `json:"expr"`
		}
		if err := json.Unmarshal(raw, &q); err != nil || q.Expr == "" {
			res.Errors = append(res.Errors, fmt.Sprintf("panel %q: target has no expr", title))
			continue
		}
		res.merge(Expr(fmt.Sprintf("panel %q", title), q.Expr, known))
	}
	return res
}

// Rules validates every expression in cr. Recording rules are added to
// known as they are seen so later rules may reference them.
func Rules(cr rules.PrometheusRule, known map[string]bool) Result {
	var res Result

	scope := make(map[string]bool, len(known))
	for k, v := range known {
		scope[k] = v
	}

	for _, g := range cr.Spec.Groups {
		for _, r := range g.Rules {
			name := r.Record
			if name == "" {
				name = r.Alert
			}
			res.merge(Expr(fmt.Sprintf("rule %s/%s", g.Name, name), r.Expr, scope))
			if r.Record != "" {
				scope[r.Record] = true
			}
		}
	}
	return res
}
