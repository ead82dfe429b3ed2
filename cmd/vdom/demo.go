package main

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vango-dev/vdom/internal/config"
	"github.com/vango-dev/vdom/internal/errors"
	"github.com/vango-dev/vdom/pkg/engine"
	"github.com/vango-dev/vdom/pkg/host/memhost"
	"github.com/vango-dev/vdom/pkg/vdom"
)

type demoOptions struct {
	list     bool
	tree     bool
	metrics  bool
	validate bool
}

func demoCmd() *cobra.Command {
	var opts demoOptions

	cmd := &cobra.Command{
		Use:   "demo [name]",
		Short: "Run a demo tree through a series of render passes",
		Long: `Mount one of the built-in demo trees into an in-memory host,
apply its scripted changes one pass at a time and print the host tree after
each pass, followed by the host work each pass did.

Examples:
  vdom demo --list
  vdom demo list
  vdom demo counter --tree
  vdom demo form --metrics`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if opts.list || len(args) == 0 {
				listDemos(out)
				return nil
			}
			d, ok := findDemo(args[0])
			if !ok {
				return errors.New("V120").
					WithDetail(fmt.Sprintf("There is no demo named %q.", args[0])).
					WithSuggestion("Run 'vdom demo --list' to see the available demos")
			}
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("validate") {
				cfg.Validation = opts.validate
			}
			if opts.metrics {
				cfg.Metrics.Enabled = true
			}
			return runDemo(out, d, cfg, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.list, "list", "l", false, "List the available demos")
	cmd.Flags().BoolVarP(&opts.tree, "tree", "t", false, "Print the logical tree instead of the host tree")
	cmd.Flags().BoolVarP(&opts.metrics, "metrics", "m", false, "Collect and print engine metrics")
	cmd.Flags().BoolVar(&opts.validate, "validate", true, "Check the host tree against the logical tree on every pass")

	return cmd
}

func listDemos(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Demo", "Description", "Steps"})
	table.SetAutoWrapText(false)
	for _, d := range demos {
		table.Append([]string{d.name, d.description, strconv.Itoa(len(d.steps))})
	}
	table.Render()
}

// runDemo mounts d, applies its steps and reports every pass.
func runDemo(w io.Writer, d *demo, cfg *config.Config, opts demoOptions) error {
	doc := memhost.NewDocument()
	body := doc.NewElement("body")
	sheet := &memhost.Sheet{}
	reg := prometheus.NewRegistry()

	engineOpts := append(cfg.EngineOptions(cfg.Logger(os.Stderr), reg),
		engine.WithInjector(sheet),
		engine.WithAfterFunc(manualRefresh),
	)
	ctx := d.context()
	inst := engine.NewRegistry().Mount(body, doc, d.root, ctx, engineOpts...)
	defer inst.Unmount()

	if err := inst.Err(); err != nil {
		return passFailed(d, "mount", err)
	}

	rows := [][]string{passRow("mount", inst.Stats().Last)}
	printPass(w, "mount", inst, body, opts.tree)

	for _, s := range d.steps {
		stats, err := applyStep(inst, s, ctx, body)
		if err != nil {
			return passFailed(d, s.label, err)
		}
		rows = append(rows, passRow(s.label, stats))
		printPass(w, s.label, inst, body, opts.tree)
	}

	if classes := sheet.Classes(); len(classes) > 0 {
		fmt.Fprintf(w, "== styles\n%s\n\n", sheet)
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Pass", "Writes", "Reads", "Created", "Duration"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.AppendBulk(rows)
	table.Render()

	if cfg.Metrics.Enabled {
		fmt.Fprintln(w)
		return printMetrics(w, reg)
	}
	return nil
}

// applyStep runs s and returns the stats of the pass that applied it.
// Events run their own pass; context edits need one.
func applyStep(inst *engine.Instance, s step, ctx vdom.Attrs, body *memhost.Element) (engine.PassStats, error) {
	before := inst.Stats()
	if err := s.do(ctx, body); err != nil {
		return engine.PassStats{}, err
	}
	after := inst.Stats()
	if after.Passes == before.Passes {
		if err := inst.RefreshNow(); err != nil {
			return engine.PassStats{}, err
		}
		return inst.Stats().Last, nil
	}
	if after.Failures > before.Failures {
		return after.Last, errors.Newf(errors.CategoryCLI, "the pass run by the event failed; see the log")
	}
	return after.Last, nil
}

// heldTimer is a scheduled refresh that never fires on its own. The demo
// runs every pass with RefreshNow, which cancels it.
type heldTimer struct{}

func (heldTimer) Stop() bool { return true }

func manualRefresh(time.Duration, func()) engine.Timer { return heldTimer{} }

func passFailed(d *demo, label string, err error) error {
	return errors.New("V121").
		WithDetail(fmt.Sprintf("Demo %q failed at %q.", d.name, label)).
		Wrap(err)
}

func passRow(label string, s engine.PassStats) []string {
	return []string{
		label,
		strconv.Itoa(s.Writes),
		strconv.Itoa(s.Reads),
		strconv.Itoa(s.Created),
		s.Duration.String(),
	}
}

func printPass(w io.Writer, label string, inst *engine.Instance, body *memhost.Element, tree bool) {
	fmt.Fprintf(w, "== %s\n", label)
	if tree {
		fmt.Fprintln(w, vdom.Dump(inst.Tree()))
		return
	}
	fmt.Fprintf(w, "%s\n\n", body.ChildrenString())
}

// printMetrics prints one row per collected metric family. Histograms
// report their sample count.
func printMetrics(w io.Writer, reg *prometheus.Registry) error {
	families, err := reg.Gather()
	if err != nil {
		return err
	}
	sort.Slice(families, func(i, j int) bool {
		return families[i].GetName() < families[j].GetName()
	})

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Metric", "Value"})
	for _, f := range families {
		var total float64
		for _, m := range f.GetMetric() {
			switch {
			case m.GetCounter() != nil:
				total += m.GetCounter().GetValue()
			case m.GetGauge() != nil:
				total += m.GetGauge().GetValue()
			case m.GetHistogram() != nil:
				total += float64(m.GetHistogram().GetSampleCount())
			}
		}
		table.Append([]string{f.GetName(), strconv.FormatFloat(total, 'f', -1, 64)})
	}
	table.Render()
	return nil
}
