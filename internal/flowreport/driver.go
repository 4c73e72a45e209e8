package flowreport

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	hclog "github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/chennbnbnb/JDoop-release/internal/findings"
	"github.com/chennbnbnb/JDoop-release/internal/flowgraph"
	"github.com/chennbnbnb/JDoop-release/internal/records"
	"github.com/chennbnbnb/JDoop-release/pkg/shared/config"
	errs "github.com/chennbnbnb/JDoop-release/pkg/shared/errors"
)

// Options holds the inputs of one report run.
type Options struct {
	EdgesPath    string
	FindingsPath string

	// Source keeps only findings of this source token when set.
	Source string

	// Workers bounds parallel resolution; values below one mean one.
	Workers int

	// Strategy is config.StrategyBFS (default) or config.StrategyDFS.
	Strategy string

	// Loader reads both relations; nil uses the local filesystem.
	Loader *records.Loader
}

// Flow is the outcome for one finding. Err is a *errors.PathNotFoundError
// when Path is nil.
type Flow struct {
	Finding findings.Finding
	Path    flowgraph.Path
	Err     error
}

// Report is the result of a run, flows in findings file order.
type Report struct {
	RunID    string
	Flows    []*Flow
	Resolved int
	Failed   int

	graphs flowgraph.Graphs
}

// Graphs returns the propagation graphs the report was resolved against.
func (r *Report) Graphs() flowgraph.Graphs {
	return r.graphs
}

// Generate loads both relations, builds the graphs and resolves every finding.
// Data access, malformed records and inconsistent graphs abort the run;
// a finding without a path does not.
func Generate(ctx context.Context, opts Options, logger hclog.Logger) (*Report, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	loader := opts.Loader
	if loader == nil {
		loader = records.NewLoader(nil)
	}
	strategy, err := strategyFor(opts.Strategy)
	if err != nil {
		return nil, err
	}

	rows, err := loader.Load(ctx, opts.EdgesPath)
	if err != nil {
		return nil, err
	}
	graphs, err := flowgraph.BuildGraphs(rows)
	if err != nil {
		return nil, errs.WithPath(err, opts.EdgesPath)
	}
	logger.Info("propagation graphs built", "path", opts.EdgesPath, "edges", graphs.EdgeCount(), "sources", len(graphs))
	if logger.IsTrace() {
		for _, token := range graphs.Tokens() {
			logger.Trace("propagation graph", "source", token, "dump", graphs[token].String())
		}
	}

	all, err := findings.Load(ctx, loader, opts.FindingsPath)
	if err != nil {
		return nil, err
	}
	selected := findings.BySource(all, opts.Source)
	logger.Info("findings loaded", "path", opts.FindingsPath, "total", len(all), "selected", len(selected))

	report := &Report{
		RunID:  uuid.New().String(),
		Flows:  make([]*Flow, len(selected)),
		graphs: graphs,
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, f := range selected {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			report.Flows[i] = resolveFlow(graphs, f, strategy)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, flow := range report.Flows {
		if flow.Err != nil {
			report.Failed++
			logger.Debug("resolution failed", "line", flow.Finding.Line, "error", flow.Err)
			continue
		}
		report.Resolved++
		logger.Trace("resolved", "line", flow.Finding.Line, "path", flow.Path.String())
	}
	logger.Info("flows resolved", "run_id", report.RunID, "resolved", report.Resolved, "failed", report.Failed)

	return report, nil
}

// Resolve finds the path explaining f in graphs with the breadth first strategy.
func Resolve(graphs flowgraph.Graphs, f findings.Finding) (flowgraph.Path, error) {
	return resolve(graphs, f, flowgraph.BreadthFirst)
}

func resolve(graphs flowgraph.Graphs, f findings.Finding, strategy flowgraph.Strategy) (flowgraph.Path, error) {
	notFound := &errs.PathNotFoundError{
		Source:     f.Source,
		EndContext: f.SinkParamContext,
		Sink:       f.SinkParam,
	}

	g, ok := graphs[f.Source]
	if !ok {
		notFound.Reason = "no propagation graph for source"
		return nil, notFound
	}
	start, ok := g.Start()
	if !ok {
		notFound.Reason = "propagation graph has no start edge"
		return nil, notFound
	}
	notFound.StartContext = start.Context

	p := strategy(g, start, flowgraph.Node(f.SinkParamContext, f.SinkParam))
	if p == nil {
		notFound.Reason = "sink argument is unreachable from source"
		return nil, notFound
	}
	return p, nil
}

func resolveFlow(graphs flowgraph.Graphs, f findings.Finding, strategy flowgraph.Strategy) *Flow {
	p, err := resolve(graphs, f, strategy)
	return &Flow{Finding: f, Path: p, Err: err}
}

func render(fm *Formatter, flow *Flow) Rendered {
	if flow.Err != nil {
		return fm.RenderFailure(flow.Finding, flow.Err)
	}
	return fm.Render(flow.Finding, flow.Path)
}

func strategyFor(name string) (flowgraph.Strategy, error) {
	switch name {
	case "", config.StrategyBFS:
		return flowgraph.BreadthFirst, nil
	case config.StrategyDFS:
		return flowgraph.DepthFirst, nil
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownStrategy, name)
	}
}
