// Package harvest runs a take template over document sets declared in an
// HCL job file and records the extracted data in SQLite. One job names a
// template, the sources to scan and the output database; each source row
// carries the source name, the file name and the flattened result JSON.
package harvest

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/hashicorp/hcl/v2/hclsimple"

	"github.com/takedsl/take"
	"github.com/takedsl/take/api"
	"github.com/takedsl/take/internal/loader"
)

// LoadJob reads and validates an HCL job file.
func LoadJob(jobPath string) (*api.Job, error) {
	var job api.Job
	if err := hclsimple.DecodeFile(jobPath, nil, &job); err != nil {
		return nil, fmt.Errorf("load job %s: %w", jobPath, err)
	}
	if len(job.Sources) == 0 {
		return nil, fmt.Errorf("job %s: at least one source block is required", jobPath)
	}
	for i := range job.Sources {
		if job.Sources[i].Glob == "" {
			job.Sources[i].Glob = "*.html"
		}
	}
	return &job, nil
}

// Runner executes harvest jobs over a filesystem. Template and source
// paths in the job resolve against the filesystem root, which the CLI
// sets to the job file's directory.
type Runner struct {
	fs  billy.Filesystem
	log *slog.Logger
}

func NewRunner(fs billy.Filesystem, log *slog.Logger) *Runner {
	return &Runner{fs: fs, log: log}
}

// Report counts one run's outcomes.
type Report struct {
	Harvested int
	Failed    int
}

// Run compiles the job's template and executes it over every matching
// document, recording results in store. A document that fails to load or
// render is logged and counted, never fatal; an unreadable source
// directory or a template fault is.
func (r *Runner) Run(ctx context.Context, job *api.Job, store *Store) (Report, error) {
	var rep Report

	src, err := util.ReadFile(r.fs, job.Template)
	if err != nil {
		return rep, fmt.Errorf("read template: %w", err)
	}
	var opts []take.Option
	if job.BaseURL != "" {
		opts = append(opts, take.BaseURL(job.BaseURL))
	}
	tmpl, err := take.New(string(src), opts...)
	if err != nil {
		return rep, fmt.Errorf("compile template %s: %w", job.Template, err)
	}

	for _, source := range job.Sources {
		entries, err := r.fs.ReadDir(source.Dir)
		if err != nil {
			return rep, fmt.Errorf("source %q: %w", source.Name, err)
		}
		for _, fi := range entries {
			if err := ctx.Err(); err != nil {
				return rep, err
			}
			if fi.IsDir() {
				continue
			}
			if source.Glob != "" {
				ok, err := path.Match(source.Glob, fi.Name())
				if err != nil {
					return rep, fmt.Errorf("source %q: glob %q: %w", source.Name, source.Glob, err)
				}
				if !ok {
					continue
				}
			}
			if err := r.harvestDoc(tmpl, store, source, fi.Name()); err != nil {
				r.log.Warn("document failed", "source", source.Name, "file", fi.Name(), "error", err)
				rep.Failed++
				continue
			}
			rep.Harvested++
		}
	}
	return rep, nil
}

func (r *Runner) harvestDoc(tmpl *take.Template, store *Store, source api.Source, name string) error {
	b, err := util.ReadFile(r.fs, path.Join(source.Dir, name))
	if err != nil {
		return err
	}

	markup := string(b)
	if loader.IsMarkdown(name) {
		markup, err = loader.RenderMarkdown(b)
		if err != nil {
			return err
		}
	}

	data, err := tmpl.Exec(markup)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(take.Flatten(data))
	if err != nil {
		return err
	}
	return store.Add(source.Name, name, payload)
}
