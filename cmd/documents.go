package cmd

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/shopmonkeyus/contentful-to-sanity/internal"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/contentful"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/sanity"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/tracker"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/transform"
	"github.com/shopmonkeyus/contentful-to-sanity/internal/util"
	"github.com/shopmonkeyus/go-common/logger"
	csys "github.com/shopmonkeyus/go-common/sys"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// Manifest describes one documents run. It is written next to the documents file.
type Manifest struct {
	Export      string    `toml:"export"`
	Output      string    `toml:"output"`
	Started     time.Time `toml:"started"`
	Finished    time.Time `toml:"finished"`
	IntlMode    string    `toml:"intl_mode"`
	Locales     []string  `toml:"locales"`
	Incremental bool      `toml:"incremental"`
	Documents   int       `toml:"documents"`
	Skipped     int       `toml:"skipped"`
	Removed     []string  `toml:"removed,omitempty"`
	Unresolved  int       `toml:"unresolved_links"`
}

func writeManifest(fn string, manifest Manifest) error {
	f, err := os.Create(fn)
	if err != nil {
		return errors.Wrapf(err, "error creating %s", fn)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(manifest); err != nil {
		return errors.Wrapf(err, "error encoding %s", fn)
	}
	return nil
}

type documentJob struct {
	entry  *contentful.Entry
	tag    *contentful.Tag
	locale string
}

func documentJobs(export *contentful.Export, mapper *transform.Mapper) []documentJob {
	locales := mapper.Locales()
	jobs := make([]documentJob, 0, len(export.Entries)*len(locales)+len(export.Tags))
	for i := range export.Tags {
		jobs = append(jobs, documentJob{tag: &export.Tags[i]})
	}
	for i := range export.Entries {
		for _, locale := range locales {
			jobs = append(jobs, documentJob{entry: &export.Entries[i], locale: locale})
		}
	}
	return jobs
}

// transformDocuments maps every job in parallel. The result keeps the order of the jobs.
func transformDocuments(ctx context.Context, log logger.Logger, mapper *transform.Mapper, jobs []documentJob, parallel int) ([]sanity.Document, error) {
	docs := make([]sanity.Document, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, job := range jobs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if job.tag != nil {
				docs[i] = mapper.MapTag(*job.tag)
			} else {
				docs[i] = mapper.MapEntry(*job.entry, job.locale)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.Debug("transformed %d documents", len(docs))
	return docs, nil
}

type documentWriter struct {
	enc     util.JSONEncoder
	tracker *tracker.Tracker
	hashes  map[string]string
	seen    map[string]bool
	skipped int
}

// write encodes the document unless the tracker has seen the same content before.
func (w *documentWriter) write(doc sanity.Document) error {
	id := doc.ID()
	w.seen[id] = true
	if w.tracker != nil {
		hash := util.HashJSON(doc)
		changed, err := w.tracker.Changed(id, hash)
		if err != nil {
			return err
		}
		if !changed {
			w.skipped++
			internal.DocumentsSkipped.Inc()
			return nil
		}
		w.hashes[id] = hash
	}
	if err := w.enc.Encode(doc); err != nil {
		return errors.Wrapf(err, "error writing document %s", id)
	}
	internal.DocumentsProduced.Inc()
	return nil
}

var documentsCmd = &cobra.Command{
	Use:   "documents <export>",
	Short: "Convert the entries of a contentful export to sanity documents",
	Long: util.GenerateHelpSection("Documents",
		"Writes the entries, tags and asset references of the export as new line delimited json for the sanity importer.\n"+
			"Output files ending in .gz are compressed. With --incremental only documents that changed since the previous run are written."),
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		log := newLogger(cmd).WithPrefix("[documents]")
		defer util.RecoverPanic(log)

		started := time.Now()
		opts := optionsFromFlags(cmd)
		out := mustFlagString(cmd, "out", true)
		parallel := mustFlagInt(cmd, "parallel", runtime.NumCPU())
		incremental := mustFlagBool(cmd, "incremental", false)

		if !incremental && !confirmOverwrite(log, out, mustFlagBool(cmd, "confirm", false)) {
			return
		}

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go func() {
			select {
			case <-ctx.Done():
				return
			case <-csys.CreateShutdownChannel():
				log.Info("shutting down")
				cancel()
				return
			}
		}()

		export := loadExport(log, args[0], mustFlagBool(cmd, "validate", false))

		keys := transform.RandomKeys
		if mustFlagBool(cmd, "stable-keys", false) || incremental {
			keys = transform.StableKeys
		}
		mapper, err := transform.NewMapper(log.WithPrefix("[transform]"), export, opts, keys)
		if err != nil {
			if errors.Is(err, contentful.ErrNoDefaultLocale) {
				log.Error("the export has no default locale, make sure the export includes its locales")
			} else {
				log.Error("error configuring transform: %s", err)
			}
			os.Exit(1)
		}

		var docs []sanity.Document
		util.RunTaskWithSpinner("Transforming entries...", func() {
			docs, err = transformDocuments(ctx, log, mapper, documentJobs(export, mapper), parallel)
		})
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return
			}
			log.Error("error transforming entries: %s", err)
			os.Exit(1)
		}

		w := &documentWriter{hashes: map[string]string{}, seen: map[string]bool{}}
		if incremental {
			dir := mustFlagString(cmd, "state-dir", true)
			if ok, err := util.IsDirWritable(dir); !ok {
				log.Error("state directory %s is not writable: %s", dir, err)
				os.Exit(1)
			}
			w.tracker, err = tracker.NewTracker(tracker.TrackerConfig{
				Context: ctx,
				Logger:  log,
				Dir:     dir,
			})
			if err != nil {
				log.Error("error opening tracker: %s", err)
				os.Exit(1)
			}
			defer w.tracker.Close()
		}

		w.enc, err = util.NewNDJSONEncoder(out)
		if err != nil {
			log.Error("error creating %s: %s", out, err)
			os.Exit(1)
		}
		for _, doc := range docs {
			if err := w.write(doc); err != nil {
				w.enc.Close()
				log.Error("%s", err)
				os.Exit(1)
			}
		}
		if err := w.enc.Close(); err != nil {
			log.Error("error closing %s: %s", out, err)
			os.Exit(1)
		}

		var removed []string
		if w.tracker != nil {
			if err := w.tracker.Record(w.hashes); err != nil {
				log.Error("error recording documents: %s", err)
				os.Exit(1)
			}
			removed, err = w.tracker.Forget(w.seen)
			if err != nil {
				log.Error("error removing stale documents: %s", err)
				os.Exit(1)
			}
			for _, id := range removed {
				log.Warn("document %s is no longer in the export and must be deleted from sanity", id)
			}
		}

		stats := internal.GetRunStats()
		if fn := mustFlagString(cmd, "manifest", false); fn != "" {
			err := writeManifest(fn, Manifest{
				Export:      args[0],
				Output:      out,
				Started:     started,
				Finished:    time.Now(),
				IntlMode:    string(mapper.Options().IntlMode),
				Locales:     mapper.Locales(),
				Incremental: incremental,
				Documents:   w.enc.Count(),
				Skipped:     w.skipped,
				Removed:     removed,
				Unresolved:  int(stats.LinksUnresolved),
			})
			if err != nil {
				log.Error("%s", err)
				os.Exit(1)
			}
		}

		log.Info("wrote %d documents to %s in %v", w.enc.Count(), out, time.Since(started).Round(time.Millisecond))
		if w.skipped > 0 {
			log.Info("skipped %d unchanged documents", w.skipped)
		}
		if stats.LinksUnresolved > 0 {
			log.Info("%.0f links point at entries or assets missing from the export, run with --verbose for details", stats.LinksUnresolved)
		}
	},
}

func init() {
	rootCmd.AddCommand(documentsCmd)
	addOptionFlags(documentsCmd)
	documentsCmd.Flags().StringP("out", "o", "documents.ndjson", "the documents file, compressed when it ends in .gz")
	documentsCmd.Flags().Int("parallel", runtime.NumCPU(), "the number of entries to transform in parallel")
	documentsCmd.Flags().Bool("stable-keys", false, "derive array keys from the entry so that repeated runs produce the same documents")
	documentsCmd.Flags().Bool("incremental", false, "only write documents which changed since the previous run, implies --stable-keys")
	documentsCmd.Flags().String("state-dir", ".", "the directory of the incremental run state")
	documentsCmd.Flags().String("manifest", "", "write a toml manifest of the run to this file")
	documentsCmd.Flags().Bool("confirm", false, "overwrite an existing documents file without asking")
}
