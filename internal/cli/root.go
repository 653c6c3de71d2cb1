// Package cli implements the relterm command line.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/hupe1980/relterm"
	"github.com/hupe1980/relterm/blobstore"
	miniostore "github.com/hupe1980/relterm/blobstore/minio"
	s3store "github.com/hupe1980/relterm/blobstore/s3"
	"github.com/hupe1980/relterm/compress"
	"github.com/hupe1980/relterm/corpus"
	cfgpkg "github.com/hupe1980/relterm/internal/config"
	"github.com/hupe1980/relterm/partition"
	"github.com/spf13/cobra"
)

// ledgerPrefix holds partition markers when no DynamoDB table is configured.
const ledgerPrefix = ".relterm/ledger/"

// app holds the global flags and the state derived from them.
type app struct {
	configPath string
	logLevel   string
	logFormat  string
	storeKind  string
	bucket     string
	endpoint   string
	ioLimit    int64
	corpusRoot string
	include    []string
	exclude    []string

	cfg    *cfgpkg.Config
	logger *relterm.Logger
}

// NewRootCommand creates the relterm command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "relterm",
		Short: "Find related terms in a text corpus",
		Long: `Relterm builds a word co-occurrence matrix over a vocabulary and ranks,
for every vocabulary word, the words most related to it.

Examples:
  relterm freq -v vocab.txt -d corpus.txt -o related.txt
  relterm related -v vocab.txt -d part-0.gz -d part-1.gz -o out/related.txt --policy distance
  relterm dump -v vocab.txt -d corpus.txt -o matrix.sqlite
  relterm score -i related.txt --oracle pairs.txt`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	f := root.PersistentFlags()
	f.StringVar(&a.configPath, "config", "", "YAML configuration file")
	f.StringVar(&a.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	f.StringVar(&a.logFormat, "log-format", "text", "log format (text, json)")
	f.StringVar(&a.storeKind, "store", "local", "corpus and output store (local, s3, minio)")
	f.StringVar(&a.bucket, "bucket", "", "bucket of the s3 or minio store")
	f.StringVar(&a.endpoint, "endpoint", "", "endpoint of the minio store")
	f.Int64Var(&a.ioLimit, "io-limit", 0, "corpus read limit in bytes per second (0 = unlimited)")
	f.StringVar(&a.corpusRoot, "corpus-root", ".", "corpus directory of the local store")
	f.StringSliceVar(&a.include, "include", nil, "glob patterns of corpus files to read when no dataset is given")
	f.StringSliceVar(&a.exclude, "exclude", nil, "glob patterns of corpus files to skip")

	root.AddCommand(
		newFreqCommand(a),
		newRelatedCommand(a),
		newDumpCommand(a),
		newScoreCommand(a),
	)
	return root
}

// Execute runs the command line until it finishes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCommand().ExecuteContext(ctx)
}

// setup loads the configuration, lets changed flags override it and
// creates the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := cfgpkg.Load(a.configPath)
	if err != nil {
		return err
	}

	f := cmd.Flags()
	if f.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if f.Changed("log-format") {
		cfg.Log.Format = a.logFormat
	}
	if f.Changed("store") {
		cfg.Store.Kind = a.storeKind
	}
	if f.Changed("bucket") {
		cfg.Store.Bucket = a.bucket
	}
	if f.Changed("endpoint") {
		cfg.Store.Endpoint = a.endpoint
	}
	if f.Changed("io-limit") {
		cfg.Corpus.IOLimit = a.ioLimit
	}
	if f.Changed("corpus-root") {
		cfg.Corpus.Root = a.corpusRoot
	}
	if f.Changed("include") {
		cfg.Corpus.Include = a.include
	}
	if f.Changed("exclude") {
		cfg.Corpus.Exclude = a.exclude
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		return err
	}
	if cfg.Log.Format == "json" {
		a.logger = relterm.NewLogger(slog.NewJSONHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	} else {
		a.logger = relterm.NewLogger(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	}

	a.cfg = cfg
	return nil
}

// corpusStore opens the store holding the corpus.
func (a *app) corpusStore(ctx context.Context) (blobstore.Store, error) {
	if a.cfg.Store.Kind == "local" {
		return blobstore.NewLocalStore(a.cfg.Corpus.Root), nil
	}
	return a.remoteStore(ctx)
}

// outputStore opens the store for the output named out and returns the
// blob name of out within it. Local outputs are paths relative to the
// working directory.
func (a *app) outputStore(ctx context.Context, out string) (blobstore.Store, string, error) {
	if a.cfg.Store.Kind == "local" {
		return blobstore.NewLocalStore(filepath.Dir(out)), filepath.Base(out), nil
	}
	store, err := a.remoteStore(ctx)
	return store, out, err
}

func (a *app) remoteStore(ctx context.Context) (blobstore.Store, error) {
	sc := a.cfg.Store
	switch sc.Kind {
	case "s3":
		return s3store.New(ctx, sc.Bucket, s3store.WithPrefix(sc.Prefix))
	case "minio":
		return miniostore.Connect(miniostore.Config{
			Endpoint:  sc.Endpoint,
			AccessKey: sc.AccessKey,
			SecretKey: sc.SecretKey,
			Secure:    sc.Secure,
		}, sc.Bucket, miniostore.WithPrefix(sc.Prefix))
	default:
		return nil, fmt.Errorf("unknown store %q", sc.Kind)
	}
}

// ledger returns the partition ledger of runs writing to store.
func (a *app) ledger(ctx context.Context, store blobstore.Store) (partition.Ledger, error) {
	if table := a.cfg.Store.LedgerTable; table != "" {
		awsCfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, err
		}
		return s3store.NewDDBLedger(dynamodb.NewFromConfig(awsCfg), table), nil
	}
	return partition.NewStoreLedger(store, ledgerPrefix), nil
}

// datasets returns the named corpus files, or every file matching the
// include and exclude patterns when none are named.
func (a *app) datasets(ctx context.Context, store blobstore.Store, named []string) ([]string, error) {
	if len(named) > 0 {
		return named, nil
	}
	names, err := corpus.Discover(ctx, store, "", a.cfg.Corpus.Include, a.cfg.Corpus.Exclude)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no corpus files found")
	}
	return names, nil
}

// writeBlob streams fn into the blob name of store, compressed according to
// its suffix. The blob is discarded if fn fails.
func writeBlob(ctx context.Context, store blobstore.Store, name string, fn func(io.Writer) error) error {
	blob, err := store.Create(ctx, name)
	if err != nil {
		return err
	}

	err = func() error {
		cw, err := compress.NewWriter(blob, compress.FormatOf(name))
		if err != nil {
			return err
		}
		err = fn(cw)
		if cerr := cw.Close(); err == nil {
			err = cerr
		}
		return err
	}()
	if err != nil {
		_ = blob.Abort()
		return err
	}
	return blob.Close()
}
