package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"braces.dev/errtrace"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ghettovoice/gourl/internal/errorutil"
)

const maxLineLen = 4 << 20

func (a *app) bulkCommand() *cobra.Command {
	var path string
	cmd := &cobra.Command{
		Use:   "bulk",
		Short: "Parse URLs line by line",
		Long: `Bulk parses one URL per line read from stdin or a file and prints the
normalized href, or "invalid", for every line in input order. Files ending
in .gz or .zst are decompressed. A summary is printed to stderr.`,
		Example: `  urlparse bulk < urls.txt
  urlparse bulk --path urls.txt.zst --workers 8`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			r, err := openInput(cmd.InOrStdin(), path)
			if err != nil {
				return errtrace.Wrap(err)
			}
			return errtrace.Wrap(a.runBulk(cmd.Context(), r, cmd.OutOrStdout(), cmd.ErrOrStderr()))
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&path, "path", "p", "", "read URLs from this file instead of stdin")
	fs.IntP("workers", "w", 0, "number of parsing goroutines (default GOMAXPROCS)")
	a.v.BindPFlag("bulk.workers", fs.Lookup("workers")) //nolint:errcheck
	return cmd
}

// runBulk parses r into w, prints the summary to stderr and closes r.
func (a *app) runBulk(ctx context.Context, r io.ReadCloser, w, stderr io.Writer) (err error) {
	defer func() {
		err = errors.Join(err, r.Close())
	}()

	start := time.Now()
	stats, err := a.bulk(ctx, r, w)
	fmt.Fprintf(stderr, "%d lines, %d valid, %d invalid in %s\n",
		stats.lines, stats.valid, stats.lines-stats.valid, time.Since(start).Round(time.Millisecond))
	return errtrace.Wrap(err)
}

type bulkStats struct {
	lines, valid int
}

// bulk parses r in batches, each batch is parsed concurrently and written
// in input order before the next one is read.
func (a *app) bulk(ctx context.Context, r io.Reader, w io.Writer) (bulkStats, error) {
	var (
		stats bulkStats
		sc    = bufio.NewScanner(r)
		bw    = bufio.NewWriter(w)
		size  = a.cfg.Bulk.BatchSize
		batch = make([]string, 0, size)
		out   = make([]string, size)
		valid = make([]bool, size)
	)
	sc.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineLen)

	flush := func() error {
		first := stats.lines - len(batch) + 1
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(a.cfg.Bulk.Workers)
		for i, line := range batch {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return errtrace.Wrap(err)
				}
				u, err := a.parser.Parse(line, nil)
				if err != nil {
					a.logger.LogAttrs(gctx, slog.LevelDebug, "invalid URL",
						slog.Int("line", first+i),
						slog.Any("error", err),
					)
					out[i], valid[i] = "invalid", false
					return nil
				}
				out[i], valid[i] = u.Href(), true
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return errtrace.Wrap(err)
		}

		for i := range batch {
			if valid[i] {
				stats.valid++
			}
			bw.WriteString(out[i])
			bw.WriteByte('\n')
		}
		batch = batch[:0]
		return errtrace.Wrap(bw.Flush())
	}

	for sc.Scan() {
		batch = append(batch, sc.Text())
		stats.lines++
		if len(batch) == size {
			if err := flush(); err != nil {
				return stats, errtrace.Wrap(err)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return stats, errtrace.Wrap(err)
	}
	if len(batch) > 0 {
		if err := flush(); err != nil {
			return stats, errtrace.Wrap(err)
		}
	}
	return stats, nil
}

// openInput opens the bulk input, path "" or "-" means stdin.
func openInput(stdin io.Reader, path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, errtrace.Wrap(fmt.Errorf("open gzip %s: %w", path, err))
		}
		return &readCloser{Reader: zr, closers: []io.Closer{zr, f}}, nil
	case ".zst":
		zr, err := zstd.NewReader(f, zstd.WithDecoderConcurrency(1))
		if err != nil {
			f.Close()
			return nil, errtrace.Wrap(fmt.Errorf("open zstd %s: %w", path, err))
		}
		zrc := zr.IOReadCloser()
		return &readCloser{Reader: zrc, closers: []io.Closer{zrc, f}}, nil
	default:
		return f, nil
	}
}

type readCloser struct {
	io.Reader
	closers []io.Closer
}

func (rc *readCloser) Close() error {
	var errs []error
	for _, c := range rc.closers {
		errs = append(errs, c.Close())
	}
	return errtrace.Wrap(errorutil.JoinPrefix("close input:", errs...))
}
