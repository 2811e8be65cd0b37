package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iliyamo/banquet-seating/internal/config"
	"github.com/iliyamo/banquet-seating/internal/database"
	"github.com/iliyamo/banquet-seating/internal/model"
	"github.com/iliyamo/banquet-seating/internal/numbering"
	"github.com/iliyamo/banquet-seating/internal/repository"
	"github.com/iliyamo/banquet-seating/internal/service"
)

// globals are the persistent flags shared by every subcommand.  Zero
// values fall back to the environment loaded by config.Load.
type globals struct {
	scheme string
	rows   int
	cols   int
	store  string
	data   string
	sheet  string

	cfg config.Config
	db  *sql.DB
}

func newRootCmd(out io.Writer) *cobra.Command {
	g := &globals{}
	root := &cobra.Command{
		Use:           "banquetctl",
		Short:         "Inspect and edit banquet seating from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if g.db != nil {
				return g.db.Close()
			}
			return nil
		},
	}
	root.SetOut(out)

	pf := root.PersistentFlags()
	pf.StringVar(&g.scheme, "scheme", "", "numbering scheme (sequential, odd_even_split)")
	pf.IntVar(&g.rows, "rows", 0, "grid rows (1-20)")
	pf.IntVar(&g.cols, "cols", 0, "grid columns (1-20)")
	pf.StringVar(&g.store, "store", "", "guest store driver: csv, xlsx, mysql")
	pf.StringVar(&g.data, "data", "", "guest list file for the csv and xlsx drivers")
	pf.StringVar(&g.sheet, "sheet", "", "worksheet for the xlsx driver")

	root.AddCommand(
		newGridCmd(g),
		newSwapCmd(g),
		newEditTableCmd(g),
		newRenumberCmd(g),
		newSimulateCmd(g),
		newReportCmd(g),
	)
	return root
}

// service builds a SeatingService over the configured store.  The view
// lives only for the duration of the command.
func (g *globals) service(ctx context.Context) (*service.SeatingService, error) {
	g.cfg = config.Load()
	if g.scheme != "" {
		s, err := numbering.Lookup(g.scheme)
		if err != nil {
			return nil, err
		}
		g.cfg.Scheme = s.Name
	}
	if g.rows != 0 {
		g.cfg.Rows = g.rows
	}
	if g.cols != 0 {
		g.cfg.Cols = g.cols
	}
	if g.store != "" {
		g.cfg.StoreDriver = strings.ToLower(g.store)
	}
	if err := g.cfg.Validate(); err != nil {
		return nil, err
	}

	opts := repository.StoreOptions{
		Driver:    g.cfg.StoreDriver,
		CSVPath:   g.cfg.DataFile,
		XLSXPath:  g.cfg.XLSXFile,
		XLSXSheet: g.cfg.XLSXSheet,
	}
	if g.data != "" {
		opts.CSVPath, opts.XLSXPath = g.data, g.data
	}
	if g.sheet != "" {
		opts.XLSXSheet = g.sheet
	}
	if g.cfg.StoreDriver == config.DriverMySQL {
		db, err := database.Open(ctx, database.Params{User: g.cfg.DBUser, Pass: g.cfg.DBPass, Host: g.cfg.DBHost, Port: g.cfg.DBPort, Name: g.cfg.DBName})
		if err != nil {
			return nil, fmt.Errorf("database: %w", err)
		}
		g.db, opts.DB = db, db
	}
	store, err := repository.OpenGuestStore(ctx, opts)
	if err != nil {
		return nil, err
	}

	views := repository.NewMemoryViewStore()
	return service.New(store, views, service.Options{
		Defaults: model.ViewState{Rows: g.cfg.Rows, Cols: g.cfg.Cols, Scheme: g.cfg.Scheme, Mode: model.ModeMove},
	}), nil
}

// output opens path for writing, or returns the command's stdout when
// path is empty or "-".
func output(cmd *cobra.Command, path string) (io.Writer, func() error, error) {
	if path == "" || path == "-" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func warn(cmd *cobra.Command, warnings []string) {
	for _, w := range warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
	}
}
