package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/iliyamo/banquet-seating/internal/identity"
	"github.com/iliyamo/banquet-seating/internal/model"
	"github.com/iliyamo/banquet-seating/internal/report"
	"github.com/iliyamo/banquet-seating/internal/seating"
	"github.com/iliyamo/banquet-seating/internal/service"
	"github.com/iliyamo/banquet-seating/internal/simulation"
)

func newGridCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "grid",
		Short: "Print the table grid with group and guest count per table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := g.service(cmd.Context())
			if err != nil {
				return err
			}
			snap, err := svc.Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			warn(cmd, snap.Warnings)
			return printGrid(cmd.OutOrStdout(), snap.State)
		},
	}
}

func printGrid(w io.Writer, st service.State) error {
	res, err := identity.ForView(st.View)
	if err != nil {
		return err
	}
	cells := seating.BuildCells(res, st.Guests)
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "# %dx%d %s\n", st.View.Rows, st.View.Cols, res.Scheme().Label)
	for i, c := range cells {
		label := fmt.Sprintf("%d: -", c.ID)
		if c.Occupied {
			label = fmt.Sprintf("%d: %s (%d)", c.ID, c.Group, c.Count)
		}
		sep := "\t"
		if (i+1)%st.View.Cols == 0 {
			sep = "\n"
		}
		fmt.Fprint(tw, label+sep)
	}
	return tw.Flush()
}

func newSwapCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "swap FROM TO",
		Short: "Exchange the guests of two tables (display ids)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid table %q", args[0])
			}
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid table %q", args[1])
			}
			svc, err := g.service(cmd.Context())
			if err != nil {
				return err
			}
			res, err := svc.Dispatch(cmd.Context(), service.Event{Action: service.ActionSwap, FromID: from, ToID: to})
			if err != nil {
				return err
			}
			warn(cmd, res.Warnings)
			if !res.Changed {
				fmt.Fprintln(cmd.OutOrStdout(), "nothing to swap")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "swapped table %d with table %d\n", from, to)
			return nil
		},
	}
}

// parseGuest reads "seat:name:menu"; menu may be omitted.
func parseGuest(s string) (model.GuestRow, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) < 2 {
		return model.GuestRow{}, fmt.Errorf("guest %q: want seat:name[:menu]", s)
	}
	seat, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return model.GuestRow{}, fmt.Errorf("guest %q: invalid seat", s)
	}
	row := model.GuestRow{Seat: seat, Name: strings.TrimSpace(parts[1])}
	if len(parts) == 3 {
		row.Menu = strings.TrimSpace(parts[2])
	}
	return row, nil
}

func newEditTableCmd(g *globals) *cobra.Command {
	var group string
	var guests []string
	cmd := &cobra.Command{
		Use:   "edit-table ID",
		Short: "Replace the guests of a table (display id)",
		Long: `Replace every guest of a table with the guests given by --guest.
With no --guest flags the table is vacated.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid table %q", args[0])
			}
			rows := make([]model.GuestRow, 0, len(guests))
			for _, s := range guests {
				r, err := parseGuest(s)
				if err != nil {
					return err
				}
				rows = append(rows, r)
			}
			svc, err := g.service(cmd.Context())
			if err != nil {
				return err
			}
			res, err := svc.Dispatch(cmd.Context(), service.Event{Action: service.ActionSave, TableID: id, Group: strings.TrimSpace(group), Guests: rows})
			if err != nil {
				return err
			}
			warn(cmd, res.Warnings)
			fmt.Fprintf(cmd.OutOrStdout(), "table %d saved with %d guests\n", id, len(rows))
			return nil
		},
	}
	cmd.Flags().StringVar(&group, "group", "", "group name for the table")
	cmd.Flags().StringArrayVar(&guests, "guest", nil, "guest as seat:name:menu (repeatable)")
	return cmd
}

func newRenumberCmd(g *globals) *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "renumber",
		Short: "Move every table number from the current scheme to another",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := g.service(cmd.Context())
			if err != nil {
				return err
			}
			res, err := svc.Dispatch(cmd.Context(), service.Event{Action: service.ActionRenumber, Scheme: to})
			if err != nil {
				return err
			}
			warn(cmd, res.Warnings)
			fmt.Fprintf(cmd.OutOrStdout(), "renumbered to %s; pass --scheme %s from now on\n", res.State.View.Scheme, res.State.View.Scheme)
			return nil
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "target numbering scheme")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func newSimulateCmd(g *globals) *cobra.Command {
	var after, pdfPath, floorPath string
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Preview the layout with new tables inserted after existing ones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			anchors, err := simulation.ParseAnchors(after)
			if err != nil {
				return err
			}
			svc, err := g.service(cmd.Context())
			if err != nil {
				return err
			}
			view, warnings, err := svc.Simulate(cmd.Context(), anchors)
			if err != nil {
				return err
			}
			warn(cmd, warnings)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "new tables: %s\n", joinInts(view.NewIDs))
			fmt.Fprintf(out, "ordering:   %s\n", joinInts(view.Ordering))
			fmt.Fprintf(out, "guests: %d (adjusted %d)\n", view.Summary.Totals.Total, view.Summary.Totals.Adjusted)

			meta := report.Meta{Title: g.cfg.EventTitle, GeneratedAt: time.Now()}
			if pdfPath != "" {
				if err := writeFile(cmd, pdfPath, func(w io.Writer) error { return report.WriteSummaryPDF(w, view.Summary, meta) }); err != nil {
					return err
				}
			}
			if floorPath != "" {
				if err := writeFile(cmd, floorPath, func(w io.Writer) error {
					return report.WriteFloorPlanPDF(w, view.FloorPlan, view.Summary.Tables, view.NewIDs, meta)
				}); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&after, "after", "", "comma separated tables to insert after (0 inserts at the front)")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "write the simulated table summary PDF here")
	cmd.Flags().StringVar(&floorPath, "floor-plan", "", "write the simulated floor plan PDF here")
	_ = cmd.MarkFlagRequired("after")
	return cmd
}

func newReportCmd(g *globals) *cobra.Command {
	var format, order, outPath string
	cmd := &cobra.Command{
		Use:       "report summary|guests|dashboard",
		Short:     "Write a report of the current guest list",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"summary", "guests", "dashboard"},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := g.service(cmd.Context())
			if err != nil {
				return err
			}
			snap, err := svc.Snapshot(cmd.Context())
			if err != nil {
				return err
			}
			warn(cmd, snap.Warnings)
			write, err := reportWriter(args[0], strings.ToLower(format), strings.ToLower(order), g, snap.State)
			if err != nil {
				return err
			}
			return writeFile(cmd, outPath, write)
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "summary: csv|pdf|xlsx; guests: csv|pdf; dashboard: html (default: first listed)")
	cmd.Flags().StringVar(&order, "order", "name", "guest list order: name|table")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "output file (default: stdout)")
	return cmd
}

func reportWriter(kind, format, order string, g *globals, st service.State) (func(io.Writer) error, error) {
	meta := report.Meta{Title: g.cfg.EventTitle, GeneratedAt: time.Now()}
	if format == "" {
		format = "csv"
		if kind == "dashboard" {
			format = "html"
		}
	}
	switch kind {
	case "summary":
		s := report.Project(st.Guests, nil)
		switch format {
		case "csv":
			return func(w io.Writer) error { return report.WriteSummaryCSV(w, s) }, nil
		case "pdf":
			return func(w io.Writer) error { return report.WriteSummaryPDF(w, s, meta) }, nil
		case "xlsx":
			return func(w io.Writer) error { return report.WriteSummaryXLSX(w, s, meta) }, nil
		}
	case "guests":
		if order != "name" && order != "table" {
			return nil, fmt.Errorf("invalid order %q (want name or table)", order)
		}
		switch format {
		case "csv":
			if order == "table" {
				rows := seating.FilterGuests(st.Guests, seating.GuestFilter{})
				return func(w io.Writer) error { return report.WriteGuestsCSV(w, rows) }, nil
			}
			guests := report.GuestsByName(st.Guests)
			return func(w io.Writer) error { return report.WriteGuestsByNameCSV(w, guests) }, nil
		case "pdf":
			if order == "table" {
				blocks := report.GuestsByTable(st.Guests)
				return func(w io.Writer) error { return report.WriteGuestsByTablePDF(w, blocks, meta) }, nil
			}
			guests := report.GuestsByName(st.Guests)
			return func(w io.Writer) error { return report.WriteGuestsByNamePDF(w, guests, meta) }, nil
		}
	case "dashboard":
		if format != "html" {
			break
		}
		res, err := identity.ForView(st.View)
		if err != nil {
			return nil, err
		}
		page := report.DashboardPage{
			Meta:      meta,
			Rows:      st.View.Rows,
			Cols:      st.View.Cols,
			Cells:     seating.BuildCells(res, st.Guests),
			Dashboard: report.BuildDashboard(st.Guests, g.cfg.GuestTarget),
		}
		return func(w io.Writer) error { return report.WriteDashboardHTML(w, page) }, nil
	default:
		return nil, fmt.Errorf("unknown report %q (want summary, guests or dashboard)", kind)
	}
	return nil, fmt.Errorf("format %q not available for %s", format, kind)
}

func writeFile(cmd *cobra.Command, path string, write func(io.Writer) error) error {
	w, closeFn, err := output(cmd, path)
	if err != nil {
		return err
	}
	if err := write(w); err != nil {
		_ = closeFn()
		return err
	}
	if err := closeFn(); err != nil {
		return err
	}
	if path != "" && path != "-" {
		fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s\n", path)
	}
	return nil
}

func joinInts(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ", ")
}
