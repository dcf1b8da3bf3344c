package main

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"go-seating-client/internal/model"
	"go-seating-client/internal/session"
	apperrors "go-seating-client/pkg/app_errors"
)

func execute(ctx context.Context, s *session.Session, args []string, out io.Writer) error {
	switch args[0] {
	case "show":
		return show(s, out)

	case "tooltip":
		if len(args) != 2 {
			return fmt.Errorf("%w: tooltip needs a seat ID", apperrors.ErrInvalidInput)
		}
		markup, err := s.Manager().Tooltips().Render(args[1])
		if err != nil {
			return err
		}
		fmt.Fprintln(out, markup)
		return nil

	case "assign":
		if len(args) != 2 {
			return fmt.Errorf("%w: assign needs a seat ID", apperrors.ErrInvalidInput)
		}
		outcome, err := s.Assign(ctx, args[1])
		if err != nil {
			return err
		}
		return report(s, outcome, out)

	case "release":
		outcome, err := s.Release(ctx)
		if err != nil {
			return err
		}
		return report(s, outcome, out)
	}

	return fmt.Errorf("%w: unknown command %q", apperrors.ErrInvalidInput, args[0])
}

func report(s *session.Session, outcome *model.Outcome, out io.Writer) error {
	switch {
	case !outcome.Confirmed:
		fmt.Fprintln(out, "Cancelled.")
		return nil
	case !outcome.Reloaded:
		fmt.Fprintf(out, "Server answered %d; page not reloaded.\n", outcome.StatusCode)
		return nil
	}
	return show(s, out)
}

func show(s *session.Session, out io.Writer) error {
	m := s.Manager()
	selection := m.Selection()

	fmt.Fprintf(out, "Page: %s\n\n", s.URL())

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "\tTICKET\tCODE\tSEAT")
	for _, t := range m.Tickets() {
		marker := ""
		if t.ID == selection.TicketID {
			marker = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", marker, t.ID, t.Code, t.SeatLabel)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Fprintln(out)
	w = tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "\tSEAT\tLABEL\tSTATE")
	for _, seat := range m.Seats() {
		marker := ""
		if seat.Current {
			marker = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", marker, seat.SeatID, seat.Label, seat.State)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	release := "disabled"
	if m.ReleaseEnabled() {
		release = "enabled"
	}
	fmt.Fprintf(out, "\nRelease: %s\n", release)
	return nil
}
