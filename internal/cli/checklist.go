package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/dmitrijs2005/fleetcheck/internal/aggregate"
	"github.com/dmitrijs2005/fleetcheck/internal/models"
)

func usage(format string) error {
	return errors.New("usage: " + format)
}

// New prompts for the header fields of a fresh checklist and saves it.
func (a *App) New(ctx context.Context, _ []string) error {
	c, err := a.checklists.New(a.current())
	if err != nil {
		return err
	}
	if c.Plate, err = GetSimpleText(a.reader, "Placa do veículo", a.out); err != nil {
		return err
	}
	if c.Km, err = GetSimpleText(a.reader, "KM atual", a.out); err != nil {
		return err
	}
	if c.Driver, err = GetSimpleText(a.reader, "Motorista", a.out); err != nil {
		return err
	}

	saved, err := a.checklists.Save(ctx, a.current(), c)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Checklist %s created\n", saved.ID)
	return nil
}

// List prints the visible checklists, newest first, with their
// non-conformance badge.
func (a *App) List(ctx context.Context, _ []string) error {
	records := a.checklists.List(ctx, a.current())
	if len(records) == 0 {
		fmt.Fprintln(a.out, "No checklists")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPLATE\tDRIVER\tDATE\tISSUES")
	for _, c := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s %s\t%s\n", c.ID, c.Plate, c.Driver, c.Date, c.Time, badge(c))
	}
	return tw.Flush()
}

func badge(c models.Checklist) string {
	if n := aggregate.RecordNotOkCount(c); n > 0 {
		return fmt.Sprintf("%s %d", aggregate.GlyphWarn.Symbol(), n)
	}
	return aggregate.GlyphPass.Symbol()
}

// Show prints one checklist with per-section summaries.
func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("show <id>")
	}
	c, err := a.checklists.Get(ctx, a.current(), args[0])
	if err != nil {
		return err
	}

	tally := aggregate.Tally(c)
	fmt.Fprintf(a.out, "Checklist %s  %s  (autor %s)\n", c.ID, c.Plate, c.UserID)
	fmt.Fprintf(a.out, "Motorista: %s  KM: %s  Data/Hora: %s %s\n", c.Driver, c.Km, c.Date, c.Time)
	fmt.Fprintf(a.out, "Itens: %d  OK: %d  Regular: %d  Ruim: %d  Pendentes: %d  Não conformes: %d\n",
		tally.Total(), tally.OK, tally.Regular, tally.Bad, tally.Unset, tally.NotOk())

	summaries := aggregate.Summaries(c)
	for i, s := range c.Sections {
		sum := summaries[i]
		fmt.Fprintf(a.out, "\n%s %s %s [%s] %d/%d não conformes\n",
			aggregate.StatusGlyph(aggregate.Worst(s)).Symbol(), s.Emoji, s.Title, s.ID, sum.NotOkCount, sum.TotalItems)
		for _, it := range s.Items {
			line := fmt.Sprintf("  %s %-18s %s", aggregate.StatusGlyph(it.Status).Symbol(), it.ID, it.Name)
			if it.Notes != "" {
				line += " (Nota: " + it.Notes + ")"
			}
			fmt.Fprintln(a.out, line)
		}
		if s.SectionNotes != "" {
			fmt.Fprintf(a.out, "  Obs.: %s\n", s.SectionNotes)
		}
	}

	if c.GeneralNotes != "" {
		fmt.Fprintf(a.out, "\nObservações gerais: %s\n", c.GeneralNotes)
	}
	fmt.Fprintf(a.out, "\nAssinatura motorista: %s\nAssinatura inspetor: %s\n",
		orUnsigned(c.DriverSignature), orUnsigned(c.InspectorSignature))
	return nil
}

func orUnsigned(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// edit loads a visible checklist, applies fn and saves the result.
func (a *App) edit(ctx context.Context, id string, fn func(c *models.Checklist) error) (models.Checklist, error) {
	c, err := a.checklists.Get(ctx, a.current(), id)
	if err != nil {
		return models.Checklist{}, err
	}
	if err := fn(&c); err != nil {
		return models.Checklist{}, err
	}
	return a.checklists.Save(ctx, a.current(), c)
}

// Status sets one item's verdict.
func (a *App) Status(ctx context.Context, args []string) error {
	if len(args) != 4 {
		return usage("status <id> <section> <item> <ok|regular|bad|->")
	}
	st, err := models.ParseStatus(args[3])
	if err != nil {
		return err
	}
	saved, err := a.edit(ctx, args[0], func(c *models.Checklist) error {
		return c.SetItemStatus(args[1], args[2], st)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s/%s is %s (%d não conformes)\n", args[1], args[2], st, aggregate.RecordNotOkCount(saved))
	return nil
}

// Note sets section notes, or item notes when an item is given.
func (a *App) Note(ctx context.Context, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		return usage("note <id> <section> [item]")
	}
	text, err := GetMultiline(a.reader, "Observação", a.out)
	if err != nil {
		return err
	}
	_, err = a.edit(ctx, args[0], func(c *models.Checklist) error {
		if len(args) == 3 {
			return c.SetItemNotes(args[1], args[2], text)
		}
		return c.SetSectionNotes(args[1], text)
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Saved")
	return nil
}

func (a *App) General(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("general <id>")
	}
	text, err := GetMultiline(a.reader, "Observações gerais", a.out)
	if err != nil {
		return err
	}
	_, err = a.edit(ctx, args[0], func(c *models.Checklist) error {
		c.GeneralNotes = text
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Saved")
	return nil
}

// Sign records both signatures. An empty answer keeps the current one.
func (a *App) Sign(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("sign <id>")
	}
	driver, err := GetSimpleText(a.reader, "Assinatura do motorista", a.out)
	if err != nil {
		return err
	}
	inspector, err := GetSimpleText(a.reader, "Assinatura do inspetor", a.out)
	if err != nil {
		return err
	}
	_, err = a.edit(ctx, args[0], func(c *models.Checklist) error {
		if driver != "" {
			c.DriverSignature = driver
		}
		if inspector != "" {
			c.InspectorSignature = inspector
		}
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Saved")
	return nil
}

// AutoFill overwrites a checklist with random test data.
func (a *App) AutoFill(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("autofill <id>")
	}
	saved, err := a.edit(ctx, args[0], func(c *models.Checklist) error {
		*c = a.checklists.AutoFill(*c, a.rng)
		return nil
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Filled %s with random data: %s, %s (%d não conformes)\n",
		saved.ID, saved.Plate, saved.Driver, aggregate.RecordNotOkCount(saved))
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("delete <id>")
	}
	if err := a.checklists.Delete(ctx, a.current(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Checklist %s deleted\n", args[0])
	return nil
}
