package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/dailyjournal/internal/client/models"
)

const (
	defaultPageSize = 10
	previewLen      = 60
)

func parseID(args []string, cmd string) (int64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%w: %s <id>", errUsage, cmd)
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s <id>, id must be a positive number", errUsage, cmd)
	}
	return id, nil
}

func optionalInt(args []string, i, def int) (int, error) {
	if len(args) <= i {
		return def, nil
	}
	n, err := strconv.Atoi(args[i])
	if err != nil {
		return 0, fmt.Errorf("%w: list [page] [size]", errUsage)
	}
	return n, nil
}

// preview flattens content to a single line of at most previewLen runes.
func preview(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) > previewLen {
		return string(r[:previewLen-1]) + "…"
	}
	return s
}

func writeEntryTable(w io.Writer, entries []models.Entry) {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tMOOD\tCONTENT")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", e.ID, e.CreatedAt, e.MoodOrDash(), preview(e.Content))
	}
	tw.Flush()
}

func writeEntry(w io.Writer, e *models.Entry) {
	fmt.Fprintf(w, "#%d  %s  mood: %s\n\n%s\n", e.ID, e.CreatedAt, e.MoodOrDash(), e.Content)
}

// List prints one page of entries, newest first.
func (a *App) List(ctx context.Context, args []string) error {
	page, err := optionalInt(args, 0, 1)
	if err != nil {
		return err
	}
	size, err := optionalInt(args, 1, defaultPageSize)
	if err != nil {
		return err
	}

	p, err := a.client.ListEntries(ctx, page, size)
	if err != nil {
		return err
	}
	if len(p.Items) == 0 {
		fmt.Fprintf(a.out, "No entries on page %d (total %d)\n", p.Page, p.Total)
		return nil
	}

	writeEntryTable(a.out, p.Items)
	more := ""
	if p.HasMore {
		more = fmt.Sprintf(", next: list %d %d", p.Page+1, p.Size)
	}
	fmt.Fprintf(a.out, "Page %d, %d of %d entries%s\n", p.Page, len(p.Items), p.Total, more)
	return nil
}

func (a *App) askMood(current *string) (*string, error) {
	prompt := "Mood (optional)"
	if current != nil {
		prompt = fmt.Sprintf("Mood [%s] ('-' to clear)", *current)
	}
	m, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return nil, err
	}
	switch m {
	case "":
		return current, nil
	case "-":
		return nil, nil
	}
	return &m, nil
}

// Add prompts for the body, mood and an optional timestamp and creates the entry.
func (a *App) Add(ctx context.Context, _ []string) error {
	content, err := getMultiline(a.reader, "Write your entry", a.out)
	if err != nil {
		return err
	}
	if content == "" {
		fmt.Fprintln(a.out, "Empty entry, nothing saved")
		return nil
	}

	mood, err := a.askMood(nil)
	if err != nil {
		return err
	}
	createdAt, err := getSimpleText(a.reader, "Date and time, YYYY-MM-DD HH:MM:SS (empty for now)", a.out)
	if err != nil {
		return err
	}

	e, err := a.client.CreateEntry(ctx, models.EntryInput{Content: content, Mood: mood, CreatedAt: createdAt})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Saved entry #%d at %s\n", e.ID, e.CreatedAt)
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := parseID(args, "show")
	if err != nil {
		return err
	}
	e, err := a.client.GetEntry(ctx, id)
	if err != nil {
		return err
	}
	writeEntry(a.out, e)
	return nil
}

// Edit replaces an entry. Empty answers keep the current values.
func (a *App) Edit(ctx context.Context, args []string) error {
	id, err := parseID(args, "edit")
	if err != nil {
		return err
	}
	cur, err := a.client.GetEntry(ctx, id)
	if err != nil {
		return err
	}
	writeEntry(a.out, cur)

	content, err := getMultiline(a.reader, "New text (empty keeps the current text)", a.out)
	if err != nil {
		return err
	}
	if content == "" {
		content = cur.Content
	}
	mood, err := a.askMood(cur.Mood)
	if err != nil {
		return err
	}
	createdAt, err := getSimpleText(a.reader, fmt.Sprintf("Date and time [%s]", cur.CreatedAt), a.out)
	if err != nil {
		return err
	}

	e, err := a.client.UpdateEntry(ctx, id, models.EntryInput{Content: content, Mood: mood, CreatedAt: createdAt})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Updated entry #%d\n", e.ID)
	return nil
}

func (a *App) Delete(ctx context.Context, args []string) error {
	id, err := parseID(args, "delete")
	if err != nil {
		return err
	}
	answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete entry #%d? (y/N)", id), a.out)
	if err != nil {
		return err
	}
	if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}
	if err := a.client.DeleteEntry(ctx, id); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted entry #%d\n", id)
	return nil
}

// Calendar prints entries between two local dates grouped by day.
func (a *App) Calendar(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: calendar <YYYY-MM-DD> <YYYY-MM-DD>", errUsage)
	}
	days, err := a.client.Calendar(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	if len(days) == 0 {
		fmt.Fprintln(a.out, "No entries in this range")
		return nil
	}

	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, day := range keys {
		fmt.Fprintf(a.out, "%s (%d)\n", day, len(days[day]))
		writeEntryTable(a.out, days[day])
		fmt.Fprintln(a.out)
	}
	return nil
}
