// Package observability provides formatted terminal output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/jonathan/accelerate/internal/pipeline"
	"github.com/jonathan/accelerate/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 10
	// maxFocusAreas is how many focus areas an opportunity line shows
	maxFocusAreas = 3
)

var (
	bold   = color.New(color.Bold).SprintFunc()
	title  = color.New(color.FgCyan, color.Bold).SprintFunc()
	cyan   = color.New(color.FgCyan).SprintFunc()
	dim    = color.New(color.FgHiBlack).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
	red    = color.New(color.FgRed).SprintFunc()
)

var statusColors = map[types.ApplicationStatus]func(a ...interface{}) string{
	types.StatusIdentified:  color.New(color.FgHiBlack).SprintFunc(),
	types.StatusResearching: color.New(color.FgBlue).SprintFunc(),
	types.StatusDrafting:    color.New(color.FgYellow).SprintFunc(),
	types.StatusReady:       color.New(color.FgCyan).SprintFunc(),
	types.StatusSubmitted:   color.New(color.FgMagenta).SprintFunc(),
	types.StatusInterview:   color.New(color.FgGreen).SprintFunc(),
	types.StatusAccepted:    color.New(color.FgGreen, color.Bold).SprintFunc(),
	types.StatusRejected:    color.New(color.FgRed).SprintFunc(),
	types.StatusWithdrawn:   color.New(color.FgHiBlack).SprintFunc(),
	types.StatusExpired:     color.New(color.FgRed, color.Faint).SprintFunc(),
}

// StatusColor renders a status in its pipeline color.
func StatusColor(s types.ApplicationStatus) string {
	if paint, ok := statusColors[s]; ok {
		return paint(string(s))
	}
	return string(s)
}

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Out returns the writer the printer renders to.
func (p *Printer) Out() io.Writer {
	return p.out
}

//nolint:errcheck // writing to the terminal; errors are not recoverable
func (p *Printer) println(a ...interface{}) {
	fmt.Fprintln(p.out, a...)
}

//nolint:errcheck // writing to the terminal; errors are not recoverable
func (p *Printer) printf(format string, a ...interface{}) {
	fmt.Fprintf(p.out, format, a...)
}

// Success prints a green confirmation line.
func (p *Printer) Success(format string, a ...interface{}) {
	p.println(green(fmt.Sprintf(format, a...)))
}

// Warn prints a yellow notice.
func (p *Printer) Warn(format string, a ...interface{}) {
	p.println(yellow(fmt.Sprintf(format, a...)))
}

// Fail prints a red notice. It is for outcomes that are not errors, like an id that matches nothing.
func (p *Printer) Fail(format string, a ...interface{}) {
	p.println(red(fmt.Sprintf(format, a...)))
}

// Hint prints a dimmed follow-up suggestion.
func (p *Printer) Hint(format string, a ...interface{}) {
	p.println(dim(fmt.Sprintf(format, a...)))
}

// printBox prints a formatted box with a title and content
func (p *Printer) printBox(heading string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	p.printf("┌%s┐\n", border)
	p.printf("│ %-*s │\n", boxWidth-4, heading)
	p.printf("├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		p.printf("│ %-*s │\n", boxWidth-4, line)
	}

	p.printf("└%s┘\n", border)
}

// PrintOpportunities outputs one block per opportunity.
func (p *Printer) PrintOpportunities(opps []types.Opportunity) {
	p.println(bold(fmt.Sprintf("\nFound %d opportunities:\n", len(opps))))

	for i := range opps {
		o := &opps[i]
		p.println(title(o.Name))
		p.printf("  %s %s | %s %s\n", dim("Type:"), o.Type, dim("Deadline:"), FormatDate(o.Deadline, "Rolling"))
		p.printf("  %s %s | %s %s\n", dim("Funding:"), FormatFunding(o.FundingAmount), dim("Equity:"), FormatEquity(o.EquityTaken))
		if len(o.FocusAreas) > 0 {
			areas := o.FocusAreas
			if len(areas) > maxFocusAreas {
				areas = areas[:maxFocusAreas]
			}
			p.printf("  %s %s\n", dim("Focus:"), strings.Join(areas, ", "))
		}
		if o.URL != "" {
			p.printf("  %s %s\n", dim("URL:"), o.URL)
		}
		p.println()
	}
}

// PrintSearchResults outputs the opportunities matching keyword, one per line.
func (p *Printer) PrintSearchResults(keyword string, opps []types.Opportunity) {
	p.println(bold(fmt.Sprintf("\nFound %d matches for %q:\n", len(opps), keyword)))
	for _, o := range opps {
		p.printf("  %s (%s)\n", cyan(o.Name), o.Type)
	}
}

// PrintProducts outputs a short block per product.
func (p *Printer) PrintProducts(products []types.Product) {
	p.println(bold(fmt.Sprintf("\nYour products (%d):\n", len(products))))

	for i := range products {
		prod := &products[i]
		p.println(title(prod.Name))
		if prod.Tagline != "" {
			p.printf("  %s\n", prod.Tagline)
		}
		p.printf("  %s %s | %s %s\n", dim("Stage:"), orDefault(string(prod.Stage), "Not set"), dim("Team:"), formatOptionalInt(prod.TeamSize))
		if len(prod.Industries) > 0 {
			p.printf("  %s %s\n", dim("Industries:"), strings.Join(prod.Industries, ", "))
		}
		if summary := tractionSummary(prod.Traction); summary != "" {
			p.printf("  %s %s\n", dim("Traction:"), summary)
		}
		if prod.Website != "" {
			p.printf("  %s %s\n", dim("Website:"), prod.Website)
		}
		p.println()
	}
}

// PrintProduct outputs every detail of one product.
func (p *Printer) PrintProduct(prod *types.Product) {
	if prod == nil {
		return
	}

	var sb strings.Builder
	if prod.Tagline != "" {
		sb.WriteString(prod.Tagline + "\n\n")
	}
	if prod.Description != "" {
		sb.WriteString(prod.Description + "\n\n")
	}

	sb.WriteString(fmt.Sprintf("Stage:        %s\n", orDefault(string(prod.Stage), "Not set")))
	sb.WriteString(fmt.Sprintf("Team size:    %s\n", formatOptionalInt(prod.TeamSize)))
	sb.WriteString(fmt.Sprintf("Founded:      %s\n", orDefault(prod.Founded, "?")))
	sb.WriteString(fmt.Sprintf("Incorporated: %s\n", yesNo(prod.Incorporated)))
	sb.WriteString(fmt.Sprintf("Location:     %s\n", orDefault(prod.Location, "Not set")))
	sb.WriteString(fmt.Sprintf("Remote:       %s\n", yesNo(prod.Remote)))
	if len(prod.Industries) > 0 {
		sb.WriteString(fmt.Sprintf("Industries:   %s\n", strings.Join(prod.Industries, ", ")))
	}
	if len(prod.FocusAreas) > 0 {
		sb.WriteString(fmt.Sprintf("Focus areas:  %s\n", strings.Join(prod.FocusAreas, ", ")))
	}
	if prod.Website != "" {
		sb.WriteString(fmt.Sprintf("Website:      %s\n", prod.Website))
	}

	if t := prod.Traction; t != nil {
		sb.WriteString("\nTraction:\n")
		if t.Users != nil {
			sb.WriteString(fmt.Sprintf("  Users:      %s\n", FormatNumber(*t.Users)))
		}
		if t.MRR != nil {
			sb.WriteString(fmt.Sprintf("  MRR:        $%s\n", FormatNumber(*t.MRR)))
		}
		if t.Revenue != nil {
			sb.WriteString(fmt.Sprintf("  Revenue:    $%s\n", FormatNumber(*t.Revenue)))
		}
		if t.Growth != "" {
			sb.WriteString(fmt.Sprintf("  Growth:     %s\n", t.Growth))
		}
		if len(t.Highlights) > 0 {
			sb.WriteString(fmt.Sprintf("  Highlights: %s\n", strings.Join(t.Highlights, ", ")))
		}
	}

	sb.WriteString(fmt.Sprintf("\nID:      %s\n", prod.ID))
	sb.WriteString(fmt.Sprintf("Created: %s", prod.CreatedAt.Format(time.RFC3339)))

	p.printBox(strings.ToUpper(prod.Name), sb.String())
}

// PrintApplications outputs applications grouped by status with resolved names.
func (p *Printer) PrintApplications(groups []pipeline.StatusGroup, names *pipeline.Names) {
	total := 0
	for _, g := range groups {
		total += len(g.Applications)
	}
	p.println(bold(fmt.Sprintf("\nApplication Pipeline (%d):\n", total)))

	for _, g := range groups {
		p.println(StatusColor(g.Status) + fmt.Sprintf(" (%d)", len(g.Applications)))
		for i := range g.Applications {
			a := &g.Applications[i]
			p.printf("  %s → %s  %s\n", cyan(names.Opportunity(a)), names.Product(a), dim(ShortID(a.ID.String())))
			p.printf("    %s %s\n", dim("Deadline:"), FormatDate(a.Deadline, "Not set"))
			if a.FitScore != nil {
				p.printf("    %s %d%%\n", dim("Fit score:"), *a.FitScore)
			}
			if n := len(a.FollowUps); n > 0 {
				last := a.FollowUps[n-1]
				p.printf("    %s %s %s\n", dim("Last follow-up:"), last.Date.Format("2006-01-02"), last.Summary)
			}
		}
		p.println()
	}
}

// PrintStats outputs the pipeline summary as a table.
func (p *Printer) PrintStats(stats pipeline.Stats) {
	p.println(bold("\nApplication Statistics:\n"))

	t := table.NewWriter()
	t.SetOutputMirror(p.out)
	t.AppendHeader(table.Row{"Status", "Count"})
	for _, s := range types.Statuses {
		if n := stats.ByStatus[s]; n > 0 {
			t.AppendRow(table.Row{StatusColor(s), n})
		}
	}
	t.AppendFooter(table.Row{"Total", stats.Total})
	t.Render()

	p.println()
	p.printf("Active pipeline: %s\n", cyan(stats.Active))
	p.printf("Accepted: %s\n", green(stats.Accepted))
	p.printf("Rejected: %s\n", red(stats.Rejected))
	if stats.SuccessRate != nil {
		p.printf("Success rate: %s\n", yellow(fmt.Sprintf("%d%%", *stats.SuccessRate)))
	}
}

// PrintStatusChange reports an application's move between statuses.
func (p *Printer) PrintStatusChange(from, to types.ApplicationStatus) {
	p.printf("%s %s → %s\n", green("Updated status:"), StatusColor(from), StatusColor(to))
}

// ShortID returns the first block of an id, enough to address an application by prefix.
func ShortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// FormatDate renders an optional timestamp as a calendar date.
func FormatDate(t *time.Time, fallback string) string {
	if t == nil {
		return fallback
	}
	return t.Format("2006-01-02")
}

// FormatFunding renders a funding range as "$min-max", with "?" for an open end.
func FormatFunding(f *types.FundingRange) string {
	if f == nil {
		return "Varies"
	}
	prefix := "$"
	if f.Currency != "" && f.Currency != types.DefaultCurrency {
		prefix = f.Currency + " "
	}
	return prefix + formatOptionalFloat(f.Min) + "-" + formatOptionalFloat(f.Max)
}

// FormatEquity renders an equity range as "min%-max%".
func FormatEquity(e *types.EquityRange) string {
	if e == nil {
		return "N/A"
	}
	return formatOptionalFloat(e.Min) + "%-" + formatOptionalFloat(e.Max) + "%"
}

// FormatNumber renders a number with thousands separators and at most two decimals.
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if dot := strings.IndexByte(s, '.'); dot >= 0 && len(s)-dot > 3 {
		s = strconv.FormatFloat(v, 'f', 2, 64)
	}

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac := s, ""
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		whole, frac = s[:dot], s[dot:]
	}

	var sb strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	return sign + sb.String() + frac
}

func formatOptionalFloat(v *float64) string {
	if v == nil {
		return "?"
	}
	return FormatNumber(*v)
}

func formatOptionalInt(v *int) string {
	if v == nil {
		return "?"
	}
	return strconv.Itoa(*v)
}

func tractionSummary(t *types.Traction) string {
	if t == nil {
		return ""
	}
	parts := []string{}
	if t.Users != nil {
		parts = append(parts, FormatNumber(*t.Users)+" users")
	}
	if t.MRR != nil {
		parts = append(parts, "$"+FormatNumber(*t.MRR)+" MRR")
	}
	if t.Growth != "" {
		parts = append(parts, t.Growth)
	}
	return strings.Join(parts, " | ")
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
