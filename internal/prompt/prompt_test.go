package prompt

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/chzyer/readline"
	"github.com/google/uuid"
	"github.com/jonathan/accelerate/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted answers each Readline call with the next line, then io.EOF.
type scripted struct {
	lines   []string
	prompts []string
	err     error
}

func (s *scripted) Readline() (string, error) {
	if len(s.lines) == 0 {
		if s.err != nil {
			return "", s.err
		}
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *scripted) SetPrompt(prompt string) { s.prompts = append(s.prompts, prompt) }
func (s *scripted) Close() error            { return nil }

func newScripted(lines ...string) (*Prompter, *scripted, *bytes.Buffer) {
	rl := &scripted{lines: lines}
	var out bytes.Buffer
	return NewWithReader(rl, &out), rl, &out
}

func TestInput(t *testing.T) {
	p, rl, _ := newScripted("  hello  ", "")

	got, err := p.Input("Greeting", "")
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	got, err = p.Input("Currency", "USD")
	require.NoError(t, err)
	assert.Equal(t, "USD", got)
	assert.Contains(t, rl.prompts[1], "Currency (USD)")
}

func TestRequired_Reprompts(t *testing.T) {
	p, rl, out := newScripted("", "   ", "Y Combinator")

	got, err := p.Required("Name")
	require.NoError(t, err)
	assert.Equal(t, "Y Combinator", got)
	assert.Len(t, rl.prompts, 3)
	assert.Contains(t, out.String(), "Name is required")
}

func TestAborted(t *testing.T) {
	p, _, _ := newScripted()
	_, err := p.Required("Name")
	assert.ErrorIs(t, err, ErrAborted)

	rl := &scripted{err: readline.ErrInterrupt}
	p = NewWithReader(rl, io.Discard)
	_, err = p.Confirm("Sure?", false)
	assert.ErrorIs(t, err, ErrAborted)
}

func TestSelect(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  int
	}{
		{name: "default", lines: []string{""}, want: 1},
		{name: "explicit", lines: []string{"3"}, want: 2},
		{name: "out of range then valid", lines: []string{"9", "abc", "1"}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _, out := newScripted(tt.lines...)
			got, err := p.Select("Type", []string{"accelerator", "grant", "angel"}, 1)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "2) grant")
		})
	}

	p, _, _ := newScripted("1")
	_, err := p.Select("Nothing", nil, 0)
	assert.Error(t, err)
}

func TestMultiSelect(t *testing.T) {
	p, _, _ := newScripted("7", "2, 1, 2")
	got, err := p.MultiSelect("Stages", []string{"idea", "pre-seed", "seed"})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 0}, got)

	p, _, _ = newScripted("")
	got, err = p.MultiSelect("Stages", []string{"idea"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		line string
		def  bool
		want bool
	}{
		{line: "", def: true, want: true},
		{line: "", def: false, want: false},
		{line: "y", def: false, want: true},
		{line: "YES", def: false, want: true},
		{line: "n", def: true, want: false},
	}
	for _, tt := range tests {
		p, _, _ := newScripted(tt.line)
		got, err := p.Confirm("Remote?", tt.def)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "answer %q default %v", tt.line, tt.def)
	}
}

func TestNumbers(t *testing.T) {
	p, _, _ := newScripted("150", "80", "", "1,500,000", "x", "2.5")

	score, err := p.Int("Fit score", 0, 100)
	require.NoError(t, err)
	require.NotNil(t, score)
	assert.Equal(t, 80, *score)

	none, err := p.Int("Team size", 1, 10)
	require.NoError(t, err)
	assert.Nil(t, none)

	amount, err := p.Float("Funding")
	require.NoError(t, err)
	assert.Equal(t, 1500000.0, *amount)

	pct, err := p.Float("Equity")
	require.NoError(t, err)
	assert.Equal(t, 2.5, *pct)
}

func TestDate(t *testing.T) {
	p, _, out := newScripted("June 30", "2025-06-30", "")

	d, err := p.Date("Deadline")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.True(t, d.Equal(time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)))
	assert.Contains(t, out.String(), "2025-06-30")

	d, err = p.Date("Deadline")
	require.NoError(t, err)
	assert.Nil(t, d)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"AI", "fintech"}, SplitList(" AI, ,fintech ,"))
	assert.Equal(t, []string{}, SplitList(""))
}

func TestOpportunityForm(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	p, _, _ := newScripted(
		"Y Combinator",                // name
		"1",                           // type: accelerator
		"Seed accelerator",            // description
		"https://www.ycombinator.com", // url
		"",                            // application url
		"125000",                      // funding min
		"500000",                      // funding max
		"7",                           // equity min
		"",                            // equity max
		"2025-09-01",                  // deadline
		"1,2",                         // stages
		"AI, devtools",                // focus areas
		"San Francisco",               // location
		"",                            // remote (default no)
	)

	o, err := p.Opportunity(now)
	require.NoError(t, err)
	assert.Equal(t, "Y Combinator", o.Name)
	assert.Equal(t, types.TypeAccelerator, o.Type)
	assert.NotEqual(t, uuid.Nil, o.ID)
	assert.True(t, o.CreatedAt.Equal(now))
	require.NotNil(t, o.FundingAmount)
	assert.Equal(t, 125000.0, *o.FundingAmount.Min)
	assert.Equal(t, "USD", o.FundingAmount.Currency)
	require.NotNil(t, o.EquityTaken)
	assert.Nil(t, o.EquityTaken.Max)
	assert.Equal(t, []types.Stage{types.StageIdea, types.StagePreSeed}, o.StagesAccepted)
	assert.Equal(t, []string{"AI", "devtools"}, o.FocusAreas)
	assert.False(t, o.Remote)
	assert.NoError(t, o.Validate())
}

func TestProductForm_WithTraction(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	p, _, _ := newScripted(
		"Acme",                 // name
		"Rockets for everyone", // tagline
		"",                     // description
		"3",                    // stage: seed
		"aerospace",            // industries
		"",                     // focus areas
		"4",                    // team size
		"2024",                 // founded
		"y",                    // incorporated
		"https://acme.example", // website
		"",                     // location
		"",                     // remote (default yes)
		"y",                    // add traction
		"1200",                 // users
		"8000",                 // mrr
		"",                     // revenue
		"15% MoM",              // growth
		"Signed NASA pilot",    // highlights
	)

	prod, err := p.Product(now)
	require.NoError(t, err)
	assert.Equal(t, types.StageSeed, prod.Stage)
	assert.Equal(t, 4, *prod.TeamSize)
	assert.True(t, prod.Incorporated)
	assert.True(t, prod.Remote)
	require.NotNil(t, prod.Traction)
	assert.Equal(t, 8000.0, *prod.Traction.MRR)
	assert.Nil(t, prod.Traction.Revenue)
	assert.Equal(t, []string{"Signed NASA pilot"}, prod.Traction.Highlights)
	assert.NoError(t, prod.Validate())
}

func TestApplicationForm(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	opps := []types.Opportunity{
		types.NewOpportunity("Techstars", types.TypeAccelerator, now),
		types.NewOpportunity("Y Combinator", types.TypeAccelerator, now),
	}
	products := []types.Product{types.NewProduct("Acme", now)}

	p, _, _ := newScripted("2", "", "2", "", "85", "strong fit")
	a, err := p.Application(opps, products, now)
	require.NoError(t, err)
	assert.Equal(t, opps[1].ID, a.OpportunityID)
	assert.Equal(t, products[0].ID, a.ProductID)
	assert.Equal(t, types.StatusResearching, a.Status)
	require.Len(t, a.StatusHistory, 1)
	assert.Equal(t, types.StatusResearching, a.StatusHistory[0].Status)
	assert.Equal(t, 85, *a.FitScore)
	assert.Equal(t, "strong fit", a.FitNotes)
	assert.Nil(t, a.Deadline)
}

func TestStatusChangeForm(t *testing.T) {
	p, rl, _ := newScripted("", "waiting on intro")

	patch, err := p.StatusChange(types.StatusDrafting)
	require.NoError(t, err)
	require.NotNil(t, patch.Status)
	assert.Equal(t, types.StatusDrafting, *patch.Status, "empty answer keeps the current status")
	assert.Equal(t, "waiting on intro", patch.StatusNote)
	assert.Contains(t, rl.prompts[0], "[3]")
}

func TestFollowUpForm(t *testing.T) {
	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	p, _, _ := newScripted("3", "Partner meeting", "Send data room", "2025-03-08")

	f, err := p.FollowUp(now)
	require.NoError(t, err)
	assert.Equal(t, types.FollowUpMeeting, f.Type)
	assert.Equal(t, "Partner meeting", f.Summary)
	assert.Equal(t, "Send data room", f.NextAction)
	require.NotNil(t, f.NextActionDate)
	assert.Equal(t, 8, f.NextActionDate.Day())

	p, _, _ = newScripted("", "Quick note", "")
	f, err = p.FollowUp(now)
	require.NoError(t, err)
	assert.Equal(t, types.FollowUpEmail, f.Type)
	assert.Nil(t, f.NextActionDate)
}
