package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meenmo/cfschedule/cmd/cashflows/internal/dates"
	"github.com/meenmo/cfschedule/cmd/cashflows/internal/fixedleg"
)

const legs = `
legs:
  - name: demo
    preset: WEEKENDS-FIXED-SEMI
    effective_date: 2014-09-12
    maturity_date: 2021-09-12
    notional: 100000000
    rate: 0.015
    direction: PAY
`

func TestRun_Fixed(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	code := run([]string{"fixed"}, strings.NewReader(legs), &stdout, &stderr)
	require.Equal(t, 0, code, stdout.String())

	var out fixedleg.Output
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	require.Len(t, out.Legs, 1)

	leg := out.Legs[0]
	assert.Equal(t, "demo", leg.Name)
	assert.Equal(t, "USD", leg.Currency)
	require.Len(t, leg.CashFlows, 14)
	assert.Equal(t, "-750000", leg.CashFlows[0].Amount.String())
	assert.Equal(t, "2014-09-16", leg.CashFlows[0].PaymentDate)
	assert.True(t, strings.HasPrefix(leg.Total, "-"))
	assert.Empty(t, stderr.String())
}

func TestRun_FixedWithHolidayFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	holidays := filepath.Join(dir, "holidays.yaml")
	require.NoError(t, os.WriteFile(holidays, []byte("calendars:\n  - id: CLITEST\n    holidays: [\"2015-03-12\"]\n"), 0o644))
	input := filepath.Join(dir, "legs.yaml")
	require.NoError(t, os.WriteFile(input, []byte(legs+"    calendar: CLITEST\n"), 0o644))

	var stdout, stderr bytes.Buffer
	code := run([]string{"fixed", "-input", input, "-holidays", holidays, "-v"}, strings.NewReader(""), &stdout, &stderr)
	require.Equal(t, 0, code, stdout.String())

	var out fixedleg.Output
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	assert.Equal(t, "2015-03-13", out.Legs[0].CashFlows[0].AccrualEndDate)
	assert.Contains(t, stderr.String(), "schedule generated")
}

func TestRun_FixedErrors(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	code := run([]string{"fixed"}, strings.NewReader("legs: []"), &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout.String(), `"error":`)

	stdout.Reset()
	code = run([]string{"fixed", "-pg-calendars", "KRW"}, strings.NewReader(legs), &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout.String(), "-pg-dsn")
}

func TestRun_Dates(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	code := run([]string{"dates", "-start", "2020-01-15", "-end", "2021-03-01", "-frequency", "6M", "-stub", "short_end"}, nil, &stdout, &stderr)
	require.Equal(t, 0, code, stdout.String())

	var out dates.Output
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &out))
	assert.Equal(t, []string{"2020-01-15", "2020-07-15", "2021-01-15", "2021-03-01"}, out.Dates)
	assert.Equal(t, 3, out.Periods)

	stdout.Reset()
	code = run([]string{"dates", "-start", "2020-01-15", "-end", "2021-03-01"}, nil, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout.String(), "stub NONE")
}

func TestRun_Usage(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	assert.Equal(t, 2, run(nil, nil, &stdout, &stderr))
	assert.Equal(t, 2, run([]string{"npv"}, nil, &stdout, &stderr))
	assert.Contains(t, stderr.String(), `unknown command "npv"`)
	assert.Equal(t, 0, run([]string{"help"}, nil, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "Usage: cashflows")
}
