package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arnavshah/freewindow-api-go/pkg/availability"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, k := range []string{"WINDOW_START", "WINDOW_END", "SCAN_STEP", "DAYS"} {
		t.Setenv(k, "")
	}
	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFind_Text(t *testing.T) {
	path := writeFile(t, "plan.csv", "Person,Day,Start,End\n"+
		"X,Monday,09:00,10:00\n"+
		"Y,Monday,09:30,11:00\n"+
		"X,Tuesday,8,18\n")

	out, err := runCLI(t, "find", path, "--days", "Monday,Tuesday")
	require.NoError(t, err)
	assert.Equal(t,
		"Monday: 08:00 - 09:00, 11:00 - 18:00\n"+
			"Tuesday: no common free time; best alternative 1 of 2 free: 08:00 - 18:00\n",
		out)
}

func TestFind_WindowFlags(t *testing.T) {
	path := writeFile(t, "plan.csv", "Person,Day,Start,End\nX,Monday,09:00,10:00\n")

	out, err := runCLI(t, "find", path, "--days", "Monday", "--start", "9", "--end", "12")
	require.NoError(t, err)
	assert.Equal(t, "Monday: 10:00 - 12:00\n", out)

	_, err = runCLI(t, "find", path, "--start", "12", "--end", "9")
	assert.Error(t, err)
}

func TestFind_EmptyFile(t *testing.T) {
	path := writeFile(t, "plan.csv", "Person,Day,Start,End\n")
	_, err := runCLI(t, "find", path)
	assert.Error(t, err)
}

func TestFind_GermanTimetableDefaultDays(t *testing.T) {
	path := writeFile(t, "stundenplan.csv", "Person;Tag;Start;Ende\n"+
		"Anna;Montag;08:00;18:00\n"+
		"Ben;Montag;09:00;10:00\n")

	out, err := runCLI(t, "find", path)
	require.NoError(t, err)
	assert.Equal(t,
		"Monday: no common free time; best alternative 1 of 2 free: 08:00 - 09:00, 10:00 - 18:00\n"+
			"Tuesday: 08:00 - 18:00\n"+
			"Wednesday: 08:00 - 18:00\n"+
			"Thursday: 08:00 - 18:00\n"+
			"Friday: 08:00 - 18:00\n",
		out)
}

func TestFind_NoRecordOnRequestedDays(t *testing.T) {
	path := writeFile(t, "stundenplan.csv", "Person;Tag;Start;Ende\nAnna;Samstag;08:00;18:00\n")
	_, err := runCLI(t, "find", path)
	assert.ErrorIs(t, err, availability.ErrNoMatchingDays)
}
