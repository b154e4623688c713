package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestCompetenciaCmd(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"after closing", []string{"--date", "2024-11-10", "--closing-day", "5"}, "2024-12-01\n"},
		{"on closing day", []string{"--date", "2024-11-05", "--closing-day", "5"}, "2024-11-01\n"},
		{"december rolls over", []string{"--date", "2024-12-20", "--closing-day", "10"}, "2025-01-01\n"},
		{"clamped", []string{"--date", "2024-02-29", "--closing-day", "31"}, "2024-02-01\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, append([]string{"competencia"}, tt.args...)...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestCompetenciaCmd_Errors(t *testing.T) {
	_, err := run(t, "competencia", "--date", "2023-02-29", "--closing-day", "5")
	assert.Error(t, err)

	_, err = run(t, "competencia", "--date", "2023-02-28", "--closing-day", "0")
	assert.Error(t, err)

	_, err = run(t, "competencia", "--closing-day", "5")
	assert.Error(t, err)
}

func TestInstallmentsCmd(t *testing.T) {
	out, err := run(t, "installments", "--date", "2024-11-10", "--closing-day", "5", "--total", "1000.00", "--count", "3")
	require.NoError(t, err)

	var got []struct {
		Index       int    `json:"index"`
		Competencia string `json:"competencia"`
		Amount      string `json:"amount"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	require.Len(t, got, 3)
	assert.Equal(t, "2024-12-01", got[0].Competencia)
	assert.Equal(t, "333.34", got[0].Amount)
	assert.Equal(t, "2025-02-01", got[2].Competencia)
	assert.Equal(t, "333.33", got[2].Amount)

	out, err = run(t, "installments", "--date", "2024-11-10", "--closing-day", "5", "--total", "100", "--count", "3", "--remainder", "last")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "33.33", got[0].Amount)
	assert.Equal(t, "33.34", got[2].Amount)
}

func TestInstallmentsCmd_Errors(t *testing.T) {
	tests := [][]string{
		{"--date", "2024-11-10", "--closing-day", "5", "--total", "abc"},
		{"--date", "2024-11-10", "--closing-day", "5", "--total", "10.005"},
		{"--date", "2024-11-10", "--closing-day", "5", "--total", "100", "--count", "0"},
		{"--date", "2024-11-10", "--closing-day", "5", "--total", "100", "--remainder", "middle"},
	}
	for _, args := range tests {
		_, err := run(t, append([]string{"installments"}, args...)...)
		assert.Error(t, err, args)
	}
}

func TestCycleCmd(t *testing.T) {
	out, err := run(t, "cycle", "--competencia", "2024-12-01", "--closing-day", "5", "--due-day", "15")
	require.NoError(t, err)
	assert.Equal(t, "closing 2024-12-05\ndue     2024-12-15\n", out)

	out, err = run(t, "cycle", "--competencia", "2024-02", "--closing-day", "31", "--due-day", "10")
	require.NoError(t, err)
	assert.Equal(t, "closing 2024-02-29\ndue     2024-03-10\n", out)

	_, err = run(t, "cycle", "--competencia", "2024-12-01", "--closing-day", "5", "--due-day", "40")
	assert.Error(t, err)
}
