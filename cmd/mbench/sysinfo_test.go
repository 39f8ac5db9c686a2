package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"mbench/internal/sysinfo"
)

func TestSysinfoCommandRegistered(t *testing.T) {
	assert.Equal(t, "sysinfo", sysinfoCmd.Name())

	found := false
	for _, c := range rootCmd.Commands() {
		if c.Name() == "sysinfo" {
			found = true
		}
	}
	assert.True(t, found, "sysinfo registered on the root command")
}

func TestRenderTemp(t *testing.T) {
	assert.Contains(t, renderTemp(55.0, 70), "55.0 C")
	assert.NotContains(t, renderTemp(55.0, 70), "limit")

	assert.Contains(t, renderTemp(73.5, 70), "near limit")
	assert.Contains(t, renderTemp(92.0, 70), "throttling likely")
	assert.Contains(t, renderTemp(-1, 70), "unavailable")
}

func TestPrintStatus(t *testing.T) {
	st := sysinfo.Status{
		Temperature: 48.0,
		LoadAverage: 0.42,
		MemoryKB:    123456,
		Frequencies: []uint64{1800, 2400, 0},
	}

	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	printStatus(cmd, st, 70)

	out := buf.String()
	assert.Contains(t, out, "48.0 C")
	assert.Contains(t, out, "Load average (1m): 0.42")
	assert.Contains(t, out, "Memory in use: 123456 kB")
	assert.Contains(t, out, "Online cores: 3")
	assert.Contains(t, out, "core 1: 2400 MHz")
	assert.Contains(t, out, "frequency unavailable")
	assert.Equal(t, 1, strings.Count(out, "frequency unavailable"))
}
