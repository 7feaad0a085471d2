package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/config"
	"github.com/ANNAMARONE/Kam-daay-backend-app/internal/domain"
)

func TestPrintEnvChecks(t *testing.T) {
	env := map[string]string{"JWT_SECRET": "super-secret-value", "PORT": " 3001", "DB_PASSWORD": ""}
	checks := config.CheckEnv(func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})

	var buf bytes.Buffer
	ok := printEnvChecks(&buf, checks)
	out := buf.String()

	assert.False(t, ok, "DB_HOST and others are missing")
	assert.NotContains(t, out, "super-secret-value")
	assert.Contains(t, out, "[hidden]")
	assert.Regexp(t, `PORT\s+whitespace \(warn\)`, out)
	assert.Regexp(t, `DB_PASSWORD\s+empty \(ok\)`, out)
	assert.Regexp(t, `DB_HOST\s+missing \(FAIL\)`, out)
}

func TestPrintCounts(t *testing.T) {
	counts := domain.NewSyncCounts()
	counts[domain.KindClients] = 3
	counts[domain.KindSales] = 2

	var buf bytes.Buffer
	printCounts(&buf, counts)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Len(t, lines, 9)
	assert.Regexp(t, `^clients\s+3$`, lines[0])
	assert.Regexp(t, `^total\s+5$`, lines[8])
}

func TestRootCommandWiring(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["serve"])
	assert.True(t, names["check-env"])
	assert.True(t, names["check-db"])
	assert.NotNil(t, checkDBCmd.Flags().Lookup("user"))
}
