package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"kartoteka/internal/marc"
	"kartoteka/internal/testsupport"
)

func TestCleanWritesOutputs(t *testing.T) {
	env := setupCLITestEnv(t)

	testsupport.WriteCSV(t,
		filepath.Join(env.cfg.Paths.DataRoot, testsupport.FolderCriticism, "recenzijas-33.csv"), ";",
		[]string{"AUTORS (100)", "RAKSTA NOSAUKUMS (245)", "PRIEKŠMETS - ŽANRS (655)", "RECENZĒTAIS IZDEVUMS (787)"},
		[]string{"$$aBērziņš, Jānis$$4aut", "$$aRecenzija", "$$aRecenzijas", "$$aKalns, Pēteris$$tDarbs"},
	)

	out, _, err := runCLI(t, []string{"clean", "--skip-preflight", "--dataset", "recenzijas-33"}, env.configPath)
	if err != nil {
		t.Fatalf("clean: %v", err)
	}
	requireContains(t, out, "1 kept")

	data, err := os.ReadFile(filepath.Join(env.cfg.Paths.CleanedDir, marc.CleanFile))
	if err != nil {
		t.Fatalf("read clean output: %v", err)
	}
	if !strings.Contains(string(data), "Jānis Bērziņš") {
		t.Fatalf("clean output missing flipped author:\n%s", data)
	}
}

func TestCleanUnknownDataset(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, _, err := runCLI(t, []string{"clean", "--skip-preflight", "--dataset", "nav-tads"}, env.configPath); err == nil {
		t.Fatal("expected error for unknown dataset")
	}
}
