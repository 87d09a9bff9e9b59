package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rkotecha/tilebill-backend/pkg/migrate"
)

func TestBillsMigrationContainsSchemas(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_calculation_bills.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no bills migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS calculation_bills",
		"CREATE TABLE IF NOT EXISTS calculation_bill_items",
		"CREATE INDEX IF NOT EXISTS idx_calculation_bills_owner",
		"CREATE INDEX IF NOT EXISTS idx_calculation_bills_created_at",
		"CREATE INDEX IF NOT EXISTS idx_calculation_bill_items_bill",
		"ON DELETE CASCADE",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestProductsMigrationContainsSchemas(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_products_table.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no products migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS products",
		"CREATE TABLE IF NOT EXISTS tiles_details",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_tiles_details_product",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestMigrationsDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("migrations dir invalid: %v", err)
	}
}
