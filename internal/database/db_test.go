package database

import (
	"strings"
	"testing"
)

func TestDSN(t *testing.T) {
	dsn := DSN(Params{User: "app", Pass: "s3cret", Host: "db", Port: "3306", Name: "banquet"})
	if !strings.HasPrefix(dsn, "app:s3cret@tcp(db:3306)/banquet?") {
		t.Fatalf("unexpected dsn prefix: %s", dsn)
	}
	for _, want := range []string{"parseTime=true", "charset=utf8mb4"} {
		if !strings.Contains(dsn, want) {
			t.Errorf("dsn %s missing %s", dsn, want)
		}
	}
}

func TestDSNWithoutPassword(t *testing.T) {
	dsn := DSN(Params{User: "root", Host: "127.0.0.1", Port: "3306", Name: "banquet"})
	if !strings.HasPrefix(dsn, "root@tcp(127.0.0.1:3306)/banquet") {
		t.Fatalf("unexpected dsn: %s", dsn)
	}
}
