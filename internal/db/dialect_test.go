package db

import "testing"

func TestDialectFor(t *testing.T) {
	tests := []struct {
		in         string
		driverName string
		wantErr    bool
	}{
		{in: "sqlite3", driverName: "sqlite3"},
		{in: "sqlite", driverName: "sqlite"},
		{in: " Postgres ", driverName: "pgx"},
		{in: "mysql", driverName: "mysql"},
		{in: "mssql", driverName: "mssql"},
		{in: "oracle", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := DialectFor(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("DialectFor(%q) error = nil, want non-nil", tt.in)
				}
				return
			}
			if err != nil {
				t.Fatalf("DialectFor(%q) error = %v", tt.in, err)
			}
			if d.DriverName != tt.driverName {
				t.Errorf("DriverName = %q, want %q", d.DriverName, tt.driverName)
			}
		})
	}
}

func TestRebind(t *testing.T) {
	const q = `SELECT date, prcp FROM measurement WHERE date BETWEEN ? AND ? AND station <> '?'`

	sqlite, _ := DialectFor("sqlite3")
	if got := sqlite.Rebind(q); got != q {
		t.Errorf("sqlite Rebind changed query: %q", got)
	}

	pg, _ := DialectFor("postgres")
	want := `SELECT date, prcp FROM measurement WHERE date BETWEEN $1 AND $2 AND station <> '?'`
	if got := pg.Rebind(q); got != want {
		t.Errorf("postgres Rebind:\n got  %q\n want %q", got, want)
	}
}
