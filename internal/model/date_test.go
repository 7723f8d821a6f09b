package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.January, 15)

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `"2024-01-15"` {
		t.Errorf("expected \"2024-01-15\", got %s", data)
	}

	var parsed Date
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !parsed.Equal(d.Time) {
		t.Errorf("expected %v, got %v", d, parsed)
	}
}

func TestDateUnmarshalInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not_a_string", `20240115`},
		{"wrong_layout", `"15/01/2024"`},
		{"rfc3339", `"2024-01-15T00:00:00Z"`},
		{"empty", `""`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			var d Date
			if err := json.Unmarshal([]byte(test.input), &d); err == nil {
				t.Fatalf("expected error for %s", test.input)
			}
		})
	}
}

func TestDateScan(t *testing.T) {
	var d Date
	now := time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC)

	if err := d.Scan(now); err != nil {
		t.Fatalf("scan time.Time: %v", err)
	}
	if !d.Equal(now) {
		t.Errorf("expected %v, got %v", now, d.Time)
	}

	if err := d.Scan("2024-03-04"); err != nil {
		t.Fatalf("scan string: %v", err)
	}
	if d.String() != "2024-03-04" {
		t.Errorf("expected 2024-03-04, got %s", d)
	}

	if err := d.Scan(42); err == nil {
		t.Error("expected error scanning int")
	}
}
