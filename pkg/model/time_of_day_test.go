package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{"09:00", 9 * 60, false},
		{"22:30", 22*60 + 30, false},
		{" 00:00 ", 0, false},
		{"24:00", 0, true},
		{"9am", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseTimeOfDay(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseTimeOfDay(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestTimeOfDay_On(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tehran")
	if err != nil {
		t.Skipf("time zone database unavailable: %v", err)
	}
	day := time.Date(2030, time.May, 1, 23, 59, 0, 0, loc)

	got := MustTimeOfDay("20:15").On(day)
	want := time.Date(2030, time.May, 1, 20, 15, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("On() = %s, want %s", got, want)
	}
}

func TestTimeOfDay_JSON(t *testing.T) {
	var body struct {
		Opening TimeOfDay `json:"opening_time"`
	}
	if err := json.Unmarshal([]byte(`{"opening_time":"08:45"}`), &body); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if body.Opening.String() != "08:45" {
		t.Errorf("expected 08:45, got %s", body.Opening)
	}

	out, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(out) != `{"opening_time":"08:45"}` {
		t.Errorf("unexpected JSON %s", out)
	}

	if err := json.Unmarshal([]byte(`{"opening_time":"8 o'clock"}`), &body); err == nil {
		t.Errorf("expected an error for a malformed time of day")
	}
}

func TestRestaurant_Accepts(t *testing.T) {
	r := &Restaurant{Opening: MustTimeOfDay("09:00"), Closing: MustTimeOfDay("22:00")}

	if !r.Accepts(MustTimeOfDay("09:00"), 2*time.Hour) {
		t.Errorf("opening time should be accepted")
	}
	if !r.Accepts(MustTimeOfDay("20:00"), 2*time.Hour) {
		t.Errorf("closing minus duration should be accepted")
	}
	if r.Accepts(MustTimeOfDay("20:01"), 2*time.Hour) {
		t.Errorf("a reservation running past closing should be rejected")
	}
	if r.Accepts(MustTimeOfDay("08:59"), 2*time.Hour) {
		t.Errorf("a reservation before opening should be rejected")
	}
}
