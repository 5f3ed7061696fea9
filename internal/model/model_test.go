package model

import (
	"encoding/json"
	"testing"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    Status
		wantErr bool
	}{
		{"Not Started", StatusNotStarted, false},
		{"not-started", StatusNotStarted, false},
		{"In Progress", StatusInProgress, false},
		{"in-progress", StatusInProgress, false},
		{"done", StatusCompleted, false},
		{"Completed", StatusCompleted, false},
		{"banana", "", true},
	}
	for _, tt := range tests {
		got, err := ParseStatus(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseStatus(%q) error = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDateJSON(t *testing.T) {
	d, err := ParseDate("2026-03-15")
	if err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `"2026-03-15"` {
		t.Errorf("marshal = %s", data)
	}

	// servers commonly hand back full timestamps
	var back Date
	if err := json.Unmarshal([]byte(`"2026-03-15T00:00:00Z"`), &back); err != nil {
		t.Fatal(err)
	}
	if back.String() != "2026-03-15" {
		t.Errorf("round trip via RFC3339 = %s", back.String())
	}

	var task Task
	if err := json.Unmarshal([]byte(`{"_id":"t1","title":"x","projectId":"p1","status":"Completed"}`), &task); err != nil {
		t.Fatal(err)
	}
	if task.DueDate != nil {
		t.Errorf("absent dueDate should stay nil, got %v", task.DueDate)
	}
}
