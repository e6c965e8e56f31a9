package domain

import "testing"

func TestEquipmentCode(t *testing.T) {
	cases := []struct {
		id   int64
		want string
	}{
		{1, "EQ-0001"},
		{42, "EQ-0042"},
		{9999, "EQ-9999"},
		{10000, "EQ-10000"},
	}
	for _, tc := range cases {
		if got := EquipmentCode(tc.id); got != tc.want {
			t.Errorf("EquipmentCode(%d) = %q, want %q", tc.id, got, tc.want)
		}
	}
}

func TestEquipmentStatus_IsValid(t *testing.T) {
	for _, s := range []EquipmentStatus{StatusReceived, StatusCleaning, StatusFinished, StatusReturned} {
		if !s.IsValid() {
			t.Errorf("%q must be valid", s)
		}
	}
	for _, s := range []EquipmentStatus{"", "received", "SHIPPED", "DONE"} {
		if s.IsValid() {
			t.Errorf("%q must be invalid", s)
		}
	}
}

func TestDefaultStepNames(t *testing.T) {
	names := DefaultStepNames()
	if len(names) != 6 {
		t.Fatalf("expected 6 steps, got %d", len(names))
	}
	if names[0] != StepReceiving {
		t.Errorf("first step must be %q, got %q", StepReceiving, names[0])
	}
	seen := make(map[string]bool)
	for _, n := range names {
		if seen[n] {
			t.Errorf("duplicate step name %q", n)
		}
		seen[n] = true
	}
}
