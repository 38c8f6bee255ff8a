package models

import "testing"

func TestDrivingPercent(t *testing.T) {
	cases := []struct {
		name   string
		hours  int
		target int
		want   int
	}{
		{"partial", 15, 20, 75},
		{"zero hours", 0, 20, 0},
		{"complete", 20, 20, 100},
		{"over target is capped", 25, 20, 100},
		{"zero target", 10, 0, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := Progress{DrivingHours: tc.hours, TargetHours: tc.target}
			if got := p.DrivingPercent(); got != tc.want {
				t.Errorf("DrivingPercent() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestCodePercent(t *testing.T) {
	p := Progress{CodeScore: 36}
	if got := p.CodePercent(); got != 90 {
		t.Errorf("CodePercent() = %d, want 90", got)
	}

	p.CodeScore = 45
	if got := p.CodePercent(); got != 100 {
		t.Errorf("CodePercent() above max = %d, want 100", got)
	}
}

func TestCodeReady(t *testing.T) {
	// Порог готовности: 35 баллов из 40.
	cases := []struct {
		score int
		want  bool
	}{
		{34, false},
		{35, true},
		{36, true},
		{0, false},
	}

	for _, tc := range cases {
		p := Progress{CodeScore: tc.score}
		if got := p.CodeReady(); got != tc.want {
			t.Errorf("CodeReady() with score %d = %v, want %v", tc.score, got, tc.want)
		}
	}
}

func TestNewStudentProgress(t *testing.T) {
	p := NewStudentProgress()

	if p.TargetHours != DefaultTargetHours {
		t.Errorf("TargetHours = %d, want %d", p.TargetHours, DefaultTargetHours)
	}
	if p.DrivingHours != 0 || p.CodeScore != 0 {
		t.Errorf("new progress must start from zero, got hours=%d score=%d", p.DrivingHours, p.CodeScore)
	}
	if p.Maneuvers != (Maneuvers{}) {
		t.Errorf("new progress must have no maneuvers validated, got %+v", p.Maneuvers)
	}
}
