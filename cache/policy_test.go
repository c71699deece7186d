package cache

import (
	"testing"
	"time"
)

func TestPolicy_EffectiveTTL(t *testing.T) {
	tests := []struct {
		name      string
		policy    Policy
		requested time.Duration
		want      time.Duration
	}{
		{"default applies", Policy{DefaultTTL: 5 * time.Minute, MaxTTL: 10 * time.Minute}, 0, 5 * time.Minute},
		{"negative uses default", Policy{DefaultTTL: 5 * time.Minute}, -time.Second, 5 * time.Minute},
		{"request honored", Policy{DefaultTTL: 5 * time.Minute, MaxTTL: 10 * time.Minute}, 3 * time.Minute, 3 * time.Minute},
		{"clamped to max", Policy{DefaultTTL: 5 * time.Minute, MaxTTL: 10 * time.Minute}, 15 * time.Minute, 10 * time.Minute},
		{"no expiry", Policy{}, 0, 0},
		{"no expiry bounded by max", Policy{MaxTTL: time.Hour}, 0, time.Hour},
		{"request without max", Policy{}, 2 * time.Hour, 2 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.policy.EffectiveTTL(tt.requested); got != tt.want {
				t.Errorf("EffectiveTTL(%v) = %v, want %v", tt.requested, got, tt.want)
			}
		})
	}
}

func TestPolicy_DefaultPolicy(t *testing.T) {
	p := DefaultPolicy()

	if p.DefaultTTL != 5*time.Minute {
		t.Errorf("DefaultPolicy().DefaultTTL = %v, want %v", p.DefaultTTL, 5*time.Minute)
	}
	if p.MaxTTL != 1*time.Hour {
		t.Errorf("DefaultPolicy().MaxTTL = %v, want %v", p.MaxTTL, 1*time.Hour)
	}
}

func TestPolicy_PersistentPolicy(t *testing.T) {
	p := PersistentPolicy()
	if p.DefaultTTL != 0 || p.MaxTTL != 0 {
		t.Errorf("PersistentPolicy() = %+v, want zero TTLs", p)
	}
}
