package domain

import (
	"context"
	"time"
)

const ContextProfileKey = "performanceProfile"

func NewPerformanceProfile() *PerformanceProfile {
	return &PerformanceProfile{
		StartTime: time.Now(),
	}
}

type PerformanceProfileEvent struct {
	Name      string    `json:"name"`
	ElapsedMs int64     `json:"elapsedMs"`
	Time      time.Time `json:"-"`
}

// PerformanceProfile is a flat list of named checkpoints for one request.
// Each Add records the time since the previous checkpoint.
type PerformanceProfile struct {
	StartTime time.Time                 `json:"-"`
	Events    []PerformanceProfileEvent `json:"events"`
	TotalMs   int64                     `json:"totalMs"`
}

// GetPerformanceProfile pulls the request profile out of ctx. Returns nil
// when no profile was attached, so callers can profile optionally.
func GetPerformanceProfile(ctx context.Context) *PerformanceProfile {
	profile, ok := ctx.Value(ContextProfileKey).(*PerformanceProfile)
	if !ok {
		return nil
	}
	return profile
}

func (p *PerformanceProfile) Add(name string) {
	if p == nil {
		return
	}
	now := time.Now()
	elapsed := now.Sub(p.StartTime).Milliseconds()
	if len(p.Events) > 0 {
		elapsed = now.Sub(p.Events[len(p.Events)-1].Time).Milliseconds()
	}
	p.Events = append(p.Events, PerformanceProfileEvent{
		Name:      name,
		ElapsedMs: elapsed,
		Time:      now,
	})
}

func (p *PerformanceProfile) End() {
	if p == nil {
		return
	}
	p.TotalMs = time.Since(p.StartTime).Milliseconds()
}
