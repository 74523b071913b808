package forecast

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/andresuchdata/liquor-replenish/backend-go/internal/domain"
)

// stubModel returns a fixed estimate for every day and records the
// predicted ranges.
type stubModel struct {
	perDay float64
	ranges *[][2]time.Time
}

func (m *stubModel) Predict(start, end time.Time) []float64 {
	if m.ranges != nil {
		*m.ranges = append(*m.ranges, [2]time.Time{start, end})
	}
	var estimates []float64
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		estimates = append(estimates, m.perDay)
	}
	return estimates
}

type stubEngine struct {
	perDay float64
	err    error
	panics bool
	ranges *[][2]time.Time
}

func (e *stubEngine) Fit(series []domain.SalesPoint) (Model, error) {
	if e.panics {
		panic("numerical blow-up")
	}
	if e.err != nil {
		return nil, e.err
	}
	return &stubModel{perDay: e.perDay, ranges: e.ranges}, nil
}

func TestSparseSeriesFallsBackToZero(t *testing.T) {
	f := NewForecaster(&stubEngine{perDay: 100})

	d := f.MonthlyDemand(dailySeries(day(2024, time.June, 1), 1, 2, 3, 4), 2024, 7, 1)
	if d.Outcome != OutcomeFallback {
		t.Errorf("outcome = %s, want fallback", d.Outcome)
	}
	if d.Total != 0 {
		t.Errorf("demand = %v, want 0", d.Total)
	}
}

func TestEngineErrorDegradesToZero(t *testing.T) {
	f := NewForecaster(&stubEngine{err: errors.New("did not converge")})

	d := f.MonthlyDemand(dailySeries(day(2024, time.June, 1), 1, 2, 3, 4, 5), 2024, 7, 1)
	if d.Outcome != OutcomeFailed {
		t.Errorf("outcome = %s, want failed", d.Outcome)
	}
	if d.Total != 0 {
		t.Errorf("demand = %v, want 0", d.Total)
	}
	if d.Err == nil {
		t.Error("expected the engine error to be carried on the outcome")
	}
}

func TestEnginePanicIsContained(t *testing.T) {
	f := NewForecaster(&stubEngine{panics: true})

	d := f.MonthlyDemand(dailySeries(day(2024, time.June, 1), 1, 2, 3, 4, 5), 2024, 7, 1)
	if d.Outcome != OutcomeFailed {
		t.Errorf("outcome = %s, want failed", d.Outcome)
	}
	if d.Total != 0 {
		t.Errorf("demand = %v, want 0", d.Total)
	}
}

func TestMonthlyDemandSumsEveryCalendarDay(t *testing.T) {
	f := NewForecaster(&stubEngine{perDay: 2})

	// July has 31 days.
	d := f.MonthlyDemand(dailySeries(day(2024, time.June, 1), 1, 2, 3, 4, 5), 2024, 7, 1)
	if d.Outcome != OutcomeForecasted {
		t.Fatalf("outcome = %s, want forecasted", d.Outcome)
	}
	if math.Abs(d.Total-62) > 1e-9 {
		t.Errorf("demand = %v, want 62", d.Total)
	}
}

func TestDecemberHorizonRollsIntoNextYear(t *testing.T) {
	var ranges [][2]time.Time
	f := NewForecaster(&stubEngine{perDay: 1, ranges: &ranges})

	d := f.MonthlyDemand(dailySeries(day(2024, time.October, 1), 1, 2, 3, 4, 5), 2024, 12, 2)
	if d.Outcome != OutcomeForecasted {
		t.Fatalf("outcome = %s, want forecasted", d.Outcome)
	}
	if len(ranges) != 2 {
		t.Fatalf("expected 2 predicted months, got %d", len(ranges))
	}

	wantFirst := [2]time.Time{day(2024, time.December, 1), day(2024, time.December, 31)}
	wantSecond := [2]time.Time{day(2025, time.January, 1), day(2025, time.January, 31)}
	if !ranges[0][0].Equal(wantFirst[0]) || !ranges[0][1].Equal(wantFirst[1]) {
		t.Errorf("first month = %v..%v, want %v..%v", ranges[0][0], ranges[0][1], wantFirst[0], wantFirst[1])
	}
	if !ranges[1][0].Equal(wantSecond[0]) || !ranges[1][1].Equal(wantSecond[1]) {
		t.Errorf("second month = %v..%v, want %v..%v", ranges[1][0], ranges[1][1], wantSecond[0], wantSecond[1])
	}

	// 31 December days + 31 January days at 1 per day.
	if math.Abs(d.Total-62) > 1e-9 {
		t.Errorf("demand = %v, want 62", d.Total)
	}
}

func TestTwoMonthDemandEqualsSumOfSingleMonths(t *testing.T) {
	series := dailySeries(day(2024, time.April, 1), 3, 9, 4, 12, 7, 5, 11, 6, 8, 10)
	f := NewForecaster(NewTrendEngine())

	cumulative := f.MonthlyDemand(series, 2024, 6, 2)
	june := f.MonthlyDemand(series, 2024, 6, 1)
	july := f.MonthlyDemand(series, 2024, 7, 1)

	if cumulative.Outcome != OutcomeForecasted {
		t.Fatalf("outcome = %s, want forecasted", cumulative.Outcome)
	}
	if diff := math.Abs(cumulative.Total - (june.Total + july.Total)); diff > 1e-6 {
		t.Errorf("cumulative %v != %v + %v (diff %v)", cumulative.Total, june.Total, july.Total, diff)
	}
}
