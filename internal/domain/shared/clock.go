package shared

import "time"

// Clock is an abstraction for wall-clock time, allowing time to be mocked in tests
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the actual system time
type RealClock struct{}

// Now returns the current system time in UTC
func (r *RealClock) Now() time.Time {
	return time.Now().UTC()
}

// NewRealClock creates a RealClock instance
func NewRealClock() Clock {
	return &RealClock{}
}

// MockClock implements Clock with a controllable time for testing
type MockClock struct {
	CurrentTime time.Time
}

// Now returns the mock's current time
func (m *MockClock) Now() time.Time {
	return m.CurrentTime
}

// Advance moves the mock clock forward by the given duration
func (m *MockClock) Advance(d time.Duration) {
	m.CurrentTime = m.CurrentTime.Add(d)
}

// NewMockClock creates a MockClock starting at the given time
func NewMockClock(startTime time.Time) *MockClock {
	if startTime.IsZero() {
		startTime = time.Date(2084, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	return &MockClock{CurrentTime: startTime}
}

// HourSource reports the current simulated campaign hour
type HourSource interface {
	Hour() int64
}

// HoursPerDay is the length of a campaign day
const HoursPerDay = 24

// CampaignClock counts simulated campaign hours. Production advances once per hour.
type CampaignClock struct {
	hour int64
}

// NewCampaignClock starts a campaign clock at hour
func NewCampaignClock(hour int64) *CampaignClock {
	if hour < 0 {
		hour = 0
	}
	return &CampaignClock{hour: hour}
}

// Hour returns the elapsed campaign hours
func (c *CampaignClock) Hour() int64 {
	return c.hour
}

// Day returns the campaign day, starting at 0
func (c *CampaignClock) Day() int64 {
	return c.hour / HoursPerDay
}

// HourOfDay returns the hour within the current day
func (c *CampaignClock) HourOfDay() int64 {
	return c.hour % HoursPerDay
}

// Advance moves the campaign forward by one hour and returns the new hour
func (c *CampaignClock) Advance() int64 {
	c.hour++
	return c.hour
}
