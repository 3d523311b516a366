package api_test

import "context"

// captureNotifier records notification calls so tests can assert on the
// events a service fires without a live ntfy endpoint.
type captureNotifier struct {
	shiftPositions []string
	shiftHours     []float64
	auditTiers     []string
	errorContexts  []string
	testCalls      int
}

func (c *captureNotifier) NotifyShiftRecorded(_ context.Context, position string, hours float64) error {
	c.shiftPositions = append(c.shiftPositions, position)
	c.shiftHours = append(c.shiftHours, hours)
	return nil
}

func (c *captureNotifier) NotifyAuditVerdict(_ context.Context, tier string, _, _ float64) error {
	c.auditTiers = append(c.auditTiers, tier)
	return nil
}

func (c *captureNotifier) NotifyError(_ context.Context, _ error, contextLabel string) error {
	c.errorContexts = append(c.errorContexts, contextLabel)
	return nil
}

func (c *captureNotifier) TestNotification(context.Context) error {
	c.testCalls++
	return nil
}
