package hrclient

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/tidwall/gjson"
)

// DistributionEntry is one labeled count in a dashboard breakdown.
type DistributionEntry struct {
	Label string
	Count int64
}

// DashboardStats are the aggregate counts behind the admin dashboard.
type DashboardStats struct {
	TotalEmployees int64
	PendingLeaves  int64
	ApprovedLeaves int64
	Departments    []DistributionEntry
	LeaveStatus    []DistributionEntry
}

// DashboardStats fetches the analytics aggregates. The document's shape is
// owned by the backend and loosely specified, so the known paths are read
// with gjson rather than bound to a rigid struct.
func (c *Client) DashboardStats(ctx context.Context, sess *Session) (*DashboardStats, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/api/v1/analytics/dashboard-stats", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+sess.Token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stats request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("stats request: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read stats: %w", err)
	}

	doc := gjson.ParseBytes(body)
	stats := &DashboardStats{
		TotalEmployees: doc.Get("total_employees").Int(),
		PendingLeaves:  doc.Get("leave_stats.pending").Int(),
		ApprovedLeaves: doc.Get("leave_stats.approved").Int(),
	}

	doc.Get("department_distribution").ForEach(func(_, entry gjson.Result) bool {
		stats.Departments = append(stats.Departments, DistributionEntry{
			Label: entry.Get("department").String(),
			Count: entry.Get("count").Int(),
		})
		return true
	})
	doc.Get("leave_stats.distribution").ForEach(func(_, entry gjson.Result) bool {
		stats.LeaveStatus = append(stats.LeaveStatus, DistributionEntry{
			Label: entry.Get("status").String(),
			Count: entry.Get("count").Int(),
		})
		return true
	})

	return stats, nil
}
