package projections

import (
	"context"
	"time"

	"trust/internal/adapters/http/perf"
	"trust/internal/adapters/storage/contact"
	domainAudit "trust/internal/domain/audit"
	domainContact "trust/internal/domain/contact"
)

// DashboardRecentContacts is how many submissions the dashboard previews.
const DashboardRecentContacts = 5

// DashboardRecentActivity is how many audit entries the dashboard previews.
const DashboardRecentActivity = 10

// AuditLog lists recent admin activity.
type AuditLog interface {
	ListRecent(ctx context.Context, limit int) ([]domainAudit.Entry, error)
}

// PerfSummarizer reports recent request, query and media timings.
type PerfSummarizer interface {
	Summarize(since time.Time, topN int) perf.Summary
}

// GetAdminDashboardDeps holds dependencies for the admin dashboard.
type GetAdminDashboardDeps struct {
	EventStore    EventStore
	PhotoStore    PhotoStore
	GalleryStore  GalleryStore
	NewsStore     NewsStore
	ContactStore  ContactStore
	DonationStore DonationStore
	AuditStore    AuditLog       // optional
	Perf          PerfSummarizer // optional
	Now           func() time.Time
}

// AdminDashboardResult carries the output of the admin dashboard.
type AdminDashboardResult struct {
	Events         int
	Photos         int
	GalleryImages  int
	NewsPosts      int
	Contacts       int
	Donations      int
	PledgedPaise   int64
	RecentContacts []domainContact.Submission
	RecentActivity []domainAudit.Entry
	Perf           perf.Summary
	HasPerf        bool
}

// QueryGetAdminDashboard gathers counts for the admin landing page.
func QueryGetAdminDashboard(ctx context.Context, deps GetAdminDashboardDeps) (AdminDashboardResult, error) {
	var r AdminDashboardResult
	counts := []struct {
		dst *int
		fn  func(context.Context) (int, error)
	}{
		{&r.Events, deps.EventStore.Count},
		{&r.Photos, deps.PhotoStore.CountPhotos},
		{&r.GalleryImages, deps.GalleryStore.Count},
		{&r.NewsPosts, deps.NewsStore.Count},
		{&r.Contacts, deps.ContactStore.Count},
		{&r.Donations, deps.DonationStore.Count},
	}
	for _, c := range counts {
		n, err := c.fn(ctx)
		if err != nil {
			return AdminDashboardResult{}, err
		}
		*c.dst = n
	}

	sums, err := deps.DonationStore.SumByType(ctx)
	if err != nil {
		return AdminDashboardResult{}, err
	}
	for _, v := range sums {
		r.PledgedPaise += v
	}

	if r.RecentContacts, err = deps.ContactStore.List(ctx, contact.ListFilter{Limit: DashboardRecentContacts}); err != nil {
		return AdminDashboardResult{}, err
	}

	if deps.AuditStore != nil {
		if r.RecentActivity, err = deps.AuditStore.ListRecent(ctx, DashboardRecentActivity); err != nil {
			return AdminDashboardResult{}, err
		}
	}

	if deps.Perf != nil {
		now := time.Now
		if deps.Now != nil {
			now = deps.Now
		}
		r.Perf = deps.Perf.Summarize(now().Add(-time.Hour), 5)
		r.HasPerf = true
	}
	return r, nil
}
