package projections

import (
	"context"

	"trust/internal/adapters/storage/contact"
	"trust/internal/application/listutil"
	domainContact "trust/internal/domain/contact"
)

// ContactsResult carries one page of contact submissions.
type ContactsResult struct {
	Submissions []domainContact.Submission
	Page        listutil.PageInfo
}

// QueryGetContactSubmissions lists contact submissions, newest first.
// A page past the end is clamped to the last page.
func QueryGetContactSubmissions(ctx context.Context, params listutil.PageParams, store ContactStore) (ContactsResult, error) {
	total, err := store.Count(ctx)
	if err != nil {
		return ContactsResult{}, err
	}
	page := listutil.NewPageInfo(params, total)
	subs, err := store.List(ctx, contact.ListFilter{Limit: page.PerPage, Offset: page.Offset()})
	if err != nil {
		return ContactsResult{}, err
	}
	return ContactsResult{Submissions: subs, Page: page}, nil
}
