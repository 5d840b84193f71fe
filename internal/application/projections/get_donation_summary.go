package projections

import (
	"context"
	"sort"

	"trust/internal/adapters/storage/donation"
	"trust/internal/application/listutil"
	domainDonation "trust/internal/domain/donation"
)

// DonationTypeTotal is the pledged total for one purpose.
type DonationTypeTotal struct {
	Type  string
	Label string
	Paise int64
}

// DonationSummaryResult carries the output of the donation summary.
type DonationSummaryResult struct {
	Donations  []domainDonation.Donation
	Page       listutil.PageInfo
	TotalPaise int64
	ByType     []DonationTypeTotal
}

// Total formats the pledged total in rupees.
func (r DonationSummaryResult) Total() string {
	return domainDonation.FormatRupees(r.TotalPaise)
}

// QueryGetDonationSummary lists one page of pledges, newest first, with totals per purpose.
// Totals cover every pledge regardless of the type filter.
// ByType follows the display order of purposes and skips those with no pledges.
func QueryGetDonationSummary(ctx context.Context, typeFilter string, params listutil.PageParams, store DonationStore) (DonationSummaryResult, error) {
	if !domainDonation.IsValidType(typeFilter) {
		typeFilter = ""
	}
	matching, err := store.CountByType(ctx, typeFilter)
	if err != nil {
		return DonationSummaryResult{}, err
	}
	page := listutil.NewPageInfo(params, matching)
	list, err := store.List(ctx, donation.ListFilter{Type: typeFilter, Limit: page.PerPage, Offset: page.Offset()})
	if err != nil {
		return DonationSummaryResult{}, err
	}
	sums, err := store.SumByType(ctx)
	if err != nil {
		return DonationSummaryResult{}, err
	}

	r := DonationSummaryResult{Donations: list, Page: page}
	order := map[string]int{}
	for i, t := range domainDonation.ValidTypes {
		order[t] = i
	}
	for t, paise := range sums {
		r.TotalPaise += paise
		r.ByType = append(r.ByType, DonationTypeTotal{Type: t, Label: domainDonation.TypeLabel(t), Paise: paise})
	}
	sort.Slice(r.ByType, func(i, j int) bool {
		oi, iok := order[r.ByType[i].Type]
		oj, jok := order[r.ByType[j].Type]
		if iok != jok {
			return iok
		}
		if oi != oj {
			return oi < oj
		}
		return r.ByType[i].Type < r.ByType[j].Type
	})
	return r, nil
}
