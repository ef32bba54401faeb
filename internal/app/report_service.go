package app

import (
	"context"

	"market/internal/domain"
)

// ReportService files abuse reports against listings.
type ReportService struct {
	sink domain.ReportSink
}

// NewReportService creates a ReportService writing to the given sink.
func NewReportService(sink domain.ReportSink) *ReportService {
	return &ReportService{sink: sink}
}

// File appends one report record to the sink. Fields are recorded verbatim,
// as the sink is a human-reviewed log rather than modeled data.
func (s *ReportService) File(ctx context.Context, username, listingID, reason string) error {
	return s.sink.File(ctx, domain.Report{
		Username:  username,
		ListingID: listingID,
		Reason:    reason,
	})
}
