package domain

import "context"

// Report is an abuse report against a listing. Reports are not modeled in
// the store; they are written as records to an external append-only sink.
type Report struct {
	Username  string
	ListingID string
	Reason    string
}

// ReportSink defines the port for filing abuse reports. Implementations
// must append each report as one atomic record; concurrent reports must not
// interleave within a record. There is no read side.
type ReportSink interface {
	File(ctx context.Context, r Report) error
}
