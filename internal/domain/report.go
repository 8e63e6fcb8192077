package domain

import "strconv"

// AccountReport is the output projection of an Account.
type AccountReport struct {
	Client    ClientID
	Available string
	Held      string
	Total     string
	Locked    bool
}

// NewAccountReport formats a for output.
func NewAccountReport(a *Account) AccountReport {
	return AccountReport{
		Client:    a.Client,
		Available: a.Available.String(),
		Held:      a.Held.String(),
		Total:     a.Total.String(),
		Locked:    a.Locked,
	}
}

// Record returns the report as CSV fields in output column order.
func (r AccountReport) Record() []string {
	return []string{
		strconv.FormatUint(uint64(r.Client), 10),
		r.Available,
		r.Held,
		r.Total,
		strconv.FormatBool(r.Locked),
	}
}

// ReportHeader is the output CSV header.
var ReportHeader = []string{"client", "available", "held", "total", "locked"}
