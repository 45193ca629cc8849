package schema

import "time"

////////////////////////////////////////////////////////////////////////////////
// TYPES

// Query selects a subset of a HostLog's records. Uid/Gid/Owner/Group are
// parsed for wire compatibility but are not applied as filters: the source
// implementation never enforced them (see design notes), and this server
// preserves that behavior rather than the field names' apparent intent.
type Query struct {
	Hostname   string
	Uid        *uint32
	Gid        *uint32
	Owner      *string
	Group      *string
	Filename   string // case-insensitive regular expression, required
	Date       *time.Time
	AfterDate  *time.Time
	BeforeDate *time.Time
	Latest     bool
	Reduced    bool
}
