package schema

////////////////////////////////////////////////////////////////////////////////
// TYPES

const (
	SchemaName = "cdp"

	// HTTP headers
	HeaderGetHashArray = "X-Get-Hash-Array"

	// CompressNone is the only compression type this server understands
	// natively; other values pass through the cmptype/uncmplen pair opaquely.
	CompressNone = int16(0)

	// DefaultFanoutLevel is the number of leading hash bytes used to build
	// the block store's fan-out directory tree when none is configured.
	DefaultFanoutLevel = 2

	// MinFanoutLevel and MaxFanoutLevel bound the allowed tree depth.
	MinFanoutLevel = 2
	MaxFanoutLevel = 4

	// JournalMinCommas is the minimum number of unquoted commas a journal
	// line must contain before a trailing newline is accepted as the end
	// of a record (13 fixed fields, zero or more trailing hash fields).
	JournalMinCommas = 12
)
