package accumulator

// HourGroup is a set of headers that share an hour-aligned timestamp
// bucket, used to compute a per-hour base-fee average.
type HourGroup struct {
	// Timestamp is the hour-aligned representative timestamp: hour*3600.
	Timestamp uint64
	Headers   []Header
}

// GroupByHour partitions headers, already sorted ascending by block
// number, into contiguous hour groups keyed by floor(timestamp/3600).
func GroupByHour(headers []Header) []HourGroup {
	var groups []HourGroup
	var current *HourGroup
	for _, h := range headers {
		hour := h.Timestamp / 3600
		ts := hour * 3600
		if current == nil || current.Timestamp != ts {
			groups = append(groups, HourGroup{Timestamp: ts})
			current = &groups[len(groups)-1]
		}
		current.Headers = append(current.Headers, h)
	}
	return groups
}

// validate checks the claimed hour-group invariant: every header's own
// hour bucket matches the group's timestamp, and the timestamp is itself
// hour-aligned.
func (g HourGroup) validate() error {
	if g.Timestamp%3600 != 0 {
		return ErrInvalidHourGroup
	}
	for _, h := range g.Headers {
		if (h.Timestamp/3600)*3600 != g.Timestamp {
			return ErrInvalidHourGroup
		}
	}
	return nil
}

// FeeAverage is one hour group's base-fee summary, the per-hour entry of
// a Guest Output's fee average list.
type FeeAverage struct {
	Timestamp     uint64
	HeaderCount   uint64
	AverageBaseFee uint64
}

func (g HourGroup) feeAverage() FeeAverage {
	var sum uint64
	for _, h := range g.Headers {
		sum += h.BaseFeePerGas
	}
	return FeeAverage{
		Timestamp:      g.Timestamp,
		HeaderCount:    uint64(len(g.Headers)),
		AverageBaseFee: sum / uint64(len(g.Headers)),
	}
}
