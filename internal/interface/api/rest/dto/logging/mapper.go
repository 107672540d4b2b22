package logging

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"

	"fitback-api/internal/domain/logentry"
)

// ToDomainEntry keeps a zero timestamp when the client sent none or an unparsable one;
// the log service then stamps receipt time.
func ToDomainEntry(r Request) logentry.Entry {
	return logentry.Entry{
		Level:     logentry.ParseLevel(r.Level),
		Message:   r.Message,
		Context:   r.Context,
		Timestamp: parseTimestamp(r.Timestamp),
	}
}

func parseTimestamp(raw json.RawMessage) time.Time {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return time.Time{}
	}

	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return time.Time{}
		}
		if ts, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return ts.UTC()
		}
		return fromEpochMillis(s)
	}

	return fromEpochMillis(string(raw))
}

func fromEpochMillis(s string) time.Time {
	ms, err := strconv.ParseFloat(s, 64)
	if err != nil || !(ms > 0 && ms < 1<<53) {
		return time.Time{}
	}

	return time.UnixMilli(int64(ms)).UTC()
}
