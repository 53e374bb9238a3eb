package models

import "github.com/tidwall/gjson"

// StreamEntry is one record in a stream: a server-ordered id in
// "<ms>-<seq>" form and the field/value map it was added with. Entries
// are never mutated after decoding.
type StreamEntry struct {
	ID     string
	Fields map[string]Value
}

// Field returns the raw wire value stored under name.
func (e StreamEntry) Field(name string) (Value, bool) {
	v, ok := e.Fields[name]
	return v, ok
}

// StringField returns the field as a string, or "" if absent or not a
// string-like value.
func (e StreamEntry) StringField(name string) string {
	v, ok := e.Fields[name]
	if !ok {
		return ""
	}
	switch v.Type {
	case "bulk":
		return v.Bulk
	case "string":
		return v.Str
	}
	return ""
}

// JSONField treats the field as a JSON document and resolves path
// inside it. Returns a zero Result if the field is absent.
func (e StreamEntry) JSONField(name, path string) gjson.Result {
	raw := e.StringField(name)
	if raw == "" {
		return gjson.Result{}
	}
	return gjson.Get(raw, path)
}

func (e StreamEntry) Len() int {
	return len(e.Fields)
}

// StreamKey is one stream's slice of an XREAD/XREADGROUP reply: the
// stream name and its entries in server-returned order.
type StreamKey struct {
	Key     string
	Entries []StreamEntry
}

// JustIDs returns the entry ids without their field maps.
func (k StreamKey) JustIDs() []string {
	ids := make([]string, len(k.Entries))
	for i, e := range k.Entries {
		ids[i] = e.ID
	}
	return ids
}

// StreamGroup is one row of an XINFO GROUPS reply.
type StreamGroup struct {
	Name            string
	Consumers       int64
	Pending         int64
	LastDeliveredID string
}

// StreamConsumer is one row of an XINFO CONSUMERS reply. It doubles as
// the per-consumer count row of a summary XPENDING reply, where only
// Name and Pending are populated.
type StreamConsumer struct {
	Name     string
	Pending  int64
	IdleTime int64
}

// StreamInfo is the XINFO STREAM snapshot. Fields the server did not
// report stay at their zero values; FirstEntry/LastEntry are nil for an
// empty stream.
type StreamInfo struct {
	Length          int64
	RadixTreeNodes  int64
	Groups          int64
	LastGeneratedID string
	FirstEntry      *StreamEntry
	LastEntry       *StreamEntry
}

// PendingSummary is the no-range XPENDING reply. A zero Count means no
// pending entries; StartID/EndID are only populated when Count > 0.
type PendingSummary struct {
	Count     int64
	StartID   string
	EndID     string
	Consumers []StreamConsumer
}

// Empty reports whether the group has no pending entries.
func (p PendingSummary) Empty() bool {
	return p.Count == 0
}

// PendingEntry is one row of a paginated XPENDING reply: the entry id,
// the consumer holding it, milliseconds since its last delivery, and
// how many times it has been delivered.
type PendingEntry struct {
	ID         string
	Consumer   string
	Idle       int64
	Deliveries int64
}
