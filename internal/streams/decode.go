package streams

import (
	"fmt"
	"strconv"

	"github.com/genc-murat/crystalstream/internal/core/models"
	"github.com/genc-murat/crystalstream/internal/util"
)

// Each reply shape gets its own decoder. The wire value alone does not
// say which shape it is — the command that produced it does — so there
// is deliberately no shared map-to-struct machinery here.

// DecodeEntry decodes one entry from its flat pair form: a 2-element
// array of id and field map. Used for range/read/claim rows and for the
// first-entry/last-entry fields of a stream info reply.
func DecodeEntry(v models.Value) (models.StreamEntry, error) {
	row, err := util.AsArray(v)
	if err != nil {
		return models.StreamEntry{}, err
	}
	if len(row) != 2 {
		return models.StreamEntry{}, fmt.Errorf("entry needs id and field map, got %d elements", len(row))
	}
	id, err := util.AsString(row[0])
	if err != nil {
		return models.StreamEntry{}, err
	}
	fields, err := util.AsFieldMap(row[1])
	if err != nil {
		return models.StreamEntry{}, err
	}
	return models.StreamEntry{ID: id, Fields: fields}, nil
}

// DecodeEntryList decodes a sequence of entries. This is the XRANGE,
// XREVRANGE and XCLAIM reply shape; a null reply is an empty list.
func DecodeEntryList(v models.Value) ([]models.StreamEntry, error) {
	rows, err := util.AsArray(v)
	if err != nil {
		return nil, err
	}
	entries := make([]models.StreamEntry, 0, len(rows))
	for _, row := range rows {
		entry, err := DecodeEntry(row)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// DecodeReadReply decodes the XREAD/XREADGROUP shape: a sequence of
// [stream name, entry list] pairs, one per stream with new entries. A
// null reply (a timed-out blocking read, or nothing new) decodes to an
// empty reply, not an error.
func DecodeReadReply(v models.Value) ([]models.StreamKey, error) {
	rows, err := util.AsArray(v)
	if err != nil {
		return nil, err
	}
	keys := make([]models.StreamKey, 0, len(rows))
	for _, row := range rows {
		pair, err := util.AsArray(row)
		if err != nil {
			return nil, err
		}
		if len(pair) != 2 {
			return nil, fmt.Errorf("stream row needs name and entries, got %d elements", len(pair))
		}
		name, err := util.AsString(pair[0])
		if err != nil {
			return nil, err
		}
		entries, err := DecodeEntryList(pair[1])
		if err != nil {
			return nil, err
		}
		keys = append(keys, models.StreamKey{Key: name, Entries: entries})
	}
	return keys, nil
}

// DecodePendingSummary decodes the summary XPENDING shape: a 4-element
// array of count, start id, end id, and [name, count] pairs. A zero
// count decodes to the empty summary no matter what the other elements
// hold. A non-zero count with a null boundary violates the server's
// contract and fails with ErrNoStartID/ErrNoEndID.
//
// Per-consumer counts arrive as text; a non-numeric count is kept as
// zero rather than failing the whole reply.
func DecodePendingSummary(v models.Value) (models.PendingSummary, error) {
	parts, err := util.AsArray(v)
	if err != nil {
		return models.PendingSummary{}, err
	}
	if len(parts) != 4 {
		return models.PendingSummary{}, fmt.Errorf("pending summary needs 4 elements, got %d", len(parts))
	}

	count, err := util.AsInt(parts[0])
	if err != nil {
		return models.PendingSummary{}, err
	}
	if count == 0 {
		return models.PendingSummary{}, nil
	}

	if parts[1].IsNull() {
		return models.PendingSummary{}, ErrNoStartID
	}
	startID, err := util.AsString(parts[1])
	if err != nil {
		return models.PendingSummary{}, err
	}

	if parts[2].IsNull() {
		return models.PendingSummary{}, ErrNoEndID
	}
	endID, err := util.AsString(parts[2])
	if err != nil {
		return models.PendingSummary{}, err
	}

	rows, err := util.AsArray(parts[3])
	if err != nil {
		return models.PendingSummary{}, err
	}
	consumers := make([]models.StreamConsumer, 0, len(rows))
	for _, row := range rows {
		pair, err := util.AsStringSlice(row)
		if err != nil {
			return models.PendingSummary{}, err
		}
		if len(pair) < 2 {
			return models.PendingSummary{}, fmt.Errorf("pending consumer row needs name and count, got %d elements", len(pair))
		}
		consumer := models.StreamConsumer{Name: pair[0]}
		if n, err := strconv.ParseInt(pair[1], 10, 64); err == nil {
			consumer.Pending = n
		}
		consumers = append(consumers, consumer)
	}

	return models.PendingSummary{
		Count:     count,
		StartID:   startID,
		EndID:     endID,
		Consumers: consumers,
	}, nil
}

// DecodePendingDetail decodes the paginated XPENDING shape: a sequence
// of 4-element rows of id, consumer, idle milliseconds, and delivery
// count. All four fields are mandatory per row.
func DecodePendingDetail(v models.Value) ([]models.PendingEntry, error) {
	rows, err := util.AsArray(v)
	if err != nil {
		return nil, err
	}
	entries := make([]models.PendingEntry, 0, len(rows))
	for _, row := range rows {
		parts, err := util.AsArray(row)
		if err != nil {
			return nil, err
		}
		if len(parts) != 4 {
			return nil, fmt.Errorf("pending row needs 4 elements, got %d", len(parts))
		}
		id, err := util.AsString(parts[0])
		if err != nil {
			return nil, err
		}
		consumer, err := util.AsString(parts[1])
		if err != nil {
			return nil, err
		}
		idle, err := util.AsInt(parts[2])
		if err != nil {
			return nil, err
		}
		deliveries, err := util.AsInt(parts[3])
		if err != nil {
			return nil, err
		}
		entries = append(entries, models.PendingEntry{
			ID:         id,
			Consumer:   consumer,
			Idle:       idle,
			Deliveries: deliveries,
		})
	}
	return entries, nil
}

// DecodeStreamInfo decodes the XINFO STREAM shape: a field-keyed map.
// Keys the server omits leave their field at the zero value, and keys
// this version does not know are skipped, so replies from newer and
// older servers both decode.
func DecodeStreamInfo(v models.Value) (models.StreamInfo, error) {
	fields, err := util.AsFieldMap(v)
	if err != nil {
		return models.StreamInfo{}, err
	}

	var info models.StreamInfo
	if fv, ok := fields["length"]; ok {
		if info.Length, err = util.AsInt(fv); err != nil {
			return models.StreamInfo{}, err
		}
	}
	if fv, ok := fields["radix-tree-nodes"]; ok {
		if info.RadixTreeNodes, err = util.AsInt(fv); err != nil {
			return models.StreamInfo{}, err
		}
	}
	if fv, ok := fields["groups"]; ok {
		if info.Groups, err = util.AsInt(fv); err != nil {
			return models.StreamInfo{}, err
		}
	}
	if fv, ok := fields["last-generated-id"]; ok {
		if info.LastGeneratedID, err = util.AsString(fv); err != nil {
			return models.StreamInfo{}, err
		}
	}
	if fv, ok := fields["first-entry"]; ok && !fv.IsNull() {
		entry, err := DecodeEntry(fv)
		if err != nil {
			return models.StreamInfo{}, err
		}
		info.FirstEntry = &entry
	}
	if fv, ok := fields["last-entry"]; ok && !fv.IsNull() {
		entry, err := DecodeEntry(fv)
		if err != nil {
			return models.StreamInfo{}, err
		}
		info.LastEntry = &entry
	}
	return info, nil
}

// DecodeConsumerList decodes the XINFO CONSUMERS shape: a sequence of
// field-keyed maps, with the same missing-key and unknown-key tolerance
// as DecodeStreamInfo.
func DecodeConsumerList(v models.Value) ([]models.StreamConsumer, error) {
	rows, err := util.AsArray(v)
	if err != nil {
		return nil, err
	}
	consumers := make([]models.StreamConsumer, 0, len(rows))
	for _, row := range rows {
		fields, err := util.AsFieldMap(row)
		if err != nil {
			return nil, err
		}
		var c models.StreamConsumer
		if fv, ok := fields["name"]; ok {
			if c.Name, err = util.AsString(fv); err != nil {
				return nil, err
			}
		}
		if fv, ok := fields["pending"]; ok {
			if c.Pending, err = util.AsInt(fv); err != nil {
				return nil, err
			}
		}
		if fv, ok := fields["idle"]; ok {
			if c.IdleTime, err = util.AsInt(fv); err != nil {
				return nil, err
			}
		}
		consumers = append(consumers, c)
	}
	return consumers, nil
}

// DecodeGroupList decodes the XINFO GROUPS shape: a sequence of
// field-keyed maps, tolerant of missing and unknown keys.
func DecodeGroupList(v models.Value) ([]models.StreamGroup, error) {
	rows, err := util.AsArray(v)
	if err != nil {
		return nil, err
	}
	groups := make([]models.StreamGroup, 0, len(rows))
	for _, row := range rows {
		fields, err := util.AsFieldMap(row)
		if err != nil {
			return nil, err
		}
		var g models.StreamGroup
		if fv, ok := fields["name"]; ok {
			if g.Name, err = util.AsString(fv); err != nil {
				return nil, err
			}
		}
		if fv, ok := fields["consumers"]; ok {
			if g.Consumers, err = util.AsInt(fv); err != nil {
				return nil, err
			}
		}
		if fv, ok := fields["pending"]; ok {
			if g.Pending, err = util.AsInt(fv); err != nil {
				return nil, err
			}
		}
		if fv, ok := fields["last-delivered-id"]; ok {
			if g.LastDeliveredID, err = util.AsString(fv); err != nil {
				return nil, err
			}
		}
		groups = append(groups, g)
	}
	return groups, nil
}
