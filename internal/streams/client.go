package streams

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/genc-murat/crystalstream/internal/core/models"
	"github.com/genc-murat/crystalstream/internal/core/ports"
	"github.com/genc-murat/crystalstream/internal/metrics"
	"github.com/genc-murat/crystalstream/internal/util"
)

// Range sentinels and special ids accepted by the stream commands.
const (
	MinID      = "-" // lowest possible id
	MaxID      = "+" // highest possible id
	AutoID     = "*" // server-assigned id on add
	LastID     = "$" // id of the last entry in the stream
	NewEntries = ">" // undelivered entries, group reads only
)

// Client is the typed stream command surface. Every method encodes one
// command, runs it through the executor, and decodes the reply into its
// fixed result shape. The client holds no state besides the executor
// and its counters, so it is safe for concurrent use.
type Client struct {
	conn  ports.ConnExecutor
	stats *metrics.Metrics
}

func NewClient(conn ports.ConnExecutor) *Client {
	return &Client{conn: conn, stats: metrics.NewMetrics()}
}

// Stats exposes the per-command counters.
func (c *Client) Stats() *metrics.Metrics {
	return c.stats
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// do runs one command and surfaces server error replies as errors.
func (c *Client) do(ctx context.Context, name string, args []models.Value) (models.Value, error) {
	full := make([]models.Value, 0, len(args)+1)
	full = util.AppendArg(full, name)
	full = append(full, args...)

	start := time.Now()
	reply, err := c.conn.Do(ctx, full...)
	c.stats.RecordCommand(name, time.Since(start))
	if err != nil {
		return models.Value{}, err
	}
	if reply.IsError() {
		return models.Value{}, errors.New(reply.Str)
	}
	return reply, nil
}

// XAck removes ids from the group's pending ledger and returns how many
// were actually acknowledged.
func (c *Client) XAck(ctx context.Context, key, group string, ids ...string) (int64, error) {
	reply, err := c.do(ctx, "XACK", util.AppendArgs(nil, key, group, ids))
	if err != nil {
		return 0, err
	}
	return util.AsInt(reply)
}

// XAdd appends an entry built from alternating field, value tokens and
// returns the entry's id. Pass AutoID to let the server assign one.
func (c *Client) XAdd(ctx context.Context, key, id string, fieldValues ...string) (string, error) {
	reply, err := c.do(ctx, "XADD", util.AppendArgs(nil, key, id, fieldValues))
	if err != nil {
		return "", err
	}
	return util.AsString(reply)
}

// XAddMap is the map-valued variant of XAdd. Fields are emitted in
// sorted key order so the request is deterministic.
func (c *Client) XAddMap(ctx context.Context, key, id string, fields map[string]string) (string, error) {
	reply, err := c.do(ctx, "XADD", util.AppendArgs(nil, key, id, fields))
	if err != nil {
		return "", err
	}
	return util.AsString(reply)
}

// XAddMaxLen appends an entry while capping the stream's length.
func (c *Client) XAddMaxLen(ctx context.Context, key string, maxLen MaxLen, id string, fieldValues ...string) (string, error) {
	args := util.AppendArg(nil, key)
	args = append(args, maxLen.Args()...)
	args = util.AppendArgs(args, id, fieldValues)
	reply, err := c.do(ctx, "XADD", args)
	if err != nil {
		return "", err
	}
	return util.AsString(reply)
}

// XAddMaxLenMap is the map-valued variant of XAddMaxLen.
func (c *Client) XAddMaxLenMap(ctx context.Context, key string, maxLen MaxLen, id string, fields map[string]string) (string, error) {
	args := util.AppendArg(nil, key)
	args = append(args, maxLen.Args()...)
	args = util.AppendArgs(args, id, fields)
	reply, err := c.do(ctx, "XADD", args)
	if err != nil {
		return "", err
	}
	return util.AsString(reply)
}

// XClaim reassigns pending ids to consumer once they have been idle at
// least minIdleMS, returning the claimed entries.
func (c *Client) XClaim(ctx context.Context, key, group, consumer string, minIdleMS int64, ids ...string) ([]models.StreamEntry, error) {
	reply, err := c.do(ctx, "XCLAIM", util.AppendArgs(nil, key, group, consumer, minIdleMS, ids))
	if err != nil {
		return nil, err
	}
	return DecodeEntryList(reply)
}

// XClaimOptions is XClaim with the optional argument block. Any JustID
// set on opts is ignored here because it changes the reply shape; use
// XClaimJustID for that.
func (c *Client) XClaimOptions(ctx context.Context, key, group, consumer string, minIdleMS int64, ids []string, opts ClaimOptions) ([]models.StreamEntry, error) {
	opts.justID = false
	args := util.AppendArgs(nil, key, group, consumer, minIdleMS, ids)
	args = append(args, opts.Args()...)
	reply, err := c.do(ctx, "XCLAIM", args)
	if err != nil {
		return nil, err
	}
	return DecodeEntryList(reply)
}

// XClaimJustID claims like XClaimOptions but asks the server for bare
// entry ids, skipping the field maps.
func (c *Client) XClaimJustID(ctx context.Context, key, group, consumer string, minIdleMS int64, ids []string, opts ClaimOptions) ([]string, error) {
	args := util.AppendArgs(nil, key, group, consumer, minIdleMS, ids)
	args = append(args, opts.JustID().Args()...)
	reply, err := c.do(ctx, "XCLAIM", args)
	if err != nil {
		return nil, err
	}
	return util.AsStringSlice(reply)
}

// XDel removes ids from the stream and returns how many existed.
func (c *Client) XDel(ctx context.Context, key string, ids ...string) (int64, error) {
	reply, err := c.do(ctx, "XDEL", util.AppendArgs(nil, key, ids))
	if err != nil {
		return 0, err
	}
	return util.AsInt(reply)
}

// XGroupCreate creates a consumer group reading from id. The stream
// must already exist; see XGroupCreateMkStream otherwise.
func (c *Client) XGroupCreate(ctx context.Context, key, group, id string) error {
	_, err := c.do(ctx, "XGROUP", util.AppendArgs(nil, "CREATE", key, group, id))
	return err
}

// XGroupCreateMkStream creates a consumer group and the stream itself
// if it does not exist yet.
func (c *Client) XGroupCreateMkStream(ctx context.Context, key, group, id string) error {
	_, err := c.do(ctx, "XGROUP", util.AppendArgs(nil, "CREATE", key, group, id, "MKSTREAM"))
	return err
}

// XGroupSetID moves the group's delivery cursor to id.
func (c *Client) XGroupSetID(ctx context.Context, key, group, id string) error {
	_, err := c.do(ctx, "XGROUP", util.AppendArgs(nil, "SETID", key, group, id))
	return err
}

// XGroupDestroy removes the group and returns whether it existed.
func (c *Client) XGroupDestroy(ctx context.Context, key, group string) (int64, error) {
	reply, err := c.do(ctx, "XGROUP", util.AppendArgs(nil, "DESTROY", key, group))
	if err != nil {
		return 0, err
	}
	return util.AsInt(reply)
}

// XGroupDelConsumer removes a consumer from the group and returns its
// pending entry count at removal.
func (c *Client) XGroupDelConsumer(ctx context.Context, key, group, consumer string) (int64, error) {
	reply, err := c.do(ctx, "XGROUP", util.AppendArgs(nil, "DELCONSUMER", key, group, consumer))
	if err != nil {
		return 0, err
	}
	return util.AsInt(reply)
}

// XInfoConsumers lists the group's consumers and their pending/idle
// state.
func (c *Client) XInfoConsumers(ctx context.Context, key, group string) ([]models.StreamConsumer, error) {
	reply, err := c.do(ctx, "XINFO", util.AppendArgs(nil, "CONSUMERS", key, group))
	if err != nil {
		return nil, err
	}
	return DecodeConsumerList(reply)
}

// XInfoGroups lists the consumer groups created on key.
func (c *Client) XInfoGroups(ctx context.Context, key string) ([]models.StreamGroup, error) {
	reply, err := c.do(ctx, "XINFO", util.AppendArgs(nil, "GROUPS", key))
	if err != nil {
		return nil, err
	}
	return DecodeGroupList(reply)
}

// XInfoStream returns the stream's snapshot details.
func (c *Client) XInfoStream(ctx context.Context, key string) (models.StreamInfo, error) {
	reply, err := c.do(ctx, "XINFO", util.AppendArgs(nil, "STREAM", key))
	if err != nil {
		return models.StreamInfo{}, err
	}
	return DecodeStreamInfo(reply)
}

// XLen returns the number of entries in the stream.
func (c *Client) XLen(ctx context.Context, key string) (int64, error) {
	reply, err := c.do(ctx, "XLEN", util.AppendArg(nil, key))
	if err != nil {
		return 0, err
	}
	return util.AsInt(reply)
}

// XPending returns the group's pending summary: total count, boundary
// ids, and per-consumer counts.
func (c *Client) XPending(ctx context.Context, key, group string) (models.PendingSummary, error) {
	reply, err := c.do(ctx, "XPENDING", util.AppendArgs(nil, key, group))
	if err != nil {
		return models.PendingSummary{}, err
	}
	return DecodePendingSummary(reply)
}

// XPendingCount pages through the group's pending entries between start
// and end. Use MinID and MaxID to cover the whole stream.
func (c *Client) XPendingCount(ctx context.Context, key, group, start, end string, count int64) ([]models.PendingEntry, error) {
	reply, err := c.do(ctx, "XPENDING", util.AppendArgs(nil, key, group, start, end, count))
	if err != nil {
		return nil, err
	}
	return DecodePendingDetail(reply)
}

// XPendingConsumerCount is XPendingCount filtered to one consumer.
func (c *Client) XPendingConsumerCount(ctx context.Context, key, group, start, end string, count int64, consumer string) ([]models.PendingEntry, error) {
	reply, err := c.do(ctx, "XPENDING", util.AppendArgs(nil, key, group, start, end, count, consumer))
	if err != nil {
		return nil, err
	}
	return DecodePendingDetail(reply)
}

// XRange returns entries between start and end in ascending id order.
func (c *Client) XRange(ctx context.Context, key, start, end string) ([]models.StreamEntry, error) {
	reply, err := c.do(ctx, "XRANGE", util.AppendArgs(nil, key, start, end))
	if err != nil {
		return nil, err
	}
	return DecodeEntryList(reply)
}

// XRangeCount is XRange limited to count entries.
func (c *Client) XRangeCount(ctx context.Context, key, start, end string, count int64) ([]models.StreamEntry, error) {
	reply, err := c.do(ctx, "XRANGE", util.AppendArgs(nil, key, start, end, "COUNT", count))
	if err != nil {
		return nil, err
	}
	return DecodeEntryList(reply)
}

// XRangeAll returns every entry in the stream. Use with care on large
// streams.
func (c *Client) XRangeAll(ctx context.Context, key string) ([]models.StreamEntry, error) {
	return c.XRange(ctx, key, MinID, MaxID)
}

// XRevRange returns entries between end and start in descending id
// order.
func (c *Client) XRevRange(ctx context.Context, key, end, start string) ([]models.StreamEntry, error) {
	reply, err := c.do(ctx, "XREVRANGE", util.AppendArgs(nil, key, end, start))
	if err != nil {
		return nil, err
	}
	return DecodeEntryList(reply)
}

// XRevRangeCount is XRevRange limited to count entries.
func (c *Client) XRevRangeCount(ctx context.Context, key, end, start string, count int64) ([]models.StreamEntry, error) {
	reply, err := c.do(ctx, "XREVRANGE", util.AppendArgs(nil, key, end, start, "COUNT", count))
	if err != nil {
		return nil, err
	}
	return DecodeEntryList(reply)
}

// XRevRangeAll returns every entry in the stream, newest first.
func (c *Client) XRevRangeAll(ctx context.Context, key string) ([]models.StreamEntry, error) {
	return c.XRevRange(ctx, key, MaxID, MinID)
}

// XRead reads new entries from each stream starting after its paired
// id. keys and ids must be the same length.
func (c *Client) XRead(ctx context.Context, keys, ids []string) ([]models.StreamKey, error) {
	reply, err := c.do(ctx, "XREAD", util.AppendArgs(nil, "STREAMS", keys, ids))
	if err != nil {
		return nil, err
	}
	return DecodeReadReply(reply)
}

// XReadOptions reads with the optional argument block. Setting a group
// on opts switches the command from XREAD to XREADGROUP.
func (c *Client) XReadOptions(ctx context.Context, keys, ids []string, opts ReadOptions) ([]models.StreamKey, error) {
	name := "XREAD"
	if !opts.ReadOnly() {
		name = "XREADGROUP"
	}
	args := opts.Args()
	args = util.AppendArgs(args, "STREAMS", keys, ids)
	reply, err := c.do(ctx, name, args)
	if err != nil {
		return nil, err
	}
	return DecodeReadReply(reply)
}

// XTrim caps the stream's length and returns how many entries were
// evicted.
func (c *Client) XTrim(ctx context.Context, key string, maxLen MaxLen) (int64, error) {
	args := util.AppendArg(nil, key)
	args = append(args, maxLen.Args()...)
	reply, err := c.do(ctx, "XTRIM", args)
	if err != nil {
		return 0, err
	}
	return util.AsInt(reply)
}

// SortedFields flattens a field map into alternating field, value
// tokens in sorted key order, for callers that build XAdd arguments by
// hand.
func SortedFields(fields map[string]string) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(fields)*2)
	for _, k := range keys {
		out = append(out, k, fields[k])
	}
	return out
}
