package streams

import (
	"github.com/genc-murat/crystalstream/internal/core/models"
	"github.com/genc-murat/crystalstream/internal/util"
)

// MaxLen caps a stream's length when trimming, either to exactly Count
// entries or approximately (letting the server trim at node
// boundaries, which is much cheaper).
type MaxLen struct {
	approx bool
	count  int64
}

func MaxLenExact(count int64) MaxLen {
	return MaxLen{count: count}
}

func MaxLenApprox(count int64) MaxLen {
	return MaxLen{approx: true, count: count}
}

// Args emits MAXLEN, the precision token, and the count.
func (m MaxLen) Args() []models.Value {
	precision := "="
	if m.approx {
		precision = "~"
	}
	return util.AppendArgs(nil, "MAXLEN", precision, m.count)
}

// ClaimOptions collects the optional XCLAIM arguments. The zero value
// emits nothing; each setter returns an updated copy, so options can be
// built fluently without shared state.
//
// JustID changes the reply shape from full entries to bare ids, which
// is why the client exposes XClaimJustID separately.
type ClaimOptions struct {
	idle   *int64
	time   *int64
	retry  *int64
	force  bool
	justID bool
}

// Idle overrides the claimed entries' idle time, in milliseconds.
func (o ClaimOptions) Idle(ms int64) ClaimOptions {
	o.idle = &ms
	return o
}

// Time sets the last-delivery time to an absolute unix time in
// milliseconds instead of an idle offset.
func (o ClaimOptions) Time(unixMS int64) ClaimOptions {
	o.time = &unixMS
	return o
}

// Retry overrides the delivery counter for the claimed entries.
func (o ClaimOptions) Retry(count int64) ClaimOptions {
	o.retry = &count
	return o
}

// Force claims the entries even when they are not currently pending.
func (o ClaimOptions) Force() ClaimOptions {
	o.force = true
	return o
}

// JustID asks the server to reply with entry ids only.
func (o ClaimOptions) JustID() ClaimOptions {
	o.justID = true
	return o
}

// Args emits the present options in the grammar's fixed order:
// IDLE, TIME, RETRYCOUNT, FORCE, JUSTID. Absent options emit nothing.
func (o ClaimOptions) Args() []models.Value {
	var args []models.Value
	if o.idle != nil {
		args = util.AppendArgs(args, "IDLE", *o.idle)
	}
	if o.time != nil {
		args = util.AppendArgs(args, "TIME", *o.time)
	}
	if o.retry != nil {
		args = util.AppendArgs(args, "RETRYCOUNT", *o.retry)
	}
	if o.force {
		args = util.AppendArg(args, "FORCE")
	}
	if o.justID {
		args = util.AppendArg(args, "JUSTID")
	}
	return args
}

// ReadOptions collects the optional XREAD/XREADGROUP arguments. Setting
// a group switches the command from XREAD to XREADGROUP; NoAck is only
// emitted when a group is set, since the grammar has no place for it
// otherwise.
type ReadOptions struct {
	block    *int64
	count    *int64
	noack    bool
	group    []models.Value
	consumer []models.Value
	hasGroup bool
}

// Block asks the server to wait up to ms milliseconds for new entries
// before returning an empty reply.
func (o ReadOptions) Block(ms int64) ReadOptions {
	o.block = &ms
	return o
}

// Count limits how many entries are returned per stream.
func (o ReadOptions) Count(n int64) ReadOptions {
	o.count = &n
	return o
}

// NoAck skips the pending ledger for delivered entries. Inert unless a
// group is set.
func (o ReadOptions) NoAck() ReadOptions {
	o.noack = true
	return o
}

// Group reads on behalf of a consumer group. Names pass through the
// generic argument serialization, so composite values expand to however
// many tokens they need.
func (o ReadOptions) Group(group, consumer interface{}) ReadOptions {
	o.group = util.AppendArg(nil, group)
	o.consumer = util.AppendArg(nil, consumer)
	o.hasGroup = true
	return o
}

// ReadOnly reports whether the options select plain XREAD rather than
// XREADGROUP.
func (o ReadOptions) ReadOnly() bool {
	return !o.hasGroup
}

// Args emits BLOCK and COUNT if present, then, only when a group is
// set, NOACK (if requested) followed by GROUP <group> <consumer>.
func (o ReadOptions) Args() []models.Value {
	var args []models.Value
	if o.block != nil {
		args = util.AppendArgs(args, "BLOCK", *o.block)
	}
	if o.count != nil {
		args = util.AppendArgs(args, "COUNT", *o.count)
	}
	if o.hasGroup {
		if o.noack {
			args = util.AppendArg(args, "NOACK")
		}
		args = util.AppendArg(args, "GROUP")
		args = append(args, o.group...)
		args = append(args, o.consumer...)
	}
	return args
}
