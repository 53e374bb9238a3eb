package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/genc-murat/crystalstream/internal/client"
	"github.com/genc-murat/crystalstream/internal/config"
	"github.com/genc-murat/crystalstream/internal/core/models"
	"github.com/genc-murat/crystalstream/internal/pool"
	"github.com/genc-murat/crystalstream/internal/streams"
)

func newClient() (*streams.Client, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	target := cfg.Addr()
	if addr != "" {
		target = addr
	}

	conn, err := client.Dial(target, pool.Config{
		InitialSize:   cfg.Pool.InitialSize,
		MaxSize:       cfg.Pool.MaxSize,
		DialTimeout:   cfg.Pool.DialTimeout.Std(),
		ReadTimeout:   cfg.Pool.ReadTimeout.Std(),
		WriteTimeout:  cfg.Pool.WriteTimeout.Std(),
		IdleTimeout:   cfg.Pool.IdleTimeout.Std(),
		RetryAttempts: cfg.Pool.RetryAttempts,
		RetryDelay:    cfg.Pool.RetryDelay.Std(),
	})
	if err != nil {
		return nil, err
	}
	return streams.NewClient(conn), nil
}

func withClient(run func(ctx context.Context, c *streams.Client, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}
		defer c.Close()
		return run(cmd.Context(), c, args)
	}
}

func printEntries(entries []models.StreamEntry) {
	for _, entry := range entries {
		fmt.Printf("%s\n", entry.ID)
		for name := range entry.Fields {
			fmt.Printf("  %s: %s\n", name, entry.StringField(name))
		}
	}
}

var infoCmd = &cobra.Command{
	Use:   "info <key>",
	Short: "Show a stream's snapshot details",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, c *streams.Client, args []string) error {
		info, err := c.XInfoStream(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Printf("length: %d\n", info.Length)
		fmt.Printf("groups: %d\n", info.Groups)
		fmt.Printf("radix-tree-nodes: %d\n", info.RadixTreeNodes)
		fmt.Printf("last-generated-id: %s\n", info.LastGeneratedID)
		if info.FirstEntry != nil {
			fmt.Printf("first-entry: %s\n", info.FirstEntry.ID)
		}
		if info.LastEntry != nil {
			fmt.Printf("last-entry: %s\n", info.LastEntry.ID)
		}
		return nil
	}),
}

var groupsCmd = &cobra.Command{
	Use:   "groups <key>",
	Short: "List a stream's consumer groups",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, c *streams.Client, args []string) error {
		groups, err := c.XInfoGroups(ctx, args[0])
		if err != nil {
			return err
		}
		for _, g := range groups {
			fmt.Printf("%s consumers=%d pending=%d last-delivered=%s\n",
				g.Name, g.Consumers, g.Pending, g.LastDeliveredID)
		}
		return nil
	}),
}

var consumersCmd = &cobra.Command{
	Use:   "consumers <key> <group>",
	Short: "List a group's consumers",
	Args:  cobra.ExactArgs(2),
	RunE: withClient(func(ctx context.Context, c *streams.Client, args []string) error {
		consumers, err := c.XInfoConsumers(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		for _, con := range consumers {
			fmt.Printf("%s pending=%d idle=%dms\n", con.Name, con.Pending, con.IdleTime)
		}
		return nil
	}),
}

var lenCmd = &cobra.Command{
	Use:   "len <key>",
	Short: "Print a stream's entry count",
	Args:  cobra.ExactArgs(1),
	RunE: withClient(func(ctx context.Context, c *streams.Client, args []string) error {
		n, err := c.XLen(ctx, args[0])
		if err != nil {
			return err
		}
		fmt.Println(n)
		return nil
	}),
}

var rangeCount int64

var rangeCmd = &cobra.Command{
	Use:   "range <key> [start] [end]",
	Short: "Print stream entries between two ids",
	Args:  cobra.RangeArgs(1, 3),
	RunE: withClient(func(ctx context.Context, c *streams.Client, args []string) error {
		start, end := streams.MinID, streams.MaxID
		if len(args) > 1 {
			start = args[1]
		}
		if len(args) > 2 {
			end = args[2]
		}

		var entries []models.StreamEntry
		var err error
		if rangeCount > 0 {
			entries, err = c.XRangeCount(ctx, args[0], start, end, rangeCount)
		} else {
			entries, err = c.XRange(ctx, args[0], start, end)
		}
		if err != nil {
			return err
		}
		printEntries(entries)
		return nil
	}),
}

var pendingCmd = &cobra.Command{
	Use:   "pending <key> <group>",
	Short: "Summarize a group's pending entries",
	Args:  cobra.ExactArgs(2),
	RunE: withClient(func(ctx context.Context, c *streams.Client, args []string) error {
		summary, err := c.XPending(ctx, args[0], args[1])
		if err != nil {
			return err
		}
		if summary.Empty() {
			fmt.Println("no pending entries")
			return nil
		}
		fmt.Printf("count=%d range=%s..%s\n", summary.Count, summary.StartID, summary.EndID)
		for _, con := range summary.Consumers {
			fmt.Printf("  %s: %d\n", con.Name, con.Pending)
		}
		return nil
	}),
}

var addCmd = &cobra.Command{
	Use:   "add <key> <field> <value> [field value]...",
	Short: "Append an entry with a server-assigned id",
	Args: func(cmd *cobra.Command, args []string) error {
		if len(args) < 3 || (len(args)-1)%2 != 0 {
			return fmt.Errorf("expected a key followed by field value pairs")
		}
		return nil
	},
	RunE: withClient(func(ctx context.Context, c *streams.Client, args []string) error {
		id, err := c.XAdd(ctx, args[0], streams.AutoID, args[1:]...)
		if err != nil {
			return err
		}
		fmt.Println(id)
		return nil
	}),
}

var readBlock int64

var readCmd = &cobra.Command{
	Use:   "read <key> [id]",
	Short: "Read entries added after an id",
	Args:  cobra.RangeArgs(1, 2),
	RunE: withClient(func(ctx context.Context, c *streams.Client, args []string) error {
		id := "0"
		if len(args) > 1 {
			id = args[1]
		}

		var keys []models.StreamKey
		var err error
		if readBlock > 0 {
			opts := streams.ReadOptions{}.Block(readBlock)
			keys, err = c.XReadOptions(ctx, []string{args[0]}, []string{id}, opts)
		} else {
			keys, err = c.XRead(ctx, []string{args[0]}, []string{id})
		}
		if err != nil {
			return err
		}
		for _, k := range keys {
			fmt.Printf("%s:\n", k.Key)
			printEntries(k.Entries)
		}
		return nil
	}),
}

func init() {
	rangeCmd.Flags().Int64VarP(&rangeCount, "count", "n", 0, "Limit the number of entries returned")
	readCmd.Flags().Int64VarP(&readBlock, "block", "b", 0, "Block for up to this many milliseconds waiting for entries")
}
