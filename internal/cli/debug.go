package cli

import (
	"encoding/json"
	"fmt"
	"strings"
)

type DebugCmd struct {
	DBPath DebugDBPathCmd `cmd:"" help:"Show storage path."`
	Keys   DebugKeysCmd   `cmd:"" help:"List stored keys."`
	Dump   DebugDumpCmd   `cmd:"" help:"Dump the raw value of a key as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *Context) error {
	output := map[string]string{
		"path": ctx.Store.GetConfigPath(),
	}
	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.println(string(jsonBytes))
	return nil
}

type DebugKeysCmd struct {
	Prefix string `arg:"" optional:"" help:"Only keys starting with this prefix (e.g. data_, tasks_w_)."`
}

func (cmd *DebugKeysCmd) Run(ctx *Context) error {
	keys, err := ctx.Store.Keys(cmd.Prefix)
	if err != nil {
		return err
	}
	for _, k := range keys {
		ctx.println(k)
	}
	return nil
}

type DebugDumpCmd struct {
	Key string `arg:"" help:"Storage key, e.g. data_2024-06-10."`
}

func (cmd *DebugDumpCmd) Run(ctx *Context) error {
	raw, ok, err := ctx.Store.Get(cmd.Key)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no value stored at %s", cmd.Key)
	}

	var v interface{}
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		// Show malformed values as they are
		ctx.println(strings.TrimSpace(raw))
		return nil
	}
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.println(string(jsonBytes))
	return nil
}
