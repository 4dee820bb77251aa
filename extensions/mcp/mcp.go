// Package mcp implements an MCP (Model Context Protocol) tool-adapter
// extension for Rill: `mcp::call` and `mcp::listTools`, speaking
// JSON-RPC 2.0 over a subprocess's stdio pipes. No MCP SDK or JSON-RPC
// client library appears as used code anywhere in the corpus this repo
// draws its stack from (the string "jsonrpc" only turns up inside a
// funvibe-funxy test fixture), so the wire layer here is hand-written
// `encoding/json` over `os/exec` pipes — a deliberate standard-library
// exception recorded in DESIGN.md. Request IDs are minted with
// github.com/google/uuid, a funvibe-funxy direct dependency, rather
// than a hand-rolled counter.
package mcp

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os/exec"
	"sync"

	"github.com/google/uuid"

	"github.com/rcrsr/rill/internal/rillerr"
	"github.com/rcrsr/rill/internal/runtime"
	"github.com/rcrsr/rill/internal/value"
)

type request struct {
	JSONRPC string `json:"jsonrpc"`
	ID      string `json:"id"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

type response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *rpcError       `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Extension speaks JSON-RPC 2.0 to a single long-lived MCP server
// subprocess over its stdio pipes. It owns the subprocess and must be
// closed via Dispose.
type Extension struct {
	mu  sync.Mutex
	cmd *exec.Cmd
	in  *json.Encoder
	out *bufio.Scanner
}

// Start launches command (with args) as the MCP server subprocess and
// wires a line-delimited JSON-RPC 2.0 transport over its stdin/stdout.
func Start(command string, args ...string) (*Extension, error) {
	cmd := exec.Command(command, args...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("mcp: stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("mcp: stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("mcp: start %s: %w", command, err)
	}
	return &Extension{
		cmd: cmd,
		in:  json.NewEncoder(stdin),
		out: bufio.NewScanner(stdout),
	}, nil
}

// Dispose terminates the MCP server subprocess.
func (x *Extension) Dispose() error {
	if x.cmd.Process == nil {
		return nil
	}
	return x.cmd.Process.Kill()
}

func (x *Extension) call(method string, params any) (json.RawMessage, error) {
	x.mu.Lock()
	defer x.mu.Unlock()

	id := uuid.NewString()
	if err := x.in.Encode(request{JSONRPC: "2.0", ID: id, Method: method, Params: params}); err != nil {
		return nil, fmt.Errorf("mcp: encode request: %w", err)
	}
	if !x.out.Scan() {
		if err := x.out.Err(); err != nil {
			return nil, fmt.Errorf("mcp: read response: %w", err)
		}
		return nil, fmt.Errorf("mcp: server closed the connection")
	}
	var resp response
	if err := json.Unmarshal(x.out.Bytes(), &resp); err != nil {
		return nil, fmt.Errorf("mcp: decode response: %w", err)
	}
	if resp.Error != nil {
		return nil, fmt.Errorf("mcp: %s (code %d)", resp.Error.Message, resp.Error.Code)
	}
	return resp.Result, nil
}

// Funcs declares the parameter contract for every function this
// extension exposes.
func (x *Extension) Funcs() map[string][]runtime.ParamSpec {
	return map[string][]runtime.ParamSpec{
		"call":      {{Name: "tool", Type: value.TypeString, Required: true}, {Name: "arguments", Type: value.TypeDict, Required: false, DefaultValue: value.NewDict()}},
		"listTools": {},
	}
}

// Impls returns the Go implementation for each name Funcs declares.
func (x *Extension) Impls() map[string]runtime.HostFunc {
	return map[string]runtime.HostFunc{
		"call":      x.callTool,
		"listTools": x.listTools,
	}
}

func (x *Extension) callTool(args []value.Value, ctx *runtime.Context, loc *rillerr.Location) (value.Value, error) {
	tool, ok := args[0].(value.String)
	if !ok {
		return nil, rillerr.New(rillerr.TypeError, "mcp::call: tool must be a string", loc, nil)
	}
	arguments := toNativeDict(args[1])

	raw, err := x.call("tools/call", map[string]any{"name": string(tool), "arguments": arguments})
	if err != nil {
		return nil, rillerr.New(rillerr.AutoException, err.Error(), loc, nil)
	}
	return decodeJSONValue(raw)
}

func (x *Extension) listTools(args []value.Value, ctx *runtime.Context, loc *rillerr.Location) (value.Value, error) {
	raw, err := x.call("tools/list", nil)
	if err != nil {
		return nil, rillerr.New(rillerr.AutoException, err.Error(), loc, nil)
	}
	return decodeJSONValue(raw)
}

func toNativeDict(v value.Value) map[string]any {
	d, ok := v.(*value.Dict)
	if !ok {
		return map[string]any{}
	}
	out := make(map[string]any, d.Len())
	for _, k := range d.Keys() {
		dv, _ := d.Get(k)
		out[k] = jsonNative(dv)
	}
	return out
}

func jsonNative(v value.Value) any {
	switch vv := v.(type) {
	case value.Bool:
		return bool(vv)
	case value.Number:
		return float64(vv)
	case value.String:
		return string(vv)
	case *value.List:
		out := make([]any, len(vv.Items))
		for i, item := range vv.Items {
			out[i] = jsonNative(item)
		}
		return out
	case *value.Dict:
		return toNativeDict(vv)
	default:
		return nil
	}
}

// decodeJSONValue converts a raw JSON-RPC result into a Rill value,
// mapping JSON objects to dicts, arrays to lists, and scalars directly.
func decodeJSONValue(raw json.RawMessage) (value.Value, error) {
	if len(raw) == 0 {
		return value.Null, nil
	}
	var native any
	if err := json.Unmarshal(raw, &native); err != nil {
		return nil, fmt.Errorf("mcp: decode result: %w", err)
	}
	return fromNative(native), nil
}

func fromNative(v any) value.Value {
	switch vv := v.(type) {
	case nil:
		return value.Null
	case bool:
		return value.Bool(vv)
	case float64:
		return value.Number(vv)
	case string:
		return value.String(vv)
	case []any:
		items := make([]value.Value, len(vv))
		for i, item := range vv {
			items[i] = fromNative(item)
		}
		return value.NewList(items)
	case map[string]any:
		d := value.NewDict()
		for k, item := range vv {
			d.Set(k, fromNative(item))
		}
		return d
	default:
		return value.Null
	}
}
