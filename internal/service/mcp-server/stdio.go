package mcpserver

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"strings"

	"jira_simple/internal/logger"

	"github.com/go-faster/errors"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

// envelope is the subset of a JSON-RPC message needed for routing.
type envelope struct {
	ID     json.RawMessage `json:"id,omitempty"`
	Method string          `json:"method"`
	Params struct {
		Name string `json:"name"`
	} `json:"params"`
}

type toolCallResponse struct {
	JSONRPC string              `json:"jsonrpc"`
	ID      json.RawMessage     `json:"id"`
	Result  *mcp.CallToolResult `json:"result"`
}

// Serve reads newline-delimited JSON-RPC messages from in and writes one
// response line per request to out. It returns nil when in reaches EOF.
//
// tools/call for a name the dispatcher does not know is answered with an
// error-marked tool result instead of a JSON-RPC error.
func Serve(ctx context.Context, s *server.MCPServer, d *Dispatcher, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)
	for {
		line, readErr := reader.ReadString('\n')
		if strings.TrimSpace(line) != "" {
			resp := handleLine(ctx, s, d, json.RawMessage(line))
			if resp != nil {
				if err := writeMessage(out, resp); err != nil {
					return err
				}
			}
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				return nil
			}
			return errors.Wrap(readErr, "read stdin")
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func handleLine(ctx context.Context, s *server.MCPServer, d *Dispatcher, raw json.RawMessage) any {
	var msg envelope
	if err := json.Unmarshal(raw, &msg); err == nil &&
		msg.Method == string(mcp.MethodToolsCall) &&
		len(msg.ID) > 0 &&
		!d.Has(msg.Params.Name) {
		return toolCallResponse{
			JSONRPC: mcp.JSONRPC_VERSION,
			ID:      msg.ID,
			Result:  d.Call(ctx, msg.Params.Name, nil),
		}
	}

	resp := s.HandleMessage(ctx, raw)
	if resp == nil {
		return nil
	}
	return resp
}

func writeMessage(out io.Writer, msg any) error {
	b, err := json.Marshal(msg)
	if err != nil {
		logger.GetLogger().Error("failed to marshal response", zap.Error(err))
		return errors.Wrap(err, "marshal response")
	}
	b = append(b, '\n')
	if _, err := out.Write(b); err != nil {
		return errors.Wrap(err, "write stdout")
	}
	return nil
}
