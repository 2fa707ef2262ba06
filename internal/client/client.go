package client

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/wagiedev/toolkit-mcp-go/internal/cli"
	"github.com/wagiedev/toolkit-mcp-go/internal/config"
	"github.com/wagiedev/toolkit-mcp-go/internal/errors"
	internalmcp "github.com/wagiedev/toolkit-mcp-go/internal/mcp"
	"github.com/wagiedev/toolkit-mcp-go/internal/message"
	"github.com/wagiedev/toolkit-mcp-go/internal/subprocess"
)

// Implementation identifies this client to servers.
var Implementation = mcp.Implementation{Name: "toolkit-go", Version: "0.1.0"}

// Client is a connection to one tool server.
type Client struct {
	log        *slog.Logger
	discoverer cli.Discoverer
	session    *mcp.ClientSession
	serverType internalmcp.ServerType

	// Fatal error storage, set when the session ends without Close.
	errMu    sync.RWMutex
	fatalErr error

	eg *errgroup.Group

	mu        sync.Mutex
	connected bool
	closing   bool
	closed    bool
	closeOnce sync.Once
}

// New creates a client. It is not connected until Start is called.
func New() *Client {
	return &Client{log: slog.New(slog.DiscardHandler)}
}

// NewWithDiscoverer creates a client that locates the server binary with d.
func NewWithDiscoverer(d cli.Discoverer) *Client {
	c := New()
	c.discoverer = d

	return c
}

func (c *Client) setFatalError(err error) {
	if err == nil {
		return
	}

	c.errMu.Lock()
	defer c.errMu.Unlock()

	if c.fatalErr == nil {
		c.fatalErr = err
	}
}

func (c *Client) getFatalError() error {
	c.errMu.RLock()
	defer c.errMu.RUnlock()

	return c.fatalErr
}

// Start connects to the server described by options.
//
// Returns *errors.ServerNotFoundError if the server binary cannot be
// located, or *errors.ConnectionError if the handshake fails.
func (c *Client) Start(ctx context.Context, options *config.Options) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return errors.ErrClientClosed
	}

	if c.connected {
		return errors.ErrClientAlreadyConnected
	}

	if options == nil {
		options = &config.Options{}
	}

	if options.Logger != nil {
		c.log = options.Logger
	}

	c.log = c.log.With("component", "client")

	serverCfg, err := cli.ResolveServer(ctx, options, c.discoverer)
	if err != nil {
		return err
	}

	var stderr *subprocess.StderrBuffer
	if stdio, ok := serverCfg.(*internalmcp.StdioServerConfig); ok {
		stderr = subprocess.NewStderrBuffer(c.log.With("component", "server"), options.Stderr)
		stdio.Stderr = stderr
	}

	transport, err := internalmcp.NewClientTransport(serverCfg)
	if err != nil {
		return &errors.ConnectionError{Err: err}
	}

	c.log.Info("Connecting to tool server", "type", serverCfg.GetType())

	connectCtx, cancel := context.WithTimeout(ctx, options.EffectiveConnectTimeout())
	defer cancel()

	impl := Implementation
	session, err := mcp.NewClient(&impl, nil).Connect(connectCtx, transport, nil)
	if err != nil {
		if stderr != nil {
			if tail := stderr.String(); tail != "" {
				err = fmt.Errorf("%w: server stderr: %s", err, tail)
			}
		}

		return &errors.ConnectionError{Err: err}
	}

	c.session = session
	c.serverType = serverCfg.GetType()
	c.eg = new(errgroup.Group)

	// The session outlives ctx; only Close or a dead peer ends it.
	c.eg.Go(func() error {
		waitErr := session.Wait()

		c.mu.Lock()
		closing := c.closing
		c.mu.Unlock()

		if !closing {
			c.log.Warn("Tool server session ended", "error", waitErr)
			c.setFatalError(&errors.ConnectionError{Err: fmt.Errorf("session ended: %w", cmp.Or(waitErr, errSessionEnded))})
		}

		return nil
	})

	c.connected = true
	c.log.Info("Client started successfully")

	return nil
}

var errSessionEnded = fmt.Errorf("server closed the connection")

func (c *Client) activeSession() (*mcp.ClientSession, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, errors.ErrClientClosed
	}

	if !c.connected {
		return nil, errors.ErrClientNotConnected
	}

	if err := c.getFatalError(); err != nil {
		return nil, err
	}

	return c.session, nil
}

// ListTools returns the server's tools in registration order, with
// parameters in declared order.
func (c *Client) ListTools(ctx context.Context) ([]internalmcp.Descriptor, error) {
	session, err := c.activeSession()
	if err != nil {
		return nil, err
	}

	type ordered struct {
		desc  internalmcp.Descriptor
		order int
	}

	var tools []ordered

	for tool, err := range session.Tools(ctx, nil) {
		if err != nil {
			return nil, fmt.Errorf("list tools: %w", err)
		}

		desc, order, err := internalmcp.FromTool(tool)
		if err != nil {
			return nil, fmt.Errorf("decode tool %q: %w", tool.Name, err)
		}

		// Tools without an order keep server order after the ordered ones.
		if order < 0 {
			order = math.MaxInt
		}

		tools = append(tools, ordered{desc: desc, order: order})
	}

	slices.SortStableFunc(tools, func(a, b ordered) int { return cmp.Compare(a.order, b.order) })

	result := make([]internalmcp.Descriptor, len(tools))
	for i, t := range tools {
		result[i] = t.desc
	}

	return result, nil
}

// Status reports the connected server's identity, how it is reached, and
// how many tools it exposes.
func (c *Client) Status(ctx context.Context) (*internalmcp.Status, error) {
	tools, err := c.ListTools(ctx)
	if err != nil {
		return nil, err
	}

	status := &internalmcp.Status{Type: c.serverType, Tools: len(tools)}

	if init := c.session.InitializeResult(); init != nil && init.ServerInfo != nil {
		status.Server = internalmcp.ServerInfo{Name: init.ServerInfo.Name, Version: init.ServerInfo.Version}
	}

	return status, nil
}

// CallTool invokes a tool with a bag of named arguments. Tool faults come
// back as an error envelope; the returned error covers transport failures
// only.
func (c *Client) CallTool(ctx context.Context, name string, args map[string]any) (*message.Envelope, error) {
	session, err := c.activeSession()
	if err != nil {
		return nil, err
	}

	if args == nil {
		args = map[string]any{}
	}

	c.log.Debug("Calling tool", "tool", name)

	result, err := session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: args})
	if err != nil {
		return nil, &errors.ToolCallError{Tool: name, Err: err}
	}

	return message.FromResult(result), nil
}

// CallToolJSON is like CallTool with arguments given as a JSON object.
func (c *Client) CallToolJSON(ctx context.Context, name string, args json.RawMessage) (*message.Envelope, error) {
	bag := map[string]any{}

	if len(args) > 0 {
		if err := json.Unmarshal(args, &bag); err != nil {
			return nil, &errors.ToolCallError{Tool: name, Err: fmt.Errorf("malformed arguments: %w", err)}
		}
	}

	return c.CallTool(ctx, name, bag)
}

// Close ends the session. It is safe to call more than once.
func (c *Client) Close() error {
	var closeErr error

	c.closeOnce.Do(func() {
		c.mu.Lock()
		c.closed = true
		c.closing = true
		wasConnected := c.connected
		c.connected = false
		c.mu.Unlock()

		if !wasConnected {
			return
		}

		c.log.Info("Closing client")

		closeErr = c.session.Close()

		if err := c.eg.Wait(); err != nil && closeErr == nil {
			closeErr = err
		}

		c.log.Info("Client closed")
	})

	return closeErr
}
