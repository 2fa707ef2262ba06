// Command toolkit is a small client for a toolkit-server: it lists tools and
// calls them with key=value arguments.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/wagiedev/toolkit-mcp-go"
)

var version = "0.1.0"

type Globals struct {
	ServerPath string            `help:"Path to the toolkit-server executable." type:"path"`
	ServerArgs []string          `help:"Extra arguments for the server process."`
	Endpoint   string            `help:"Streamable HTTP endpoint instead of a subprocess."`
	Header     map[string]string `help:"HTTP header sent to the endpoint (key=value)."`
	Timeout    time.Duration     `help:"Connect timeout." default:"30s"`
	LogLevel   string            `help:"Client log level." enum:"debug,info,warn,error" default:"warn"`
}

type cli struct {
	Globals

	Tools   toolsCmd         `cmd:"" help:"List the server's tools."`
	Call    callCmd          `cmd:"" help:"Call a tool."`
	Status  statusCmd        `cmd:"" help:"Show the server identity."`
	Version kong.VersionFlag `help:"Print version and exit."`
}

type toolsCmd struct {
	Verbose bool `short:"v" help:"Show parameters."`
}

func (c *toolsCmd) Run(ctx context.Context, g *Globals) error {
	return toolkit.WithClient(ctx, func(client toolkit.Client) error {
		tools, err := client.ListTools(ctx)
		if err != nil {
			return err
		}

		fmt.Print(renderTools(tools, c.Verbose))

		return nil
	}, g.options()...)
}

type callCmd struct {
	Name string   `arg:"" help:"Tool name."`
	Args []string `arg:"" optional:"" help:"Arguments as key=value; values are parsed as JSON when possible."`
	Raw  bool     `help:"Print the envelope as JSON."`
}

func (c *callCmd) Run(ctx context.Context, g *Globals) error {
	bag, err := parseArgs(c.Args)
	if err != nil {
		return err
	}

	env, err := toolkit.Call(ctx, c.Name, bag, g.options()...)
	if err != nil {
		return err
	}

	out, err := renderEnvelope(c.Name, env, c.Raw)
	if err != nil {
		return err
	}

	fmt.Print(out)

	if env.IsError {
		return errToolFailed
	}

	return nil
}

type statusCmd struct{}

func (statusCmd) Run(ctx context.Context, g *Globals) error {
	return toolkit.WithClient(ctx, func(client toolkit.Client) error {
		status, err := client.Status(ctx)
		if err != nil {
			return err
		}

		fmt.Print(renderStatus(status))

		return nil
	}, g.options()...)
}

func (g *Globals) options() []toolkit.Option {
	var level slog.Level
	_ = level.UnmarshalText([]byte(g.LogLevel))

	opts := []toolkit.Option{
		toolkit.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))),
		toolkit.WithConnectTimeout(g.Timeout),
	}

	if level <= slog.LevelDebug {
		opts = append(opts, toolkit.WithStderr(func(line string) {
			fmt.Fprintln(os.Stderr, dim.Render("server: ")+line)
		}))
	}

	if g.ServerPath != "" {
		opts = append(opts, toolkit.WithServerPath(g.ServerPath))
	}

	if len(g.ServerArgs) > 0 {
		opts = append(opts, toolkit.WithServerArgs(g.ServerArgs...))
	}

	if g.Endpoint != "" {
		opts = append(opts, toolkit.WithEndpoint(g.Endpoint))
	}

	if len(g.Header) > 0 {
		opts = append(opts, toolkit.WithHeaders(g.Header))
	}

	return opts
}

func main() {
	var c cli

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	kctx := kong.Parse(&c,
		kong.Name("toolkit"),
		kong.Description("Call tools on a toolkit-server."),
		kong.UsageOnError(),
		kong.Vars{"version": "toolkit " + version},
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.Bind(&c.Globals),
	)

	if err := kctx.Run(); err != nil {
		if !errors.Is(err, errToolFailed) {
			fmt.Fprintln(os.Stderr, errStyle.Render("error: ")+err.Error())
		}

		os.Exit(1)
	}
}
