// Package toolkit provides a Go client and an embeddable server for the
// toolkit tool host: a registry of named tools (arithmetic, weather, todos,
// products, a remote product catalog and text utilities) served over the
// Model Context Protocol.
//
// # Calling a Tool
//
// For one-off calls, use Call. It starts a client, invokes the tool and
// closes the client:
//
//	env, err := toolkit.Call(ctx, "add", map[string]any{"a": 2, "b": 3})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := toolkit.Decode[toolkit.CalculationResult](env)
//
// # Sessions
//
// For several calls, use NewClient or the WithClient helper:
//
//	err := toolkit.WithClient(ctx, func(c toolkit.Client) error {
//	    tools, err := c.ListTools(ctx)
//	    if err != nil {
//	        return err
//	    }
//	    for _, t := range tools {
//	        fmt.Println(t.Name)
//	    }
//	    return nil
//	},
//	    toolkit.WithLogger(slog.Default()),
//	)
//
// By default the client launches the toolkit-server binary found on PATH
// and speaks to it over stdio. WithServerPath names the binary explicitly,
// WithEndpoint connects to a running server over streamable HTTP, and
// WithTransport accepts any go-sdk transport.
//
// # Embedding the Server
//
// NewServer builds the tool host in process. Its InProcessTransport method
// returns a transport for WithTransport, which is how the examples and
// tests run without a subprocess:
//
//	srv, err := toolkit.NewServer(toolkit.DefaultServerConfig())
//	t, err := srv.InProcessTransport(ctx)
//	client := toolkit.NewClient()
//	err = client.Start(ctx, toolkit.WithTransport(t))
//
// # Hooks
//
// WithHooks attaches callbacks to the embedded server. PreToolCall hooks
// see the bound arguments and may block a call; PostToolCall and
// PostToolCallFailure hooks observe outcomes. A matcher selects tools by
// exact name, with "|" separating alternatives.
//
// # Results
//
// Every call yields an Envelope. Tool faults, unknown tools and invalid
// arguments are reported inside the envelope with IsError set; the error
// return covers transport failures only. Decode converts the first part of
// a successful envelope into a Go value.
//
// # Error Handling
//
// The package provides typed errors for different failure scenarios:
//
//	if err := client.Start(ctx); err != nil {
//	    if nf, ok := errors.AsType[*toolkit.ServerNotFoundError](err); ok {
//	        log.Fatalf("toolkit-server not installed, searched: %v", nf.SearchedPaths)
//	    }
//	    log.Fatal(err)
//	}
package toolkit
