package mcp

// ServerInfo identifies a tool server.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Status describes a connected tool server.
type Status struct {
	Server ServerInfo `json:"server"`
	Type   ServerType `json:"type"`
	Tools  int        `json:"tools"`
}
