// Package mcp manages the .mcp.json tool-server registry of a project: a
// catalog of known MCP servers, the JSON configuration file they are recorded
// in, and the external package-manager checks their installation needs.
package mcp

// ServerSpec describes an MCP server known to the catalog: how to launch it
// and what it needs from the environment.
type ServerSpec struct {
	ID          string
	Name        string
	Description string

	// Command and Args form the launch line recorded in .mcp.json.
	Command string
	Args    []string

	// EnvVars are environment variables the server expects at runtime. They
	// are recorded in .mcp.json as "${VAR}" placeholders.
	EnvVars []string

	// Package metadata for dependency installation. At most one is set.
	NPMPackage    string
	PythonPackage string
}

// catalog is the fixed set of supported servers, in display order.
var catalog = []ServerSpec{
	{
		ID:          "firecrawl",
		Name:        "Firecrawl MCP",
		Description: "Web scraping and crawling",
		Command:     "npx",
		Args:        []string{"-y", "firecrawl-mcp"},
		EnvVars:     []string{"FIRECRAWL_API_KEY"},
		NPMPackage:  "firecrawl-mcp",
	},
	{
		ID:          "github",
		Name:        "GitHub MCP",
		Description: "GitHub repository operations",
		Command:     "npx",
		Args:        []string{"-y", "@modelcontextprotocol/server-github"},
		EnvVars:     []string{"GITHUB_PERSONAL_ACCESS_TOKEN"},
		NPMPackage:  "@modelcontextprotocol/server-github",
	},
	{
		ID:            "elevenlabs",
		Name:          "ElevenLabs MCP",
		Description:   "Text-to-speech with ElevenLabs",
		Command:       "uvx",
		Args:          []string{"elevenlabs-mcp"},
		EnvVars:       []string{"ELEVENLABS_API_KEY"},
		PythonPackage: "elevenlabs-mcp",
	},
	{
		ID:          "context7",
		Name:        "Context7 MCP",
		Description: "Up-to-date code documentation",
		Command:     "npx",
		Args:        []string{"-y", "@upstash/context7-mcp"},
		NPMPackage:  "@upstash/context7-mcp",
	},
	{
		ID:            "serena",
		Name:          "Serena MCP",
		Description:   "Coding agent toolkit with semantic retrieval",
		Command:       "uvx",
		Args:          []string{"--from", "git+https://github.com/oraios/serena", "serena-mcp-server"},
		PythonPackage: "git+https://github.com/oraios/serena",
	},
}

// Catalog returns the supported servers in display order. The returned slice
// is a copy; the catalog itself is immutable.
func Catalog() []ServerSpec {
	out := make([]ServerSpec, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a catalog entry by ID.
func Lookup(id string) (ServerSpec, bool) {
	for _, s := range catalog {
		if s.ID == id {
			return s, true
		}
	}
	return ServerSpec{}, false
}

// Entry converts the spec into the form recorded in .mcp.json.
func (s ServerSpec) Entry() ServerEntry {
	e := ServerEntry{
		Command: s.Command,
		Args:    append([]string(nil), s.Args...),
	}
	if len(s.EnvVars) > 0 {
		e.Env = make(map[string]string, len(s.EnvVars))
		for _, v := range s.EnvVars {
			e.Env[v] = "${" + v + "}"
		}
	}
	return e
}
