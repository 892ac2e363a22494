/*
Package server implements msgpack IPC for word solving services.

The server reads msgpack messages from stdin and writes one msgpack response
per request to stdout. On start it writes a ready message:

	{"status": "ready"}

# Solving

A solve request carries the typed letters and asks for grouping with "g":

	{"id": "req_001", "l": "leapt", "g": true}

The response lists the words in solve order, the grouping by word length
when asked for, the word count and the solve time in microseconds:

	{"id": "req_001", "w": ["ale", "lea", ...], "g": {3: [...], 4: [...], 5: [...]}, "c": 29, "t": 41}

Letters shorter than min_letters get an empty response, not an error. With
enable_filter on, non-letters are stripped and case and accents folded
before solving; with it off such input is rejected.

# Other actions

	{"id": "i1", "action": "info"}
	{"id": "h1", "action": "health"}
	{"id": "c1", "action": "config", "min_letters": 3, "enable_filter": false}

Failures come back as {"id", "e": message, "c": code} where code is 400 for a
bad request, 404 for an unknown action and 500 for internal errors.

The server counts requests and reloads its TOML config every reload_every
requests.
*/
package server

// Actions understood by the server. An empty action means ActionSolve.
const (
	ActionSolve  = "solve"
	ActionInfo   = "info"
	ActionHealth = "health"
	ActionConfig = "config"
)

// Request is any message a client sends. Fields unused by the action are ignored.
type Request struct {
	ID      string `msgpack:"id"`
	Action  string `msgpack:"action,omitempty"`
	Letters string `msgpack:"l,omitempty"`
	Group   bool   `msgpack:"g,omitempty"`

	// config only
	MinLetters   *int  `msgpack:"min_letters,omitempty"`
	MaxLetters   *int  `msgpack:"max_letters,omitempty"`
	EnableFilter *bool `msgpack:"enable_filter,omitempty"`
}

// SolveResponse - solve response
type SolveResponse struct {
	ID        string           `msgpack:"id"`
	Words     []string         `msgpack:"w"`
	Groups    map[int][]string `msgpack:"g,omitempty"`
	Count     int              `msgpack:"c"`
	TimeTaken int64            `msgpack:"t"`
}

// StatusResponse is the ready and health message
type StatusResponse struct {
	ID     string `msgpack:"id,omitempty"`
	Status string `msgpack:"status"`
}

// InfoResponse describes the loaded index and active limits
type InfoResponse struct {
	ID           string `msgpack:"id"`
	Status       string `msgpack:"status"`
	Index        string `msgpack:"index"`
	Signatures   int    `msgpack:"signatures"`
	Words        int    `msgpack:"words"`
	MinLetters   int    `msgpack:"min_letters"`
	MaxLetters   int    `msgpack:"max_letters"`
	EnableFilter bool   `msgpack:"enable_filter"`
}

// ConfigResponse - config operation response
type ConfigResponse struct {
	ID           string `msgpack:"id"`
	Status       string `msgpack:"status"`
	Error        string `msgpack:"error,omitempty"`
	MinLetters   int    `msgpack:"min_letters"`
	MaxLetters   int    `msgpack:"max_letters"`
	EnableFilter bool   `msgpack:"enable_filter"`
}

// ErrorResponse holds basic error information for failed requests
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}
