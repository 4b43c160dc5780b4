package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"unicode/utf16"

	"github.com/charmbracelet/log"
	"github.com/mgomes/tyu/tyu"
)

const (
	completionKindKeyword       = 14
	completionKindTypeParameter = 25
)

var typeLetters = []rune{'N', 'I', 'R', 'C', 'S', 'E', 'L', 'F'}

type lspInboundMessage struct {
	JSONRPC string           `json:"jsonrpc"`
	ID      *json.RawMessage `json:"id,omitempty"`
	Method  string           `json:"method,omitempty"`
	Params  json.RawMessage  `json:"params,omitempty"`
}

type lspResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type lspOutboundMessage struct {
	JSONRPC string            `json:"jsonrpc"`
	ID      *json.RawMessage  `json:"id,omitempty"`
	Method  string            `json:"method,omitempty"`
	Params  any               `json:"params,omitempty"`
	Result  any               `json:"result,omitempty"`
	Error   *lspResponseError `json:"error,omitempty"`
}

type lspDidOpenParams struct {
	TextDocument struct {
		URI  string `json:"uri"`
		Text string `json:"text"`
	} `json:"textDocument"`
}

type lspDidChangeParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
	ContentChanges []struct {
		Text string `json:"text"`
	} `json:"contentChanges"`
}

type lspTextDocumentPositionParams struct {
	TextDocument struct {
		URI string `json:"uri"`
	} `json:"textDocument"`
	Position struct {
		Line      int `json:"line"`
		Character int `json:"character"`
	} `json:"position"`
}

type lspServer struct {
	reader *bufio.Reader
	writer *bufio.Writer
	parser *tyu.Parser
	logger *log.Logger
	docs   map[string]string
}

func newLSPServer(r io.Reader, w io.Writer, parser *tyu.Parser, logger *log.Logger) *lspServer {
	if parser == nil {
		parser = tyu.NewParser(tyu.Config{})
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &lspServer{
		reader: bufio.NewReader(r),
		writer: bufio.NewWriter(w),
		parser: parser,
		logger: logger,
		docs:   make(map[string]string),
	}
}

func runLSP(parser *tyu.Parser, logger *log.Logger) error {
	return newLSPServer(os.Stdin, os.Stdout, parser, logger).serve()
}

func (s *lspServer) serve() error {
	for {
		payload, err := s.readPayload()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		var incoming lspInboundMessage
		if err := json.Unmarshal(payload, &incoming); err != nil {
			s.logger.Warn("dropping malformed message", "err", err)
			continue
		}
		s.logger.Debug("lsp message", "method", incoming.Method)

		messages := s.handleMessage(incoming)
		for _, msg := range messages {
			if err := s.writePayload(msg); err != nil {
				return err
			}
		}

		if incoming.Method == "exit" {
			return nil
		}
	}
}

func (s *lspServer) handleMessage(incoming lspInboundMessage) []lspOutboundMessage {
	switch incoming.Method {
	case "initialize":
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Result: map[string]any{
					"capabilities": map[string]any{
						"textDocumentSync": 1,
						"hoverProvider":    true,
						"completionProvider": map[string]any{
							"resolveProvider": false,
						},
					},
					"serverInfo": map[string]any{
						"name":    "tyu",
						"version": version,
					},
				},
			},
		}
	case "initialized":
		return nil
	case "shutdown":
		if incoming.ID == nil {
			return nil
		}
		return []lspOutboundMessage{{JSONRPC: "2.0", ID: incoming.ID, Result: nil}}
	case "exit":
		return nil
	case "textDocument/didOpen":
		var params lspDidOpenParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return nil
		}
		s.docs[params.TextDocument.URI] = params.TextDocument.Text
		return []lspOutboundMessage{
			s.publishDiagnostics(params.TextDocument.URI, params.TextDocument.Text),
		}
	case "textDocument/didChange":
		var params lspDidChangeParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return nil
		}
		if len(params.ContentChanges) == 0 {
			return nil
		}
		latest := params.ContentChanges[len(params.ContentChanges)-1].Text
		s.docs[params.TextDocument.URI] = latest
		return []lspOutboundMessage{
			s.publishDiagnostics(params.TextDocument.URI, latest),
		}
	case "textDocument/didClose":
		var params lspDidOpenParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return nil
		}
		delete(s.docs, params.TextDocument.URI)
		return nil
	case "textDocument/completion":
		if incoming.ID == nil {
			return nil
		}
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Result: map[string]any{
					"isIncomplete": false,
					"items":        completionItems(),
				},
			},
		}
	case "textDocument/hover":
		if incoming.ID == nil {
			return nil
		}
		var params lspTextDocumentPositionParams
		if err := json.Unmarshal(incoming.Params, &params); err != nil {
			return []lspOutboundMessage{
				{
					JSONRPC: "2.0",
					ID:      incoming.ID,
					Error:   &lspResponseError{Code: -32602, Message: "invalid hover params"},
				},
			}
		}
		source := s.docs[params.TextDocument.URI]
		text := s.hoverText(source, params.Position.Line, params.Position.Character)
		if text == "" {
			return []lspOutboundMessage{
				{JSONRPC: "2.0", ID: incoming.ID, Result: nil},
			}
		}
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Result: map[string]any{
					"contents": map[string]any{
						"kind":  "markdown",
						"value": text,
					},
				},
			},
		}
	default:
		if incoming.ID == nil {
			return nil
		}
		return []lspOutboundMessage{
			{
				JSONRPC: "2.0",
				ID:      incoming.ID,
				Error: &lspResponseError{
					Code:    -32601,
					Message: "method not found",
				},
			},
		}
	}
}

func (s *lspServer) publishDiagnostics(uri, source string) lspOutboundMessage {
	return lspOutboundMessage{
		JSONRPC: "2.0",
		Method:  "textDocument/publishDiagnostics",
		Params: map[string]any{
			"uri":         uri,
			"diagnostics": diagnosticsForSource(s.parser, source),
		},
	}
}

// diagnosticsForSource reports at most one diagnostic: parsing stops at the
// first error.
func diagnosticsForSource(parser *tyu.Parser, source string) []map[string]any {
	_, err := parser.Parse(source)
	if err == nil {
		return []map[string]any{}
	}

	var perr *tyu.ParseError
	if !errors.As(err, &perr) {
		return []map[string]any{newDiagnostic(0, 0, err.Error(), "")}
	}
	line := max(0, perr.Line()-1)
	character := utf16Column(source, line, max(0, perr.Column()-1))
	return []map[string]any{newDiagnostic(line, character, perr.Message, perr.Kind.String())}
}

func newDiagnostic(line, character int, message, code string) map[string]any {
	diag := map[string]any{
		"range": map[string]any{
			"start": map[string]any{
				"line":      line,
				"character": character,
			},
			"end": map[string]any{
				"line":      line,
				"character": character + 1,
			},
		},
		"severity": 1,
		"source":   "tyu-lsp",
		"message":  message,
	}
	if code != "" {
		diag["code"] = code
	}
	return diag
}

func completionItems() []map[string]any {
	items := make([]map[string]any, 0, len(tyu.Rules())+len(typeLetters))
	for _, rule := range tyu.Rules() {
		items = append(items, map[string]any{
			"label":  string(rule.Marker),
			"kind":   completionKindKeyword,
			"detail": rule.Kind.String(),
		})
	}
	for _, letter := range typeLetters {
		items = append(items, map[string]any{
			"label":  string(letter),
			"kind":   completionKindTypeParameter,
			"detail": describeTypeLetter(letter),
		})
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i]["label"].(string) < items[j]["label"].(string)
	})
	return items
}

// hoverText describes the character under the cursor. A character that starts
// a parsed unit names that unit; otherwise markers and type letters are
// described on their own.
func (s *lspServer) hoverText(source string, line, character int) string {
	ch, pos, ok := runeAtPosition(source, line, character)
	if !ok {
		return ""
	}

	if scope, err := s.parser.Parse(source); err == nil {
		if unit := findUnitAt(scope, pos); unit != nil {
			rule := tyu.RuleFor(unit.Kind)
			return fmt.Sprintf("`%c` **%s** (%s)\n\nslots: %s, %s",
				unit.Marker, unit.Kind, unit.Kind.Group(), rule.Slot2, rule.Slot3)
		}
	}

	if tyu.IsTypeCharacter(ch) {
		return fmt.Sprintf("`%c` %s", ch, describeTypeLetter(ch))
	}
	if rule, ok := tyu.LookupMarker(ch); ok {
		return fmt.Sprintf("`%c` marker of **%s**", ch, rule.Kind)
	}
	return ""
}

func describeTypeLetter(ch rune) string {
	switch ch {
	case 'L':
		return "list type"
	case 'F':
		return "function type"
	default:
		return tyu.TypeKind(ch).String() + " type"
	}
}

func findUnitAt(scope *tyu.Scope, pos tyu.Position) *tyu.Unit {
	for _, unit := range scope.Units {
		if unit.Pos() == pos {
			return unit
		}
		for _, slot := range []tyu.Slot{unit.Slot2, unit.Slot3} {
			if found := findUnitInSlot(slot, pos); found != nil {
				return found
			}
		}
	}
	return nil
}

func findUnitInSlot(slot tyu.Slot, pos tyu.Position) *tyu.Unit {
	switch s := slot.(type) {
	case *tyu.Scope:
		return findUnitAt(s, pos)
	case *tyu.NestedScope:
		return findUnitAt(s.Scope, pos)
	default:
		return nil
	}
}

// runeAtPosition maps a 0-based LSP position, whose character offset counts
// UTF-16 code units, to the rune there and its 1-based source position.
func runeAtPosition(source string, line, character int) (rune, tyu.Position, bool) {
	lines := strings.Split(source, "\n")
	if line < 0 || line >= len(lines) || character < 0 {
		return 0, tyu.Position{}, false
	}

	units := 0
	for i, r := range []rune(lines[line]) {
		width := utf16.RuneLen(r)
		if width < 0 {
			width = 1
		}
		if character < units+width {
			return r, tyu.Position{Line: line + 1, Column: i + 1}, true
		}
		units += width
	}
	return 0, tyu.Position{}, false
}

// utf16Column converts a 0-based rune column on the given line into a UTF-16
// offset.
func utf16Column(source string, line, column int) int {
	lines := strings.Split(source, "\n")
	if line >= len(lines) {
		return column
	}
	runes := []rune(lines[line])
	offset := 0
	for i := 0; i < column; i++ {
		if i >= len(runes) {
			offset++
			continue
		}
		width := utf16.RuneLen(runes[i])
		if width < 0 {
			width = 1
		}
		offset += width
	}
	return offset
}

func (s *lspServer) readPayload() ([]byte, error) {
	contentLength := -1
	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			break
		}
		parts := strings.SplitN(line, ":", 2)
		if len(parts) != 2 {
			continue
		}
		name := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		if strings.EqualFold(name, "Content-Length") {
			n, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("invalid Content-Length: %w", err)
			}
			contentLength = n
		}
	}

	if contentLength < 0 {
		return nil, fmt.Errorf("missing Content-Length header")
	}
	payload := make([]byte, contentLength)
	if _, err := io.ReadFull(s.reader, payload); err != nil {
		return nil, err
	}
	return payload, nil
}

func (s *lspServer) writePayload(msg lspOutboundMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.writer, "Content-Length: %d\r\n\r\n", len(data)); err != nil {
		return err
	}
	if _, err := s.writer.Write(data); err != nil {
		return err
	}
	return s.writer.Flush()
}
