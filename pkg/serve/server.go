package serve

import (
	"bufio"
	"context"
	"encoding/json"
	"io"

	"github.com/praetorian-inc/calclex/pkg/scanner"
)

// Version is the server protocol version
const Version = "1.0.0"

// Request and response types.
const (
	TypeReady    = "ready" // sent once on start
	TypeLex      = "lex"
	TypeLexBatch = "lex_batch"
	TypeClose    = "close"
)

// Server manages the streaming lexer
type Server struct {
	core    *scanner.Core
	encoder *json.Encoder
	decoder *json.Decoder
}

// NewServer creates a new streaming server
func NewServer(core *scanner.Core, in io.Reader, out io.Writer) *Server {
	return &Server{
		core:    core,
		encoder: json.NewEncoder(out),
		decoder: json.NewDecoder(bufio.NewReader(in)),
	}
}

// Run starts the server main loop. It returns nil when the input ends or a
// close request arrives, and ctx.Err() when the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.sendReady()

	reqChan := make(chan Request, 1)
	errChan := make(chan error, 1)

	go func() {
		for {
			var req Request
			if err := s.decoder.Decode(&req); err != nil {
				errChan <- err
				return
			}
			select {
			case reqChan <- req:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-errChan:
			// Drain any pending requests before handling EOF
			for {
				select {
				case req := <-reqChan:
					if s.processRequest(req) {
						return nil
					}
				default:
					if err == io.EOF {
						return nil
					}
					s.sendError("decode", err.Error())
					return nil
				}
			}
		case req := <-reqChan:
			if s.processRequest(req) {
				return nil
			}
		}
	}
}

// processRequest handles a single request and returns true if the server should exit
func (s *Server) processRequest(req Request) bool {
	switch req.Type {
	case TypeLex:
		s.handleLex(req.Payload)
	case TypeLexBatch:
		s.handleLexBatch(req.Payload)
	case TypeClose:
		return true
	default:
		s.sendError("unknown", "unknown request type: "+req.Type)
	}
	return false
}

func (s *Server) sendReady() {
	s.send(TypeReady, ReadyData{Version: Version})
}

func (s *Server) handleLex(payload json.RawMessage) {
	var p LexPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError(TypeLex, err.Error())
		return
	}

	result, err := s.core.Scan(p.Content, p.Source)
	if err != nil {
		s.sendError(TypeLex, err.Error())
		return
	}
	s.send(TypeLex, result)
}

func (s *Server) handleLexBatch(payload json.RawMessage) {
	var p LexBatchPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		s.sendError(TypeLexBatch, err.Error())
		return
	}

	result, err := s.core.ScanBatch(p.Items)
	if err != nil {
		s.sendError(TypeLexBatch, err.Error())
		return
	}
	s.send(TypeLexBatch, result)
}

func (s *Server) send(respType string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		s.sendError(respType, err.Error())
		return
	}
	s.encoder.Encode(Response{
		Success: true,
		Type:    respType,
		Data:    data,
	})
}

func (s *Server) sendError(reqType, msg string) {
	s.encoder.Encode(Response{
		Success: false,
		Type:    reqType,
		Error:   msg,
	})
}
