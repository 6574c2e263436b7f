package scanner

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/praetorian-inc/calclex/pkg/lexer"
	"github.com/praetorian-inc/calclex/pkg/log"
	"github.com/praetorian-inc/calclex/pkg/store"
	"github.com/praetorian-inc/calclex/pkg/types"
)

// Core wraps the lexer and a store for scanning operations
type Core struct {
	store     store.Store
	ownsStore bool
	logger    *zap.Logger
}

// NewCore creates a Core that records scans in st. A nil st gets a
// private in-memory store that Close releases; a caller-supplied store is
// left open. A nil logger discards logs.
func NewCore(st store.Store, logger *zap.Logger) (*Core, error) {
	logger = log.OrNop(logger)

	owns := false
	if st == nil {
		var err error
		st, err = store.New(store.Config{Path: store.MemoryPath})
		if err != nil {
			return nil, fmt.Errorf("creating store: %w", err)
		}
		owns = true
	}

	logger.Debug("scanner core ready", zap.Bool("private_store", owns))
	return &Core{
		store:     st,
		ownsStore: owns,
		logger:    logger,
	}, nil
}

// Scan lexes content reported under source and records the result.
// Lexical errors are carried in the result; the returned error is only
// set when the scan could not be recorded.
func (c *Core) Scan(content, source string) (*types.ScanResult, error) {
	if source == "" {
		source = types.DefaultFilename
	}

	tokens, err := lexer.Run(source, content)

	var lexErr *types.Error
	if err != nil && !errors.As(err, &lexErr) {
		return nil, fmt.Errorf("lexing %s: %w", source, err)
	}

	result := types.NewScanResult(source, content, tokens, lexErr)
	if lexErr != nil {
		c.logger.Debug("lexical error",
			zap.String("source", source),
			zap.Stringer("kind", lexErr.Kind),
			zap.String("details", lexErr.Details),
			zap.Int("line", lexErr.Start.Line+1),
			zap.Int("column", lexErr.Start.Column),
		)
	} else {
		c.logger.Debug("lexed", zap.String("source", source), zap.Int("tokens", len(result.Tokens)))
	}

	if err := c.store.AddScan(result); err != nil {
		return nil, fmt.Errorf("storing scan: %w", err)
	}
	return result, nil
}

// ScanBatch lexes multiple content items
func (c *Core) ScanBatch(items []ContentItem) (*BatchScanResult, error) {
	batch := &BatchScanResult{
		Results: make([]*types.ScanResult, 0, len(items)),
	}

	for _, item := range items {
		result, err := c.Scan(item.Content, item.Source)
		if err != nil {
			return nil, err
		}

		if result.OK() {
			batch.Total += len(result.Tokens)
		} else {
			batch.Failed++
		}
		batch.Results = append(batch.Results, result)
	}

	return batch, nil
}

// Store returns the store scans are recorded in.
func (c *Core) Store() store.Store {
	return c.store
}

// Close releases scanner resources
func (c *Core) Close() error {
	if c.ownsStore && c.store != nil {
		return c.store.Close()
	}
	return nil
}
