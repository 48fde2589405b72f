package headerstore

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strconv"

	_ "github.com/lib/pq"

	"github.com/fossil-light/accumulator/accumulator"
	"github.com/fossil-light/accumulator/mmr"
)

// PostgresStore fetches headers from a `blockheaders` table via a shared,
// read-only connection pool.
type PostgresStore struct {
	db      *sql.DB
	chainID uint64
}

// OpenPostgresStore opens a connection pool against dsn. The pool is
// shared read-only across every orchestrator call per the concurrency
// model; callers are responsible for closing it on shutdown. chainID is
// stamped onto every Header this store returns, since the table holds
// headers for exactly one source chain.
func OpenPostgresStore(dsn string, chainID uint64) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	return &PostgresStore{db: db, chainID: chainID}, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

const headersInRangeQuery = `
SELECT block_hash, number, gas_limit, gas_used, nonce, parent_hash,
       base_fee_per_gas, "timestamp", sha3_uncles, miner, state_root,
       transaction_root, receipts_root, logs_bloom, difficulty, extra_data,
       mix_hash
FROM blockheaders
WHERE number BETWEEN $1 AND $2
ORDER BY number ASC`

// HeadersInRange runs the range SELECT and decodes every row's hex-string
// fields into the accumulator's numeric Header representation.
func (s *PostgresStore) HeadersInRange(ctx context.Context, start, end uint64) ([]accumulator.Header, error) {
	rows, err := s.db.QueryContext(ctx, headersInRangeQuery, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var headers []accumulator.Header
	for rows.Next() {
		var (
			blockHash, parentHash, nonceHex, baseFeeHex, timestampHex string
			unclesHash, miner, stateRoot, txRoot, receiptRoot         string
			logsBloomHex, difficultyHex, extraDataHex, mixHashHex     string
			number                                                    int64
			gasLimit, gasUsed                                         int64
		)
		if err := rows.Scan(&blockHash, &number, &gasLimit, &gasUsed, &nonceHex, &parentHash,
			&baseFeeHex, &timestampHex, &unclesHash, &miner, &stateRoot, &txRoot, &receiptRoot,
			&logsBloomHex, &difficultyHex, &extraDataHex, &mixHashHex); err != nil {
			return nil, err
		}

		bh, err := mmr.ParseHash(blockHash)
		if err != nil {
			return nil, fmt.Errorf("headerstore: block %d: %w", number, err)
		}
		ph, err := mmr.ParseHash(parentHash)
		if err != nil {
			return nil, fmt.Errorf("headerstore: block %d: %w", number, err)
		}
		uh, err := mmr.ParseHash(unclesHash)
		if err != nil {
			return nil, fmt.Errorf("headerstore: block %d: %w", number, err)
		}
		sr, err := mmr.ParseHash(stateRoot)
		if err != nil {
			return nil, fmt.Errorf("headerstore: block %d: %w", number, err)
		}
		tr, err := mmr.ParseHash(txRoot)
		if err != nil {
			return nil, fmt.Errorf("headerstore: block %d: %w", number, err)
		}
		rr, err := mmr.ParseHash(receiptRoot)
		if err != nil {
			return nil, fmt.Errorf("headerstore: block %d: %w", number, err)
		}
		mh, err := mmr.ParseHash(mixHashHex)
		if err != nil {
			return nil, fmt.Errorf("headerstore: block %d: %w", number, err)
		}
		coinbase, err := parseHexAddress(miner)
		if err != nil {
			return nil, fmt.Errorf("headerstore: block %d: %w", number, err)
		}
		bloom, err := parseHexBloom(logsBloomHex)
		if err != nil {
			return nil, fmt.Errorf("headerstore: block %d: %w", number, err)
		}
		extraData, err := parseHexBytes(extraDataHex)
		if err != nil {
			return nil, fmt.Errorf("headerstore: block %d: %w", number, err)
		}
		baseFee, err := parseHexUint(baseFeeHex)
		if err != nil {
			return nil, fmt.Errorf("headerstore: block %d: %w", number, err)
		}
		timestamp, err := parseHexUint(timestampHex)
		if err != nil {
			return nil, fmt.Errorf("headerstore: block %d: %w", number, err)
		}
		nonce, err := parseHexUint(nonceHex)
		if err != nil {
			return nil, fmt.Errorf("headerstore: block %d: %w", number, err)
		}
		difficulty, err := parseHexUint(difficultyHex)
		if err != nil {
			return nil, fmt.Errorf("headerstore: block %d: %w", number, err)
		}

		headers = append(headers, accumulator.Header{
			Number:        uint64(number),
			BlockHash:     bh,
			ParentHash:    ph,
			UncleHash:     uh,
			Coinbase:      coinbase,
			StateRoot:     sr,
			TxRoot:        tr,
			ReceiptRoot:   rr,
			LogsBloom:     bloom,
			Difficulty:    difficulty,
			GasLimit:      uint64(gasLimit),
			GasUsed:       uint64(gasUsed),
			Timestamp:     timestamp,
			ExtraData:     extraData,
			MixDigest:     mh,
			Nonce:         nonce,
			BaseFeePerGas: baseFee,
			ChainID:       s.chainID,
		})
	}
	return headers, rows.Err()
}

func parseHexUint(s string) (uint64, error) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	if s == "" {
		return 0, nil
	}
	return strconv.ParseUint(s, 16, 64)
}

func parseHexBytes(s string) ([]byte, error) {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	if s == "" {
		return nil, nil
	}
	return hex.DecodeString(s)
}

func parseHexAddress(s string) ([20]byte, error) {
	var addr [20]byte
	b, err := parseHexBytes(s)
	if err != nil {
		return addr, err
	}
	if len(b) != len(addr) && len(b) != 0 {
		return addr, fmt.Errorf("headerstore: address %q is not 20 bytes", s)
	}
	copy(addr[20-len(b):], b)
	return addr, nil
}

func parseHexBloom(s string) ([256]byte, error) {
	var bloom [256]byte
	b, err := parseHexBytes(s)
	if err != nil {
		return bloom, err
	}
	if len(b) != len(bloom) && len(b) != 0 {
		return bloom, fmt.Errorf("headerstore: logs bloom %q is not 256 bytes", s)
	}
	copy(bloom[256-len(b):], b)
	return bloom, nil
}
