package indexer

import (
	"encoding/json"
	"fmt"

	"github.com/kaspanet/cellwallet/infrastructure/network/rpcmodel"
)

const jsonRPCVersion = "2.0"

type request struct {
	ID      uint64        `json:"id"`
	JSONRPC string        `json:"jsonrpc"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type response struct {
	ID      uint64          `json:"id"`
	JSONRPC string          `json:"jsonrpc"`
	Result  json.RawMessage `json:"result"`
	Error   *RPCError       `json:"error"`
}

// RPCError is an error returned by the indexer itself, as opposed to a
// transport failure.
type RPCError struct {
	Code    int64  `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("indexer error %d: %s", e.Code, e.Message)
}

// Order is the order cells are returned in, by block number and index.
type Order string

// The supported orders.
const (
	OrderAsc  Order = "asc"
	OrderDesc Order = "desc"
)

const scriptTypeLock = "lock"

type searchKey struct {
	Script     rpcmodel.Script `json:"script"`
	ScriptType string          `json:"script_type"`
}

// IndexedCell is a live cell as reported by get_cells.
type IndexedCell struct {
	BlockNumber rpcmodel.Uint64     `json:"block_number"`
	OutPoint    rpcmodel.OutPoint   `json:"out_point"`
	Output      rpcmodel.CellOutput `json:"output"`
	OutputData  rpcmodel.Bytes      `json:"output_data"`
	TxIndex     rpcmodel.Uint32     `json:"tx_index"`
}

// GetCellsResult is one page of get_cells. LastCursor is passed back to
// fetch the following page.
type GetCellsResult struct {
	LastCursor rpcmodel.Bytes `json:"last_cursor"`
	Objects    []*IndexedCell `json:"objects"`
}

type getCellsCapacityResult struct {
	Capacity    rpcmodel.Uint64 `json:"capacity"`
	BlockHash   string          `json:"block_hash"`
	BlockNumber rpcmodel.Uint64 `json:"block_number"`
}
