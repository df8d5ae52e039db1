package indexer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kaspanet/cellwallet/domain/cellmodel"
)

func testLock() *cellmodel.Script {
	return cellmodel.NewScript(cellmodel.Hash{9}, cellmodel.HashTypeType, bytes.Repeat([]byte{1}, 20))
}

// serveRPC starts a server that answers every call with the result (or
// error) returned by handle.
func serveRPC(t *testing.T, handle func(req *request) (interface{}, *RPCError)) *Client {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Decode: %+v", err)
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		result, rpcErr := handle(&req)
		resultJSON, err := json.Marshal(result)
		if err != nil {
			t.Errorf("Marshal: %+v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		err = json.NewEncoder(w).Encode(&response{
			ID:      req.ID,
			JSONRPC: jsonRPCVersion,
			Result:  resultJSON,
			Error:   rpcErr,
		})
		if err != nil {
			t.Errorf("Encode: %+v", err)
		}
	}))
	t.Cleanup(server.Close)
	return NewClient(server.URL)
}

func TestGetCells(t *testing.T) {
	var params []interface{}
	client := serveRPC(t, func(req *request) (interface{}, *RPCError) {
		if req.Method != "get_cells" {
			t.Errorf("unexpected method %s", req.Method)
		}
		params = req.Params
		return json.RawMessage(`{
			"last_cursor": "0xabcd",
			"objects": [{
				"block_number": "0x10",
				"out_point": {"tx_hash": "0x0100000000000000000000000000000000000000000000000000000000000000", "index": "0x2"},
				"output": {
					"capacity": "0x16b969d00",
					"lock": {"code_hash": "0x0900000000000000000000000000000000000000000000000000000000000000", "hash_type": "type", "args": "0x0101010101010101010101010101010101010101"},
					"type": null
				},
				"output_data": "0x",
				"tx_index": "0x1"
			}]
		}`), nil
	})

	result, err := client.GetCells(context.Background(), testLock(), OrderAsc, 100, nil)
	if err != nil {
		t.Fatalf("GetCells: %+v", err)
	}
	if len(params) != 4 || params[1] != "asc" || params[2] != "0x64" || params[3] != nil {
		t.Fatalf("unexpected get_cells params %v", params)
	}
	if !bytes.Equal(result.LastCursor, []byte{0xab, 0xcd}) {
		t.Fatalf("unexpected last cursor %x", result.LastCursor)
	}
	if len(result.Objects) != 1 {
		t.Fatalf("got %d cells, want 1", len(result.Objects))
	}

	cell, err := result.Objects[0].ToCell()
	if err != nil {
		t.Fatalf("ToCell: %+v", err)
	}
	capacity, _ := cell.Capacity.Uint64()
	if capacity != 6100000000 || !cell.Lock.Equal(testLock()) || cell.Type != nil || len(cell.Data) != 0 {
		t.Fatalf("unexpected cell %s", cell)
	}
	if *cell.OutPoint != (cellmodel.OutPoint{TxHash: cellmodel.Hash{1}, Index: 2}) {
		t.Fatalf("unexpected out point %s", cell.OutPoint)
	}

	_, err = client.GetCells(context.Background(), testLock(), OrderAsc, 100, result.LastCursor)
	if err != nil {
		t.Fatalf("GetCells: %+v", err)
	}
	if params[3] != "0xabcd" {
		t.Fatalf("cursor wasn't passed on, got %v", params[3])
	}
}

func TestGetCellsCapacity(t *testing.T) {
	client := serveRPC(t, func(req *request) (interface{}, *RPCError) {
		if req.Method != "get_cells_capacity" || len(req.Params) != 1 {
			t.Errorf("unexpected call %s with %v", req.Method, req.Params)
		}
		return json.RawMessage(`{"capacity": "0x3e8", "block_hash": "0x00", "block_number": "0x1"}`), nil
	})

	capacity, err := client.GetCellsCapacity(context.Background(), testLock())
	if err != nil {
		t.Fatalf("GetCellsCapacity: %+v", err)
	}
	if value, _ := capacity.Uint64(); value != 1000 {
		t.Fatalf("GetCellsCapacity: got %s, want 1000", capacity)
	}
}

func TestRPCError(t *testing.T) {
	client := serveRPC(t, func(req *request) (interface{}, *RPCError) {
		return nil, &RPCError{Code: -32602, Message: "invalid params"}
	})

	_, err := client.GetCellsCapacity(context.Background(), testLock())
	var rpcErr *RPCError
	if !errors.As(err, &rpcErr) {
		t.Fatalf("expected an *RPCError, got %+v", err)
	}
	if rpcErr.Code != -32602 {
		t.Fatalf("unexpected error code %d", rpcErr.Code)
	}
}

func TestHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).GetCells(context.Background(), testLock(), OrderAsc, 1, nil)
	if err == nil {
		t.Fatalf("GetCells unexpectedly succeeded against a failing server")
	}
	var rpcErr *RPCError
	if errors.As(err, &rpcErr) {
		t.Fatalf("a transport failure was reported as an RPC error: %+v", err)
	}
}
