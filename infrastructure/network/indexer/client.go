package indexer

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/kaspanet/cellwallet/domain/cellmodel"
	"github.com/kaspanet/cellwallet/infrastructure/network/rpcmodel"
	"github.com/kaspanet/cellwallet/util"
	"github.com/pkg/errors"
)

const defaultTimeout = 30 * time.Second

// Client is a JSON-RPC client of a ckb-indexer.
type Client struct {
	http      *resty.Client
	requestID uint64
}

// NewClient returns a client of the indexer listening at url.
func NewClient(url string) *Client {
	return &Client{
		http: resty.New().
			SetHostURL(url).
			SetTimeout(defaultTimeout).
			SetHeader("Content-Type", "application/json"),
	}
}

func (c *Client) call(ctx context.Context, method string, result interface{}, params ...interface{}) error {
	req := &request{
		ID:      atomic.AddUint64(&c.requestID, 1),
		JSONRPC: jsonRPCVersion,
		Method:  method,
		Params:  params,
	}
	log.Tracef("Calling %s (request %d)", method, req.ID)

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(req).
		Post("")
	if err != nil {
		return errors.Wrapf(err, "error calling %s", method)
	}
	if resp.IsError() {
		return errors.Errorf("error calling %s: unexpected HTTP status %s", method, resp.Status())
	}

	var res response
	if err := json.Unmarshal(resp.Body(), &res); err != nil {
		return errors.Wrapf(err, "error decoding the response to %s", method)
	}
	if res.Error != nil {
		return res.Error
	}
	if err := json.Unmarshal(res.Result, result); err != nil {
		return errors.Wrapf(err, "error decoding the result of %s", method)
	}
	return nil
}

// GetCells returns a page of at most limit live cells locked by lock.
// cursor is the LastCursor of the previous page, or nil for the first one.
func (c *Client) GetCells(ctx context.Context, lock *cellmodel.Script, order Order, limit uint32,
	cursor []byte) (*GetCellsResult, error) {

	var cursorParam interface{}
	if len(cursor) > 0 {
		cursorParam = rpcmodel.Bytes(cursor)
	}
	key := searchKey{Script: rpcmodel.ScriptFromDomain(lock), ScriptType: scriptTypeLock}

	result := &GetCellsResult{}
	err := c.call(ctx, "get_cells", result, key, order, rpcmodel.Uint64(limit), cursorParam)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetCellsCapacity returns the total capacity of the live cells locked by
// lock.
func (c *Client) GetCellsCapacity(ctx context.Context, lock *cellmodel.Script) (util.Amount, error) {
	key := searchKey{Script: rpcmodel.ScriptFromDomain(lock), ScriptType: scriptTypeLock}

	result := &getCellsCapacityResult{}
	err := c.call(ctx, "get_cells_capacity", result, key)
	if err != nil {
		return util.AmountZero, err
	}
	return util.NewAmount(uint64(result.Capacity)), nil
}

// ToCell converts an indexed cell into a live domain cell.
func (indexedCell *IndexedCell) ToCell() (*cellmodel.Cell, error) {
	cell, err := indexedCell.Output.ToDomain()
	if err != nil {
		return nil, err
	}
	outPoint, err := indexedCell.OutPoint.ToDomain()
	if err != nil {
		return nil, err
	}
	cell.OutPoint = outPoint
	if len(indexedCell.OutputData) > 0 {
		cell.Data = indexedCell.OutputData
	}
	return cell, nil
}
