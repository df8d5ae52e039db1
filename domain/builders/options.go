package builders

import (
	"github.com/kaspanet/cellwallet/domain/collector"
	"github.com/kaspanet/cellwallet/domain/fees"
	"github.com/kaspanet/cellwallet/domain/netconfig"
	"github.com/kaspanet/cellwallet/util"
)

type options struct {
	params           *netconfig.Params
	feeRate          uint64
	collector        collector.Collector
	feeCalculator    fees.Calculator
	lowValueBuilder  Builder
	maxFeeIterations int
	minChange        util.Amount
}

// Option configures a builder.
type Option func(*options)

// WithParams sets the network the builder builds for. It defaults to the
// network of the funding address.
func WithParams(params *netconfig.Params) Option {
	return func(o *options) {
		o.params = params
	}
}

// WithFeeRate sets the fee rate in shannons per 1000 bytes. It defaults to
// the network's minimum fee rate.
func WithFeeRate(feeRate uint64) Option {
	return func(o *options) {
		o.feeRate = feeRate
	}
}

// WithCollector sets the source of the funding cells. It's required.
func WithCollector(collector collector.Collector) Option {
	return func(o *options) {
		o.collector = collector
	}
}

// WithFeeCalculator replaces the size based fee calculator.
func WithFeeCalculator(feeCalculator fees.Calculator) Option {
	return func(o *options) {
		o.feeCalculator = feeCalculator
	}
}

// WithLowValueBuilder replaces the builder transfers below the minimum
// change are delegated to.
func WithLowValueBuilder(lowValueBuilder Builder) Option {
	return func(o *options) {
		o.lowValueBuilder = lowValueBuilder
	}
}

// WithMaxFeeIterations sets how many times the inputs are re-selected for a
// grown fee before giving up with ErrFeeNotConverged.
func WithMaxFeeIterations(maxFeeIterations int) Option {
	return func(o *options) {
		o.maxFeeIterations = maxFeeIterations
	}
}

// WithMinChange overrides MinChange. Meant for tests and networks with a
// different cell occupancy.
func WithMinChange(minChange util.Amount) Option {
	return func(o *options) {
		o.minChange = minChange
	}
}

func newOptions(defaultParams *netconfig.Params, opts []Option) *options {
	o := &options{
		params:           defaultParams,
		feeCalculator:    fees.NewSizeCalculator(),
		maxFeeIterations: DefaultMaxFeeIterations,
		minChange:        MinChange,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.feeRate == 0 {
		o.feeRate = o.params.MinFeeRate
	}
	return o
}
