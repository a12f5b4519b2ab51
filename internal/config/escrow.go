package config

import (
	"github.com/auralshin/crosschain-evm-aptos-swap/internal/swap"
	"gitlab.com/distributed_lab/figure/v3"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

// Stage offsets default to the contract test schedule: 5/10/15/20 minutes on
// the source side, 5/10/15 on the destination side.
func (c *config) Timelocks() swap.Timelocks {
	return c.timelocksOnce.Do(func() interface{} {
		cfg := struct {
			SrcWithdrawal       uint32 `fig:"src_withdrawal"`
			SrcPublicWithdrawal uint32 `fig:"src_public_withdrawal"`
			SrcCancellation     uint32 `fig:"src_cancellation"`
			SrcPublicCancel     uint32 `fig:"src_public_cancellation"`
			DstWithdrawal       uint32 `fig:"dst_withdrawal"`
			DstPublicWithdrawal uint32 `fig:"dst_public_withdrawal"`
			DstCancellation     uint32 `fig:"dst_cancellation"`
		}{
			SrcWithdrawal:       300,
			SrcPublicWithdrawal: 600,
			SrcCancellation:     900,
			SrcPublicCancel:     1200,
			DstWithdrawal:       300,
			DstPublicWithdrawal: 600,
			DstCancellation:     900,
		}

		raw, err := c.getter.GetStringMap("timelocks")
		if err != nil {
			panic(errors.Wrap(err, "failed to get timelocks config"))
		}
		if raw != nil {
			if err := figure.Out(&cfg).From(raw).Please(); err != nil {
				panic(errors.Wrap(err, "failed to figure out timelocks"))
			}
		}

		return swap.Timelocks{
			SrcWithdrawal:       cfg.SrcWithdrawal,
			SrcPublicWithdrawal: cfg.SrcPublicWithdrawal,
			SrcCancellation:     cfg.SrcCancellation,
			SrcPublicCancel:     cfg.SrcPublicCancel,
			DstWithdrawal:       cfg.DstWithdrawal,
			DstPublicWithdrawal: cfg.DstPublicWithdrawal,
			DstCancellation:     cfg.DstCancellation,
		}
	}).(swap.Timelocks)
}
