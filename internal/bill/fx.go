package bill

import "go.uber.org/fx"

var Module = fx.Module("bill",
	fx.Provide(NewWriter),
)
