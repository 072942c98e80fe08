package checkout

import (
	"github.com/smallbiznis/retailpos/internal/bill"
	"github.com/smallbiznis/retailpos/internal/checkout/service"
	"go.uber.org/fx"
)

var Module = fx.Module("checkout.service",
	fx.Provide(func(w *bill.Writer) service.BillWriter { return w }),
	fx.Provide(service.NewService),
)
