package order

import (
	"github.com/loyaltyhq/loyalty/internal/order/repository"
	"github.com/loyaltyhq/loyalty/internal/order/service"
	"go.uber.org/fx"
)

var Module = fx.Module("order.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
