package loyalty

import (
	"github.com/loyaltyhq/loyalty/internal/loyalty/service"
	"go.uber.org/fx"
)

var Module = fx.Module("loyalty.service",
	fx.Provide(service.New),
)
