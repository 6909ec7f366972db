package migration

import (
	"strings"

	customerdomain "github.com/loyaltyhq/loyalty/internal/customer/domain"
	orderdomain "github.com/loyaltyhq/loyalty/internal/order/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB) error {
		// sqlite is the dev/test path; golang-migrate drives postgres.
		if strings.EqualFold(conn.Dialector.Name(), "sqlite") {
			return conn.AutoMigrate(
				&customerdomain.Customer{},
				&orderdomain.Order{},
			)
		}

		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}
		return RunMigrations(sqlDB)
	}),
)
