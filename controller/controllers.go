// controller/controllers.go
package controller

import (
	"github.com/atriumhq/atrium/audit"
	"github.com/atriumhq/atrium/dao"
	"github.com/atriumhq/atrium/rbac"
	"github.com/atriumhq/atrium/util"
)

type Controllers struct {
	Access   *AccessController
	Chat     *ChatController
	Employee *EmployeeController
	Audit    *AuditController
}

func InitializeControllers(
	guard *rbac.Guard,
	auditService audit.Service,
	employeeDAO *dao.EmployeeDAO,
	cacheService *util.CacheService,
) *Controllers {
	return &Controllers{
		Access:   NewAccessController(guard),
		Chat:     NewChatController(guard, auditService),
		Employee: NewEmployeeController(employeeDAO, guard, cacheService, auditService),
		Audit:    NewAuditController(auditService),
	}
}
