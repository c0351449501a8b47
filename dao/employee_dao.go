// dao/employee_dao.go
package dao

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/atriumhq/atrium/audit"
	atrium_errors "github.com/atriumhq/atrium/errors"
	logger "github.com/atriumhq/atrium/logging"
	"github.com/atriumhq/atrium/model"
	helper_util "github.com/atriumhq/atrium/util/helper"
)

// EmployeeDAO reads and writes the org graph:
// (Employee)-[:MEMBER_OF]->(Team)-[:PART_OF]->(Department)-[:PART_OF]->(Organization),
// (Employee)-[:REPORTS_TO]->(Employee), (Employee)-[:ASSIGNED_TO]->(Project).
type EmployeeDAO struct {
	Driver       neo4j.Driver
	AuditService audit.Service
}

func NewEmployeeDAO(driver neo4j.Driver, auditService audit.Service) *EmployeeDAO {
	dao := &EmployeeDAO{Driver: driver, AuditService: auditService}
	ctx := context.Background()
	if err := dao.EnsureUniqueConstraint(ctx); err != nil {
		logger.Fatal("Failed to ensure unique constraint for Employee", zap.Error(err))
	}
	return dao
}

func (dao *EmployeeDAO) EnsureUniqueConstraint(ctx context.Context) error {
	logger.Info("Ensuring unique constraint on Employee ID")
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        CREATE CONSTRAINT unique_employee_id IF NOT EXISTS
        FOR (e:Employee) REQUIRE e.id IS UNIQUE
        `
		_, err := transaction.Run(query, nil)
		return nil, err
	})
	if err != nil {
		logger.Error("Failed to ensure unique constraint on Employee ID", zap.Error(err))
		return err
	}

	return nil
}

// GetEmployee loads one directory record with its org placement, reporting
// chain and project assignments.
func (dao *EmployeeDAO) GetEmployee(ctx context.Context, userID string) (*model.Employee, error) {
	start := time.Now()
	logger.Debug("Retrieving employee", zap.String("userID", userID))

	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	query := `
    MATCH (e:Employee {id: $id})
    OPTIONAL MATCH (e)-[:MEMBER_OF]->(t:Team)
    OPTIONAL MATCH (t)-[:PART_OF]->(d:Department)
    OPTIONAL MATCH (d)-[:PART_OF]->(o:Organization)
    OPTIONAL MATCH (e)-[:REPORTS_TO]->(m:Employee)
    OPTIONAL MATCH (r:Employee)-[:REPORTS_TO]->(e)
    OPTIONAL MATCH (e)-[:ASSIGNED_TO]->(p:Project)
    RETURN e,
           t.id AS teamID,
           d.id AS departmentID,
           o.id AS orgID,
           m.id AS managerID,
           collect(DISTINCT r.id) AS directReports,
           collect(DISTINCT p.id) AS projectIDs
    `
	result, err := session.Run(query, map[string]interface{}{"id": userID})
	if err != nil {
		logger.Error("Failed to execute get employee query",
			zap.Error(err),
			zap.String("userID", userID),
			zap.Duration("duration", time.Since(start)))
		return nil, atrium_errors.ErrDatabaseOperation
	}

	if result.Next() {
		employee, err := mapRecordToEmployee(result.Record())
		if err != nil {
			logger.Error("Failed to map employee record to struct",
				zap.Error(err),
				zap.String("userID", userID),
				zap.Duration("duration", time.Since(start)))
			return nil, atrium_errors.ErrInternalServer
		}
		logger.Debug("Employee retrieved successfully",
			zap.String("userID", userID),
			zap.Duration("duration", time.Since(start)))
		return employee, nil
	}

	logger.Warn("Employee not found",
		zap.String("userID", userID),
		zap.Duration("duration", time.Since(start)))
	return nil, atrium_errors.ErrUserNotFound
}

// UpsertEmployee merges the employee node and rewrites its org relationships
// to match the record. Relationship targets (teams, departments, projects)
// are merged by id so a sync can arrive in any order.
func (dao *EmployeeDAO) UpsertEmployee(ctx context.Context, employee model.Employee) (string, error) {
	start := time.Now()

	if employee.ID == "" {
		return "", fmt.Errorf("%w: missing employee id", atrium_errors.ErrInvalidUserData)
	}
	logger.Info("Upserting employee", zap.String("userID", employee.ID))

	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		metadataJSON, _ := json.Marshal(employee.Metadata)
		now := time.Now().Format(time.RFC3339)

		query := `
        MERGE (e:Employee {id: $id})
        ON CREATE SET e.createdAt = $now
        SET e += $props
        `
		params := map[string]interface{}{
			"id":  employee.ID,
			"now": now,
			"props": map[string]interface{}{
				"name":      employee.Name,
				"email":     employee.Email,
				"role":      employee.Role,
				"metadata":  string(metadataJSON),
				"updatedAt": now,
			},
		}
		if _, err := transaction.Run(query, params); err != nil {
			return nil, atrium_errors.ErrDatabaseOperation
		}

		if employee.TeamID != "" {
			query := `
            MATCH (e:Employee {id: $id})
            OPTIONAL MATCH (e)-[old:MEMBER_OF]->(:Team)
            DELETE old
            WITH DISTINCT e
            MERGE (t:Team {id: $teamID})
            MERGE (e)-[:MEMBER_OF]->(t)
            `
			params := map[string]interface{}{"id": employee.ID, "teamID": employee.TeamID}
			if _, err := transaction.Run(query, params); err != nil {
				return nil, atrium_errors.ErrDatabaseOperation
			}

			if employee.DepartmentID != "" {
				query := `
                MATCH (t:Team {id: $teamID})
                MERGE (d:Department {id: $departmentID})
                MERGE (t)-[:PART_OF]->(d)
                `
				params := map[string]interface{}{"teamID": employee.TeamID, "departmentID": employee.DepartmentID}
				if _, err := transaction.Run(query, params); err != nil {
					return nil, atrium_errors.ErrDatabaseOperation
				}
			}

			if employee.DepartmentID != "" && employee.OrgID != "" {
				query := `
                MATCH (d:Department {id: $departmentID})
                MERGE (o:Organization {id: $orgID})
                MERGE (d)-[:PART_OF]->(o)
                `
				params := map[string]interface{}{"departmentID": employee.DepartmentID, "orgID": employee.OrgID}
				if _, err := transaction.Run(query, params); err != nil {
					return nil, atrium_errors.ErrDatabaseOperation
				}
			}
		}

		if employee.ManagerID != "" {
			query := `
            MATCH (e:Employee {id: $id})
            OPTIONAL MATCH (e)-[old:REPORTS_TO]->(:Employee)
            DELETE old
            WITH DISTINCT e
            MERGE (m:Employee {id: $managerID})
            MERGE (e)-[:REPORTS_TO]->(m)
            `
			params := map[string]interface{}{"id": employee.ID, "managerID": employee.ManagerID}
			if _, err := transaction.Run(query, params); err != nil {
				return nil, atrium_errors.ErrDatabaseOperation
			}
		}

		if len(employee.ProjectIDs) > 0 {
			query := `
            MATCH (e:Employee {id: $id})
            OPTIONAL MATCH (e)-[old:ASSIGNED_TO]->(:Project)
            DELETE old
            WITH DISTINCT e
            UNWIND $projectIDs AS projectID
            MERGE (p:Project {id: projectID})
            MERGE (e)-[:ASSIGNED_TO]->(p)
            `
			params := map[string]interface{}{"id": employee.ID, "projectIDs": employee.ProjectIDs}
			if _, err := transaction.Run(query, params); err != nil {
				return nil, atrium_errors.ErrDatabaseOperation
			}
		}

		return nil, nil
	})

	duration := time.Since(start)
	if err != nil {
		logger.Error("Failed to upsert employee",
			zap.Error(err),
			zap.String("userID", employee.ID),
			zap.Duration("duration", duration))
		return "", err
	}

	logger.Info("Employee upserted successfully",
		zap.String("userID", employee.ID),
		zap.Duration("duration", duration))

	dao.AuditService.Record(audit.Event{
		Type:     audit.EventRoleAssigned,
		UserID:   requestingUser(ctx),
		Role:     employee.Role,
		Resource: string(model.ResourceTeamMembers),
		Allowed:  true,
		Metadata: map[string]any{
			"employee_id": employee.ID,
			"team_id":     employee.TeamID,
		},
	})

	return employee.ID, nil
}

// BulkUpsertEmployees loads a directory snapshot. Writes fan out through an
// errgroup capped well below the driver's pool size.
func (dao *EmployeeDAO) BulkUpsertEmployees(ctx context.Context, employees []model.Employee) error {
	start := time.Now()
	logger.Info("Bulk upserting employees", zap.Int("count", len(employees)))

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(8)

	for _, employee := range employees {
		employee := employee
		group.Go(func() error {
			if _, err := dao.UpsertEmployee(ctx, employee); err != nil {
				return fmt.Errorf("upsert employee %s: %w", employee.ID, err)
			}
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		logger.Error("Bulk upsert failed",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return err
	}

	logger.Info("Bulk upsert completed",
		zap.Int("count", len(employees)),
		zap.Duration("duration", time.Since(start)))
	return nil
}

// ListEmployees pages through the directory, newest first.
func (dao *EmployeeDAO) ListEmployees(ctx context.Context, limit, offset int) ([]*model.Employee, error) {
	start := time.Now()
	logger.Debug("Listing employees", zap.Int("limit", limit), zap.Int("offset", offset))

	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	query := `
    MATCH (e:Employee)
    OPTIONAL MATCH (e)-[:MEMBER_OF]->(t:Team)
    OPTIONAL MATCH (t)-[:PART_OF]->(d:Department)
    OPTIONAL MATCH (d)-[:PART_OF]->(o:Organization)
    OPTIONAL MATCH (e)-[:REPORTS_TO]->(m:Employee)
    OPTIONAL MATCH (r:Employee)-[:REPORTS_TO]->(e)
    OPTIONAL MATCH (e)-[:ASSIGNED_TO]->(p:Project)
    RETURN e,
           t.id AS teamID,
           d.id AS departmentID,
           o.id AS orgID,
           m.id AS managerID,
           collect(DISTINCT r.id) AS directReports,
           collect(DISTINCT p.id) AS projectIDs
    ORDER BY e.createdAt DESC
    SKIP $offset
    LIMIT $limit
    `
	result, err := session.Run(query, map[string]interface{}{
		"limit":  limit,
		"offset": offset,
	})
	if err != nil {
		logger.Error("Failed to execute list employees query",
			zap.Error(err),
			zap.Duration("duration", time.Since(start)))
		return nil, atrium_errors.ErrDatabaseOperation
	}

	var employees []*model.Employee
	for result.Next() {
		employee, err := mapRecordToEmployee(result.Record())
		if err != nil {
			logger.Error("Failed to map employee record to struct",
				zap.Error(err),
				zap.Duration("duration", time.Since(start)))
			return nil, atrium_errors.ErrInternalServer
		}
		employees = append(employees, employee)
	}

	logger.Debug("Employees listed successfully",
		zap.Int("count", len(employees)),
		zap.Duration("duration", time.Since(start)))

	return employees, nil
}

func mapRecordToEmployee(record *neo4j.Record) (*model.Employee, error) {
	node, ok := record.Values[0].(neo4j.Node)
	if !ok {
		return nil, fmt.Errorf("unexpected employee record shape")
	}
	props := node.Props

	employee := &model.Employee{
		ID:            stringProp(props, "id"),
		Name:          stringProp(props, "name"),
		Email:         stringProp(props, "email"),
		Role:          stringProp(props, "role"),
		TeamID:        stringValue(record.Values[1]),
		DepartmentID:  stringValue(record.Values[2]),
		OrgID:         stringValue(record.Values[3]),
		ManagerID:     stringValue(record.Values[4]),
		DirectReports: stringSlice(record.Values[5]),
		ProjectIDs:    stringSlice(record.Values[6]),
	}

	if metadataJSON := stringProp(props, "metadata"); metadataJSON != "" {
		if err := json.Unmarshal([]byte(metadataJSON), &employee.Metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal employee metadata: %w", err)
		}
	}

	if createdAt := stringProp(props, "createdAt"); createdAt != "" {
		t, err := helper_util.ParseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse employee createdAt: %w", err)
		}
		employee.CreatedAt = t
	}
	if updatedAt := stringProp(props, "updatedAt"); updatedAt != "" {
		t, err := helper_util.ParseTime(updatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse employee updatedAt: %w", err)
		}
		employee.UpdatedAt = t
	}

	return employee, nil
}

func stringProp(props map[string]interface{}, key string) string {
	value, _ := props[key].(string)
	return value
}

func stringValue(value interface{}) string {
	s, _ := value.(string)
	return s
}

func stringSlice(value interface{}) []string {
	items, ok := value.([]interface{})
	if !ok || len(items) == 0 {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func requestingUser(ctx context.Context) string {
	if userID, ok := ctx.Value("requestingUserID").(string); ok && userID != "" {
		return userID
	}
	return "system"
}
