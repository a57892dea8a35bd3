package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"campaign-engine/internal/criteria"

	"github.com/google/uuid"
)

type CreateTriggerRuleParams struct {
	Name      string
	EventType string
	Criteria  criteria.Criteria
	Steps     []WorkflowStep
	Enabled   bool
}

const triggerRuleColumns = `id, name, event_type, criteria, steps, enabled, created_at, updated_at`

const sqlCreateTriggerRule = `
INSERT INTO trigger_rules (name, event_type, criteria, steps, enabled)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + triggerRuleColumns

// CreateTriggerRule creates a trigger rule
func (s *Store) CreateTriggerRule(ctx context.Context, params CreateTriggerRuleParams) (TriggerRule, error) {
	var rule TriggerRule
	err := s.db.GetContext(ctx, &rule, sqlCreateTriggerRule,
		params.Name, params.EventType, NewJSON(params.Criteria), NewJSON(params.Steps), params.Enabled)
	if err != nil {
		return TriggerRule{}, fmt.Errorf("failed to create trigger rule: %w", err)
	}
	return rule, nil
}

const sqlGetTriggerRuleByID = `
SELECT ` + triggerRuleColumns + `
FROM trigger_rules
WHERE id = $1
`

// GetTriggerRuleByID retrieves a trigger rule by ID
func (s *Store) GetTriggerRuleByID(ctx context.Context, ruleID uuid.UUID) (TriggerRule, error) {
	var rule TriggerRule
	err := s.db.GetContext(ctx, &rule, sqlGetTriggerRuleByID, ruleID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TriggerRule{}, ErrNotFound
		}
		return TriggerRule{}, fmt.Errorf("failed to get trigger rule: %w", err)
	}
	return rule, nil
}

const sqlListEnabledTriggerRules = `
SELECT ` + triggerRuleColumns + `
FROM trigger_rules
WHERE enabled = TRUE
ORDER BY created_at ASC
`

// ListEnabledTriggerRules retrieves every enabled rule
func (s *Store) ListEnabledTriggerRules(ctx context.Context) ([]TriggerRule, error) {
	var rules []TriggerRule
	if err := s.db.SelectContext(ctx, &rules, sqlListEnabledTriggerRules); err != nil {
		return nil, fmt.Errorf("failed to list enabled trigger rules: %w", err)
	}
	return rules, nil
}

const sqlSetTriggerRuleEnabled = `
UPDATE trigger_rules
SET enabled = $2, updated_at = CURRENT_TIMESTAMP
WHERE id = $1
RETURNING ` + triggerRuleColumns

// SetTriggerRuleEnabled enables or disables a rule
func (s *Store) SetTriggerRuleEnabled(ctx context.Context, ruleID uuid.UUID, enabled bool) (TriggerRule, error) {
	var rule TriggerRule
	err := s.db.GetContext(ctx, &rule, sqlSetTriggerRuleEnabled, ruleID, enabled)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return TriggerRule{}, ErrNotFound
		}
		return TriggerRule{}, fmt.Errorf("failed to set trigger rule enabled: %w", err)
	}
	return rule, nil
}

// ============================================================================
// Workflow instances
// ============================================================================

type CreateWorkflowInstanceParams struct {
	CustomerID string
	RuleID     uuid.UUID
	EventID    string
	Payload    LoggedPayload
	ResumeAt   time.Time
}

const workflowColumns = `id, customer_id, rule_id, event_id, payload, step_index, status, resume_at, attempts, last_error, created_at, updated_at`

const sqlCreateWorkflowInstance = `
INSERT INTO workflow_instances (customer_id, rule_id, event_id, payload, resume_at)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (customer_id, rule_id, event_id) DO NOTHING
RETURNING ` + workflowColumns

const sqlGetWorkflowInstanceByKey = `
SELECT ` + workflowColumns + `
FROM workflow_instances
WHERE customer_id = $1 AND rule_id = $2 AND event_id = $3
`

// CreateWorkflowInstance inserts an instance if its key is new. It returns the
// stored instance and whether this call created it.
func (s *Store) CreateWorkflowInstance(ctx context.Context, params CreateWorkflowInstanceParams) (WorkflowInstance, bool, error) {
	var instance WorkflowInstance
	err := s.db.GetContext(ctx, &instance, sqlCreateWorkflowInstance,
		params.CustomerID, params.RuleID, params.EventID, NewJSON(params.Payload), params.ResumeAt)
	if err == nil {
		return instance, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return WorkflowInstance{}, false, fmt.Errorf("failed to create workflow instance: %w", err)
	}

	err = s.db.GetContext(ctx, &instance, sqlGetWorkflowInstanceByKey, params.CustomerID, params.RuleID, params.EventID)
	if err != nil {
		return WorkflowInstance{}, false, fmt.Errorf("failed to get existing workflow instance: %w", err)
	}
	return instance, false, nil
}

const sqlGetWorkflowInstanceByID = `
SELECT ` + workflowColumns + `
FROM workflow_instances
WHERE id = $1
`

// GetWorkflowInstance retrieves an instance by ID
func (s *Store) GetWorkflowInstance(ctx context.Context, id uuid.UUID) (WorkflowInstance, error) {
	var instance WorkflowInstance
	err := s.db.GetContext(ctx, &instance, sqlGetWorkflowInstanceByID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return WorkflowInstance{}, ErrNotFound
		}
		return WorkflowInstance{}, fmt.Errorf("failed to get workflow instance: %w", err)
	}
	return instance, nil
}

// AdvanceWorkflowParams is the state written after a step boundary.
type AdvanceWorkflowParams struct {
	StepIndex int
	Status    WorkflowStatus
	ResumeAt  *time.Time
	Attempts  int
	LastError *string
}

const sqlAdvanceWorkflowInstance = `
UPDATE workflow_instances
SET step_index = $3, status = $4, resume_at = $5, attempts = $6, last_error = $7, updated_at = CURRENT_TIMESTAMP
WHERE id = $1 AND step_index = $2 AND status IN ('pending', 'waiting')
RETURNING ` + workflowColumns

// AdvanceWorkflowInstance persists the next state of an instance only if it
// is still at expectedStep and not terminal.
func (s *Store) AdvanceWorkflowInstance(ctx context.Context, id uuid.UUID, expectedStep int, params AdvanceWorkflowParams) (WorkflowInstance, error) {
	var instance WorkflowInstance
	err := s.db.GetContext(ctx, &instance, sqlAdvanceWorkflowInstance,
		id, expectedStep, params.StepIndex, params.Status, params.ResumeAt, params.Attempts, params.LastError)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return WorkflowInstance{}, ErrConflict
		}
		return WorkflowInstance{}, fmt.Errorf("failed to advance workflow instance: %w", err)
	}
	return instance, nil
}

const sqlListDueWorkflowInstances = `
SELECT ` + workflowColumns + `
FROM workflow_instances
WHERE status IN ('pending', 'waiting') AND resume_at <= $1
ORDER BY resume_at ASC
LIMIT $2
`

// ListDueWorkflowInstances returns instances whose resume time has passed
func (s *Store) ListDueWorkflowInstances(ctx context.Context, now time.Time, limit int) ([]WorkflowInstance, error) {
	var instances []WorkflowInstance
	err := s.db.SelectContext(ctx, &instances, sqlListDueWorkflowInstances, now, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list due workflow instances: %w", err)
	}
	return instances, nil
}
