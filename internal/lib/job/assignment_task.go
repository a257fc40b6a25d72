package job

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
)

const (
	TaskDeveloperAssigned = "email:developer_assigned"
)

// DeveloperAssignedPayload is the task body for a new lead assignment.
type DeveloperAssignedPayload struct {
	LeadID         int64  `json:"lead_id"`
	LeadTitle      string `json:"lead_title"`
	ClientName     string `json:"client_name"`
	DeveloperID    int64  `json:"developer_id"`
	DeveloperName  string `json:"developer_name"`
	DeveloperEmail string `json:"developer_email"`
}

func NewDeveloperAssignedTask(p DeveloperAssignedPayload) (*asynq.Task, error) {
	payload, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskDeveloperAssigned,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}

// EnqueueDeveloperAssigned queues the assignment notification.
func (j *JobService) EnqueueDeveloperAssigned(ctx context.Context, p DeveloperAssignedPayload) error {
	task, err := NewDeveloperAssignedTask(p)
	if err != nil {
		return fmt.Errorf("failed to build developer assigned task: %w", err)
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue developer assigned task: %w", err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Int64("lead_id", p.LeadID).
		Int64("developer_id", p.DeveloperID).
		Msg("enqueued developer assigned task")

	return nil
}

func (j *JobService) handleDeveloperAssignedTask(ctx context.Context, t *asynq.Task) error {
	var p DeveloperAssignedPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal developer assigned payload: %w: %w", err, asynq.SkipRetry)
	}

	logger := j.logger.With().
		Str("type", TaskDeveloperAssigned).
		Int64("lead_id", p.LeadID).
		Int64("developer_id", p.DeveloperID).
		Logger()

	if j.mailer == nil {
		logger.Debug().Msg("email disabled, skipping developer assigned email")
		return nil
	}

	logger.Info().Msg("processing developer assigned email task")

	if err := j.mailer.SendDeveloperAssignedEmail(ctx, p.DeveloperEmail, p.DeveloperName, p.LeadTitle, p.ClientName); err != nil {
		logger.Error().Err(err).Msg("failed to send developer assigned email")
		return err
	}

	logger.Info().Msg("sent developer assigned email")
	return nil
}
